package factors

import (
	"strings"

	"github.com/YuminosukeSato/heartrisk/pkg/errors"
)

// Language selects the phrasebook used for finding texts.
type Language int

const (
	// English is the default phrasebook.
	English Language = iota
	// Turkish is the patient-facing wording used in Turkish clinics.
	Turkish
)

// String returns the ISO 639-1 code.
func (l Language) String() string {
	if l == Turkish {
		return "tr"
	}
	return "en"
}

// ParseLanguage accepts "en", "tr" and their long forms.
func ParseLanguage(code string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case "", "en", "english":
		return English, nil
	case "tr", "turkish", "türkçe":
		return Turkish, nil
	default:
		return English, errors.NewValidationError("language", "must be en or tr", code)
	}
}

// phrasebook holds every fixed string of the annotator. Entries with %s take
// the formatted measurement or a label.
type phrasebook struct {
	ageHigh, ageMiddle, ageYoung string

	male, female string

	cpLabels             [4]string
	cpHigh, cpMid, cpLow string

	bpHigh, bpBorder, bpNormal string

	cholHigh, cholBorder, cholNormal string

	fbsHigh, fbsNormal string

	ecgAbnormal, ecgBorder, ecgNormal string

	hrLow, hrMid, hrGood string

	anginaYes, anginaNo string

	stHigh, stMid, stNormal string

	slope       string
	slopeLabels [3]string

	caHigh, caOne, caNone string

	thalRisk, thal string
	thalLabels     [3]string
}

var english = phrasebook{
	ageHigh:   "age: %s (advanced age - risk factor)",
	ageMiddle: "age: %s (middle age - attention needed)",
	ageYoung:  "age: %s (young - favorable factor)",

	male:   "sex: male (higher risk)",
	female: "sex: female (lower risk)",

	cpLabels: [4]string{"no type", "type 1 (no angina)", "type 2 (atypical)", "type 3 (angina)"},
	cpHigh:   "chest pain: %s (high risk)",
	cpMid:    "chest pain: %s (moderate risk)",
	cpLow:    "chest pain: %s (low risk)",

	bpHigh:   "resting blood pressure: %s mmHg (high - hypertension)",
	bpBorder: "resting blood pressure: %s mmHg (borderline)",
	bpNormal: "resting blood pressure: %s mmHg (normal - favorable)",

	cholHigh:   "cholesterol: %s mg/dL (high - risk factor)",
	cholBorder: "cholesterol: %s mg/dL (borderline high)",
	cholNormal: "cholesterol: %s mg/dL (normal - favorable)",

	fbsHigh:   "fasting blood sugar: >120 mg/dL (diabetes risk)",
	fbsNormal: "fasting blood sugar: normal (favorable)",

	ecgAbnormal: "ECG: abnormal (sign of hypertrophy)",
	ecgBorder:   "ECG: borderline ST-T wave changes",
	ecgNormal:   "ECG: normal (favorable)",

	hrLow:  "max heart rate: %s (low - risk factor)",
	hrMid:  "max heart rate: %s (moderate)",
	hrGood: "max heart rate: %s (good condition - favorable)",

	anginaYes: "exercise angina: present (risk factor)",
	anginaNo:  "exercise angina: absent (favorable)",

	stHigh:   "ST depression: %s (high risk)",
	stMid:    "ST depression: %s (moderate risk)",
	stNormal: "ST depression: %s (normal)",

	slope:       "ST slope: %s",
	slopeLabels: [3]string{"upsloping (favorable)", "flat (neutral)", "downsloping (risk)"},

	caHigh: "vessel blockage: %s vessels (high risk)",
	caOne:  "vessel blockage: 1 vessel (attention)",
	caNone: "vessel blockage: none (favorable)",

	thalRisk:   "thalassemia: %s (risk factor)",
	thal:       "thalassemia: %s",
	thalLabels: [3]string{"normal", "fixed defect", "reversible defect"},
}

var turkish = phrasebook{
	ageHigh:   "yaş: %s (ileri yaş - risk faktörü)",
	ageMiddle: "yaş: %s (orta yaş - dikkat gerekli)",
	ageYoung:  "yaş: %s (genç - olumlu faktör)",

	male:   "cinsiyet: erkek (daha yüksek risk)",
	female: "cinsiyet: kadın (daha düşük risk)",

	cpLabels: [4]string{"tip yok", "tip 1 (anjin yok)", "tip 2 (anormal)", "tip 3 (anjin var)"},
	cpHigh:   "göğüs ağrısı: %s (yüksek risk)",
	cpMid:    "göğüs ağrısı: %s (orta risk)",
	cpLow:    "göğüs ağrısı: %s (düşük risk)",

	bpHigh:   "dinlenik kan basıncı: %s mmHg (yüksek - hipertansiyon)",
	bpBorder: "dinlenik kan basıncı: %s mmHg ( sınır değer)",
	bpNormal: "dinlenik kan basıncı: %s mmHg (normal - olumlu)",

	cholHigh:   "kolesterol: %s mg/dL (yüksek - risk faktörü)",
	cholBorder: "kolesterol: %s mg/dL (sınır üstü)",
	cholNormal: "kolesterol: %s mg/dL (normal - olumlu)",

	fbsHigh:   "açlık şekeri: >120 mg/dL (diyabet riski)",
	fbsNormal: "açlık şekeri: normal (olumlu)",

	ecgAbnormal: "EKG: anormal (hipertrofi belirtisi)",
	ecgBorder:   "EKG: borderline ST dalgalanması",
	ecgNormal:   "EKG: normal (olumlu)",

	hrLow:  "maks. kalp hızı: %s (düşük - risk faktörü)",
	hrMid:  "maks. kalp hızı: %s (orta)",
	hrGood: "maks. kalp hızı: %s (iyi kondisyon - olumlu)",

	anginaYes: "egzersiz anjinası: var (risk faktörü)",
	anginaNo:  "egzersiz anjinası: yok (olumlu)",

	stHigh:   "ST depresyonu: %s (yüksek risk)",
	stMid:    "ST depresyonu: %s (orta risk)",
	stNormal: "ST depresyonu: %s (normal)",

	slope:       "ST eğimi: %s",
	slopeLabels: [3]string{"yukarı (olumlu)", "düz (nötr)", "aşağı (risk)"},

	caHigh: "damar tıkanıklığı: %s damar (yüksek risk)",
	caOne:  "damar tıkanıklığı: 1 damar (dikkat)",
	caNone: "damar tıkanıklığı: yok (olumlu)",

	thalRisk:   "thalasemi: %s (risk faktörü)",
	thal:       "thalasemi: %s",
	thalLabels: [3]string{"normal", "tespit edilemez", "reversibl defekt"},
}

func bookFor(lang Language) *phrasebook {
	if lang == Turkish {
		return &turkish
	}
	return &english
}
