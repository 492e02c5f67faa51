package factors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/heartrisk/clinical"
	"github.com/YuminosukeSato/heartrisk/pkg/errors"
)

// base is a low-risk profile; tests override single features.
func base() clinical.Sample {
	return clinical.NewSample([clinical.NumFeatures]float64{30, 0, 0, 110, 180, 0, 0, 170, 0, 0.5, 1, 0, 1})
}

func with(f clinical.Feature, v float64) clinical.Sample {
	s := base()
	s.Set(f, v)
	return s
}

func TestAnnotate_EnglishProfile(t *testing.T) {
	s := clinical.NewSample([clinical.NumFeatures]float64{63, 1, 3, 145, 233, 1, 0, 150, 0, 2.3, 0, 0, 1})

	got, err := Annotate(s)
	require.NoError(t, err)
	want := []string{
		"age: 63 (advanced age - risk factor)",
		"sex: male (higher risk)",
		"chest pain: type 3 (angina) (high risk)",
		"resting blood pressure: 145 mmHg (high - hypertension)",
		"cholesterol: 233 mg/dL (borderline high)",
		"fasting blood sugar: >120 mg/dL (diabetes risk)",
		"ECG: normal (favorable)",
		"max heart rate: 150 (good condition - favorable)",
		"exercise angina: absent (favorable)",
		"ST depression: 2.3 (high risk)",
		"ST slope: 0",
		"vessel blockage: none (favorable)",
		"thalassemia: normal",
	}
	assert.Equal(t, want, got)
}

func TestAnnotate_TurkishProfile(t *testing.T) {
	s := clinical.NewSample([clinical.NumFeatures]float64{50, 0, 2, 125, 250, 0, 2, 110, 1, 1, 3, 2, 2})

	got, err := NewAnnotator(Turkish).Annotate(s)
	require.NoError(t, err)
	want := []string{
		"yaş: 50 (orta yaş - dikkat gerekli)",
		"cinsiyet: kadın (daha düşük risk)",
		"göğüs ağrısı: tip 2 (anormal) (orta risk)",
		"dinlenik kan basıncı: 125 mmHg ( sınır değer)",
		"kolesterol: 250 mg/dL (yüksek - risk faktörü)",
		"açlık şekeri: normal (olumlu)",
		"EKG: anormal (hipertrofi belirtisi)",
		"maks. kalp hızı: 110 (düşük - risk faktörü)",
		"egzersiz anjinası: var (risk faktörü)",
		"ST depresyonu: 1 (orta risk)",
		"ST eğimi: aşağı (risk)",
		"damar tıkanıklığı: 2 damar (yüksek risk)",
		"thalasemi: tespit edilemez (risk faktörü)",
	}
	assert.Equal(t, want, got)
}

func TestAnnotate_CutPoints(t *testing.T) {
	tests := []struct {
		feature clinical.Feature
		value   float64
		want    string
		band    Band
	}{
		{clinical.Age, 59, "age: 59 (middle age - attention needed)", Caution},
		{clinical.Age, 60, "age: 60 (advanced age - risk factor)", Risk},
		{clinical.Age, 44, "age: 44 (young - favorable factor)", Favorable},
		{clinical.Age, 45, "age: 45 (middle age - attention needed)", Caution},
		{clinical.ChestPain, 1, "chest pain: type 1 (no angina) (low risk)", Favorable},
		{clinical.ChestPain, 4, "chest pain: 4 (high risk)", Risk},
		{clinical.ChestPain, 1.5, "chest pain: 1.5 (low risk)", Favorable},
		{clinical.RestingBP, 119, "resting blood pressure: 119 mmHg (normal - favorable)", Favorable},
		{clinical.RestingBP, 120, "resting blood pressure: 120 mmHg (borderline)", Caution},
		{clinical.RestingBP, 140, "resting blood pressure: 140 mmHg (high - hypertension)", Risk},
		{clinical.Cholesterol, 199, "cholesterol: 199 mg/dL (normal - favorable)", Favorable},
		{clinical.Cholesterol, 200, "cholesterol: 200 mg/dL (borderline high)", Caution},
		{clinical.Cholesterol, 240, "cholesterol: 240 mg/dL (high - risk factor)", Risk},
		{clinical.RestECG, 1, "ECG: borderline ST-T wave changes", Caution},
		{clinical.MaxHeartRate, 119, "max heart rate: 119 (low - risk factor)", Risk},
		{clinical.MaxHeartRate, 120, "max heart rate: 120 (moderate)", Neutral},
		{clinical.MaxHeartRate, 149, "max heart rate: 149 (moderate)", Neutral},
		{clinical.ExerciseAngina, 1, "exercise angina: present (risk factor)", Risk},
		{clinical.STDepression, 0.9, "ST depression: 0.9 (normal)", Favorable},
		{clinical.STDepression, 1, "ST depression: 1 (moderate risk)", Caution},
		{clinical.STDepression, 2, "ST depression: 2 (high risk)", Risk},
		{clinical.Slope, 1, "ST slope: upsloping (favorable)", Favorable},
		{clinical.Slope, 2, "ST slope: flat (neutral)", Neutral},
		{clinical.Slope, 3, "ST slope: downsloping (risk)", Risk},
		{clinical.MajorVessels, 1, "vessel blockage: 1 vessel (attention)", Caution},
		{clinical.MajorVessels, 3, "vessel blockage: 3 vessels (high risk)", Risk},
		{clinical.Thal, 3, "thalassemia: reversible defect", Neutral},
		{clinical.Thal, 0, "thalassemia: 0", Neutral},
		{clinical.Thal, 2, "thalassemia: fixed defect (risk factor)", Risk},
	}

	a := NewAnnotator(English)
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			found, err := a.Explain(with(tt.feature, tt.value))
			require.NoError(t, err)
			require.Len(t, found, clinical.NumFeatures, "always one finding per feature")
			got := found[tt.feature]
			assert.Equal(t, tt.feature, got.Feature)
			assert.Equal(t, tt.want, got.Text)
			assert.Equal(t, tt.band, got.Band)
		})
	}
}

func TestExplain_MissingFeature(t *testing.T) {
	s := base()
	s.Unset(clinical.Cholesterol)

	_, err := NewAnnotator(Turkish).Explain(s)
	var sampleErr *errors.InvalidSampleError
	require.True(t, errors.As(err, &sampleErr))
	assert.Equal(t, "chol", sampleErr.Feature)

	_, err = Annotate(s)
	assert.Error(t, err)
}

func TestFilterAndTexts(t *testing.T) {
	found, err := NewAnnotator(English).Explain(with(clinical.Age, 70))
	require.NoError(t, err)

	risky := Filter(found, Risk)
	require.Len(t, risky, 1)
	assert.Equal(t, clinical.Age, risky[0].Feature)

	favorable := Filter(found, Favorable)
	assert.NotEmpty(t, favorable)
	for _, f := range favorable {
		assert.Equal(t, Favorable, f.Band)
	}
	assert.Len(t, Texts(found), clinical.NumFeatures)
}

func TestParseLanguage(t *testing.T) {
	for in, want := range map[string]Language{"": English, "en": English, "TR": Turkish, "turkish": Turkish} {
		got, err := ParseLanguage(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseLanguage("de")
	assert.Error(t, err)
	assert.Equal(t, "tr", Turkish.String())
	assert.Equal(t, Turkish, NewAnnotator(Turkish).Language())
}

func TestZeroValueAnnotator(t *testing.T) {
	var a Annotator
	got, err := a.Annotate(base())
	require.NoError(t, err)
	assert.Len(t, got, clinical.NumFeatures)
}
