package narrate

import (
	"fmt"
	"strings"

	"github.com/YuminosukeSato/heartrisk/boosting"
	"github.com/YuminosukeSato/heartrisk/factors"
)

// Prompt and template limits.
const (
	promptFactors = 5
	listedFactors = 3
)

type template struct {
	prompt     string
	noFactors  string
	intro      map[boosting.Tier]string
	attention  string
	favorable  string
	advice     string
	recommend  map[boosting.Tier]string
	disclaimer string
}

var templates = map[factors.Language]*template{
	factors.Turkish: {
		prompt:    "Kalp hastalığı risk analizi: %s seviye, %%%d risk.\nFaktörler: %s.\nKısa Türkçe açıklama yaz:",
		noFactors: "yok",
		intro: map[boosting.Tier]string{
			boosting.Low:    "Girdiğiniz bilgilere göre kalp hastalığı risk seviyeniz **%s** (%%%d). Bu genellikle iyi bir haber. ",
			boosting.Medium: "Girdiğiniz bilgilere göre kalp hastalığı risk seviyeniz **%s** (%%%d). Dikkatli olmakta fayda var. ",
			boosting.High:   "Girdiğiniz bilgilere göre kalp hastalığı risk seviyeniz **%s** (%%%d). Bu durumu ciddiye almanız önemli. ",
		},
		attention: "\n\n**Dikkat Çeken Faktörler:**\n",
		favorable: "\n**Olumlu Faktörler:**\n",
		advice:    "\n\n**Öneri:** ",
		recommend: map[boosting.Tier]string{
			boosting.Low:    "Kalp sağlığınız iyi görünüyor. Düzenli egzersiz, sağlıklı beslenme ve kontrolleri sürdürmeyi unutmayın.",
			boosting.Medium: "Risk faktörleriniz orta düzeyde. Bir kardiyolog ile görüşmenizi öneririm. Yaşam tarzı değişiklikleri faydalı olabilir.",
			boosting.High:   "Risk faktörleriniz yüksek. En kısa sürede bir kardiyologa başvurmanız önemle tavsiye edilir.",
		},
		disclaimer: "\n\n*Not: Bu değerlendirme bilgilendirme amaçlıdır ve tıbbi teşhis/tedavi yerine geçmez. Acil bir durumunuz varsa 112'yi arayın veya en yakın sağlık kuruluşuna başvurun.*",
	},
	factors.English: {
		prompt:    "Heart disease risk analysis: %s level, %d%% risk.\nFactors: %s.\nWrite a short explanation in plain English:",
		noFactors: "none",
		intro: map[boosting.Tier]string{
			boosting.Low:    "Based on the information you entered, your heart disease risk level is **%s** (%d%%). This is generally good news. ",
			boosting.Medium: "Based on the information you entered, your heart disease risk level is **%s** (%d%%). It is worth being careful. ",
			boosting.High:   "Based on the information you entered, your heart disease risk level is **%s** (%d%%). Please take this seriously. ",
		},
		attention: "\n\n**Factors of concern:**\n",
		favorable: "\n**Favorable factors:**\n",
		advice:    "\n\n**Recommendation:** ",
		recommend: map[boosting.Tier]string{
			boosting.Low:    "Your heart health looks good. Keep up regular exercise, a healthy diet and routine check-ups.",
			boosting.Medium: "Your risk factors are moderate. Consider seeing a cardiologist. Lifestyle changes may help.",
			boosting.High:   "Your risk factors are high. You are strongly advised to see a cardiologist as soon as possible.",
		},
		disclaimer: "\n\n*Note: This assessment is for information only and does not replace medical diagnosis or treatment. In an emergency, call your local emergency number or go to the nearest health facility.*",
	},
}

func templateFor(lang factors.Language) *template {
	if t, ok := templates[lang]; ok {
		return t
	}
	return templates[factors.English]
}

// BuildPrompt renders the generation prompt: the upper-cased tier label,
// the score and the first five factor texts joined by ", ".
func BuildPrompt(res boosting.Result, lang factors.Language) string {
	t := templateFor(lang)
	listed := t.noFactors
	if len(res.Factors) > 0 {
		listed = strings.Join(res.Factors[:min(promptFactors, len(res.Factors))], ", ")
	}
	return fmt.Sprintf(t.prompt, strings.ToUpper(res.Tier.Label(lang)), res.RiskScore, listed)
}

// LocalExplanation renders the offline explanation: an intro for the tier,
// up to three risk findings, up to three favorable findings, a
// recommendation and the medical disclaimer.
func LocalExplanation(res boosting.Result, lang factors.Language) string {
	t := templateFor(lang)
	intro, ok := t.intro[res.Tier]
	if !ok {
		intro = t.intro[boosting.High]
	}

	var b strings.Builder
	fmt.Fprintf(&b, intro, res.Tier.Label(lang), res.RiskScore)

	if risky := factors.Filter(res.Findings, factors.Risk, factors.Caution); len(risky) > 0 {
		b.WriteString(t.attention)
		writeList(&b, risky)
	}
	if good := factors.Filter(res.Findings, factors.Favorable); len(good) > 0 {
		b.WriteString(t.favorable)
		writeList(&b, good)
	}

	b.WriteString(t.advice)
	rec, ok := t.recommend[res.Tier]
	if !ok {
		rec = t.recommend[boosting.High]
	}
	b.WriteString(rec)
	b.WriteString(t.disclaimer)
	return b.String()
}

func writeList(b *strings.Builder, found []factors.Factor) {
	for _, f := range found[:min(listedFactors, len(found))] {
		b.WriteString("- ")
		b.WriteString(f.Text)
		b.WriteString("\n")
	}
}
