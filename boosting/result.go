package boosting

import (
	"math"
	"strconv"

	"github.com/YuminosukeSato/heartrisk/factors"
)

// Tier buckets a risk score.
type Tier int

const (
	Low Tier = iota
	Medium
	High
)

// Tier boundaries on the 0-100 score.
const (
	MediumFrom = 35
	HighFrom   = 65
)

// TierForScore maps a score to its tier: <35 low, 35..64 medium, ≥65 high.
func TierForScore(score int) Tier {
	switch {
	case score < MediumFrom:
		return Low
	case score < HighFrom:
		return Medium
	default:
		return High
	}
}

func (t Tier) String() string {
	switch t {
	case Low:
		return "low"
	case Medium:
		return "medium"
	case High:
		return "high"
	default:
		return "unknown"
	}
}

// Label returns the tier name in the given language.
func (t Tier) Label(lang factors.Language) string {
	if lang != factors.Turkish {
		return t.String()
	}
	switch t {
	case Low:
		return "düşük"
	case Medium:
		return "orta"
	case High:
		return "yüksek"
	default:
		return "bilinmiyor"
	}
}

// Result is the outcome of a single prediction. It is an immutable value.
type Result struct {
	// RiskScore is round(Probability·100).
	RiskScore int
	Tier      Tier
	// Confidence is min(95, 70 + number of trees).
	Confidence int
	// Factors are the finding texts in canonical feature order.
	Factors []string
	// Probability is the raw predicted probability of heart disease.
	Probability float64
	// Findings carry the band of each factor for the narration layer.
	Findings []factors.Factor
}

// ProbabilityText formats the probability with three decimals, e.g. "0.732".
func (r Result) ProbabilityText() string {
	return strconv.FormatFloat(r.Probability, 'f', 3, 64)
}

// RoundedProbability is the probability rounded to three decimals.
func (r Result) RoundedProbability() float64 {
	return math.Round(r.Probability*1000) / 1000
}

// Confidence values.
const (
	baseConfidence = 70
	maxConfidence  = 95
)

func confidenceFor(trees int) int {
	return min(maxConfidence, baseConfidence+trees)
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// roundHalfUp rounds x to the nearest integer, halves toward +∞.
func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}
