// Package factors turns the raw clinical measurements of a sample into
// human-readable findings using fixed clinical cut-points. It is independent
// of any trained model.
package factors

import (
	"fmt"
	"math"
	"strconv"

	"github.com/YuminosukeSato/heartrisk/clinical"
)

// Band classifies how a finding bears on risk.
type Band int

const (
	Favorable Band = iota
	Neutral
	Caution
	Risk
)

func (b Band) String() string {
	switch b {
	case Favorable:
		return "favorable"
	case Neutral:
		return "neutral"
	case Caution:
		return "caution"
	case Risk:
		return "risk"
	default:
		return "unknown"
	}
}

// Factor is one finding: the measurement it is about, its band and the text.
type Factor struct {
	Feature clinical.Feature
	Value   float64
	Band    Band
	Text    string
}

// Annotator produces one finding per clinical feature in canonical order.
// It holds no mutable state and is safe for concurrent use.
type Annotator struct {
	lang Language
	book *phrasebook
}

// NewAnnotator returns an annotator for the given phrasebook language.
func NewAnnotator(lang Language) *Annotator {
	return &Annotator{lang: lang, book: bookFor(lang)}
}

// Language returns the phrasebook language.
func (a *Annotator) Language() Language {
	return a.lang
}

// Explain returns exactly 13 findings, one per feature in canonical order.
// A missing or non-finite feature yields InvalidSampleError.
func (a *Annotator) Explain(s clinical.Sample) ([]Factor, error) {
	if err := s.Validate("Annotate"); err != nil {
		return nil, err
	}
	out := make([]Factor, 0, clinical.NumFeatures)
	for _, f := range clinical.Features() {
		v := s.Value(f)
		text, band := a.describe(f, v)
		out = append(out, Factor{Feature: f, Value: v, Band: band, Text: text})
	}
	return out, nil
}

// Annotate returns the finding texts of Explain.
func (a *Annotator) Annotate(s clinical.Sample) ([]string, error) {
	found, err := a.Explain(s)
	if err != nil {
		return nil, err
	}
	return Texts(found), nil
}

var defaultAnnotator = NewAnnotator(English)

// Annotate runs the English annotator.
func Annotate(s clinical.Sample) ([]string, error) {
	return defaultAnnotator.Annotate(s)
}

// Texts extracts the text of each finding, keeping order.
func Texts(found []Factor) []string {
	out := make([]string, len(found))
	for i, f := range found {
		out[i] = f.Text
	}
	return out
}

// Filter keeps the findings whose band is one of bands, in order.
func Filter(found []Factor, bands ...Band) []Factor {
	var out []Factor
	for _, f := range found {
		for _, b := range bands {
			if f.Band == b {
				out = append(out, f)
				break
			}
		}
	}
	return out
}

// num formats a measurement the way it was entered: no trailing zeros.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// label returns table[idx] when v is an integer index into table.
func label(table []string, v float64, offset int) (string, bool) {
	if v != math.Trunc(v) {
		return "", false
	}
	i := int(v) - offset
	if i < 0 || i >= len(table) {
		return "", false
	}
	return table[i], true
}

func labelOrNum(table []string, v float64, offset int) string {
	if l, ok := label(table, v, offset); ok {
		return l
	}
	return num(v)
}

func (a *Annotator) describe(f clinical.Feature, v float64) (string, Band) {
	pb := a.book
	if pb == nil {
		pb = bookFor(a.lang)
	}
	switch f {
	case clinical.Age:
		switch {
		case v >= 60:
			return fmt.Sprintf(pb.ageHigh, num(v)), Risk
		case v >= 45:
			return fmt.Sprintf(pb.ageMiddle, num(v)), Caution
		default:
			return fmt.Sprintf(pb.ageYoung, num(v)), Favorable
		}

	case clinical.Sex:
		if v == 1 {
			return pb.male, Caution
		}
		return pb.female, Favorable

	case clinical.ChestPain:
		cp := labelOrNum(pb.cpLabels[:], v, 0)
		switch {
		case v >= 3:
			return fmt.Sprintf(pb.cpHigh, cp), Risk
		case v == 2:
			return fmt.Sprintf(pb.cpMid, cp), Caution
		default:
			return fmt.Sprintf(pb.cpLow, cp), Favorable
		}

	case clinical.RestingBP:
		switch {
		case v >= 140:
			return fmt.Sprintf(pb.bpHigh, num(v)), Risk
		case v >= 120:
			return fmt.Sprintf(pb.bpBorder, num(v)), Caution
		default:
			return fmt.Sprintf(pb.bpNormal, num(v)), Favorable
		}

	case clinical.Cholesterol:
		switch {
		case v >= 240:
			return fmt.Sprintf(pb.cholHigh, num(v)), Risk
		case v >= 200:
			return fmt.Sprintf(pb.cholBorder, num(v)), Caution
		default:
			return fmt.Sprintf(pb.cholNormal, num(v)), Favorable
		}

	case clinical.FastingBloodSugar:
		if v == 1 {
			return pb.fbsHigh, Risk
		}
		return pb.fbsNormal, Favorable

	case clinical.RestECG:
		switch v {
		case 2:
			return pb.ecgAbnormal, Risk
		case 1:
			return pb.ecgBorder, Caution
		default:
			return pb.ecgNormal, Favorable
		}

	case clinical.MaxHeartRate:
		switch {
		case v < 120:
			return fmt.Sprintf(pb.hrLow, num(v)), Risk
		case v < 150:
			return fmt.Sprintf(pb.hrMid, num(v)), Neutral
		default:
			return fmt.Sprintf(pb.hrGood, num(v)), Favorable
		}

	case clinical.ExerciseAngina:
		if v == 1 {
			return pb.anginaYes, Risk
		}
		return pb.anginaNo, Favorable

	case clinical.STDepression:
		switch {
		case v >= 2:
			return fmt.Sprintf(pb.stHigh, num(v)), Risk
		case v >= 1:
			return fmt.Sprintf(pb.stMid, num(v)), Caution
		default:
			return fmt.Sprintf(pb.stNormal, num(v)), Favorable
		}

	case clinical.Slope:
		band := Neutral
		switch v {
		case 1:
			band = Favorable
		case 3:
			band = Risk
		}
		return fmt.Sprintf(pb.slope, labelOrNum(pb.slopeLabels[:], v, 1)), band

	case clinical.MajorVessels:
		switch {
		case v >= 2:
			return fmt.Sprintf(pb.caHigh, num(v)), Risk
		case v == 1:
			return pb.caOne, Caution
		default:
			return pb.caNone, Favorable
		}

	case clinical.Thal:
		thal := labelOrNum(pb.thalLabels[:], v, 1)
		switch v {
		case 2:
			return fmt.Sprintf(pb.thalRisk, thal), Risk
		case 1:
			return fmt.Sprintf(pb.thal, thal), Favorable
		default:
			return fmt.Sprintf(pb.thal, thal), Neutral
		}
	}
	return fmt.Sprintf("%s: %s", f, num(v)), Neutral
}
