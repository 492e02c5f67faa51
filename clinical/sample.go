package clinical

import (
	"math"

	"github.com/YuminosukeSato/heartrisk/pkg/errors"
)

// Sample is one patient record: a value per clinical feature with a presence
// flag, and an optional binary target (1 = heart disease).
//
// The zero value is an empty sample with every feature absent.
type Sample struct {
	values    [NumFeatures]float64
	present   [NumFeatures]bool
	target    float64
	hasTarget bool
}

// NewSample builds a sample with every feature present, values given in
// canonical order.
func NewSample(values [NumFeatures]float64) Sample {
	var s Sample
	for i, v := range values {
		s.Set(Feature(i), v)
	}
	return s
}

// Set stores v for feature f and marks it present.
func (s *Sample) Set(f Feature, v float64) {
	s.values[f] = v
	s.present[f] = true
}

// Unset marks f as absent.
func (s *Sample) Unset(f Feature) {
	s.values[f] = 0
	s.present[f] = false
}

// Get returns the value of f and whether it is present.
func (s Sample) Get(f Feature) (float64, bool) {
	return s.values[f], s.present[f]
}

// Value returns the value of f, or 0 when absent. Callers that need to tell
// the two apart use Get; after Validate every feature is present.
func (s Sample) Value(f Feature) float64 {
	return s.values[f]
}

// Has reports whether f is present.
func (s Sample) Has(f Feature) bool {
	return s.present[f]
}

// SetTarget attaches the training label.
func (s *Sample) SetTarget(t float64) {
	s.target = t
	s.hasTarget = true
}

// Target returns the training label and whether one is attached.
func (s Sample) Target() (float64, bool) {
	return s.target, s.hasTarget
}

// Missing lists the absent features in canonical order.
func (s Sample) Missing() []Feature {
	var out []Feature
	for i, ok := range s.present {
		if !ok {
			out = append(out, Feature(i))
		}
	}
	return out
}

// Validate checks that all 13 features are present and finite. op names the
// calling operation in the returned InvalidSampleError.
func (s Sample) Validate(op string) error {
	for i := 0; i < NumFeatures; i++ {
		f := Feature(i)
		if !s.present[i] {
			return errors.NewInvalidSampleError(op, f.String(), "is missing", nil)
		}
		if math.IsNaN(s.values[i]) || math.IsInf(s.values[i], 0) {
			return errors.NewInvalidSampleError(op, f.String(), "is not finite", s.values[i])
		}
	}
	return nil
}

// Dataset is an ordered collection of samples.
type Dataset []Sample

// CheckTrainable verifies the training contract: at least one sample, every
// sample complete and labelled with 0 or 1. Violations are reported as
// TrainingDataError; the empty case wraps EmptyDatasetError.
func (d Dataset) CheckTrainable(op string) error {
	if len(d) == 0 {
		return errors.NewTrainingDataError(-1, "no samples", errors.NewEmptyDatasetError(op))
	}
	for i, s := range d {
		if err := s.Validate(op); err != nil {
			return errors.NewTrainingDataError(i, "incomplete sample", err)
		}
		t, ok := s.Target()
		if !ok {
			return errors.NewTrainingDataError(i, "target is missing", nil)
		}
		if t != 0 && t != 1 {
			return errors.NewTrainingDataError(i, "target must be 0 or 1", errors.Newf("got %v", t))
		}
	}
	return nil
}

// Targets returns the labels in dataset order. Absent labels read as 0.
func (d Dataset) Targets() []float64 {
	out := make([]float64, len(d))
	for i, s := range d {
		out[i], _ = s.Target()
	}
	return out
}

// Column returns the values of f in dataset order together with their
// presence flags.
func (d Dataset) Column(f Feature) ([]float64, []bool) {
	values := make([]float64, len(d))
	present := make([]bool, len(d))
	for i, s := range d {
		values[i], present[i] = s.Get(f)
	}
	return values, present
}
