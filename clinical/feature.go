// Package clinical defines the fixed 13-feature clinical schema used for
// heart-disease risk assessment, together with the sample and dataset types
// and their CSV and JSON loaders.
package clinical

import (
	"github.com/YuminosukeSato/heartrisk/pkg/errors"
)

// Feature identifies one of the 13 clinical measurements. The numeric order
// of the constants is the canonical order used everywhere: split enumeration,
// factor annotation, CSV columns.
type Feature int

const (
	Age               Feature = iota // age in years
	Sex                              // 1 = male, 0 = female
	ChestPain                        // cp, chest pain type 0..3
	RestingBP                        // trestbps, resting blood pressure in mmHg
	Cholesterol                      // chol, serum cholesterol in mg/dL
	FastingBloodSugar                // fbs, 1 when fasting blood sugar > 120 mg/dL
	RestECG                          // restecg, resting ECG result 0..2
	MaxHeartRate                     // thalach, maximum heart rate achieved
	ExerciseAngina                   // exang, exercise induced angina
	STDepression                     // oldpeak, ST depression induced by exercise
	Slope                            // slope of the peak exercise ST segment
	MajorVessels                     // ca, number of major vessels colored by fluoroscopy
	Thal                             // thalassemia
)

// NumFeatures is the size of the clinical schema.
const NumFeatures = 13

var featureNames = [NumFeatures]string{
	"age", "sex", "cp", "trestbps", "chol", "fbs", "restecg",
	"thalach", "exang", "oldpeak", "slope", "ca", "thal",
}

// String returns the wire name of the feature as it appears in Heart.csv.
func (f Feature) String() string {
	if !f.Valid() {
		return "unknown"
	}
	return featureNames[f]
}

// Valid reports whether f is one of the 13 schema features.
func (f Feature) Valid() bool {
	return f >= 0 && int(f) < NumFeatures
}

// ParseFeature maps a wire name back to its Feature.
func ParseFeature(name string) (Feature, error) {
	for i, n := range featureNames {
		if n == name {
			return Feature(i), nil
		}
	}
	return -1, errors.NewValidationError("feature", "unknown clinical feature", name)
}

// Features returns all features in canonical order.
func Features() []Feature {
	out := make([]Feature, NumFeatures)
	for i := range out {
		out[i] = Feature(i)
	}
	return out
}

// Names returns the wire names in canonical order.
func Names() []string {
	out := make([]string, NumFeatures)
	copy(out, featureNames[:])
	return out
}
