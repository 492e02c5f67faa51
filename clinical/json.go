package clinical

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/YuminosukeSato/heartrisk/pkg/errors"
)

const sampleSchemaURL = "schema://heartrisk/sample.json"

// sampleSchema constrains the coded clinical fields. Presence and numeric
// type are checked first by SampleFromMap so that those failures name the
// offending feature.
var sampleSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"age":      map[string]any{"type": "number", "minimum": 0},
		"sex":      map[string]any{"enum": []any{0, 1}},
		"cp":       map[string]any{"type": "number", "minimum": 0},
		"trestbps": map[string]any{"type": "number", "minimum": 0},
		"chol":     map[string]any{"type": "number", "minimum": 0},
		"fbs":      map[string]any{"enum": []any{0, 1}},
		"restecg":  map[string]any{"type": "number", "minimum": 0},
		"thalach":  map[string]any{"type": "number", "minimum": 0},
		"exang":    map[string]any{"enum": []any{0, 1}},
		"oldpeak":  map[string]any{"type": "number"},
		"slope":    map[string]any{"type": "number", "minimum": 0},
		"ca":       map[string]any{"type": "number", "minimum": 0},
		"thal":     map[string]any{"type": "number", "minimum": 0},
		"target":   map[string]any{"enum": []any{0, 1}},
	},
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler expects a decoded JSON value, not Go literals.
		defBytes, err := json.Marshal(sampleSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var def any
		if err := json.Unmarshal(defBytes, &def); err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(sampleSchemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(sampleSchemaURL)
	})
	return compiledSchema, compileErr
}

// ParseSampleJSON decodes a single sample object such as
//
//	{"age": 63, "sex": 1, "cp": 3, ..., "thal": 1}
//
// All 13 features are required; "target" is optional.
func ParseSampleJSON(data []byte) (Sample, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return Sample{}, errors.Wrap(err, "heartrisk: decode sample json")
	}
	obj, ok := doc.(map[string]any)
	if !ok {
		return Sample{}, errors.NewValidationError("sample", "must be a JSON object", fmt.Sprintf("%T", doc))
	}

	s, err := SampleFromMap(obj)
	if err != nil {
		return Sample{}, err
	}

	sch, err := schema()
	if err != nil {
		return Sample{}, errors.Wrap(err, "heartrisk: compile sample schema")
	}
	if err := sch.Validate(doc); err != nil {
		return Sample{}, errors.NewValidationError("sample", err.Error(), nil)
	}
	return s, nil
}

// SampleFromMap converts a decoded JSON object (or any name-to-number map)
// into a Sample. Every feature must be present and numeric.
func SampleFromMap(m map[string]any) (Sample, error) {
	var s Sample
	for i, name := range featureNames {
		raw, ok := m[name]
		if !ok || raw == nil {
			return Sample{}, errors.NewInvalidSampleError("SampleFromMap", name, "is missing", nil)
		}
		v, ok := toFloat(raw)
		if !ok {
			return Sample{}, errors.NewInvalidSampleError("SampleFromMap", name, "is not numeric", raw)
		}
		s.Set(Feature(i), v)
	}
	if raw, ok := m["target"]; ok && raw != nil {
		t, ok := toFloat(raw)
		if !ok {
			return Sample{}, errors.NewInvalidSampleError("SampleFromMap", "target", "is not numeric", raw)
		}
		s.SetTarget(t)
	}
	return s, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
