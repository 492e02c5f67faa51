package clinical

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/heartrisk/pkg/errors"
)

func completeSample() Sample {
	return NewSample([NumFeatures]float64{63, 1, 3, 145, 233, 1, 0, 150, 0, 2.3, 0, 0, 1})
}

func TestFeatureNames(t *testing.T) {
	want := []string{"age", "sex", "cp", "trestbps", "chol", "fbs", "restecg",
		"thalach", "exang", "oldpeak", "slope", "ca", "thal"}
	assert.Equal(t, want, Names())

	for i, name := range want {
		f, err := ParseFeature(name)
		require.NoError(t, err)
		assert.Equal(t, Feature(i), f)
		assert.Equal(t, name, f.String())
	}

	_, err := ParseFeature("bmi")
	var valErr *errors.ValidationError
	assert.True(t, errors.As(err, &valErr))
	assert.Equal(t, "unknown", Feature(42).String())
	assert.Len(t, Features(), NumFeatures)
}

func TestSample_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(s *Sample)
		wantFeature string
	}{
		{name: "complete", mutate: func(s *Sample) {}},
		{name: "missing thal", mutate: func(s *Sample) { s.Unset(Thal) }, wantFeature: "thal"},
		{name: "first missing wins", mutate: func(s *Sample) { s.Unset(Slope); s.Unset(Sex) }, wantFeature: "sex"},
		{name: "nan chol", mutate: func(s *Sample) { s.Set(Cholesterol, math.NaN()) }, wantFeature: "chol"},
		{name: "inf age", mutate: func(s *Sample) { s.Set(Age, math.Inf(1)) }, wantFeature: "age"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := completeSample()
			tt.mutate(&s)
			err := s.Validate("Predict")
			if tt.wantFeature == "" {
				assert.NoError(t, err)
				return
			}
			var sampleErr *errors.InvalidSampleError
			require.True(t, errors.As(err, &sampleErr), "got %v", err)
			assert.Equal(t, tt.wantFeature, sampleErr.Feature)
			assert.Equal(t, "Predict", sampleErr.Op)
		})
	}
}

func TestSample_Accessors(t *testing.T) {
	var s Sample
	assert.Len(t, s.Missing(), NumFeatures)

	s.Set(Cholesterol, 240)
	v, ok := s.Get(Cholesterol)
	assert.True(t, ok)
	assert.Equal(t, 240.0, v)
	assert.True(t, s.Has(Cholesterol))
	assert.False(t, s.Has(Age))

	_, ok = s.Target()
	assert.False(t, ok)
	s.SetTarget(1)
	tgt, ok := s.Target()
	assert.True(t, ok)
	assert.Equal(t, 1.0, tgt)
}

func TestDataset_CheckTrainable(t *testing.T) {
	labelled := func(target float64) Sample {
		s := completeSample()
		s.SetTarget(target)
		return s
	}

	t.Run("empty", func(t *testing.T) {
		err := Dataset{}.CheckTrainable("Train")
		var tdErr *errors.TrainingDataError
		require.True(t, errors.As(err, &tdErr))
		var empty *errors.EmptyDatasetError
		assert.True(t, errors.As(err, &empty))
	})

	t.Run("missing target", func(t *testing.T) {
		err := Dataset{labelled(1), completeSample()}.CheckTrainable("Train")
		var tdErr *errors.TrainingDataError
		require.True(t, errors.As(err, &tdErr))
		assert.Equal(t, 1, tdErr.Row)
		assert.Contains(t, err.Error(), "target is missing")
	})

	t.Run("non-binary target", func(t *testing.T) {
		err := Dataset{labelled(0), labelled(2)}.CheckTrainable("Train")
		assert.Contains(t, err.Error(), "at row 1: target must be 0 or 1")
	})

	t.Run("missing feature", func(t *testing.T) {
		s := labelled(1)
		s.Unset(MajorVessels)
		err := Dataset{s}.CheckTrainable("Train")
		var sampleErr *errors.InvalidSampleError
		require.True(t, errors.As(err, &sampleErr))
		assert.Equal(t, "ca", sampleErr.Feature)
	})

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, Dataset{labelled(0), labelled(1)}.CheckTrainable("Train"))
	})
}

func TestLoadCSVFile(t *testing.T) {
	ds, err := LoadCSVFile("testdata/heart.csv")
	require.NoError(t, err)
	require.Len(t, ds, 20)
	require.NoError(t, ds.CheckTrainable("Train"))

	first := ds[0]
	assert.Equal(t, 63.0, first.Value(Age))
	assert.Equal(t, 2.3, first.Value(STDepression))
	tgt, _ := first.Target()
	assert.Equal(t, 1.0, tgt)

	targets := ds.Targets()
	assert.Equal(t, 0.0, targets[19])

	values, present := ds.Column(Age)
	assert.Equal(t, 37.0, values[1])
	assert.True(t, present[1])
}

func TestLoadCSV_AbsentCellsAndErrors(t *testing.T) {
	header := "age,sex,cp,trestbps,chol,fbs,restecg,thalach,exang,oldpeak,slope,ca,thal,target\n"

	ds, err := LoadCSV(strings.NewReader(header + "63,1,3,145,233,1,0,150,0,2.3,0,?,,1\n"))
	require.NoError(t, err)
	require.Len(t, ds, 1)
	assert.Equal(t, []Feature{MajorVessels, Thal}, ds[0].Missing())

	ds, err = LoadCSV(strings.NewReader(header + "63,1,3,145,233,1,0,150,0,2.3,0,0,1,\n"))
	require.NoError(t, err)
	_, ok := ds[0].Target()
	assert.False(t, ok, "empty target cell means unlabelled")

	_, err = LoadCSV(strings.NewReader(header + "63,1,3,145,high,1,0,150,0,2.3,0,0,1,1\n"))
	var sampleErr *errors.InvalidSampleError
	require.True(t, errors.As(err, &sampleErr))
	assert.Equal(t, "chol", sampleErr.Feature)
	assert.Contains(t, err.Error(), "row 0")

	_, err = LoadCSVFile("testdata/does-not-exist.csv")
	assert.Error(t, err)
}

func TestParseSampleJSON(t *testing.T) {
	full := `{"age":63,"sex":1,"cp":3,"trestbps":145,"chol":233,"fbs":1,"restecg":0,"thalach":150,"exang":0,"oldpeak":2.3,"slope":0,"ca":0,"thal":1`

	s, err := ParseSampleJSON([]byte(full + "}"))
	require.NoError(t, err)
	assert.Equal(t, completeSample(), s)

	s, err = ParseSampleJSON([]byte(full + `,"target":1}`))
	require.NoError(t, err)
	tgt, ok := s.Target()
	assert.True(t, ok)
	assert.Equal(t, 1.0, tgt)

	tests := []struct {
		name  string
		doc   string
		check func(t *testing.T, err error)
	}{
		{
			name: "missing feature",
			doc:  `{"age":63}`,
			check: func(t *testing.T, err error) {
				var sampleErr *errors.InvalidSampleError
				require.True(t, errors.As(err, &sampleErr))
				assert.Equal(t, "sex", sampleErr.Feature)
			},
		},
		{
			name: "string value",
			doc:  strings.Replace(full, `"chol":233`, `"chol":"233"`, 1) + "}",
			check: func(t *testing.T, err error) {
				var sampleErr *errors.InvalidSampleError
				require.True(t, errors.As(err, &sampleErr))
				assert.Equal(t, "chol", sampleErr.Feature)
			},
		},
		{
			name: "schema rejects sex=2",
			doc:  strings.Replace(full, `"sex":1`, `"sex":2`, 1) + "}",
			check: func(t *testing.T, err error) {
				var valErr *errors.ValidationError
				assert.True(t, errors.As(err, &valErr), "got %v", err)
			},
		},
		{
			name: "schema rejects target=3",
			doc:  full + `,"target":3}`,
			check: func(t *testing.T, err error) {
				var valErr *errors.ValidationError
				assert.True(t, errors.As(err, &valErr), "got %v", err)
			},
		},
		{
			name: "array document",
			doc:  `[1,2,3]`,
			check: func(t *testing.T, err error) {
				var valErr *errors.ValidationError
				assert.True(t, errors.As(err, &valErr))
			},
		},
		{
			name: "malformed json",
			doc:  `{"age":`,
			check: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "decode sample json")
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSampleJSON([]byte(tt.doc))
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestSampleFromMap_NumberKinds(t *testing.T) {
	m := map[string]any{}
	for i, name := range Names() {
		if i%2 == 0 {
			m[name] = i
		} else {
			m[name] = float32(i)
		}
	}
	s, err := SampleFromMap(m)
	require.NoError(t, err)
	assert.Equal(t, 12.0, s.Value(Thal))
	assert.Equal(t, 1.0, s.Value(Sex))
}
