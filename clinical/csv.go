package clinical

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/YuminosukeSato/heartrisk/pkg/errors"
)

// csvRow mirrors the Heart.csv layout. Cells are kept as strings so that an
// empty cell can be told apart from a zero.
type csvRow struct {
	Age      string `csv:"age"`
	Sex      string `csv:"sex"`
	CP       string `csv:"cp"`
	Trestbps string `csv:"trestbps"`
	Chol     string `csv:"chol"`
	FBS      string `csv:"fbs"`
	RestECG  string `csv:"restecg"`
	Thalach  string `csv:"thalach"`
	Exang    string `csv:"exang"`
	Oldpeak  string `csv:"oldpeak"`
	Slope    string `csv:"slope"`
	CA       string `csv:"ca"`
	Thal     string `csv:"thal"`
	Target   string `csv:"target"`
}

func (r *csvRow) cells() [NumFeatures]string {
	return [NumFeatures]string{
		r.Age, r.Sex, r.CP, r.Trestbps, r.Chol, r.FBS, r.RestECG,
		r.Thalach, r.Exang, r.Oldpeak, r.Slope, r.CA, r.Thal,
	}
}

// absentCell reports whether a CSV cell denotes a missing measurement.
// The UCI release of the data marks unknown ca/thal values with "?".
func absentCell(cell string) bool {
	switch cell {
	case "", "?", "NA", "na", "NaN":
		return true
	}
	return false
}

// LoadCSV reads samples in the Heart.csv layout (header row with the 13
// feature names and an optional target column). Missing cells become absent
// features; non-numeric cells are an error.
func LoadCSV(r io.Reader) (Dataset, error) {
	var rows []*csvRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, errors.Wrap(err, "heartrisk: decode csv")
	}
	return rowsToDataset(rows)
}

// LoadCSVFile opens path and reads it with LoadCSV.
func LoadCSVFile(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "heartrisk: open %s", path)
	}
	defer f.Close()

	var rows []*csvRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, errors.Wrapf(err, "heartrisk: decode %s", path)
	}
	return rowsToDataset(rows)
}

func rowsToDataset(rows []*csvRow) (Dataset, error) {
	ds := make(Dataset, 0, len(rows))
	for i, row := range rows {
		var s Sample
		for j, cell := range row.cells() {
			cell = strings.TrimSpace(cell)
			if absentCell(cell) {
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, errors.Wrapf(
					errors.NewInvalidSampleError("LoadCSV", Feature(j).String(), "is not numeric", cell),
					"row %d", i)
			}
			s.Set(Feature(j), v)
		}
		if target := strings.TrimSpace(row.Target); !absentCell(target) {
			t, err := strconv.ParseFloat(target, 64)
			if err != nil {
				return nil, errors.Wrapf(
					errors.NewInvalidSampleError("LoadCSV", "target", "is not numeric", target),
					"row %d", i)
			}
			s.SetTarget(t)
		}
		ds = append(ds, s)
	}
	return ds, nil
}
