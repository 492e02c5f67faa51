package main

import (
	"fmt"
	"os"

	"github.com/YuminosukeSato/heartrisk/clinical"
)

func readSample(path string) (clinical.Sample, error) {
	if path == "" {
		return clinical.Sample{}, fmt.Errorf("--sample is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return clinical.Sample{}, fmt.Errorf("reading sample: %w", err)
	}
	s, err := clinical.ParseSampleJSON(data)
	if err != nil {
		return clinical.Sample{}, fmt.Errorf("parsing sample %s: %w", path, err)
	}
	return s, nil
}
