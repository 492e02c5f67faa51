package tree

import (
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/heartrisk/clinical"
)

// Split describes the best partition found for a node. The row and residual
// slices are freshly allocated and owned by the caller.
type Split struct {
	Feature   clinical.Feature
	Threshold float64
	Gain      float64

	LeftRows       []int
	RightRows      []int
	LeftResiduals  []float64
	RightResiduals []float64
}

// mse is the population variance of values around their mean.
func mse(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.PopVariance(values, nil)
}

// BestSplit searches every feature in canonical order and, within a feature,
// every distinct value of the partition in first-occurrence order. rows index
// into data; residuals[i] belongs to rows[i].
//
// Gain is MSE(all) - (|L|/|P|·MSE(L) + |R|/|P|·MSE(R)). Only a strictly greater
// gain replaces the current best, so ties keep the earliest candidate.
// Splits leaving one side empty are skipped. The second result is false when
// no split has a positive gain.
func BestSplit(data clinical.Dataset, rows []int, residuals []float64) (*Split, bool) {
	n := len(rows)
	if n < 2 {
		return nil, false
	}

	parentMSE := mse(residuals)
	total := float64(n)

	var (
		best     *Split
		bestGain float64
		left     = make([]float64, 0, n)
		right    = make([]float64, 0, n)
	)

	for _, f := range clinical.Features() {
		seen := make(map[float64]struct{}, n)
		for _, r := range rows {
			threshold := data[r].Value(f)
			if _, dup := seen[threshold]; dup {
				continue
			}
			seen[threshold] = struct{}{}

			left, right = left[:0], right[:0]
			for i, rr := range rows {
				if data[rr].Value(f) <= threshold {
					left = append(left, residuals[i])
				} else {
					right = append(right, residuals[i])
				}
			}
			if len(left) == 0 || len(right) == 0 {
				continue
			}

			gain := parentMSE - (float64(len(left))/total*mse(left) +
				float64(len(right))/total*mse(right))
			if best == nil || gain > bestGain {
				best = &Split{Feature: f, Threshold: threshold}
				bestGain = gain
			}
		}
	}

	if best == nil || bestGain <= 0 {
		return nil, false
	}
	best.Gain = bestGain
	partition(data, rows, residuals, best)
	return best, true
}

// partition fills the row and residual slices of s.
func partition(data clinical.Dataset, rows []int, residuals []float64, s *Split) {
	for i, r := range rows {
		if data[r].Value(s.Feature) <= s.Threshold {
			s.LeftRows = append(s.LeftRows, r)
			s.LeftResiduals = append(s.LeftResiduals, residuals[i])
		} else {
			s.RightRows = append(s.RightRows, r)
			s.RightResiduals = append(s.RightResiduals, residuals[i])
		}
	}
}
