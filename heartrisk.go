package heartrisk

import (
	"sync/atomic"

	"github.com/YuminosukeSato/heartrisk/boosting"
	"github.com/YuminosukeSato/heartrisk/clinical"
	"github.com/YuminosukeSato/heartrisk/factors"
	"github.com/YuminosukeSato/heartrisk/pkg/errors"
)

// Version is the library and CLI version.
const Version = "0.3.0"

// Train fits a new ensemble on ds. See boosting.Trainer.Fit.
func Train(ds clinical.Dataset, opts ...boosting.Option) (*boosting.Ensemble, error) {
	return boosting.Train(ds, opts...)
}

// Predict scores sample with ens. A nil ensemble is reported as untrained.
func Predict(ens *boosting.Ensemble, sample clinical.Sample) (boosting.Result, error) {
	if ens == nil {
		return boosting.Result{}, errors.NewModelNotTrainedError("Ensemble", "Predict")
	}
	return ens.Predict(sample)
}

// AnnotateFactors returns the 13 English finding texts for sample without
// any model.
func AnnotateFactors(sample clinical.Sample) ([]string, error) {
	return factors.Annotate(sample)
}

// Model holds the ensemble currently used for serving. Retraining builds a
// new ensemble and installs it with Swap; in-flight predictions keep the
// ensemble they started with. The zero value holds no ensemble.
type Model struct {
	current atomic.Pointer[boosting.Ensemble]
}

// NewModel returns a Model serving ens.
func NewModel(ens *boosting.Ensemble) *Model {
	m := &Model{}
	m.current.Store(ens)
	return m
}

// Current returns the ensemble in use, or nil.
func (m *Model) Current() *boosting.Ensemble {
	return m.current.Load()
}

// Swap installs ens and returns the previous ensemble.
func (m *Model) Swap(ens *boosting.Ensemble) *boosting.Ensemble {
	return m.current.Swap(ens)
}

// Retrain trains on ds and installs the result. On error the current
// ensemble stays in place.
func (m *Model) Retrain(ds clinical.Dataset, opts ...boosting.Option) (*boosting.Ensemble, error) {
	ens, err := Train(ds, opts...)
	if err != nil {
		return nil, err
	}
	m.current.Store(ens)
	return ens, nil
}

// Predict scores sample with the current ensemble.
func (m *Model) Predict(sample clinical.Sample) (boosting.Result, error) {
	return Predict(m.Current(), sample)
}
