package boosting

import (
	"context"

	"github.com/YuminosukeSato/heartrisk/clinical"
	"github.com/YuminosukeSato/heartrisk/core/model"
	"github.com/YuminosukeSato/heartrisk/core/parallel"
	"github.com/YuminosukeSato/heartrisk/factors"
	"github.com/YuminosukeSato/heartrisk/pkg/errors"
	"github.com/YuminosukeSato/heartrisk/pkg/log"
	"github.com/YuminosukeSato/heartrisk/preprocessing"
	"github.com/YuminosukeSato/heartrisk/tree"
)

// ImportanceType selects how FeatureImportance aggregates splits.
type ImportanceType int

const (
	// SplitImportance counts how often each feature is used in a split.
	SplitImportance ImportanceType = iota
	// GainImportance sums the MSE reduction of each feature's splits.
	GainImportance
)

// Ensemble is a trained, immutable sequence of regression trees together
// with the feature statistics they were fitted against. A trained Ensemble
// is safe for concurrent use. The zero value is untrained.
type Ensemble struct {
	model.Base

	// ID uniquely identifies this training run.
	ID string

	trees        []*tree.Node
	learningRate float64
	stats        *preprocessing.FeatureStats
	opts         Options
	annotator    *factors.Annotator
	logger       log.Logger
}

var _ model.Classifier = (*Ensemble)(nil)

func (e *Ensemble) ready(method string) error {
	if !e.IsTrained() || len(e.trees) == 0 {
		return errors.NewModelNotTrainedError("Ensemble", method)
	}
	return nil
}

// Logit returns Σ learningRate·tree(s). The initial training logit is not
// part of the sum.
func (e *Ensemble) Logit(s clinical.Sample) (float64, error) {
	if err := e.ready("Logit"); err != nil {
		return 0, err
	}
	if err := s.Validate("Predict"); err != nil {
		return 0, err
	}
	return e.logit(s)
}

func (e *Ensemble) logit(s clinical.Sample) (float64, error) {
	var sum float64
	for _, t := range e.trees {
		sum += e.learningRate * tree.Eval(t, s, e.stats)
	}
	if err := errors.CheckScalar("predict_logit", sum, len(e.trees)); err != nil {
		return 0, err
	}
	return sum, nil
}

// PredictProba returns the probability of heart disease for s.
func (e *Ensemble) PredictProba(s clinical.Sample) (float64, error) {
	if err := e.ready("PredictProba"); err != nil {
		return 0, err
	}
	if err := s.Validate("Predict"); err != nil {
		return 0, err
	}
	f, err := e.logit(s)
	if err != nil {
		return 0, err
	}
	return sigmoid(f), nil
}

// Predict scores s and annotates its factors.
//
// The risk score is round(p·100), the tier follows TierForScore and the
// confidence is min(95, 70+number of trees). Untrained ensembles return a
// ModelNotTrainedError; samples missing a feature return an
// InvalidSampleError. Predict never mutates the ensemble.
func (e *Ensemble) Predict(s clinical.Sample) (Result, error) {
	if err := e.ready("Predict"); err != nil {
		return Result{}, err
	}
	p, err := e.PredictProba(s)
	if err != nil {
		return Result{}, err
	}

	annotator := e.annotator
	if annotator == nil {
		annotator = factors.NewAnnotator(factors.English)
	}
	findings, err := annotator.Explain(s)
	if err != nil {
		return Result{}, err
	}

	score := int(roundHalfUp(p * 100))
	res := Result{
		RiskScore:   score,
		Tier:        TierForScore(score),
		Confidence:  confidenceFor(len(e.trees)),
		Factors:     factors.Texts(findings),
		Probability: p,
		Findings:    findings,
	}

	if e.logger != nil && e.logger.Enabled(context.Background(), log.LevelDebug) {
		e.logger.Debug("Prediction",
			log.OperationKey, log.OperationPredict,
			log.ScoreKey, res.RiskScore,
			log.TierKey, res.Tier.String(),
			log.ProbabilityKey, res.Probability,
		)
	}
	return res, nil
}

// PredictBatch scores every sample concurrently. Results keep the order of
// samples. The first failing sample aborts the batch and its error is
// returned wrapped with its index.
func (e *Ensemble) PredictBatch(ctx context.Context, samples []clinical.Sample) ([]Result, error) {
	if err := e.ready("PredictBatch"); err != nil {
		return nil, err
	}
	out := make([]Result, len(samples))
	err := parallel.ForEach(ctx, len(samples), 0, func(_ context.Context, i int) error {
		res, err := e.Predict(samples[i])
		if err != nil {
			return errors.Wrapf(err, "sample %d", i)
		}
		out[i] = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// PredictProbaBatch returns the probability for every sample of ds.
func (e *Ensemble) PredictProbaBatch(ctx context.Context, ds clinical.Dataset) ([]float64, error) {
	if err := e.ready("PredictProbaBatch"); err != nil {
		return nil, err
	}
	out := make([]float64, len(ds))
	err := parallel.ForEach(ctx, len(ds), 0, func(_ context.Context, i int) error {
		p, err := e.PredictProba(ds[i])
		if err != nil {
			return errors.Wrapf(err, "sample %d", i)
		}
		out[i] = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// FeatureImportance aggregates the ensemble's splits per feature, indexed in
// canonical feature order.
func (e *Ensemble) FeatureImportance(kind ImportanceType) []float64 {
	imp := make([]float64, clinical.NumFeatures)
	for _, root := range e.trees {
		tree.Walk(root, func(n *tree.Node) {
			if n.Kind != tree.SplitNode {
				return
			}
			if kind == GainImportance {
				imp[n.Feature] += n.Gain
			} else {
				imp[n.Feature]++
			}
		})
	}
	return imp
}

// NumTrees returns the number of fitted trees.
func (e *Ensemble) NumTrees() int {
	return len(e.trees)
}

// Trees returns the fitted trees in boosting order. The nodes are shared and
// must not be modified.
func (e *Ensemble) Trees() []*tree.Node {
	return append([]*tree.Node(nil), e.trees...)
}

// LearningRate returns the shrinkage applied to every tree.
func (e *Ensemble) LearningRate() float64 {
	return e.learningRate
}

// Stats returns a copy of the feature statistics.
func (e *Ensemble) Stats() preprocessing.FeatureStats {
	if e.stats == nil {
		return preprocessing.FeatureStats{}
	}
	return *e.stats
}

// Options returns the hyperparameters the ensemble was trained with.
func (e *Ensemble) Options() Options {
	return e.opts
}
