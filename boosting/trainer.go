// Package boosting fits and evaluates the gradient-boosted tree ensemble that
// turns a clinical sample into a heart-disease risk score.
//
// Each round computes residuals t - sigmoid(F) against the running logits F,
// fits one regression tree to them and adds learningRate·tree to F. The
// ensemble's prediction is sigmoid(Σ learningRate·tree(x)).
package boosting

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/heartrisk/clinical"
	"github.com/YuminosukeSato/heartrisk/core/parallel"
	"github.com/YuminosukeSato/heartrisk/factors"
	"github.com/YuminosukeSato/heartrisk/metrics"
	"github.com/YuminosukeSato/heartrisk/pkg/errors"
	"github.com/YuminosukeSato/heartrisk/pkg/log"
	"github.com/YuminosukeSato/heartrisk/preprocessing"
	"github.com/YuminosukeSato/heartrisk/tree"
)

// Logit updates below this many samples run on the calling goroutine.
const parallelThreshold = 1000

// Trainer fits ensembles with a fixed set of hyperparameters.
type Trainer struct {
	opts      Options
	logger    log.Logger
	annotator *factors.Annotator
}

// NewTrainer returns a Trainer with DefaultOptions modified by opts.
func NewTrainer(opts ...Option) *Trainer {
	t := &Trainer{opts: DefaultOptions()}
	for _, opt := range opts {
		opt(t)
	}
	if t.logger == nil {
		t.logger = log.GetLoggerWithName("boosting")
	}
	if t.annotator == nil {
		t.annotator = factors.NewAnnotator(factors.English)
	}
	return t
}

// Options returns the trainer's hyperparameters.
func (t *Trainer) Options() Options {
	return t.opts
}

// Train is shorthand for NewTrainer(opts...).Fit(ds).
func Train(ds clinical.Dataset, opts ...Option) (*Ensemble, error) {
	return NewTrainer(opts...).Fit(ds)
}

// Fit trains a new ensemble on ds. Every sample must carry all 13 features
// and a binary target; otherwise a TrainingDataError is returned and nothing
// is trained. Fit is deterministic: the same data and options always yield
// the same trees.
func (t *Trainer) Fit(ds clinical.Dataset) (*Ensemble, error) {
	start := time.Now()
	if err := t.opts.Validate(); err != nil {
		return nil, err
	}
	if err := ds.CheckTrainable("Train"); err != nil {
		return nil, err
	}

	stats, err := preprocessing.FitStats(ds)
	if err != nil {
		return nil, errors.Wrap(err, "fit feature statistics")
	}

	ens := &Ensemble{
		ID:           uuid.NewString(),
		trees:        make([]*tree.Node, 0, t.opts.Rounds),
		learningRate: t.opts.LearningRate,
		stats:        stats,
		opts:         t.opts,
		annotator:    t.annotator,
	}
	ens.logger = t.logger.With(log.ModelNameKey, "Ensemble", log.ModelIDKey, ens.ID)
	logger := ens.logger.With(log.OperationKey, log.OperationTrain)

	n := len(ds)
	logger.Info("Training started",
		log.SamplesKey, n,
		log.RoundsKey, t.opts.Rounds,
		log.LearningRateKey, t.opts.LearningRate,
		log.MaxDepthKey, t.opts.MaxDepth,
	)

	rows := make([]int, n)
	logits := make([]float64, n)
	for i := range rows {
		rows[i] = i
		logits[i] = t.opts.InitialLogit
	}
	targets := ds.Targets()
	residuals := make([]float64, n)
	outputs := make([]float64, n)
	builder := &tree.Builder{MaxDepth: t.opts.MaxDepth, MinPartition: t.opts.MinPartitionSize}
	debug := logger.Enabled(context.Background(), log.LevelDebug)

	for round := 0; round < t.opts.Rounds; round++ {
		for i := range residuals {
			residuals[i] = targets[i] - sigmoid(logits[i])
		}
		if err := errors.CheckNumericalStability("residuals", residuals, round); err != nil {
			return nil, err
		}

		root := builder.Build(ds, rows, residuals, 0)
		ens.trees = append(ens.trees, root)

		parallel.ParallelizeWithThreshold(n, parallelThreshold, func(s, e int) {
			for i := s; i < e; i++ {
				outputs[i] = tree.Eval(root, ds[i], stats)
			}
		})
		floats.AddScaled(logits, t.opts.LearningRate, outputs)

		if debug {
			fields := []any{log.RoundKey, round, log.LeavesKey, tree.NumLeaves(root)}
			if loss, err := trainingLoss(targets, logits); err == nil {
				fields = append(fields, log.LossKey, loss)
			}
			logger.Debug("Boosting round finished", fields...)
		}
	}

	ens.MarkTrained()
	logger.Info("Training finished",
		log.TreesKey, len(ens.trees),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return ens, nil
}

func trainingLoss(targets, logits []float64) (float64, error) {
	probs := make([]float64, len(logits))
	for i, f := range logits {
		probs[i] = sigmoid(f)
	}
	return metrics.BinaryLogLoss(
		mat.NewVecDense(len(targets), append([]float64(nil), targets...)),
		mat.NewVecDense(len(probs), probs),
	)
}
