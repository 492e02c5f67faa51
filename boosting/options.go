package boosting

import (
	"math"

	"github.com/YuminosukeSato/heartrisk/factors"
	"github.com/YuminosukeSato/heartrisk/pkg/errors"
	"github.com/YuminosukeSato/heartrisk/pkg/log"
	"github.com/YuminosukeSato/heartrisk/tree"
)

// Default hyperparameters.
const (
	DefaultRounds       = 50
	DefaultLearningRate = 0.1
	// DefaultInitialLogit seeds every sample's running logit. 0.5 is kept for
	// compatibility with previously published scores; 0 is the unbiased seed.
	DefaultInitialLogit = 0.5
)

// Options are the hyperparameters an ensemble was trained with.
type Options struct {
	Rounds           int
	LearningRate     float64
	MaxDepth         int
	MinPartitionSize int
	InitialLogit     float64
}

// DefaultOptions returns 50 rounds, learning rate 0.1, depth 4, partitions
// of at least 5 rows and initial logit 0.5.
func DefaultOptions() Options {
	return Options{
		Rounds:           DefaultRounds,
		LearningRate:     DefaultLearningRate,
		MaxDepth:         tree.DefaultMaxDepth,
		MinPartitionSize: tree.DefaultMinPartition,
		InitialLogit:     DefaultInitialLogit,
	}
}

// Validate returns a ValidationError for the first out-of-range option.
func (o Options) Validate() error {
	switch {
	case o.Rounds <= 0:
		return errors.NewValidationError("rounds", "must be positive", o.Rounds)
	case !(o.LearningRate > 0) || math.IsInf(o.LearningRate, 0):
		return errors.NewValidationError("learning_rate", "must be a positive finite number", o.LearningRate)
	case o.MaxDepth < 1:
		return errors.NewValidationError("max_depth", "must be at least 1", o.MaxDepth)
	case o.MinPartitionSize < 1:
		return errors.NewValidationError("min_partition_size", "must be at least 1", o.MinPartitionSize)
	case math.IsNaN(o.InitialLogit) || math.IsInf(o.InitialLogit, 0):
		return errors.NewValidationError("initial_logit", "must be finite", o.InitialLogit)
	}
	return nil
}

// Option is a function that configures a Trainer
type Option func(*Trainer)

// WithRounds sets the number of boosting rounds (trees)
func WithRounds(n int) Option {
	return func(t *Trainer) {
		t.opts.Rounds = n
	}
}

// WithLearningRate sets the shrinkage applied to every tree's output
func WithLearningRate(lr float64) Option {
	return func(t *Trainer) {
		t.opts.LearningRate = lr
	}
}

// WithMaxDepth sets the maximum depth of each regression tree
func WithMaxDepth(depth int) Option {
	return func(t *Trainer) {
		t.opts.MaxDepth = depth
	}
}

// WithMinPartitionSize sets the smallest partition that may still be split
func WithMinPartitionSize(n int) Option {
	return func(t *Trainer) {
		t.opts.MinPartitionSize = n
	}
}

// WithInitialLogit sets the starting logit of every training sample.
// WithInitialLogit(0) removes the positive bias of the default seed.
func WithInitialLogit(f0 float64) Option {
	return func(t *Trainer) {
		t.opts.InitialLogit = f0
	}
}

// WithOptions replaces all hyperparameters at once
func WithOptions(o Options) Option {
	return func(t *Trainer) {
		t.opts = o
	}
}

// WithLogger sets the logger used for training progress and predictions
func WithLogger(l log.Logger) Option {
	return func(t *Trainer) {
		t.logger = l
	}
}

// WithAnnotator sets the annotator whose findings are attached to results.
// The default is the English annotator.
func WithAnnotator(a *factors.Annotator) Option {
	return func(t *Trainer) {
		t.annotator = a
	}
}
