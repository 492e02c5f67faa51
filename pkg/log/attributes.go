// Package log defines standard attribute keys for risk assessment operations.
//
// Keys follow a hierarchical naming convention (e.g. "model.id",
// "data.samples") so log lines can be filtered per concern.

package log

// Model and Operation Context
const (
	// ModelNameKey identifies the kind of model, e.g. "Ensemble".
	ModelNameKey = "model.name"

	// ModelIDKey is the UUID assigned to a trained ensemble.
	ModelIDKey = "model.id"

	// OperationKey specifies the operation being performed.
	// Standard values: "train", "predict", "annotate", "narrate"
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is logging.
	ComponentKey = "component"
)

// Data Shape
const (
	// SamplesKey indicates the number of samples (rows) in the dataset.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of clinical features.
	FeaturesKey = "data.features"

	// FeatureKey names a single clinical feature.
	FeatureKey = "data.feature"

	// RowKey is the zero-based position of a sample in its dataset.
	RowKey = "data.row"

	// PathKey is the file a dataset or sample was loaded from.
	PathKey = "data.path"
)

// Training
const (
	// RoundsKey is the configured number of boosting rounds.
	RoundsKey = "train.rounds"

	// RoundKey is the current boosting round, zero based.
	RoundKey = "training.iteration"

	// LearningRateKey records the shrinkage applied to each tree.
	LearningRateKey = "train.learning_rate"

	// MaxDepthKey is the maximum depth of each regression tree.
	MaxDepthKey = "train.max_depth"

	// LossKey records the binary log loss of the ensemble on its training data.
	LossKey = "metrics.loss"

	// LeavesKey is the number of leaves in a fitted tree.
	LeavesKey = "train.leaves"

	// TreesKey is the number of trees in a finished ensemble.
	TreesKey = "train.trees"

	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// AUCKey records the training-set area under the ROC curve.
	AUCKey = "metrics.auc"

	// AccuracyKey records accuracy at the 0.5 probability threshold.
	AccuracyKey = "metrics.accuracy"
)

// Prediction
const (
	// ScoreKey is the 0-100 risk score.
	ScoreKey = "risk.score"

	// TierKey is the risk tier label.
	TierKey = "risk.tier"

	// ProbabilityKey is the predicted probability of disease.
	ProbabilityKey = "risk.probability"

	// ConfidenceKey is the reported confidence percentage.
	ConfidenceKey = "preds.confidence"

	// FactorsKey is the number of clinical findings attached to a result.
	FactorsKey = "risk.factors"
)

// Narration
const (
	// ProviderKey names the language-model backend, e.g. "gemini".
	ProviderKey = "narrate.provider"

	// SourceKey is "remote" or "local" depending on who produced the text.
	SourceKey = "narrate.source"

	// BreakerStateKey is the circuit breaker state at call time.
	BreakerStateKey = "narrate.breaker_state"

	// BreakerNameKey names the circuit breaker guarding a provider.
	BreakerNameKey = "narrate.breaker"

	// BreakerFromKey is the state a circuit breaker left.
	BreakerFromKey = "narrate.breaker_from"

	// RequestIDKey correlates the log lines of one explanation request.
	RequestIDKey = "narrate.request_id"
)

// Error Context
const (
	// ErrorTypeKey categorizes the type of error encountered.
	ErrorTypeKey = "error.type"

	// StacktraceKey contains stack trace information for debugging.
	// Populated automatically when an error is logged.
	StacktraceKey = "error.stacktrace"
)

// Standard attribute values.
const (
	OperationTrain    = "train"
	OperationPredict  = "predict"
	OperationAnnotate = "annotate"
	OperationNarrate  = "narrate"
	OperationLoad     = "load"
)
