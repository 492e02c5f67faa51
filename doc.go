// Package heartrisk estimates heart-disease risk from 13 standard clinical
// measurements with a small gradient-boosted tree ensemble, and explains the
// estimate in plain language.
//
// heartrisk is built for services and command-line tools that need a
// deterministic, dependency-light risk score next to a human-readable list
// of contributing factors.
//
// # Features
//
//   - Deterministic training: the same data and options always give the same trees
//   - Z-score normalization fitted once and owned by the trained ensemble
//   - Rule-based factor annotation in English and Turkish
//   - Optional LLM narration (Gemini, Anthropic, OpenAI) with a local fallback
//   - Structured logging with zerolog and typed, stack-carrying errors
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/heartrisk"
//	    "github.com/YuminosukeSato/heartrisk/boosting"
//	    "github.com/YuminosukeSato/heartrisk/clinical"
//	)
//
//	func main() {
//	    ds, err := clinical.LoadCSVFile("heart.csv")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    ens, err := heartrisk.Train(ds, boosting.WithRounds(50))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    sample := clinical.NewSample([clinical.NumFeatures]float64{
//	        63, 1, 3, 145, 233, 1, 0, 150, 0, 2.3, 0, 0, 1,
//	    })
//	    res, err := heartrisk.Predict(ens, sample)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(res.RiskScore, res.Tier, res.ProbabilityText())
//	}
//
// # Packages
//
//   - clinical: Feature schema, samples, CSV and JSON input
//   - preprocessing: Per-feature mean and standard deviation
//   - tree: Regression trees fitted to boosting residuals
//   - boosting: Trainer, Ensemble and Result
//   - factors: Rule-based clinical factor annotation
//   - narrate: LLM and template explanations of a Result
//   - metrics: AUC, log loss, accuracy, Brier score, ROC curves
//   - config: File and environment configuration
//   - core/model: Training state and the Classifier interface
//   - core/parallel: Parallel processing utilities
//   - pkg/log, pkg/errors: Logging and error handling
//
// # Scores
//
// The risk score is round(p·100) for the predicted probability p. Scores
// below 35 are low risk, 35 to 64 medium and 65 or more high. Confidence is
// min(95, 70 + number of trees).
//
// Results are informational and are not a medical diagnosis.
package heartrisk
