package main

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/heartrisk"
	"github.com/YuminosukeSato/heartrisk/boosting"
	"github.com/YuminosukeSato/heartrisk/clinical"
	"github.com/YuminosukeSato/heartrisk/metrics"
	"github.com/YuminosukeSato/heartrisk/pkg/log"
)

type trainCmdConfig struct {
	*rootCmdConfig
	dataInput string
	rocPlot   string
}

func trainCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &trainCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train a risk model and report its training-set metrics",
		Long:  `Train a gradient-boosted risk model on a Heart.csv-style file and report accuracy, error rate, log loss, AUC, Brier score and feature importance`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ens, ds, err := config.train(nil)
			if err != nil {
				return err
			}
			return config.report(cmd.Context(), cmd.OutOrStdout(), ens, ds)
		},
	}
	cmd.Flags().StringVarP(&config.dataInput, "data", "d", "", "training data CSV (defaults to data.path from the configuration)")
	cmd.Flags().StringVar(&config.rocPlot, "roc-plot", "", "write the training ROC curve to this image file (png, svg, pdf)")
	return cmd
}

// train loads the dataset and fits an ensemble with the configured options
// followed by extra.
func (c *trainCmdConfig) train(extra []boosting.Option) (*boosting.Ensemble, clinical.Dataset, error) {
	path := c.dataInput
	if path == "" {
		path = c.cfg.Data.Path
	}
	ds, err := clinical.LoadCSVFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("loading training data: %w", err)
	}
	log.GetLoggerWithName("cli").Info("Training data loaded", log.PathKey, path, log.SamplesKey, len(ds))

	opts := append(c.cfg.TrainingOptions(), extra...)
	ens, err := heartrisk.Train(ds, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("training model: %w", err)
	}
	return ens, ds, nil
}

func (c *trainCmdConfig) report(ctx context.Context, out io.Writer, ens *boosting.Ensemble, ds clinical.Dataset) error {
	if ctx == nil {
		ctx = context.Background()
	}
	probs, err := ens.PredictProbaBatch(ctx, ds)
	if err != nil {
		return fmt.Errorf("scoring training data: %w", err)
	}
	yTrue := mat.NewVecDense(len(ds), ds.Targets())
	yProb := mat.NewVecDense(len(probs), probs)

	yLabel := metrics.Threshold(yProb, 0.5)
	acc, err := metrics.Accuracy(yTrue, yLabel)
	if err != nil {
		return err
	}
	errRate, err := metrics.ClassificationError(yTrue, yLabel)
	if err != nil {
		return err
	}
	loss, err := metrics.BinaryLogLoss(yTrue, yProb)
	if err != nil {
		return err
	}
	brier, err := metrics.BrierScore(yTrue, yProb)
	if err != nil {
		return err
	}

	opts := ens.Options()
	fmt.Fprintf(out, "model:          %s\n", ens.ID)
	fmt.Fprintf(out, "samples:        %d\n", len(ds))
	fmt.Fprintf(out, "rounds:         %d (learning rate %g, max depth %d)\n", ens.NumTrees(), opts.LearningRate, opts.MaxDepth)
	fmt.Fprintf(out, "accuracy:       %.4f\n", acc)
	fmt.Fprintf(out, "error rate:     %.4f\n", errRate)
	fmt.Fprintf(out, "log loss:       %.4f\n", loss)
	fmt.Fprintf(out, "brier score:    %.4f\n", brier)

	fields := []any{log.ModelIDKey, ens.ID, log.AccuracyKey, acc, log.LossKey, loss}

	// AUC needs both classes; a single-class file still gets a report.
	if roc, err := metrics.ROCCurve(yTrue, yProb); err == nil {
		auc, _ := metrics.AUC(yTrue, yProb)
		fields = append(fields, log.AUCKey, auc)
		fmt.Fprintf(out, "auc:            %.4f\n", auc)
		if c.rocPlot != "" {
			if err := metrics.SaveROCPlot(roc, "heartrisk training ROC", c.rocPlot); err != nil {
				return fmt.Errorf("saving ROC plot: %w", err)
			}
			fmt.Fprintf(out, "roc plot:       %s\n", c.rocPlot)
		}
	} else {
		fmt.Fprintf(out, "auc:            n/a (%v)\n", err)
	}

	log.GetLoggerWithName("cli").Info("Training report", fields...)

	fmt.Fprintln(out, "feature importance (splits):")
	writeImportance(out, ens.FeatureImportance(boosting.SplitImportance))
	return nil
}

func writeImportance(out io.Writer, imp []float64) {
	order := clinical.Features()
	sort.SliceStable(order, func(i, j int) bool {
		return imp[order[i]] > imp[order[j]]
	})
	for _, f := range order {
		if imp[f] == 0 {
			continue
		}
		fmt.Fprintf(out, "  %-10s %4.0f\n", f, imp[f])
	}
}
