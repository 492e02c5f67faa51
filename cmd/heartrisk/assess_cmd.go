package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/heartrisk/boosting"
	"github.com/YuminosukeSato/heartrisk/config"
	"github.com/YuminosukeSato/heartrisk/factors"
	"github.com/YuminosukeSato/heartrisk/narrate"
)

type assessCmdConfig struct {
	trainCmdConfig
	sampleInput string
	lang        string
	noNarration bool
}

func assessCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &assessCmdConfig{trainCmdConfig: trainCmdConfig{rootCmdConfig: rootConfig}}
	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Train on a dataset and assess one patient",
		Long:  `Train a risk model, score a patient JSON document, list its factors and explain the result`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			lang, err := resolveLanguage(config.lang, config.cfg)
			if err != nil {
				return err
			}
			s, err := readSample(config.sampleInput)
			if err != nil {
				return err
			}
			ens, _, err := config.train([]boosting.Option{
				boosting.WithAnnotator(factors.NewAnnotator(lang)),
			})
			if err != nil {
				return err
			}
			res, err := ens.Predict(s)
			if err != nil {
				return fmt.Errorf("assessing sample: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "risk score:  %d\n", res.RiskScore)
			fmt.Fprintf(out, "risk tier:   %s\n", res.Tier.Label(lang))
			fmt.Fprintf(out, "confidence:  %d\n", res.Confidence)
			fmt.Fprintf(out, "probability: %s\n", res.ProbabilityText())
			fmt.Fprintln(out, "factors:")
			for _, f := range res.Factors {
				fmt.Fprintf(out, "  - %s\n", f)
			}
			if config.noNarration {
				return nil
			}

			nc, err := config.cfg.NarrationConfig()
			if err != nil {
				return err
			}
			nc.Language = lang
			provider, err := narrate.NewProvider(ctx, nc)
			if err != nil {
				return fmt.Errorf("creating narration provider: %w", err)
			}
			exp := narrate.New(provider, nc).Explain(ctx, res)
			fmt.Fprintf(out, "\nexplanation (%s):\n%s\n", exp.Source, strings.TrimSpace(exp.Text))
			return nil
		},
	}
	cmd.Flags().StringVarP(&config.dataInput, "data", "d", "", "training data CSV (defaults to data.path from the configuration)")
	cmd.Flags().StringVarP(&config.sampleInput, "sample", "s", "", "patient JSON document")
	cmd.Flags().StringVarP(&config.lang, "lang", "l", "", "output language: en or tr (defaults to narration.language)")
	cmd.Flags().BoolVar(&config.noNarration, "no-narration", false, "skip the explanation")
	return cmd
}

func resolveLanguage(flag string, cfg *config.Config) (factors.Language, error) {
	if flag != "" {
		return factors.ParseLanguage(flag)
	}
	return cfg.Language()
}
