package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/heartrisk/factors"
)

type factorsCmdConfig struct {
	*rootCmdConfig
	sampleInput string
	lang        string
}

func factorsCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &factorsCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "factors",
		Short: "List the clinical risk factors of a patient",
		Long:  `Annotate each of the 13 measurements of a patient JSON document without training a model`,
		RunE: func(cmd *cobra.Command, args []string) error {
			lang, err := resolveLanguage(config.lang, config.cfg)
			if err != nil {
				return err
			}
			s, err := readSample(config.sampleInput)
			if err != nil {
				return err
			}
			texts, err := factors.NewAnnotator(lang).Annotate(s)
			if err != nil {
				return err
			}
			for _, text := range texts {
				fmt.Fprintf(cmd.OutOrStdout(), "- %s\n", text)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&config.sampleInput, "sample", "s", "", "patient JSON document")
	cmd.Flags().StringVarP(&config.lang, "lang", "l", "", "output language: en or tr (defaults to narration.language)")
	return cmd
}
