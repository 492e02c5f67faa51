package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/heartrisk/config"
	"github.com/YuminosukeSato/heartrisk/pkg/errors"
	"github.com/YuminosukeSato/heartrisk/pkg/log"
)

type rootCmdConfig struct {
	verbose    bool
	configPath string

	cfg    *config.Config
	closer io.Closer
}

func main() {
	os.Exit(execute(&rootCmdConfig{}, os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the command line and returns the exit code. The log writer
// opened by setup is closed on every path, a failed subcommand included.
func execute(rootConfig *rootCmdConfig, args []string, stdout, stderr io.Writer) (code int) {
	defer func() {
		if err := rootConfig.close(); err != nil {
			fmt.Fprintf(stderr, "Error: closing log writer: %v\n", err)
			code = 1
		}
	}()

	cmd := cliParser(rootConfig)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func cliParser(rootConfig *rootCmdConfig) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "heartrisk",
		Short: "heartrisk estimates heart-disease risk from clinical measurements",
		Long: `A tool to train a gradient-boosted risk model on Heart.csv-style data,
score patients, list their clinical risk factors and explain the result`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return rootConfig.setup()
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&rootConfig.verbose, "verbose", "v", false, "log at debug level")
	rootCmd.PersistentFlags().StringVarP(&rootConfig.configPath, "config", "c", "", "configuration file (yaml, toml or json)")
	rootCmd.AddCommand(versionCmd(), trainCmd(rootConfig), assessCmd(rootConfig), factorsCmd(rootConfig))
	return rootCmd
}

// setup loads the configuration and installs the process logger.
func (c *rootCmdConfig) setup() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if c.verbose {
		cfg.Log.Level = "debug"
	}
	closer, err := log.Setup(cfg.LogOptions())
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	c.cfg = cfg
	c.closer = closer
	return nil
}

// close releases the log writer once. A panicking writer is reported as an
// error instead of taking the exit code with it.
func (c *rootCmdConfig) close() error {
	if c.closer == nil {
		return nil
	}
	closer := c.closer
	c.closer = nil
	return errors.SafeExecute("close log writer", closer.Close)
}
