package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/heartrisk"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of heartrisk",
		Long:  `All software has versions. This is heartrisk's`,
		// version needs neither configuration nor logging
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "heartrisk v%s\n", heartrisk.Version)
		},
	}
}
