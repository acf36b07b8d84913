package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "monorel",
		Short:         "Release manager for multi-package repositories",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("root", ".", "Repository root directory")
	cmd.PersistentFlags().String("config", "", "Config file path (default: discovered in root)")
	cmd.PersistentFlags().Bool("dry-run", false, "Show what would change without writing or publishing")
	cmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (default $"+"MONOREL_LOG_LEVEL or info)")

	cmd.AddCommand(
		newInitCmd(),
		newListCmd(),
		newOrderCmd(),
		newStatusCmd(),
		newBumpCmd(),
		newPublishCmd(),
		newReleaseCmd(),
		newDoctorCmd(),
	)

	return cmd
}
