// Package cmd holds the ksm-github-sync command line.
package cmd

import (
	"github.com/spf13/cobra"

	"keepersecurity.com/ksm-github-sync/config"
	"keepersecurity.com/ksm-github-sync/github"
)

// RootCommand will setup and return the root command
func RootCommand() *cobra.Command {
	rootCmd := cobra.Command{
		Use:           "ksm-github-sync",
		Short:         "Sync GitHub organization teams and members into a local directory store",
		Version:       github.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	config.AttachFlags(&rootCmd)
	rootCmd.AddCommand(syncCommand(), dumpCommand())

	return &rootCmd
}
