package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"pawhub/gateway/pkg/cli"
)

var (
	// Global flags
	cfgFile      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "pawhub",
	Short: "PawHub gateway - backend-proxying API gateway",
	Long: `PawHub gateway serves the /api routes of the PawHub pet-adoption app and
forwards them to the backend service.

It also ships client commands that talk to a running gateway, for building
OAuth login URLs and reading diary entries.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return cli.ExitCode(err)
	}
	return cli.ExitOK
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (environment only when empty)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", string(cli.FormatText), "output format: text, json, yaml, csv")
}

// printResult writes data to the command's output in the selected format.
func printResult(cmd *cobra.Command, data any) error {
	formatter, err := cli.NewFormatter(cli.OutputFormat(outputFormat))
	if err != nil {
		return err
	}
	return formatter.FormatTo(cmd.OutOrStdout(), data)
}
