// Package cli wires the viewer's commands: show, render, serve and try.
package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Execute runs the specview CLI.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd constructs the root command so tests can exercise the CLI
// easily.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "specview",
		Short:         "Browse and exercise OpenAPI/Swagger specifications",
		Long:          "specview normalizes OpenAPI 3.x and Swagger 2.0 documents into one model and renders documentation, schema listings and reference graphs over it, with an interactive request runner.",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging output")
	cmd.PersistentFlags().Duration("timeout", 15*time.Second, "Timeout for fetching a specification by URL")

	for _, sub := range []*cobra.Command{
		newShowCmd(),
		newRenderCmd(),
		newServeCmd(),
		newTryCmd(),
	} {
		sub.SetFlagErrorFunc(flagErrorFunc)
		cmd.AddCommand(sub)
	}
	cmd.SetFlagErrorFunc(flagErrorFunc)

	return cmd
}

// flagErrorFunc converts cobra flag errors (like unknown flags) into
// friendly usage errors that also show the command's help text.
func flagErrorFunc(c *cobra.Command, err error) error {
	return newUsageError(fmt.Sprintf("%v\n\n%s", err, c.UsageString()))
}

// newLogger builds the CLI logger: development output when verbose,
// otherwise silent.
func newLogger(cmd *cobra.Command) (*zap.Logger, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if !verbose {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}

func fetchTimeout(cmd *cobra.Command) time.Duration {
	d, _ := cmd.Flags().GetDuration("timeout")
	return d
}
