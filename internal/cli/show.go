package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"specview/internal/render"
	"specview/internal/spec"
)

func newShowCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <file-or-url>",
		Short: "Load a specification and print a summary of its model",
		Args:  requireInputArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			api, err := spec.LoadPath(cmd.Context(), args[0], fetchTimeout(cmd))
			if err != nil {
				return err
			}

			if asJSON {
				out, err := render.JSON(api)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return nil
			}

			printSummary(cmd, api)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full normalized model as JSON")
	return cmd
}

func printSummary(cmd *cobra.Command, api *spec.ApiSpec) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s\n", api.Title, api.Version)
	if api.Description != "" {
		fmt.Fprintln(out, api.Description)
	}
	for _, s := range api.Servers {
		fmt.Fprintf(out, "server: %s\n", s.URL)
	}
	fmt.Fprintf(out, "%d endpoints, %d schemas, %d tags\n", len(api.Endpoints), len(api.Schemas), len(api.Tags))
	for _, ep := range api.Endpoints {
		marker := ""
		if ep.Deprecated {
			marker = " (deprecated)"
		}
		fmt.Fprintf(out, "  %-7s %s [%s]%s\n", strings.ToUpper(string(ep.Method)), ep.Path, strings.Join(ep.Tags, ", "), marker)
	}
}

func requireInputArg(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return newUsageError(fmt.Sprintf("expected exactly one specification file or URL\n\n%s", cmd.UsageString()))
	}
	return nil
}
