package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"specview/internal/render"
	"specview/internal/spec"
)

func newRenderCmd() *cobra.Command {
	var format string
	var outPath string

	cmd := &cobra.Command{
		Use:   "render <file-or-url>",
		Short: "Render a specification as markdown docs, a model dump or a reference graph",
		Args:  requireInputArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := spec.LoadPath(cmd.Context(), args[0], fetchTimeout(cmd))
			if err != nil {
				return err
			}

			var out []byte
			switch format {
			case "markdown", "md":
				docs, err := render.Markdown(api)
				if err != nil {
					return err
				}
				out = []byte(docs)
			case "json":
				out, err = render.JSON(api)
				if err != nil {
					return err
				}
			case "dot":
				out = []byte(render.DOT(api))
			default:
				return newUsageError(fmt.Sprintf("unknown format %q (want markdown, json or dot)\n\n%s", format, cmd.UsageString()))
			}

			if outPath == "" || outPath == "-" {
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return nil
			}
			if err := os.WriteFile(outPath, out, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", outPath, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "markdown", "Output format: markdown, json or dot")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (default stdout)")
	return cmd
}
