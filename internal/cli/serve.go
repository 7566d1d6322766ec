package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"specview/internal/server"
	"specview/internal/spec"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve [file-or-url]",
		Short: "Serve the viewer API, optionally preloading a specification",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")
			logger, err := serveLogger(verbose)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			srv := server.New(logger, server.Options{
				Addr:         addr,
				FetchTimeout: fetchTimeout(cmd),
			})

			if len(args) == 1 {
				_, err := srv.Store().Load(func() (*spec.ApiSpec, error) {
					return spec.LoadPath(cmd.Context(), args[0], fetchTimeout(cmd))
				})
				if err != nil {
					return err
				}
				logger.Info("specification preloaded", zap.String("input", args[0]))
			}

			return srv.Run()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address")
	return cmd
}

// serveLogger always logs requests; verbose switches to the development
// encoder.
func serveLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
