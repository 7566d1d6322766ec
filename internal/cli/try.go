package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"specview/internal/executor"
	"specview/internal/spec"
)

func newTryCmd() *cobra.Command {
	var baseURL string
	var pathParams, queryParams, headers []string
	var body, bodyFile string

	cmd := &cobra.Command{
		Use:   "try <file-or-url> <endpoint-id>",
		Short: "Execute an endpoint against a live server and report the response",
		Long:  "try loads a specification, picks the endpoint by its identifier (for example get-/pets/{id}), substitutes parameters and fires the request, reporting status, headers, body and timing.",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return newUsageError(fmt.Sprintf("expected a specification and an endpoint id\n\n%s", cmd.UsageString()))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := spec.LoadPath(cmd.Context(), args[0], fetchTimeout(cmd))
			if err != nil {
				return err
			}

			ep, ok := findEndpoint(api, args[1])
			if !ok {
				return fmt.Errorf("unknown endpoint %q; run \"specview show\" to list identifiers", args[1])
			}

			bodyText := body
			if bodyFile != "" {
				raw, err := os.ReadFile(bodyFile)
				if err != nil {
					return fmt.Errorf("read body file: %w", err)
				}
				bodyText = string(raw)
			}

			in := executor.Input{
				BaseURL:     baseURL,
				PathParams:  parsePairs(pathParams),
				QueryParams: parsePairs(queryParams),
				Headers:     parsePairs(headers),
				Body:        bodyText,
			}
			result, err := executor.New(nil).Execute(cmd.Context(), api, ep, in)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d %s (%s, %d bytes)\n", result.StatusCode, result.StatusText, result.Duration, result.Size)
			for name, values := range result.Headers {
				fmt.Fprintf(out, "%s: %s\n", name, strings.Join(values, ", "))
			}
			if result.Body != "" {
				fmt.Fprintln(out)
				fmt.Fprintln(out, result.Body)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", "", "Override the server base URL")
	cmd.Flags().StringArrayVarP(&pathParams, "param", "p", nil, "Path parameter as name=value (repeatable)")
	cmd.Flags().StringArrayVarP(&queryParams, "query", "q", nil, "Query parameter as name=value (repeatable)")
	cmd.Flags().StringArrayVarP(&headers, "header", "H", nil, "Request header as name=value (repeatable)")
	cmd.Flags().StringVar(&body, "body", "", "Raw request body text")
	cmd.Flags().StringVar(&bodyFile, "body-file", "", "Read the request body from a file")
	return cmd
}

func findEndpoint(api *spec.ApiSpec, id string) (spec.Endpoint, bool) {
	for _, ep := range api.Endpoints {
		if ep.ID == id {
			return ep, true
		}
	}
	return spec.Endpoint{}, false
}

func parsePairs(pairs []string) map[string]string {
	if len(pairs) == 0 {
		return nil
	}
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, _ := strings.Cut(pair, "=")
		out[name] = value
	}
	return out
}
