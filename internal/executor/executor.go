// Package executor fires real HTTP requests synthesized from normalized
// endpoints ("Try It Out"). It is a read-only consumer of Endpoint and
// Server records and performs no normalization of its own.
package executor

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"specview/internal/spec"
)

// DefaultBaseURL is used when the document declared no servers and the
// caller supplied no override.
const DefaultBaseURL = "https://api.example.com"

const defaultTimeout = 30 * time.Second

type Executor struct {
	client *http.Client
}

func New(client *http.Client) *Executor {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	return &Executor{client: client}
}

// Input carries the user-supplied values for one invocation.
type Input struct {
	// BaseURL overrides the server base; empty falls back to the first
	// declared server, then DefaultBaseURL.
	BaseURL     string
	PathParams  map[string]string
	QueryParams map[string]string
	Headers     map[string]string
	// Body is raw request body text, sent for non-GET methods only.
	Body        string
	ContentType string
}

// Result reports what came back, plus wall-clock duration and the byte
// size of the body text.
type Result struct {
	StatusCode int                 `json:"statusCode"`
	StatusText string              `json:"statusText"`
	Headers    map[string][]string `json:"headers"`
	Body       string              `json:"body"`
	Size       int                 `json:"size"`
	Duration   time.Duration       `json:"duration"`
}

// Execute builds the request for ep and fires it. Path-parameter
// placeholders {name} are substituted with URL-escaped values; missing
// required path parameters are an error because the resulting URL would
// keep the literal placeholder.
func (e *Executor) Execute(ctx context.Context, api *spec.ApiSpec, ep spec.Endpoint, in Input) (*Result, error) {
	base := strings.TrimRight(resolveBase(api, in.BaseURL), "/")

	path, err := substitutePath(ep, in.PathParams)
	if err != nil {
		return nil, err
	}

	target, err := url.Parse(base + path)
	if err != nil {
		return nil, fmt.Errorf("build URL: %w", err)
	}
	query := target.Query()
	for name, value := range in.QueryParams {
		query.Set(name, value)
	}
	target.RawQuery = query.Encode()

	var body io.Reader
	method := strings.ToUpper(string(ep.Method))
	if method != http.MethodGet && in.Body != "" {
		body = strings.NewReader(in.Body)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for name, value := range in.Headers {
		req.Header.Set(name, value)
	}
	if body != nil && req.Header.Get("Content-Type") == "" {
		ct := in.ContentType
		if ct == "" {
			ct = firstContentType(ep)
		}
		req.Header.Set("Content-Type", ct)
	}

	start := time.Now()
	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute %s %s: %w", method, target, err)
	}
	defer resp.Body.Close()

	text, err := io.ReadAll(resp.Body)
	duration := time.Since(start)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	return &Result{
		StatusCode: resp.StatusCode,
		StatusText: statusText(resp),
		Headers:    resp.Header,
		Body:       string(text),
		Size:       len(text),
		Duration:   duration,
	}, nil
}

func resolveBase(api *spec.ApiSpec, override string) string {
	if override != "" {
		return override
	}
	if api != nil && len(api.Servers) > 0 && api.Servers[0].URL != "" {
		return api.Servers[0].URL
	}
	return DefaultBaseURL
}

func substitutePath(ep spec.Endpoint, values map[string]string) (string, error) {
	path := ep.Path
	for _, p := range ep.Parameters {
		if p.In != "path" {
			continue
		}
		placeholder := "{" + p.Name + "}"
		value, ok := values[p.Name]
		if !ok {
			if strings.Contains(path, placeholder) {
				return "", fmt.Errorf("missing value for path parameter %q", p.Name)
			}
			continue
		}
		path = strings.ReplaceAll(path, placeholder, url.PathEscape(value))
	}
	if i := strings.IndexByte(path, '{'); i >= 0 {
		return "", fmt.Errorf("unresolved path placeholder in %q", path)
	}
	return path, nil
}

func firstContentType(ep spec.Endpoint) string {
	if ep.RequestBody != nil {
		if keys := ep.RequestBody.Content.Keys(); len(keys) > 0 {
			return keys[0]
		}
	}
	return "application/json"
}

// statusText prefers the status line text; some servers omit it.
func statusText(resp *http.Response) string {
	if text := strings.TrimSpace(strings.TrimPrefix(resp.Status, fmt.Sprintf("%d", resp.StatusCode))); text != "" {
		return text
	}
	return http.StatusText(resp.StatusCode)
}
