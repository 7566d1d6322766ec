package spec

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Acquisition: turning a file path or URL into raw text for Parse. Kept
// apart from the pipeline itself, which never does I/O.

// DefaultFetchTimeout bounds a spec fetch when the caller does not set one.
const DefaultFetchTimeout = 15 * time.Second

var specExtensions = map[string]bool{".json": true, ".yaml": true, ".yml": true}

// ReadFile reads a local spec file. Only .json, .yaml and .yml extensions
// are accepted.
func ReadFile(path string) ([]byte, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !specExtensions[ext] {
		return nil, &Error{
			Kind:     KindInput,
			Message:  fmt.Sprintf("unsupported file extension %q (want .json, .yaml or .yml)", ext),
			Location: path,
		}
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{
			Kind:     KindInput,
			Message:  fmt.Sprintf("read file %s: %v", path, err),
			Location: path,
			Cause:    err,
		}
	}
	return raw, nil
}

// Fetcher retrieves spec documents over HTTP.
type Fetcher struct {
	client *http.Client
}

func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &Fetcher{client: &http.Client{Timeout: timeout}}
}

// Fetch issues a plain GET and returns the response body. A transport
// failure or a non-2xx status is a TransportError carrying the remote
// status text; retries are the caller's business.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &Error{
			Kind:     KindTransport,
			Message:  fmt.Sprintf("build request for %s: %v", rawURL, err),
			Location: rawURL,
			Cause:    err,
		}
	}
	req.Header.Set("Accept", "application/json, application/yaml, text/yaml, */*")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &Error{
			Kind:     KindTransport,
			Message:  fmt.Sprintf("fetch %s: %v", rawURL, err),
			Location: rawURL,
			Cause:    err,
		}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Error{
			Kind:     KindTransport,
			Message:  fmt.Sprintf("fetch %s: %s", rawURL, resp.Status),
			Location: rawURL,
		}
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{
			Kind:     KindTransport,
			Message:  fmt.Sprintf("read response from %s: %v", rawURL, err),
			Location: rawURL,
			Cause:    err,
		}
	}
	return raw, nil
}

// IsURL reports whether input should be treated as an http/https URL
// rather than a filesystem path.
func IsURL(input string) bool {
	u, err := url.Parse(input)
	if err != nil || u.Host == "" {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return scheme == "http" || scheme == "https"
}

// Acquire resolves input as either a URL or a local file and returns the
// raw text for Parse.
func Acquire(ctx context.Context, input string, timeout time.Duration) ([]byte, error) {
	if strings.TrimSpace(input) == "" {
		return nil, newError(KindInput, "input is empty")
	}
	if IsURL(input) {
		return NewFetcher(timeout).Fetch(ctx, input)
	}
	return ReadFile(input)
}

// LoadPath acquires and loads a spec in one call, for CLI use.
func LoadPath(ctx context.Context, input string, timeout time.Duration) (*ApiSpec, error) {
	raw, err := Acquire(ctx, input, timeout)
	if err != nil {
		return nil, err
	}
	return Load(raw)
}
