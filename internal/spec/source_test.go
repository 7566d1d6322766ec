package spec

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "api.yaml")
	require.NoError(t, os.WriteFile(path, []byte("openapi: 3.0.0\n"), 0o644))

	raw, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "openapi: 3.0.0\n", string(raw))
}

func TestReadFile_RejectsUnknownExtension(t *testing.T) {
	t.Parallel()

	_, err := ReadFile("spec.txt")
	require.Error(t, err)
	assert.ErrorIs(t, err, &Error{Kind: KindInput})
	assert.Contains(t, err.Error(), ".txt")
}

func TestReadFile_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, &Error{Kind: KindInput})
}

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	const body = `{"openapi": "3.0.0"}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Contains(t, r.Header.Get("Accept"), "application/json")
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	raw, err := NewFetcher(0).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, body, string(raw))
}

func TestFetcher_Fetch_NonSuccessStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not here", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewFetcher(time.Second).Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.ErrorIs(t, err, &Error{Kind: KindTransport})
	assert.Contains(t, err.Error(), "404")
}

func TestFetcher_Fetch_ContextCanceled(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := NewFetcher(time.Minute).Fetch(ctx, srv.URL)
	require.Error(t, err)
	assert.ErrorIs(t, err, &Error{Kind: KindTransport})
}

func TestIsURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"https://example.org/openapi.yaml", true},
		{"http://localhost:8080/spec", true},
		{"./petstore.json", false},
		{"/etc/specs/api.yaml", false},
		{"ftp://example.org/spec.yaml", false},
		{"petstore.yaml", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsURL(tt.input), "input %q", tt.input)
	}
}

func TestAcquire(t *testing.T) {
	t.Parallel()

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()
		_, err := Acquire(context.Background(), "  ", 0)
		require.Error(t, err)
		assert.ErrorIs(t, err, &Error{Kind: KindInput})
	})

	t.Run("local file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "api.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"openapi": "3.0.0"}`), 0o644))
		raw, err := Acquire(context.Background(), path, 0)
		require.NoError(t, err)
		assert.JSONEq(t, `{"openapi": "3.0.0"}`, string(raw))
	})

	t.Run("url", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("openapi: 3.0.0\ninfo: {title: T, version: '1'}\npaths: {}\n"))
		}))
		defer srv.Close()

		api, err := LoadPath(context.Background(), srv.URL, time.Second)
		require.NoError(t, err)
		assert.Equal(t, "T", api.Title)
	})
}
