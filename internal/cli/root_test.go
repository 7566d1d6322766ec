package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cliFixture = `{
  "openapi": "3.0.0",
  "info": {"title": "Pets", "version": "1.0"},
  "paths": {
    "/pets/{id}": {
      "get": {
        "parameters": [{"name": "id", "in": "path", "schema": {"type": "string"}}],
        "responses": {"200": {"description": "ok"}}
      }
    }
  }
}`

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "api.json")
	require.NoError(t, os.WriteFile(path, []byte(cliFixture), 0o644))
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCmd_NoArgsShowsHelp(t *testing.T) {
	out, err := runCLI(t)
	require.NoError(t, err)
	assert.Contains(t, out, "specview")
	assert.Contains(t, out, "show")
	assert.Contains(t, out, "render")
	assert.Contains(t, out, "serve")
	assert.Contains(t, out, "try")
}

func TestRootCmd_UnknownFlagIsUsageError(t *testing.T) {
	_, err := runCLI(t, "show", "--nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUsage)
	assert.Contains(t, err.Error(), "unknown flag")
}

func TestShowCmd_Summary(t *testing.T) {
	out, err := runCLI(t, "show", writeFixture(t))
	require.NoError(t, err)
	assert.Contains(t, out, "Pets 1.0")
	assert.Contains(t, out, "1 endpoints, 0 schemas, 1 tags")
	assert.Contains(t, out, "GET")
	assert.Contains(t, out, "/pets/{id}")
	assert.Contains(t, out, "[default]")
}

func TestShowCmd_JSON(t *testing.T) {
	out, err := runCLI(t, "show", "--json", writeFixture(t))
	require.NoError(t, err)
	assert.Contains(t, out, `"id": "get-/pets/{id}"`)
	assert.Contains(t, out, `"title": "Pets"`)
}

func TestShowCmd_MissingArg(t *testing.T) {
	_, err := runCLI(t, "show")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUsage)
}

func TestShowCmd_BadDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"paths": {}}`), 0o644))

	_, err := runCLI(t, "show", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing openapi or swagger version")
	assert.NotErrorIs(t, err, ErrUsage, "a bad document is not CLI misuse")
}

func TestRenderCmd_MarkdownToFile(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "docs.md")
	_, err := runCLI(t, "render", writeFixture(t), "--format", "markdown", "-o", outPath)
	require.NoError(t, err)

	docs, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(docs), "# Pets")
	assert.Contains(t, string(docs), "/pets/{id}")
}

func TestRenderCmd_DotToStdout(t *testing.T) {
	out, err := runCLI(t, "render", writeFixture(t), "-f", "dot")
	require.NoError(t, err)
	assert.Contains(t, out, "digraph apispec")
}

func TestRenderCmd_UnknownFormat(t *testing.T) {
	_, err := runCLI(t, "render", writeFixture(t), "--format", "pdf")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUsage)
	assert.Contains(t, err.Error(), `unknown format "pdf"`)
}

func TestParsePairs(t *testing.T) {
	assert.Nil(t, parsePairs(nil))
	assert.Equal(t, map[string]string{"id": "7", "empty": "", "eq": "a=b"},
		parsePairs([]string{"id=7", "empty", "eq=a=b"}))
}
