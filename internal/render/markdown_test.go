package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"specview/internal/spec"
)

func loadFixture(t *testing.T) *spec.ApiSpec {
	t.Helper()
	api, err := spec.Load([]byte(`
openapi: 3.0.0
info:
  title: Petstore
  version: "1.2"
  description: A pet shop.
servers:
  - url: https://api.example.org/v1
    description: production
tags:
  - name: pets
    description: Pet operations
  - name: default
paths:
  /pets/{id}:
    get:
      tags: [pets]
      summary: Fetch one pet
      deprecated: true
      security:
        - api_key: []
      parameters:
        - name: id
          in: path
          schema: {type: string}
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema: {$ref: '#/components/schemas/Pet'}
  /health:
    get:
      responses:
        "200": {description: ok}
components:
  schemas:
    Pet:
      type: object
      required: [name]
      properties:
        name: {type: string}
        ids:
          type: array
          items: {type: integer, format: int64}
  securitySchemes:
    api_key:
      type: apiKey
      in: header
`))
	require.NoError(t, err)
	return api
}

func TestMarkdown(t *testing.T) {
	t.Parallel()

	out, err := Markdown(loadFixture(t))
	require.NoError(t, err)

	assert.Contains(t, out, "# Petstore `v1.2`")
	assert.Contains(t, out, "A pet shop.")
	assert.Contains(t, out, "- `https://api.example.org/v1` — production")
	assert.Contains(t, out, "**api_key** (apiKey, in header)")
	assert.Contains(t, out, "### pets")
	assert.Contains(t, out, "#### `GET /pets/{id}` _(deprecated)_")
	assert.Contains(t, out, "Fetch one pet")
	assert.Contains(t, out, "| `id` | path | yes | string |")
	assert.Contains(t, out, "- `200` — ok (`application/json`: Pet)")
	assert.Contains(t, out, "Security: api_key")
	assert.Contains(t, out, "### Pet")
	assert.Contains(t, out, "| `name` | string | yes |")
	assert.Contains(t, out, "| `ids` | array of integer (int64) | no |")

	// The untagged endpoint lands in the default group.
	assert.Contains(t, out, "### default")
	assert.Contains(t, out, "#### `GET /health`")
}

func TestMarkdown_NilSpec(t *testing.T) {
	t.Parallel()

	_, err := Markdown(nil)
	assert.Error(t, err)
}

func TestGroupByTag(t *testing.T) {
	t.Parallel()

	groups := GroupByTag(loadFixture(t))
	require.Len(t, groups, 2)
	assert.Equal(t, "pets", groups[0].Tag.Name)
	require.Len(t, groups[0].Endpoints, 1)
	assert.Equal(t, "get-/pets/{id}", groups[0].Endpoints[0].ID)
	assert.Equal(t, "default", groups[1].Tag.Name)
	require.Len(t, groups[1].Endpoints, 1)
	assert.Equal(t, "get-/health", groups[1].Endpoints[0].ID)
}

func TestSchemaLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   *spec.SchemaRef
		want string
	}{
		{"nil", nil, ""},
		{"ref wins over everything", &spec.SchemaRef{Ref: "#/components/schemas/Pet", Type: "object"}, "Pet"},
		{"plain type", &spec.SchemaRef{Type: "string"}, "string"},
		{"type with format", &spec.SchemaRef{Type: "integer", Format: "int32"}, "integer (int32)"},
		{"enum suffix", &spec.SchemaRef{Type: "string", Enum: []any{"a", "b"}}, "string enum"},
		{"array", &spec.SchemaRef{Type: "array", Items: &spec.SchemaRef{Type: "number"}}, "array of number"},
		{"array without items", &spec.SchemaRef{Type: "array"}, "array of any"},
		{"untyped", &spec.SchemaRef{}, "any"},
		{"one of", &spec.SchemaRef{OneOf: []*spec.SchemaRef{
			{Ref: "#/components/schemas/Cat"},
			{Type: "string"},
		}}, "one of: Cat | string"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, SchemaLabel(tt.in))
		})
	}
}
