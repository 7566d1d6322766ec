package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"specview/internal/spec"
)

func TestBuildGraph(t *testing.T) {
	t.Parallel()

	api, err := spec.Load([]byte(`
openapi: 3.0.0
info: {title: T, version: "1"}
paths:
  /pets:
    get:
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema:
                type: array
                items: {$ref: '#/components/schemas/Pet'}
    post:
      requestBody:
        content:
          application/json:
            schema: {$ref: '#/components/schemas/Pet'}
      responses:
        "201": {description: created}
components:
  schemas:
    Pet:
      type: object
      properties:
        owner: {$ref: '#/components/schemas/Owner'}
        friend: {$ref: '#/components/schemas/Pet'}
`))
	require.NoError(t, err)

	g := BuildGraph(api)
	assert.Equal(t, []string{"get-/pets", "post-/pets"}, g.Endpoints)
	assert.Equal(t, []string{"Pet"}, g.Schemas)
	assert.Equal(t, []string{"Owner"}, g.Missing, "Owner is referenced but never declared")
	assert.Equal(t, []GraphEdge{
		{From: "get-/pets", To: "Pet"},
		{From: "post-/pets", To: "Pet"},
		{From: "Pet", To: "Owner"},
		{From: "Pet", To: "Pet"},
	}, g.Edges)
}

func TestBuildGraph_DeduplicatesEdges(t *testing.T) {
	t.Parallel()

	api, err := spec.Load([]byte(`
openapi: 3.0.0
info: {title: T, version: "1"}
paths:
  /pets:
    post:
      requestBody:
        content:
          application/json:
            schema: {$ref: '#/components/schemas/Pet'}
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema: {$ref: '#/components/schemas/Pet'}
components:
  schemas:
    Pet: {type: object}
`))
	require.NoError(t, err)

	g := BuildGraph(api)
	assert.Equal(t, []GraphEdge{{From: "post-/pets", To: "Pet"}}, g.Edges)
	assert.Empty(t, g.Missing)
}

func TestDOT(t *testing.T) {
	t.Parallel()

	api, err := spec.Load([]byte(`
openapi: 3.0.0
info: {title: T, version: "1"}
paths:
  /pets:
    get:
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema: {$ref: '#/components/schemas/Gone'}
`))
	require.NoError(t, err)

	out := DOT(api)
	assert.Contains(t, out, "digraph apispec {")
	assert.Contains(t, out, `"get-/pets" [shape=box];`)
	assert.Contains(t, out, `"Gone" [shape=ellipse, style=dashed, label="Gone (missing)"];`)
	assert.Contains(t, out, `"get-/pets" -> "Gone";`)
}
