package spec

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Loosely-typed document tree decoded straight from the raw text. It is a
// superset of the OpenAPI 3.x and Swagger 2.0 top-level shapes so that the
// dialect gate and the walkers in normalize.go operate over a known
// structure instead of probing untyped maps. Every field is optional:
// decoding never fails on a missing or extra key, only on text that is not
// JSON/YAML at all.

// flexString tolerates the scalars real documents write unquoted:
// "swagger: 2.0" is a YAML float and "version: 1" an int, but both are
// version strings to us. Non-scalar values are dropped, not errors.
type flexString string

func (s *flexString) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.Tag != "!!null" {
		*s = flexString(node.Value)
	}
	return nil
}

func (s *flexString) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = flexString(str)
		return nil
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] == '{' || trimmed[0] == '[' || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	*s = flexString(trimmed)
	return nil
}

type document struct {
	OpenAPI flexString `json:"openapi" yaml:"openapi"`
	Swagger flexString `json:"swagger" yaml:"swagger"`
	Info    infoObject `json:"info" yaml:"info"`

	Servers []serverObject `json:"servers" yaml:"servers"`

	// Swagger 2.0 host triple, used to synthesize a server entry.
	Host     string   `json:"host" yaml:"host"`
	BasePath string   `json:"basePath" yaml:"basePath"`
	Schemes  []string `json:"schemes" yaml:"schemes"`

	// Swagger 2.0 document-level media-type defaults.
	Consumes []string `json:"consumes" yaml:"consumes"`
	Produces []string `json:"produces" yaml:"produces"`

	Paths *OrderedMap[*pathItem] `json:"paths" yaml:"paths"`

	Components *componentsObject `json:"components" yaml:"components"`

	// Swagger 2.0 component sections.
	Definitions         *OrderedMap[*schemaNode]         `json:"definitions" yaml:"definitions"`
	SecurityDefinitions *OrderedMap[*securitySchemeNode] `json:"securityDefinitions" yaml:"securityDefinitions"`

	Tags []tagObject `json:"tags" yaml:"tags"`
}

func (d *document) isSwagger2() bool { return d.Swagger != "" }

type infoObject struct {
	Title       string     `json:"title" yaml:"title"`
	Version     flexString `json:"version" yaml:"version"`
	Description string     `json:"description" yaml:"description"`
}

type serverObject struct {
	URL         string `json:"url" yaml:"url"`
	Description string `json:"description" yaml:"description"`
}

type tagObject struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

type componentsObject struct {
	Schemas         *OrderedMap[*schemaNode]         `json:"schemas" yaml:"schemas"`
	SecuritySchemes *OrderedMap[*securitySchemeNode] `json:"securitySchemes" yaml:"securitySchemes"`
}

// pathItem keeps one struct field per recognized method; anything else
// under a path entry is not an operation.
type pathItem struct {
	Parameters []*parameterNode `json:"parameters" yaml:"parameters"`

	Get     *operationNode `json:"get" yaml:"get"`
	Post    *operationNode `json:"post" yaml:"post"`
	Put     *operationNode `json:"put" yaml:"put"`
	Patch   *operationNode `json:"patch" yaml:"patch"`
	Delete  *operationNode `json:"delete" yaml:"delete"`
	Options *operationNode `json:"options" yaml:"options"`
	Head    *operationNode `json:"head" yaml:"head"`
}

func (p *pathItem) operation(m HTTPMethod) *operationNode {
	switch m {
	case GET:
		return p.Get
	case POST:
		return p.Post
	case PUT:
		return p.Put
	case PATCH:
		return p.Patch
	case DELETE:
		return p.Delete
	case OPTIONS:
		return p.Options
	case HEAD:
		return p.Head
	}
	return nil
}

type operationNode struct {
	Summary     string                     `json:"summary" yaml:"summary"`
	Description string                     `json:"description" yaml:"description"`
	Tags        []string                   `json:"tags" yaml:"tags"`
	Parameters  []*parameterNode           `json:"parameters" yaml:"parameters"`
	RequestBody *requestBodyNode           `json:"requestBody" yaml:"requestBody"`
	Responses   *OrderedMap[*responseNode] `json:"responses" yaml:"responses"`
	Deprecated  bool                       `json:"deprecated" yaml:"deprecated"`

	// Each entry is a single-key mapping of scheme name to scope list;
	// only the names survive normalization.
	Security []map[string]any `json:"security" yaml:"security"`

	// Swagger 2.0 operation-level media-type overrides.
	Consumes []string `json:"consumes" yaml:"consumes"`
	Produces []string `json:"produces" yaml:"produces"`
}

type parameterNode struct {
	Name        string      `json:"name" yaml:"name"`
	In          string      `json:"in" yaml:"in"`
	Description string      `json:"description" yaml:"description"`
	Required    bool        `json:"required" yaml:"required"`
	Schema      *schemaNode `json:"schema" yaml:"schema"`
	Example     any         `json:"example" yaml:"example"`

	// Swagger 2.0 inline value type, used when Schema is absent.
	Type   any         `json:"type" yaml:"type"`
	Format string      `json:"format" yaml:"format"`
	Items  *schemaNode `json:"items" yaml:"items"`
	Enum   []any       `json:"enum" yaml:"enum"`
}

type requestBodyNode struct {
	Description string                      `json:"description" yaml:"description"`
	Required    bool                        `json:"required" yaml:"required"`
	Content     *OrderedMap[*mediaTypeNode] `json:"content" yaml:"content"`
}

type mediaTypeNode struct {
	Schema  *schemaNode `json:"schema" yaml:"schema"`
	Example any         `json:"example" yaml:"example"`
}

type responseNode struct {
	Description string                      `json:"description" yaml:"description"`
	Content     *OrderedMap[*mediaTypeNode] `json:"content" yaml:"content"`

	// Swagger 2.0 puts the body schema directly on the response.
	Schema *schemaNode `json:"schema" yaml:"schema"`
}

// schemaNode mirrors the SchemaRef superset shape one level closer to the
// wire. Type is any because OpenAPI 3.1 allows a list of type tags.
type schemaNode struct {
	Ref         string                   `json:"$ref" yaml:"$ref"`
	Type        any                      `json:"type" yaml:"type"`
	Format      string                   `json:"format" yaml:"format"`
	Description string                   `json:"description" yaml:"description"`
	Properties  *OrderedMap[*schemaNode] `json:"properties" yaml:"properties"`
	Required    []string                 `json:"required" yaml:"required"`
	Items       *schemaNode              `json:"items" yaml:"items"`
	Enum        []any                    `json:"enum" yaml:"enum"`
	Example     any                      `json:"example" yaml:"example"`
	Nullable    bool                     `json:"nullable" yaml:"nullable"`
	OneOf       []*schemaNode            `json:"oneOf" yaml:"oneOf"`
	AnyOf       []*schemaNode            `json:"anyOf" yaml:"anyOf"`
	AllOf       []*schemaNode            `json:"allOf" yaml:"allOf"`
}

type securitySchemeNode struct {
	Type         string `json:"type" yaml:"type"`
	Description  string `json:"description" yaml:"description"`
	In           string `json:"in" yaml:"in"`
	Scheme       string `json:"scheme" yaml:"scheme"`
	BearerFormat string `json:"bearerFormat" yaml:"bearerFormat"`
}
