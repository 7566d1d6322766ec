package spec

// Unified API model produced by Load and consumed read-only by the
// renderers, the viewer server and the request executor. Values are built
// once per load and never mutated afterward; a reload replaces the whole
// ApiSpec.

type HTTPMethod string

const (
	GET     HTTPMethod = "get"
	POST    HTTPMethod = "post"
	PUT     HTTPMethod = "put"
	PATCH   HTTPMethod = "patch"
	DELETE  HTTPMethod = "delete"
	OPTIONS HTTPMethod = "options"
	HEAD    HTTPMethod = "head"
)

// Methods enumerates the operations recognized under a path item, in the
// order endpoints are emitted. Any other key on a path item (shared
// parameters, vendor extensions) is not an operation.
var Methods = []HTTPMethod{GET, POST, PUT, PATCH, DELETE, OPTIONS, HEAD}

type ApiSpec struct {
	Title           string           `json:"title"`
	Version         string           `json:"version"`
	Description     string           `json:"description,omitempty"`
	Servers         []Server         `json:"servers,omitempty"`
	Endpoints       []Endpoint       `json:"endpoints"`
	Schemas         []Schema         `json:"schemas"`
	Tags            []Tag            `json:"tags,omitempty"`
	SecuritySchemes []SecurityScheme `json:"securitySchemes,omitempty"`
}

type Server struct {
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

// Endpoint is one HTTP operation. ID is derived as "<method>-<path>" so
// re-parsing the same document yields identical identifiers.
type Endpoint struct {
	ID          string       `json:"id"`
	Path        string       `json:"path"`
	Method      HTTPMethod   `json:"method"`
	Summary     string       `json:"summary,omitempty"`
	Description string       `json:"description,omitempty"`
	Tags        []string     `json:"tags"`
	Parameters  []Parameter  `json:"parameters,omitempty"`
	RequestBody *RequestBody `json:"requestBody,omitempty"`
	Responses   []Response   `json:"responses,omitempty"`
	Security    []string     `json:"security,omitempty"`
	Deprecated  bool         `json:"deprecated,omitempty"`
}

type Parameter struct {
	Name        string     `json:"name"`
	In          string     `json:"in"` // path|query|header|cookie
	Description string     `json:"description,omitempty"`
	Required    bool       `json:"required"`
	Schema      *SchemaRef `json:"schema"`
	Example     any        `json:"example,omitempty"`
}

type RequestBody struct {
	Required    bool                   `json:"required"`
	Description string                 `json:"description,omitempty"`
	Content     *OrderedMap[MediaType] `json:"content,omitempty"`
}

// Response carries a status-code string which is not necessarily numeric
// ("default", "4XX").
type Response struct {
	StatusCode  string                 `json:"statusCode"`
	Description string                 `json:"description"`
	Content     *OrderedMap[MediaType] `json:"content,omitempty"`
}

type MediaType struct {
	Schema  *SchemaRef `json:"schema"`
	Example any        `json:"example,omitempty"`
}

// Schema is a named, reusable component schema. Names are assumed unique;
// a colliding name replaces the earlier value but keeps its position.
type Schema struct {
	Name string `json:"name"`
	SchemaRef
}

// Descriptor returns the schema's type descriptor as a standalone
// SchemaRef for consumers that operate on descriptors uniformly.
func (s Schema) Descriptor() *SchemaRef {
	ref := s.SchemaRef
	return &ref
}

// SchemaRef is the recursive type descriptor used wherever a type appears
// inline. When Ref is set it is authoritative and no other field is
// populated; the reference is carried verbatim and never resolved here,
// so the model itself contains no cycles even for self-referential
// documents. Every field is optional: consumers must tolerate absence.
type SchemaRef struct {
	Ref         string                  `json:"$ref,omitempty"`
	Type        string                  `json:"type,omitempty"`
	Format      string                  `json:"format,omitempty"`
	Description string                  `json:"description,omitempty"`
	Properties  *OrderedMap[*SchemaRef] `json:"properties,omitempty"`
	Required    []string                `json:"required,omitempty"`
	Items       *SchemaRef              `json:"items,omitempty"`
	Enum        []any                   `json:"enum,omitempty"`
	Example     any                     `json:"example,omitempty"`
	Nullable    bool                    `json:"nullable,omitempty"`
	OneOf       []*SchemaRef            `json:"oneOf,omitempty"`
	AnyOf       []*SchemaRef            `json:"anyOf,omitempty"`
	AllOf       []*SchemaRef            `json:"allOf,omitempty"`
}

// IsRef reports whether the descriptor is a named reference. Consumers
// must check this before inspecting Type/Properties/Items.
func (s *SchemaRef) IsRef() bool { return s != nil && s.Ref != "" }

// RefName returns the last segment of the reference pointer, which is the
// component name under both dialects ("#/components/schemas/Pet" and
// "#/definitions/Pet" both yield "Pet").
func (s *SchemaRef) RefName() string {
	if s == nil || s.Ref == "" {
		return ""
	}
	ref := s.Ref
	for i := len(ref) - 1; i >= 0; i-- {
		if ref[i] == '/' {
			return ref[i+1:]
		}
	}
	return ref
}

type SecurityScheme struct {
	Name         string `json:"name"`
	Type         string `json:"type"` // apiKey|http|oauth2|openIdConnect|basic
	Description  string `json:"description,omitempty"`
	In           string `json:"in,omitempty"`
	Scheme       string `json:"scheme,omitempty"`
	BearerFormat string `json:"bearerFormat,omitempty"`
}

type Tag struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
