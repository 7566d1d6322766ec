package spec

import (
	"sort"
	"strings"
)

// normalize turns the intermediate document tree into the unified model.
// The only fatal condition here is the dialect gate: a document that
// carries neither root marker gives downstream walkers nothing to assume
// about paths/components shape. Everything else is defaulted, never an
// error.
func normalize(doc *document) (*ApiSpec, error) {
	if doc.OpenAPI == "" && doc.Swagger == "" {
		return nil, newError(KindValidation, "missing openapi or swagger version")
	}

	api := &ApiSpec{
		Title:       strings.TrimSpace(doc.Info.Title),
		Version:     strings.TrimSpace(string(doc.Info.Version)),
		Description: strings.TrimSpace(doc.Info.Description),
	}

	if doc.isSwagger2() {
		api.Servers = serversFromHost(doc)
	} else {
		for _, s := range doc.Servers {
			api.Servers = append(api.Servers, Server{URL: s.URL, Description: s.Description})
		}
	}

	api.Endpoints = extractEndpoints(doc)
	api.Schemas = extractSchemas(doc)
	api.SecuritySchemes = extractSecuritySchemes(doc)
	api.Tags = resolveTags(doc, api.Endpoints)

	return api, nil
}

// extractEndpoints walks the path mapping in document order and emits one
// Endpoint per present operation, methods in the fixed enumeration order.
func extractEndpoints(doc *document) []Endpoint {
	var endpoints []Endpoint
	for _, entry := range doc.Paths.Entries() {
		path, item := entry.Key, entry.Value
		if item == nil {
			continue
		}
		for _, method := range Methods {
			op := item.operation(method)
			if op == nil {
				continue
			}
			endpoints = append(endpoints, buildEndpoint(doc, path, method, item, op))
		}
	}
	return endpoints
}

func buildEndpoint(doc *document, path string, method HTTPMethod, item *pathItem, op *operationNode) Endpoint {
	merged := mergeParameters(item.Parameters, op.Parameters)

	ep := Endpoint{
		ID:          string(method) + "-" + path,
		Path:        path,
		Method:      method,
		Summary:     strings.TrimSpace(op.Summary),
		Description: strings.TrimSpace(op.Description),
		Tags:        endpointTags(op),
		Deprecated:  op.Deprecated,
		Security:    securityNames(op.Security),
	}

	if doc.isSwagger2() {
		regular, body, form := partitionV2Parameters(merged)
		ep.Parameters = convertParameters(regular, true)
		ep.RequestBody = buildV2RequestBody(doc, op, body, form)
	} else {
		ep.Parameters = convertParameters(merged, false)
		if op.RequestBody != nil {
			ep.RequestBody = &RequestBody{
				Required:    op.RequestBody.Required,
				Description: strings.TrimSpace(op.RequestBody.Description),
				Content:     convertContent(op.RequestBody.Content),
			}
		}
	}

	for _, r := range op.Responses.Entries() {
		ep.Responses = append(ep.Responses, buildResponse(doc, op, r.Key, r.Value))
	}
	return ep
}

// mergeParameters concatenates path-item parameters with operation
// parameters. An operation parameter sharing name+location with a
// path-level one replaces it in place, so the path-level position is kept
// but the operation definition wins.
func mergeParameters(base, op []*parameterNode) []*parameterNode {
	merged := make([]*parameterNode, 0, len(base)+len(op))
	for _, p := range base {
		if p != nil {
			merged = append(merged, p)
		}
	}
	for _, p := range op {
		if p == nil {
			continue
		}
		replaced := false
		for i, existing := range merged {
			if existing.Name == p.Name && existing.In == p.In {
				merged[i] = p
				replaced = true
				break
			}
		}
		if !replaced {
			merged = append(merged, p)
		}
	}
	return merged
}

func convertParameters(nodes []*parameterNode, swagger2 bool) []Parameter {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]Parameter, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, convertParameter(n, swagger2))
	}
	return out
}

func convertParameter(n *parameterNode, swagger2 bool) Parameter {
	p := Parameter{
		Name:        n.Name,
		In:          n.In,
		Description: strings.TrimSpace(n.Description),
		Required:    n.Required,
		Example:     n.Example,
	}
	// Path parameters are unconditionally required by HTTP semantics,
	// whatever the document claims.
	if p.In == "path" {
		p.Required = true
	}
	switch {
	case n.Schema != nil:
		p.Schema = convertSchema(n.Schema)
	case swagger2 && n.Type != nil:
		p.Schema = inlineV2Schema(n)
	default:
		p.Schema = convertSchema(nil)
	}
	return p
}

func buildResponse(doc *document, op *operationNode, status string, n *responseNode) Response {
	if n == nil {
		return Response{StatusCode: status}
	}
	r := Response{
		StatusCode:  status,
		Description: strings.TrimSpace(n.Description),
	}
	if doc.isSwagger2() {
		r.Content = v2ResponseContent(doc, op, n)
	} else {
		r.Content = convertContent(n.Content)
	}
	return r
}

func convertContent(content *OrderedMap[*mediaTypeNode]) *OrderedMap[MediaType] {
	if content.Len() == 0 {
		return nil
	}
	out := NewOrderedMap[MediaType]()
	for _, entry := range content.Entries() {
		var mt MediaType
		if entry.Value != nil {
			mt.Schema = convertSchema(entry.Value.Schema)
			mt.Example = entry.Value.Example
		} else {
			mt.Schema = convertSchema(nil)
		}
		out.Set(entry.Key, mt)
	}
	return out
}

// convertSchema is the recursive SchemaRef conversion. It never fails:
// every field is optional and simply omitted when absent. An absent node
// means "accept any object-shaped value", and a $ref is carried verbatim
// with no other fields populated — the reference is a string, never
// followed, so recursion is bounded by the document's own nesting depth.
func convertSchema(n *schemaNode) *SchemaRef {
	if n == nil {
		return &SchemaRef{Type: "object"}
	}
	if n.Ref != "" {
		return &SchemaRef{Ref: n.Ref}
	}
	out := &SchemaRef{
		Format:      n.Format,
		Description: strings.TrimSpace(n.Description),
		Example:     n.Example,
		Nullable:    n.Nullable,
	}
	typ, sawNull := typeTag(n.Type)
	out.Type = typ
	if sawNull {
		out.Nullable = true
	}
	if len(n.Required) > 0 {
		out.Required = append([]string(nil), n.Required...)
	}
	if len(n.Enum) > 0 {
		out.Enum = append([]any(nil), n.Enum...)
	}
	if n.Items != nil {
		out.Items = convertSchema(n.Items)
	}
	if n.Properties.Len() > 0 {
		out.Properties = NewOrderedMap[*SchemaRef]()
		for _, entry := range n.Properties.Entries() {
			out.Properties.Set(entry.Key, convertSchema(entry.Value))
		}
	}
	for _, sub := range n.OneOf {
		out.OneOf = append(out.OneOf, convertSchema(sub))
	}
	for _, sub := range n.AnyOf {
		out.AnyOf = append(out.AnyOf, convertSchema(sub))
	}
	for _, sub := range n.AllOf {
		out.AllOf = append(out.AllOf, convertSchema(sub))
	}
	return out
}

// typeTag collapses the wire-level type, which OpenAPI 3.1 allows to be a
// list ("type": ["string", "null"]), into a single tag plus a null marker.
func typeTag(t any) (string, bool) {
	switch v := t.(type) {
	case string:
		return v, false
	case []any:
		tag := ""
		sawNull := false
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				continue
			}
			if s == "null" {
				sawNull = true
				continue
			}
			if tag == "" {
				tag = s
			}
		}
		return tag, sawNull
	default:
		return "", false
	}
}

// extractSchemas walks the named component-schema mapping of whichever
// dialect is present. Absence yields an empty list, not an error. A name
// with an absent type defaults to "object".
func extractSchemas(doc *document) []Schema {
	components := doc.componentSchemas()
	if components.Len() == 0 {
		return nil
	}
	out := make([]Schema, 0, components.Len())
	for _, entry := range components.Entries() {
		ref := convertSchema(entry.Value)
		if !ref.IsRef() && ref.Type == "" {
			ref.Type = "object"
		}
		out = append(out, Schema{Name: entry.Key, SchemaRef: *ref})
	}
	return out
}

func (d *document) componentSchemas() *OrderedMap[*schemaNode] {
	if d.isSwagger2() {
		return d.Definitions
	}
	if d.Components == nil {
		return nil
	}
	return d.Components.Schemas
}

func extractSecuritySchemes(doc *document) []SecurityScheme {
	var schemes *OrderedMap[*securitySchemeNode]
	if doc.isSwagger2() {
		schemes = doc.SecurityDefinitions
	} else if doc.Components != nil {
		schemes = doc.Components.SecuritySchemes
	}
	if schemes.Len() == 0 {
		return nil
	}
	out := make([]SecurityScheme, 0, schemes.Len())
	for _, entry := range schemes.Entries() {
		s := SecurityScheme{Name: entry.Key}
		if entry.Value != nil {
			s.Type = entry.Value.Type
			s.Description = strings.TrimSpace(entry.Value.Description)
			s.In = entry.Value.In
			s.Scheme = entry.Value.Scheme
			s.BearerFormat = entry.Value.BearerFormat
		}
		out = append(out, s)
	}
	return out
}

// securityNames keeps only the scheme names from the per-operation
// security-requirement list, discarding scopes. Names within one
// requirement entry are sorted because the entry is a mapping.
func securityNames(reqs []map[string]any) []string {
	if len(reqs) == 0 {
		return nil
	}
	var names []string
	for _, req := range reqs {
		entry := make([]string, 0, len(req))
		for name := range req {
			entry = append(entry, name)
		}
		sort.Strings(entry)
		names = append(names, entry...)
	}
	return names
}

func endpointTags(op *operationNode) []string {
	var tags []string
	for _, t := range op.Tags {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	if len(tags) == 0 {
		return []string{"default"}
	}
	return tags
}

// resolveTags uses the document's declared tag list when present and
// non-empty, otherwise synthesizes the distinct tag names referenced by
// endpoints, in first-seen order.
func resolveTags(doc *document, endpoints []Endpoint) []Tag {
	if len(doc.Tags) > 0 {
		out := make([]Tag, 0, len(doc.Tags))
		for _, t := range doc.Tags {
			out = append(out, Tag{Name: t.Name, Description: strings.TrimSpace(t.Description)})
		}
		return out
	}
	seen := make(map[string]bool)
	var out []Tag
	for _, ep := range endpoints {
		for _, name := range ep.Tags {
			if seen[name] {
				continue
			}
			seen[name] = true
			out = append(out, Tag{Name: name})
		}
	}
	return out
}
