package spec

import "strings"

// Swagger 2.0 specific walkers. The 2.0 shape spreads what 3.x keeps in
// one place: the server lives in host/basePath/schemes, body and form
// payloads are parameters, and response bodies hang a bare schema plus a
// produces list. These helpers fold those shapes into the same unified
// model the 3.x walkers fill, and never rewrite $ref strings —
// "#/definitions/Pet" stays exactly as written.

// serversFromHost synthesizes a single server entry from the 2.0 host
// triple. No host means no servers; consumers supply their own default
// base URL.
func serversFromHost(doc *document) []Server {
	host := strings.TrimSpace(doc.Host)
	if host == "" {
		return nil
	}
	scheme := "https"
	if len(doc.Schemes) > 0 && strings.TrimSpace(doc.Schemes[0]) != "" {
		scheme = strings.TrimSpace(doc.Schemes[0])
	}
	return []Server{{URL: scheme + "://" + host + doc.BasePath}}
}

// partitionV2Parameters splits a merged parameter list into regular
// parameters (path/query/header), the body parameter, and formData
// parameters. Body and formData never appear in the model's parameter
// list; they become the request body.
func partitionV2Parameters(params []*parameterNode) (regular []*parameterNode, body *parameterNode, form []*parameterNode) {
	for _, p := range params {
		switch p.In {
		case "body":
			body = p
		case "formData":
			form = append(form, p)
		default:
			regular = append(regular, p)
		}
	}
	return regular, body, form
}

// inlineV2Schema builds a SchemaRef from the value-type fields 2.0 puts
// directly on a parameter.
func inlineV2Schema(n *parameterNode) *SchemaRef {
	out := &SchemaRef{Format: n.Format}
	typ, _ := typeTag(n.Type)
	out.Type = typ
	if len(n.Enum) > 0 {
		out.Enum = append([]any(nil), n.Enum...)
	}
	if n.Items != nil {
		out.Items = convertSchema(n.Items)
	}
	return out
}

// buildV2RequestBody converts a 2.0 body parameter, or a set of formData
// parameters, into a RequestBody. Media types come from the operation's
// consumes list, then the document's, then "application/json".
func buildV2RequestBody(doc *document, op *operationNode, body *parameterNode, form []*parameterNode) *RequestBody {
	if body != nil {
		rb := &RequestBody{
			Required:    body.Required,
			Description: strings.TrimSpace(body.Description),
			Content:     NewOrderedMap[MediaType](),
		}
		for _, mime := range v2MediaTypes(op.Consumes, doc.Consumes) {
			rb.Content.Set(mime, MediaType{Schema: convertSchema(body.Schema)})
		}
		return rb
	}

	if len(form) == 0 {
		return nil
	}

	// formData parameters collapse into one form-encoded object schema.
	schema := &SchemaRef{Type: "object", Properties: NewOrderedMap[*SchemaRef]()}
	required := false
	multipart := false
	for _, p := range form {
		var field *SchemaRef
		if typ, _ := typeTag(p.Type); typ == "file" {
			multipart = true
			field = &SchemaRef{Type: "string", Format: "binary"}
		} else {
			field = inlineV2Schema(p)
		}
		field.Description = strings.TrimSpace(p.Description)
		schema.Properties.Set(p.Name, field)
		if p.Required {
			schema.Required = append(schema.Required, p.Name)
			required = true
		}
	}
	mime := "application/x-www-form-urlencoded"
	if multipart {
		mime = "multipart/form-data"
	}
	rb := &RequestBody{Required: required, Content: NewOrderedMap[MediaType]()}
	rb.Content.Set(mime, MediaType{Schema: schema})
	return rb
}

// v2ResponseContent maps a 2.0 response schema across the produces list.
// A response without a schema has no content at all.
func v2ResponseContent(doc *document, op *operationNode, n *responseNode) *OrderedMap[MediaType] {
	if n.Schema == nil {
		return nil
	}
	out := NewOrderedMap[MediaType]()
	for _, mime := range v2MediaTypes(op.Produces, doc.Produces) {
		out.Set(mime, MediaType{Schema: convertSchema(n.Schema)})
	}
	return out
}

func v2MediaTypes(operationLevel, documentLevel []string) []string {
	for _, candidates := range [][]string{operationLevel, documentLevel} {
		var mimes []string
		for _, m := range candidates {
			if m = strings.TrimSpace(m); m != "" {
				mimes = append(mimes, m)
			}
		}
		if len(mimes) > 0 {
			return mimes
		}
	}
	return []string{"application/json"}
}
