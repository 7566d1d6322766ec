// Package render turns the unified model into viewer artifacts: Markdown
// documentation, an ordered JSON dump, and a DOT relationship graph. All
// renderers are read-only consumers of the model.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"specview/internal/spec"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// TagGroup pairs a tag with the endpoints referencing it, in model order.
type TagGroup struct {
	Tag       spec.Tag
	Endpoints []spec.Endpoint
}

type docsData struct {
	Spec   *spec.ApiSpec
	Groups []TagGroup
}

// Markdown renders browsable documentation for the whole model.
func Markdown(api *spec.ApiSpec) (string, error) {
	if api == nil {
		return "", fmt.Errorf("render: nil spec")
	}
	funcs := template.FuncMap{
		"schemaLabel": SchemaLabel,
		"requiredField": func(name string, required []string) bool {
			for _, r := range required {
				if r == name {
					return true
				}
			}
			return false
		},
	}
	t, err := template.New("docs.md.tmpl").Funcs(sprig.TxtFuncMap()).Funcs(funcs).ParseFS(templatesFS, "templates/docs.md.tmpl")
	if err != nil {
		return "", fmt.Errorf("render: parse template: %w", err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, docsData{Spec: api, Groups: GroupByTag(api)}); err != nil {
		return "", fmt.Errorf("render: execute template: %w", err)
	}
	return buf.String(), nil
}

// GroupByTag buckets endpoints under each model tag, keeping both tag
// order and endpoint order. Every endpoint has at least one tag, so every
// endpoint lands in at least one group.
func GroupByTag(api *spec.ApiSpec) []TagGroup {
	groups := make([]TagGroup, 0, len(api.Tags))
	for _, tag := range api.Tags {
		g := TagGroup{Tag: tag}
		for _, ep := range api.Endpoints {
			for _, name := range ep.Tags {
				if name == tag.Name {
					g.Endpoints = append(g.Endpoints, ep)
					break
				}
			}
		}
		groups = append(groups, g)
	}
	return groups
}

// SchemaLabel produces a short human-readable label for a type
// descriptor, following the check-$ref-first rule.
func SchemaLabel(s *spec.SchemaRef) string {
	if s == nil {
		return ""
	}
	if s.IsRef() {
		return s.RefName()
	}
	switch {
	case len(s.OneOf) > 0:
		return compositionLabel("one of", s.OneOf)
	case len(s.AnyOf) > 0:
		return compositionLabel("any of", s.AnyOf)
	case len(s.AllOf) > 0:
		return compositionLabel("all of", s.AllOf)
	}
	if s.Type == "array" {
		inner := SchemaLabel(s.Items)
		if inner == "" {
			inner = "any"
		}
		return "array of " + inner
	}
	label := s.Type
	if label == "" {
		label = "any"
	}
	if s.Format != "" {
		label += " (" + s.Format + ")"
	}
	if len(s.Enum) > 0 {
		label += " enum"
	}
	return label
}

func compositionLabel(kind string, members []*spec.SchemaRef) string {
	parts := make([]string, 0, len(members))
	for _, m := range members {
		parts = append(parts, SchemaLabel(m))
	}
	return kind + ": " + strings.Join(parts, " | ")
}
