package render

import (
	"fmt"
	"sort"
	"strings"

	"specview/internal/spec"
)

// Relationship graph over preserved $ref strings. References are opaque
// in the model, so the graph is where a consumer first notices dangling
// targets; those are rendered as distinct "missing" nodes rather than
// reported as errors.

type GraphEdge struct {
	From string
	To   string
}

type Graph struct {
	Endpoints []string
	Schemas   []string
	// Missing holds referenced names with no declared component schema.
	Missing []string
	Edges   []GraphEdge
}

// BuildGraph collects endpoint-to-schema and schema-to-schema reference
// edges from the model.
func BuildGraph(api *spec.ApiSpec) *Graph {
	declared := make(map[string]bool, len(api.Schemas))
	for _, s := range api.Schemas {
		declared[s.Name] = true
	}

	g := &Graph{}
	seenEdges := make(map[GraphEdge]bool)
	missing := make(map[string]bool)

	addEdge := func(from, to string) {
		if !declared[to] {
			missing[to] = true
		}
		e := GraphEdge{From: from, To: to}
		if seenEdges[e] {
			return
		}
		seenEdges[e] = true
		g.Edges = append(g.Edges, e)
	}

	for _, ep := range api.Endpoints {
		g.Endpoints = append(g.Endpoints, ep.ID)
		for _, target := range endpointRefs(ep) {
			addEdge(ep.ID, target)
		}
	}
	for _, s := range api.Schemas {
		g.Schemas = append(g.Schemas, s.Name)
		for _, target := range collectRefs(s.Descriptor(), nil) {
			addEdge(s.Name, target)
		}
	}

	g.Missing = make([]string, 0, len(missing))
	for name := range missing {
		g.Missing = append(g.Missing, name)
	}
	sort.Strings(g.Missing)
	return g
}

// DOT renders the graph in Graphviz dot syntax. Endpoints are boxes,
// schemas ellipses, missing reference targets dashed.
func DOT(api *spec.ApiSpec) string {
	g := BuildGraph(api)
	var b strings.Builder
	b.WriteString("digraph apispec {\n")
	b.WriteString("  rankdir=LR;\n")
	for _, id := range g.Endpoints {
		fmt.Fprintf(&b, "  %q [shape=box];\n", id)
	}
	for _, name := range g.Schemas {
		fmt.Fprintf(&b, "  %q [shape=ellipse];\n", name)
	}
	for _, name := range g.Missing {
		fmt.Fprintf(&b, "  %q [shape=ellipse, style=dashed, label=%q];\n", name, name+" (missing)")
	}
	for _, e := range g.Edges {
		fmt.Fprintf(&b, "  %q -> %q;\n", e.From, e.To)
	}
	b.WriteString("}\n")
	return b.String()
}

func endpointRefs(ep spec.Endpoint) []string {
	var refs []string
	for _, p := range ep.Parameters {
		refs = collectRefs(p.Schema, refs)
	}
	if ep.RequestBody != nil {
		for _, entry := range ep.RequestBody.Content.Entries() {
			refs = collectRefs(entry.Value.Schema, refs)
		}
	}
	for _, r := range ep.Responses {
		for _, entry := range r.Content.Entries() {
			refs = collectRefs(entry.Value.Schema, refs)
		}
	}
	return refs
}

// collectRefs walks a descriptor tree gathering referenced names. The
// tree is finite because references are strings, not resolved schemas, so
// no visited-set is needed.
func collectRefs(s *spec.SchemaRef, acc []string) []string {
	if s == nil {
		return acc
	}
	if s.IsRef() {
		return append(acc, s.RefName())
	}
	acc = collectRefs(s.Items, acc)
	for _, entry := range s.Properties.Entries() {
		acc = collectRefs(entry.Value, acc)
	}
	for _, member := range s.OneOf {
		acc = collectRefs(member, acc)
	}
	for _, member := range s.AnyOf {
		acc = collectRefs(member, acc)
	}
	for _, member := range s.AllOf {
		acc = collectRefs(member, acc)
	}
	return acc
}
