package spec

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// OrderedMap is a string-keyed map that remembers document order. The
// OpenAPI shapes the model cares about (paths, properties, media types,
// component schemas) are all semantically ordered mappings, and Go maps
// would scramble them; this type keeps the key sequence exactly as it
// appears in the source text, for both YAML and JSON input.
//
// Set on an existing key replaces the value but keeps the original
// position, which gives duplicate component names last-wins semantics
// without reordering.
type OrderedMap[V any] struct {
	keys   []string
	values map[string]V
}

func NewOrderedMap[V any]() *OrderedMap[V] {
	return &OrderedMap[V]{values: make(map[string]V)}
}

func (m *OrderedMap[V]) Set(key string, value V) {
	if m.values == nil {
		m.values = make(map[string]V)
	}
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

func (m *OrderedMap[V]) Get(key string) (V, bool) {
	if m == nil || m.values == nil {
		var zero V
		return zero, false
	}
	v, ok := m.values[key]
	return v, ok
}

func (m *OrderedMap[V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in document order. The returned slice is shared;
// callers must not mutate it.
func (m *OrderedMap[V]) Keys() []string {
	if m == nil {
		return nil
	}
	return m.keys
}

type OrderedEntry[V any] struct {
	Key   string
	Value V
}

// Entries materializes the map as an ordered slice of key/value pairs.
func (m *OrderedMap[V]) Entries() []OrderedEntry[V] {
	if m == nil {
		return nil
	}
	out := make([]OrderedEntry[V], 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, OrderedEntry[V]{Key: k, Value: m.values[k]})
	}
	return out
}

// UnmarshalYAML decodes a YAML mapping node, preserving key order by
// walking the node content pairwise instead of decoding into a Go map.
func (m *OrderedMap[V]) UnmarshalYAML(node *yaml.Node) error {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping, got %s", node.Line, node.Tag)
	}
	m.values = make(map[string]V, len(node.Content)/2)
	m.keys = m.keys[:0]
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]
		if keyNode.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: expected a scalar mapping key", keyNode.Line)
		}
		// Raw scalar text, so unquoted numeric keys like status codes
		// ("200":) stay strings.
		key := keyNode.Value
		var value V
		if err := valNode.Decode(&value); err != nil {
			return fmt.Errorf("line %d: value for %q: %w", valNode.Line, key, err)
		}
		m.Set(key, value)
	}
	return nil
}

// UnmarshalJSON decodes a JSON object, preserving key order by consuming
// decoder tokens instead of round-tripping through a Go map.
func (m *OrderedMap[V]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected an object, got %v", tok)
	}
	m.values = make(map[string]V)
	m.keys = m.keys[:0]
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("expected an object key, got %v", keyTok)
		}
		var value V
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("value for %q: %w", key, err)
		}
		m.Set(key, value)
	}
	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// MarshalJSON emits the entries in document order.
func (m *OrderedMap[V]) MarshalJSON() ([]byte, error) {
	if m == nil || len(m.keys) == 0 {
		return []byte("{}"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyJSON, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(keyJSON)
		buf.WriteByte(':')
		valJSON, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(valJSON)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
