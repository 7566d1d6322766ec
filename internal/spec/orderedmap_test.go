package spec

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestOrderedMap_YAMLKeepsDocumentOrder(t *testing.T) {
	t.Parallel()

	var m OrderedMap[int]
	err := yaml.Unmarshal([]byte("zebra: 1\napple: 2\nmango: 3\n"), &m)
	require.NoError(t, err)
	assert.Equal(t, []string{"zebra", "apple", "mango"}, m.Keys())

	v, ok := m.Get("apple")
	require.True(t, ok)
	assert.Equal(t, 2, v)
	_, ok = m.Get("missing")
	assert.False(t, ok)
}

func TestOrderedMap_YAMLNumericKeys(t *testing.T) {
	t.Parallel()

	// Unquoted response codes decode as scalar keys, not strings.
	var m OrderedMap[string]
	err := yaml.Unmarshal([]byte("200: ok\n404: gone\ndefault: other\n"), &m)
	require.NoError(t, err)
	assert.Equal(t, []string{"200", "404", "default"}, m.Keys())
}

func TestOrderedMap_JSONKeepsDocumentOrder(t *testing.T) {
	t.Parallel()

	var m OrderedMap[string]
	err := json.Unmarshal([]byte(`{"c": "3", "a": "1", "b": "2"}`), &m)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, m.Keys())
}

func TestOrderedMap_JSONDuplicateKeyLastWinsFirstPosition(t *testing.T) {
	t.Parallel()

	var m OrderedMap[int]
	err := json.Unmarshal([]byte(`{"a": 1, "b": 2, "a": 3}`), &m)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, m.Keys())
	v, _ := m.Get("a")
	assert.Equal(t, 3, v)
}

func TestOrderedMap_MarshalJSONRoundTrip(t *testing.T) {
	t.Parallel()

	m := NewOrderedMap[int]()
	m.Set("z", 26)
	m.Set("a", 1)
	m.Set("m", 13)

	out, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `{"z":26,"a":1,"m":13}`, string(out))
}

func TestOrderedMap_NilReceiver(t *testing.T) {
	t.Parallel()

	var m *OrderedMap[int]
	assert.Zero(t, m.Len())
	assert.Nil(t, m.Keys())
	_, ok := m.Get("anything")
	assert.False(t, ok)
}

func TestOrderedMap_Entries(t *testing.T) {
	t.Parallel()

	m := NewOrderedMap[string]()
	m.Set("first", "1")
	m.Set("second", "2")

	var keys []string
	for _, e := range m.Entries() {
		keys = append(keys, e.Key)
	}
	assert.Equal(t, []string{"first", "second"}, keys)
	assert.Equal(t, 2, m.Len())
}
