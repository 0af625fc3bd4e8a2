package maputil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"
)

func TestOrdered_SetKeepsFirstPosition(t *testing.T) {
	var m Ordered[string]
	m.Set("symbol", "first")
	m.Set("count", "second")
	m.Set("symbol", "replaced")

	assert.Equal(t, []string{"symbol", "count"}, m.Keys())
	v, ok := m.Get("symbol")
	require.True(t, ok)
	assert.Equal(t, "replaced", v)
	assert.Equal(t, 2, m.Len())
}

func TestOrdered_NilReceiver(t *testing.T) {
	var m *Ordered[int]
	assert.Equal(t, 0, m.Len())
	assert.Nil(t, m.Keys())
	_, ok := m.Get("missing")
	assert.False(t, ok)

	data, err := m.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestOrdered_AllStopsEarly(t *testing.T) {
	m := NewOrdered[int](3)
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("c", 3)

	var seen []string
	for k := range m.All() {
		seen = append(seen, k)
		if k == "b" {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestOrdered_MarshalJSONPreservesOrder(t *testing.T) {
	m := NewOrdered[any](3)
	m.Set("zeta", 1)
	m.Set("alpha", "x")
	m.Set("证券代码", true)

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `{"zeta":1,"alpha":"x","证券代码":true}`, string(data))
}

func TestOrdered_MarshalJSONNested(t *testing.T) {
	type wrapper struct {
		Fields *Ordered[int] `json:"fields"`
	}
	m := NewOrdered[int](2)
	m.Set("b", 2)
	m.Set("a", 1)

	data, err := json.MarshalIndent(wrapper{Fields: m}, "", "  ")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"fields\": {\n    \"b\": 2,\n    \"a\": 1\n  }\n}", string(data))
}

func TestOrdered_MarshalYAMLPreservesOrder(t *testing.T) {
	m := NewOrdered[string](2)
	m.Set("second", "2")
	m.Set("first", "1")

	data, err := yaml.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, "second: \"2\"\nfirst: \"1\"\n", string(data))
}
