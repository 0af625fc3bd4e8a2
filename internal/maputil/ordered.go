package maputil

import (
	"bytes"
	"encoding/json"
	"iter"

	"go.yaml.in/yaml/v4"
)

// Ordered is a string-keyed map that remembers insertion order.
//
// Setting an existing key replaces its value but keeps its original position,
// which mirrors how decoded JSON objects behave when a key repeats. The zero
// value is ready to use.
type Ordered[V any] struct {
	keys   []string
	values map[string]V
}

// NewOrdered returns an empty Ordered map with room for n entries.
func NewOrdered[V any](n int) *Ordered[V] {
	return &Ordered[V]{
		keys:   make([]string, 0, n),
		values: make(map[string]V, n),
	}
}

// Set stores v under key.
func (m *Ordered[V]) Set(key string, v V) {
	if m.values == nil {
		m.values = make(map[string]V)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

// Get returns the value stored under key.
func (m *Ordered[V]) Get(key string) (V, bool) {
	var zero V
	if m == nil {
		return zero, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Len returns the number of entries. A nil map has length zero.
func (m *Ordered[V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns a copy of the keys in insertion order.
func (m *Ordered[V]) Keys() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.keys...)
}

// All iterates over entries in insertion order.
func (m *Ordered[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		if m == nil {
			return
		}
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

// MarshalJSON writes the entries as a JSON object in insertion order.
// A nil or empty map is written as {}.
func (m *Ordered[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML returns a mapping node with the entries in insertion order.
func (m *Ordered[V]) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for k, v := range m.All() {
		valNode := &yaml.Node{}
		if err := valNode.Encode(v); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			valNode,
		)
	}
	return node, nil
}
