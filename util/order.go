package util

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// OrderedMap is a map whose iteration is ordered by key.
// The zero value is an empty map that allocates on first insert.
type OrderedMap[K constraints.Ordered, V any] struct {
	data map[K]V
}

// OrderedMapEntry is a single (key, value) pair of the map.
type OrderedMapEntry[K constraints.Ordered, V any] struct {
	Key   K
	Value V
}

func NewOrderedMap[K constraints.Ordered, V any]() OrderedMap[K, V] {
	return OrderedMap[K, V]{data: map[K]V{}}
}

// Insert sets key to value, replacing any previous value.
func (m *OrderedMap[K, V]) Insert(key K, value V) {
	if m.data == nil {
		m.data = map[K]V{}
	}
	m.data[key] = value
}

func (m *OrderedMap[K, V]) Lookup(key K) (V, bool) {
	val, ok := m.data[key]
	return val, ok
}

// Clone returns a copy that does not share storage with m.
func (m *OrderedMap[K, V]) Clone() OrderedMap[K, V] {
	data := make(map[K]V, len(m.data))
	maps.Copy(data, m.data)
	return OrderedMap[K, V]{data: data}
}

func (m *OrderedMap[K, V]) Len() int {
	return len(m.data)
}

// Keys returns the sorted keys.
func (m *OrderedMap[K, V]) Keys() []K {
	return SortedKeys(m.data)
}

// Entries returns the pairs ordered by key.
func (m *OrderedMap[K, V]) Entries() []OrderedMapEntry[K, V] {
	return MappedSlice(m.Keys(), func(k K) OrderedMapEntry[K, V] {
		return OrderedMapEntry[K, V]{Key: k, Value: m.data[k]}
	})
}

// SortedKeys returns the keys of a plain map in ascending order.
func SortedKeys[K constraints.Ordered, V any](m map[K]V) []K {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}
