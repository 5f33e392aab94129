package nullmap

import (
	"iter"

	"github.com/yndnr/nullmap-go/pkg/sentinel"
)

// Entry is a key and its decoded value.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// All returns a sequence of every entry with its decoded value, nil
// values included.
//
// The sequence is weakly consistent: it reflects the map at some point at
// or after the call for each shard, never yields a key twice, and may or
// may not include changes made while it runs. The loop body may modify
// the map. Each call to the sequence starts a fresh pass.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		m.backend.Range(func(key K, s sentinel.Value[V]) bool {
			v, ok := s.Decode()
			if !ok {
				return true
			}
			return yield(key, v)
		})
	}
}

// Keys returns a weakly consistent sequence of the map's keys.
func (m *Map[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range m.All() {
			if !yield(k) {
				return
			}
		}
	}
}

// Values returns a weakly consistent sequence of the map's values.
func (m *Map[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range m.All() {
			if !yield(v) {
				return
			}
		}
	}
}

// ForEach calls fn for each entry until fn returns false.
func (m *Map[K, V]) ForEach(fn func(key K, value V) bool) {
	for k, v := range m.All() {
		if !fn(k, v) {
			return
		}
	}
}

// Entries collects All into a slice.
func (m *Map[K, V]) Entries() []Entry[K, V] {
	entries := make([]Entry[K, V], 0, m.Size())
	for k, v := range m.All() {
		entries = append(entries, Entry[K, V]{Key: k, Value: v})
	}
	return entries
}

// Snapshot copies All into a plain map.
func (m *Map[K, V]) Snapshot() map[K]V {
	out := make(map[K]V, m.Size())
	for k, v := range m.All() {
		out[k] = v
	}
	return out
}
