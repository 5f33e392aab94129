// Package cmap provides a concurrent-safe sharded map.
package cmap

// Range iterates over all key-value pairs.
//
// The callback returns false to stop iteration.
// Each shard is copied under its read lock and the callback runs without
// any lock held, so the view is weakly consistent: an entry changed during
// iteration may be seen with either its old or new value, or not at all,
// but no entry is reported twice.
func (m *Map[K, V]) Range(fn func(key K, value V) bool) {
	type entry struct {
		key   K
		value V
	}
	var buf []entry
	for _, shard := range m.shards {
		shard.mu.RLock()
		buf = buf[:0]
		for k, v := range shard.items {
			buf = append(buf, entry{k, v})
		}
		shard.mu.RUnlock()

		for _, e := range buf {
			if !fn(e.key, e.value) {
				return
			}
		}
	}
}

// Keys returns all keys.
func (m *Map[K, V]) Keys() []K {
	keys := make([]K, 0, m.Count())
	m.Range(func(key K, _ V) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

// Values returns all values.
func (m *Map[K, V]) Values() []V {
	values := make([]V, 0, m.Count())
	m.Range(func(_ K, value V) bool {
		values = append(values, value)
		return true
	})
	return values
}

// Item is a key-value pair returned by Items.
type Item[K comparable, V any] struct {
	Key   K
	Value V
}

// Items returns all key-value pairs as a slice.
func (m *Map[K, V]) Items() []Item[K, V] {
	items := make([]Item[K, V], 0, m.Count())
	m.Range(func(key K, value V) bool {
		items = append(items, Item[K, V]{Key: key, Value: value})
		return true
	})
	return items
}

// ContainsValue reports whether any key maps to a value equal to value
// under the map's equality.
func (m *Map[K, V]) ContainsValue(value V) bool {
	found := false
	m.Range(func(_ K, v V) bool {
		if m.equal(v, value) {
			found = true
			return false
		}
		return true
	})
	return found
}

// ShardCount returns the number of shards.
func (m *Map[K, V]) ShardCount() int {
	return len(m.shards)
}

// ShardStats returns statistics about each shard.
type ShardStats struct {
	Index int
	Count int
}

// Stats returns statistics about all shards.
func (m *Map[K, V]) Stats() []ShardStats {
	stats := make([]ShardStats, len(m.shards))
	for i, shard := range m.shards {
		shard.mu.RLock()
		stats[i] = ShardStats{
			Index: i,
			Count: len(shard.items),
		}
		shard.mu.RUnlock()
	}
	return stats
}

// RangeWithLimit iterates over at most limit key-value pairs.
// Useful for pagination scenarios. It returns the number of pairs for
// which the callback returned true.
func (m *Map[K, V]) RangeWithLimit(limit int, fn func(key K, value V) bool) int {
	count := 0
	m.Range(func(k K, v V) bool {
		if count >= limit {
			return false
		}
		if !fn(k, v) {
			return false
		}
		count++
		return true
	})
	return count
}
