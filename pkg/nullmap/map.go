package nullmap

import (
	"log/slog"
	"time"

	"github.com/yndnr/nullmap-go/pkg/cmap"
	"github.com/yndnr/nullmap-go/pkg/sentinel"
)

// Map is a concurrent map that accepts nil and zero values.
//
// A Map must be created with New, NewSharded or NewShardedFunc.
type Map[K comparable, V any] struct {
	backend  Backend[K, sentinel.Value[V]]
	observer Observer
	logger   *slog.Logger
}

// New wraps backend. The caller hands over ownership: backend must not be
// used directly once the Map exists, and it must not contain Absent values.
func New[K comparable, V any](backend Backend[K, sentinel.Value[V]], opts ...Option) *Map[K, V] {
	o := newOptions(opts)
	return &Map[K, V]{
		backend:  backend,
		observer: o.observer,
		logger:   o.logger,
	}
}

// NewSharded creates a Map over a private cmap.Map that forbids nil
// values, comparing payloads with ==.
func NewSharded[K comparable, V comparable](opts ...Option) *Map[K, V] {
	return newSharded[K, V](sentinel.Equal[V], opts)
}

// NewShardedFunc is like NewSharded for payload types that are not
// comparable with ==; eq decides payload equality.
func NewShardedFunc[K comparable, V any](eq func(a, b V) bool, opts ...Option) *Map[K, V] {
	return newSharded[K, V](sentinel.EqualFunc(eq), opts)
}

func newSharded[K comparable, V any](eq func(a, b sentinel.Value[V]) bool, opts []Option) *Map[K, V] {
	o := newOptions(opts)
	backendOpts := append([]cmap.Option{}, o.backendOpts...)
	backendOpts = append(backendOpts, cmap.WithNilValuesForbidden(), cmap.WithEqual(eq))

	return &Map[K, V]{
		backend:  cmap.New[K, sentinel.Value[V]](backendOpts...),
		observer: o.observer,
		logger:   o.logger,
	}
}

// Get returns the value stored for key. ok is true for any stored value,
// including nil.
func (m *Map[K, V]) Get(key K) (value V, ok bool, err error) {
	start := m.begin()
	s, found, err := m.backend.Get(key)
	m.end(OpGet, start, found, err)
	if err != nil {
		return value, false, err
	}
	value, ok = s.Decode()
	return value, ok, nil
}

// GetOrDefault returns the value stored for key, or def if there is none.
// A stored nil is returned as nil, not def.
func (m *Map[K, V]) GetOrDefault(key K, def V) (V, error) {
	v, ok, err := m.Get(key)
	if err != nil || !ok {
		return def, err
	}
	return v, nil
}

// Put stores value for key and returns the value it replaced, if any.
func (m *Map[K, V]) Put(key K, value V) (previous V, loaded bool, err error) {
	start := m.begin()
	prev, loaded, err := m.backend.Swap(key, sentinel.Encode(value))
	m.end(OpPut, start, loaded, err)
	if err != nil || !loaded {
		return previous, false, err
	}
	v, ok := prev.Decode()
	return v, ok, nil
}

// PutIfAbsent stores value only when key has no entry. If an entry exists
// it is returned with loaded == true and the map is unchanged; otherwise
// value is installed and loaded is false.
func (m *Map[K, V]) PutIfAbsent(key K, value V) (existing V, loaded bool, err error) {
	start := m.begin()
	actual, loaded, err := m.backend.GetOrSet(key, sentinel.Encode(value))
	m.end(OpPutIfAbsent, start, loaded, err)
	if err != nil || !loaded {
		return existing, false, err
	}
	v, ok := actual.Decode()
	return v, ok, nil
}

// Remove deletes key and returns the value it held, if any.
func (m *Map[K, V]) Remove(key K) (previous V, loaded bool, err error) {
	start := m.begin()
	prev, loaded, err := m.backend.Pop(key)
	m.end(OpRemove, start, loaded, err)
	if err != nil || !loaded {
		return previous, false, err
	}
	v, ok := prev.Decode()
	return v, ok, nil
}

// RemoveIf deletes key only if its value equals value.
func (m *Map[K, V]) RemoveIf(key K, value V) (bool, error) {
	start := m.begin()
	removed, err := m.backend.CompareAndDelete(key, sentinel.Encode(value))
	m.end(OpRemoveIf, start, removed, err)
	return removed, err
}

// Replace stores value only if key already has an entry, and returns the
// value it replaced. Nothing is stored for an absent key.
func (m *Map[K, V]) Replace(key K, value V) (previous V, replaced bool, err error) {
	start := m.begin()
	prev, replaced, err := m.backend.SwapIfPresent(key, sentinel.Encode(value))
	m.end(OpReplace, start, replaced, err)
	if err != nil || !replaced {
		return previous, false, err
	}
	v, ok := prev.Decode()
	return v, ok, nil
}

// CompareAndReplace stores newValue only if key's value equals old.
// Either value may be nil.
func (m *Map[K, V]) CompareAndReplace(key K, old, newValue V) (bool, error) {
	start := m.begin()
	swapped, err := m.backend.CompareAndSwap(key, sentinel.Encode(old), sentinel.Encode(newValue))
	m.end(OpCompareAndReplace, start, swapped, err)
	return swapped, err
}

// Compute atomically updates key. fn receives the current value and
// whether an entry exists; it returns the new value and whether to keep
// an entry at all. fn runs with the key's shard locked and must not call
// back into the Map.
func (m *Map[K, V]) Compute(key K, fn func(existing V, exists bool) (V, bool)) (value V, kept bool, err error) {
	start := m.begin()
	s, kept, err := m.backend.Compute(key, func(cur sentinel.Value[V], exists bool) (sentinel.Value[V], bool) {
		old, present := cur.Decode()
		next, keep := fn(old, exists && present)
		if !keep {
			return sentinel.Absent[V](), false
		}
		return sentinel.Encode(next), true
	})
	m.end(OpCompute, start, kept, err)
	if err != nil || !kept {
		return value, false, err
	}
	v, _ := s.Decode()
	return v, true, nil
}

// ContainsKey reports whether key has an entry, whatever its value.
func (m *Map[K, V]) ContainsKey(key K) (bool, error) {
	start := m.begin()
	ok, err := m.backend.Has(key)
	m.end(OpContainsKey, start, ok, err)
	return ok, err
}

// ContainsValue reports whether some key maps to value. It scans the map
// and is not a snapshot.
func (m *Map[K, V]) ContainsValue(value V) bool {
	return m.backend.ContainsValue(sentinel.Encode(value))
}

// Size returns the number of entries, nil values included.
func (m *Map[K, V]) Size() int {
	return m.backend.Count()
}

// IsEmpty reports whether the map has no entries.
func (m *Map[K, V]) IsEmpty() bool {
	return m.backend.Count() == 0
}

// Clear removes all entries. Writes racing with Clear may survive it.
func (m *Map[K, V]) Clear() {
	start := m.begin()
	m.backend.Clear()
	m.end(OpClear, start, false, nil)
}

// PutAll stores every entry of src. Each entry is stored atomically but
// the batch is not: readers may observe part of it.
func (m *Map[K, V]) PutAll(src map[K]V) error {
	start := m.begin()
	encoded := make(map[K]sentinel.Value[V], len(src))
	for k, v := range src {
		encoded[k] = sentinel.Encode(v)
	}
	err := m.backend.SetAll(encoded)
	m.end(OpPutAll, start, false, err)
	return err
}

// begin returns the start time of an observed operation.
func (m *Map[K, V]) begin() time.Time {
	if m.observer == nil {
		return time.Time{}
	}
	return time.Now()
}

func (m *Map[K, V]) end(op string, start time.Time, hit bool, err error) {
	if err != nil {
		m.logger.Debug("map operation rejected", "op", op, "error", err)
	}
	if m.observer != nil {
		m.observer.ObserveOp(op, hit, err, time.Since(start))
	}
}
