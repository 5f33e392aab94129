package nullmap

import (
	"github.com/yndnr/nullmap-go/pkg/cmap"
	"github.com/yndnr/nullmap-go/pkg/sentinel"
)

// Backend is the thread-safe map primitive a Map delegates to.
//
// Every method must be linearizable per key. Value comparisons in
// CompareAndSwap, CompareAndDelete and ContainsValue use the backend's own
// equality, which for a Map must treat two sentinels as equal exactly when
// sentinel.EqualFunc would. Key-taking methods report the backend's key
// policy through their error.
type Backend[K comparable, S any] interface {
	Get(key K) (S, bool, error)
	Has(key K) (bool, error)
	// Swap stores value and returns the previous value, if any.
	Swap(key K, value S) (S, bool, error)
	// GetOrSet returns the existing value and true, or stores value and
	// returns it with false.
	GetOrSet(key K, value S) (S, bool, error)
	// Pop deletes the key and returns the removed value, if any.
	Pop(key K) (S, bool, error)
	// SwapIfPresent replaces an existing value and returns it.
	SwapIfPresent(key K, value S) (S, bool, error)
	CompareAndSwap(key K, old, newValue S) (bool, error)
	CompareAndDelete(key K, old S) (bool, error)
	Compute(key K, fn func(existing S, exists bool) (S, bool)) (S, bool, error)
	SetAll(items map[K]S) error
	ContainsValue(value S) bool
	Range(fn func(key K, value S) bool)
	Count() int
	Clear()
}

var _ Backend[string, sentinel.Value[int]] = (*cmap.Map[string, sentinel.Value[int]])(nil)
