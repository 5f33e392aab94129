// Package cmap provides a concurrent map implementation for nullmap.
//
// This package implements a sharded concurrent map with the following
// features:
//
//   - Sharding: Configurable shard count for parallelism
//   - Fine-grained Locking: Per-shard RWMutex for minimal contention
//   - Compound Operations: Swap, GetOrSet, Pop, SwapIfPresent,
//     CompareAndSwap, CompareAndDelete and Compute run under a single
//     shard lock and are linearizable per key
//   - Policies: optional rejection of zero keys (ErrInvalidKey) and of
//     nil values (ErrNilValue)
//   - Iteration: weakly consistent, one shard at a time
//
// Usage:
//
//	m := cmap.New[string, *Session](cmap.WithShardCount(32))
//	_ = m.Set("key", session)
//	val, ok, _ := m.Get("key")
//
// Thread Safety:
//
// All operations are thread-safe. Read operations (Get, Has) use RLock,
// write operations use Lock. Range copies a shard under RLock and calls
// the callback without holding any lock, so callbacks may mutate the map.
package cmap
