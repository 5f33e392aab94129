// Package nullmap provides a concurrent map whose values may be nil.
//
// Concurrent map primitives commonly reserve their zero value to mean
// "no entry" and refuse to store it. Map stores every value wrapped in a
// sentinel.Value, so a nil or zero payload is an ordinary entry:
//
//	m := nullmap.NewSharded[string, *User]()
//	m.Put("a", nil)
//	v, ok, _ := m.Get("a") // v == nil, ok == true
//	ok, _ = m.ContainsKey("b") // false
//
// The primitive is injected through the Backend interface and owned by the
// Map for its whole lifetime; NewSharded and NewShardedFunc build a private
// cmap.Map. Every single-key operation maps onto exactly one compound
// Backend call, so results such as the previous value returned by Put are
// consistent with the state the call replaced. Multi-key operations
// (PutAll, Clear, iteration, Size) are not atomic.
//
// Key policy errors (cmap.ErrInvalidKey) come from the Backend and are
// returned unchanged.
package nullmap
