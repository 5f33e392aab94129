package cmap

// Swap stores value for key and returns the previous value, if any.
func (m *Map[K, V]) Swap(key K, value V) (previous V, loaded bool, err error) {
	if err := m.check(key, value); err != nil {
		return previous, false, err
	}
	shard := m.getShard(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	previous, loaded = shard.items[key]
	shard.items[key] = value
	return previous, loaded, nil
}

// GetOrSet returns the existing value for a key, or sets and returns the given value if absent.
// loaded reports whether the value already existed.
func (m *Map[K, V]) GetOrSet(key K, value V) (actual V, loaded bool, err error) {
	if err := m.check(key, value); err != nil {
		return actual, false, err
	}
	shard := m.getShard(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	if existing, ok := shard.items[key]; ok {
		return existing, true, nil
	}

	shard.items[key] = value
	return value, false, nil
}

// Pop removes a key and returns its value.
// Returns the value and true if the key existed, zero value and false otherwise.
func (m *Map[K, V]) Pop(key K) (V, bool, error) {
	if err := m.checkKey(key); err != nil {
		var zero V
		return zero, false, err
	}
	shard := m.getShard(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	val, ok := shard.items[key]
	if ok {
		delete(shard.items, key)
	}
	return val, ok, nil
}

// SwapIfPresent replaces the value only if the key already exists and
// returns the value it replaced. Nothing is stored for an absent key.
func (m *Map[K, V]) SwapIfPresent(key K, value V) (previous V, swapped bool, err error) {
	if err := m.check(key, value); err != nil {
		return previous, false, err
	}
	shard := m.getShard(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	previous, swapped = shard.items[key]
	if !swapped {
		return previous, false, nil
	}
	shard.items[key] = value
	return previous, true, nil
}

// CompareAndSwap stores newValue if the key's current value equals old.
// Returns false when the key is absent or the values differ.
func (m *Map[K, V]) CompareAndSwap(key K, old, newValue V) (bool, error) {
	if err := m.check(key, newValue); err != nil {
		return false, err
	}
	shard := m.getShard(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	current, exists := shard.items[key]
	if !exists || !m.equal(current, old) {
		return false, nil
	}

	shard.items[key] = newValue
	return true, nil
}

// CompareAndDelete deletes the key if its current value equals old.
// Returns true if the delete was successful.
func (m *Map[K, V]) CompareAndDelete(key K, old V) (bool, error) {
	if err := m.checkKey(key); err != nil {
		return false, err
	}
	shard := m.getShard(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	current, exists := shard.items[key]
	if !exists || !m.equal(current, old) {
		return false, nil
	}

	delete(shard.items, key)
	return true, nil
}

// Compute atomically updates the value for key.
// fn receives the existing value and whether it exists, and returns the
// new value and whether to keep it; keep == false deletes the key.
// fn runs under the shard lock and must not call back into the map.
// If the policy rejects the new value the map is left unchanged.
func (m *Map[K, V]) Compute(key K, fn func(existing V, exists bool) (V, bool)) (V, bool, error) {
	var zero V
	if err := m.checkKey(key); err != nil {
		return zero, false, err
	}
	shard := m.getShard(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	existing, exists := shard.items[key]
	newValue, keep := fn(existing, exists)
	if !keep {
		delete(shard.items, key)
		return zero, false, nil
	}
	if err := m.checkValue(newValue); err != nil {
		return zero, false, err
	}
	shard.items[key] = newValue
	return newValue, true, nil
}

// SetAll stores every pair in items. All pairs are validated before any
// is stored; each pair is then stored atomically, but the batch as a
// whole is not, so a concurrent reader may observe a partial update.
func (m *Map[K, V]) SetAll(items map[K]V) error {
	batches := make(map[*shard[K, V]][]Item[K, V])
	for k, v := range items {
		if err := m.check(k, v); err != nil {
			return err
		}
		s := m.getShard(k)
		batches[s] = append(batches[s], Item[K, V]{Key: k, Value: v})
	}

	for s, batch := range batches {
		s.mu.Lock()
		for _, it := range batch {
			s.items[it.Key] = it.Value
		}
		s.mu.Unlock()
	}
	return nil
}
