package querycache

// Tx is an optimistic change to a single key that can be committed or rolled back.
//
// Begin snapshots the entry, Apply writes the optimistic value and CommitOrRollback either
// keeps it or restores the snapshot exactly, including the absence of a value.
type Tx struct {
	cache *Cache
	key   Key
	saved *entry
	done  bool
}

// Begin snapshots the current state of key
func (c *Cache) Begin(key Key) *Tx {
	c.mu.Lock()
	defer c.mu.Unlock()

	tx := &Tx{cache: c, key: key}
	if e, ok := c.entries[key]; ok {
		saved := *e
		tx.saved = &saved
	}
	return tx
}

// Snapshot returns the value captured by Begin
func (tx *Tx) Snapshot() (any, bool) {
	if tx.saved == nil || !tx.saved.hasValue {
		return nil, false
	}
	return tx.saved.value, true
}

// Apply writes the optimistic value computed from the snapshot.
//
// fn must not modify the value it receives; it returns a new value instead.
func (tx *Tx) Apply(fn func(current any, ok bool) any) {
	current, ok := tx.Snapshot()
	tx.cache.Set(tx.key, fn(current, ok))
}

// Commit keeps the optimistic value
func (tx *Tx) Commit() {
	tx.done = true
}

// Rollback restores the snapshot taken by Begin
func (tx *Tx) Rollback() {
	if tx.done {
		return
	}
	tx.done = true

	c := tx.cache
	c.mu.Lock()
	defer c.mu.Unlock()

	c.epochs[tx.key]++
	if tx.saved == nil {
		delete(c.entries, tx.key)
		return
	}
	restored := *tx.saved
	c.entries[tx.key] = &restored
}

// CommitOrRollback commits when err is nil and rolls back otherwise. It returns err.
func (tx *Tx) CommitOrRollback(err error) error {
	if err != nil {
		tx.Rollback()
		return err
	}
	tx.Commit()
	return nil
}

// ApplyTyped is the typed form of Tx.Apply
func ApplyTyped[T any](tx *Tx, fn func(current T, ok bool) T) {
	tx.Apply(func(current any, ok bool) any {
		typed, isT := current.(T)
		return fn(typed, ok && isT)
	})
}
