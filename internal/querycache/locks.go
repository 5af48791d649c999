package querycache

import "sync"

// Locks tracks which entities have a mutation in flight.
//
// A single Locks instance is owned by the Cache so every caller mutating the same
// entity id observes the same lock.
type Locks struct {
	mu   sync.Mutex
	held map[Key]struct{}
}

// NewLocks creates an empty lock table
func NewLocks() *Locks {
	return &Locks{held: make(map[Key]struct{})}
}

// TryAcquire takes the lock for the entity id. It never blocks: if the lock is already held
// it returns ok=false. The returned release func is idempotent.
func (l *Locks) TryAcquire(entity Entity, id string) (release func(), ok bool) {
	key := Key{Entity: entity, Scope: id}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, held := l.held[key]; held {
		return func() {}, false
	}
	l.held[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.held, key)
			l.mu.Unlock()
		})
	}, true
}

// Held reports whether a mutation for the entity id is pending
func (l *Locks) Held(entity Entity, id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, held := l.held[Key{Entity: entity, Scope: id}]
	return held
}
