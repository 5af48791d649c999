// Package querycache holds fetched collections keyed by entity type and scope id
// with stale-while-revalidate reads, in-flight de-duplication and explicit eviction.
package querycache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultStaleTime = 30 * time.Second
	DefaultGCTime    = 5 * time.Minute
	// backgroundTimeout bounds fetches that outlive the request that triggered them
	backgroundTimeout = 30 * time.Second
)

// FetchFunc loads the current server value of a key
type FetchFunc func(ctx context.Context) (any, error)

// Options configures a Cache
type Options struct {
	// StaleTime is how long a fetched value is considered fresh
	StaleTime time.Duration
	// GCTime is how long an unused entry is retained before Collect evicts it
	GCTime time.Duration
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

type entry struct {
	value     any
	hasValue  bool
	stale     bool
	updatedAt time.Time
	lastUsed  time.Time
	fetch     FetchFunc
}

// Cache is a process-wide store of fetched collections.
//
// It is safe for concurrent use and is passed explicitly to every component that reads
// or mutates server state.
type Cache struct {
	mu        sync.Mutex
	entries   map[Key]*entry
	epochs    map[Key]uint64
	group     singleflight.Group
	locks     *Locks
	staleTime time.Duration
	gcTime    time.Duration
	now       func() time.Time
	logger    *zap.Logger
}

// New creates a new cache
func New(opts Options, logger *zap.Logger) *Cache {
	if opts.StaleTime <= 0 {
		opts.StaleTime = DefaultStaleTime
	}
	if opts.GCTime <= 0 {
		opts.GCTime = DefaultGCTime
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{
		entries:   make(map[Key]*entry),
		epochs:    make(map[Key]uint64),
		locks:     NewLocks(),
		staleTime: opts.StaleTime,
		gcTime:    opts.GCTime,
		now:       opts.Now,
		logger:    logger,
	}
}

// Locks returns the per-entity mutation locks owned by the cache
func (c *Cache) Locks() *Locks {
	return c.locks
}

// Query returns the value of key.
//
// A fresh value is returned as is. A stale value is returned immediately and a background
// refetch is started. A missing value is fetched and the call waits for it. Concurrent
// fetches of the same key share one call to fetch.
func (c *Cache) Query(ctx context.Context, key Key, fetch FetchFunc) (any, error) {
	c.mu.Lock()
	now := c.now()
	e, ok := c.entries[key]
	if !ok {
		e = &entry{}
		c.entries[key] = e
	}
	e.lastUsed = now
	if fetch != nil {
		e.fetch = fetch
	} else {
		fetch = e.fetch
	}

	if e.hasValue {
		value := e.value
		fresh := !e.stale && now.Sub(e.updatedAt) < c.staleTime
		c.mu.Unlock()
		if !fresh && fetch != nil {
			c.refetchInBackground(ctx, key, fetch)
		}
		return value, nil
	}
	c.mu.Unlock()

	if fetch == nil {
		return nil, fmt.Errorf("no fetcher registered for %s", key)
	}
	return c.do(ctx, key, fetch)
}

// Peek returns the cached value of key without fetching
func (c *Cache) Peek(key Key) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || !e.hasValue {
		return nil, false
	}
	e.lastUsed = c.now()
	return e.value, true
}

// IsStale reports whether key holds a value that is invalidated or older than the stale time
func (c *Cache) IsStale(key Key) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || !e.hasValue {
		return false
	}
	return e.stale || c.now().Sub(e.updatedAt) >= c.staleTime
}

// Set stores a fresh value for key. Results of fetches started before Set are discarded.
func (c *Cache) Set(key Key, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.setLocked(key, value)
}

func (c *Cache) setLocked(key Key, value any) {
	now := c.now()
	e, ok := c.entries[key]
	if !ok {
		e = &entry{}
		c.entries[key] = e
	}
	e.value = value
	e.hasValue = true
	e.stale = false
	e.updatedAt = now
	e.lastUsed = now
	c.epochs[key]++
}

// Invalidate marks every entry matching prefix as stale and returns how many were marked.
//
// No fetch happens here; the next Query or Refetch of a marked key performs it.
func (c *Cache) Invalidate(prefix Prefix) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for key, e := range c.entries {
		if prefix.Matches(key) {
			e.stale = true
			n++
		}
	}
	if n > 0 {
		c.logger.Debug("cache entries invalidated",
			zap.String("entity", string(prefix.Entity)),
			zap.String("scope", prefix.Scope),
			zap.Int("count", n),
		)
	}
	return n
}

// Refetch fetches every stale entry matching prefix that has a known fetcher and waits
// for all of them.
func (c *Cache) Refetch(ctx context.Context, prefix Prefix) error {
	type pending struct {
		key   Key
		fetch FetchFunc
	}

	c.mu.Lock()
	var todo []pending
	for key, e := range c.entries {
		if prefix.Matches(key) && e.fetch != nil && (e.stale || !e.hasValue) {
			todo = append(todo, pending{key: key, fetch: e.fetch})
		}
	}
	c.mu.Unlock()

	g, gctx := errgroup.WithContext(ctx)
	for _, p := range todo {
		g.Go(func() error {
			_, err := c.do(gctx, p.key, p.fetch)
			return err
		})
	}
	return g.Wait()
}

// Remove evicts every entry matching prefix and returns how many were evicted.
func (c *Cache) Remove(prefix Prefix) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for key := range c.entries {
		if prefix.Matches(key) {
			delete(c.entries, key)
			c.epochs[key]++
			n++
		}
	}
	return n
}

// Collect evicts entries that have not been used for longer than the GC time
func (c *Cache) Collect() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	n := 0
	for key, e := range c.entries {
		if now.Sub(e.lastUsed) > c.gcTime {
			delete(c.entries, key)
			c.epochs[key]++
			n++
		}
	}
	return n
}

// Keys returns the keys currently held by the cache
func (c *Cache) Keys() []Key {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]Key, 0, len(c.entries))
	for key, e := range c.entries {
		if e.hasValue {
			keys = append(keys, key)
		}
	}
	return keys
}

// do runs fetch for key, sharing the call with any concurrent fetch of the same key.
// The result is stored only if the key was not written or evicted in the meantime.
//
// The shared fetch is detached from the cancellation of the caller that started it, so a
// cancelled caller only stops its own wait.
func (c *Cache) do(ctx context.Context, key Key, fetch FetchFunc) (any, error) {
	ch := c.group.DoChan(key.String(), func() (any, error) {
		c.mu.Lock()
		epoch := c.epochs[key]
		c.mu.Unlock()

		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), backgroundTimeout)
		defer cancel()
		value, err := fetch(fetchCtx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		if c.epochs[key] == epoch {
			if _, ok := c.entries[key]; ok {
				c.setLocked(key, value)
			}
		}
		c.mu.Unlock()
		return value, nil
	})

	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *Cache) refetchInBackground(ctx context.Context, key Key, fetch FetchFunc) {
	go func() {
		bgCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), backgroundTimeout)
		defer cancel()
		if _, err := c.do(bgCtx, key, fetch); err != nil {
			c.logger.Warn("background refetch failed", zap.String("key", key.String()), zap.Error(err))
		}
	}()
}

// Query is the typed form of Cache.Query
func Query[T any](ctx context.Context, c *Cache, key Key, fetch func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	var fn FetchFunc
	if fetch != nil {
		fn = func(ctx context.Context) (any, error) {
			return fetch(ctx)
		}
	}
	value, err := c.Query(ctx, key, fn)
	if err != nil {
		return zero, err
	}
	typed, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("cached value of %s has type %T", key, value)
	}
	return typed, nil
}

// Peek is the typed form of Cache.Peek
func Peek[T any](c *Cache, key Key) (T, bool) {
	var zero T
	value, ok := c.Peek(key)
	if !ok {
		return zero, false
	}
	typed, ok := value.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}
