package querycache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeClock is a manually advanced clock
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

// setupTestCache creates a cache with a fake clock
func setupTestCache(t *testing.T) (*Cache, *fakeClock) {
	t.Helper()
	logger, err := zap.NewDevelopment()
	require.NoError(t, err)

	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	cache := New(Options{StaleTime: time.Minute, GCTime: 10 * time.Minute, Now: clock.Now}, logger)
	return cache, clock
}

// countingFetch returns a fetch func that counts calls and returns the next value of values
func countingFetch(calls *atomic.Int32, values ...[]string) FetchFunc {
	return func(ctx context.Context) (any, error) {
		n := int(calls.Add(1))
		if n > len(values) {
			return values[len(values)-1], nil
		}
		return values[n-1], nil
	}
}

func TestNew_Defaults(t *testing.T) {
	cache := New(Options{}, nil)

	assert.Equal(t, DefaultStaleTime, cache.staleTime)
	assert.Equal(t, DefaultGCTime, cache.gcTime)
	assert.NotNil(t, cache.Locks())
}

func TestCache_Query(t *testing.T) {
	tests := []struct {
		name          string
		prepare       func(c *Cache, clock *fakeClock, fetch FetchFunc)
		expected      []string
		expectedCalls int32
	}{
		{
			name:          "miss fetches and waits",
			prepare:       func(c *Cache, clock *fakeClock, fetch FetchFunc) {},
			expected:      []string{"a"},
			expectedCalls: 1,
		},
		{
			name: "fresh hit does not fetch",
			prepare: func(c *Cache, clock *fakeClock, fetch FetchFunc) {
				c.Set(CoursesKey("1"), []string{"cached"})
			},
			expected:      []string{"cached"},
			expectedCalls: 0,
		},
		{
			name: "stale hit returns last known value",
			prepare: func(c *Cache, clock *fakeClock, fetch FetchFunc) {
				c.Set(CoursesKey("1"), []string{"old"})
				clock.Advance(2 * time.Minute)
			},
			expected:      []string{"old"},
			expectedCalls: 1,
		},
		{
			name: "invalidated hit returns last known value",
			prepare: func(c *Cache, clock *fakeClock, fetch FetchFunc) {
				c.Set(CoursesKey("1"), []string{"old"})
				c.Invalidate(CoursesKey("1").Exact())
			},
			expected:      []string{"old"},
			expectedCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache, clock := setupTestCache(t)
			var calls atomic.Int32
			fetch := countingFetch(&calls, []string{"a"})
			tt.prepare(cache, clock, fetch)

			value, err := cache.Query(context.Background(), CoursesKey("1"), fetch)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, value)
			assert.Eventually(t, func() bool { return calls.Load() == tt.expectedCalls }, time.Second, 5*time.Millisecond)
		})
	}
}

func TestCache_Query_StaleWhileRevalidate(t *testing.T) {
	cache, clock := setupTestCache(t)
	var calls atomic.Int32
	fetch := countingFetch(&calls, []string{"v1"}, []string{"v2"})
	ctx := context.Background()

	first, err := cache.Query(ctx, CoursesKey("1"), fetch)
	require.NoError(t, err)
	assert.Equal(t, []string{"v1"}, first)

	clock.Advance(2 * time.Minute)
	stale, err := cache.Query(ctx, CoursesKey("1"), fetch)
	require.NoError(t, err)
	assert.Equal(t, []string{"v1"}, stale)

	assert.Eventually(t, func() bool {
		value, ok := cache.Peek(CoursesKey("1"))
		return ok && assert.ObjectsAreEqual([]string{"v2"}, value)
	}, time.Second, 5*time.Millisecond)
	assert.False(t, cache.IsStale(CoursesKey("1")))
}

func TestCache_Query_FetchError(t *testing.T) {
	cache, _ := setupTestCache(t)
	fetchErr := errors.New("gateway down")

	value, err := cache.Query(context.Background(), CoursesKey("1"), func(ctx context.Context) (any, error) {
		return nil, fetchErr
	})

	assert.ErrorIs(t, err, fetchErr)
	assert.Nil(t, value)
	_, ok := cache.Peek(CoursesKey("1"))
	assert.False(t, ok)
}

func TestCache_Query_NoFetcher(t *testing.T) {
	cache, _ := setupTestCache(t)

	_, err := cache.Query(context.Background(), CoursesKey("1"), nil)

	assert.Error(t, err)
}

func TestCache_Query_DeduplicatesConcurrentFetches(t *testing.T) {
	cache, _ := setupTestCache(t)
	var calls atomic.Int32
	release := make(chan struct{})
	fetch := func(ctx context.Context) (any, error) {
		calls.Add(1)
		<-release
		return []string{"shared"}, nil
	}

	const readers = 10
	var wg sync.WaitGroup
	results := make([]any, readers)
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			value, err := cache.Query(context.Background(), SectionsKey("7"), fetch)
			assert.NoError(t, err)
			results[i] = value
		}(i)
	}

	// give every reader the chance to join the in-flight fetch
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, r := range results {
		assert.Equal(t, []string{"shared"}, r)
	}
}

func TestCache_Query_CancelledCallerDoesNotFailSharedFetch(t *testing.T) {
	cache, _ := setupTestCache(t)
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	fetch := func(ctx context.Context) (any, error) {
		once.Do(func() { close(started) })
		select {
		case <-release:
			return []string{"shared"}, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := cache.Query(firstCtx, SectionsKey("8"), fetch)
		firstErr <- err
	}()
	<-started

	type result struct {
		value any
		err   error
	}
	second := make(chan result, 1)
	go func() {
		value, err := cache.Query(context.Background(), SectionsKey("8"), fetch)
		second <- result{value, err}
	}()

	// let the second reader join the in-flight fetch
	time.Sleep(50 * time.Millisecond)
	cancelFirst()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	close(release)
	res := <-second
	require.NoError(t, res.err)
	assert.Equal(t, []string{"shared"}, res.value)
}

func TestCache_Invalidate_Idempotent(t *testing.T) {
	cache, _ := setupTestCache(t)
	var calls atomic.Int32
	fetch := countingFetch(&calls, []string{"v1"}, []string{"v2"}, []string{"v3"})
	ctx := context.Background()
	key := LessonsKey("3")

	_, err := cache.Query(ctx, key, fetch)
	require.NoError(t, err)
	require.Equal(t, int32(1), calls.Load())

	assert.Equal(t, 1, cache.Invalidate(key.Exact()))
	assert.Equal(t, 1, cache.Invalidate(key.Exact()))

	require.NoError(t, cache.Refetch(ctx, key.Exact()))
	require.NoError(t, cache.Refetch(ctx, key.Exact()))

	assert.Equal(t, int32(2), calls.Load())
	value, ok := cache.Peek(key)
	assert.True(t, ok)
	assert.Equal(t, []string{"v2"}, value)
}

func TestCache_Invalidate_Prefix(t *testing.T) {
	cache, _ := setupTestCache(t)
	cache.Set(LessonsKey("1"), []string{"a"})
	cache.Set(LessonsKey("2"), []string{"b"})
	cache.Set(SectionsKey("1"), []string{"c"})

	n := cache.Invalidate(Prefix{Entity: EntityLessons})

	assert.Equal(t, 2, n)
	assert.True(t, cache.IsStale(LessonsKey("1")))
	assert.True(t, cache.IsStale(LessonsKey("2")))
	assert.False(t, cache.IsStale(SectionsKey("1")))
}

func TestCache_Refetch_Error(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()
	fetchErr := errors.New("boom")
	fail := false
	_, err := cache.Query(ctx, CoursesKey("1"), func(ctx context.Context) (any, error) {
		if fail {
			return nil, fetchErr
		}
		return []string{"kept"}, nil
	})
	require.NoError(t, err)

	fail = true
	cache.Invalidate(CoursesKey("1").Exact())
	err = cache.Refetch(ctx, CoursesKey("1").Exact())

	assert.ErrorIs(t, err, fetchErr)
	value, ok := cache.Peek(CoursesKey("1"))
	assert.True(t, ok)
	assert.Equal(t, []string{"kept"}, value)
}

func TestCache_Remove(t *testing.T) {
	cache, _ := setupTestCache(t)
	cache.Set(LessonsKey("1"), []string{"a"})
	cache.Set(LessonsKey("2"), []string{"b"})
	cache.Set(ToolKey("9"), "tool")

	n := cache.Remove(LessonsKey("1").Exact())

	assert.Equal(t, 1, n)
	_, ok := cache.Peek(LessonsKey("1"))
	assert.False(t, ok)
	_, ok = cache.Peek(LessonsKey("2"))
	assert.True(t, ok)
	assert.Len(t, cache.Keys(), 2)
}

func TestCache_Remove_DiscardsInFlightResult(t *testing.T) {
	cache, _ := setupTestCache(t)
	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)
		_, _ = cache.Query(context.Background(), SectionsKey("1"), func(ctx context.Context) (any, error) {
			close(started)
			<-release
			return []string{"late"}, nil
		})
	}()

	<-started
	cache.Remove(SectionsKey("1").Exact())
	close(release)
	<-done

	_, ok := cache.Peek(SectionsKey("1"))
	assert.False(t, ok)
}

func TestCache_Collect(t *testing.T) {
	cache, clock := setupTestCache(t)
	cache.Set(CoursesKey("1"), []string{"old"})
	clock.Advance(5 * time.Minute)
	cache.Set(CoursesKey("2"), []string{"recent"})
	clock.Advance(6 * time.Minute)

	n := cache.Collect()

	assert.Equal(t, 1, n)
	_, ok := cache.Peek(CoursesKey("1"))
	assert.False(t, ok)
	_, ok = cache.Peek(CoursesKey("2"))
	assert.True(t, ok)
}

func TestQuery_Typed(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	value, err := Query(ctx, cache, CategoriesKey(), func(ctx context.Context) ([]int, error) {
		return []int{1, 2}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, value)

	typed, ok := Peek[[]int](cache, CategoriesKey())
	assert.True(t, ok)
	assert.Equal(t, []int{1, 2}, typed)

	_, ok = Peek[string](cache, CategoriesKey())
	assert.False(t, ok)

	_, err = Query[string](ctx, cache, CategoriesKey(), nil)
	assert.Error(t, err)
}

func TestPrefix_Matches(t *testing.T) {
	tests := []struct {
		name     string
		prefix   Prefix
		key      Key
		expected bool
	}{
		{name: "exact", prefix: SectionsKey("1").Exact(), key: SectionsKey("1"), expected: true},
		{name: "other scope", prefix: SectionsKey("1").Exact(), key: SectionsKey("2"), expected: false},
		{name: "entity wide", prefix: Prefix{Entity: EntitySections}, key: SectionsKey("2"), expected: true},
		{name: "other entity", prefix: Prefix{Entity: EntityLessons}, key: SectionsKey("2"), expected: false},
		{name: "all", prefix: All, key: ToolKey("5"), expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.prefix.Matches(tt.key))
		})
	}
}
