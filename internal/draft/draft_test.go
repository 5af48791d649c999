package draft

import (
	"context"
	"errors"
	"math"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/eduplatform/authoring/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// countingStorage wraps MemoryStorage and counts writes of the draft fields
type countingStorage struct {
	*MemoryStorage
	writes atomic.Int32
	mu     sync.Mutex
	err    error
}

func newCountingStorage() *countingStorage {
	return &countingStorage{MemoryStorage: NewMemoryStorage()}
}

func (s *countingStorage) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	err := s.err
	s.mu.Unlock()
	if err != nil {
		return err
	}
	if key == models.DraftFieldsKey {
		s.writes.Add(1)
	}
	return s.MemoryStorage.Set(ctx, key, value)
}

// blockingStorage holds the first write of the draft fields until release is closed
type blockingStorage struct {
	*MemoryStorage
	once    sync.Once
	started chan struct{}
	release chan struct{}
}

func newBlockingStorage() *blockingStorage {
	return &blockingStorage{
		MemoryStorage: NewMemoryStorage(),
		started:       make(chan struct{}),
		release:       make(chan struct{}),
	}
}

func (s *blockingStorage) Set(ctx context.Context, key string, value []byte) error {
	if key == models.DraftFieldsKey {
		first := false
		s.once.Do(func() { first = true })
		if first {
			close(s.started)
			<-s.release
		}
	}
	return s.MemoryStorage.Set(ctx, key, value)
}

func (s *blockingStorage) has(key string) bool {
	_, ok, _ := s.MemoryStorage.Get(context.Background(), key)
	return ok
}

// waitForSave blocks until no save is in progress
func waitForSave(m *Manager) {
	m.saving.Lock()
	m.saving.Unlock()
}

func setupTestManager(t *testing.T, quiet time.Duration) (*Manager, *countingStorage) {
	t.Helper()
	logger, _ := zap.NewDevelopment()
	storage := newCountingStorage()
	m := NewManager(storage, quiet, logger)
	t.Cleanup(m.Close)
	return m, storage
}

func TestManager_DebouncesBurst(t *testing.T) {
	m, storage := setupTestManager(t, DefaultQuietPeriod)
	form := &models.CourseForm{Level: models.LevelBeginner}

	titles := []string{"I", "In", "Int", "Intr", "Intro"}
	for i, title := range titles {
		form.Title = title
		m.Observe(form, 1)
		if i < len(titles)-1 {
			time.Sleep(80 * time.Millisecond)
		}
	}

	assert.Never(t, func() bool { return storage.writes.Load() > 0 }, 400*time.Millisecond, 20*time.Millisecond)
	require.Eventually(t, func() bool { return storage.writes.Load() == 1 }, time.Second, 10*time.Millisecond)
	assert.Never(t, func() bool { return storage.writes.Load() > 1 }, 300*time.Millisecond, 20*time.Millisecond)

	restored, step, err := m.Restore(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "Intro", restored.Title)
	assert.Equal(t, 1, step)
}

func TestManager_RoundTrip(t *testing.T) {
	m, storage := setupTestManager(t, 10*time.Millisecond)
	form := &models.CourseForm{
		Image:            &models.MediaFile{Filename: "cover.png", Data: []byte{1, 2, 3}},
		Video:            &models.MediaFile{Filename: "promo.mp4"},
		Title:            "Intro to Go",
		CategoryID:       "c2",
		Instructor:       "R. Pike",
		Level:            models.LevelAdvanced,
		Price:            120,
		DiscountPrice:    99.5,
		ShortContent:     "short",
		Description:      "long",
		LearningOutcomes: []string{"a", "b"},
		Requirements:     []string{"c"},
	}

	m.Observe(form, 3)
	require.Eventually(t, func() bool { return storage.writes.Load() == 1 }, time.Second, 5*time.Millisecond)

	restored, step, err := m.Restore(context.Background(), []models.Category{{ID: "c1"}})

	require.NoError(t, err)
	assert.Equal(t, 3, step)
	assert.Nil(t, restored.Image)
	assert.Nil(t, restored.Video)
	expected := *form
	expected.Image, expected.Video = nil, nil
	assert.Equal(t, expected, restored)
}

func TestManager_Restore_Defaults(t *testing.T) {
	tests := []struct {
		name       string
		seed       map[string]string
		categories []models.Category
		expected   models.CourseForm
		step       int
	}{
		{
			name:       "no draft",
			categories: []models.Category{{ID: "c1"}, {ID: "c2"}},
			expected:   models.CourseForm{CategoryID: "c1", Level: models.LevelBeginner},
			step:       1,
		},
		{
			name:     "no draft and no categories",
			expected: models.CourseForm{Level: models.LevelBeginner},
			step:     1,
		},
		{
			name:       "corrupted draft",
			seed:       map[string]string{models.DraftFieldsKey: "{not json", models.DraftStepKey: "2"},
			categories: []models.Category{{ID: "c1"}},
			expected:   models.CourseForm{CategoryID: "c1", Level: models.LevelBeginner},
			step:       1,
		},
		{
			name:       "step without fields",
			seed:       map[string]string{models.DraftStepKey: "2"},
			categories: []models.Category{{ID: "c1"}},
			expected:   models.CourseForm{CategoryID: "c1", Level: models.LevelBeginner},
			step:       2,
		},
		{
			name:     "invalid step",
			seed:     map[string]string{models.DraftFieldsKey: `{"title":"Go"}`, models.DraftStepKey: "x"},
			expected: models.CourseForm{Title: "Go"},
			step:     1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, storage := setupTestManager(t, time.Millisecond)
			for k, v := range tt.seed {
				require.NoError(t, storage.MemoryStorage.Set(context.Background(), k, []byte(v)))
			}

			form, step, err := m.Restore(context.Background(), tt.categories)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, form)
			assert.Equal(t, tt.step, step)
		})
	}
}

func TestManager_NonFiniteFieldsAreSkipped(t *testing.T) {
	m, storage := setupTestManager(t, 10*time.Millisecond)
	form := &models.CourseForm{Title: "Go", Price: math.Inf(1), DiscountPrice: math.NaN()}

	m.Observe(form, 1)
	require.Eventually(t, func() bool { return storage.writes.Load() == 1 }, time.Second, 5*time.Millisecond)

	restored, _, err := m.Restore(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "Go", restored.Title)
	assert.Zero(t, restored.Price)
	assert.Zero(t, restored.DiscountPrice)
}

func TestManager_NoWriteWhileSubmitting(t *testing.T) {
	m, storage := setupTestManager(t, 20*time.Millisecond)
	form := &models.CourseForm{Title: "Go"}

	m.SetSubmitting(true)
	m.Observe(form, 3)
	assert.Never(t, func() bool { return storage.writes.Load() > 0 }, 100*time.Millisecond, 10*time.Millisecond)

	m.SetSubmitting(false)
	require.Eventually(t, func() bool { return storage.writes.Load() == 1 }, time.Second, 5*time.Millisecond)
}

func TestManager_SubmittingCancelsPendingWrite(t *testing.T) {
	m, storage := setupTestManager(t, 50*time.Millisecond)

	m.Observe(&models.CourseForm{Title: "Go"}, 1)
	m.SetSubmitting(true)

	assert.Never(t, func() bool { return storage.writes.Load() > 0 }, 150*time.Millisecond, 10*time.Millisecond)
}

func TestManager_NoWriteAfterClose(t *testing.T) {
	m, storage := setupTestManager(t, 20*time.Millisecond)

	m.Observe(&models.CourseForm{Title: "Go"}, 1)
	m.Close()
	m.Observe(&models.CourseForm{Title: "Gopher"}, 2)

	assert.Never(t, func() bool { return storage.writes.Load() > 0 }, 100*time.Millisecond, 10*time.Millisecond)
}

func TestManager_InFlightSaveIsUndoneAfterSubmit(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	storage := newBlockingStorage()
	m := NewManager(storage, 5*time.Millisecond, logger)

	m.Observe(&models.CourseForm{Title: "Go"}, 2)
	select {
	case <-storage.started:
	case <-time.After(time.Second):
		t.Fatal("draft save did not start")
	}

	m.SetSubmitting(true)
	require.NoError(t, m.Clear(context.Background()))
	m.SetSubmitting(false)
	m.Close()
	close(storage.release)
	waitForSave(m)

	assert.False(t, storage.has(models.DraftFieldsKey))
	assert.False(t, storage.has(models.DraftStepKey))
}

func TestManager_InFlightSaveIsRequeuedAfterFailedSubmit(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	storage := newBlockingStorage()
	m := NewManager(storage, 5*time.Millisecond, logger)
	t.Cleanup(m.Close)

	m.Observe(&models.CourseForm{Title: "Go"}, 2)
	select {
	case <-storage.started:
	case <-time.After(time.Second):
		t.Fatal("draft save did not start")
	}

	m.SetSubmitting(true)
	close(storage.release)
	waitForSave(m)

	assert.False(t, storage.has(models.DraftFieldsKey))
	assert.False(t, storage.has(models.DraftStepKey))

	m.SetSubmitting(false)
	require.Eventually(t, func() bool {
		return storage.has(models.DraftFieldsKey) && storage.has(models.DraftStepKey)
	}, time.Second, 5*time.Millisecond)

	restored, step, err := m.Restore(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "Go", restored.Title)
	assert.Equal(t, 2, step)
}

func TestManager_Clear(t *testing.T) {
	m, storage := setupTestManager(t, 10*time.Millisecond)
	m.Observe(&models.CourseForm{Title: "Go"}, 2)
	require.Eventually(t, func() bool { return storage.writes.Load() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, m.Clear(context.Background()))

	_, ok, _ := storage.Get(context.Background(), models.DraftFieldsKey)
	assert.False(t, ok)
	_, ok, _ = storage.Get(context.Background(), models.DraftStepKey)
	assert.False(t, ok)
	form, step, err := m.Restore(context.Background(), []models.Category{{ID: "c9"}})
	require.NoError(t, err)
	assert.Equal(t, "c9", form.CategoryID)
	assert.Equal(t, 1, step)
}

func TestManager_StorageErrorIsLogged(t *testing.T) {
	m, storage := setupTestManager(t, 10*time.Millisecond)
	storage.mu.Lock()
	storage.err = errors.New("disk full")
	storage.mu.Unlock()

	m.Observe(&models.CourseForm{Title: "Go"}, 1)

	assert.Never(t, func() bool { return storage.writes.Load() > 0 }, 100*time.Millisecond, 10*time.Millisecond)
}

func TestDebouncer(t *testing.T) {
	var runs atomic.Int32
	d := NewDebouncer(30*time.Millisecond, func() { runs.Add(1) })

	d.Schedule()
	d.Schedule()
	require.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, 5*time.Millisecond)

	d.Schedule()
	d.Cancel()
	assert.Never(t, func() bool { return runs.Load() > 1 }, 100*time.Millisecond, 10*time.Millisecond)

	d.Stop()
	d.Schedule()
	assert.Never(t, func() bool { return runs.Load() > 1 }, 100*time.Millisecond, 10*time.Millisecond)
}

func TestNewDebouncer_DefaultQuiet(t *testing.T) {
	d := NewDebouncer(0, func() {})
	assert.Equal(t, DefaultQuietPeriod, d.quiet)
}
