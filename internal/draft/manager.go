// Package draft autosaves the course creation form to durable storage and restores it.
package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/eduplatform/authoring/internal/apperr"
	"github.com/eduplatform/authoring/internal/models"
	"go.uber.org/zap"
)

// saveTimeout bounds a debounced write, which runs outside of any request
const saveTimeout = 5 * time.Second

// Manager debounces form changes into storage writes.
//
// Only the latest observed form is written. Writes are suppressed while the form is being
// submitted, after Clear and after Close. SetSubmitting(true), Clear and Close fence off a
// save already in progress: its remaining writes are skipped and a write that lands after
// the fence is removed again.
type Manager struct {
	mu         sync.Mutex
	storage    Storage
	debouncer  *Debouncer
	logger     *zap.Logger
	pending    *snapshot
	submitting bool
	closed     bool
	// fence is bumped by SetSubmitting(true), Clear and Close
	fence uint64
	// cleared is bumped by Clear and Close
	cleared uint64
	// saving serializes saves so a fenced save is undone before the next one starts
	saving sync.Mutex
}

type snapshot struct {
	fields models.DraftFields
	step   int
}

// NewManager creates a draft manager writing to storage after the quiet period
func NewManager(storage Storage, quiet time.Duration, logger *zap.Logger) *Manager {
	m := &Manager{
		storage: storage,
		logger:  logger,
	}
	m.debouncer = NewDebouncer(quiet, m.flushPending)
	return m
}

// Observe records the current form and step and restarts the quiet period.
//
// Image and video are never part of the draft.
func (m *Manager) Observe(form *models.CourseForm, step int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}
	m.pending = &snapshot{fields: form.DraftFields(), step: step}
	if m.submitting {
		return
	}
	m.debouncer.Schedule()
}

// SetSubmitting suppresses writes while the form is being submitted
func (m *Manager) SetSubmitting(submitting bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.submitting = submitting
	switch {
	case submitting:
		m.fence++
		m.debouncer.Cancel()
	case m.pending != nil && !m.closed:
		m.debouncer.Schedule()
	}
}

// Restore returns the saved form and step, or the default form at the first step.
//
// The fields and the step are read independently: a saved step seeds the wizard even
// without saved fields. The default form picks the first category. Fields that cannot be
// decoded are dropped and the default form is returned.
func (m *Manager) Restore(ctx context.Context, categories []models.Category) (models.CourseForm, int, error) {
	step := 1
	raw, ok, err := m.storage.Get(ctx, models.DraftStepKey)
	if err != nil {
		return models.CourseForm{}, 0, fmt.Errorf("failed to read draft step: %w", err)
	}
	if ok {
		if n, err := strconv.Atoi(string(raw)); err == nil && n > 0 {
			step = n
		}
	}

	data, ok, err := m.storage.Get(ctx, models.DraftFieldsKey)
	if err != nil {
		return models.CourseForm{}, 0, fmt.Errorf("failed to read draft: %w", err)
	}
	if !ok {
		return models.DefaultCourseForm(categories), step, nil
	}

	var fields models.DraftFields
	if err := json.Unmarshal(data, &fields); err != nil {
		m.logger.Warn("discarding unreadable draft", zap.Error(err))
		return models.DefaultCourseForm(categories), 1, nil
	}
	return fields.Form(), step, nil
}

// Clear removes the saved draft and drops any pending write
func (m *Manager) Clear(ctx context.Context) error {
	m.mu.Lock()
	m.fence++
	m.cleared++
	m.debouncer.Cancel()
	m.pending = nil
	m.mu.Unlock()

	var errs []error
	for _, key := range []string{models.DraftFieldsKey, models.DraftStepKey} {
		if err := m.storage.Remove(ctx, key); err != nil {
			errs = append(errs, fmt.Errorf("failed to remove %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

// Close cancels the pending write. Nothing is written afterwards.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.fence++
	m.cleared++
	m.pending = nil
	m.debouncer.Stop()
}

func (m *Manager) flushPending() {
	m.saving.Lock()
	defer m.saving.Unlock()

	m.mu.Lock()
	if m.closed || m.submitting || m.pending == nil {
		m.mu.Unlock()
		return
	}
	snap := *m.pending
	m.pending = nil
	fence, cleared := m.fence, m.cleared
	m.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := m.save(ctx, snap, fence); err != nil {
		if errors.Is(err, errFenced) {
			m.undo(ctx, snap, cleared)
			return
		}
		m.logger.Error("failed to save draft", zap.Error(err))
	}
}

// errFenced stops a save overtaken by SetSubmitting(true), Clear or Close
var errFenced = errors.New("draft save fenced")

func (m *Manager) save(ctx context.Context, snap snapshot, fence uint64) error {
	fields := snap.fields
	for _, name := range fields.NonFiniteFields() {
		m.logger.Warn("draft field skipped", zap.Error(&apperr.SerializationError{
			Field: name,
			Err:   errors.New("value is not a finite number"),
		}))
		switch name {
		case "price":
			fields.Price = 0
		case "discount_price":
			fields.DiscountPrice = 0
		}
	}

	data, err := json.Marshal(fields)
	if err != nil {
		return &apperr.SerializationError{Field: "draft", Err: err}
	}
	if err := m.write(ctx, fence, models.DraftFieldsKey, data); err != nil {
		return fmt.Errorf("failed to write draft fields: %w", err)
	}
	if err := m.write(ctx, fence, models.DraftStepKey, []byte(strconv.Itoa(snap.step))); err != nil {
		return fmt.Errorf("failed to write draft step: %w", err)
	}
	m.logger.Debug("draft saved", zap.Int("step", snap.step))
	return nil
}

// write stores one key unless the fence moved. errFenced is also returned when the fence
// moved while the write was in flight.
func (m *Manager) write(ctx context.Context, fence uint64, key string, value []byte) error {
	if !m.unfenced(fence) {
		return errFenced
	}
	if err := m.storage.Set(ctx, key, value); err != nil {
		return err
	}
	if !m.unfenced(fence) {
		return errFenced
	}
	return nil
}

func (m *Manager) unfenced(fence uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fence == fence
}

// undo removes what a fenced save may have written. Unless the draft was cleared or closed
// meanwhile, the snapshot is queued again for the next save.
func (m *Manager) undo(ctx context.Context, snap snapshot, cleared uint64) {
	for _, key := range []string{models.DraftFieldsKey, models.DraftStepKey} {
		if err := m.storage.Remove(ctx, key); err != nil {
			m.logger.Error("failed to remove fenced draft write", zap.String("key", key), zap.Error(err))
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cleared != cleared || m.closed || m.pending != nil {
		return
	}
	m.pending = &snap
	if !m.submitting {
		m.debouncer.Schedule()
	}
}
