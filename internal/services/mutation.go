package services

import (
	"context"
	"fmt"

	"github.com/eduplatform/authoring/internal/apperr"
	"github.com/eduplatform/authoring/internal/gateway"
	"github.com/eduplatform/authoring/internal/models"
	"github.com/eduplatform/authoring/internal/notify"
	"github.com/eduplatform/authoring/internal/querycache"
	"go.uber.org/zap"
)

// Notifier is the interface that wraps methods for user-visible notifications
type Notifier interface {
	// Success posts a transient success message.
	Success(message string) notify.Notification
	// Error posts a transient, dismissible error message.
	Error(message string) notify.Notification
}

// mutator holds what every entity service needs to run a mutation:
// the shared cache (which owns the per-entity locks), the notifier and the logger.
type mutator struct {
	cache    *querycache.Cache
	notifier Notifier
	logger   *zap.Logger
}

// acquire takes the per-entity lock or returns apperr.ErrConcurrencyReject
func (m *mutator) acquire(entity querycache.Entity, id string) (func(), error) {
	release, ok := m.cache.Locks().TryAcquire(entity, id)
	if !ok {
		m.logger.Info("mutation rejected, another one is pending",
			zap.String("entity", string(entity)),
			zap.String("id", id),
		)
		return nil, apperr.ErrConcurrencyReject
	}
	return release, nil
}

// succeed posts the gateway message, or fallback if the gateway sent none
func (m *mutator) succeed(ack gateway.Ack, fallback string) {
	message := ack.Message
	if message == "" {
		message = fallback
	}
	m.notifier.Success(message)
}

// fail logs a failed mutation, posts an error notification and wraps the error
func (m *mutator) fail(err error, action string) error {
	m.logger.Error(action, zap.Error(err))
	m.notifier.Error(apperr.UserMessage(err))
	return fmt.Errorf("%s: %w", action, err)
}

// reconcile invalidates the keys and waits for the refetch of those that are observed,
// so callers see server state when the mutation returns. A refetch failure is logged only:
// the mutation itself has already succeeded.
func (m *mutator) reconcile(ctx context.Context, keys ...querycache.Key) {
	for _, key := range keys {
		m.cache.Invalidate(key.Exact())
		if err := m.cache.Refetch(ctx, key.Exact()); err != nil {
			m.logger.Warn("failed to refetch after mutation", zap.String("key", key.String()), zap.Error(err))
		}
	}
}

// evictSection removes the lessons of a section and the tools of those lessons
func (m *mutator) evictSection(sectionID string) {
	key := querycache.LessonsKey(sectionID)
	if lessons, ok := querycache.Peek[[]models.Lesson](m.cache, key); ok {
		for _, l := range lessons {
			m.cache.Remove(querycache.ToolKey(l.ID).Exact())
		}
	}
	m.cache.Remove(key.Exact())
}

// evictCourse removes the sections of a course with everything below them
func (m *mutator) evictCourse(courseID string) {
	key := querycache.SectionsKey(courseID)
	if sections, ok := querycache.Peek[[]models.Section](m.cache, key); ok {
		for _, s := range sections {
			m.evictSection(s.ID)
		}
	}
	m.cache.Remove(key.Exact())
	m.cache.Remove(querycache.CourseKey(courseID).Exact())
}
