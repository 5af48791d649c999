// Package notify keeps the transient, dismissible messages shown after mutations
package notify

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Level is the severity of a notification
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

const defaultCapacity = 50

// Notification is a single message for the user
type Notification struct {
	ID        string    `json:"id"`
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Center stores notifications until they are dismissed.
// When full, the oldest notification is dropped.
type Center struct {
	mu       sync.Mutex
	items    []Notification
	capacity int
	logger   *zap.Logger
}

// NewCenter creates a notification center
func NewCenter(capacity int, logger *zap.Logger) *Center {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &Center{
		capacity: capacity,
		logger:   logger,
	}
}

// Success posts a success notification
func (c *Center) Success(message string) Notification {
	return c.push(LevelSuccess, message)
}

// Error posts an error notification
func (c *Center) Error(message string) Notification {
	return c.push(LevelError, message)
}

func (c *Center) push(level Level, message string) Notification {
	n := Notification{
		ID:        uuid.New().String(),
		Level:     level,
		Message:   message,
		CreatedAt: time.Now(),
	}

	c.mu.Lock()
	c.items = append(c.items, n)
	if len(c.items) > c.capacity {
		c.items = slices.Delete(c.items, 0, len(c.items)-c.capacity)
	}
	c.mu.Unlock()

	c.logger.Debug("notification posted", zap.String("level", string(level)), zap.String("message", message))
	return n
}

// List returns the pending notifications, oldest first
func (c *Center) List() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.items)
}

// Dismiss removes a notification. It reports whether it was present.
func (c *Center) Dismiss(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := slices.IndexFunc(c.items, func(n Notification) bool { return n.ID == id })
	if i < 0 {
		return false
	}
	c.items = slices.Delete(c.items, i, i+1)
	return true
}
