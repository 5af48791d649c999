// Package selection tracks which node of the course tree is open in the editor.
package selection

import (
	"context"
	"sync"

	"github.com/eduplatform/authoring/internal/apperr"
	"github.com/eduplatform/authoring/internal/content"
	"github.com/eduplatform/authoring/internal/models"
	"go.uber.org/zap"
)

// ToolLookup is the interface that wraps the tool read used to render tool lessons
type ToolLookup interface {
	// Method Get retrieve the tool of a lesson.
	//
	// A lesson without a tool yields "nil" tool and "nil" error.
	Get(ctx context.Context, lessonID string) (*models.Tool, error)
}

// Controller holds the current selection and the dirty flag of the open editor.
//
// Switching away from a dirty editor fails with apperr.ErrUnsavedChanges unless forced.
type Controller struct {
	mu      sync.Mutex
	current *models.SelectedItem
	dirty   bool
	tools   ToolLookup
	logger  *zap.Logger
}

// NewController creates a controller with nothing selected
func NewController(tools ToolLookup, logger *zap.Logger) *Controller {
	return &Controller{
		tools:  tools,
		logger: logger,
	}
}

// SelectSection opens a section. Any selected lesson is cleared.
func (c *Controller) SelectSection(section models.Section, force bool) error {
	return c.switchTo(&models.SelectedItem{
		Kind:     models.SelectedSection,
		CourseID: section.CourseID,
		Section:  &section,
	}, force)
}

// SelectLesson opens a lesson of the given course. An empty courseID leaves the course unknown.
func (c *Controller) SelectLesson(courseID string, lesson models.Lesson, force bool) error {
	return c.switchTo(&models.SelectedItem{
		Kind:     models.SelectedLesson,
		CourseID: courseID,
		Lesson:   &lesson,
	}, force)
}

// Clear closes the editor
func (c *Controller) Clear(force bool) error {
	return c.switchTo(nil, force)
}

// Current returns a copy of the selection, or nil if nothing is selected
func (c *Controller) Current() *models.SelectedItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil {
		return nil
	}
	sel := *c.current
	return &sel
}

// Renderer resolves the editor of the current selection, fetching the tool of a tool lesson.
//
// A tool that cannot be fetched resolves to the empty renderer with content.ReasonToolUnavailable.
func (c *Controller) Renderer(ctx context.Context) content.Renderer {
	sel := c.Current()
	if sel == nil || sel.Kind != models.SelectedLesson || sel.Lesson == nil || sel.Lesson.Type() != models.LessonTypeTool {
		return content.Resolve(sel, nil)
	}

	tool, err := c.tools.Get(ctx, sel.Lesson.ID)
	if err != nil {
		c.logger.Warn("failed to fetch tool of selected lesson",
			zap.String("lessonID", sel.Lesson.ID),
			zap.Error(err),
		)
		return content.Renderer{Kind: content.RendererEmpty, Reason: content.ReasonToolUnavailable}
	}
	return content.Resolve(sel, tool)
}

// MarkDirty records unsaved edits in the open editor
func (c *Controller) MarkDirty() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dirty = true
}

// MarkClean records that the open editor has been saved
func (c *Controller) MarkClean() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dirty = false
}

// Discard drops the unsaved edits so the next switch is allowed
func (c *Controller) Discard() {
	c.MarkClean()
}

// Dirty reports whether the open editor has unsaved edits
func (c *Controller) Dirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dirty
}

// Forget clears the selection if it points at the given node.
//
// Used after a confirmed delete; unsaved edits of a deleted node are dropped.
func (c *Controller) Forget(kind models.SelectedKind, id string) bool {
	return c.forgetIf(func(sel *models.SelectedItem) bool {
		return sel.Kind == kind && selectedID(sel) == id
	})
}

// ForgetSection clears the selection if it points at the section or at one of its lessons
func (c *Controller) ForgetSection(sectionID string) bool {
	return c.forgetIf(func(sel *models.SelectedItem) bool {
		switch sel.Kind {
		case models.SelectedSection:
			return selectedID(sel) == sectionID
		case models.SelectedLesson:
			return sel.Lesson != nil && sel.Lesson.SectionID == sectionID
		}
		return false
	})
}

// ForgetCourse clears the selection if it belongs to the course
func (c *Controller) ForgetCourse(courseID string) bool {
	return c.forgetIf(func(sel *models.SelectedItem) bool {
		return sel.CourseID != "" && sel.CourseID == courseID
	})
}

func (c *Controller) forgetIf(match func(sel *models.SelectedItem) bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil || !match(c.current) {
		return false
	}
	c.current = nil
	c.dirty = false
	return true
}

func (c *Controller) switchTo(next *models.SelectedItem, force bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if sameNode(c.current, next) {
		c.current = next
		return nil
	}
	if c.dirty && !force {
		return apperr.ErrUnsavedChanges
	}
	if c.dirty {
		c.logger.Info("unsaved edits discarded by forced selection change")
	}
	c.current = next
	c.dirty = false
	return nil
}

func sameNode(a, b *models.SelectedItem) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Kind == b.Kind && selectedID(a) == selectedID(b)
}

func selectedID(sel *models.SelectedItem) string {
	switch {
	case sel.Kind == models.SelectedSection && sel.Section != nil:
		return sel.Section.ID
	case sel.Kind == models.SelectedLesson && sel.Lesson != nil:
		return sel.Lesson.ID
	}
	return ""
}
