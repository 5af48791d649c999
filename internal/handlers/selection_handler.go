package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/eduplatform/authoring/internal/apperr"
	"github.com/eduplatform/authoring/internal/content"
	"github.com/eduplatform/authoring/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SelectionController is the interface that wraps the state of the open editor
type SelectionController interface {
	// Method SelectSection open a section.
	//
	// While the open editor has unsaved edits, switching to another node returns apperr.ErrUnsavedChanges unless "force" is set.
	SelectSection(section models.Section, force bool) error
	// Method SelectLesson open a lesson of a course. Please reference SelectSection for the "force" parameter.
	SelectLesson(courseID string, lesson models.Lesson, force bool) error
	// Method Clear close the editor.
	Clear(force bool) error
	// Method Current retrieve a copy of the selection, or nil.
	Current() *models.SelectedItem
	// Method Renderer resolve the editor of the current selection.
	//
	// A tool lesson whose tool cannot be fetched resolves to the empty editor with its reason.
	Renderer(ctx context.Context) content.Renderer
	MarkDirty()
	MarkClean()
	Discard()
	Dirty() bool
}

// SelectRequest points at the node to open.
//
// "course_id" is required for sections, "section_id" for lessons. The "course_id" of a lesson
// lets a course delete close it.
type SelectRequest struct {
	Kind      models.SelectedKind `json:"kind"`
	CourseID  string              `json:"course_id"`
	SectionID string              `json:"section_id"`
	ID        string              `json:"id"`
	Force     bool                `json:"force"`
}

// DirtyRequest sets the unsaved edits flag of the open editor
type DirtyRequest struct {
	Dirty bool `json:"dirty"`
}

// SelectionResponse describes the open editor
type SelectionResponse struct {
	Selection *models.SelectedItem `json:"selection"`
	Renderer  content.Renderer     `json:"renderer"`
	Dirty     bool                 `json:"dirty"`
}

// SelectionHandler handles HTTP requests for the editor selection
type SelectionHandler struct {
	BaseHandler
	controller SelectionController
	sections   SectionService
	lessons    LessonService
}

// NewSelectionHandler creates a new selection handler
func NewSelectionHandler(controller SelectionController, sections SectionService, lessons LessonService, logger *zap.Logger) *SelectionHandler {
	return &SelectionHandler{
		BaseHandler: BaseHandler{logger: logger},
		controller:  controller,
		sections:    sections,
		lessons:     lessons,
	}
}

// RegisterRoutes registers all selection handler routes
func (h *SelectionHandler) RegisterRoutes(r chi.Router) {
	r.Route("/selection", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Put("/", h.Select)
		r.Delete("/", h.Clear)
		r.Post("/dirty", h.SetDirty)
		r.Post("/discard", h.Discard)
	})
}

// Get handles GET /api/v1/selection
// @Summary Get selection
// @Description Get the open node and the editor that renders it
// @Tags selection
// @Produce json
// @Success 200 {object} SelectionResponse
// @Failure 502 {object} ErrorResponse
// @Router /api/v1/selection [get]
func (h *SelectionHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.respondSelection(w, r)
}

// Select handles PUT /api/v1/selection
// @Summary Select node
// @Description Open a section or a lesson. Fails with 409 when the open editor has unsaved edits and force is not set
// @Tags selection
// @Accept json
// @Produce json
// @Param selection body SelectRequest true "Node to open"
// @Success 200 {object} SelectionResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/selection [put]
func (h *SelectionHandler) Select(w http.ResponseWriter, r *http.Request) {
	var req SelectRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	var err error
	switch req.Kind {
	case models.SelectedSection:
		var section *models.Section
		section, err = h.findSection(r.Context(), req.CourseID, req.ID)
		if err == nil {
			err = h.controller.SelectSection(*section, req.Force)
		}
	case models.SelectedLesson:
		var lesson *models.Lesson
		lesson, err = h.lessons.Get(r.Context(), req.SectionID, req.ID)
		if err == nil {
			err = h.controller.SelectLesson(req.CourseID, *lesson, req.Force)
		}
	default:
		err = apperr.NewValidationError("kind", "Kind must be section or lesson")
	}
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondSelection(w, r)
}

// Clear handles DELETE /api/v1/selection
// @Summary Close editor
// @Tags selection
// @Produce json
// @Param force query bool false "Discard unsaved edits"
// @Success 200 {object} SelectionResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/selection [delete]
func (h *SelectionHandler) Clear(w http.ResponseWriter, r *http.Request) {
	force, _ := strconv.ParseBool(r.URL.Query().Get("force"))
	if err := h.controller.Clear(force); err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondSelection(w, r)
}

// SetDirty handles POST /api/v1/selection/dirty
// @Summary Set unsaved edits flag
// @Tags selection
// @Accept json
// @Produce json
// @Param dirty body DirtyRequest true "Flag"
// @Success 200 {object} SelectionResponse
// @Router /api/v1/selection/dirty [post]
func (h *SelectionHandler) SetDirty(w http.ResponseWriter, r *http.Request) {
	var req DirtyRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if req.Dirty {
		h.controller.MarkDirty()
	} else {
		h.controller.MarkClean()
	}
	h.respondSelection(w, r)
}

// Discard handles POST /api/v1/selection/discard
// @Summary Discard unsaved edits
// @Tags selection
// @Produce json
// @Success 200 {object} SelectionResponse
// @Router /api/v1/selection/discard [post]
func (h *SelectionHandler) Discard(w http.ResponseWriter, r *http.Request) {
	h.controller.Discard()
	h.respondSelection(w, r)
}

func (h *SelectionHandler) respondSelection(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, SelectionResponse{
		Selection: h.controller.Current(),
		Renderer:  h.controller.Renderer(r.Context()),
		Dirty:     h.controller.Dirty(),
	})
}

func (h *SelectionHandler) findSection(ctx context.Context, courseID, id string) (*models.Section, error) {
	sections, err := h.sections.List(ctx, courseID)
	if err != nil {
		return nil, err
	}
	for i := range sections {
		if sections[i].ID == id {
			return &sections[i], nil
		}
	}
	return nil, apperr.ErrNotFound
}
