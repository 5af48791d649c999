package handlers

import (
	"context"
	"net/http"

	"github.com/eduplatform/authoring/internal/apperr"
	"github.com/eduplatform/authoring/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SectionService is the interface that wraps methods for section mutations
type SectionService interface {
	// Method List retrieve the sections of a course ordered by their ordinal.
	List(ctx context.Context, courseID string) ([]models.Section, error)
	// Method Create add a section to a course.
	//
	// An order of 0 places the section after the last one. A taken order returns a validation error.
	Create(ctx context.Context, payload models.SectionPayload) (*models.Section, error)
	// Method Update replace the title and order of a section.
	Update(ctx context.Context, id string, payload models.SectionPayload) (*models.Section, error)
	// Method Move change the ordinal of a section.
	Move(ctx context.Context, courseID, id string, order int) (*models.Section, error)
	// Method Delete remove a section and the cached lessons and tools below it.
	Delete(ctx context.Context, courseID, id string) error
}

// LessonService is the interface that wraps methods for lesson mutations
type LessonService interface {
	// Method List retrieve the lessons of a section.
	List(ctx context.Context, sectionID string) ([]models.Lesson, error)
	// Method Get retrieve a lesson of a section, or apperr.ErrNotFound.
	Get(ctx context.Context, sectionID, id string) (*models.Lesson, error)
	// Method Create add a lesson to a section. "video" is only accepted for video lessons.
	Create(ctx context.Context, payload models.LessonPayload, video *models.MediaFile) (*models.Lesson, error)
	// Method Update replace the fields of a lesson.
	Update(ctx context.Context, id string, payload models.LessonPayload, video *models.MediaFile) (*models.Lesson, error)
	// Method UploadVideo replace the video of a video lesson.
	UploadVideo(ctx context.Context, sectionID, id string, file *models.MediaFile) (*models.Lesson, error)
	// Method Delete remove a lesson and its cached tool.
	Delete(ctx context.Context, sectionID, id string) error
}

// ToolService is the interface that wraps methods for tool mutations
type ToolService interface {
	// Method Get retrieve the tool of a lesson, or nil if the lesson has none yet.
	Get(ctx context.Context, lessonID string) (*models.Tool, error)
	// Method Create attach a tool to a tool lesson.
	Create(ctx context.Context, lesson *models.Lesson, payload models.ToolPayload) (*models.Tool, error)
	// Method Update replace the payload of a tool.
	Update(ctx context.Context, tool *models.Tool, payload models.ToolPayload) (*models.Tool, error)
	// Method Delete remove a tool from its lesson.
	Delete(ctx context.Context, lesson *models.Lesson, toolID string) error
}

// SelectionForgetter is the interface that wraps the selection cleanup after a delete
type SelectionForgetter interface {
	// Method Forget clear the selection if it points at the deleted node.
	Forget(kind models.SelectedKind, id string) bool
	// Method ForgetSection clear the selection if it points at the section or one of its lessons.
	ForgetSection(sectionID string) bool
}

// MoveRequest carries the new ordinal of a section
type MoveRequest struct {
	Order int `json:"order"`
}

// ContentHandler handles HTTP requests for sections, lessons and tools
type ContentHandler struct {
	BaseHandler
	sections  SectionService
	lessons   LessonService
	tools     ToolService
	selection SelectionForgetter
}

// NewContentHandler creates a new content handler
func NewContentHandler(sections SectionService, lessons LessonService, tools ToolService, selection SelectionForgetter, logger *zap.Logger) *ContentHandler {
	return &ContentHandler{
		BaseHandler: BaseHandler{logger: logger},
		sections:    sections,
		lessons:     lessons,
		tools:       tools,
		selection:   selection,
	}
}

// RegisterRoutes registers all content handler routes
func (h *ContentHandler) RegisterRoutes(r chi.Router) {
	r.Route("/courses/{courseID}/sections", func(r chi.Router) {
		r.Get("/", h.ListSections)
		r.Post("/", h.CreateSection)
		r.Put("/{sectionID}", h.UpdateSection)
		r.Patch("/{sectionID}/move", h.MoveSection)
		r.Delete("/{sectionID}", h.DeleteSection)
	})
	r.Route("/sections/{sectionID}/lessons", func(r chi.Router) {
		r.Get("/", h.ListLessons)
		r.Post("/", h.CreateLesson)
		r.Route("/{lessonID}", func(r chi.Router) {
			r.Get("/", h.GetLesson)
			r.Put("/", h.UpdateLesson)
			r.Delete("/", h.DeleteLesson)
			r.Post("/video", h.UploadVideo)
			r.Get("/tool", h.GetTool)
			r.Post("/tool", h.CreateTool)
			r.Put("/tool", h.UpdateTool)
			r.Delete("/tool", h.DeleteTool)
		})
	})
}

// ListSections handles GET /api/v1/courses/{courseID}/sections
// @Summary List sections
// @Tags content
// @Produce json
// @Param courseID path string true "Course ID"
// @Success 200 {array} models.Section
// @Failure 502 {object} ErrorResponse
// @Router /api/v1/courses/{courseID}/sections [get]
func (h *ContentHandler) ListSections(w http.ResponseWriter, r *http.Request) {
	sections, err := h.sections.List(r.Context(), chi.URLParam(r, "courseID"))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	if sections == nil {
		sections = []models.Section{}
	}
	h.respondJSON(w, http.StatusOK, sections)
}

// CreateSection handles POST /api/v1/courses/{courseID}/sections
// @Summary Create section
// @Description Add a section. An order of 0 appends it after the last section
// @Tags content
// @Accept json
// @Produce json
// @Param courseID path string true "Course ID"
// @Param section body models.SectionPayload true "Section"
// @Success 201 {object} models.Section
// @Failure 422 {object} ErrorResponse
// @Router /api/v1/courses/{courseID}/sections [post]
func (h *ContentHandler) CreateSection(w http.ResponseWriter, r *http.Request) {
	var payload models.SectionPayload
	if !h.decodeJSON(w, r, &payload) {
		return
	}
	payload.CourseID = chi.URLParam(r, "courseID")

	section, err := h.sections.Create(r.Context(), payload)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, section)
}

// UpdateSection handles PUT /api/v1/courses/{courseID}/sections/{sectionID}
// @Summary Update section
// @Tags content
// @Accept json
// @Produce json
// @Param courseID path string true "Course ID"
// @Param sectionID path string true "Section ID"
// @Param section body models.SectionPayload true "Section"
// @Success 200 {object} models.Section
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /api/v1/courses/{courseID}/sections/{sectionID} [put]
func (h *ContentHandler) UpdateSection(w http.ResponseWriter, r *http.Request) {
	var payload models.SectionPayload
	if !h.decodeJSON(w, r, &payload) {
		return
	}
	payload.CourseID = chi.URLParam(r, "courseID")

	section, err := h.sections.Update(r.Context(), chi.URLParam(r, "sectionID"), payload)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, section)
}

// MoveSection handles PATCH /api/v1/courses/{courseID}/sections/{sectionID}/move
// @Summary Move section
// @Tags content
// @Accept json
// @Produce json
// @Param courseID path string true "Course ID"
// @Param sectionID path string true "Section ID"
// @Param move body MoveRequest true "New order"
// @Success 200 {object} models.Section
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /api/v1/courses/{courseID}/sections/{sectionID}/move [patch]
func (h *ContentHandler) MoveSection(w http.ResponseWriter, r *http.Request) {
	var req MoveRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	section, err := h.sections.Move(r.Context(), chi.URLParam(r, "courseID"), chi.URLParam(r, "sectionID"), req.Order)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, section)
}

// DeleteSection handles DELETE /api/v1/courses/{courseID}/sections/{sectionID}
// @Summary Delete section
// @Tags content
// @Param courseID path string true "Course ID"
// @Param sectionID path string true "Section ID"
// @Success 204
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/courses/{courseID}/sections/{sectionID} [delete]
func (h *ContentHandler) DeleteSection(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sectionID")
	if err := h.sections.Delete(r.Context(), chi.URLParam(r, "courseID"), id); err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.selection.ForgetSection(id)
	w.WriteHeader(http.StatusNoContent)
}

// ListLessons handles GET /api/v1/sections/{sectionID}/lessons
// @Summary List lessons
// @Tags content
// @Produce json
// @Param sectionID path string true "Section ID"
// @Success 200 {array} models.Lesson
// @Router /api/v1/sections/{sectionID}/lessons [get]
func (h *ContentHandler) ListLessons(w http.ResponseWriter, r *http.Request) {
	lessons, err := h.lessons.List(r.Context(), chi.URLParam(r, "sectionID"))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	if lessons == nil {
		lessons = []models.Lesson{}
	}
	h.respondJSON(w, http.StatusOK, lessons)
}

// GetLesson handles GET /api/v1/sections/{sectionID}/lessons/{lessonID}
// @Summary Get lesson
// @Tags content
// @Produce json
// @Param sectionID path string true "Section ID"
// @Param lessonID path string true "Lesson ID"
// @Success 200 {object} models.Lesson
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/sections/{sectionID}/lessons/{lessonID} [get]
func (h *ContentHandler) GetLesson(w http.ResponseWriter, r *http.Request) {
	lesson, err := h.lessons.Get(r.Context(), chi.URLParam(r, "sectionID"), chi.URLParam(r, "lessonID"))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, lesson)
}

// CreateLesson handles POST /api/v1/sections/{sectionID}/lessons
// @Summary Create lesson
// @Description Add a video, exam or tool lesson. Videos are uploaded separately
// @Tags content
// @Accept json
// @Produce json
// @Param sectionID path string true "Section ID"
// @Param lesson body models.LessonPayload true "Lesson"
// @Success 201 {object} models.Lesson
// @Failure 422 {object} ErrorResponse
// @Router /api/v1/sections/{sectionID}/lessons [post]
func (h *ContentHandler) CreateLesson(w http.ResponseWriter, r *http.Request) {
	var payload models.LessonPayload
	if !h.decodeJSON(w, r, &payload) {
		return
	}
	payload.SectionID = chi.URLParam(r, "sectionID")

	lesson, err := h.lessons.Create(r.Context(), payload, nil)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, lesson)
}

// UpdateLesson handles PUT /api/v1/sections/{sectionID}/lessons/{lessonID}
// @Summary Update lesson
// @Tags content
// @Accept json
// @Produce json
// @Param sectionID path string true "Section ID"
// @Param lessonID path string true "Lesson ID"
// @Param lesson body models.LessonPayload true "Lesson"
// @Success 200 {object} models.Lesson
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /api/v1/sections/{sectionID}/lessons/{lessonID} [put]
func (h *ContentHandler) UpdateLesson(w http.ResponseWriter, r *http.Request) {
	var payload models.LessonPayload
	if !h.decodeJSON(w, r, &payload) {
		return
	}
	payload.SectionID = chi.URLParam(r, "sectionID")

	lesson, err := h.lessons.Update(r.Context(), chi.URLParam(r, "lessonID"), payload, nil)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, lesson)
}

// UploadVideo handles POST /api/v1/sections/{sectionID}/lessons/{lessonID}/video
// @Summary Upload lesson video
// @Tags content
// @Accept multipart/form-data
// @Produce json
// @Param sectionID path string true "Section ID"
// @Param lessonID path string true "Lesson ID"
// @Param file formData file true "Video file"
// @Success 200 {object} models.Lesson
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/sections/{sectionID}/lessons/{lessonID}/video [post]
func (h *ContentHandler) UploadVideo(w http.ResponseWriter, r *http.Request) {
	file, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	lesson, err := h.lessons.UploadVideo(r.Context(), chi.URLParam(r, "sectionID"), chi.URLParam(r, "lessonID"), file)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, lesson)
}

// DeleteLesson handles DELETE /api/v1/sections/{sectionID}/lessons/{lessonID}
// @Summary Delete lesson
// @Tags content
// @Param sectionID path string true "Section ID"
// @Param lessonID path string true "Lesson ID"
// @Success 204
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/sections/{sectionID}/lessons/{lessonID} [delete]
func (h *ContentHandler) DeleteLesson(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "lessonID")
	if err := h.lessons.Delete(r.Context(), chi.URLParam(r, "sectionID"), id); err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.selection.Forget(models.SelectedLesson, id)
	w.WriteHeader(http.StatusNoContent)
}

// GetTool handles GET /api/v1/sections/{sectionID}/lessons/{lessonID}/tool
// @Summary Get lesson tool
// @Tags content
// @Produce json
// @Param sectionID path string true "Section ID"
// @Param lessonID path string true "Lesson ID"
// @Success 200 {object} models.Tool
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/sections/{sectionID}/lessons/{lessonID}/tool [get]
func (h *ContentHandler) GetTool(w http.ResponseWriter, r *http.Request) {
	tool, ok := h.existingTool(w, r)
	if !ok {
		return
	}
	h.respondJSON(w, http.StatusOK, tool)
}

// CreateTool handles POST /api/v1/sections/{sectionID}/lessons/{lessonID}/tool
// @Summary Create lesson tool
// @Description Attach a colored card, timeline or text tool to a tool lesson
// @Tags content
// @Accept json
// @Produce json
// @Param sectionID path string true "Section ID"
// @Param lessonID path string true "Lesson ID"
// @Param tool body models.Tool true "Tool with tool_type and its payload"
// @Success 201 {object} models.Tool
// @Failure 422 {object} ErrorResponse
// @Router /api/v1/sections/{sectionID}/lessons/{lessonID}/tool [post]
func (h *ContentHandler) CreateTool(w http.ResponseWriter, r *http.Request) {
	payload, ok := h.decodeToolPayload(w, r)
	if !ok {
		return
	}
	lesson, err := h.lessons.Get(r.Context(), chi.URLParam(r, "sectionID"), chi.URLParam(r, "lessonID"))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	tool, err := h.tools.Create(r.Context(), lesson, payload)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, tool)
}

// UpdateTool handles PUT /api/v1/sections/{sectionID}/lessons/{lessonID}/tool
// @Summary Update lesson tool
// @Tags content
// @Accept json
// @Produce json
// @Param sectionID path string true "Section ID"
// @Param lessonID path string true "Lesson ID"
// @Param tool body models.Tool true "Tool with tool_type and its payload"
// @Success 200 {object} models.Tool
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/sections/{sectionID}/lessons/{lessonID}/tool [put]
func (h *ContentHandler) UpdateTool(w http.ResponseWriter, r *http.Request) {
	payload, ok := h.decodeToolPayload(w, r)
	if !ok {
		return
	}
	tool, ok := h.existingTool(w, r)
	if !ok {
		return
	}

	updated, err := h.tools.Update(r.Context(), tool, payload)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, updated)
}

// DeleteTool handles DELETE /api/v1/sections/{sectionID}/lessons/{lessonID}/tool
// @Summary Delete lesson tool
// @Tags content
// @Param sectionID path string true "Section ID"
// @Param lessonID path string true "Lesson ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/sections/{sectionID}/lessons/{lessonID}/tool [delete]
func (h *ContentHandler) DeleteTool(w http.ResponseWriter, r *http.Request) {
	tool, ok := h.existingTool(w, r)
	if !ok {
		return
	}
	lesson, err := h.lessons.Get(r.Context(), chi.URLParam(r, "sectionID"), chi.URLParam(r, "lessonID"))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	if err := h.tools.Delete(r.Context(), lesson, tool.ID); err != nil {
		h.respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ContentHandler) existingTool(w http.ResponseWriter, r *http.Request) (*models.Tool, bool) {
	tool, err := h.tools.Get(r.Context(), chi.URLParam(r, "lessonID"))
	if err != nil {
		h.respondServiceError(w, err)
		return nil, false
	}
	if tool == nil {
		h.respondServiceError(w, apperr.ErrNotFound)
		return nil, false
	}
	return tool, true
}

// decodeToolPayload reads the flat tool representation and keeps only its payload
func (h *ContentHandler) decodeToolPayload(w http.ResponseWriter, r *http.Request) (models.ToolPayload, bool) {
	var tool models.Tool
	if !h.decodeJSON(w, r, &tool) {
		return nil, false
	}
	return tool.Payload, true
}
