package handlers

import (
	"context"
	"encoding/json"
	"mime"
	"net/http"

	"github.com/eduplatform/authoring/internal/content"
	"github.com/eduplatform/authoring/internal/gateway"
	"github.com/eduplatform/authoring/internal/models"
	"github.com/eduplatform/authoring/internal/querycache"
	"github.com/eduplatform/authoring/internal/wizard"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CourseService is the interface that wraps methods for course reads and mutations.
type CourseService interface {
	// Method List retrieve the courses of the configured academy.
	//
	// The list is served from the query cache and refetched in the background once stale.
	List(ctx context.Context) ([]models.Course, error)
	// Method Get retrieve a course by its ID.
	Get(ctx context.Context, id string) (*models.Course, error)
	// Method Categories retrieve the course categories.
	Categories(ctx context.Context) ([]models.Category, error)
	// Method Update replace the fields of a course.
	//
	// A second mutation of the same course while one is pending returns apperr.ErrConcurrencyReject.
	Update(ctx context.Context, id string, form *models.CourseForm) (*models.Course, error)
	// Method Delete remove a course optimistically.
	//
	// If the gateway rejects the delete, the cached list is restored and the error is returned.
	Delete(ctx context.Context, id string) error
	// Method UploadMedia replace the cover image or the promo video of a course.
	UploadMedia(ctx context.Context, id string, kind gateway.MediaKind, file *models.MediaFile) (*models.Course, error)
}

// TreeService is the interface that wraps the course tree read model.
type TreeService interface {
	// Method Tree retrieve a course with its ordered sections, lessons and tools.
	Tree(ctx context.Context, courseID string) (*content.Tree, error)
}

// PendingChecker is the interface that wraps the per-entity mutation lock lookup.
type PendingChecker interface {
	// Method Held report whether a mutation of the entity is in flight.
	Held(entity querycache.Entity, id string) bool
}

// CourseSelectionForgetter is the interface that wraps the selection cleanup after a course delete.
type CourseSelectionForgetter interface {
	// Method ForgetCourse clear the selection if it belongs to the course.
	ForgetCourse(courseID string) bool
}

// CoursesHandler handles HTTP requests for courses
type CoursesHandler struct {
	BaseHandler
	service   CourseService
	tree      TreeService
	pending   PendingChecker
	selection CourseSelectionForgetter
}

// NewCoursesHandler creates a new course handler
func NewCoursesHandler(svc CourseService, tree TreeService, pending PendingChecker, selection CourseSelectionForgetter, logger *zap.Logger) *CoursesHandler {
	return &CoursesHandler{
		BaseHandler: BaseHandler{logger: logger},
		service:     svc,
		tree:        tree,
		pending:     pending,
		selection:   selection,
	}
}

// RegisterRoutes registers all course handler routes
func (h *CoursesHandler) RegisterRoutes(r chi.Router) {
	r.Get("/categories", h.Categories)
	r.Get("/pending", h.Pending)
	r.Route("/courses", func(r chi.Router) {
		r.Get("/", h.List)
		r.Route("/{courseID}", func(r chi.Router) {
			r.Get("/", h.Get)
			r.Put("/", h.Update)
			r.Delete("/", h.Delete)
			r.Get("/tree", h.Tree)
			r.Post("/media/{kind}", h.UploadMedia)
		})
	})
}

// Categories handles GET /api/v1/categories
// @Summary List categories
// @Description Get every course category
// @Tags courses
// @Produce json
// @Success 200 {array} models.Category
// @Failure 502 {object} ErrorResponse
// @Router /api/v1/categories [get]
func (h *CoursesHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.Categories(r.Context())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, categories)
}

// List handles GET /api/v1/courses
// @Summary List courses
// @Description Get the courses of the academy
// @Tags courses
// @Produce json
// @Success 200 {array} models.Course
// @Failure 502 {object} ErrorResponse
// @Router /api/v1/courses [get]
func (h *CoursesHandler) List(w http.ResponseWriter, r *http.Request) {
	courses, err := h.service.List(r.Context())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	if courses == nil {
		courses = []models.Course{}
	}
	h.respondJSON(w, http.StatusOK, courses)
}

// Get handles GET /api/v1/courses/{courseID}
// @Summary Get course
// @Tags courses
// @Produce json
// @Param courseID path string true "Course ID"
// @Success 200 {object} models.Course
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/courses/{courseID} [get]
func (h *CoursesHandler) Get(w http.ResponseWriter, r *http.Request) {
	course, err := h.service.Get(r.Context(), chi.URLParam(r, "courseID"))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, course)
}

// Update handles PUT /api/v1/courses/{courseID}
// @Summary Update course
// @Description Validate every step of the edit form and replace the course fields.
// @Description A multipart request carries the fields as JSON in "form" and the replacement media in "image" and "video"
// @Tags courses
// @Accept json,mpfd
// @Produce json
// @Param courseID path string true "Course ID"
// @Param form body models.CourseForm true "Course fields"
// @Success 200 {object} models.Course
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /api/v1/courses/{courseID} [put]
func (h *CoursesHandler) Update(w http.ResponseWriter, r *http.Request) {
	var form models.CourseForm
	if !h.decodeEditForm(w, r, &form) {
		return
	}

	wz := wizard.New(wizard.ModeEdit)
	wz.Restore(wizard.FinalStep)
	if err := wz.Submit(&form); err != nil {
		h.respondServiceError(w, err)
		return
	}

	course, err := h.service.Update(r.Context(), chi.URLParam(r, "courseID"), &form)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, course)
}

// Delete handles DELETE /api/v1/courses/{courseID}
// @Summary Delete course
// @Description Remove the course from the list immediately and restore it if the gateway fails
// @Tags courses
// @Param courseID path string true "Course ID"
// @Success 204
// @Failure 409 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /api/v1/courses/{courseID} [delete]
func (h *CoursesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "courseID")
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.selection.ForgetCourse(id)
	w.WriteHeader(http.StatusNoContent)
}

// Tree handles GET /api/v1/courses/{courseID}/tree
// @Summary Get course tree
// @Description Get the course with its sections, lessons and tools in display order
// @Tags courses
// @Produce json
// @Param courseID path string true "Course ID"
// @Success 200 {object} content.Tree
// @Failure 502 {object} ErrorResponse
// @Router /api/v1/courses/{courseID}/tree [get]
func (h *CoursesHandler) Tree(w http.ResponseWriter, r *http.Request) {
	tree, err := h.tree.Tree(r.Context(), chi.URLParam(r, "courseID"))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, tree)
}

// UploadMedia handles POST /api/v1/courses/{courseID}/media/{kind}
// @Summary Upload course media
// @Tags courses
// @Accept multipart/form-data
// @Produce json
// @Param courseID path string true "Course ID"
// @Param kind path string true "image or video"
// @Param file formData file true "Media file"
// @Success 200 {object} models.Course
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/courses/{courseID}/media/{kind} [post]
func (h *CoursesHandler) UploadMedia(w http.ResponseWriter, r *http.Request) {
	kind, ok := parseMediaKind(chi.URLParam(r, "kind"))
	if !ok {
		h.respondError(w, http.StatusBadRequest, "media kind must be image or video")
		return
	}
	file, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	course, err := h.service.UploadMedia(r.Context(), chi.URLParam(r, "courseID"), kind, file)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, course)
}

// PendingResponse reports whether a mutation is in flight
type PendingResponse struct {
	Pending bool `json:"pending"`
}

// Pending handles GET /api/v1/pending
// @Summary Mutation status
// @Description Report whether a mutation of an entity is still in flight
// @Tags courses
// @Produce json
// @Param entity query string true "course, section, lesson or tool (tool is addressed by lesson id)"
// @Param id query string true "Entity ID"
// @Success 200 {object} PendingResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/pending [get]
func (h *CoursesHandler) Pending(w http.ResponseWriter, r *http.Request) {
	entities := map[string]querycache.Entity{
		"course":  querycache.EntityCourse,
		"section": querycache.EntitySections,
		"lesson":  querycache.EntityLessons,
		"tool":    querycache.EntityTool,
	}
	entity, ok := entities[r.URL.Query().Get("entity")]
	id := r.URL.Query().Get("id")
	if !ok || id == "" {
		h.respondError(w, http.StatusBadRequest, "entity and id are required")
		return
	}
	h.respondJSON(w, http.StatusOK, PendingResponse{Pending: h.pending.Held(entity, id)})
}

func parseMediaKind(value string) (gateway.MediaKind, bool) {
	switch kind := gateway.MediaKind(value); kind {
	case gateway.MediaImage, gateway.MediaVideo:
		return kind, true
	}
	return "", false
}

// decodeEditForm reads the edit form from a JSON body or from a multipart request.
// An error means a 400 has been written.
func (h *CoursesHandler) decodeEditForm(w http.ResponseWriter, r *http.Request, form *models.CourseForm) bool {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		return h.decodeJSON(w, r, form)
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid multipart form")
		return false
	}
	if err := json.Unmarshal([]byte(r.FormValue("form")), form); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid form field")
		return false
	}

	var ok bool
	if form.Image, ok = h.readPart(w, r, "image"); !ok {
		return false
	}
	form.Video, ok = h.readPart(w, r, "video")
	return ok
}
