package handlers

import (
	"context"
	"net/http"
	"sync"

	"github.com/eduplatform/authoring/internal/gateway"
	"github.com/eduplatform/authoring/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CourseCreator is the interface that wraps the course creation used by the form
type CourseCreator interface {
	// Method Categories retrieve the categories offered by the form.
	Categories(ctx context.Context) ([]models.Category, error)
	// Method Create create a course from a submitted form and upload its media.
	Create(ctx context.Context, form *models.CourseForm) (*models.Course, error)
}

// DraftManager is the interface that wraps the autosave of the course form
type DraftManager interface {
	// Method Observe record the form and step. The draft is written once the form is quiet.
	Observe(form *models.CourseForm, step int)
	// Method SetSubmitting suppress writes while the form is being submitted.
	SetSubmitting(submitting bool)
	// Method Restore retrieve the saved form and step, or the defaults when nothing is saved.
	Restore(ctx context.Context, categories []models.Category) (models.CourseForm, int, error)
	// Method Clear remove the saved draft.
	Clear(ctx context.Context) error
}

// FormWizard is the interface that wraps the step navigation of the course form
type FormWizard interface {
	Current() int
	IsFinal() bool
	Restore(step int)
	Reset()
	// Method Next validate the fields of the current step and advance.
	Next(form *models.CourseForm) (int, error)
	Back() int
	// Method Submit validate every step. On failure the wizard moves to the first failing step.
	Submit(form *models.CourseForm) error
}

// CourseFormResponse describes the state of the course form
type CourseFormResponse struct {
	Form     models.CourseForm `json:"form"`
	Step     int               `json:"step"`
	Final    bool              `json:"final"`
	HasImage bool              `json:"has_image"`
	HasVideo bool              `json:"has_video"`
}

// CourseFormHandler handles HTTP requests for the multi-step course creation form.
//
// The form lives in memory. Its fields and step are autosaved as a draft and restored
// on the first read.
type CourseFormHandler struct {
	BaseHandler
	mu      sync.Mutex
	courses CourseCreator
	drafts  DraftManager
	wizard  FormWizard
	form    *models.CourseForm
}

// NewCourseFormHandler creates a new course form handler
func NewCourseFormHandler(courses CourseCreator, drafts DraftManager, wizard FormWizard, logger *zap.Logger) *CourseFormHandler {
	return &CourseFormHandler{
		BaseHandler: BaseHandler{logger: logger},
		courses:     courses,
		drafts:      drafts,
		wizard:      wizard,
	}
}

// RegisterRoutes registers all course form handler routes
func (h *CourseFormHandler) RegisterRoutes(r chi.Router) {
	r.Route("/course-form", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Put("/", h.Update)
		r.Delete("/", h.Discard)
		r.Post("/media/{kind}", h.AttachMedia)
		r.Post("/next", h.Next)
		r.Post("/back", h.Back)
		r.Post("/submit", h.Submit)
	})
}

// Get handles GET /api/v1/course-form
// @Summary Get course form
// @Description Get the form values and step, restoring the saved draft on first use
// @Tags course-form
// @Produce json
// @Success 200 {object} CourseFormResponse
// @Failure 502 {object} ErrorResponse
// @Router /api/v1/course-form [get]
func (h *CourseFormHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.load(r.Context()); err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondForm(w)
}

// Update handles PUT /api/v1/course-form
// @Summary Update course form
// @Description Replace the text fields of the form. Attached media are kept
// @Tags course-form
// @Accept json
// @Produce json
// @Param form body models.CourseForm true "Form fields"
// @Success 200 {object} CourseFormResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/course-form [put]
func (h *CourseFormHandler) Update(w http.ResponseWriter, r *http.Request) {
	var fields models.CourseForm
	if !h.decodeJSON(w, r, &fields) {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.load(r.Context()); err != nil {
		h.respondServiceError(w, err)
		return
	}
	fields.Image, fields.Video = h.form.Image, h.form.Video
	*h.form = fields
	h.drafts.Observe(h.form, h.wizard.Current())
	h.respondForm(w)
}

// AttachMedia handles POST /api/v1/course-form/media/{kind}
// @Summary Attach course media
// @Description Attach the cover image or the promo video. Media are never part of the draft
// @Tags course-form
// @Accept multipart/form-data
// @Produce json
// @Param kind path string true "image or video"
// @Param file formData file true "Media file"
// @Success 200 {object} CourseFormResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/course-form/media/{kind} [post]
func (h *CourseFormHandler) AttachMedia(w http.ResponseWriter, r *http.Request) {
	kind, ok := parseMediaKind(chi.URLParam(r, "kind"))
	if !ok {
		h.respondError(w, http.StatusBadRequest, "media kind must be image or video")
		return
	}
	file, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.load(r.Context()); err != nil {
		h.respondServiceError(w, err)
		return
	}
	if kind == gateway.MediaImage {
		h.form.Image = file
	} else {
		h.form.Video = file
	}
	h.respondForm(w)
}

// Next handles POST /api/v1/course-form/next
// @Summary Next step
// @Description Validate the fields of the current step and advance
// @Tags course-form
// @Produce json
// @Success 200 {object} CourseFormResponse
// @Failure 422 {object} ErrorResponse
// @Router /api/v1/course-form/next [post]
func (h *CourseFormHandler) Next(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.load(r.Context()); err != nil {
		h.respondServiceError(w, err)
		return
	}
	step, err := h.wizard.Next(h.form)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.drafts.Observe(h.form, step)
	h.respondForm(w)
}

// Back handles POST /api/v1/course-form/back
// @Summary Previous step
// @Tags course-form
// @Produce json
// @Success 200 {object} CourseFormResponse
// @Router /api/v1/course-form/back [post]
func (h *CourseFormHandler) Back(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.load(r.Context()); err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.drafts.Observe(h.form, h.wizard.Back())
	h.respondForm(w)
}

// Submit handles POST /api/v1/course-form/submit
// @Summary Submit course form
// @Description Validate every step, create the course and clear the draft
// @Tags course-form
// @Produce json
// @Success 201 {object} models.Course
// @Failure 422 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /api/v1/course-form/submit [post]
func (h *CourseFormHandler) Submit(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.load(r.Context()); err != nil {
		h.respondServiceError(w, err)
		return
	}
	if err := h.wizard.Submit(h.form); err != nil {
		h.drafts.Observe(h.form, h.wizard.Current())
		h.respondServiceError(w, err)
		return
	}

	h.drafts.SetSubmitting(true)
	course, err := h.courses.Create(r.Context(), h.form)
	if err != nil {
		h.drafts.SetSubmitting(false)
		h.respondServiceError(w, err)
		return
	}

	if err := h.drafts.Clear(r.Context()); err != nil {
		h.logger.Error("failed to clear course draft", zap.Error(err))
	}
	h.drafts.SetSubmitting(false)
	h.reset()
	h.respondJSON(w, http.StatusCreated, course)
}

// Discard handles DELETE /api/v1/course-form
// @Summary Discard course form
// @Description Drop the form and its saved draft
// @Tags course-form
// @Success 204
// @Failure 502 {object} ErrorResponse
// @Router /api/v1/course-form [delete]
func (h *CourseFormHandler) Discard(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.drafts.Clear(r.Context()); err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.reset()
	w.WriteHeader(http.StatusNoContent)
}

// load restores the form from the draft the first time it is needed
func (h *CourseFormHandler) load(ctx context.Context) error {
	if h.form != nil {
		return nil
	}
	categories, err := h.courses.Categories(ctx)
	if err != nil {
		return err
	}
	form, step, err := h.drafts.Restore(ctx, categories)
	if err != nil {
		return err
	}
	h.form = &form
	h.wizard.Restore(step)
	return nil
}

func (h *CourseFormHandler) reset() {
	h.form = nil
	h.wizard.Reset()
}

func (h *CourseFormHandler) respondForm(w http.ResponseWriter) {
	h.respondJSON(w, http.StatusOK, CourseFormResponse{
		Form:     *h.form,
		Step:     h.wizard.Current(),
		Final:    h.wizard.IsFinal(),
		HasImage: h.form.Image != nil,
		HasVideo: h.form.Video != nil,
	})
}
