package handlers

import (
	"net/http"

	"github.com/eduplatform/authoring/internal/apperr"
	"github.com/eduplatform/authoring/internal/notify"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// NotificationCenter is the interface that wraps the user notifications store
type NotificationCenter interface {
	// Method List retrieve the notifications, oldest first.
	List() []notify.Notification
	// Method Dismiss remove a notification. It reports false if the id is unknown.
	Dismiss(id string) bool
}

// NotificationsHandler handles HTTP requests for user notifications
type NotificationsHandler struct {
	BaseHandler
	center NotificationCenter
}

// NewNotificationsHandler creates a new notifications handler
func NewNotificationsHandler(center NotificationCenter, logger *zap.Logger) *NotificationsHandler {
	return &NotificationsHandler{
		BaseHandler: BaseHandler{logger: logger},
		center:      center,
	}
}

// RegisterRoutes registers all notification handler routes
func (h *NotificationsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/notifications", h.List)
	r.Delete("/notifications/{id}", h.Dismiss)
}

// List handles GET /api/v1/notifications
// @Summary List notifications
// @Description Get the success and error messages of the latest mutations
// @Tags notifications
// @Produce json
// @Success 200 {array} notify.Notification
// @Router /api/v1/notifications [get]
func (h *NotificationsHandler) List(w http.ResponseWriter, r *http.Request) {
	notifications := h.center.List()
	if notifications == nil {
		notifications = []notify.Notification{}
	}
	h.respondJSON(w, http.StatusOK, notifications)
}

// Dismiss handles DELETE /api/v1/notifications/{id}
// @Summary Dismiss notification
// @Tags notifications
// @Param id path string true "Notification ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/notifications/{id} [delete]
func (h *NotificationsHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	if !h.center.Dismiss(chi.URLParam(r, "id")) {
		h.respondServiceError(w, apperr.ErrNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
