package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/eduplatform/authoring/internal/apperr"
	"github.com/eduplatform/authoring/internal/models"
	"go.uber.org/zap"
)

const (
	// maxMultipartMemory is the part of an upload kept in memory before spilling to disk
	maxMultipartMemory = 32 << 20
	maxJSONBodySize    = 1 << 20
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

type BaseHandler struct {
	logger *zap.Logger
}

// respondJSON sends a JSON response
func (h *BaseHandler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// respondError sends an error JSON response
func (h *BaseHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError maps an error of the authoring layer to its status and user message.
//
// Validation errors also carry the per-field messages.
func (h *BaseHandler) respondServiceError(w http.ResponseWriter, err error) {
	status := apperr.HTTPStatus(err)
	body := ErrorResponse{Error: apperr.UserMessage(err)}

	var verr *apperr.ValidationError
	if errors.As(err, &verr) {
		body.Error = "validation failed"
		body.Fields = verr.Fields
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", zap.Int("status", status), zap.Error(err))
	}
	h.respondJSON(w, status, body)
}

// decodeJSON reads the request body into dst. An error means a 400 has been written.
func (h *BaseHandler) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	body := http.MaxBytesReader(w, r.Body, maxJSONBodySize)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// readUpload reads the "file" part of a multipart request.
// An error means a 400 has been written.
func (h *BaseHandler) readUpload(w http.ResponseWriter, r *http.Request) (*models.MediaFile, bool) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid multipart form")
		return nil, false
	}
	file, ok := h.readPart(w, r, "file")
	if ok && file == nil {
		h.respondError(w, http.StatusBadRequest, "file is required")
		return nil, false
	}
	return file, ok
}

// readPart reads an optional file part of a parsed multipart request.
// A missing part yields a nil file. An error means a 400 has been written.
func (h *BaseHandler) readPart(w http.ResponseWriter, r *http.Request, name string) (*models.MediaFile, bool) {
	file, header, err := r.FormFile(name)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, true
	}
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid %s part", name))
		return nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("failed to read upload", zap.Error(err))
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to read %s", header.Filename))
		return nil, false
	}
	return &models.MediaFile{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, true
}
