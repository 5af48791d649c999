// Package gateway is the client of the remote academy data gateway
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/eduplatform/authoring/internal/apperr"
	"github.com/eduplatform/authoring/internal/models"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Envelope is the response wrapper returned by every gateway endpoint
type Envelope struct {
	Status     bool            `json:"status"`
	StatusCode int             `json:"status_code"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
}

// Ack carries the status and human readable message of a successful call
type Ack struct {
	StatusCode int
	Message    string
}

// Result is a successful gateway response with its decoded payload
type Result[T any] struct {
	Ack
	Data T
}

// MediaKind selects which media slot of an entity an upload replaces
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// Client talks to the remote gateway over HTTP
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

// Options configures a Client
type Options struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// NewClient creates a new gateway client
func NewClient(opts Options, logger *zap.Logger) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	httpClient := resty.New().
		SetBaseURL(opts.BaseURL).
		SetTimeout(opts.Timeout).
		SetHeader("Accept", "application/json")
	if opts.Token != "" {
		httpClient.SetAuthToken(opts.Token)
	}

	return &Client{
		http:   httpClient,
		logger: logger,
	}
}

// call performs a request and decodes the envelope payload into T.
//
// A transport failure, a non-2xx status or an envelope with status=false is returned
// as *apperr.NetworkError carrying the gateway message.
func call[T any](ctx context.Context, c *Client, method, path string, prepare func(r *resty.Request)) (*Result[T], error) {
	req := c.http.R().SetContext(ctx)
	if prepare != nil {
		prepare(req)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		c.logger.Error("gateway request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, &apperr.NetworkError{Err: err}
	}

	var env Envelope
	decodeErr := json.Unmarshal(resp.Body(), &env)

	if resp.IsError() || (decodeErr == nil && !env.Status) {
		status := resp.StatusCode()
		if decodeErr == nil && env.StatusCode != 0 {
			status = env.StatusCode
		}
		c.logger.Warn("gateway rejected request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.String("message", env.Message),
		)
		return nil, &apperr.NetworkError{StatusCode: status, Message: env.Message}
	}
	if decodeErr != nil {
		return nil, &apperr.NetworkError{
			StatusCode: resp.StatusCode(),
			Err:        fmt.Errorf("failed to decode gateway response: %w", decodeErr),
		}
	}

	result := &Result[T]{Ack: Ack{StatusCode: env.StatusCode, Message: env.Message}}
	if result.StatusCode == 0 {
		result.StatusCode = resp.StatusCode()
	}
	if len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, &result.Data); err != nil {
			return nil, &apperr.NetworkError{
				StatusCode: resp.StatusCode(),
				Err:        fmt.Errorf("failed to decode gateway payload: %w", err),
			}
		}
	}
	return result, nil
}

func withBody(body any) func(r *resty.Request) {
	return func(r *resty.Request) {
		r.SetHeader("Content-Type", "application/json").SetBody(body)
	}
}

func withID(id string) func(r *resty.Request) {
	return func(r *resty.Request) {
		r.SetPathParam("id", id)
	}
}

func withIDAndBody(id string, body any) func(r *resty.Request) {
	return func(r *resty.Request) {
		withID(id)(r)
		withBody(body)(r)
	}
}

func withFile(id, field string, file *models.MediaFile) func(r *resty.Request) {
	return func(r *resty.Request) {
		r.SetPathParam("id", id).
			SetFileReader(field, file.Filename, bytes.NewReader(file.Data))
	}
}

// ListCategories retrieves the course categories
func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	res, err := call[[]models.Category](ctx, c, http.MethodGet, "/categories", nil)
	if err != nil {
		return nil, err
	}
	return res.Data, nil
}

func isNotFound(err error) bool {
	var netErr *apperr.NetworkError
	return errors.As(err, &netErr) && netErr.StatusCode == http.StatusNotFound
}
