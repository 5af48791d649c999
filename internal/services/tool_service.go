package services

import (
	"context"
	"fmt"

	"github.com/eduplatform/authoring/internal/apperr"
	"github.com/eduplatform/authoring/internal/gateway"
	"github.com/eduplatform/authoring/internal/models"
	"github.com/eduplatform/authoring/internal/querycache"
	"go.uber.org/zap"
)

// ToolGateway is the interface that wraps the remote tool endpoints
type ToolGateway interface {
	// Method GetTool retrieve the tool of a lesson.
	//
	// A lesson without a tool yields "nil" tool and "nil" error.
	GetTool(ctx context.Context, lessonID string) (*models.Tool, error)
	// Method CreateTool create the tool of a tool lesson.
	CreateTool(ctx context.Context, req models.ToolRequest) (*gateway.Result[models.Tool], error)
	// Method UpdateTool replace the payload of a tool.
	UpdateTool(ctx context.Context, id string, req models.ToolRequest) (*gateway.Result[models.Tool], error)
	// Method DeleteTool delete a tool.
	DeleteTool(ctx context.Context, id string) (*gateway.Ack, error)
}

type toolService struct {
	mutator
	gw ToolGateway
}

// NewToolService creates a new tool service
func NewToolService(gw ToolGateway, cache *querycache.Cache, notifier Notifier, logger *zap.Logger) *toolService {
	return &toolService{
		mutator: mutator{cache: cache, notifier: notifier, logger: logger},
		gw:      gw,
	}
}

// Get returns the tool of a lesson, or nil if the lesson has none yet
func (s *toolService) Get(ctx context.Context, lessonID string) (*models.Tool, error) {
	tool, err := querycache.Query(ctx, s.cache, querycache.ToolKey(lessonID), func(ctx context.Context) (*models.Tool, error) {
		return s.gw.GetTool(ctx, lessonID)
	})
	if err != nil {
		s.logger.Error("failed to get tool", zap.String("lesson_id", lessonID), zap.Error(err))
		return nil, fmt.Errorf("failed to get tool: %w", err)
	}
	return tool, nil
}

// Create attaches a tool to a tool lesson.
//
// Only lessons of type "tool" can have a tool and each of them has at most one.
func (s *toolService) Create(ctx context.Context, lesson *models.Lesson, payload models.ToolPayload) (*models.Tool, error) {
	if lesson.Type() != models.LessonTypeTool {
		return nil, apperr.NewValidationError("lesson", "Only tool lessons can have a tool")
	}
	req := models.ToolRequest{LessonID: lesson.ID, Payload: payload}
	if err := req.Validate(); err != nil {
		return nil, apperr.NewValidationError("tool", err.Error())
	}
	existing, err := s.Get(ctx, lesson.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.NewValidationError("tool", "Lesson already has a tool")
	}

	release, err := s.acquire(querycache.EntityTool, lesson.ID)
	if err != nil {
		return nil, err
	}
	defer release()

	res, err := s.gw.CreateTool(ctx, req)
	if err != nil {
		return nil, s.fail(err, "failed to create tool")
	}

	s.reconcile(ctx, querycache.ToolKey(lesson.ID), querycache.LessonsKey(lesson.SectionID))
	s.succeed(res.Ack, "Tool created")
	tool := res.Data
	return &tool, nil
}

// Update replaces the payload of a tool and writes the result in place
func (s *toolService) Update(ctx context.Context, tool *models.Tool, payload models.ToolPayload) (*models.Tool, error) {
	req := models.ToolRequest{LessonID: tool.LessonID, Payload: payload}
	if err := req.Validate(); err != nil {
		return nil, apperr.NewValidationError("tool", err.Error())
	}

	release, err := s.acquire(querycache.EntityTool, tool.LessonID)
	if err != nil {
		return nil, err
	}
	defer release()

	res, err := s.gw.UpdateTool(ctx, tool.ID, req)
	if err != nil {
		return nil, s.fail(err, "failed to update tool")
	}

	updated := res.Data
	s.cache.Set(querycache.ToolKey(tool.LessonID), &updated)
	s.succeed(res.Ack, "Tool updated")
	return &updated, nil
}

// Delete removes a tool once the gateway confirms it
func (s *toolService) Delete(ctx context.Context, lesson *models.Lesson, toolID string) error {
	release, err := s.acquire(querycache.EntityTool, lesson.ID)
	if err != nil {
		return err
	}
	defer release()

	ack, err := s.gw.DeleteTool(ctx, toolID)
	if err != nil {
		return s.fail(err, "failed to delete tool")
	}

	s.cache.Remove(querycache.ToolKey(lesson.ID).Exact())
	s.reconcile(ctx, querycache.LessonsKey(lesson.SectionID))
	s.succeed(*ack, "Tool deleted")
	return nil
}

// Pending reports whether a mutation of the tool of a lesson is in flight
func (s *toolService) Pending(lessonID string) bool {
	return s.cache.Locks().Held(querycache.EntityTool, lessonID)
}
