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

// LessonGateway is the interface that wraps the remote lesson endpoints
type LessonGateway interface {
	// Method ListLessons retrieve the lessons of a section.
	//
	// Every lesson carries its content variant. Unknown lesson types are kept as models.UnknownContent.
	ListLessons(ctx context.Context, sectionID string) ([]models.Lesson, error)
	// Method CreateLesson create a lesson and return it together with the gateway message.
	CreateLesson(ctx context.Context, payload models.LessonPayload) (*gateway.Result[models.Lesson], error)
	// Method UpdateLesson replace the title, type and questions of a lesson.
	UpdateLesson(ctx context.Context, id string, payload models.LessonPayload) (*gateway.Result[models.Lesson], error)
	// Method DeleteLesson delete a lesson with its tool.
	DeleteLesson(ctx context.Context, id string) (*gateway.Ack, error)
	// Method UploadLessonVideo upload the video of a video lesson.
	UploadLessonVideo(ctx context.Context, id string, file *models.MediaFile) (*gateway.Result[models.Lesson], error)
}

type lessonService struct {
	mutator
	gw LessonGateway
}

// NewLessonService creates a new lesson service
func NewLessonService(gw LessonGateway, cache *querycache.Cache, notifier Notifier, logger *zap.Logger) *lessonService {
	return &lessonService{
		mutator: mutator{cache: cache, notifier: notifier, logger: logger},
		gw:      gw,
	}
}

// List returns the lessons of a section
func (s *lessonService) List(ctx context.Context, sectionID string) ([]models.Lesson, error) {
	lessons, err := querycache.Query(ctx, s.cache, querycache.LessonsKey(sectionID), func(ctx context.Context) ([]models.Lesson, error) {
		return s.gw.ListLessons(ctx, sectionID)
	})
	if err != nil {
		s.logger.Error("failed to list lessons", zap.String("section_id", sectionID), zap.Error(err))
		return nil, fmt.Errorf("failed to list lessons: %w", err)
	}
	return lessons, nil
}

// Get returns a lesson of a section or apperr.ErrNotFound
func (s *lessonService) Get(ctx context.Context, sectionID, id string) (*models.Lesson, error) {
	lessons, err := s.List(ctx, sectionID)
	if err != nil {
		return nil, err
	}
	for i := range lessons {
		if lessons[i].ID == id {
			lesson := lessons[i]
			return &lesson, nil
		}
	}
	return nil, fmt.Errorf("lesson %s: %w", id, apperr.ErrNotFound)
}

// Create adds a lesson to a section and, for video lessons, uploads the video
func (s *lessonService) Create(ctx context.Context, payload models.LessonPayload, video *models.MediaFile) (*models.Lesson, error) {
	if err := payload.Validate(); err != nil {
		return nil, apperr.NewValidationError("lesson", err.Error())
	}
	if video != nil && payload.Type != models.LessonTypeVideo {
		return nil, apperr.NewValidationError("video", "Only video lessons can have a video")
	}

	res, err := s.gw.CreateLesson(ctx, payload)
	if err != nil {
		return nil, s.fail(err, "failed to create lesson")
	}
	lesson := res.Data
	defer s.reconcile(ctx, querycache.LessonsKey(payload.SectionID))

	if video != nil {
		uploaded, err := s.gw.UploadLessonVideo(ctx, lesson.ID, video)
		if err != nil {
			return &lesson, s.fail(err, "failed to upload lesson video")
		}
		lesson = uploaded.Data
	}

	s.succeed(res.Ack, "Lesson created")
	return &lesson, nil
}

// Update replaces a lesson and refetches the lessons of its section.
//
// When a tool lesson changes to another type its cached tool is evicted.
func (s *lessonService) Update(ctx context.Context, id string, payload models.LessonPayload, video *models.MediaFile) (*models.Lesson, error) {
	if err := payload.Validate(); err != nil {
		return nil, apperr.NewValidationError("lesson", err.Error())
	}

	release, err := s.acquire(querycache.EntityLessons, id)
	if err != nil {
		return nil, err
	}
	defer release()

	res, err := s.gw.UpdateLesson(ctx, id, payload)
	if err != nil {
		return nil, s.fail(err, "failed to update lesson")
	}
	lesson := res.Data
	if payload.Type != models.LessonTypeTool {
		s.cache.Remove(querycache.ToolKey(id).Exact())
	}
	defer s.reconcile(ctx, querycache.LessonsKey(payload.SectionID))

	if video != nil && payload.Type == models.LessonTypeVideo {
		uploaded, err := s.gw.UploadLessonVideo(ctx, id, video)
		if err != nil {
			return &lesson, s.fail(err, "failed to upload lesson video")
		}
		lesson = uploaded.Data
	}

	s.succeed(res.Ack, "Lesson updated")
	return &lesson, nil
}

// UploadVideo replaces the video of a video lesson and refetches the lessons of its section
func (s *lessonService) UploadVideo(ctx context.Context, sectionID, id string, file *models.MediaFile) (*models.Lesson, error) {
	if file == nil || len(file.Data) == 0 {
		return nil, apperr.NewValidationError("video", "File is required")
	}

	release, err := s.acquire(querycache.EntityLessons, id)
	if err != nil {
		return nil, err
	}
	defer release()

	res, err := s.gw.UploadLessonVideo(ctx, id, file)
	if err != nil {
		return nil, s.fail(err, "failed to upload lesson video")
	}

	s.reconcile(ctx, querycache.LessonsKey(sectionID))
	s.succeed(res.Ack, "Video uploaded")
	lesson := res.Data
	return &lesson, nil
}

// Delete removes a lesson once the gateway confirms it, evicting its cached tool
func (s *lessonService) Delete(ctx context.Context, sectionID, id string) error {
	release, err := s.acquire(querycache.EntityLessons, id)
	if err != nil {
		return err
	}
	defer release()

	ack, err := s.gw.DeleteLesson(ctx, id)
	if err != nil {
		return s.fail(err, "failed to delete lesson")
	}

	s.cache.Remove(querycache.ToolKey(id).Exact())
	s.reconcile(ctx, querycache.LessonsKey(sectionID))
	s.succeed(*ack, "Lesson deleted")
	return nil
}

// Pending reports whether a mutation of the lesson is in flight
func (s *lessonService) Pending(id string) bool {
	return s.cache.Locks().Held(querycache.EntityLessons, id)
}
