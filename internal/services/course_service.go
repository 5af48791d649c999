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

// CourseGateway is the interface that wraps the remote course endpoints
type CourseGateway interface {
	// Method ListCategories retrieve all course categories.
	ListCategories(ctx context.Context) ([]models.Category, error)
	// Method ListCourses retrieve the courses of an academy.
	//
	// If some error will occur during data retrieve, the error will be returned together with "nil" value.
	ListCourses(ctx context.Context, academyID string) ([]models.Course, error)
	// Method GetCourse retrieve a course by its ID.
	GetCourse(ctx context.Context, id string) (*models.Course, error)
	// Method CreateCourse create a course and return it together with the gateway message.
	CreateCourse(ctx context.Context, payload models.CoursePayload) (*gateway.Result[models.Course], error)
	// Method UpdateCourse replace the fields of a course.
	UpdateCourse(ctx context.Context, id string, payload models.CoursePayload) (*gateway.Result[models.Course], error)
	// Method DeleteCourse delete a course with everything it contains.
	DeleteCourse(ctx context.Context, id string) (*gateway.Ack, error)
	// Method UploadCourseMedia upload the cover image or the promo video of a course.
	//
	// "kind" parameter selects the media slot. Please reference MediaKind constants for correct values.
	UploadCourseMedia(ctx context.Context, id string, kind gateway.MediaKind, file *models.MediaFile) (*gateway.Result[models.Course], error)
}

type courseService struct {
	mutator
	gw        CourseGateway
	academyID string
}

// NewCourseService creates a new course service bound to a single academy
func NewCourseService(gw CourseGateway, cache *querycache.Cache, notifier Notifier, academyID string, logger *zap.Logger) *courseService {
	return &courseService{
		mutator:   mutator{cache: cache, notifier: notifier, logger: logger},
		gw:        gw,
		academyID: academyID,
	}
}

// List returns the cached courses of the academy, fetching them on first use
func (s *courseService) List(ctx context.Context) ([]models.Course, error) {
	courses, err := querycache.Query(ctx, s.cache, querycache.CoursesKey(s.academyID), func(ctx context.Context) ([]models.Course, error) {
		return s.gw.ListCourses(ctx, s.academyID)
	})
	if err != nil {
		s.logger.Error("failed to list courses", zap.Error(err))
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return courses, nil
}

// Get returns a single course
func (s *courseService) Get(ctx context.Context, id string) (*models.Course, error) {
	course, err := querycache.Query(ctx, s.cache, querycache.CourseKey(id), func(ctx context.Context) (*models.Course, error) {
		return s.gw.GetCourse(ctx, id)
	})
	if err != nil {
		s.logger.Error("failed to get course", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	return course, nil
}

// Categories returns the course categories
func (s *courseService) Categories(ctx context.Context) ([]models.Category, error) {
	categories, err := querycache.Query(ctx, s.cache, querycache.CategoriesKey(), s.gw.ListCategories)
	if err != nil {
		s.logger.Error("failed to list categories", zap.Error(err))
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// Create creates a course from a validated form and uploads its media.
//
// The course list of the academy is refetched once the course exists, even if a media
// upload fails afterwards.
func (s *courseService) Create(ctx context.Context, form *models.CourseForm) (*models.Course, error) {
	payload := form.Payload(s.academyID)
	if payload.Title == "" {
		return nil, apperr.NewValidationError("title", "Title is required")
	}

	res, err := s.gw.CreateCourse(ctx, payload)
	if err != nil {
		return nil, s.fail(err, "failed to create course")
	}
	course := res.Data
	defer s.reconcile(ctx, querycache.CoursesKey(s.academyID))

	if err := s.uploadMedia(ctx, &course, form.Image, form.Video); err != nil {
		return &course, err
	}

	s.succeed(res.Ack, "Course created")
	return &course, nil
}

// Update replaces the fields of a course and, when requested, its media.
//
// The course is replaced in place in the cached academy list. A second update or delete
// of the same course while this one is pending is rejected with apperr.ErrConcurrencyReject.
func (s *courseService) Update(ctx context.Context, id string, form *models.CourseForm) (*models.Course, error) {
	release, err := s.acquire(querycache.EntityCourse, id)
	if err != nil {
		return nil, err
	}
	defer release()

	res, err := s.gw.UpdateCourse(ctx, id, form.Payload(s.academyID))
	if err != nil {
		return nil, s.fail(err, "failed to update course")
	}
	course := res.Data

	var image, video *models.MediaFile
	if form.ReplaceImage {
		image = form.Image
	}
	if form.ReplaceVideo {
		video = form.Video
	}
	uploadErr := s.uploadMedia(ctx, &course, image, video)

	s.replace(course)
	if uploadErr != nil {
		return &course, uploadErr
	}
	s.succeed(res.Ack, "Course updated")
	return &course, nil
}

// Delete removes a course optimistically.
//
// The course disappears from the cached list before the gateway answers. On failure the
// list is restored exactly as it was and an error notification is posted; on success the
// cached subtree of the course is evicted and the list is refetched.
func (s *courseService) Delete(ctx context.Context, id string) error {
	release, err := s.acquire(querycache.EntityCourse, id)
	if err != nil {
		return err
	}
	defer release()

	key := querycache.CoursesKey(s.academyID)
	tx := s.cache.Begin(key)
	if _, ok := tx.Snapshot(); ok {
		querycache.ApplyTyped(tx, func(current []models.Course, _ bool) []models.Course {
			return models.RemoveCourse(current, id)
		})
	}

	ack, err := s.gw.DeleteCourse(ctx, id)
	if err := tx.CommitOrRollback(err); err != nil {
		return s.fail(err, "failed to delete course")
	}

	s.evictCourse(id)
	s.reconcile(ctx, key)
	s.succeed(*ack, "Course deleted")
	return nil
}

// UploadMedia replaces the cover image or promo video of a course in place
func (s *courseService) UploadMedia(ctx context.Context, id string, kind gateway.MediaKind, file *models.MediaFile) (*models.Course, error) {
	if file == nil || len(file.Data) == 0 {
		return nil, apperr.NewValidationError(string(kind), "File is required")
	}

	release, err := s.acquire(querycache.EntityCourse, id)
	if err != nil {
		return nil, err
	}
	defer release()

	res, err := s.gw.UploadCourseMedia(ctx, id, kind, file)
	if err != nil {
		return nil, s.fail(err, fmt.Sprintf("failed to upload course %s", kind))
	}

	course := res.Data
	s.replace(course)
	s.succeed(res.Ack, "Media uploaded")
	return &course, nil
}

// Pending reports whether a mutation of the course is in flight
func (s *courseService) Pending(id string) bool {
	return s.cache.Locks().Held(querycache.EntityCourse, id)
}

// replace writes the updated course into every cached view that holds it
func (s *courseService) replace(course models.Course) {
	key := querycache.CoursesKey(s.academyID)
	if courses, ok := querycache.Peek[[]models.Course](s.cache, key); ok {
		s.cache.Set(key, models.ReplaceCourse(courses, course))
	}
	if _, ok := s.cache.Peek(querycache.CourseKey(course.ID)); ok {
		s.cache.Set(querycache.CourseKey(course.ID), &course)
	}
}

func (s *courseService) uploadMedia(ctx context.Context, course *models.Course, image, video *models.MediaFile) error {
	uploads := []struct {
		kind gateway.MediaKind
		file *models.MediaFile
	}{
		{gateway.MediaImage, image},
		{gateway.MediaVideo, video},
	}
	for _, u := range uploads {
		if u.file == nil {
			continue
		}
		res, err := s.gw.UploadCourseMedia(ctx, course.ID, u.kind, u.file)
		if err != nil {
			return s.fail(err, fmt.Sprintf("failed to upload course %s", u.kind))
		}
		course.ImageURL = res.Data.ImageURL
		course.VideoURL = res.Data.VideoURL
	}
	return nil
}
