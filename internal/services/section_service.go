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

// SectionGateway is the interface that wraps the remote section ("chapter") endpoints
type SectionGateway interface {
	// Method ListSections retrieve the sections of a course ordered by their ordinal.
	ListSections(ctx context.Context, courseID string) ([]models.Section, error)
	// Method CreateSection create a section and return it together with the gateway message.
	CreateSection(ctx context.Context, payload models.SectionPayload) (*gateway.Result[models.Section], error)
	// Method UpdateSection replace the title and ordinal of a section.
	UpdateSection(ctx context.Context, id string, payload models.SectionPayload) (*gateway.Result[models.Section], error)
	// Method DeleteSection delete a section with its lessons.
	DeleteSection(ctx context.Context, id string) (*gateway.Ack, error)
}

// sectionCounts matches the course lists, which carry the number of sections of each course
var sectionCounts = querycache.Prefix{Entity: querycache.EntityCourses}

type sectionService struct {
	mutator
	gw SectionGateway
}

// NewSectionService creates a new section service
func NewSectionService(gw SectionGateway, cache *querycache.Cache, notifier Notifier, logger *zap.Logger) *sectionService {
	return &sectionService{
		mutator: mutator{cache: cache, notifier: notifier, logger: logger},
		gw:      gw,
	}
}

// List returns the sections of a course ordered by ordinal
func (s *sectionService) List(ctx context.Context, courseID string) ([]models.Section, error) {
	sections, err := querycache.Query(ctx, s.cache, querycache.SectionsKey(courseID), func(ctx context.Context) ([]models.Section, error) {
		return s.gw.ListSections(ctx, courseID)
	})
	if err != nil {
		s.logger.Error("failed to list sections", zap.String("course_id", courseID), zap.Error(err))
		return nil, fmt.Errorf("failed to list sections: %w", err)
	}
	return sections, nil
}

// Create adds a section to a course.
//
// A zero Order places the section after the last one. An ordinal already used by another
// section of the course is rejected before any request is sent.
func (s *sectionService) Create(ctx context.Context, payload models.SectionPayload) (*models.Section, error) {
	siblings, err := s.List(ctx, payload.CourseID)
	if err != nil {
		return nil, err
	}
	if payload.Order == 0 {
		payload.Order = models.NextOrder(siblings)
	}
	if err := s.validate(payload, siblings, ""); err != nil {
		return nil, err
	}

	res, err := s.gw.CreateSection(ctx, payload)
	if err != nil {
		return nil, s.fail(err, "failed to create section")
	}

	s.reconcile(ctx, querycache.SectionsKey(payload.CourseID))
	s.cache.Invalidate(sectionCounts)
	s.succeed(res.Ack, "Section created")
	section := res.Data
	return &section, nil
}

// Update renames or reorders a section and refetches the sections of its course
func (s *sectionService) Update(ctx context.Context, id string, payload models.SectionPayload) (*models.Section, error) {
	siblings, err := s.List(ctx, payload.CourseID)
	if err != nil {
		return nil, err
	}
	if err := s.validate(payload, siblings, id); err != nil {
		return nil, err
	}

	release, err := s.acquire(querycache.EntitySections, id)
	if err != nil {
		return nil, err
	}
	defer release()

	res, err := s.gw.UpdateSection(ctx, id, payload)
	if err != nil {
		return nil, s.fail(err, "failed to update section")
	}

	s.reconcile(ctx, querycache.SectionsKey(payload.CourseID))
	s.succeed(res.Ack, "Section updated")
	section := res.Data
	return &section, nil
}

// Move changes the ordinal of a section keeping its title
func (s *sectionService) Move(ctx context.Context, courseID, id string, order int) (*models.Section, error) {
	siblings, err := s.List(ctx, courseID)
	if err != nil {
		return nil, err
	}
	for _, section := range siblings {
		if section.ID == id {
			return s.Update(ctx, id, models.SectionPayload{CourseID: courseID, Title: section.Title, Order: order})
		}
	}
	return nil, fmt.Errorf("section %s: %w", id, apperr.ErrNotFound)
}

// Delete removes a section once the gateway confirms it.
//
// The cached lessons of the section and the tools of those lessons are evicted and the
// sections of the course are refetched. On failure the cache is left untouched.
func (s *sectionService) Delete(ctx context.Context, courseID, id string) error {
	release, err := s.acquire(querycache.EntitySections, id)
	if err != nil {
		return err
	}
	defer release()

	ack, err := s.gw.DeleteSection(ctx, id)
	if err != nil {
		return s.fail(err, "failed to delete section")
	}

	s.evictSection(id)
	s.reconcile(ctx, querycache.SectionsKey(courseID))
	s.cache.Invalidate(sectionCounts)
	s.succeed(*ack, "Section deleted")
	return nil
}

// Pending reports whether a mutation of the section is in flight
func (s *sectionService) Pending(id string) bool {
	return s.cache.Locks().Held(querycache.EntitySections, id)
}

func (s *sectionService) validate(payload models.SectionPayload, siblings []models.Section, exceptID string) error {
	if err := payload.Validate(); err != nil {
		return apperr.NewValidationError("section", err.Error())
	}
	if models.OrderTaken(siblings, payload.Order, exceptID) {
		return apperr.NewValidationError("order", fmt.Sprintf("Order %d is already used by another section", payload.Order))
	}
	return nil
}
