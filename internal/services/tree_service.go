package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/eduplatform/authoring/internal/content"
	"github.com/eduplatform/authoring/internal/models"
	"golang.org/x/sync/errgroup"
)

// maxTreeFetches bounds the concurrent reads issued while loading a course tree
const maxTreeFetches = 8

type treeService struct {
	courses  *courseService
	sections *sectionService
	lessons  *lessonService
	tools    *toolService
}

// NewTreeService creates the read side that assembles a course tree from the cached collections
func NewTreeService(courses *courseService, sections *sectionService, lessons *lessonService, tools *toolService) *treeService {
	return &treeService{
		courses:  courses,
		sections: sections,
		lessons:  lessons,
		tools:    tools,
	}
}

// Tree loads a course with its sections, lessons and tools.
//
// Lessons of every section are loaded concurrently, then the tools of every tool lesson.
func (s *treeService) Tree(ctx context.Context, courseID string) (*content.Tree, error) {
	course, err := s.courses.Get(ctx, courseID)
	if err != nil {
		return nil, err
	}
	sections, err := s.sections.List(ctx, courseID)
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	lessonsBySection := make(map[string][]models.Lesson, len(sections))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxTreeFetches)
	for _, section := range sections {
		g.Go(func() error {
			lessons, err := s.lessons.List(gctx, section.ID)
			if err != nil {
				return err
			}
			mu.Lock()
			lessonsBySection[section.ID] = lessons
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load course tree: %w", err)
	}

	toolsByLesson := make(map[string]*models.Tool)
	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(maxTreeFetches)
	for _, lessons := range lessonsBySection {
		for _, lesson := range lessons {
			if lesson.Type() != models.LessonTypeTool {
				continue
			}
			g.Go(func() error {
				tool, err := s.tools.Get(gctx, lesson.ID)
				if err != nil {
					return err
				}
				mu.Lock()
				toolsByLesson[lesson.ID] = tool
				mu.Unlock()
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load course tree: %w", err)
	}

	return content.BuildTree(*course, sections, lessonsBySection, toolsByLesson), nil
}
