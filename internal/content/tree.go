package content

import (
	"slices"
	"strings"

	"github.com/eduplatform/authoring/internal/models"
)

// Tree is the ordered read model of a course: sections by ordinal, lessons by id
type Tree struct {
	Course   models.Course `json:"course"`
	Sections []SectionNode `json:"sections"`
}

// SectionNode is a section with its lessons
type SectionNode struct {
	Section models.Section `json:"section"`
	Lessons []LessonNode   `json:"lessons"`
}

// LessonNode is a lesson with its tool, if it is a tool lesson and the tool exists
type LessonNode struct {
	Lesson models.Lesson `json:"lesson"`
	Tool   *models.Tool  `json:"tool,omitempty"`
}

// BuildTree assembles the tree of a course.
//
// Lessons are looked up by section id and tools by lesson id; missing entries yield empty
// branches. Inputs are not modified.
func BuildTree(course models.Course, sections []models.Section, lessonsBySection map[string][]models.Lesson, toolsByLesson map[string]*models.Tool) *Tree {
	ordered := slices.Clone(sections)
	models.SortSections(ordered)

	tree := &Tree{Course: course, Sections: make([]SectionNode, 0, len(ordered))}
	for _, section := range ordered {
		lessons := slices.Clone(lessonsBySection[section.ID])
		slices.SortStableFunc(lessons, func(a, b models.Lesson) int {
			return compareIDs(a.ID, b.ID)
		})

		node := SectionNode{Section: section, Lessons: make([]LessonNode, 0, len(lessons))}
		node.Section.Lessons = nil
		for _, lesson := range lessons {
			ln := LessonNode{Lesson: lesson}
			if lesson.Type() == models.LessonTypeTool {
				ln.Tool = toolsByLesson[lesson.ID]
			}
			node.Lessons = append(node.Lessons, ln)
		}
		tree.Sections = append(tree.Sections, node)
	}
	return tree
}

// Find locates a node and returns it as a selection
func (t *Tree) Find(kind models.SelectedKind, id string) (*models.SelectedItem, bool) {
	for i := range t.Sections {
		node := &t.Sections[i]
		if kind == models.SelectedSection && node.Section.ID == id {
			return &models.SelectedItem{Kind: kind, Section: &node.Section}, true
		}
		if kind != models.SelectedLesson {
			continue
		}
		for j := range node.Lessons {
			if node.Lessons[j].Lesson.ID == id {
				return &models.SelectedItem{Kind: kind, Lesson: &node.Lessons[j].Lesson}, true
			}
		}
	}
	return nil, false
}

// ToolOf returns the tool of a lesson in the tree
func (t *Tree) ToolOf(lessonID string) *models.Tool {
	for _, section := range t.Sections {
		for _, lesson := range section.Lessons {
			if lesson.Lesson.ID == lessonID {
				return lesson.Tool
			}
		}
	}
	return nil
}

// compareIDs orders numeric ids numerically and everything else lexically
func compareIDs(a, b string) int {
	if len(a) != len(b) && isDigits(a) && isDigits(b) {
		return len(a) - len(b)
	}
	return strings.Compare(a, b)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
