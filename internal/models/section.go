package models

import (
	"fmt"
	"slices"
)

// Section represents an ordered chapter of a course.
//
// The remote gateway calls sections "chapters".
type Section struct {
	ID       string   `json:"id"`
	CourseID string   `json:"course_id"`
	Title    string   `json:"title"`
	Order    int      `json:"order"`
	Lessons  []Lesson `json:"lessons,omitempty"`
}

// SectionPayload represents a create or update request for a section
type SectionPayload struct {
	CourseID string `json:"course_id"`
	Title    string `json:"title"`
	Order    int    `json:"order"`
}

// Validate checks the required section fields
func (p *SectionPayload) Validate() error {
	if p.CourseID == "" {
		return fmt.Errorf("course id is required")
	}
	if p.Title == "" {
		return fmt.Errorf("section title is required")
	}
	if p.Order <= 0 {
		return fmt.Errorf("section order must be greater than 0")
	}
	return nil
}

// SortSections orders sections by their ordinal position
func SortSections(sections []Section) {
	slices.SortStableFunc(sections, func(a, b Section) int {
		return a.Order - b.Order
	})
}

// OrderTaken reports whether another section of the list already uses the ordinal.
//
// "exceptID" is skipped so that a section can keep its own order on update.
func OrderTaken(sections []Section, order int, exceptID string) bool {
	for _, s := range sections {
		if s.ID != exceptID && s.Order == order {
			return true
		}
	}
	return false
}

// NextOrder returns the first ordinal after the highest one in the list
func NextOrder(sections []Section) int {
	next := 1
	for _, s := range sections {
		if s.Order >= next {
			next = s.Order + 1
		}
	}
	return next
}
