package models

import "fmt"

// Level represents the difficulty level of a course
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// Valid reports whether the level is one of the known levels
func (l Level) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

// Category represents a course category
type Category struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Course represents a course owned by an academy
type Course struct {
	ID               string   `json:"id"`
	AcademyID        string   `json:"academy_id"`
	Title            string   `json:"title"`
	Category         Category `json:"category"`
	Instructor       string   `json:"instructor"`
	Level            Level    `json:"level"`
	Price            float64  `json:"price"`
	DiscountPrice    float64  `json:"discount_price"`
	ShortContent     string   `json:"short_content"`
	Description      string   `json:"description"`
	LearningOutcomes []string `json:"learning_outcomes"`
	Requirements     []string `json:"requirements"`
	ImageURL         string   `json:"image,omitempty"`
	VideoURL         string   `json:"video,omitempty"`
	SectionsCount    int      `json:"sections_count,omitempty"`
}

// Validate checks the structural invariants of a course
func (c *Course) Validate() error {
	if c.Title == "" {
		return fmt.Errorf("course title is required")
	}
	if c.Level != "" && !c.Level.Valid() {
		return fmt.Errorf("invalid course level: %s", c.Level)
	}
	if c.Price < 0 || c.DiscountPrice < 0 {
		return fmt.Errorf("course price must not be negative")
	}
	return nil
}

// CoursePayload represents a create or update request for a course
type CoursePayload struct {
	AcademyID        string   `json:"academy_id,omitempty"`
	Title            string   `json:"title"`
	CategoryID       string   `json:"category_id"`
	Instructor       string   `json:"instructor,omitempty"`
	Level            Level    `json:"level,omitempty"`
	Price            float64  `json:"price"`
	DiscountPrice    float64  `json:"discount_price"`
	ShortContent     string   `json:"short_content,omitempty"`
	Description      string   `json:"description,omitempty"`
	LearningOutcomes []string `json:"learning_outcomes,omitempty"`
	Requirements     []string `json:"requirements,omitempty"`
}

// RemoveCourse returns a copy of courses without the course with the given id.
//
// The input slice is never modified so it can be kept as a snapshot.
func RemoveCourse(courses []Course, id string) []Course {
	out := make([]Course, 0, len(courses))
	for _, c := range courses {
		if c.ID != id {
			out = append(out, c)
		}
	}
	return out
}

// ReplaceCourse returns a copy of courses with the course of the same id replaced
func ReplaceCourse(courses []Course, updated Course) []Course {
	out := make([]Course, len(courses))
	copy(out, courses)
	for i := range out {
		if out[i].ID == updated.ID {
			out[i] = updated
		}
	}
	return out
}
