package models

// SelectedKind tells which node of the tree is selected
type SelectedKind string

const (
	SelectedSection SelectedKind = "section"
	SelectedLesson  SelectedKind = "lesson"
)

// SelectedItem is the node currently open in the authoring screen.
//
// Exactly one of Section and Lesson is set, according to Kind. CourseID is empty when the
// course of a selected lesson is unknown.
type SelectedItem struct {
	Kind     SelectedKind `json:"kind"`
	CourseID string       `json:"course_id,omitempty"`
	Section  *Section     `json:"section,omitempty"`
	Lesson   *Lesson      `json:"lesson,omitempty"`
}
