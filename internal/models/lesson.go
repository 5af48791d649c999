package models

import (
	"encoding/json"
	"fmt"
)

// LessonType represents the variant tag of a lesson
type LessonType string

const (
	LessonTypeVideo LessonType = "video"
	LessonTypeExam  LessonType = "exam"
	LessonTypeTool  LessonType = "tool"
)

// OptionsPerQuestion is the fixed number of options of an exam question
const OptionsPerQuestion = 4

// LessonContent is the variant-specific part of a lesson.
//
// The set of implementations is closed: VideoContent, ExamContent, ToolContent and
// UnknownContent for tags this client does not understand.
type LessonContent interface {
	LessonType() LessonType
	isLessonContent()
}

// VideoContent is the content of a video lesson
type VideoContent struct {
	VideoURL string `json:"video,omitempty"`
}

// ExamContent is the content of an exam lesson
type ExamContent struct {
	Questions []Question `json:"questions"`
}

// ToolContent is the content of a tool lesson. The tool itself lives in its own collection.
type ToolContent struct {
	ToolID string `json:"tool_id,omitempty"`
}

// UnknownContent keeps the raw tag of a lesson type this client does not know
type UnknownContent struct {
	Type LessonType
}

func (VideoContent) LessonType() LessonType     { return LessonTypeVideo }
func (ExamContent) LessonType() LessonType      { return LessonTypeExam }
func (ToolContent) LessonType() LessonType      { return LessonTypeTool }
func (u UnknownContent) LessonType() LessonType { return u.Type }

func (VideoContent) isLessonContent()   {}
func (ExamContent) isLessonContent()    {}
func (ToolContent) isLessonContent()    {}
func (UnknownContent) isLessonContent() {}

// Question represents a single exam question with four options
type Question struct {
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectOption int      `json:"correct_option"`
}

// Validate checks that the question has text, exactly four options and a correct index in range
func (q *Question) Validate() error {
	if q.Text == "" {
		return fmt.Errorf("question text is required")
	}
	if len(q.Options) != OptionsPerQuestion {
		return fmt.Errorf("question must have exactly %d options, got %d", OptionsPerQuestion, len(q.Options))
	}
	if q.CorrectOption < 0 || q.CorrectOption >= OptionsPerQuestion {
		return fmt.Errorf("correct option index %d is out of range", q.CorrectOption)
	}
	return nil
}

// Lesson represents a lesson inside a section
type Lesson struct {
	ID        string
	SectionID string
	Title     string
	Content   LessonContent
}

// Type returns the variant tag of the lesson, or an empty tag if the content is missing
func (l *Lesson) Type() LessonType {
	if l.Content == nil {
		return ""
	}
	return l.Content.LessonType()
}

// lessonWire is the flat JSON representation used by the gateway
type lessonWire struct {
	ID        string     `json:"id"`
	SectionID string     `json:"section_id"`
	Title     string     `json:"title"`
	Type      LessonType `json:"type"`
	Video     string     `json:"video,omitempty"`
	Questions []Question `json:"questions,omitempty"`
	ToolID    string     `json:"tool_id,omitempty"`
}

// MarshalJSON flattens the lesson content into the gateway representation
func (l Lesson) MarshalJSON() ([]byte, error) {
	w := lessonWire{ID: l.ID, SectionID: l.SectionID, Title: l.Title, Type: l.Type()}
	switch c := l.Content.(type) {
	case VideoContent:
		w.Video = c.VideoURL
	case ExamContent:
		w.Questions = c.Questions
	case ToolContent:
		w.ToolID = c.ToolID
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes the gateway representation and picks the content variant by "type"
func (l *Lesson) UnmarshalJSON(data []byte) error {
	var w lessonWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	l.ID = w.ID
	l.SectionID = w.SectionID
	l.Title = w.Title
	switch w.Type {
	case LessonTypeVideo:
		l.Content = VideoContent{VideoURL: w.Video}
	case LessonTypeExam:
		l.Content = ExamContent{Questions: w.Questions}
	case LessonTypeTool:
		l.Content = ToolContent{ToolID: w.ToolID}
	default:
		l.Content = UnknownContent{Type: w.Type}
	}
	return nil
}

// LessonPayload represents a create or update request for a lesson
type LessonPayload struct {
	SectionID string     `json:"section_id"`
	Title     string     `json:"title"`
	Type      LessonType `json:"type"`
	Questions []Question `json:"questions,omitempty"`
}

// Validate checks the lesson payload including exam questions
func (p *LessonPayload) Validate() error {
	if p.SectionID == "" {
		return fmt.Errorf("section id is required")
	}
	if p.Title == "" {
		return fmt.Errorf("lesson title is required")
	}
	switch p.Type {
	case LessonTypeVideo, LessonTypeTool:
		if len(p.Questions) > 0 {
			return fmt.Errorf("only exam lessons can have questions")
		}
	case LessonTypeExam:
		for i := range p.Questions {
			if err := p.Questions[i].Validate(); err != nil {
				return fmt.Errorf("question %d: %w", i+1, err)
			}
		}
	default:
		return fmt.Errorf("invalid lesson type: %s", p.Type)
	}
	return nil
}
