// Package content maps the selected node of a course tree to the editor that renders it.
package content

import (
	"fmt"

	"github.com/eduplatform/authoring/internal/models"
)

// Kind identifies an editor of the authoring screen
type Kind int

const (
	RendererEmpty Kind = iota
	RendererSectionEditor
	RendererVideoLesson
	RendererExamLesson
	RendererColoredCardTool
	RendererTimelineTool
	RendererTextTool
)

func (k Kind) String() string {
	switch k {
	case RendererEmpty:
		return "empty"
	case RendererSectionEditor:
		return "section_editor"
	case RendererVideoLesson:
		return "video_lesson"
	case RendererExamLesson:
		return "exam_lesson"
	case RendererColoredCardTool:
		return "colored_card_tool"
	case RendererTimelineTool:
		return "timeline_tool"
	case RendererTextTool:
		return "text_tool"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// MarshalText encodes the kind by name
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name written by MarshalText
func (k *Kind) UnmarshalText(text []byte) error {
	for _, kind := range Renderers() {
		if kind.String() == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown renderer kind: %s", text)
}

// Renderers returns every kind in declaration order
func Renderers() []Kind {
	return []Kind{
		RendererEmpty,
		RendererSectionEditor,
		RendererVideoLesson,
		RendererExamLesson,
		RendererColoredCardTool,
		RendererTimelineTool,
		RendererTextTool,
	}
}

// Reasons shown by the empty editor
const (
	ReasonNothingSelected = "Select a section or a lesson to start editing"
	ReasonToolMissing     = "This lesson has no tool yet"
	ReasonToolUnavailable = "The tool of this lesson could not be loaded"
	ReasonUnknownLesson   = "Unsupported lesson type"
	ReasonUnknownTool     = "Unsupported tool type"
)

// Renderer is the editor chosen for a selection together with the data it edits.
//
// Reason is set only for RendererEmpty.
type Renderer struct {
	Kind    Kind            `json:"kind"`
	Reason  string          `json:"reason,omitempty"`
	Section *models.Section `json:"section,omitempty"`
	Lesson  *models.Lesson  `json:"lesson,omitempty"`
	Tool    *models.Tool    `json:"tool,omitempty"`
}

func empty(reason string) Renderer {
	return Renderer{Kind: RendererEmpty, Reason: reason}
}

// Resolve picks the editor for the selection.
//
// "tool" is the tool of the selected lesson and is ignored for every other selection.
// Resolve is total: malformed or unknown input yields RendererEmpty with a reason.
func Resolve(sel *models.SelectedItem, tool *models.Tool) Renderer {
	if sel == nil {
		return empty(ReasonNothingSelected)
	}

	switch sel.Kind {
	case models.SelectedSection:
		if sel.Section == nil {
			return empty(ReasonNothingSelected)
		}
		return Renderer{Kind: RendererSectionEditor, Section: sel.Section}
	case models.SelectedLesson:
		if sel.Lesson == nil {
			return empty(ReasonNothingSelected)
		}
		return resolveLesson(sel.Lesson, tool)
	}
	return empty(ReasonNothingSelected)
}

func resolveLesson(lesson *models.Lesson, tool *models.Tool) Renderer {
	switch c := lesson.Content.(type) {
	case models.VideoContent:
		return Renderer{Kind: RendererVideoLesson, Lesson: lesson}
	case models.ExamContent:
		return Renderer{Kind: RendererExamLesson, Lesson: lesson}
	case models.ToolContent:
		return resolveTool(lesson, tool)
	case models.UnknownContent:
		return empty(fmt.Sprintf("%s %q", ReasonUnknownLesson, c.Type))
	}
	return empty(ReasonUnknownLesson)
}

func resolveTool(lesson *models.Lesson, tool *models.Tool) Renderer {
	if tool == nil {
		return empty(ReasonToolMissing)
	}

	r := Renderer{Lesson: lesson, Tool: tool}
	switch p := tool.Payload.(type) {
	case models.ColoredCardPayload:
		r.Kind = RendererColoredCardTool
	case models.TimelinePayload:
		r.Kind = RendererTimelineTool
	case models.TextPayload:
		r.Kind = RendererTextTool
	case models.UnknownToolPayload:
		return empty(fmt.Sprintf("%s %q", ReasonUnknownTool, p.Type))
	default:
		return empty(ReasonUnknownTool)
	}
	return r
}
