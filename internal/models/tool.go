package models

import (
	"encoding/json"
	"fmt"
	"slices"
)

// ToolType represents the variant tag of an interactive tool
type ToolType string

const (
	ToolTypeColoredCard ToolType = "colored_card"
	ToolTypeTimeline    ToolType = "timeline"
	ToolTypeText        ToolType = "text"
)

// ToolPayload is the variant-specific part of a tool.
//
// Implementations: ColoredCardPayload, TimelinePayload, TextPayload and UnknownToolPayload.
type ToolPayload interface {
	ToolType() ToolType
	isToolPayload()
}

// Card is a single colored card
type Card struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Color string `json:"color"`
}

// TimelineEntry is a single ordered entry of a timeline
type TimelineEntry struct {
	Date  string `json:"date"`
	Title string `json:"title"`
	Body  string `json:"body"`
	Order int    `json:"order"`
}

// ColoredCardPayload holds the card list of a colored card tool
type ColoredCardPayload struct {
	Cards []Card
}

// TimelinePayload holds the entries of a timeline tool
type TimelinePayload struct {
	Entries []TimelineEntry
}

// TextPayload holds the rich text of a text tool
type TextPayload struct {
	HTML string
}

// UnknownToolPayload marks a tool whose type is missing or not understood
type UnknownToolPayload struct {
	Type ToolType
}

func (ColoredCardPayload) ToolType() ToolType   { return ToolTypeColoredCard }
func (TimelinePayload) ToolType() ToolType      { return ToolTypeTimeline }
func (TextPayload) ToolType() ToolType          { return ToolTypeText }
func (u UnknownToolPayload) ToolType() ToolType { return u.Type }

func (ColoredCardPayload) isToolPayload() {}
func (TimelinePayload) isToolPayload()    {}
func (TextPayload) isToolPayload()        {}
func (UnknownToolPayload) isToolPayload() {}

// Tool represents the interactive tool of a tool lesson
type Tool struct {
	ID       string
	LessonID string
	Payload  ToolPayload
}

// Type returns the tool type, or an empty type when the payload is missing
func (t *Tool) Type() ToolType {
	if t.Payload == nil {
		return ""
	}
	return t.Payload.ToolType()
}

type toolWire struct {
	ID       string          `json:"id"`
	LessonID string          `json:"lesson_id"`
	ToolType ToolType        `json:"tool_type"`
	Cards    []Card          `json:"cards,omitempty"`
	Entries  []TimelineEntry `json:"entries,omitempty"`
	Text     string          `json:"text,omitempty"`
}

// MarshalJSON flattens the payload into the gateway representation
func (t Tool) MarshalJSON() ([]byte, error) {
	w := toolWire{ID: t.ID, LessonID: t.LessonID, ToolType: t.Type()}
	switch p := t.Payload.(type) {
	case ColoredCardPayload:
		w.Cards = p.Cards
	case TimelinePayload:
		w.Entries = p.Entries
	case TextPayload:
		w.Text = p.HTML
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes the gateway representation and picks the payload by "tool_type"
func (t *Tool) UnmarshalJSON(data []byte) error {
	var w toolWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	t.ID = w.ID
	t.LessonID = w.LessonID
	switch w.ToolType {
	case ToolTypeColoredCard:
		t.Payload = ColoredCardPayload{Cards: w.Cards}
	case ToolTypeTimeline:
		entries := slices.Clone(w.Entries)
		slices.SortStableFunc(entries, func(a, b TimelineEntry) int { return a.Order - b.Order })
		t.Payload = TimelinePayload{Entries: entries}
	case ToolTypeText:
		t.Payload = TextPayload{HTML: w.Text}
	default:
		t.Payload = UnknownToolPayload{Type: w.ToolType}
	}
	return nil
}

// ToolRequest represents a create or update request for a tool
type ToolRequest struct {
	LessonID string
	Payload  ToolPayload
}

// MarshalJSON encodes the request the same way as a tool without id
func (r ToolRequest) MarshalJSON() ([]byte, error) {
	return json.Marshal(Tool{LessonID: r.LessonID, Payload: r.Payload})
}

// Validate checks that the request targets a lesson and carries a known payload
func (r *ToolRequest) Validate() error {
	if r.LessonID == "" {
		return fmt.Errorf("lesson id is required")
	}
	switch p := r.Payload.(type) {
	case ColoredCardPayload:
		if len(p.Cards) == 0 {
			return fmt.Errorf("colored card tool needs at least one card")
		}
	case TimelinePayload:
		if len(p.Entries) == 0 {
			return fmt.Errorf("timeline tool needs at least one entry")
		}
	case TextPayload:
		if p.HTML == "" {
			return fmt.Errorf("text tool content is required")
		}
	case nil:
		return fmt.Errorf("tool payload is required")
	default:
		return fmt.Errorf("invalid tool type: %s", p.ToolType())
	}
	return nil
}
