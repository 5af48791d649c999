// Package wizard gates the three steps of the course form.
//
// Each step validates only its own fields; the final submit validates all of them.
package wizard

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/eduplatform/authoring/internal/apperr"
	"github.com/eduplatform/authoring/internal/models"
	"github.com/go-playground/validator/v10"
)

// Steps of the course form
const (
	StepBasics      = 1
	StepDescription = 2
	StepStructure   = 3
	FinalStep       = StepStructure
)

// Mode tells whether the form creates a new course or edits an existing one
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

// stepFields lists the CourseForm fields validated by each step
var stepFields = map[int][]string{
	StepBasics:      {"Image", "Video", "Title", "CategoryID", "Level", "Price", "DiscountPrice", "Instructor"},
	StepDescription: {"ShortContent", "Description"},
	StepStructure:   {"LearningOutcomes", "Requirements"},
}

// Wizard tracks the current step of one course form
type Wizard struct {
	mu       sync.Mutex
	step     int
	mode     Mode
	validate *validator.Validate
}

// New creates a wizard positioned at the first step
func New(mode Mode) *Wizard {
	return &Wizard{
		step:     StepBasics,
		mode:     mode,
		validate: newValidator(),
	}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return strings.ToLower(field.Name)
		}
		return name
	})
	return v
}

// Current returns the current step
func (w *Wizard) Current() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// Mode returns whether the wizard creates or edits a course
func (w *Wizard) Mode() Mode {
	return w.mode
}

// IsFinal reports whether the current step is the last one
func (w *Wizard) IsFinal() bool {
	return w.Current() == FinalStep
}

// Restore moves the wizard to a saved step, clamped to the valid range
func (w *Wizard) Restore(step int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.step = min(max(step, StepBasics), FinalStep)
}

// Reset moves the wizard back to the first step
func (w *Wizard) Reset() {
	w.Restore(StepBasics)
}

// Next validates the fields of the current step and advances on success.
//
// On failure the step is unchanged and a *apperr.ValidationError lists the failing fields.
// At the final step Next only validates.
func (w *Wizard) Next(form *models.CourseForm) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.validateStep(form, w.step); err != nil {
		return w.step, err
	}
	if w.step < FinalStep {
		w.step++
	}
	return w.step, nil
}

// Back returns to the previous step. It is always allowed and does nothing at the first step.
func (w *Wizard) Back() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step > StepBasics {
		w.step--
	}
	return w.step
}

// Submit validates every step before the form is sent.
//
// Submit is only allowed at the final step. When an earlier step fails the wizard moves
// back to it.
func (w *Wizard) Submit(form *models.CourseForm) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != FinalStep {
		return apperr.NewValidationError("step", "Complete the remaining steps before submitting")
	}
	for step := StepBasics; step <= FinalStep; step++ {
		if err := w.validateStep(form, step); err != nil {
			w.step = step
			return err
		}
	}
	return nil
}

func (w *Wizard) validateStep(form *models.CourseForm, step int) error {
	fields := stepFields[step]
	verr := &apperr.ValidationError{Fields: make(map[string]string)}

	if w.mode == ModeEdit && step == StepBasics {
		fields = fields[2:]
		if form.ReplaceImage && form.Image == nil {
			verr.Fields["image"] = "Image is required"
		}
		if form.ReplaceVideo && form.Video == nil {
			verr.Fields["video"] = "Video is required"
		}
	}

	err := w.validate.StructPartial(form, fields...)
	if err != nil {
		fieldErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return fmt.Errorf("failed to validate step %d: %w", step, err)
		}
		for _, fe := range fieldErrs {
			verr.Fields[fe.Field()] = message(fe)
		}
	}

	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

var labels = map[string]string{
	"image":             "Image",
	"video":             "Video",
	"title":             "Title",
	"category_id":       "Category",
	"instructor":        "Instructor",
	"level":             "Level",
	"price":             "Price",
	"discount_price":    "Discount price",
	"short_content":     "Short content",
	"description":       "Description",
	"learning_outcomes": "Learning outcomes",
	"requirements":      "Requirements",
}

func message(fe validator.FieldError) string {
	name, _, element := strings.Cut(fe.Field(), "[")
	label, ok := labels[name]
	if !ok {
		label = "Value"
	}
	if element {
		return label + " must not contain empty entries"
	}

	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s needs at least %s item(s)", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gte":
		return label + " must not be negative"
	case "ltefield":
		return label + " must not exceed the price"
	}
	return label + " is invalid"
}
