package models

import "math"

// Storage keys of the course creation draft
const (
	DraftFieldsKey = "course_draft_fields"
	DraftStepKey   = "course_draft_step"
)

// MediaFile is an uploaded image or video held in memory until submission
type MediaFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// CourseForm holds the values of the multi-step course form.
//
// Image and Video are never serialized. ReplaceImage and ReplaceVideo are only meaningful
// when an existing course is edited.
type CourseForm struct {
	Image            *MediaFile `json:"-" validate:"required"`
	Video            *MediaFile `json:"-" validate:"required"`
	Title            string     `json:"title" validate:"required,min=3,max=200"`
	CategoryID       string     `json:"category_id" validate:"required"`
	Instructor       string     `json:"instructor" validate:"required"`
	Level            Level      `json:"level" validate:"required,oneof=beginner intermediate advanced"`
	Price            float64    `json:"price" validate:"gte=0"`
	DiscountPrice    float64    `json:"discount_price" validate:"gte=0,ltefield=Price"`
	ShortContent     string     `json:"short_content" validate:"required,max=500"`
	Description      string     `json:"description" validate:"required"`
	LearningOutcomes []string   `json:"learning_outcomes" validate:"required,min=1,dive,required"`
	Requirements     []string   `json:"requirements" validate:"required,min=1,dive,required"`
	ReplaceImage     bool       `json:"replace_image,omitempty"`
	ReplaceVideo     bool       `json:"replace_video,omitempty"`
}

// DefaultCourseForm returns the initial form values used when no draft exists
func DefaultCourseForm(categories []Category) CourseForm {
	form := CourseForm{Level: LevelBeginner}
	if len(categories) > 0 {
		form.CategoryID = categories[0].ID
	}
	return form
}

// Payload converts the form into a gateway request
func (f *CourseForm) Payload(academyID string) CoursePayload {
	return CoursePayload{
		AcademyID:        academyID,
		Title:            f.Title,
		CategoryID:       f.CategoryID,
		Instructor:       f.Instructor,
		Level:            f.Level,
		Price:            f.Price,
		DiscountPrice:    f.DiscountPrice,
		ShortContent:     f.ShortContent,
		Description:      f.Description,
		LearningOutcomes: f.LearningOutcomes,
		Requirements:     f.Requirements,
	}
}

// CourseFormFromCourse seeds the form with an existing course for editing
func CourseFormFromCourse(c *Course) CourseForm {
	return CourseForm{
		Title:            c.Title,
		CategoryID:       c.Category.ID,
		Instructor:       c.Instructor,
		Level:            c.Level,
		Price:            c.Price,
		DiscountPrice:    c.DiscountPrice,
		ShortContent:     c.ShortContent,
		Description:      c.Description,
		LearningOutcomes: c.LearningOutcomes,
		Requirements:     c.Requirements,
	}
}

// DraftFields is the serializable subset of CourseForm that is written to durable storage
type DraftFields struct {
	Title            string   `json:"title"`
	CategoryID       string   `json:"category_id"`
	Instructor       string   `json:"instructor"`
	Level            Level    `json:"level"`
	Price            float64  `json:"price"`
	DiscountPrice    float64  `json:"discount_price"`
	ShortContent     string   `json:"short_content"`
	Description      string   `json:"description"`
	LearningOutcomes []string `json:"learning_outcomes"`
	Requirements     []string `json:"requirements"`
}

// DraftFields returns the serializable snapshot of the form. File fields are dropped.
func (f *CourseForm) DraftFields() DraftFields {
	return DraftFields{
		Title:            f.Title,
		CategoryID:       f.CategoryID,
		Instructor:       f.Instructor,
		Level:            f.Level,
		Price:            f.Price,
		DiscountPrice:    f.DiscountPrice,
		ShortContent:     f.ShortContent,
		Description:      f.Description,
		LearningOutcomes: append([]string(nil), f.LearningOutcomes...),
		Requirements:     append([]string(nil), f.Requirements...),
	}
}

// Form rebuilds a form from a restored snapshot. Image and Video stay nil.
func (d *DraftFields) Form() CourseForm {
	return CourseForm{
		Title:            d.Title,
		CategoryID:       d.CategoryID,
		Instructor:       d.Instructor,
		Level:            d.Level,
		Price:            d.Price,
		DiscountPrice:    d.DiscountPrice,
		ShortContent:     d.ShortContent,
		Description:      d.Description,
		LearningOutcomes: d.LearningOutcomes,
		Requirements:     d.Requirements,
	}
}

// NonFiniteFields returns the names of numeric fields that JSON cannot encode
func (d *DraftFields) NonFiniteFields() []string {
	var fields []string
	if math.IsNaN(d.Price) || math.IsInf(d.Price, 0) {
		fields = append(fields, "price")
	}
	if math.IsNaN(d.DiscountPrice) || math.IsInf(d.DiscountPrice, 0) {
		fields = append(fields, "discount_price")
	}
	return fields
}
