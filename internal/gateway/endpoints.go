package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/eduplatform/authoring/internal/models"
)

// ListCourses retrieves the courses of an academy
func (c *Client) ListCourses(ctx context.Context, academyID string) ([]models.Course, error) {
	res, err := call[[]models.Course](ctx, c, http.MethodGet, "/academies/{id}/courses", withID(academyID))
	if err != nil {
		return nil, err
	}
	return res.Data, nil
}

// GetCourse retrieves a course by id
func (c *Client) GetCourse(ctx context.Context, id string) (*models.Course, error) {
	res, err := call[models.Course](ctx, c, http.MethodGet, "/courses/{id}", withID(id))
	if err != nil {
		return nil, err
	}
	return &res.Data, nil
}

// CreateCourse creates a course; the server assigns the id
func (c *Client) CreateCourse(ctx context.Context, payload models.CoursePayload) (*Result[models.Course], error) {
	return call[models.Course](ctx, c, http.MethodPost, "/courses", withBody(payload))
}

// UpdateCourse updates a course
func (c *Client) UpdateCourse(ctx context.Context, id string, payload models.CoursePayload) (*Result[models.Course], error) {
	return call[models.Course](ctx, c, http.MethodPut, "/courses/{id}", withIDAndBody(id, payload))
}

// DeleteCourse deletes a course
func (c *Client) DeleteCourse(ctx context.Context, id string) (*Ack, error) {
	res, err := call[struct{}](ctx, c, http.MethodDelete, "/courses/{id}", withID(id))
	if err != nil {
		return nil, err
	}
	return &res.Ack, nil
}

// UploadCourseMedia uploads the image or video of a course as a multipart request
func (c *Client) UploadCourseMedia(ctx context.Context, id string, kind MediaKind, file *models.MediaFile) (*Result[models.Course], error) {
	if file == nil {
		return nil, fmt.Errorf("no %s file provided", kind)
	}
	path := fmt.Sprintf("/courses/{id}/%s", kind)
	return call[models.Course](ctx, c, http.MethodPost, path, withFile(id, string(kind), file))
}

// ListSections retrieves the sections of a course
func (c *Client) ListSections(ctx context.Context, courseID string) ([]models.Section, error) {
	res, err := call[[]models.Section](ctx, c, http.MethodGet, "/courses/{id}/chapters", withID(courseID))
	if err != nil {
		return nil, err
	}
	models.SortSections(res.Data)
	return res.Data, nil
}

// CreateSection creates a section (chapter)
func (c *Client) CreateSection(ctx context.Context, payload models.SectionPayload) (*Result[models.Section], error) {
	return call[models.Section](ctx, c, http.MethodPost, "/chapters", withBody(payload))
}

// UpdateSection updates a section
func (c *Client) UpdateSection(ctx context.Context, id string, payload models.SectionPayload) (*Result[models.Section], error) {
	return call[models.Section](ctx, c, http.MethodPut, "/chapters/{id}", withIDAndBody(id, payload))
}

// DeleteSection deletes a section; the server removes its lessons
func (c *Client) DeleteSection(ctx context.Context, id string) (*Ack, error) {
	res, err := call[struct{}](ctx, c, http.MethodDelete, "/chapters/{id}", withID(id))
	if err != nil {
		return nil, err
	}
	return &res.Ack, nil
}

// ListLessons retrieves the lessons of a section
func (c *Client) ListLessons(ctx context.Context, sectionID string) ([]models.Lesson, error) {
	res, err := call[[]models.Lesson](ctx, c, http.MethodGet, "/chapters/{id}/lessons", withID(sectionID))
	if err != nil {
		return nil, err
	}
	return res.Data, nil
}

// CreateLesson creates a lesson
func (c *Client) CreateLesson(ctx context.Context, payload models.LessonPayload) (*Result[models.Lesson], error) {
	return call[models.Lesson](ctx, c, http.MethodPost, "/lessons", withBody(payload))
}

// UpdateLesson updates a lesson
func (c *Client) UpdateLesson(ctx context.Context, id string, payload models.LessonPayload) (*Result[models.Lesson], error) {
	return call[models.Lesson](ctx, c, http.MethodPut, "/lessons/{id}", withIDAndBody(id, payload))
}

// DeleteLesson deletes a lesson
func (c *Client) DeleteLesson(ctx context.Context, id string) (*Ack, error) {
	res, err := call[struct{}](ctx, c, http.MethodDelete, "/lessons/{id}", withID(id))
	if err != nil {
		return nil, err
	}
	return &res.Ack, nil
}

// UploadLessonVideo uploads the video of a video lesson
func (c *Client) UploadLessonVideo(ctx context.Context, id string, file *models.MediaFile) (*Result[models.Lesson], error) {
	if file == nil {
		return nil, fmt.Errorf("no video file provided")
	}
	return call[models.Lesson](ctx, c, http.MethodPost, "/lessons/{id}/video", withFile(id, string(MediaVideo), file))
}

// GetTool retrieves the tool of a lesson. A lesson without a tool yields nil.
func (c *Client) GetTool(ctx context.Context, lessonID string) (*models.Tool, error) {
	res, err := call[*models.Tool](ctx, c, http.MethodGet, "/lessons/{id}/tool", withID(lessonID))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return res.Data, nil
}

// CreateTool creates the tool of a tool lesson
func (c *Client) CreateTool(ctx context.Context, req models.ToolRequest) (*Result[models.Tool], error) {
	return call[models.Tool](ctx, c, http.MethodPost, "/tools", withBody(req))
}

// UpdateTool updates a tool
func (c *Client) UpdateTool(ctx context.Context, id string, req models.ToolRequest) (*Result[models.Tool], error) {
	return call[models.Tool](ctx, c, http.MethodPut, "/tools/{id}", withIDAndBody(id, req))
}

// DeleteTool deletes a tool
func (c *Client) DeleteTool(ctx context.Context, id string) (*Ack, error) {
	res, err := call[struct{}](ctx, c, http.MethodDelete, "/tools/{id}", withID(id))
	if err != nil {
		return nil, err
	}
	return &res.Ack, nil
}
