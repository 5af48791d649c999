package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/eduplatform/authoring/internal/apperr"
	"github.com/eduplatform/authoring/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// writeEnvelope writes a gateway envelope response
func writeEnvelope(t *testing.T, w http.ResponseWriter, code int, status bool, message string, data any) {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(Envelope{Status: status, StatusCode: code, Message: message, Data: raw})
}

// setupTestClient starts a fake gateway with the given routes
func setupTestClient(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	logger, err := zap.NewDevelopment()
	require.NoError(t, err)
	return NewClient(Options{BaseURL: server.URL, Token: "secret"}, logger)
}

func TestClient_ListCourses(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /academies/{id}/courses", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "5", r.PathValue("id"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		writeEnvelope(t, w, http.StatusOK, true, "ok", []models.Course{
			{ID: "1", Title: "Go"},
			{ID: "2", Title: "Rust"},
		})
	})
	client := setupTestClient(t, mux)

	courses, err := client.ListCourses(context.Background(), "5")

	require.NoError(t, err)
	assert.Len(t, courses, 2)
	assert.Equal(t, "Go", courses[0].Title)
}

func TestClient_CreateCourse(t *testing.T) {
	tests := []struct {
		name            string
		handler         http.HandlerFunc
		expectedError   bool
		expectedStatus  int
		expectedMessage string
	}{
		{
			name: "created",
			handler: func(w http.ResponseWriter, r *http.Request) {
				var payload models.CoursePayload
				require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
				assert.Equal(t, "Intro to Testing", payload.Title)
				assert.Equal(t, "3", payload.CategoryID)
				writeEnvelope(t, w, http.StatusCreated, true, "Course created", models.Course{ID: "99", Title: payload.Title})
			},
			expectedStatus:  http.StatusCreated,
			expectedMessage: "Course created",
		},
		{
			name: "rejected with message",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeEnvelope(t, w, http.StatusBadRequest, false, "Title already taken", nil)
			},
			expectedError:   true,
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Title already taken",
		},
		{
			name: "status false on 200",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeEnvelope(t, w, http.StatusOK, false, "Quota exceeded", nil)
			},
			expectedError:   true,
			expectedStatus:  http.StatusOK,
			expectedMessage: "Quota exceeded",
		},
		{
			name: "server error without envelope",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte("oops"))
			},
			expectedError:   true,
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: apperr.DefaultMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("POST /courses", tt.handler)
			client := setupTestClient(t, mux)

			res, err := client.CreateCourse(context.Background(), models.CoursePayload{Title: "Intro to Testing", CategoryID: "3"})

			if tt.expectedError {
				var netErr *apperr.NetworkError
				require.True(t, errors.As(err, &netErr))
				assert.Equal(t, tt.expectedStatus, netErr.StatusCode)
				assert.Equal(t, tt.expectedMessage, netErr.UserMessage())
				assert.Nil(t, res)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedStatus, res.StatusCode)
				assert.Equal(t, tt.expectedMessage, res.Message)
				assert.Equal(t, "99", res.Data.ID)
			}
		})
	}
}

func TestClient_Unreachable(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	client := NewClient(Options{BaseURL: "http://127.0.0.1:1"}, logger)

	_, err := client.DeleteCourse(context.Background(), "42")

	var netErr *apperr.NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.Equal(t, 0, netErr.StatusCode)
	assert.Equal(t, apperr.DefaultMessage, netErr.UserMessage())
}

func TestClient_ListSections_Sorted(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /courses/{id}/chapters", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusOK, true, "", []models.Section{
			{ID: "b", CourseID: "1", Order: 2},
			{ID: "a", CourseID: "1", Order: 1},
		})
	})
	client := setupTestClient(t, mux)

	sections, err := client.ListSections(context.Background(), "1")

	require.NoError(t, err)
	require.Len(t, sections, 2)
	assert.Equal(t, "a", sections[0].ID)
	assert.Equal(t, "b", sections[1].ID)
}

func TestClient_ListLessons_Variants(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /chapters/{id}/lessons", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":true,"status_code":200,"message":"","data":[
			{"id":"1","section_id":"s","title":"Intro","type":"video","video":"v.mp4"},
			{"id":"2","section_id":"s","title":"Quiz","type":"exam","questions":[{"text":"q","options":["a","b","c","d"],"correct_option":2}]},
			{"id":"3","section_id":"s","title":"Cards","type":"tool","tool_id":"t1"},
			{"id":"4","section_id":"s","title":"Odd","type":"podcast"}
		]}`))
	})
	client := setupTestClient(t, mux)

	lessons, err := client.ListLessons(context.Background(), "s")

	require.NoError(t, err)
	require.Len(t, lessons, 4)
	assert.Equal(t, models.VideoContent{VideoURL: "v.mp4"}, lessons[0].Content)
	exam, ok := lessons[1].Content.(models.ExamContent)
	require.True(t, ok)
	assert.Equal(t, 2, exam.Questions[0].CorrectOption)
	assert.Equal(t, models.ToolContent{ToolID: "t1"}, lessons[2].Content)
	assert.Equal(t, models.UnknownContent{Type: "podcast"}, lessons[3].Content)
}

func TestClient_GetTool(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /lessons/{id}/tool", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") == "missing" {
			writeEnvelope(t, w, http.StatusNotFound, false, "Tool not found", nil)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":true,"status_code":200,"data":{"id":"t","lesson_id":"l","tool_type":"timeline",
			"entries":[{"date":"1900","title":"b","order":2},{"date":"1800","title":"a","order":1}]}}`))
	})
	client := setupTestClient(t, mux)

	tool, err := client.GetTool(context.Background(), "l")
	require.NoError(t, err)
	require.NotNil(t, tool)
	timeline, ok := tool.Payload.(models.TimelinePayload)
	require.True(t, ok)
	assert.Equal(t, "a", timeline.Entries[0].Title)

	missing, err := client.GetTool(context.Background(), "missing")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestClient_UploadCourseMedia(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /courses/{id}/image", func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		data, _ := io.ReadAll(file)
		assert.Equal(t, "cover.png", header.Filename)
		assert.Equal(t, []byte("png"), data)
		writeEnvelope(t, w, http.StatusOK, true, "Image uploaded", models.Course{ID: r.PathValue("id"), ImageURL: "/media/cover.png"})
	})
	client := setupTestClient(t, mux)

	res, err := client.UploadCourseMedia(context.Background(), "7", MediaImage, &models.MediaFile{Filename: "cover.png", Data: []byte("png")})
	require.NoError(t, err)
	assert.Equal(t, "/media/cover.png", res.Data.ImageURL)

	_, err = client.UploadCourseMedia(context.Background(), "7", MediaVideo, nil)
	assert.Error(t, err)
}

func TestClient_ToolRoundTrip(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /tools", func(w http.ResponseWriter, r *http.Request) {
		var tool models.Tool
		require.NoError(t, json.NewDecoder(r.Body).Decode(&tool))
		tool.ID = "new"
		writeEnvelope(t, w, http.StatusCreated, true, "Tool created", tool)
	})
	client := setupTestClient(t, mux)

	res, err := client.CreateTool(context.Background(), models.ToolRequest{
		LessonID: "l1",
		Payload:  models.ColoredCardPayload{Cards: []models.Card{{Title: "A", Color: "#fff"}}},
	})

	require.NoError(t, err)
	assert.Equal(t, "new", res.Data.ID)
	assert.Equal(t, models.ToolTypeColoredCard, res.Data.Type())
}
