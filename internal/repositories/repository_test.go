package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/eduplatform/authoring/internal/draft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var _ draft.Storage = (*draftRepository)(nil)

// setupTestRepository creates a repository with a mock database
func setupTestRepository(t *testing.T) (*draftRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	logger, err := zap.NewDevelopment()
	require.NoError(t, err)

	repo := NewDraftRepository(db, "academy-1", logger)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestNewDraftRepository(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	db := &sql.DB{}

	repo := NewDraftRepository(db, "academy-1", logger)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
	assert.Equal(t, "academy-1", repo.academyID)
	assert.Equal(t, logger, repo.logger)
}

func TestDraftRepository_Get(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedValue []byte
		expectedFound bool
		expectedError bool
	}{
		{
			name: "found",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"value"}).AddRow([]byte(`{"title":"Go"}`))
				mock.ExpectQuery(`SELECT value FROM drafts WHERE academy_id = \? AND draft_key = \?`).
					WithArgs("academy-1", "course_draft_fields").
					WillReturnRows(rows)
			},
			expectedValue: []byte(`{"title":"Go"}`),
			expectedFound: true,
		},
		{
			name: "not found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT value FROM drafts`).
					WithArgs("academy-1", "course_draft_fields").
					WillReturnError(sql.ErrNoRows)
			},
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT value FROM drafts`).
					WithArgs("academy-1", "course_draft_fields").
					WillReturnError(errors.New("connection refused"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupTestRepository(t)
			defer cleanup()
			tt.setupMock(mock)

			value, found, err := repo.Get(context.Background(), "course_draft_fields")

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expectedFound, found)
			assert.Equal(t, tt.expectedValue, value)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDraftRepository_Set(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO drafts \(academy_id, draft_key, value\) VALUES \(\?, \?, \?\) ON DUPLICATE KEY UPDATE value = VALUES\(value\)`).
					WithArgs("academy-1", "course_draft_step", []byte("2")).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO drafts`).
					WithArgs("academy-1", "course_draft_step", []byte("2")).
					WillReturnError(errors.New("deadlock"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupTestRepository(t)
			defer cleanup()
			tt.setupMock(mock)

			err := repo.Set(context.Background(), "course_draft_step", []byte("2"))

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDraftRepository_Remove(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM drafts WHERE academy_id = \? AND draft_key = \?`).
					WithArgs("academy-1", "course_draft_fields").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "missing key is not an error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM drafts`).
					WithArgs("academy-1", "course_draft_fields").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM drafts`).
					WithArgs("academy-1", "course_draft_fields").
					WillReturnError(errors.New("connection lost"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupTestRepository(t)
			defer cleanup()
			tt.setupMock(mock)

			err := repo.Remove(context.Background(), "course_draft_fields")

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
