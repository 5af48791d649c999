package integration

import (
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/eduplatform/authoring/internal/config"
	"github.com/eduplatform/authoring/internal/draft"
	"github.com/eduplatform/authoring/internal/models"
	"github.com/eduplatform/authoring/internal/repositories"
	_ "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupDraftDB opens the test database and creates the drafts table
func setupDraftDB(t *testing.T) (*sql.DB, string) {
	t.Helper()

	cfg, err := config.LoadTestConfig()
	require.NoError(t, err, "Failed to load test config")
	if cfg.Database.Host == "" {
		t.Skip("TEST_DB_HOST is not set")
	}

	db, err := sql.Open("mysql", cfg.DSN())
	require.NoError(t, err, "Failed to connect to test database")
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Ping(), "Failed to ping test database")

	schema, err := os.ReadFile("../../migrations/000001_create_drafts_table.up.sql")
	require.NoError(t, err)
	_, err = db.Exec(string(schema))
	require.NoError(t, err, "Failed to create drafts table")

	t.Cleanup(func() {
		_, err := db.Exec("DELETE FROM drafts WHERE academy_id = ?", cfg.Gateway.AcademyID)
		assert.NoError(t, err, "Failed to cleanup test data")
	})
	return db, cfg.Gateway.AcademyID
}

func TestMySQLDraftRoundTrip(t *testing.T) {
	db, academyID := setupDraftDB(t)
	repo := repositories.NewDraftRepository(db, academyID, testLogger)

	manager := draft.NewManager(repo, 10*time.Millisecond, testLogger)
	defer manager.Close()

	form := courseFields("Stored in MySQL")
	form.Image = &models.MediaFile{Filename: "cover.png", Data: []byte("png")}
	manager.Observe(&form, 2)

	require.Eventually(t, func() bool {
		_, ok, err := repo.Get(t.Context(), models.DraftStepKey)
		return err == nil && ok
	}, 2*time.Second, 20*time.Millisecond)

	restored, step, err := manager.Restore(t.Context(), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, step)
	assert.Equal(t, "Stored in MySQL", restored.Title)
	assert.Equal(t, []string{"Pipelines"}, restored.LearningOutcomes)
	assert.Nil(t, restored.Image)

	require.NoError(t, manager.Clear(t.Context()))
	_, ok, err := repo.Get(t.Context(), models.DraftFieldsKey)
	require.NoError(t, err)
	assert.False(t, ok)
}
