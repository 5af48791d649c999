package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("GATEWAY_BASE_URL", "https://api.example.com/v1/")
	t.Setenv("ACADEMY_ID", "academy-1")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/v1", cfg.Gateway.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Gateway.Timeout)
	assert.Equal(t, 30*time.Second, cfg.Cache.StaleTime)
	assert.Equal(t, 5*time.Minute, cfg.Cache.GCTime)
	assert.Equal(t, 500*time.Millisecond, cfg.Draft.Debounce)
	assert.Equal(t, DraftStorageFile, cfg.Draft.Storage)
	assert.Equal(t, "data/draft.json", cfg.Draft.FilePath)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 100, cfg.Server.RateLimitPerMinute)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		expectedErr string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name:        "missing gateway url",
			env:         map[string]string{"GATEWAY_BASE_URL": ""},
			expectedErr: "GATEWAY_BASE_URL is required",
		},
		{
			name:        "missing academy",
			env:         map[string]string{"ACADEMY_ID": ""},
			expectedErr: "ACADEMY_ID is required",
		},
		{
			name:        "invalid duration",
			env:         map[string]string{"CACHE_STALE_TIME": "soon"},
			expectedErr: "invalid CACHE_STALE_TIME",
		},
		{
			name:        "negative duration",
			env:         map[string]string{"AUTOSAVE_DEBOUNCE": "-1s"},
			expectedErr: "invalid AUTOSAVE_DEBOUNCE",
		},
		{
			name:        "unknown draft storage",
			env:         map[string]string{"DRAFT_STORAGE": "s3"},
			expectedErr: "invalid DRAFT_STORAGE",
		},
		{
			name:        "mysql storage needs database",
			env:         map[string]string{"DRAFT_STORAGE": "mysql"},
			expectedErr: "DB_HOST is required",
		},
		{
			name: "mysql storage",
			env: map[string]string{
				"DRAFT_STORAGE": "MySQL",
				"DB_HOST":       "localhost",
				"DB_PORT":       "3306",
				"DB_USER":       "root",
				"DB_PASSWORD":   "secret",
				"DB_NAME":       "authoring",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DraftStorageMySQL, cfg.Draft.Storage)
				assert.Equal(t, "root:secret@tcp(localhost:3306)/authoring?parseTime=true&charset=utf8mb4&multiStatements=true", cfg.DSN())
			},
		},
		{
			name:        "redis storage needs host",
			env:         map[string]string{"DRAFT_STORAGE": "redis"},
			expectedErr: "REDIS_HOST is required",
		},
		{
			name: "redis storage",
			env:  map[string]string{"DRAFT_STORAGE": "redis", "REDIS_HOST": "cache", "DRAFT_TTL": "24h"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "cache:6379", cfg.RedisAddr())
				assert.Equal(t, 24*time.Hour, cfg.Draft.TTL)
			},
		},
		{
			name: "cors origins",
			env:  map[string]string{"CORS_ALLOWED_ORIGINS": " https://a.example.com, ,https://b.example.com"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.AllowedOrigins)
			},
		},
		{
			name:        "invalid port",
			env:         map[string]string{"SERVER_PORT": "http"},
			expectedErr: "invalid SERVER_PORT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()

			if tt.expectedErr != "" {
				assert.ErrorContains(t, err, tt.expectedErr)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}
