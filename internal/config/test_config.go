package config

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadTestConfig loads the configuration used by integration tests.
//
// TEST_DB_* are optional. Without TEST_DB_HOST the database settings stay empty and the
// tests depending on them are skipped.
func LoadTestConfig() (*Config, error) {
	_ = godotenv.Load("./../../configs/.env")
	_ = godotenv.Load()

	cfg := &Config{}
	cfg.Gateway.AcademyID = os.Getenv("TEST_ACADEMY_ID")
	if cfg.Gateway.AcademyID == "" {
		cfg.Gateway.AcademyID = "academy-test"
	}

	cfg.Database.Host = os.Getenv("TEST_DB_HOST")
	if cfg.Database.Host == "" {
		return cfg, nil
	}
	port, err := intEnv("TEST_DB_PORT", 3306)
	if err != nil {
		return nil, err
	}
	cfg.Database.Port = port
	cfg.Database.User = os.Getenv("TEST_DB_USER")
	cfg.Database.Password = os.Getenv("TEST_DB_PASSWORD")
	cfg.Database.DBName = os.Getenv("TEST_DB_NAME")

	return cfg, nil
}
