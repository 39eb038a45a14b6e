package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type envConfig struct {
	APP_PORT            string
	LOG_FILE_PATH       string
	LOG_LEVEL           string
	MAX_UPLOAD_SIZE     string
	PREVIEW_LAYOUT_PATH string
	GCP_PROJECT_ID      string
	UPLOAD_LOG_LIMIT    int
}

// DefaultEnvConfig is populated by LoadEnvConfig.
var DefaultEnvConfig = defaults()

func defaults() envConfig {
	return envConfig{
		APP_PORT:         "8080",
		LOG_LEVEL:        "info",
		MAX_UPLOAD_SIZE:  "32M",
		UPLOAD_LOG_LIMIT: 100,
	}
}

// LoadEnvConfig loads the given .env files (".env" when none are given) into
// the process environment and fills DefaultEnvConfig. A missing .env file is
// not an error; variables already set in the environment win.
func LoadEnvConfig(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	cfg := defaults()
	cfg.APP_PORT = getEnv("APP_PORT", cfg.APP_PORT)
	cfg.LOG_FILE_PATH = getEnv("LOG_FILE_PATH", cfg.LOG_FILE_PATH)
	cfg.LOG_LEVEL = getEnv("LOG_LEVEL", cfg.LOG_LEVEL)
	cfg.MAX_UPLOAD_SIZE = getEnv("MAX_UPLOAD_SIZE", cfg.MAX_UPLOAD_SIZE)
	cfg.PREVIEW_LAYOUT_PATH = getEnv("PREVIEW_LAYOUT_PATH", cfg.PREVIEW_LAYOUT_PATH)
	cfg.GCP_PROJECT_ID = getEnv("GCP_PROJECT_ID", cfg.GCP_PROJECT_ID)

	if v := os.Getenv("UPLOAD_LOG_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("UPLOAD_LOG_LIMIT must be a positive integer, got %q", v)
		}
		cfg.UPLOAD_LOG_LIMIT = n
	}

	DefaultEnvConfig = cfg
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
