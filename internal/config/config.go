// Package config loads the worker configuration from the environment.
// The core engine packages take no dependency on it; the orchestration
// layer receives the struct once at startup.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration.
type Config struct {
	// Folders. Statements and capital-gains reports arrive in separate
	// input folders; the folder decides how a document is processed.
	StatementInputDir    string `env:"STATEMENT_INPUT_DIR"     envDefault:"data/input/statements"`
	CapitalGainsInputDir string `env:"CAPITAL_GAINS_INPUT_DIR" envDefault:"data/input/capital-gains"`
	InProcessDir         string `env:"IN_PROCESS_DIR"          envDefault:"data/in-process"`
	ProcessedDir         string `env:"PROCESSED_DIR"           envDefault:"data/processed"`
	RejectedDir          string `env:"REJECTED_DIR"            envDefault:"data/rejected"`
	OutputDir            string `env:"OUTPUT_DIR"              envDefault:"data/output"`

	// Worker loop
	PollInterval  time.Duration `env:"POLL_INTERVAL"   envDefault:"15s"`
	FileSizeLimit int64         `env:"FILE_SIZE_LIMIT" envDefault:"7340032"` // 7 MB
	StatusFile    string        `env:"STATUS_FILE"     envDefault:"data/processing_status.json"`

	// Transcription models
	GeminiModel         string `env:"GEMINI_MODEL"          envDefault:"gemini-2.5-flash"`
	GeminiFallbackModel string `env:"GEMINI_FALLBACK_MODEL" envDefault:"gemini-2.5-flash-lite"`

	// Optional archive of processed files to GCS; empty bucket disables.
	GCSBucket string `env:"GCS_BUCKET" envDefault:""`
	GCSPrefix string `env:"GCS_PREFIX" envDefault:"processed"`

	// Optional BigQuery export of annotated rows; empty project disables.
	BigQueryProject string `env:"BIGQUERY_PROJECT" envDefault:""`
	BigQueryDataset string `env:"BIGQUERY_DATASET" envDefault:"finance"`

	// Dashboard
	DashboardAddr string `env:"DASHBOARD_ADDR" envDefault:":8090"`

	// Logging
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	return cfg, nil
}
