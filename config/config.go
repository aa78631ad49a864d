package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/epeers/indexetfs/internal/models"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const (
	defaultPort        = "8080"
	defaultHTTPTimeout = 60 * time.Second
)

// Config holds application configuration loaded from environment variables
type Config struct {
	OutputDir   string
	Variant     models.Variant
	HTTPTimeout time.Duration
	LogLevel    log.Level
	Port        string
	PGURL       string // optional; snapshots are stored only when set
	Concurrency int
}

// Load reads configuration from environment variables.
// A .env file in the working directory is read first; values already set in
// the shell take precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()

	variant, err := models.ParseVariant(os.Getenv("HOLDINGS_VARIANT"))
	if err != nil {
		return nil, fmt.Errorf("HOLDINGS_VARIANT: %w", err)
	}

	timeout := defaultHTTPTimeout
	if s := os.Getenv("HTTP_TIMEOUT"); s != "" {
		timeout, err = time.ParseDuration(s)
		if err != nil || timeout <= 0 {
			return nil, fmt.Errorf("HTTP_TIMEOUT must be a positive duration, got %q", s)
		}
	}

	level := log.InfoLevel
	if s := os.Getenv("LOG_LEVEL"); s != "" {
		level, err = log.ParseLevel(s)
		if err != nil {
			return nil, fmt.Errorf("LOG_LEVEL: %w", err)
		}
	}

	concurrency := 1
	if s := os.Getenv("FETCH_CONCURRENCY"); s != "" {
		concurrency, err = strconv.Atoi(s)
		if err != nil || concurrency < 1 {
			return nil, fmt.Errorf("FETCH_CONCURRENCY must be a positive integer, got %q", s)
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}

	return &Config{
		OutputDir:   os.Getenv("HOLDINGS_OUTPUT_DIR"),
		Variant:     variant,
		HTTPTimeout: timeout,
		LogLevel:    level,
		Port:        port,
		PGURL:       os.Getenv("PG_URL"),
		Concurrency: concurrency,
	}, nil
}
