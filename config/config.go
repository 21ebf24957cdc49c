package config

import (
	"os"
	"strconv"
	"time"

	apperrors "liontalk/seminarworker/pkg/errors"
)

// Config represents the application configuration
type Config struct {
	// Extraction service configuration
	GeminiAPIKey       string
	GeminiModel        string
	ExtractMaxAttempts int

	// Source configuration input and output sink
	SourcesPath string
	OutputPath  string

	// Redis configuration (optional sink)
	RedisAddr            string
	RedisDB              int
	RedisStream          string
	RedisStreamMaxLength int

	// Memcache configuration (optional request guard)
	MemcacheAddr string

	// Browser configuration
	Headless            bool
	NavTimeout          time.Duration
	WaitTimeout         time.Duration
	DebugScreenshotPath string

	// Acquisition configuration
	EventWindow   time.Duration
	EventTimezone string
	ItemCap       int

	// Environment
	Environment string
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() Config {
	windowDays, _ := strconv.Atoi(getEnv("EVENT_WINDOW_DAYS", "30"))
	navTimeout, _ := strconv.Atoi(getEnv("NAV_TIMEOUT_SECONDS", "60"))
	waitTimeout, _ := strconv.Atoi(getEnv("WAIT_TIMEOUT_SECONDS", "15"))
	maxAttempts, _ := strconv.Atoi(getEnv("EXTRACT_MAX_ATTEMPTS", "5"))
	itemCap, _ := strconv.Atoi(getEnv("ITEM_CAP", "10"))
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	streamMaxLen, _ := strconv.Atoi(getEnv("REDIS_STREAM_MAX_LENGTH", "100"))

	return Config{
		GeminiAPIKey:         os.Getenv("GEMINI_API_KEY"),
		GeminiModel:          getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		ExtractMaxAttempts:   maxAttempts,
		SourcesPath:          getEnv("SOURCES_CSV", "sources.csv"),
		OutputPath:           getEnv("OUTPUT_PATH", "seminars.json"),
		RedisAddr:            os.Getenv("REDIS_ADDR"),
		RedisDB:              redisDB,
		RedisStream:          getEnv("REDIS_STREAM", "seminars"),
		RedisStreamMaxLength: streamMaxLen,
		MemcacheAddr:         os.Getenv("MEMCACHE_ADDR"),
		Headless:             getEnv("HEADLESS", "true") == "true",
		NavTimeout:           time.Duration(navTimeout) * time.Second,
		WaitTimeout:          time.Duration(waitTimeout) * time.Second,
		DebugScreenshotPath:  getEnv("DEBUG_SCREENSHOT_PATH", "debug_error.png"),
		EventWindow:          time.Duration(windowDays) * 24 * time.Hour,
		EventTimezone:        getEnv("EVENT_TIMEZONE", "America/New_York"),
		ItemCap:              itemCap,
		Environment:          getEnv("HARVEST_ENVIRONMENT", "development"),
	}
}

// Validate checks the batch preconditions. A missing extraction credential is
// fatal before any source row is processed.
func (c *Config) Validate() error {
	if c.GeminiAPIKey == "" {
		return apperrors.NewConfiguration("GEMINI_API_KEY is not set", nil)
	}
	if c.ExtractMaxAttempts < 1 {
		return apperrors.NewConfiguration("EXTRACT_MAX_ATTEMPTS must be at least 1", nil)
	}
	if _, err := time.LoadLocation(c.EventTimezone); err != nil {
		return apperrors.NewConfiguration("EVENT_TIMEZONE is not a valid IANA zone", err)
	}
	return nil
}

// EventLocation returns the configured timezone for event time-of-day
// formatting. Validate has already rejected unknown zones.
func (c *Config) EventLocation() *time.Location {
	loc, err := time.LoadLocation(c.EventTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
