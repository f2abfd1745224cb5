package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr                 string
	DBPath               string
	LogLevel             string
	MaxUploadBytes       int64
	MatchPairs           int
	RoundLength          int
	ChoiceAdvanceDelay   time.Duration
	WritingAdvanceDelay  time.Duration
	GenderAdvanceDelay   time.Duration
	MismatchDelay        time.Duration
	SessionTTL           time.Duration
	SessionSweepInterval time.Duration
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:                 envOr("ADDR", ":8080"),
		DBPath:               envOr("DB_PATH", "file:deutschhub.db"),
		LogLevel:             envOr("LOG_LEVEL", "INFO"),
		MaxUploadBytes:       int64(envIntOr("MAX_UPLOAD_BYTES", 10<<20)),
		MatchPairs:           envIntOr("MATCH_PAIRS", 6),
		RoundLength:          envIntOr("ROUND_LENGTH", 20),
		ChoiceAdvanceDelay:   envDurationOr("CHOICE_ADVANCE_DELAY", 1200*time.Millisecond),
		WritingAdvanceDelay:  envDurationOr("WRITING_ADVANCE_DELAY", 1500*time.Millisecond),
		GenderAdvanceDelay:   envDurationOr("GENDER_ADVANCE_DELAY", 1500*time.Millisecond),
		MismatchDelay:        envDurationOr("MISMATCH_DELAY", time.Second),
		SessionTTL:           envDurationOr("SESSION_TTL", 2*time.Hour),
		SessionSweepInterval: envDurationOr("SESSION_SWEEP_INTERVAL", 5*time.Minute),
	}
}

// Validate returns the first configuration problem found, if any.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("ADDR cannot be empty")
	}
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR (got %q)", c.LogLevel)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}
	if c.MatchPairs < 2 {
		return fmt.Errorf("MATCH_PAIRS must be at least 2")
	}
	if c.RoundLength < 1 {
		return fmt.Errorf("ROUND_LENGTH must be at least 1")
	}
	for name, d := range map[string]time.Duration{
		"CHOICE_ADVANCE_DELAY":  c.ChoiceAdvanceDelay,
		"WRITING_ADVANCE_DELAY": c.WritingAdvanceDelay,
		"GENDER_ADVANCE_DELAY":  c.GenderAdvanceDelay,
		"MISMATCH_DELAY":        c.MismatchDelay,
	} {
		if d < 0 {
			return fmt.Errorf("%s cannot be negative", name)
		}
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.SessionSweepInterval <= 0 {
		return fmt.Errorf("SESSION_SWEEP_INTERVAL must be positive")
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

// envDurationOr accepts Go duration strings ("1.5s") or bare milliseconds.
func envDurationOr(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if ms, err := strconv.Atoi(v); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	log.Printf("invalid value for %s=%q, using default %s", key, v, def)
	return def
}
