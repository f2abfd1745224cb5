package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/deutschhub/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Addr:                 ":8080",
		DBPath:               "test.db",
		LogLevel:             "INFO",
		MaxUploadBytes:       1 << 20,
		MatchPairs:           6,
		RoundLength:          20,
		ChoiceAdvanceDelay:   1200 * time.Millisecond,
		WritingAdvanceDelay:  1500 * time.Millisecond,
		GenderAdvanceDelay:   1500 * time.Millisecond,
		MismatchDelay:        time.Second,
		SessionTTL:           time.Hour,
		SessionSweepInterval: time.Minute,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_EmptyAddr(t *testing.T) {
	cfg := validConfig()
	cfg.Addr = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
}

func TestValidate_EmptyDBPath(t *testing.T) {
	cfg := validConfig()
	cfg.DBPath = "  "

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PATH cannot be empty")
}

func TestValidate_InvalidFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{
			name:   "unknown log level",
			mutate: func(c *config.Config) { c.LogLevel = "TRACE" },
			want:   "LOG_LEVEL",
		},
		{
			name:   "zero upload limit",
			mutate: func(c *config.Config) { c.MaxUploadBytes = 0 },
			want:   "MAX_UPLOAD_BYTES",
		},
		{
			name:   "single match pair",
			mutate: func(c *config.Config) { c.MatchPairs = 1 },
			want:   "MATCH_PAIRS",
		},
		{
			name:   "zero round length",
			mutate: func(c *config.Config) { c.RoundLength = 0 },
			want:   "ROUND_LENGTH",
		},
		{
			name:   "negative mismatch delay",
			mutate: func(c *config.Config) { c.MismatchDelay = -time.Second },
			want:   "MISMATCH_DELAY",
		},
		{
			name:   "zero session ttl",
			mutate: func(c *config.Config) { c.SessionTTL = 0 },
			want:   "SESSION_TTL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"ADDR", "DB_PATH", "LOG_LEVEL", "MATCH_PAIRS", "MISMATCH_DELAY", "ROUND_LENGTH"} {
		t.Setenv(key, "")
	}

	cfg := config.Load()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "file:deutschhub.db", cfg.DBPath)
	assert.Equal(t, 6, cfg.MatchPairs)
	assert.Equal(t, 20, cfg.RoundLength)
	assert.Equal(t, time.Second, cfg.MismatchDelay)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("MATCH_PAIRS", "4")
	t.Setenv("MISMATCH_DELAY", "750")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("ROUND_LENGTH", "not-a-number")

	cfg := config.Load()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 4, cfg.MatchPairs)
	assert.Equal(t, 750*time.Millisecond, cfg.MismatchDelay)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 20, cfg.RoundLength, "invalid values fall back to the default")
}
