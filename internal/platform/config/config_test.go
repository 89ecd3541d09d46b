package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseWeekday(t *testing.T) {
	assert.Equal(t, time.Monday, ParseWeekday("Monday", time.Sunday))
	assert.Equal(t, time.Monday, ParseWeekday(" mon ", time.Sunday))
	assert.Equal(t, time.Sunday, ParseWeekday("", time.Sunday))
	assert.Equal(t, time.Saturday, ParseWeekday("bogus", time.Saturday))
}

func TestLoadLedgerConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg := LoadLedgerConfig()
		assert.Equal(t, 3, cfg.MaxRetries)
		assert.Equal(t, 50*time.Millisecond, cfg.RetryBackoff)
	})

	t.Run("From environment", func(t *testing.T) {
		t.Setenv("LEDGER_MAX_RETRIES", "7")
		t.Setenv("LEDGER_RETRY_BACKOFF", "1s")
		cfg := LoadLedgerConfig()
		assert.Equal(t, 7, cfg.MaxRetries)
		assert.Equal(t, time.Second, cfg.RetryBackoff)
	})

	t.Run("Invalid values fall back", func(t *testing.T) {
		t.Setenv("LEDGER_MAX_RETRIES", "many")
		t.Setenv("LEDGER_RETRY_BACKOFF", "soon")
		cfg := LoadLedgerConfig()
		assert.Equal(t, 3, cfg.MaxRetries)
		assert.Equal(t, 50*time.Millisecond, cfg.RetryBackoff)
	})
}

func TestLoadServerConfig(t *testing.T) {
	t.Setenv("SERVER_PORT", "9999")
	assert.Equal(t, ":9999", LoadServerConfig("8081").Port)
}

func TestLoadReportConfig(t *testing.T) {
	t.Setenv("REPORT_WEEK_START", "monday")
	t.Setenv("REPORT_TIMEZONE", "UTC")
	cfg := LoadReportConfig()
	assert.Equal(t, time.Monday, cfg.WeekStart)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.Equal(t, "KES", cfg.Currency)
}
