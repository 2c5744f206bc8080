package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("WOO_BASE_URL", "https://shop.example.com/")
	t.Setenv("WOO_CONSUMER_KEY", "ck")
	t.Setenv("WOO_CONSUMER_SECRET", "cs")
	t.Setenv("GEMINI_API_KEY", "gk")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	assert.Nil(t, err)
	// Trailing slash stripped so URL composition stays predictable
	assert.Equal(t, "https://shop.example.com", cfg.BaseURL)
	assert.Equal(t, "ALL", cfg.TargetRegion)
	assert.True(t, cfg.UseTrends)
	assert.Equal(t, "optimization_history.json", cfg.LedgerPath)
}

func TestLoadMissingCredentials(t *testing.T) {
	setRequired(t)
	t.Setenv("GEMINI_API_KEY", "")

	_, err := Load()
	assert.ErrorContains(t, err, "GEMINI_API_KEY")
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("TARGET_REGION", "GB")
	t.Setenv("USE_GOOGLE_TRENDS", "False")
	t.Setenv("REQUEST_TIMEOUT", "15s")

	cfg, err := Load()
	assert.Nil(t, err)
	assert.Equal(t, "GB", cfg.TargetRegion)
	assert.False(t, cfg.UseTrends)
	assert.Equal(t, "15s", cfg.RequestTimeout.String())
}
