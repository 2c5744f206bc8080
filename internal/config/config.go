package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	AppName     = "woo-content-optimizer"
	EnvFileName = "config.env"
)

// Config holds all settings read from the environment. Credentials are
// required; everything else has a default.
type Config struct {
	// WooCommerce REST API
	BaseURL        string
	ConsumerKey    string
	ConsumerSecret string

	// Gemini
	GeminiAPIKey string

	// Keyword research
	TargetRegion string
	UseTrends    bool

	// Persisted state
	LedgerPath     string
	TrendCachePath string
	CacheDBPath    string

	// Timeout applied to all outbound HTTP requests.
	RequestTimeout time.Duration
}

// requiredEnvVars lists the environment variables without which a run must
// not start.
var requiredEnvVars = []string{"WOO_BASE_URL", "WOO_CONSUMER_KEY", "WOO_CONSUMER_SECRET", "GEMINI_API_KEY"}

// LoadEnvFile loads environment variables from a config.env in the current
// directory. Errors are ignored since the file may not exist.
func LoadEnvFile() {
	_ = godotenv.Load(EnvFileName)
}

// Load reads configuration from the environment. It returns an error listing
// any missing required variables so startup can fail before any item is
// processed.
func Load() (*Config, error) {
	var missing []string
	for _, v := range requiredEnvVars {
		if os.Getenv(v) == "" {
			missing = append(missing, v)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required config: %s", strings.Join(missing, ", "))
	}

	cfg := &Config{
		BaseURL:        strings.TrimRight(os.Getenv("WOO_BASE_URL"), "/"),
		ConsumerKey:    os.Getenv("WOO_CONSUMER_KEY"),
		ConsumerSecret: os.Getenv("WOO_CONSUMER_SECRET"),
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		TargetRegion:   envOr("TARGET_REGION", "ALL"),
		UseTrends:      strings.ToLower(envOr("USE_GOOGLE_TRENDS", "true")) == "true",
		LedgerPath:     envOr("LEDGER_PATH", "optimization_history.json"),
		TrendCachePath: envOr("TREND_CACHE_PATH", "keyword_trends_cache.json"),
		CacheDBPath:    envOr("CACHE_DB_PATH", "completion_cache.db"),
		RequestTimeout: 60 * time.Second,
	}

	if v := os.Getenv("REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid REQUEST_TIMEOUT: %w", err)
		}
		cfg.RequestTimeout = d
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
