package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	platformstrings "github.com/HasbiyallahuJafaru/E-KYC/pkg/platform/strings"
)

// Config captures process-level configuration. Values come from environment
// variables so main stays lean; the risk scoring policy has its own versioned
// file loaded separately (see internal/risk).
type Config struct {
	Addr string

	LogLevel  string
	LogFormat string

	// Provider selection and credentials.
	ProviderName    string
	ProviderBaseURL string
	ProviderAPIKey  string
	ProviderTimeout time.Duration

	// Optional Redis lookup cache; empty URL disables caching.
	RedisURL       string
	LookupCacheTTL time.Duration

	// Optional PostgreSQL store; empty URL selects the in-memory store.
	PostgresURL string

	// Bcrypt hashes of accepted client API keys. Empty disables API
	// authentication (development only).
	APIKeyHashes []string

	// Risk policy file path; empty uses compiled-in defaults.
	RiskPolicyPath string
}

// FromEnv builds the configuration from environment variables.
func FromEnv() Config {
	return Config{
		Addr:            getenv("EKYC_ADDR", ":8080"),
		LogLevel:        getenv("EKYC_LOG_LEVEL", "info"),
		LogFormat:       getenv("EKYC_LOG_FORMAT", "json"),
		ProviderName:    getenv("EKYC_PROVIDER", "mock"),
		ProviderBaseURL: getenv("EKYC_PROVIDER_BASE_URL", "https://vapi.verifyme.ng"),
		ProviderAPIKey:  os.Getenv("EKYC_PROVIDER_API_KEY"),
		ProviderTimeout: getduration("EKYC_PROVIDER_TIMEOUT", 10*time.Second),
		RedisURL:        os.Getenv("EKYC_REDIS_URL"),
		LookupCacheTTL:  getduration("EKYC_LOOKUP_CACHE_TTL", 24*time.Hour),
		PostgresURL:     os.Getenv("EKYC_POSTGRES_URL"),
		APIKeyHashes:    platformstrings.DedupeAndTrim(strings.Split(os.Getenv("EKYC_API_KEY_HASHES"), ",")),
		RiskPolicyPath:  os.Getenv("EKYC_RISK_POLICY_FILE"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getduration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

