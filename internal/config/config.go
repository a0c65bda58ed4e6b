// Package config provides configuration management for Solace.
// It loads settings from environment variables with the SOLACE_ prefix
// and provides sensible defaults for all configuration options.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration settings for the Solace service.
type Config struct {
	Server   ServerConfig
	Storage  StorageConfig
	AI       AIConfig
	Security SecurityConfig
	Sessions SessionsConfig
	Features FeaturesConfig
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port int    // Server port (default: 7272)
	Host string // Server host (default: 127.0.0.1)
}

// StorageConfig contains persistence-gateway configuration.
type StorageConfig struct {
	StorageEngine string // Storage engine: sqlite, postgres, supabase (default: sqlite)
	DataPath      string // Path to local data directory for the sqlite engine (default: ./data)
	PostgresDSN   string // Connection string for the postgres engine
	SupabaseURL   string // Project URL for the supabase engine
	SupabaseKey   string // Service-role API key for the supabase engine
}

// AIConfig contains Gemini gateway configuration.
type AIConfig struct {
	APIKey         string        // Gemini API key
	ChatModel      string        // Model for chat turns (default: gemini-2.0-flash)
	ClassifyModel  string        // Model for mood classification (default: gemini-2.0-flash)
	EmbeddingModel string        // Model for journal embeddings (default: gemini-embedding-001)
	Timeout        time.Duration // Per-request timeout (default: 30s)
}

// SecurityConfig contains security and authentication settings.
type SecurityConfig struct {
	SecurityMode string // Security mode: development, production (default: development)
	APIToken     string // API authentication token (required in production)
}

// SessionsConfig contains voice/breathing session tuning.
type SessionsConfig struct {
	TickInterval     time.Duration // Breathing timer tick (default: 100ms)
	MaxVoiceSessions int           // Concurrent live voice sessions per process (default: 64)
	SessionIdleLimit time.Duration // Voice sessions reaped after this much inactivity (default: 30m)
}

// FeaturesConfig contains feature flags.
type FeaturesConfig struct {
	EnableVoice bool // Enable the voice-session WebSocket endpoint (default: true)
	EnablePlans bool // Enable weekly plan generation (default: true)
}

// LoadConfig loads configuration from environment variables with sensible
// defaults. All environment variables use the SOLACE_ prefix.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: getEnvInt("SOLACE_PORT", 7272),
			Host: getEnv("SOLACE_HOST", "127.0.0.1"),
		},
		Storage: StorageConfig{
			StorageEngine: getEnv("SOLACE_STORAGE_ENGINE", "sqlite"),
			DataPath:      getEnv("SOLACE_DATA_PATH", "./data"),
			PostgresDSN:   getEnv("SOLACE_POSTGRES_DSN", ""),
			SupabaseURL:   getEnv("SOLACE_SUPABASE_URL", ""),
			SupabaseKey:   getEnv("SOLACE_SUPABASE_KEY", ""),
		},
		AI: AIConfig{
			APIKey:         getEnv("SOLACE_GEMINI_API_KEY", ""),
			ChatModel:      getEnv("SOLACE_CHAT_MODEL", "gemini-2.0-flash"),
			ClassifyModel:  getEnv("SOLACE_CLASSIFY_MODEL", "gemini-2.0-flash"),
			EmbeddingModel: getEnv("SOLACE_EMBEDDING_MODEL", "gemini-embedding-001"),
			Timeout:        getEnvDuration("SOLACE_AI_TIMEOUT", 30*time.Second),
		},
		Security: SecurityConfig{
			SecurityMode: getEnv("SOLACE_SECURITY_MODE", "development"),
			APIToken:     getEnv("SOLACE_API_TOKEN", ""),
		},
		Sessions: SessionsConfig{
			TickInterval:     getEnvDuration("SOLACE_TICK_INTERVAL", 100*time.Millisecond),
			MaxVoiceSessions: getEnvInt("SOLACE_MAX_VOICE_SESSIONS", 64),
			SessionIdleLimit: getEnvDuration("SOLACE_SESSION_IDLE_LIMIT", 30*time.Minute),
		},
		Features: FeaturesConfig{
			EnableVoice: getEnvBool("SOLACE_ENABLE_VOICE", true),
			EnablePlans: getEnvBool("SOLACE_ENABLE_PLANS", true),
		},
	}

	return cfg, nil
}

// Validate checks cross-field constraints that can't be expressed as
// simple defaults. A missing Gemini key is allowed (the gateway degrades
// to fallbacks) but a production deployment must carry an API token.
func (c *Config) Validate() error {
	switch c.Storage.StorageEngine {
	case "sqlite", "memory":
	case "postgres":
		if c.Storage.PostgresDSN == "" {
			return fmt.Errorf("config: SOLACE_POSTGRES_DSN is required for the postgres engine")
		}
	case "supabase":
		if c.Storage.SupabaseURL == "" || c.Storage.SupabaseKey == "" {
			return fmt.Errorf("config: SOLACE_SUPABASE_URL and SOLACE_SUPABASE_KEY are required for the supabase engine")
		}
	default:
		return fmt.Errorf("config: unknown storage engine %q", c.Storage.StorageEngine)
	}

	if c.Security.SecurityMode == "production" && c.Security.APIToken == "" {
		return fmt.Errorf("config: SOLACE_API_TOKEN is required in production mode")
	}

	if c.Sessions.TickInterval <= 0 {
		return fmt.Errorf("config: tick interval must be positive")
	}

	return nil
}

// getEnv retrieves a string environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default value.
// If the environment variable exists but cannot be parsed as an integer,
// it returns the default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool retrieves a boolean environment variable or returns a default value.
// It recognizes "true", "1", "yes" as true and "false", "0", "no" as false.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		switch value {
		case "true", "1", "yes", "True", "TRUE", "Yes", "YES":
			return true
		case "false", "0", "no", "False", "FALSE", "No", "NO":
			return false
		}
	}
	return defaultValue
}

// getEnvDuration retrieves a duration environment variable (Go duration
// syntax, e.g. "45s") or returns a default value.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
