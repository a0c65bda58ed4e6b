package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/solacehq/solace/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_DefaultHostIsLocalhost(t *testing.T) {
	_ = os.Unsetenv("SOLACE_HOST")
	cfg, err := config.LoadConfig()
	assert.NoError(t, err)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host,
		"Default host must be 127.0.0.1 for security")
}

func TestLoadConfig_CanOverrideHost(t *testing.T) {
	t.Setenv("SOLACE_HOST", "0.0.0.0")
	cfg, err := config.LoadConfig()
	assert.NoError(t, err)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
}

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{
		"SOLACE_STORAGE_ENGINE", "SOLACE_TICK_INTERVAL", "SOLACE_CHAT_MODEL",
	} {
		_ = os.Unsetenv(key)
	}

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Storage.StorageEngine)
	assert.Equal(t, 100*time.Millisecond, cfg.Sessions.TickInterval)
	assert.Equal(t, "gemini-2.0-flash", cfg.AI.ChatModel)
	assert.True(t, cfg.Features.EnableVoice)
}

func TestLoadConfig_DurationOverride(t *testing.T) {
	t.Setenv("SOLACE_AI_TIMEOUT", "45s")
	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, cfg.AI.Timeout)
}

func TestLoadConfig_BadDurationFallsBack(t *testing.T) {
	t.Setenv("SOLACE_TICK_INTERVAL", "not-a-duration")
	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 100*time.Millisecond, cfg.Sessions.TickInterval)
}

func TestValidate_ProductionRequiresToken(t *testing.T) {
	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	cfg.Security.SecurityMode = "production"
	cfg.Security.APIToken = ""
	assert.Error(t, cfg.Validate())

	cfg.Security.APIToken = "secret"
	assert.NoError(t, cfg.Validate())
}

func TestValidate_EngineRequirements(t *testing.T) {
	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	cfg.Storage.StorageEngine = "postgres"
	cfg.Storage.PostgresDSN = ""
	assert.Error(t, cfg.Validate())

	cfg.Storage.StorageEngine = "supabase"
	cfg.Storage.SupabaseURL = "https://example.supabase.co"
	cfg.Storage.SupabaseKey = ""
	assert.Error(t, cfg.Validate())

	cfg.Storage.StorageEngine = "carrier-pigeon"
	assert.Error(t, cfg.Validate())

	cfg.Storage.StorageEngine = "sqlite"
	assert.NoError(t, cfg.Validate())
}
