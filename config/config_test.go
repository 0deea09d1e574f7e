package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithEnvProviders(t *testing.T) {
	viper.Reset()
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("DEEPSEEK_API_KEY", "d-key")
	t.Setenv("QWEN_API_KEY", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.HTTPServer.Port)
	assert.Equal(t, "production", cfg.Kiosk.Mode)
	assert.Equal(t, 15*time.Second, cfg.Kiosk.BackendTimeout)
	assert.Equal(t, int64(64*1024), cfg.WebSocket.ReadLimit)
	assert.Empty(t, cfg.WebSocket.AllowedOrigins)

	require.Len(t, cfg.LLM.Providers, 2)
	assert.Equal(t, "gemini", cfg.LLM.Providers[0].Name)
	assert.Equal(t, "g-key", cfg.LLM.Providers[0].APIKey)
	assert.Equal(t, 2, cfg.LLM.Providers[1].Priority)
}

func TestLoad_RateLimitOffByDefault(t *testing.T) {
	viper.Reset()
	t.Setenv("GEMINI_API_KEY", "g-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.Kiosk.UtterancesPerMin)
}

func TestLoad_EnvOverrides(t *testing.T) {
	viper.Reset()
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("MODE", "test")
	t.Setenv("KIOSK_MAX_HISTORY_TURNS", "6")
	t.Setenv("WEBSOCKET_ALLOWED_ORIGINS", "http://a.local, http://b.local")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Kiosk.Mode)
	assert.Equal(t, 6, cfg.Kiosk.MaxHistoryTurns)
	assert.Equal(t, []string{"http://a.local", "http://b.local"}, cfg.WebSocket.AllowedOrigins)
}

func TestLoad_NoProviders(t *testing.T) {
	viper.Reset()
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("DEEPSEEK_API_KEY", "")
	t.Setenv("QWEN_API_KEY", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidateLLMConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     LLMConfig
		wantErr bool
	}{
		{
			name: "valid",
			cfg:  LLMConfig{Providers: []ProviderConfig{{Name: "gemini", Model: "m", Enabled: true, Priority: 1}}},
		},
		{
			name:    "missing model",
			cfg:     LLMConfig{Providers: []ProviderConfig{{Name: "gemini", Enabled: true, Priority: 1}}},
			wantErr: true,
		},
		{
			name: "duplicate priority",
			cfg: LLMConfig{Providers: []ProviderConfig{
				{Name: "a", Model: "m", Enabled: true, Priority: 1},
				{Name: "b", Model: "m", Enabled: true, Priority: 1},
			}},
			wantErr: true,
		},
		{
			name:    "none enabled",
			cfg:     LLMConfig{Providers: []ProviderConfig{{Name: "a", Model: "m"}}},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateLLMConfig(&tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestExpandEnvVar(t *testing.T) {
	viper.Reset()
	t.Setenv("KIOSK_TEST_SECRET", "s3cret")

	assert.Equal(t, "s3cret", expandEnvVar("${KIOSK_TEST_SECRET}"))
	assert.Equal(t, "", expandEnvVar("${KIOSK_TEST_UNSET}"))
	assert.Equal(t, "literal", expandEnvVar("literal"))
}
