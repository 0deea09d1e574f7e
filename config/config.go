package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Kiosk specifics
	Kiosk     KioskConfig
	WebSocket WebSocketConfig

	// LLM Provider Abstraction
	LLM LLMConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// KioskConfig controls the ordering conversation.
type KioskConfig struct {
	Mode                string // "production" or "test"; surfaced by GET /config
	MenuPath            string
	BackendTimeout      time.Duration
	CartContextMaxLines int // 0 = send the whole cart
	MaxHistoryTurns     int // 0 = send the whole dialogue
	UtterancesPerMin    int // 0 = unlimited
	ResetOnFinalize     bool
}

type WebSocketConfig struct {
	ReadLimit      int64
	WriteTimeout   time.Duration
	PingInterval   time.Duration
	AllowedOrigins []string
}

// LLMConfig holds configuration for the LLM provider abstraction layer
type LLMConfig struct {
	Providers       []ProviderConfig `yaml:"providers"`
	FallbackEnabled bool             `yaml:"fallback_enabled"`
	RetryAttempts   int              `yaml:"retry_attempts"`
	RetryDelay      string           `yaml:"retry_delay"`
	MaxTotalTimeout string           `yaml:"max_total_timeout"`
}

// ProviderConfig holds configuration for a single LLM provider
type ProviderConfig struct {
	Name     string `yaml:"name"`
	Enabled  bool   `yaml:"enabled"`
	Priority int    `yaml:"priority"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url,omitempty"`
	Model    string `yaml:"model"`
	Timeout  string `yaml:"timeout"`
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, . and /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Kiosk
	cfg.Kiosk.Mode = viper.GetString("kiosk.mode")
	// The display build reads MODE directly, keep honouring it.
	if mode := viper.GetString("mode"); mode != "" {
		cfg.Kiosk.Mode = mode
	}
	cfg.Kiosk.MenuPath = viper.GetString("kiosk.menu_path")
	cfg.Kiosk.BackendTimeout = viper.GetDuration("kiosk.backend_timeout")
	cfg.Kiosk.CartContextMaxLines = viper.GetInt("kiosk.cart_context_max_lines")
	cfg.Kiosk.MaxHistoryTurns = viper.GetInt("kiosk.max_history_turns")
	cfg.Kiosk.UtterancesPerMin = viper.GetInt("kiosk.utterances_per_min")
	cfg.Kiosk.ResetOnFinalize = viper.GetBool("kiosk.reset_on_finalize")

	// WebSocket
	cfg.WebSocket.ReadLimit = viper.GetInt64("websocket.read_limit")
	cfg.WebSocket.WriteTimeout = viper.GetDuration("websocket.write_timeout")
	cfg.WebSocket.PingInterval = viper.GetDuration("websocket.ping_interval")
	cfg.WebSocket.AllowedOrigins = splitList(viper.GetString("websocket.allowed_origins"))

	// LLM Provider Abstraction
	cfg.LLM.FallbackEnabled = viper.GetBool("llm.fallback_enabled")
	cfg.LLM.RetryAttempts = viper.GetInt("llm.retry_attempts")
	cfg.LLM.RetryDelay = viper.GetString("llm.retry_delay")
	cfg.LLM.MaxTotalTimeout = viper.GetString("llm.max_total_timeout")

	// Load provider configurations
	if viper.IsSet("llm.providers") {
		providersRaw := viper.Get("llm.providers")
		if providersList, ok := providersRaw.([]interface{}); ok {
			for _, p := range providersList {
				if providerMap, ok := p.(map[string]interface{}); ok {
					provider := ProviderConfig{
						Name:     getStringFromMap(providerMap, "name"),
						Enabled:  getBoolFromMap(providerMap, "enabled"),
						Priority: getIntFromMap(providerMap, "priority"),
						APIKey:   expandEnvVar(getStringFromMap(providerMap, "api_key")),
						BaseURL:  getStringFromMap(providerMap, "base_url"),
						Model:    getStringFromMap(providerMap, "model"),
						Timeout:  getStringFromMap(providerMap, "timeout"),
					}
					cfg.LLM.Providers = append(cfg.LLM.Providers, provider)
				}
			}
		}
	}

	// No provider list: fall back to plain API key env vars.
	if len(cfg.LLM.Providers) == 0 {
		cfg.LLM.Providers = providersFromEnv()
	}

	if err := validateLLMConfig(&cfg.LLM); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8000)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	// Kiosk defaults
	viper.SetDefault("kiosk.mode", "production")
	viper.SetDefault("kiosk.menu_path", "./config/menu.json")
	viper.SetDefault("kiosk.backend_timeout", "15s")
	viper.SetDefault("kiosk.cart_context_max_lines", 0)
	viper.SetDefault("kiosk.max_history_turns", 0)
	viper.SetDefault("kiosk.utterances_per_min", 0)
	viper.SetDefault("kiosk.reset_on_finalize", false)

	viper.SetDefault("websocket.read_limit", 64*1024)
	viper.SetDefault("websocket.write_timeout", "10s")
	viper.SetDefault("websocket.ping_interval", "30s")

	// LLM defaults
	viper.SetDefault("llm.fallback_enabled", true)
	viper.SetDefault("llm.retry_attempts", 2)
	viper.SetDefault("llm.retry_delay", "500ms")
	viper.SetDefault("llm.max_total_timeout", "15s")
}

// providersFromEnv builds Gemini (primary) with DeepSeek and Qwen fallbacks from
// GEMINI_API_KEY, DEEPSEEK_API_KEY and QWEN_API_KEY.
func providersFromEnv() []ProviderConfig {
	var providers []ProviderConfig
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		providers = append(providers, ProviderConfig{
			Name: "gemini", Enabled: true, Priority: 1, APIKey: key, Model: "gemini-2.5-flash-lite",
		})
	}
	if key := os.Getenv("DEEPSEEK_API_KEY"); key != "" {
		providers = append(providers, ProviderConfig{
			Name: "deepseek", Enabled: true, Priority: 2, APIKey: key, Model: "deepseek-chat",
		})
	}
	if key := os.Getenv("QWEN_API_KEY"); key != "" {
		providers = append(providers, ProviderConfig{
			Name: "qwen", Enabled: true, Priority: 3, APIKey: key, Model: "qwen-plus",
		})
	}
	return providers
}

// expandEnvVar expands environment variables in the format ${VAR_NAME}
func expandEnvVar(value string) string {
	if value == "" {
		return value
	}

	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVar := value[2 : len(value)-1]
		if envValue := viper.GetString(envVar); envValue != "" {
			return envValue
		}
		if envValue := viper.GetString(strings.ToLower(envVar)); envValue != "" {
			return envValue
		}
		if envValue := os.Getenv(envVar); envValue != "" {
			return envValue
		}
		return ""
	}

	return value
}

// validateLLMConfig validates the LLM configuration
func validateLLMConfig(cfg *LLMConfig) error {
	if len(cfg.Providers) == 0 {
		return fmt.Errorf("no LLM providers configured - add llm.providers to config.yaml or set GEMINI_API_KEY")
	}

	enabledCount := 0
	priorityMap := make(map[int]bool)

	for i, provider := range cfg.Providers {
		if provider.Name == "" {
			return fmt.Errorf("provider %d: name is required", i)
		}
		if provider.Model == "" {
			return fmt.Errorf("provider %s: model is required", provider.Name)
		}

		if provider.Enabled {
			enabledCount++

			if provider.Priority <= 0 {
				return fmt.Errorf("provider %s: priority must be positive", provider.Name)
			}
			if priorityMap[provider.Priority] {
				return fmt.Errorf("provider %s: duplicate priority %d", provider.Name, provider.Priority)
			}
			priorityMap[provider.Priority] = true
		}
	}

	if enabledCount == 0 {
		return fmt.Errorf("no enabled LLM providers")
	}

	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Helper functions to safely extract values from map[string]interface{}
func getStringFromMap(m map[string]interface{}, key string) string {
	if val, ok := m[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

func getBoolFromMap(m map[string]interface{}, key string) bool {
	if val, ok := m[key]; ok {
		if b, ok := val.(bool); ok {
			return b
		}
	}
	return false
}

func getIntFromMap(m map[string]interface{}, key string) int {
	if val, ok := m[key]; ok {
		if i, ok := val.(int); ok {
			return i
		}
		// Handle float64 from JSON unmarshaling
		if f, ok := val.(float64); ok {
			return int(f)
		}
	}
	return 0
}
