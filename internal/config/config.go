package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Engine backends.
const (
	EngineClaude = "claude"
	EngineGemini = "gemini"
)

// Config holds all configuration for emslog.
type Config struct {
	Engine   string         `mapstructure:"engine"`
	Claude   ClaudeConfig   `mapstructure:"claude"`
	Gemini   GeminiConfig   `mapstructure:"gemini"`
	Registry RegistryConfig `mapstructure:"registry"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	API      APIConfig      `mapstructure:"api"`
}

// APIConfig holds HTTP API server settings.
type APIConfig struct {
	ListenAddr string `mapstructure:"listen_addr"`
	AuthToken  string `mapstructure:"auth_token"`
}

// ClaudeConfig holds Anthropic Claude API settings.
type ClaudeConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// String returns a safe representation of ClaudeConfig with the API key masked.
func (c ClaudeConfig) String() string {
	return fmt.Sprintf("ClaudeConfig{APIKey:%s, Model:%s}", maskAPIKey(c.APIKey), c.Model)
}

// GeminiConfig holds Google Gemini API settings.
type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// String returns a safe representation of GeminiConfig with the API key masked.
func (c GeminiConfig) String() string {
	return fmt.Sprintf("GeminiConfig{APIKey:%s, Model:%s}", maskAPIKey(c.APIKey), c.Model)
}

// maskAPIKey shows first 4 + last 4 chars, replacing the middle with asterisks.
func maskAPIKey(key string) string {
	const visible = 4
	if len(key) <= visible*2 {
		return "***"
	}
	return key[:visible] + "****" + key[len(key)-visible:]
}

// RegistryConfig holds project-registry dataset settings. An empty
// ProjectsFile means the embedded dataset is used.
type RegistryConfig struct {
	ProjectsFile string `mapstructure:"projects_file"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("engine", EngineClaude)
	v.SetDefault("claude.model", "claude-haiku-4-5-20251001")
	v.SetDefault("gemini.model", "gemini-2.5-flash")
	v.SetDefault("registry.projects_file", "")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("api.listen_addr", ":8080")
	v.SetDefault("api.auth_token", "")

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Join(homeDir(), ".emslog"))
	v.AddConfigPath(".")

	// Environment variables
	v.SetEnvPrefix("EMSLOG")
	v.AutomaticEnv()

	// Map specific env vars
	_ = v.BindEnv("claude.api_key", "ANTHROPIC_API_KEY")
	_ = v.BindEnv("gemini.api_key", "GEMINI_API_KEY")
	_ = v.BindEnv("engine", "EMSLOG_ENGINE")
	_ = v.BindEnv("registry.projects_file", "EMSLOG_PROJECTS_FILE")
	_ = v.BindEnv("api.listen_addr", "EMSLOG_API_LISTEN_ADDR")
	_ = v.BindEnv("api.auth_token", "EMSLOG_API_AUTH_TOKEN")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// Config file not found is OK — use defaults + env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are set and consistent.
func (c *Config) Validate() error {
	if c.Engine != EngineClaude && c.Engine != EngineGemini {
		return fmt.Errorf("engine must be %q or %q, got %q", EngineClaude, EngineGemini, c.Engine)
	}
	if c.Claude.Model == "" {
		return fmt.Errorf("claude.model must not be empty")
	}
	if c.Gemini.Model == "" {
		return fmt.Errorf("gemini.model must not be empty")
	}
	if c.API.ListenAddr == "" {
		return fmt.Errorf("api.listen_addr must not be empty")
	}
	return nil
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
