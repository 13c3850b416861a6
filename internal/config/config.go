// Package config handles configuration loading for the Soccer Hub backend.
// It supports YAML config files with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Sources SourcesConfig `mapstructure:"sources" yaml:"sources"`
	LLM     LLMConfig     `mapstructure:"llm"     yaml:"llm"`
	API     APIConfig     `mapstructure:"api"     yaml:"api"`
	Fetch   FetchConfig   `mapstructure:"fetch"   yaml:"fetch"`
}

// SourcesConfig holds the feed endpoint lists. The lists are read once at
// startup and never mutated afterwards.
type SourcesConfig struct {
	News     []string `mapstructure:"news"     yaml:"news"`
	Fixtures string   `mapstructure:"fixtures" yaml:"fixtures"`
}

// LLMConfig holds completion service (OpenRouter) configuration.
type LLMConfig struct {
	APIKey      string  `mapstructure:"api_key"     yaml:"api_key"`
	BaseURL     string  `mapstructure:"base_url"    yaml:"base_url"`
	Model       string  `mapstructure:"model"       yaml:"model"`
	Referer     string  `mapstructure:"referer"     yaml:"referer"`
	Temperature float64 `mapstructure:"temperature" yaml:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"  yaml:"max_tokens"`
}

// APIConfig holds HTTP API server settings.
type APIConfig struct {
	Host        string   `mapstructure:"host"         yaml:"host"`
	Port        int      `mapstructure:"port"         yaml:"port"`
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`
}

// FetchConfig holds feed fetching settings.
type FetchConfig struct {
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"` // per-source fetch timeout
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.soccerhub/config.yaml (home directory)
//  3. /etc/soccerhub/config.yaml (system)
//
// Environment variables override config file values.
// Format: SOCCERHUB_<SECTION>_<KEY>, e.g., SOCCERHUB_LLM_API_KEY
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".soccerhub"))
	v.AddConfigPath("/etc/soccerhub")

	v.SetEnvPrefix("SOCCERHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required to exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found — that's fine, use defaults + env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&cfg)

	return &cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("SOCCERHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&cfg)
	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	// Source defaults: curated football news feeds plus the fixtures feed.
	v.SetDefault("sources.news", DefaultNewsSources)
	v.SetDefault("sources.fixtures", DefaultFixturesSource)

	// LLM defaults (OpenRouter)
	v.SetDefault("llm.base_url", "https://openrouter.ai/api/v1")
	v.SetDefault("llm.model", "deepseek/deepseek-coder")
	v.SetDefault("llm.referer", "http://localhost:3000")
	v.SetDefault("llm.temperature", 0.0)
	v.SetDefault("llm.max_tokens", 1024)

	// API defaults
	v.SetDefault("api.host", "0.0.0.0")
	v.SetDefault("api.port", 8000)
	v.SetDefault("api.cors_origins", []string{"*"})

	// Fetch defaults
	v.SetDefault("fetch.timeout_sec", 10)
}

// overrideFromEnv explicitly reads sensitive keys from environment variables.
func overrideFromEnv(cfg *Config) {
	if key := os.Getenv("SOCCERHUB_LLM_API_KEY"); key != "" {
		cfg.LLM.APIKey = key
	}
	// Accept the plain OpenRouter variable too, for drop-in deployments.
	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv("OPENROUTER_API_KEY")
	}
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
