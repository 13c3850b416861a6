package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SOCCERHUB_LLM_API_KEY", "")
	t.Setenv("OPENROUTER_API_KEY", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(cfg.Sources.News) == 0 {
		t.Error("default news source list must not be empty")
	}
	if cfg.Sources.Fixtures != DefaultFixturesSource {
		t.Errorf("fixtures source: got %q", cfg.Sources.Fixtures)
	}
	if cfg.LLM.BaseURL != "https://openrouter.ai/api/v1" {
		t.Errorf("LLM base URL: got %q", cfg.LLM.BaseURL)
	}
	if cfg.LLM.Model != "deepseek/deepseek-coder" {
		t.Errorf("LLM model: got %q", cfg.LLM.Model)
	}
	if cfg.API.Port != 8000 {
		t.Errorf("API port: got %d, want 8000", cfg.API.Port)
	}
	if cfg.Fetch.TimeoutSec != 10 {
		t.Errorf("fetch timeout: got %d, want 10", cfg.Fetch.TimeoutSec)
	}
}

func TestLoadFromFile(t *testing.T) {
	t.Setenv("SOCCERHUB_LLM_API_KEY", "")
	t.Setenv("OPENROUTER_API_KEY", "")

	content := `
sources:
  news:
    - https://example.com/feed-a
    - https://example.com/feed-b
  fixtures: https://example.com/fixtures
llm:
  api_key: file-key
  model: test/model
api:
  port: 9000
fetch:
  timeout_sec: 3
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}

	if len(cfg.Sources.News) != 2 {
		t.Errorf("news sources: got %d, want 2", len(cfg.Sources.News))
	}
	if cfg.Sources.Fixtures != "https://example.com/fixtures" {
		t.Errorf("fixtures source: got %q", cfg.Sources.Fixtures)
	}
	if cfg.LLM.APIKey != "file-key" {
		t.Errorf("API key: got %q", cfg.LLM.APIKey)
	}
	if cfg.LLM.Model != "test/model" {
		t.Errorf("model: got %q", cfg.LLM.Model)
	}
	if cfg.API.Port != 9000 {
		t.Errorf("port: got %d, want 9000", cfg.API.Port)
	}
	if cfg.Fetch.TimeoutSec != 3 {
		t.Errorf("timeout: got %d, want 3", cfg.Fetch.TimeoutSec)
	}
	// Values absent from the file keep their defaults.
	if cfg.LLM.BaseURL != "https://openrouter.ai/api/v1" {
		t.Errorf("base URL default lost: got %q", cfg.LLM.BaseURL)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestEnvOverridesAPIKey(t *testing.T) {
	t.Setenv("SOCCERHUB_LLM_API_KEY", "env-key")
	t.Setenv("OPENROUTER_API_KEY", "fallback-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLM.APIKey != "env-key" {
		t.Errorf("API key: got %q, want env-key", cfg.LLM.APIKey)
	}
}

func TestOpenRouterKeyFallback(t *testing.T) {
	t.Setenv("SOCCERHUB_LLM_API_KEY", "")
	t.Setenv("OPENROUTER_API_KEY", "fallback-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLM.APIKey != "fallback-key" {
		t.Errorf("API key: got %q, want fallback-key", cfg.LLM.APIKey)
	}
}
