package config

import (
	"os"
	"testing"
)

func TestLoad(t *testing.T) {
	configContent := `
server:
  port: 9090
log:
  level: "debug"
  format: "json"
openai:
  api_key: "sk-test"
  model: "gpt-4o-mini"
claims_api:
  base_url: "https://claims.example.test"
  api_key: "claims-token"
  timeout_seconds: 5
conversation:
  max_sessions: 50
`
	tmpFile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.WriteString(configContent); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	tmpFile.Close()

	cfg, err := Load(tmpFile.Name())
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Expected log level debug, got %s", cfg.Log.Level)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Expected log format json, got %s", cfg.Log.Format)
	}
	if cfg.OpenAI.APIKey != "sk-test" {
		t.Errorf("Expected openai api_key sk-test, got %s", cfg.OpenAI.APIKey)
	}
	if cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Errorf("Expected model gpt-4o-mini, got %s", cfg.OpenAI.Model)
	}
	if cfg.ClaimsAPI.BaseURL != "https://claims.example.test" {
		t.Errorf("Expected claims base_url, got %s", cfg.ClaimsAPI.BaseURL)
	}
	if cfg.ClaimsAPI.TimeoutSeconds != 5 {
		t.Errorf("Expected timeout_seconds 5, got %d", cfg.ClaimsAPI.TimeoutSeconds)
	}
	if cfg.Conversation.MaxSessions != 50 {
		t.Errorf("Expected max_sessions 50, got %d", cfg.Conversation.MaxSessions)
	}
}

func TestLoadDefaults(t *testing.T) {
	configContent := `
log:
  level: "info"
`
	tmpFile, err := os.CreateTemp("", "config-defaults-*.yaml")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.WriteString(configContent); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	tmpFile.Close()

	cfg, err := Load(tmpFile.Name())
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Server.Port != 3001 {
		t.Errorf("Expected default port 3001, got %d", cfg.Server.Port)
	}
	if cfg.Log.Format != "text" {
		t.Errorf("Expected default log format text, got %s", cfg.Log.Format)
	}
	if cfg.OpenAI.Model != "gpt-4o" {
		t.Errorf("Expected default model gpt-4o, got %s", cfg.OpenAI.Model)
	}
	if cfg.ClaimsAPI.TimeoutSeconds != 10 {
		t.Errorf("Expected default timeout_seconds 10, got %d", cfg.ClaimsAPI.TimeoutSeconds)
	}
	if cfg.Conversation.MaxSessions != 1000 {
		t.Errorf("Expected default max_sessions 1000, got %d", cfg.Conversation.MaxSessions)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load("does-not-exist.yaml")
	if err != nil {
		t.Fatalf("Expected missing config file to be tolerated, got %v", err)
	}
	if cfg.Server.Port != 3001 {
		t.Errorf("Expected default port 3001, got %d", cfg.Server.Port)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	configContent := `
server:
  port: 9090
openai:
  api_key: "from-file"
`
	tmpFile, err := os.CreateTemp("", "config-env-*.yaml")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.WriteString(configContent); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	tmpFile.Close()

	t.Setenv("PORT", "4000")
	t.Setenv("OPENAI_API_KEY", "from-env")
	t.Setenv("CLAIMS_API_URL", "https://claims.env.test")
	t.Setenv("CLAIMS_API_KEY", "env-token")

	cfg, err := Load(tmpFile.Name())
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Server.Port != 4000 {
		t.Errorf("Expected env port 4000, got %d", cfg.Server.Port)
	}
	if cfg.OpenAI.APIKey != "from-env" {
		t.Errorf("Expected api key from env, got %s", cfg.OpenAI.APIKey)
	}
	if cfg.ClaimsAPI.BaseURL != "https://claims.env.test" {
		t.Errorf("Expected claims url from env, got %s", cfg.ClaimsAPI.BaseURL)
	}
	if cfg.ClaimsAPI.APIKey != "env-token" {
		t.Errorf("Expected claims key from env, got %s", cfg.ClaimsAPI.APIKey)
	}
}
