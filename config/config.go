package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Log          LogConfig          `yaml:"log"`
	OpenAI       OpenAIConfig       `yaml:"openai"`
	ClaimsAPI    ClaimsAPIConfig    `yaml:"claims_api"`
	Conversation ConversationConfig `yaml:"conversation"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type OpenAIConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

type ClaimsAPIConfig struct {
	BaseURL        string `yaml:"base_url"`
	APIKey         string `yaml:"api_key"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type ConversationConfig struct {
	MaxSessions int `yaml:"max_sessions"`
}

// Load reads the YAML config file, then applies environment overrides.
// A missing config file is not an error; deployments may configure the
// service entirely through the environment.
func Load(path string) (*Config, error) {
	// Load .env if present so local runs keep secrets out of config.yaml
	_ = godotenv.Load()

	var cfg Config

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	applyEnvOverrides(&cfg)

	// Set defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 3001
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
	if cfg.OpenAI.Model == "" {
		cfg.OpenAI.Model = "gpt-4o"
	}
	if cfg.ClaimsAPI.TimeoutSeconds == 0 {
		cfg.ClaimsAPI.TimeoutSeconds = 10
	}
	if cfg.Conversation.MaxSessions == 0 {
		cfg.Conversation.MaxSessions = 1000
	}

	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		cfg.OpenAI.APIKey = key
	}
	if model := os.Getenv("OPENAI_MODEL"); model != "" {
		cfg.OpenAI.Model = model
	}
	if url := os.Getenv("CLAIMS_API_URL"); url != "" {
		cfg.ClaimsAPI.BaseURL = url
	}
	if key := os.Getenv("CLAIMS_API_KEY"); key != "" {
		cfg.ClaimsAPI.APIKey = key
	}
}
