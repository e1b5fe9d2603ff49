// Package config handles application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment modes.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config represents the application configuration.
type Config struct {
	App    AppConfig    `yaml:"app,omitempty"`
	Server ServerConfig `yaml:"server,omitempty"`
	Model  ModelConfig  `yaml:"model,omitempty"`
	Search SearchConfig `yaml:"search,omitempty"`
	CORS   CORSConfig   `yaml:"cors,omitempty"`
	DB     DBConfig     `yaml:"db,omitempty"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Name string `yaml:"name"`
	Env  string `yaml:"env"` // development|production
}

// ServerConfig holds server settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// ModelConfig holds chat-completion API settings.
type ModelConfig struct {
	APIKey  string        `yaml:"api_key,omitempty"`
	BaseURL string        `yaml:"base_url"`
	Name    string        `yaml:"name"`
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

// SearchConfig holds SerpAPI settings. An empty key disables grounding.
type SearchConfig struct {
	APIKey string `yaml:"api_key,omitempty"`
}

// CORSConfig holds allowed origins for the web frontend.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins,omitempty"`
}

// DBConfig holds the session log database settings.
type DBConfig struct {
	Path string `yaml:"path,omitempty"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		App: AppConfig{
			Name: "folio",
			Env:  EnvDevelopment,
		},
		Server: ServerConfig{
			Port: 8080,
		},
		Model: ModelConfig{
			BaseURL: "https://api.groq.com/openai/v1",
			Name:    "llama-3.3-70b-versatile",
			Timeout: 2 * time.Minute,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"http://localhost:3000"},
		},
	}
}

// Load loads configuration from the default path.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from a specific path, merged over defaults,
// then applies .env overrides if a .env file exists in the working directory.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// No config file, proceed with defaults
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Apply .env overrides if file exists
	if env, err := LoadEnv(".env"); err == nil {
		ApplyEnvOverrides(cfg, env)
	}

	// Process environment always wins over files
	ApplyEnvOverrides(cfg, processEnv())

	return cfg, nil
}

// IsDevelopment reports whether the app runs in development mode.
// Development mode exposes the API route listing at /api/docs.
func (c *Config) IsDevelopment() bool {
	return c.App.Env != EnvProduction
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "folio.yaml"
	}
	return filepath.Join(home, ".folio", "config.yaml")
}

// DefaultDBPath returns the default session log database path.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "folio.db"
	}
	return filepath.Join(home, ".folio", "folio.db")
}

// GenerateExample generates an example configuration file.
func GenerateExample() string {
	return `# folio configuration file
# Place this file at ~/.folio/config.yaml
# Credentials are normally supplied via .env or the process environment:
#   GROQ_API_KEY      (required for generation endpoints)
#   SERPAPI_API_KEY   (optional; absence disables web grounding)

app:
  name: folio
  env: development        # development|production (toggles /api/docs)

server:
  port: 8080

model:
  base_url: https://api.groq.com/openai/v1
  name: llama-3.3-70b-versatile
  timeout: 2m

cors:
  allowed_origins:
    - http://localhost:3000
    - https://www.example.com

db:
  path: ""                # default: ~/.folio/folio.db
`
}
