package config

import (
	"bufio"
	"os"
	"strconv"
	"strings"
	"time"
)

// LoadEnv reads a .env file and returns a map of key-value pairs.
// It ignores comments (starting with #) and empty lines.
func LoadEnv(path string) (map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	env := make(map[string]string)
	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Remove inline comments
		if idx := strings.Index(value, " #"); idx != -1 {
			value = strings.TrimSpace(value[:idx])
		}

		// Remove quotes if present
		if len(value) >= 2 && ((value[0] == '"' && value[len(value)-1] == '"') ||
			(value[0] == '\'' && value[len(value)-1] == '\'')) {
			value = value[1 : len(value)-1]
		}

		env[key] = value
	}

	return env, scanner.Err()
}

// envKeys are the settings recognized from .env files and the process
// environment.
var envKeys = []string{
	"GROQ_API_KEY",
	"OPENAI_BASE_URL",
	"MODEL_NAME",
	"MODEL_TIMEOUT",
	"SERPAPI_API_KEY",
	"ENV",
	"SERVER_PORT",
	"DB_PATH",
}

// processEnv collects recognized settings from the process environment.
func processEnv() map[string]string {
	env := make(map[string]string)
	for _, key := range envKeys {
		if val, ok := os.LookupEnv(key); ok {
			env[key] = val
		}
	}
	return env
}

// ApplyEnvOverrides updates the configuration based on environment variables.
func ApplyEnvOverrides(cfg *Config, env map[string]string) {
	if val, ok := env["GROQ_API_KEY"]; ok {
		cfg.Model.APIKey = val
	}
	if val, ok := env["OPENAI_BASE_URL"]; ok {
		cfg.Model.BaseURL = val
	}
	if val, ok := env["MODEL_NAME"]; ok {
		cfg.Model.Name = val
	}
	if val, ok := env["MODEL_TIMEOUT"]; ok {
		if seconds, err := strconv.Atoi(val); err == nil {
			cfg.Model.Timeout = time.Duration(seconds) * time.Second
		} else if duration, err := time.ParseDuration(val); err == nil {
			cfg.Model.Timeout = duration
		}
	}
	if val, ok := env["SERPAPI_API_KEY"]; ok {
		cfg.Search.APIKey = val
	}
	if val, ok := env["ENV"]; ok {
		cfg.App.Env = val
	}
	if val, ok := env["SERVER_PORT"]; ok {
		if port, err := strconv.Atoi(val); err == nil {
			cfg.Server.Port = port
		}
	}
	if val, ok := env["DB_PATH"]; ok {
		cfg.DB.Path = val
	}
}
