package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := `
# Credentials
GROQ_API_KEY=gsk_example
OPENAI_BASE_URL="https://api.groq.com/openai/v1"
SERPAPI_API_KEY='serp_example'
ENV=production # inline comment

NOT_A_PAIR
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}

	env, err := LoadEnv(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := map[string]string{
		"GROQ_API_KEY":    "gsk_example",
		"OPENAI_BASE_URL": "https://api.groq.com/openai/v1",
		"SERPAPI_API_KEY": "serp_example",
		"ENV":             "production",
	}
	for key, want := range tests {
		if got := env[key]; got != want {
			t.Errorf("%s = %q, want %q", key, got, want)
		}
	}

	if _, ok := env["NOT_A_PAIR"]; ok {
		t.Error("malformed line should be skipped")
	}
	if len(env) != len(tests) {
		t.Errorf("expected %d entries, got %d", len(tests), len(env))
	}
}

func TestLoadEnvMissingFile(t *testing.T) {
	if _, err := LoadEnv(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
