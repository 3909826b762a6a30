package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_DefaultsOnly(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Input != "comments.json" {
		t.Fatalf("expected default input, got %q", cfg.Input)
	}
	if cfg.Moderate.Retry.MaxAttempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", cfg.Moderate.Retry.MaxAttempts)
	}
	if cfg.Moderate.Retry.Delay != 5*time.Second {
		t.Fatalf("expected 5s delay, got %s", cfg.Moderate.Retry.Delay)
	}
	if cfg.LLM.Provider != "gemini" {
		t.Fatalf("expected gemini default, got %q", cfg.LLM.Provider)
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
input: in.json
output: out.json
vocabulary: vocab.txt
log_level: debug
llm:
  provider: mock
moderate:
  workers: 4
  retry:
    max_attempts: 5
    delay: 2s
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Input != "in.json" || cfg.Output != "out.json" {
		t.Fatalf("unexpected paths: %q %q", cfg.Input, cfg.Output)
	}
	if cfg.Moderate.Workers != 4 {
		t.Fatalf("expected 4 workers, got %d", cfg.Moderate.Workers)
	}
	if cfg.Moderate.Retry.MaxAttempts != 5 || cfg.Moderate.Retry.Delay != 2*time.Second {
		t.Fatalf("unexpected retry config: %+v", cfg.Moderate.Retry)
	}
	if cfg.LLM.Provider != "mock" {
		t.Fatalf("expected mock provider, got %q", cfg.LLM.Provider)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("input: from-file.json\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("COMMENTGUARD_INPUT", "from-env.json")
	t.Setenv("COMMENTGUARD_RETRY_DELAY", "250ms")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Input != "from-env.json" {
		t.Fatalf("expected env override, got %q", cfg.Input)
	}
	if cfg.Moderate.Retry.Delay != 250*time.Millisecond {
		t.Fatalf("expected 250ms delay, got %s", cfg.Moderate.Retry.Delay)
	}
}

func TestLoad_MissingFileIsError(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.LLM.Provider = "mock"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := cfg
	bad.Input = ""
	if err := bad.Validate(); err == nil {
		t.Fatal("expected error for empty input path")
	}

	bad = cfg
	bad.Moderate.Retry.MaxAttempts = 0
	if err := bad.Validate(); err == nil {
		t.Fatal("expected error for zero attempts")
	}

	// Missing credential is a configuration fault.
	bad = cfg
	bad.LLM.Provider = "gemini"
	bad.LLM.Gemini.APIKey = ""
	if err := bad.Validate(); err == nil {
		t.Fatal("expected error for missing credential")
	}
}
