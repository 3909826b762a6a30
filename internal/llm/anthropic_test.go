package llm

import (
	"errors"
	"testing"
)

func TestAnthropicModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"claude-haiku", "claude-haiku-4-5-20251001"},
		{"claude-sonnet", "claude-sonnet-4-20250514"},
		{"claude-3-opus-20240229", "claude-3-opus-20240229"}, // Pass-through
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, anthropicModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestCheckAnthropicStop(t *testing.T) {
	if err := checkAnthropicStop("end_turn"); err != nil {
		t.Fatalf("end_turn should pass, got: %v", err)
	}

	var blocked *ErrPromptBlocked
	if err := checkAnthropicStop("refusal"); !errors.As(err, &blocked) {
		t.Fatalf("refusal should map to ErrPromptBlocked, got: %v", err)
	}

	var stopped *ErrGenerationStopped
	if err := checkAnthropicStop("max_tokens"); !errors.As(err, &stopped) {
		t.Fatalf("max_tokens should map to ErrGenerationStopped, got: %v", err)
	}
}

func TestNewAnthropicProvider_RequiresKey(t *testing.T) {
	if _, err := NewAnthropicProvider(AnthropicConfig{}); err == nil {
		t.Fatal("expected error for missing API key")
	}
}
