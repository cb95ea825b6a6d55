package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/abhisek/questioner/internal/config"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.0-flash"},
		{"gemini-pro", "gemini-2.0-pro"},
		{"gemini-2.0-flash", "gemini-2.0-flash"}, // Pass-through
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, geminiModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestNewGeminiProvider(t *testing.T) {
	p, err := NewGeminiProvider(context.Background(), config.ModelConfig{
		Backend:    config.BackendGemini,
		ModelName:  "gemini-flash",
		Credential: "test-key",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "gemini-2.0-flash" {
		t.Fatalf("expected 'gemini-2.0-flash', got %q", p.ModelID())
	}
}

func TestNewGeminiProvider_MissingModel(t *testing.T) {
	_, err := NewGeminiProvider(context.Background(), config.ModelConfig{Credential: "test-key"})
	var unavail *ErrBackendUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrBackendUnavailable, got: %T (%v)", err, err)
	}
	if !errors.Is(err, ErrMissingModel) {
		t.Fatalf("expected ErrMissingModel, got: %v", err)
	}
}
