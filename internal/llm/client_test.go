package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/abhisek/questioner/internal/config"
)

func TestProviderClient_GenerateStructured(t *testing.T) {
	mock := NewMockProvider(MockResponse{Text: "```json\n{\"is_suitable\": true}\n```"})
	client := NewClientFromProvider(mock, WithMaxTokens(512), WithTemperature(0.2))

	raw, err := client.GenerateStructured(context.Background(), "system", "user")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(raw) != `{"is_suitable": true}` {
		t.Fatalf("unexpected object %s", raw)
	}

	call := mock.Calls[0]
	if !call.JSON {
		t.Fatal("expected JSON mode")
	}
	if call.System != "system" || call.Messages[0].Content != "user" || call.Messages[0].Role != RoleUser {
		t.Fatalf("unexpected request %+v", call)
	}
	if call.MaxTokens != 512 || call.Temperature != 0.2 {
		t.Fatalf("sampling options not applied: %+v", call)
	}
}

func TestProviderClient_GenerateStructuredBadJSON(t *testing.T) {
	mock := NewMockProvider(MockResponse{Text: "I cannot help with that."})
	client := NewClientFromProvider(mock)

	_, err := client.GenerateStructured(context.Background(), "s", "u")
	var rf *ErrResponseFormat
	if !errors.As(err, &rf) {
		t.Fatalf("expected ErrResponseFormat, got: %T (%v)", err, err)
	}
	if rf.Raw != "I cannot help with that." {
		t.Fatalf("expected raw text preserved, got %q", rf.Raw)
	}
}

func TestProviderClient_GenerateText(t *testing.T) {
	mock := NewMockProvider(MockResponse{Text: "\n  A cohort of 600 patients...  \n"})
	client := NewClientFromProvider(mock)

	text, err := client.GenerateText(context.Background(), "s", "u")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "A cohort of 600 patients..." {
		t.Fatalf("expected trimmed text, got %q", text)
	}
	if mock.Calls[0].JSON {
		t.Fatal("expected text mode")
	}
}

func TestProviderClient_PropagatesTransportError(t *testing.T) {
	want := &ErrTransport{Backend: "mock", StatusCode: 503}
	client := NewClientFromProvider(NewMockProvider(MockResponse{Err: want}))

	_, err := client.GenerateText(context.Background(), "s", "u")
	if !errors.Is(err, want) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestNewClient_EmptyModelName(t *testing.T) {
	cfgs := []config.ModelConfig{
		{},
		{Credential: "sk-test"},
		{Endpoint: "http://localhost:8000/v1", Credential: "sk-test"},
		{Backend: config.BackendAnthropic, Credential: "sk-test"},
		{Backend: config.BackendGemini, Credential: "key"},
		{Backend: config.BackendOpenRouter},
		{ModelName: "   "},
	}

	for _, cfg := range cfgs {
		_, err := NewClient(context.Background(), cfg)
		var unavail *ErrBackendUnavailable
		if !errors.As(err, &unavail) {
			t.Fatalf("%v: expected ErrBackendUnavailable, got: %T (%v)", cfg, err, err)
		}
		if !errors.Is(err, ErrMissingModel) {
			t.Fatalf("%v: expected ErrMissingModel, got: %v", cfg, err)
		}
	}
}

func TestNewClient_UnknownBackend(t *testing.T) {
	_, err := NewClient(context.Background(), config.ModelConfig{Backend: "llamafile", ModelName: "x"})
	var unavail *ErrBackendUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrBackendUnavailable, got: %T (%v)", err, err)
	}
	if unavail.Backend != "llamafile" {
		t.Fatalf("expected backend name in error, got %q", unavail.Backend)
	}
}

func TestNewClient_Backends(t *testing.T) {
	tests := []struct {
		cfg  config.ModelConfig
		want string
	}{
		{config.ModelConfig{ModelName: "gpt-4o-mini", Credential: "k"}, "gpt-4o-mini"},
		{config.ModelConfig{Backend: "OpenAI", ModelName: "qwen-plus", Endpoint: "http://localhost/v1"}, "qwen-plus"},
		{config.ModelConfig{Backend: config.BackendOpenRouter, ModelName: "meta/llama", Credential: "k"}, "meta/llama"},
		{config.ModelConfig{Backend: config.BackendAnthropic, ModelName: "claude-haiku", Credential: "k"}, "claude-haiku-4-5-20251001"},
		{config.ModelConfig{Backend: config.BackendGemini, ModelName: "gemini-flash", Credential: "k"}, "gemini-2.0-flash"},
	}

	for _, tt := range tests {
		client, err := NewClient(context.Background(), tt.cfg)
		if err != nil {
			t.Fatalf("%v: unexpected error: %v", tt.cfg, err)
		}
		if client.ModelID() != tt.want {
			t.Fatalf("%v: expected model %q, got %q", tt.cfg, tt.want, client.ModelID())
		}
	}
}

func TestNewClient_CredentialFromEnvLookup(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-process")

	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(openAICompletion("ok"))
	}))
	defer server.Close()

	lookup := func(key string) (string, bool) {
		if key == "OPENAI_API_KEY" {
			return "sk-lookup", true
		}
		return "", false
	}
	client, err := NewClient(context.Background(),
		config.ModelConfig{ModelName: "qwen-plus", Endpoint: server.URL + "/v1"},
		WithEnvLookup(lookup),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := client.GenerateText(context.Background(), "sys", "user"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer sk-lookup" {
		t.Fatalf("expected the looked-up credential, got %q", gotAuth)
	}
}
