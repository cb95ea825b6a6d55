package llm

import (
	"context"
	"errors"
	"testing"
)

func TestMockProvider_ReturnsCannedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Text: `{"a":1}`, Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Text: "plain"},
	)

	resp1, err := mock.Generate(context.Background(), userRequest("", "first", true))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp1.Text != `{"a":1}` {
		t.Fatalf("expected {\"a\":1}, got %s", resp1.Text)
	}
	if resp1.Usage.InputTokens != 10 {
		t.Fatalf("expected 10 input tokens, got %d", resp1.Usage.InputTokens)
	}

	resp2, err := mock.Generate(context.Background(), userRequest("", "second", false))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp2.Text != "plain" {
		t.Fatalf("expected plain, got %s", resp2.Text)
	}
}

func TestMockProvider_EmptyQueueReturnsError(t *testing.T) {
	mock := NewMockProvider()
	_, err := mock.Generate(context.Background(), Request{})
	var te *ErrTransport
	if !errors.As(err, &te) {
		t.Fatalf("expected ErrTransport, got: %T", err)
	}
}

func TestMockProvider_RecordsCalls(t *testing.T) {
	mock := NewMockProvider(MockResponse{Text: `{}`})
	mock.AddResponse(MockResponse{Text: "second"})

	_, _ = mock.Generate(context.Background(), userRequest("sys", "hello", true))
	_, _ = mock.Generate(context.Background(), userRequest("sys2", "again", false))

	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 calls, got %d", mock.CallCount())
	}
	if mock.Calls[0].System != "sys" || !mock.Calls[0].JSON {
		t.Fatalf("unexpected first call %+v", mock.Calls[0])
	}
	if mock.Calls[1].Messages[0].Content != "again" || mock.Calls[1].JSON {
		t.Fatalf("unexpected second call %+v", mock.Calls[1])
	}
}

func TestMockProvider_ReturnsConfiguredError(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrTransport{Backend: "mock", StatusCode: 429}},
	)

	_, err := mock.Generate(context.Background(), Request{})
	var te *ErrTransport
	if !errors.As(err, &te) || !te.RateLimited() {
		t.Fatalf("expected rate-limited ErrTransport, got: %v", err)
	}
}

func TestContextLabels(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Fatalf("expected 'unknown', got %q", p)
	}
	if id := RunIDFrom(ctx); id != "" {
		t.Fatalf("expected empty run id, got %q", id)
	}

	ctx = WithRunID(WithPurpose(ctx, "assess"), "run-1")
	if p := PurposeFrom(ctx); p != "assess" {
		t.Fatalf("expected 'assess', got %q", p)
	}
	if id := RunIDFrom(ctx); id != "run-1" {
		t.Fatalf("expected 'run-1', got %q", id)
	}
}
