package llm

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/abhisek/questioner/internal/store"
)

type fakeRecorder struct {
	events []store.LLMRequestEventData
	err    error
}

func (f *fakeRecorder) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	f.events = append(f.events, data)
	return f.err
}

func TestLoggingProvider_RecordsSuccess(t *testing.T) {
	mock := NewMockProvider(MockResponse{Text: "ok", Usage: Usage{InputTokens: 12, OutputTokens: 3}})
	rec := &fakeRecorder{}
	var buf bytes.Buffer

	p := WithLogging(mock, "openai", zerolog.New(&buf).Level(zerolog.DebugLevel), rec)
	ctx := WithRunID(WithPurpose(context.Background(), "rewrite"), "run-42")

	if _, err := p.Generate(ctx, userRequest("s", "u", false)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(rec.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(rec.events))
	}
	ev := rec.events[0]
	if ev.RunID != "run-42" || ev.Purpose != "rewrite" || ev.Backend != "openai" {
		t.Fatalf("unexpected labels %+v", ev)
	}
	if !ev.Success || ev.InputTokens != 12 || ev.OutputTokens != 3 || ev.Model != "mock" {
		t.Fatalf("unexpected event %+v", ev)
	}

	out := buf.String()
	if !strings.Contains(out, `"purpose":"rewrite"`) || !strings.Contains(out, `"backend":"openai"`) {
		t.Fatalf("expected structured log line, got %s", out)
	}
}

func TestLoggingProvider_RecordsFailure(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrTransport{Backend: "openai", StatusCode: 502}})
	rec := &fakeRecorder{}

	p := WithLogging(mock, "openai", zerolog.Nop(), rec)
	_, err := p.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error")
	}

	if len(rec.events) != 1 || rec.events[0].Success {
		t.Fatalf("expected one failed event, got %+v", rec.events)
	}
	if rec.events[0].ErrorMessage == "" {
		t.Fatal("expected error message")
	}
	if rec.events[0].Purpose != "unknown" {
		t.Fatalf("expected unknown purpose, got %q", rec.events[0].Purpose)
	}
}

func TestLoggingProvider_RecorderFailureDoesNotFailRequest(t *testing.T) {
	mock := NewMockProvider(MockResponse{Text: "ok"})
	rec := &fakeRecorder{err: errors.New("disk full")}

	p := WithLogging(mock, "openai", zerolog.Nop(), rec)
	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("expected success despite recorder failure, got %v", err)
	}
	if resp.Text != "ok" {
		t.Fatalf("unexpected response %q", resp.Text)
	}
}

func TestLoggingProvider_NilRecorder(t *testing.T) {
	p := WithLogging(NewMockProvider(MockResponse{Text: "ok"}), "openai", zerolog.Nop(), nil)
	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Fatalf("expected ModelID to delegate, got %q", p.ModelID())
	}
}
