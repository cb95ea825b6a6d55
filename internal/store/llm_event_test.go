package store

import (
	"context"
	"testing"
	"time"
)

func appendEvents(t *testing.T, s *Store, events ...LLMRequestEventData) {
	t.Helper()
	ctx := context.Background()
	for i, e := range events {
		if err := s.EventRepo().AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}
}

func runEvents(runID string) []LLMRequestEventData {
	return []LLMRequestEventData{
		{RunID: runID, Backend: "openai", Model: "qwen-plus", Purpose: "assess", InputTokens: 300, OutputTokens: 40, LatencyMs: 900, Success: true},
		{RunID: runID, Backend: "openai", Model: "qwen-plus", Purpose: "rewrite", InputTokens: 280, OutputTokens: 200, LatencyMs: 1500, Success: true},
		{RunID: runID, Backend: "openai", Model: "qwen-plus", Purpose: "generate", InputTokens: 350, OutputTokens: 400, LatencyMs: 2100, Success: false, ErrorMessage: "invalid LLM response"},
	}
}

func TestAppendAndQueryLLMEvents(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	appendEvents(t, s, runEvents("run-1")...)
	appendEvents(t, s, runEvents("run-2")...)

	all, err := s.EventRepo().QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 6 {
		t.Fatalf("expected 6 events, got %d", len(all))
	}
	if all[0].RunID != "run-2" || all[0].Purpose != "generate" {
		t.Fatalf("expected newest first, got %+v", all[0])
	}
	if all[0].Success || all[0].ErrorMessage == "" {
		t.Fatalf("expected failed event with message, got %+v", all[0])
	}
	if all[0].Timestamp.IsZero() {
		t.Fatal("expected timestamp")
	}

	limited, err := s.EventRepo().QueryLLMEvents(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("query limit: %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("expected 2 events, got %d", len(limited))
	}

	byRun, err := s.EventRepo().QueryLLMEvents(ctx, QueryOpts{RunID: "run-1"})
	if err != nil {
		t.Fatalf("query run: %v", err)
	}
	if len(byRun) != 3 {
		t.Fatalf("expected 3 events for run-1, got %d", len(byRun))
	}

	byPurpose, err := s.EventRepo().QueryLLMEvents(ctx, QueryOpts{Purpose: "assess"})
	if err != nil {
		t.Fatalf("query purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("expected 2 assess events, got %d", len(byPurpose))
	}
}

func TestQueryLLMEvents_TimeRange(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, e := range runEvents("run-1") {
		ts := base.Add(time.Duration(i) * time.Hour)
		s.EventRepo().now = func() time.Time { return ts }
		appendEvents(t, s, e)
	}

	got, err := s.EventRepo().QueryLLMEvents(ctx, QueryOpts{
		From: base.Add(30 * time.Minute),
		To:   base.Add(90 * time.Minute),
	})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 1 || got[0].Purpose != "rewrite" {
		t.Fatalf("expected only the rewrite event, got %+v", got)
	}
	if !got[0].Timestamp.Equal(base.Add(time.Hour)) {
		t.Fatalf("timestamp = %v, want %v", got[0].Timestamp, base.Add(time.Hour))
	}
}

func TestGetLLMEvent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	appendEvents(t, s, runEvents("run-1")...)

	events, err := s.EventRepo().QueryLLMEvents(ctx, QueryOpts{Limit: 1})
	if err != nil {
		t.Fatalf("query: %v", err)
	}

	got, err := s.EventRepo().GetLLMEvent(ctx, events[0].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.Purpose != "generate" || got.InputTokens != 350 {
		t.Fatalf("unexpected event %+v", got)
	}

	missing, err := s.EventRepo().GetLLMEvent(ctx, 9999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for missing event, got %+v", missing)
	}
}

func TestLLMUsageByPurpose(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	appendEvents(t, s, runEvents("run-1")...)
	appendEvents(t, s, runEvents("run-2")...)

	stats, err := s.EventRepo().LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	if len(stats) != 3 {
		t.Fatalf("expected 3 purposes, got %d", len(stats))
	}

	// Ordered by purpose name.
	assess, generate := stats[0], stats[1]
	if assess.Purpose != "assess" || assess.Calls != 2 || assess.InputTokens != 600 || assess.Failures != 0 {
		t.Fatalf("unexpected assess stats %+v", assess)
	}
	if generate.Purpose != "generate" || generate.Failures != 2 || generate.AvgLatencyMs != 2100 {
		t.Fatalf("unexpected generate stats %+v", generate)
	}
}

func TestLLMUsageByModel(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	appendEvents(t, s, runEvents("run-1")...)
	appendEvents(t, s, LLMRequestEventData{Backend: "anthropic", Model: "claude-haiku-4-5-20251001", Purpose: "assess", InputTokens: 10, OutputTokens: 5, Success: true})

	stats, err := s.EventRepo().LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("expected 2 models, got %d", len(stats))
	}
	if stats[0].Backend != "anthropic" || stats[0].Calls != 1 {
		t.Fatalf("unexpected first row %+v", stats[0])
	}
	if stats[1].Model != "qwen-plus" || stats[1].Calls != 3 || stats[1].OutputTokens != 640 {
		t.Fatalf("unexpected second row %+v", stats[1])
	}
}

func TestPruneLLMEvents(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	appendEvents(t, s, runEvents("run-1")...)
	appendEvents(t, s, runEvents("run-2")...)

	removed, err := s.EventRepo().PruneLLMEvents(ctx, 4)
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}

	remaining, err := s.EventRepo().QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(remaining) != 4 {
		t.Fatalf("remaining = %d, want 4", len(remaining))
	}
	if remaining[0].RunID != "run-2" {
		t.Fatalf("expected newest events kept, got %+v", remaining[0])
	}

	// Keeping more than exist is a no-op.
	removed, err = s.EventRepo().PruneLLMEvents(ctx, 10)
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if removed != 0 {
		t.Errorf("removed = %d, want 0", removed)
	}
}
