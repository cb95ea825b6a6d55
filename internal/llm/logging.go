package llm

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/abhisek/questioner/internal/store"
)

// LoggingProvider is a decorator that logs every request and, when a
// recorder is set, appends it to the event store.
type LoggingProvider struct {
	inner    Provider
	backend  string
	logger   zerolog.Logger
	recorder store.EventRepo
}

// WithLogging wraps a Provider with structured logging. recorder may be nil.
func WithLogging(p Provider, backend string, logger zerolog.Logger, recorder store.EventRepo) Provider {
	return &LoggingProvider{
		inner:    p,
		backend:  backend,
		logger:   logger.With().Str("backend", backend).Str("model", p.ModelID()).Logger(),
		recorder: recorder,
	}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)
	runID := RunIDFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)

	latencyMs := time.Since(start).Milliseconds()

	data := store.LLMRequestEventData{
		RunID:     runID,
		Backend:   l.backend,
		Model:     l.inner.ModelID(),
		Purpose:   purpose,
		LatencyMs: latencyMs,
		Success:   err == nil,
	}
	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	ev := l.logger.Debug()
	if err != nil {
		ev = l.logger.Warn().Err(err)
	}
	ev.Str("purpose", purpose).
		Str("run_id", runID).
		Bool("json", req.JSON).
		Int64("latency_ms", latencyMs).
		Int("input_tokens", data.InputTokens).
		Int("output_tokens", data.OutputTokens).
		Msg("llm request")

	// Recording is best effort; a broken store never fails the request.
	if l.recorder != nil {
		if logErr := l.recorder.AppendLLMRequest(ctx, data); logErr != nil {
			l.logger.Warn().Err(logErr).Msg("failed to record LLM request event")
		}
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
