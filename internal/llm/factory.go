package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/abhisek/questioner/internal/config"
	"github.com/abhisek/questioner/internal/store"
)

// Option configures NewClient.
type Option func(*options)

type options struct {
	logger      zerolog.Logger
	recorder    store.EventRepo
	maxTokens   int
	temperature float64
	lookupEnv   config.LookupFunc
}

func buildOptions(opts []Option) options {
	o := options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets the logger used for per-request logging.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithRecorder appends one event per request to repo.
func WithRecorder(repo store.EventRepo) Option {
	return func(o *options) { o.recorder = repo }
}

// WithEnvLookup replaces os.LookupEnv when NewClient fills an absent
// credential.
func WithEnvLookup(lookup config.LookupFunc) Option {
	return func(o *options) { o.lookupEnv = lookup }
}

// WithMaxTokens caps every response.
func WithMaxTokens(n int) Option {
	return func(o *options) { o.maxTokens = n }
}

// WithTemperature sets the sampling temperature for every request.
func WithTemperature(t float64) Option {
	return func(o *options) { o.temperature = t }
}

// NewProvider creates the backend Provider selected by cfg.Backend.
// It never touches the network.
func NewProvider(ctx context.Context, cfg config.ModelConfig) (Provider, error) {
	backend := cfg.BackendOrDefault()
	if strings.TrimSpace(cfg.ModelName) == "" {
		return nil, &ErrBackendUnavailable{Backend: backend, Err: ErrMissingModel}
	}

	switch backend {
	case config.BackendOpenAI:
		return NewOpenAIProvider(cfg)
	case config.BackendOpenRouter:
		return NewOpenRouterProvider(cfg)
	case config.BackendAnthropic:
		return NewAnthropicProvider(cfg)
	case config.BackendGemini:
		return NewGeminiProvider(ctx, cfg)
	default:
		return nil, &ErrBackendUnavailable{
			Backend: backend,
			Err:     fmt.Errorf("unknown backend %q", cfg.Backend),
		}
	}
}

// NewClient builds a Client for cfg. An absent credential is looked up in
// the backend's environment variable; an absent endpoint selects the
// backend's public default. Construction fails with *ErrBackendUnavailable,
// before any network call, when the model name is empty or the backend
// cannot be set up.
func NewClient(ctx context.Context, cfg config.ModelConfig, opts ...Option) (Client, error) {
	o := buildOptions(opts)
	if cfg.Credential == "" {
		cfg.Credential = config.CredentialFromEnv(cfg.BackendOrDefault(), o.lookupEnv)
	}

	base, err := NewProvider(ctx, cfg)
	if err != nil {
		return nil, err
	}

	logged := WithLogging(base, cfg.BackendOrDefault(), o.logger, o.recorder)
	return NewClientFromProvider(logged, opts...), nil
}
