package pipeline

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/abhisek/questioner/internal/config"
	"github.com/abhisek/questioner/internal/llm"
	"github.com/abhisek/questioner/internal/store"
)

// Option configures Generate and ResolveModel.
type Option func(*options)

type options struct {
	client     llm.Client
	model      *config.ModelConfig
	scalars    config.Scalars
	configFile string
	lookupEnv  config.LookupFunc
	logger     zerolog.Logger
	observer   Observer
	recorder   store.EventRepo
	llmOpts    []llm.Option
}

// WithClient runs on a ready client; no configuration is resolved.
func WithClient(c llm.Client) Option {
	return func(o *options) { o.client = c }
}

// WithModelConfig supplies every field verbatim. Scalars, the model file
// and the environment are then ignored.
func WithModelConfig(cfg config.ModelConfig) Option {
	return func(o *options) { o.model = &cfg }
}

func WithModelName(name string) Option {
	return func(o *options) { o.scalars.ModelName = name }
}

func WithCredential(credential string) Option {
	return func(o *options) { o.scalars.Credential = credential }
}

func WithEndpoint(endpoint string) Option {
	return func(o *options) { o.scalars.Endpoint = endpoint }
}

func WithBackend(backend string) Option {
	return func(o *options) { o.scalars.Backend = backend }
}

// WithConfigFile reads the default entry from path instead of
// config.DefaultPath().
func WithConfigFile(path string) Option {
	return func(o *options) { o.configFile = path }
}

// WithEnvLookup replaces os.LookupEnv for the credential variables, both
// in resolution and when the client fills an absent credential.
func WithEnvLookup(lookup config.LookupFunc) Option {
	return func(o *options) { o.lookupEnv = lookup }
}

func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

func WithObserver(fn Observer) Option {
	return func(o *options) { o.observer = fn }
}

// WithEventRecorder logs one event per backend round trip to repo.
func WithEventRecorder(repo store.EventRepo) Option {
	return func(o *options) { o.recorder = repo }
}

// WithLLMOptions passes sampling options through to llm.NewClient.
func WithLLMOptions(opts ...llm.Option) Option {
	return func(o *options) { o.llmOpts = append(o.llmOpts, opts...) }
}

func buildOptions(opts []Option) options {
	o := options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ResolveModel runs the configuration chain without building a client.
// Precedence per field: model config, then scalar options, then the model
// file's default entry, then the environment (credential only).
func ResolveModel(opts ...Option) (*config.Resolved, error) {
	return resolve(buildOptions(opts))
}

func resolve(o options) (*config.Resolved, error) {
	var sources []config.Source
	if o.model != nil {
		sources = append(sources, config.FromModelConfig(*o.model))
	}
	sources = append(sources, config.FromScalars(o.scalars))

	path := o.configFile
	if path == "" {
		// An unresolvable home directory leaves the file source empty.
		path, _ = config.DefaultPath()
	}
	sources = append(sources,
		config.BestEffortDefault(path, o.logger),
		config.FromEnv(o.lookupEnv),
	)
	return config.Resolve(sources...)
}

// Generate is the one-call entry point: resolve a model, build a client and
// run the pipeline once over raw. Configuration errors surface before any
// network call, unwrapped. A stage failure comes back as a *StageError
// naming the stage; errors.As reaches the typed llm error it wraps.
func Generate(ctx context.Context, raw string, opts ...Option) (*Result, error) {
	o := buildOptions(opts)

	client := o.client
	if client == nil {
		resolved, err := resolve(o)
		if err != nil {
			return nil, err
		}
		o.logger.Debug().
			Str("backend", resolved.Config.Backend).
			Str("model", resolved.Config.ModelName).
			Str("credential", config.MaskCredential(resolved.Config.Credential)).
			Msg("model resolved")

		llmOpts := append([]llm.Option{
			llm.WithLogger(o.logger),
			llm.WithRecorder(o.recorder),
			llm.WithEnvLookup(o.lookupEnv),
		}, o.llmOpts...)
		client, err = llm.NewClient(ctx, resolved.Config, llmOpts...)
		if err != nil {
			return nil, err
		}
	}

	return New(client, o.logger, o.observer).Run(ctx, raw)
}
