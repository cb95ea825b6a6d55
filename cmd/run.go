package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/abhisek/questioner/internal/config"
	"github.com/abhisek/questioner/internal/llm"
	"github.com/abhisek/questioner/internal/pipeline"
)

// runEnv carries what a pipeline run needs from the CLI. Close releases
// the store and the log file.
type runEnv struct {
	logger  zerolog.Logger
	closers []io.Closer
	opts    []pipeline.Option
}

func (e *runEnv) Close() {
	for _, c := range e.closers {
		c.Close()
	}
}

// newRunEnv resolves logging, the event log and the model options shared
// by generate and quiz. A store that cannot be opened only costs the
// event log; the run goes ahead.
func newRunEnv(quiet bool, maxTokens int, temperature float64) (*runEnv, error) {
	logger, logCloser, err := newLogger(quiet)
	if err != nil {
		return nil, err
	}
	env := &runEnv{logger: logger}
	if logCloser != nil {
		env.closers = append(env.closers, logCloser)
	}

	env.opts, err = modelOptions(logger, maxTokens, temperature)
	if err != nil {
		env.Close()
		return nil, err
	}

	st, err := openStore()
	if err != nil {
		logger.Warn().Err(err).Msg("event log unavailable; calls will not be recorded")
	} else {
		env.closers = append(env.closers, st)
		env.opts = append(env.opts, pipeline.WithEventRecorder(st.EventRepo()))
	}
	return env, nil
}

// modelOptions turns the model flags into pipeline options. --profile
// picks a named entry from the model file, which then supplies every field.
func modelOptions(logger zerolog.Logger, maxTokens int, temperature float64) ([]pipeline.Option, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	opts := []pipeline.Option{
		pipeline.WithLogger(logger),
		pipeline.WithConfigFile(path),
		pipeline.WithModelName(settings.GetString("model")),
		pipeline.WithBackend(settings.GetString("backend")),
		pipeline.WithEndpoint(settings.GetString("endpoint")),
		pipeline.WithLLMOptions(llm.WithMaxTokens(maxTokens), llm.WithTemperature(temperature)),
	}

	if profile := settings.GetString("profile"); profile != "" {
		cfgs, err := config.LoadAll(path)
		if err != nil {
			return nil, err
		}
		cfg, ok := cfgs[profile]
		if !ok {
			return nil, &config.ErrConfiguration{
				Message: fmt.Sprintf("profile %q not found in %s", profile, path),
			}
		}
		opts = append(opts, pipeline.WithModelConfig(cfg))
	}
	return opts, nil
}

// modelLabel names the model a run will use, for display only.
func (e *runEnv) modelLabel() string {
	res, err := pipeline.ResolveModel(e.opts...)
	if err != nil {
		return ""
	}
	return res.Config.ModelName
}

// readExcerpt returns the excerpt from --text, a file argument, or stdin
// when the argument is "-".
func readExcerpt(text string, args []string, stdin io.Reader) (string, error) {
	if text != "" {
		return strings.TrimSpace(text), nil
	}
	if len(args) == 0 {
		return "", nil
	}

	var data []byte
	var err error
	if args[0] == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return "", fmt.Errorf("read excerpt: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// withTimeout applies --timeout to ctx.
func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if d := settings.GetDuration("timeout"); d > 0 {
		return context.WithTimeout(ctx, d)
	}
	return context.WithCancel(ctx)
}
