package llm

import (
	"context"
	"encoding/json"
	"strings"
)

// Client is the capability every pipeline stage depends on. Each call is
// exactly one round trip to the backend; nothing is retried or cached.
type Client interface {
	// GenerateStructured requests JSON output and returns the cleaned,
	// parsed object. Unparseable output is an *ErrResponseFormat.
	GenerateStructured(ctx context.Context, system, user string) (json.RawMessage, error)

	// GenerateText returns the model's free-text answer, trimmed.
	GenerateText(ctx context.Context, system, user string) (string, error)

	// ModelID returns the model identifier the client talks to.
	ModelID() string
}

// providerClient adapts a Provider to Client. It is the only place where
// model output is cleaned and parsed, whatever the backend.
type providerClient struct {
	provider    Provider
	maxTokens   int
	temperature float64
}

// NewClientFromProvider wraps p as a Client. Only the sampling options
// (WithMaxTokens, WithTemperature) apply here.
func NewClientFromProvider(p Provider, opts ...Option) Client {
	o := buildOptions(opts)
	return &providerClient{
		provider:    p,
		maxTokens:   o.maxTokens,
		temperature: o.temperature,
	}
}

func (c *providerClient) GenerateStructured(ctx context.Context, system, user string) (json.RawMessage, error) {
	resp, err := c.provider.Generate(ctx, c.request(system, user, true))
	if err != nil {
		return nil, err
	}
	return ParseObject(resp.Text)
}

func (c *providerClient) GenerateText(ctx context.Context, system, user string) (string, error) {
	resp, err := c.provider.Generate(ctx, c.request(system, user, false))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Text), nil
}

func (c *providerClient) ModelID() string {
	return c.provider.ModelID()
}

func (c *providerClient) request(system, user string, asJSON bool) Request {
	req := userRequest(system, user, asJSON)
	req.MaxTokens = c.maxTokens
	req.Temperature = c.temperature
	return req
}
