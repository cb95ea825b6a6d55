package llm

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/abhisek/questioner/internal/config"
)

// openaiModels maps friendly names to OpenAI model IDs.
var openaiModels = map[string]string{
	"gpt-4o":      "gpt-4o",
	"gpt-4o-mini": "gpt-4o-mini",
}

// OpenAIProvider implements Provider using the OpenAI SDK.
// It also serves OpenRouter, vLLM, Ollama and any other OpenAI-compatible
// API via the endpoint.
type OpenAIProvider struct {
	client  *openai.Client
	model   string
	backend string
}

// NewOpenAIProvider creates a provider for an OpenAI-compatible API. An empty
// credential is sent as-is; local deployments commonly ignore it.
func NewOpenAIProvider(cfg config.ModelConfig) (*OpenAIProvider, error) {
	return newOpenAIProvider(config.BackendOpenAI, cfg, "")
}

func newOpenAIProvider(backend string, cfg config.ModelConfig, defaultEndpoint string) (*OpenAIProvider, error) {
	if cfg.ModelName == "" {
		return nil, &ErrBackendUnavailable{Backend: backend, Err: ErrMissingModel}
	}

	clientCfg := openai.DefaultConfig(cfg.Credential)
	switch {
	case cfg.Endpoint != "":
		clientCfg.BaseURL = cfg.Endpoint
	case defaultEndpoint != "":
		clientCfg.BaseURL = defaultEndpoint
	}

	return &OpenAIProvider{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   resolveModel(cfg.ModelName, openaiModels),
		backend: backend,
	}, nil
}

func (p *OpenAIProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	chatReq := openai.ChatCompletionRequest{
		Model:               p.model,
		Messages:            buildOpenAIMessages(req),
		MaxCompletionTokens: req.MaxTokens,
		Temperature:         float32(req.Temperature),
	}
	if req.JSON {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := p.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, p.mapError(err)
	}

	if len(resp.Choices) == 0 {
		return nil, &ErrResponseFormat{
			Err: fmt.Errorf("no choices in %s response", p.backend),
		}
	}

	return &Response{
		Text: resp.Choices[0].Message.Content,
		Usage: Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
		Model:      resp.Model,
		StopReason: mapOpenAIStopReason(resp.Choices[0].FinishReason),
	}, nil
}

func (p *OpenAIProvider) ModelID() string {
	return p.model
}

func buildOpenAIMessages(req Request) []openai.ChatCompletionMessage {
	var messages []openai.ChatCompletionMessage

	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}

	for _, m := range req.Messages {
		role := openai.ChatMessageRoleUser
		if m.Role == RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: m.Content,
		})
	}

	return messages
}

func mapOpenAIStopReason(reason openai.FinishReason) string {
	if reason == openai.FinishReasonLength {
		return "max_tokens"
	}
	return "end"
}

func (p *OpenAIProvider) mapError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &ErrTransport{Backend: p.backend, StatusCode: apiErr.HTTPStatusCode, Err: err}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &ErrTransport{Backend: p.backend, StatusCode: reqErr.HTTPStatusCode, Err: err}
	}
	return &ErrTransport{Backend: p.backend, Err: err}
}
