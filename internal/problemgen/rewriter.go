package problemgen

import (
	"context"
	"errors"
	"strings"

	"github.com/abhisek/questioner/internal/llm"
)

var errEmptyRewrite = errors.New("rewrite is empty")

// ScenarioRewriter strips method names and test statistics from an
// excerpt while keeping its data description, variables and sample sizes.
type ScenarioRewriter struct {
	client llm.Client
}

func NewScenarioRewriter(client llm.Client) *ScenarioRewriter {
	return &ScenarioRewriter{client: client}
}

// Rewrite returns the decontaminated scenario text, never empty.
func (r *ScenarioRewriter) Rewrite(ctx context.Context, raw string) (string, error) {
	ctx = llm.WithPurpose(ctx, PurposeRewrite)

	text, err := r.client.GenerateText(ctx, decontaminatePrompt, strings.TrimSpace(raw))
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", &llm.ErrResponseFormat{Err: errEmptyRewrite}
	}
	return text, nil
}
