package problemgen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/questioner/internal/llm"
)

// QualityFilter decides whether a raw excerpt carries enough information
// to become an exam question.
type QualityFilter struct {
	client llm.Client
}

// NewQualityFilter returns a QualityFilter that assesses through client.
func NewQualityFilter(client llm.Client) *QualityFilter {
	return &QualityFilter{client: client}
}

// Assess makes one structured call and returns the verdict. A response that
// does not match AssessmentSchema is an *llm.ErrResponseFormat.
func (f *QualityFilter) Assess(ctx context.Context, raw string) (*AssessmentResult, error) {
	ctx = llm.WithPurpose(ctx, PurposeAssess)

	obj, err := f.client.GenerateStructured(ctx, assessPrompt, strings.TrimSpace(raw))
	if err != nil {
		return nil, err
	}
	if err := llm.ValidateJSON(AssessmentSchema, obj); err != nil {
		return nil, err
	}

	// Nulls for the optional strings leave the zero value in place.
	var result AssessmentResult
	if err := json.Unmarshal(obj, &result); err != nil {
		return nil, &llm.ErrResponseFormat{
			Raw: string(obj),
			Err: fmt.Errorf("decode assessment: %w", err),
		}
	}
	return &result, nil
}
