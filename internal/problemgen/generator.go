package problemgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/questioner/internal/llm"
)

// QuestionGenerator turns a cleaned scenario into a validated multiple-choice
// question.
type QuestionGenerator struct {
	client llm.Client
	config Config
}

// NewQuestionGenerator creates a QuestionGenerator. A zero Config runs no
// validators beyond the schema check; use DefaultConfig for the standard
// chain.
func NewQuestionGenerator(client llm.Client, cfg Config) *QuestionGenerator {
	return &QuestionGenerator{client: client, config: cfg}
}

// Generate makes one structured call and checks the result against
// QuestionSchema, the option-key uniqueness rule and every configured
// validator. All of those failures are *llm.ErrResponseFormat carrying the
// raw object.
func (g *QuestionGenerator) Generate(ctx context.Context, cleaned string) (*Question, error) {
	ctx = llm.WithPurpose(ctx, PurposeGenerate)

	obj, err := g.client.GenerateStructured(ctx, generatePrompt, strings.TrimSpace(cleaned))
	if err != nil {
		return nil, err
	}
	if err := llm.ValidateJSON(QuestionSchema, obj); err != nil {
		return nil, err
	}
	if err := checkDuplicateOptionKeys(obj); err != nil {
		return nil, &llm.ErrResponseFormat{Raw: string(obj), Err: err}
	}

	var q Question
	if err := json.Unmarshal(obj, &q); err != nil {
		return nil, &llm.ErrResponseFormat{
			Raw: string(obj),
			Err: fmt.Errorf("decode question: %w", err),
		}
	}
	q.Answer = strings.TrimSpace(q.Answer)

	for _, v := range g.config.Validators {
		if verr := v.Validate(&q); verr != nil {
			return nil, &llm.ErrResponseFormat{Raw: string(obj), Err: verr}
		}
	}
	return &q, nil
}

// checkDuplicateOptionKeys walks the "options" object token by token.
// Decoding into a map would silently keep the last of two equal keys, so
// a four-entry map could hide a five-entry response.
func checkDuplicateOptionKeys(obj json.RawMessage) error {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(obj, &top); err != nil {
		return fmt.Errorf("decode question: %w", err)
	}
	options, ok := top["options"]
	if !ok {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(options))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return fmt.Errorf("options is not an object")
	}
	seen := make(map[string]bool)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("read options: %w", err)
		}
		key, _ := tok.(string)
		if seen[key] {
			return fmt.Errorf("duplicate option key %q", key)
		}
		seen[key] = true

		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return fmt.Errorf("read option %q: %w", key, err)
		}
	}
	return nil
}
