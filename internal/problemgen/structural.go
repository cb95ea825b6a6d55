package problemgen

import (
	"fmt"
	"strings"
)

// StructuralValidator checks that the free-text fields are present. Length
// is not limited.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *Question) *ValidationError {
	if strings.TrimSpace(q.Stem) == "" {
		return &ValidationError{Validator: v.Name(), Message: "stem is empty"}
	}
	if strings.TrimSpace(q.Analysis) == "" {
		return &ValidationError{Validator: v.Name(), Message: "analysis is empty"}
	}
	return nil
}

// OptionsValidator checks the option set: exactly OptionCount non-empty
// keys with non-empty texts, and an answer that names one of them.
type OptionsValidator struct{}

func (v *OptionsValidator) Name() string { return "options" }

func (v *OptionsValidator) Validate(q *Question) *ValidationError {
	if len(q.Options) != OptionCount {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("expected %d options, got %d", OptionCount, len(q.Options)),
		}
	}
	for _, key := range q.OptionKeys() {
		if strings.TrimSpace(key) == "" {
			return &ValidationError{Validator: v.Name(), Message: "option key is empty"}
		}
		if strings.TrimSpace(q.Options[key]) == "" {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("option %q has no text", key)}
		}
	}
	if _, ok := q.Options[q.Answer]; !ok {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("answer %q is not one of the option keys %v", q.Answer, q.OptionKeys()),
		}
	}
	return nil
}
