package problemgen

import "sort"

// OptionCount is the number of options every generated question carries.
const OptionCount = 4

// AssessmentResult is the Quality Filter's verdict on a raw excerpt.
type AssessmentResult struct {
	// IsSuitable reports whether the excerpt can become an exam question.
	IsSuitable bool `json:"is_suitable"`

	// MissingInfo lists what the excerpt lacks, e.g. "sample size".
	// Empty when nothing is missing.
	MissingInfo string `json:"missing_info"`

	// PotentialTask describes the kind of question the excerpt supports,
	// e.g. "choose the test" or "interpret the confidence interval".
	PotentialTask string `json:"potential_task"`
}

// Question is a single-answer multiple-choice exam question.
type Question struct {
	// Stem is the question text shown to the examinee.
	Stem string `json:"stem"`

	// Options maps each option key (usually "A" to "D") to its text.
	// Exactly OptionCount distinct keys.
	Options map[string]string `json:"options"`

	// Answer is the key of the correct option.
	Answer string `json:"answer"`

	// Analysis explains why the answer is correct and why each distractor
	// is wrong.
	Analysis string `json:"analysis"`
}

// OptionKeys returns the option keys in display order.
func (q *Question) OptionKeys() []string {
	keys := make([]string, 0, len(q.Options))
	for k := range q.Options {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Purpose labels attached to each stage's LLM call for logging.
const (
	PurposeAssess   = "assess"
	PurposeRewrite  = "rewrite"
	PurposeGenerate = "generate"
)
