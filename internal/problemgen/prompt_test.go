package problemgen

import (
	"strings"
	"testing"
)

func TestPrompts_NameResponseKeys(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
		keys   []string
	}{
		{"assess", assessPrompt, []string{`"is_suitable"`, `"missing_info"`, `"potential_task"`}},
		{"generate", generatePrompt, []string{`"stem"`, `"options"`, `"answer"`, `"analysis"`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range tt.keys {
				if !strings.Contains(tt.prompt, k) {
					t.Errorf("prompt does not mention %s", k)
				}
			}
		})
	}
}

func TestDecontaminatePrompt_AsksForPlainText(t *testing.T) {
	if strings.Contains(decontaminatePrompt, `"stem"`) {
		t.Error("rewrite prompt should not ask for JSON")
	}
	for _, want := range []string{"Chi-square", "t-test", "ANOVA", "sample sizes"} {
		if !strings.Contains(decontaminatePrompt, want) {
			t.Errorf("rewrite prompt does not mention %q", want)
		}
	}
}

func TestGeneratePrompt_FourOptions(t *testing.T) {
	for _, key := range []string{`"A"`, `"B"`, `"C"`, `"D"`} {
		if !strings.Contains(generatePrompt, key) {
			t.Errorf("generate prompt is missing option %s", key)
		}
	}
}
