package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const fence = "```"

// CleanJSONText strips surrounding whitespace and an optional markdown code
// fence, including a language tag such as "json", from model output.
// Text without a leading fence is only trimmed.
func CleanJSONText(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, fence) {
		return s
	}

	s = strings.TrimPrefix(s, fence)
	if tag := leadingTag(s); tag != "" {
		s = s[len(tag):]
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, fence)
	return strings.TrimSpace(s)
}

// leadingTag returns the language tag at the start of s, or "" when s does
// not begin with one. A tag must be followed by whitespace, an opening brace
// or bracket, a closing fence, or the end of the text.
func leadingTag(s string) string {
	i := 0
	for i < len(s) && isTagByte(s[i]) {
		i++
	}
	if i == 0 {
		return ""
	}
	if i == len(s) {
		return s
	}
	switch s[i] {
	case ' ', '\t', '\r', '\n', '{', '[', '`':
		return s[:i]
	}
	return ""
}

func isTagByte(c byte) bool {
	return c >= 'a' && c <= 'z' ||
		c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' ||
		c == '-' || c == '_' || c == '+' || c == '.'
}

// ParseObject cleans text and decodes it as a JSON object. Anything else,
// including arrays, scalars and null, is an *ErrResponseFormat carrying the
// original text.
func ParseObject(text string) (json.RawMessage, error) {
	cleaned := CleanJSONText(text)
	if cleaned == "" {
		return nil, &ErrResponseFormat{Raw: text, Err: errors.New("empty response")}
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &obj); err != nil {
		return nil, &ErrResponseFormat{Raw: text, Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	if obj == nil {
		return nil, &ErrResponseFormat{Raw: text, Err: errors.New("expected a JSON object, got null")}
	}
	return json.RawMessage(cleaned), nil
}
