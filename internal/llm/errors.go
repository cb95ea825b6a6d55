package llm

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrMissingModel is wrapped by ErrBackendUnavailable when a client is
// requested for a configuration without a model name.
var ErrMissingModel = errors.New("model name is required")

// ErrBackendUnavailable indicates a client could not be constructed: the
// backend is unknown, the model name is missing, or the SDK refused the
// configuration.
type ErrBackendUnavailable struct {
	Backend string
	Err     error
}

func (e *ErrBackendUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM backend %q unavailable: %v", e.Backend, e.Err)
	}
	return fmt.Sprintf("LLM backend %q unavailable", e.Backend)
}

func (e *ErrBackendUnavailable) Unwrap() error { return e.Err }

// ErrTransport indicates a network or protocol failure during a call.
// StatusCode is zero when no HTTP response was received.
type ErrTransport struct {
	Backend    string
	StatusCode int
	Err        error
}

func (e *ErrTransport) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s request failed (HTTP %d): %v", e.Backend, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s request failed: %v", e.Backend, e.Err)
}

func (e *ErrTransport) Unwrap() error { return e.Err }

// RateLimited reports whether the backend answered 429 Too Many Requests.
func (e *ErrTransport) RateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// ErrResponseFormat indicates the backend returned text that does not parse
// as the expected structure or fails shape validation. Raw holds the
// response as received.
type ErrResponseFormat struct {
	Raw string
	Err error
}

func (e *ErrResponseFormat) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrResponseFormat) Unwrap() error { return e.Err }
