package config

import (
	"fmt"
	"strings"
)

// ErrConfiguration reports that no usable model identity could be
// determined, or that a required configuration file or entry is missing.
type ErrConfiguration struct {
	Message string
	// Sources lists the resolution sources that were consulted, in order.
	Sources []string
	Err     error
}

func (e *ErrConfiguration) Error() string {
	var b strings.Builder
	b.WriteString("configuration error: ")
	b.WriteString(e.Message)
	if len(e.Sources) > 0 {
		fmt.Fprintf(&b, " (checked: %s)", strings.Join(e.Sources, ", "))
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *ErrConfiguration) Unwrap() error { return e.Err }
