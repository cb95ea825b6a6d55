package llm

import "context"

// Provider is the backend-facing abstraction: one Generate call is one
// network round trip to a language-model service. Callers normally use a
// Client, which adapts a Provider to the structured/free-text operations.
type Provider interface {
	// Generate sends a prompt to the backend and returns its raw text.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the backend.
type Request struct {
	// System is the system instruction.
	System string

	// Messages is the conversation. Pipeline stages send a single user message.
	Messages []Message

	// JSON asks the backend for strict JSON output using its native
	// mechanism (response format, MIME type, or an instruction suffix).
	JSON bool

	// MaxTokens caps the response length. Zero leaves the backend default.
	MaxTokens int

	// Temperature controls randomness. Zero leaves the backend default.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Response holds the backend's output.
type Response struct {
	// Text is the unprocessed model output.
	Text string

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens"
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// userRequest builds the single-turn request every stage sends.
func userRequest(system, user string, asJSON bool) Request {
	return Request{
		System:   system,
		Messages: []Message{{Role: RoleUser, Content: user}},
		JSON:     asJSON,
	}
}
