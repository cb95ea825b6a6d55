// Package config resolves which language-model backend, model, credential and
// endpoint a pipeline run uses. Values come from explicit caller input, a
// JSON/YAML model file and the process environment, in that order.
package config

import (
	"fmt"
	"os"
	"strings"
)

// Supported backend identifiers.
const (
	BackendOpenAI     = "openai"
	BackendOpenRouter = "openrouter"
	BackendAnthropic  = "anthropic"
	BackendGemini     = "gemini"
)

// DefaultBackend is used when no source names a backend. Most self-hosted
// and third-party services expose an OpenAI-compatible API.
const DefaultBackend = BackendOpenAI

// credentialEnvVars maps each backend to the environment variable that
// supplies a fallback credential.
var credentialEnvVars = map[string]string{
	BackendOpenAI:     "OPENAI_API_KEY",
	BackendOpenRouter: "OPENROUTER_API_KEY",
	BackendAnthropic:  "ANTHROPIC_API_KEY",
	BackendGemini:     "GEMINI_API_KEY",
}

// ModelConfig identifies one model on one backend.
//
// An empty Credential or Endpoint is "absent", not invalid: the credential may
// still come from the environment when the client is built, and an absent
// endpoint selects the backend's public default.
type ModelConfig struct {
	Backend    string `json:"backend,omitempty" yaml:"backend,omitempty"`
	ModelName  string `json:"model_name" yaml:"model_name"`
	Credential string `json:"credential,omitempty" yaml:"credential,omitempty"`
	Endpoint   string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
}

// BackendOrDefault returns the configured backend, or DefaultBackend.
func (c ModelConfig) BackendOrDefault() string {
	if c.Backend == "" {
		return DefaultBackend
	}
	return strings.ToLower(c.Backend)
}

// Get returns the value of a single field.
func (c ModelConfig) Get(f Field) string {
	switch f {
	case FieldBackend:
		return c.Backend
	case FieldModelName:
		return c.ModelName
	case FieldCredential:
		return c.Credential
	case FieldEndpoint:
		return c.Endpoint
	}
	return ""
}

func (c *ModelConfig) set(f Field, v string) {
	switch f {
	case FieldBackend:
		c.Backend = v
	case FieldModelName:
		c.ModelName = v
	case FieldCredential:
		c.Credential = v
	case FieldEndpoint:
		c.Endpoint = v
	}
}

// String renders the config with the credential masked.
func (c ModelConfig) String() string {
	endpoint := c.Endpoint
	if endpoint == "" {
		endpoint = "(default)"
	}
	return fmt.Sprintf("%s/%s endpoint=%s credential=%s",
		c.BackendOrDefault(), c.ModelName, endpoint, MaskCredential(c.Credential))
}

// MaskCredential hides all but the last four characters of a secret.
func MaskCredential(s string) string {
	switch {
	case s == "":
		return "(absent)"
	case len(s) <= 4:
		return "****"
	default:
		return "****" + s[len(s)-4:]
	}
}

// KnownBackend reports whether name is a supported backend identifier.
func KnownBackend(name string) bool {
	_, ok := credentialEnvVars[strings.ToLower(name)]
	return ok
}

// CredentialEnvVar returns the environment variable consulted for the
// backend's fallback credential.
func CredentialEnvVar(backend string) string {
	if backend == "" {
		backend = DefaultBackend
	}
	if v, ok := credentialEnvVars[strings.ToLower(backend)]; ok {
		return v
	}
	return credentialEnvVars[DefaultBackend]
}

// CredentialFromEnv looks up the backend's fallback credential through
// lookup, or the process environment when lookup is nil.
func CredentialFromEnv(backend string, lookup func(string) (string, bool)) string {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	v, _ := lookup(CredentialEnvVar(backend))
	return v
}
