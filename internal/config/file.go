package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// fileDoc is the on-disk layout of a model file:
//
//	{
//	  "models": {
//	    "qwen_plus": {"model_name": "qwen-plus", "credential": "sk-...", "endpoint": "https://..."}
//	  },
//	  "default": "qwen_plus"
//	}
type fileDoc struct {
	Models  map[string]fileEntry `json:"models" yaml:"models"`
	Default string               `json:"default" yaml:"default"`
}

// fileEntry accepts both the current key names and the older
// api_key/base_url spelling. null decodes to the empty string (absent).
type fileEntry struct {
	Backend    string `json:"backend" yaml:"backend"`
	ModelName  string `json:"model_name" yaml:"model_name"`
	Credential string `json:"credential" yaml:"credential"`
	APIKey     string `json:"api_key" yaml:"api_key"`
	Endpoint   string `json:"endpoint" yaml:"endpoint"`
	BaseURL    string `json:"base_url" yaml:"base_url"`
}

func (e fileEntry) toModelConfig() ModelConfig {
	return ModelConfig{
		Backend:    e.Backend,
		ModelName:  e.ModelName,
		Credential: firstNonEmpty(e.Credential, e.APIKey),
		Endpoint:   firstNonEmpty(e.Endpoint, e.BaseURL),
	}
}

// LoadAll reads every named model configuration from the file at path.
// A missing or unparseable file, or an entry without model_name, is an error.
func LoadAll(path string) (map[string]ModelConfig, error) {
	doc, err := readFile(path)
	if err != nil {
		return nil, err
	}

	configs := make(map[string]ModelConfig, len(doc.Models))
	for name, entry := range doc.Models {
		cfg, err := entryConfig(path, name, entry)
		if err != nil {
			return nil, err
		}
		configs[name] = cfg
	}
	return configs, nil
}

// LoadDefault returns the entry named by the file's "default" key.
// It returns (nil, nil) when no default is set, and an error when the file
// is missing or the named entry does not exist.
func LoadDefault(path string) (*ModelConfig, error) {
	doc, err := readFile(path)
	if err != nil {
		return nil, err
	}
	if doc.Default == "" {
		return nil, nil
	}

	entry, ok := doc.Models[doc.Default]
	if !ok {
		return nil, &ErrConfiguration{
			Message: fmt.Sprintf("default model %q is not defined in %s", doc.Default, path),
		}
	}

	cfg, err := entryConfig(path, doc.Default, entry)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DefaultName returns the value of the file's "default" key ("" when unset).
func DefaultName(path string) (string, error) {
	doc, err := readFile(path)
	if err != nil {
		return "", err
	}
	return doc.Default, nil
}

func entryConfig(path, name string, entry fileEntry) (ModelConfig, error) {
	cfg := entry.toModelConfig()
	if cfg.ModelName == "" {
		return ModelConfig{}, &ErrConfiguration{
			Message: fmt.Sprintf("model %q in %s has no model_name", name, path),
		}
	}
	return cfg, nil
}

// readFile decodes path as YAML when it has a .yaml/.yml extension and as
// JSON otherwise.
func readFile(path string) (*fileDoc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ErrConfiguration{
			Message: fmt.Sprintf("cannot read model file %s", path),
			Err:     err,
		}
	}

	var doc fileDoc
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &doc)
	default:
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, &ErrConfiguration{
			Message: fmt.Sprintf("cannot parse model file %s", path),
			Err:     err,
		}
	}
	return &doc, nil
}

// WriteFile stores configs and the default name at path, in JSON or YAML
// depending on the extension. Parent directories are created as needed.
func WriteFile(path string, configs map[string]ModelConfig, defaultName string) error {
	doc := struct {
		Models  map[string]ModelConfig `json:"models" yaml:"models"`
		Default string                 `json:"default,omitempty" yaml:"default,omitempty"`
	}{Models: configs, Default: defaultName}

	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(doc)
	default:
		data, err = json.MarshalIndent(doc, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encode model file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
