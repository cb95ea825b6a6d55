package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Field names one resolvable ModelConfig field.
type Field string

const (
	FieldBackend    Field = "backend"
	FieldModelName  Field = "model_name"
	FieldEndpoint   Field = "endpoint"
	FieldCredential Field = "credential"
)

// Fields lists every field in resolution order. Backend comes first because
// the environment source needs it to pick the credential variable.
var Fields = []Field{FieldBackend, FieldModelName, FieldEndpoint, FieldCredential}

// Source is one link in the resolution chain. Lookup reports the value the
// source holds for f, or false when the source has nothing to say about it.
// partial carries the fields resolved so far.
type Source interface {
	Name() string
	Lookup(f Field, partial ModelConfig) (string, bool)
}

// Resolved is the outcome of a resolution: the effective config and the
// name of the source that supplied each field.
type Resolved struct {
	Config  ModelConfig
	Origins map[Field]string
}

// Resolve walks sources in order, independently for each field, and keeps the
// first value found. It fails with *ErrConfiguration when no source supplies
// a model name, or only a blank one.
func Resolve(sources ...Source) (*Resolved, error) {
	res := &Resolved{Origins: make(map[Field]string, len(Fields))}

	for _, f := range Fields {
		for _, s := range sources {
			if v, ok := s.Lookup(f, res.Config); ok {
				res.Config.set(f, v)
				res.Origins[f] = s.Name()
				break
			}
		}
	}

	if strings.TrimSpace(res.Config.ModelName) == "" {
		names := make([]string, len(sources))
		for i, s := range sources {
			names[i] = s.Name()
		}
		return nil, &ErrConfiguration{
			Message: "no model name configured",
			Sources: names,
		}
	}

	if res.Config.Backend == "" {
		res.Config.Backend = DefaultBackend
		res.Origins[FieldBackend] = "built-in default"
	}
	return res, nil
}

// modelConfigSource answers every field, empty or not.
type modelConfigSource struct {
	cfg ModelConfig
}

// FromModelConfig returns a source that supplies cfg verbatim. Lower
// priority sources are never consulted for any field once it is in the chain.
func FromModelConfig(cfg ModelConfig) Source {
	return modelConfigSource{cfg: cfg}
}

func (s modelConfigSource) Name() string { return "model config" }

func (s modelConfigSource) Lookup(f Field, _ ModelConfig) (string, bool) {
	return s.cfg.Get(f), true
}

// Scalars holds individually supplied values. Empty means unset.
type Scalars struct {
	Backend    string
	ModelName  string
	Credential string
	Endpoint   string
}

type scalarSource struct {
	cfg ModelConfig
}

// FromScalars returns a source that supplies only the fields that are set,
// letting unset fields fall through to the next source.
func FromScalars(s Scalars) Source {
	return scalarSource{cfg: ModelConfig(s)}
}

func (s scalarSource) Name() string { return "parameters" }

func (s scalarSource) Lookup(f Field, _ ModelConfig) (string, bool) {
	v := s.cfg.Get(f)
	return v, v != ""
}

// fileDefaultSource is the one place where file errors are swallowed.
type fileDefaultSource struct {
	path   string
	logger zerolog.Logger

	once sync.Once
	cfg  *ModelConfig
}

// BestEffortDefault returns a source backed by the default entry of the
// model file at path. Any failure to read it (missing file, bad syntax,
// dangling default name) turns the source into an empty one; the failure is
// only logged. The file is read at most once, on first lookup.
func BestEffortDefault(path string, logger zerolog.Logger) Source {
	return &fileDefaultSource{path: path, logger: logger}
}

func (s *fileDefaultSource) Name() string {
	if s.path == "" {
		return "model file"
	}
	return "model file " + s.path
}

func (s *fileDefaultSource) Lookup(f Field, _ ModelConfig) (string, bool) {
	s.once.Do(s.load)
	if s.cfg == nil {
		return "", false
	}
	v := s.cfg.Get(f)
	return v, v != ""
}

func (s *fileDefaultSource) load() {
	if s.path == "" {
		return
	}
	cfg, err := LoadDefault(s.path)
	if err != nil {
		ev := s.logger.Debug()
		if !errors.Is(err, fs.ErrNotExist) {
			ev = s.logger.Warn()
		}
		ev.Err(err).Str("path", s.path).Msg("ignoring model file")
		return
	}
	s.cfg = cfg
}

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

type envSource struct {
	lookup LookupFunc
}

// FromEnv returns a source that supplies the credential, and nothing else,
// from the backend's credential variable. A nil lookup uses os.LookupEnv.
func FromEnv(lookup LookupFunc) Source {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return envSource{lookup: lookup}
}

func (s envSource) Name() string { return "environment" }

func (s envSource) Lookup(f Field, partial ModelConfig) (string, bool) {
	if f != FieldCredential {
		return "", false
	}
	v, ok := s.lookup(CredentialEnvVar(partial.BackendOrDefault()))
	return v, ok && v != ""
}
