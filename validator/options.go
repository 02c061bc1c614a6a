package validator

import (
	"fmt"
	"os"
	"sync"

	"go.yaml.in/yaml/v4"
)

// Option is a function that configures a ValidateWithOptions call.
type Option func(*config) error

// config holds configuration for one ValidateWithOptions call.
type config struct {
	// Input source (exactly one must be set)
	filePath *string
	document map[string]any

	kind VariantID
}

// applyOptions applies option functions and validates the configuration.
func applyOptions(opts ...Option) (*config, error) {
	cfg := &config{
		kind: VariantManifest,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	sources := 0
	if cfg.filePath != nil {
		sources++
	}
	if cfg.document != nil {
		sources++
	}
	switch sources {
	case 0:
		return nil, fmt.Errorf("validator: must specify an input source (use WithFilePath or WithDocument)")
	case 1:
		return cfg, nil
	default:
		return nil, fmt.Errorf("validator: must specify exactly one input source")
	}
}

// WithFilePath specifies a document file as the input source. YAML and JSON
// are both accepted.
func WithFilePath(path string) Option {
	return func(cfg *config) error {
		cfg.filePath = &path
		return nil
	}
}

// WithDocument specifies an already-decoded document as the input source.
func WithDocument(doc map[string]any) Option {
	return func(cfg *config) error {
		cfg.document = doc
		return nil
	}
}

// WithKind selects the document variant to validate against.
// Default: VariantManifest.
func WithKind(kind VariantID) Option {
	return func(cfg *config) error {
		switch kind {
		case VariantManifest, VariantManifestV3, VariantTheme, VariantLangpack, VariantDictionary, VariantMessages:
			cfg.kind = kind
			return nil
		default:
			return fmt.Errorf("validator: unknown document kind %q", kind)
		}
	}
}

// shared is the lazily built process-wide Validator used by the
// package-level entry point.
var shared = sync.OnceValues(New)

// Default returns the shared Validator, building it on first use.
func Default() (*Validator, error) {
	return shared()
}

// ValidateWithOptions validates a document with functional options:
//
//	result, err := validator.ValidateWithOptions(
//	    validator.WithFilePath("manifest.json"),
//	    validator.WithKind(validator.VariantTheme),
//	)
func ValidateWithOptions(opts ...Option) (*Result, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}

	doc := cfg.document
	if cfg.filePath != nil {
		doc, err = LoadDocument(*cfg.filePath)
		if err != nil {
			return nil, err
		}
	}

	v, err := Default()
	if err != nil {
		return nil, err
	}
	return v.validate(cfg.kind, doc)
}

// LoadDocument reads and decodes a YAML or JSON document file.
func LoadDocument(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("validator: cannot read document: %w", err)
	}
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("validator: cannot decode document %s: %w", path, err)
	}
	return doc, nil
}
