package validator

import (
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/wextkit/manifesttools/constraints"
	"github.com/wextkit/manifesttools/internal/issues"
	"github.com/wextkit/manifesttools/internal/severity"
)

// Diagnostic is one validation finding. See issues.Issue for field semantics.
type Diagnostic = issues.Issue

// Result is the outcome of validating one document against one variant.
// Valid is false iff Diagnostics contains at least one error.
type Result struct {
	Valid       bool         `json:"valid" yaml:"valid"`
	Variant     VariantID    `json:"variant" yaml:"variant"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// variant pairs a compiled schema with its resolved source tree. The tree is
// what the constraint evaluator walks; the engine only sees the compiled form.
type variant struct {
	schema *jsonschema.Schema
	doc    map[string]any
}

// Validator holds every compiled document variant. Build one with New; it is
// immutable and safe for concurrent use afterwards.
type Validator struct {
	variants map[VariantID]*variant
	eval     *constraints.Evaluator
}

// New composes, resolves, and compiles all document variants. Any failure is
// an authoring error in the embedded schema sources and should abort startup.
func New() (*Validator, error) {
	docs, err := buildSchemaDocuments()
	if err != nil {
		return nil, err
	}

	variants := make(map[VariantID]*variant, len(docs))
	for id, doc := range docs {
		schema, err := compileSchema(id, doc)
		if err != nil {
			return nil, err
		}
		variants[id] = &variant{schema: schema, doc: doc}
	}

	return &Validator{
		variants: variants,
		eval:     constraints.New(nil),
	}, nil
}

// ValidateOption adjusts a single ValidateManifest call.
type ValidateOption func(*validateConfig)

type validateConfig struct {
	variant VariantID
}

// WithManifestVersion3 validates against the manifest schema with the
// version ceiling raised to 3 instead of the unconstrained base.
func WithManifestVersion3() ValidateOption {
	return func(c *validateConfig) {
		c.variant = VariantManifestV3
	}
}

// ValidateManifest validates an extension manifest document. A malformed
// document is not an error: it yields Valid=false with diagnostics. The
// returned error covers operational failures only, such as a document that
// cannot be represented as JSON.
func (v *Validator) ValidateManifest(doc map[string]any, opts ...ValidateOption) (*Result, error) {
	cfg := validateConfig{variant: VariantManifest}
	for _, opt := range opts {
		opt(&cfg)
	}
	return v.validate(cfg.variant, doc)
}

// ValidateStaticTheme validates a static theme manifest.
func (v *Validator) ValidateStaticTheme(doc map[string]any) (*Result, error) {
	return v.validate(VariantTheme, doc)
}

// ValidateLanguagePack validates a language pack manifest.
func (v *Validator) ValidateLanguagePack(doc map[string]any) (*Result, error) {
	return v.validate(VariantLangpack, doc)
}

// ValidateDictionary validates a dictionary manifest.
func (v *Validator) ValidateDictionary(doc map[string]any) (*Result, error) {
	return v.validate(VariantDictionary, doc)
}

// ValidateLocaleMessages validates a locale messages document.
func (v *Validator) ValidateLocaleMessages(doc map[string]any) (*Result, error) {
	return v.validate(VariantMessages, doc)
}

// Variants returns the ids of every compiled variant.
func (v *Validator) Variants() []VariantID {
	out := make([]VariantID, 0, len(v.variants))
	for id := range v.variants {
		out = append(out, id)
	}
	return out
}

func (v *Validator) validate(id VariantID, doc map[string]any) (*Result, error) {
	variant, ok := v.variants[id]
	if !ok {
		return nil, fmt.Errorf("validator: unknown variant %q", id)
	}

	instance, err := normalizeDocument(doc)
	if err != nil {
		return nil, err
	}

	var diagnostics []Diagnostic
	if err := variant.schema.Validate(instance); err != nil {
		diagnostics = append(diagnostics, engineIssues(err)...)
	}
	diagnostics = append(diagnostics, v.eval.Check(variant.doc, doc)...)

	valid := true
	for _, d := range diagnostics {
		if d.Severity == severity.SeverityError {
			valid = false
			break
		}
	}
	return &Result{Valid: valid, Variant: id, Diagnostics: diagnostics}, nil
}
