package validator

import (
	"embed"
	"fmt"

	"go.yaml.in/yaml/v4"

	"github.com/wextkit/manifesttools/compose"
)

//go:embed schemas/*.yaml
var schemaFS embed.FS

// VariantID identifies one compiled document schema.
type VariantID string

const (
	// VariantManifest is the unconstrained base manifest schema.
	VariantManifest VariantID = "manifest"
	// VariantManifestV3 is the base manifest with the version ceiling raised to 3.
	VariantManifestV3 VariantID = "manifest-v3"
	// VariantTheme is the static theme manifest schema.
	VariantTheme VariantID = "theme"
	// VariantLangpack is the language pack manifest schema.
	VariantLangpack VariantID = "langpack"
	// VariantDictionary is the dictionary manifest schema.
	VariantDictionary VariantID = "dictionary"
	// VariantMessages is the locale messages schema.
	VariantMessages VariantID = "messages"
)

// patchedVariants maps each derived variant to its patch source file. The
// patch is resolved against the base and then laid over the full base
// document, so shared $defs stay available to every variant.
var patchedVariants = map[VariantID]string{
	VariantManifestV3: "schemas/manifest-v3.yaml",
	VariantTheme:      "schemas/theme.yaml",
	VariantLangpack:   "schemas/langpack.yaml",
	VariantDictionary: "schemas/dictionary.yaml",
}

// loadSchemaSource reads one embedded schema source into tree form.
func loadSchemaSource(name string) (map[string]any, error) {
	data, err := schemaFS.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("validator: missing schema source %s: %w", name, err)
	}
	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("validator: malformed schema source %s: %w", name, err)
	}
	return tree, nil
}

// buildSchemaDocuments composes the resolved schema document for every
// variant. Errors here are authoring errors and abort initialization.
func buildSchemaDocuments() (map[VariantID]map[string]any, error) {
	base, err := loadSchemaSource("schemas/manifest.yaml")
	if err != nil {
		return nil, err
	}

	docs := map[VariantID]map[string]any{
		VariantManifest: base,
	}

	lookup := compose.LookupIn(base)
	for id, source := range patchedVariants {
		raw, err := loadSchemaSource(source)
		if err != nil {
			return nil, err
		}
		parsed, err := compose.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("validator: %s: %w", source, err)
		}
		resolved, err := compose.Resolve(parsed, lookup)
		if err != nil {
			return nil, fmt.Errorf("validator: %s: %w", source, err)
		}
		patch, ok := resolved.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("validator: %s did not resolve to a mapping", source)
		}
		docs[id] = compose.DeepPatch(base, patch)
	}

	messages, err := loadSchemaSource("schemas/messages.yaml")
	if err != nil {
		return nil, err
	}
	docs[VariantMessages] = messages

	return docs, nil
}
