// Package validator validates browser extension documents against versioned
// manifest schemas.
//
// Six document variants are supported: the unconstrained base manifest, the
// manifest with generation 3 enabled, static themes, language packs,
// dictionaries, and locale messages. All variants are composed from embedded
// schema sources at startup and compiled exactly once; a Validator is
// immutable and safe for concurrent use.
//
// Structural matching is delegated to a JSON Schema engine. On top of it,
// version-gating annotations (min_manifest_version, max_manifest_version,
// deprecated) are evaluated against the document's own declared
// manifest_version, so a single schema describes every manifest generation.
//
// Basic usage:
//
//	v, err := validator.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := v.ValidateManifest(doc)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, d := range result.Diagnostics {
//	    fmt.Println(d.String())
//	}
//
// Or with functional options through the shared validator:
//
//	result, err := validator.ValidateWithOptions(
//	    validator.WithFilePath("manifest.json"),
//	    validator.WithKind(validator.VariantTheme),
//	)
//
// Malformed documents are data, not errors: they produce a Result with
// Valid=false and a non-empty diagnostic list. Errors are reserved for
// misconfiguration and for documents that cannot be represented as JSON.
package validator
