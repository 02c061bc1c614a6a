// Package manifesttools provides tools for validating browser-extension
// manifest documents against versioned schemas and for answering API
// availability questions per manifest generation.
//
// The library consists of four primary packages:
//
//   - compat: per-namespace API compatibility table and availability oracle
//   - compose: schema composition (deriving document variants from a base)
//   - constraints: manifest-version keyword evaluation
//   - validator: compiled document validators with structured diagnostics
//
// # Quick Start
//
// Validate a manifest document:
//
//	import "github.com/wextkit/manifesttools/validator"
//
//	v, err := validator.New()
//	if err != nil {
//		log.Fatal(err)
//	}
//	result, err := v.ValidateManifest(doc)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if !result.Valid {
//		for _, d := range result.Diagnostics {
//			fmt.Printf("%s %s: %s\n", d.Keyword, d.Path, d.Message)
//		}
//	}
//
// Query API availability:
//
//	import "github.com/wextkit/manifesttools/compat"
//
//	v3 := 3
//	ok := compat.HasAPI("scripting", "executeScript", &compat.Metadata{ManifestVersion: &v3})
//
// # Document kinds
//
// The validator compiles one immutable schema variant per document kind:
// base manifest (optionally capped at manifest version 3), static theme,
// language pack, dictionary, and locale messages. All variants are derived
// from a single authoritative base schema via structural composition.
package manifesttools
