// Package compose derives specialized schema documents from a shared base
// via structural patching, without duplicating the base.
//
// A schema source is a JSON-like tree of maps, slices and scalars. A
// distinguished subset of nodes are patch directives, authored as
//
//	$merge:
//	  source: "#/$defs/ManifestBase"
//	  with:
//	    additionalProperties: false
//
// Parse converts raw trees into a tagged representation (*Directive for
// directive nodes, plain values otherwise) so that later stages never have
// to re-recognize magic keys structurally. Resolve replaces each directive
// with the deep patch of its (copied) source subtree and its override.
//
// All operations are pure: inputs are never mutated and repeated composition
// with identical inputs yields structurally identical output, which lets
// several document variants be derived from the same base material.
package compose
