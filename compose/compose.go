package compose

import (
	"fmt"
	"sort"
	"strings"
)

// directiveKey is the authoring form of a patch directive inside schema
// sources. Parse replaces nodes carrying it with *Directive values; nothing
// downstream of Parse matches on the key itself.
const directiveKey = "$merge"

// Directive is a tagged patch-directive node: a reference to a base subtree
// and a structural override to apply to a copy of it.
type Directive struct {
	// Source references the base subtree to patch, e.g. "#/$defs/ManifestBase".
	Source string
	// With is the structural override merged over the source subtree.
	With map[string]any
}

// SourceLookup resolves a directive source reference to the subtree it
// names. Implementations return an error for unknown references; that is an
// authoring error and surfaces at composition time, before any document is
// validated.
type SourceLookup func(ref string) (map[string]any, error)

// Parse converts a raw schema tree into its tagged form: maps containing a
// $merge node become *Directive values, everything else is copied as-is.
// The input is never mutated.
func Parse(raw any) (any, error) {
	switch node := raw.(type) {
	case map[string]any:
		if d, ok := node[directiveKey]; ok {
			if len(node) != 1 {
				return nil, fmt.Errorf("compose: %s node must not carry sibling keys, found %s", directiveKey, siblingKeys(node))
			}
			return parseDirective(d)
		}
		out := make(map[string]any, len(node))
		for k, v := range node {
			parsed, err := Parse(v)
			if err != nil {
				return nil, err
			}
			out[k] = parsed
		}
		return out, nil

	case []any:
		out := make([]any, len(node))
		for i, v := range node {
			parsed, err := Parse(v)
			if err != nil {
				return nil, err
			}
			out[i] = parsed
		}
		return out, nil

	default:
		return raw, nil
	}
}

// parseDirective validates and converts the body of a $merge node.
func parseDirective(raw any) (*Directive, error) {
	body, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("compose: %s body must be a mapping, got %T", directiveKey, raw)
	}

	source, ok := body["source"].(string)
	if !ok || source == "" {
		return nil, fmt.Errorf("compose: %s requires a non-empty string source", directiveKey)
	}

	with := map[string]any{}
	if rawWith, present := body["with"]; present {
		m, isMap := rawWith.(map[string]any)
		if !isMap {
			return nil, fmt.Errorf("compose: %s with must be a mapping, got %T", directiveKey, rawWith)
		}
		// The override may itself contain directives; tag them now so
		// Resolve sees *Directive nodes instead of raw $merge maps.
		parsed, err := Parse(m)
		if err != nil {
			return nil, err
		}
		with, isMap = parsed.(map[string]any)
		if !isMap {
			return nil, fmt.Errorf("compose: %s with must not itself be a directive", directiveKey)
		}
	}

	return &Directive{Source: source, With: with}, nil
}

// Resolve replaces every directive in node with the deep patch of its looked
// up source subtree and its override, recursively. Directives nested inside
// a directive's override are resolved as well. The input tree is never
// mutated; the result shares no mutable state with it.
func Resolve(node any, lookup SourceLookup) (any, error) {
	switch n := node.(type) {
	case *Directive:
		source, err := lookup(n.Source)
		if err != nil {
			return nil, fmt.Errorf("compose: cannot resolve %q: %w", n.Source, err)
		}
		merged := DeepPatch(source, n.With)
		return Resolve(merged, lookup)

	case map[string]any:
		out := make(map[string]any, len(n))
		for k, v := range n {
			resolved, err := Resolve(v, lookup)
			if err != nil {
				return nil, err
			}
			out[k] = resolved
		}
		return out, nil

	case []any:
		out := make([]any, len(n))
		for i, v := range n {
			resolved, err := Resolve(v, lookup)
			if err != nil {
				return nil, err
			}
			out[i] = resolved
		}
		return out, nil

	default:
		return node, nil
	}
}

// DeepPatch merges patch over base and returns a new tree.
//
// Ordinary keys follow the override rules: nested objects are merged
// recursively, every other patch value replaces the base value. Neither
// input is mutated, and patching the same inputs twice yields structurally
// identical results.
func DeepPatch(base, patch map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(patch))
	for k, v := range base {
		out[k] = DeepCopy(v)
	}
	for k, patchVal := range patch {
		baseVal, exists := out[k]
		if exists {
			baseMap, baseIsMap := baseVal.(map[string]any)
			patchMap, patchIsMap := patchVal.(map[string]any)
			if baseIsMap && patchIsMap {
				out[k] = DeepPatch(baseMap, patchMap)
				continue
			}
		}
		out[k] = DeepCopy(patchVal)
	}
	return out
}

// DeepCopy recursively copies a schema tree. Directive nodes are copied
// structurally so a resolved variant never aliases the parsed sources.
func DeepCopy(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = DeepCopy(item)
		}
		return out

	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = DeepCopy(item)
		}
		return out

	case *Directive:
		with, _ := DeepCopy(val.With).(map[string]any)
		return &Directive{Source: val.Source, With: with}

	default:
		// Scalars are immutable, return as-is.
		return val
	}
}

// LookupIn returns a SourceLookup resolving "#/..."-style JSON pointers
// against doc. This is the usual way directives reference the base schema
// they specialize.
func LookupIn(doc map[string]any) SourceLookup {
	return func(ref string) (map[string]any, error) {
		if !strings.HasPrefix(ref, "#/") {
			return nil, fmt.Errorf("unsupported source reference %q", ref)
		}
		node := any(doc)
		for _, segment := range strings.Split(ref[2:], "/") {
			segment = strings.ReplaceAll(segment, "~1", "/")
			segment = strings.ReplaceAll(segment, "~0", "~")
			obj, ok := node.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("source reference %q does not name a mapping", ref)
			}
			node, ok = obj[segment]
			if !ok {
				return nil, fmt.Errorf("source reference %q not found", ref)
			}
		}
		target, ok := node.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("source reference %q does not name a mapping", ref)
		}
		return target, nil
	}
}

// siblingKeys renders the non-directive keys of a malformed directive node
// for error messages, in stable order.
func siblingKeys(node map[string]any) string {
	keys := make([]string, 0, len(node)-1)
	for k := range node {
		if k != directiveKey {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return fmt.Sprintf("%v", keys)
}
