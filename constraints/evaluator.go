package constraints

import (
	"strconv"
	"strings"

	"github.com/wextkit/manifesttools/internal/issues"
)

// maxNestingDepth caps the schema walk to protect against pathological or
// cyclic schema references.
const maxNestingDepth = 100

// Evaluator walks a resolved schema document alongside an instance and
// applies the registered checks wherever a schema node carries one of their
// keywords. Each annotation is evaluated once per matching instance value.
type Evaluator struct {
	checks []Check
}

// New creates an Evaluator with the three manifest-version checks. A nil
// registry selects DefaultRegistry for the deprecated-properties check.
func New(registry map[string]string) *Evaluator {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &Evaluator{
		checks: []Check{
			minVersionCheck{},
			maxVersionCheck{},
			deprecatedCheck{registry: registry},
		},
	}
}

// Check evaluates all annotations in schema against doc and returns the
// violations found. It never fails: unknown structures are skipped, since
// structural validity is the schema engine's concern.
func (e *Evaluator) Check(schema map[string]any, doc any) []issues.Issue {
	root, _ := doc.(map[string]any)
	var found []issues.Issue
	e.walk(schema, schema, doc, root, "", 0, &found)
	return found
}

// walk descends schema and instance together. schemaRoot is retained for
// resolving local $ref pointers.
func (e *Evaluator) walk(schemaRoot, schemaNode map[string]any, instance any, docRoot map[string]any, path string, depth int, found *[]issues.Issue) {
	if depth > maxNestingDepth {
		return
	}

	ctx := Context{Root: docRoot, Path: path}
	for _, check := range e.checks {
		operand, ok := schemaNode[check.Keyword()]
		if !ok {
			continue
		}
		if issue := check.Evaluate(operand, ctx); issue != nil {
			*found = append(*found, *issue)
		}
	}

	// Annotations may sit alongside a $ref; evaluate them first, then
	// follow the reference for the node's structure.
	if ref, ok := schemaNode["$ref"].(string); ok {
		if target := resolveLocalRef(schemaRoot, ref); target != nil {
			e.walk(schemaRoot, target, instance, docRoot, path, depth+1, found)
		}
		return
	}

	// Only allOf branches are walked: they apply conjunctively, like the
	// node itself. anyOf/oneOf branches are alternatives and cannot carry
	// version annotations meaningfully.
	if branches, ok := schemaNode["allOf"].([]any); ok {
		for _, branch := range branches {
			if sub, ok := branch.(map[string]any); ok {
				e.walk(schemaRoot, sub, instance, docRoot, path, depth+1, found)
			}
		}
	}

	switch inst := instance.(type) {
	case map[string]any:
		props, _ := schemaNode["properties"].(map[string]any)
		for name, sub := range props {
			subSchema, ok := sub.(map[string]any)
			if !ok {
				continue
			}
			value, present := inst[name]
			if !present {
				continue
			}
			e.walk(schemaRoot, subSchema, value, docRoot, path+"/"+escapePointer(name), depth+1, found)
		}
		if extra, ok := schemaNode["additionalProperties"].(map[string]any); ok {
			for name, value := range inst {
				if _, declared := props[name]; declared {
					continue
				}
				e.walk(schemaRoot, extra, value, docRoot, path+"/"+escapePointer(name), depth+1, found)
			}
		}

	case []any:
		if itemSchema, ok := schemaNode["items"].(map[string]any); ok {
			for i, value := range inst {
				e.walk(schemaRoot, itemSchema, value, docRoot, path+"/"+strconv.Itoa(i), depth+1, found)
			}
		}
	}
}

// resolveLocalRef resolves a "#/..."-style JSON pointer against the schema
// root. External references are not followed; the engine owns those.
func resolveLocalRef(schemaRoot map[string]any, ref string) map[string]any {
	if !strings.HasPrefix(ref, "#/") {
		return nil
	}
	node := any(schemaRoot)
	for _, segment := range strings.Split(ref[2:], "/") {
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		obj, ok := node.(map[string]any)
		if !ok {
			return nil
		}
		node, ok = obj[segment]
		if !ok {
			return nil
		}
	}
	target, _ := node.(map[string]any)
	return target
}

func escapePointer(segment string) string {
	segment = strings.ReplaceAll(segment, "~", "~0")
	return strings.ReplaceAll(segment, "/", "~1")
}

