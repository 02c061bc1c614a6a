package constraints

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/wextkit/manifesttools/internal/issues"
	"github.com/wextkit/manifesttools/internal/severity"
)

// Annotation keywords recognized on schema nodes.
const (
	KeywordMinManifestVersion = "min_manifest_version"
	KeywordMaxManifestVersion = "max_manifest_version"
	KeywordDeprecated         = "deprecated"
)

// DefaultManifestVersion is assumed when a document does not declare a
// numeric manifest_version at its root.
const DefaultManifestVersion = 2

// Context carries everything a check needs beyond the annotation operand:
// the document root (for the declared manifest version) and the instance
// path of the value under test.
type Context struct {
	// Root is the document's root object. May be nil for non-object
	// documents; checks then fall back to the default manifest version.
	Root map[string]any
	// Path is the JSON pointer to the instance value, e.g. "/background/scripts".
	Path string
}

// Check evaluates one annotation keyword against an instance value. A nil
// result means the check passed.
type Check interface {
	// Keyword returns the schema keyword this check is registered for.
	Keyword() string
	// Evaluate applies the check. operand is the keyword's value in the
	// schema node (e.g. the integer bound).
	Evaluate(operand any, ctx Context) *issues.Issue
}

// DocumentVersion returns the manifest version a document declares at its
// root, or DefaultManifestVersion when the field is absent or non-numeric.
func DocumentVersion(root map[string]any) int {
	if root == nil {
		return DefaultManifestVersion
	}
	if v, ok := intValue(root["manifest_version"]); ok {
		return v
	}
	return DefaultManifestVersion
}

// minVersionCheck fails when the document's manifest version is below the
// annotated floor.
type minVersionCheck struct{}

func (minVersionCheck) Keyword() string { return KeywordMinManifestVersion }

func (minVersionCheck) Evaluate(operand any, ctx Context) *issues.Issue {
	bound, ok := intValue(operand)
	if !ok {
		return nil
	}
	if DocumentVersion(ctx.Root) >= bound {
		return nil
	}
	return &issues.Issue{
		Keyword:  issues.KeywordUnsupported,
		Path:     ctx.Path,
		Message:  fmt.Sprintf("property requires manifest version >= %d", bound),
		Severity: severity.SeverityError,
	}
}

// maxVersionCheck fails when the document's manifest version is above the
// annotated ceiling.
type maxVersionCheck struct{}

func (maxVersionCheck) Keyword() string { return KeywordMaxManifestVersion }

func (maxVersionCheck) Evaluate(operand any, ctx Context) *issues.Issue {
	bound, ok := intValue(operand)
	if !ok {
		return nil
	}
	if DocumentVersion(ctx.Root) <= bound {
		return nil
	}
	return &issues.Issue{
		Keyword:  issues.KeywordUnsupported,
		Path:     ctx.Path,
		Message:  fmt.Sprintf("property is only supported for manifest versions <= %d", bound),
		Severity: severity.SeverityError,
	}
}

// deprecatedCheck fails for properties whose path is listed in the
// deprecated-properties registry. Annotated but unregistered paths pass, so
// a schema can mark future deprecations without failing current documents.
type deprecatedCheck struct {
	registry map[string]string
}

func (deprecatedCheck) Keyword() string { return KeywordDeprecated }

func (c deprecatedCheck) Evaluate(operand any, ctx Context) *issues.Issue {
	if enabled, ok := operand.(bool); ok && !enabled {
		return nil
	}
	message, ok := c.registry[registryKey(ctx.Path)]
	if !ok {
		return nil
	}
	return &issues.Issue{
		Keyword:  issues.KeywordDeprecated,
		Path:     ctx.Path,
		Message:  message,
		Severity: severity.SeverityError,
	}
}

// DefaultRegistry returns the shipped deprecated-properties registry,
// keyed by dotted property path with array indices stripped.
func DefaultRegistry() map[string]string {
	return map[string]string{
		"applications":          "use browser_specific_settings instead of applications",
		"background.persistent": "persistent background pages are no longer supported",
	}
}

// registryKey normalizes an instance path for registry lookup: leading
// slash dropped, array indices stripped, segments joined with dots.
func registryKey(path string) string {
	segments := strings.Split(strings.TrimPrefix(path, "/"), "/")
	kept := segments[:0]
	for _, s := range segments {
		if s == "" || isIndex(s) {
			continue
		}
		kept = append(kept, s)
	}
	return strings.Join(kept, ".")
}

func isIndex(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// intValue coerces the numeric representations that JSON and YAML decoding
// produce into an int.
func intValue(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
		return 0, false
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	default:
		return 0, false
	}
}
