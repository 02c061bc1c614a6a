// Package issues provides a unified diagnostic type for document validation
// problems.
package issues

import (
	"fmt"

	"github.com/wextkit/manifesttools/internal/severity"
)

// Well-known diagnostic keywords. Structural keywords (type, required,
// additionalProperties, ...) come straight from the schema engine; the
// keywords below are produced by the manifest-version constraint checks and
// by schema composition.
const (
	// KeywordUnsupported marks a min/max manifest-version violation.
	KeywordUnsupported = "unsupported"
	// KeywordDeprecated marks use of a deprecated manifest property.
	KeywordDeprecated = "deprecated"
	// KeywordComposition is reserved for internal artifacts of patch
	// resolution. Diagnostics carrying it are stripped before results are
	// returned to callers.
	KeywordComposition = "composition"
)

// Issue represents a single problem found during document validation.
type Issue struct {
	// Keyword identifies the violated rule, e.g. "required", "unsupported".
	Keyword string `json:"keyword,omitempty" yaml:"keyword,omitempty"`
	// Path is the JSON pointer to the problematic field (e.g. "/theme/images").
	Path string `json:"path" yaml:"path"`
	// Message is a human-readable description of the issue.
	Message string `json:"message" yaml:"message"`
	// Severity indicates the severity level of the issue.
	Severity severity.Severity `json:"severity" yaml:"severity"`
	// Value is the problematic value (optional).
	Value any `json:"value,omitempty" yaml:"value,omitempty"`
}

// String returns a formatted string representation of the issue.
// Uses different symbols based on severity level:
// - "✗" for Error severity
// - "⚠" for Warning severity
// - "ℹ" for Info severity
func (i Issue) String() string {
	var symbol string
	switch i.Severity {
	case severity.SeverityError:
		symbol = "✗"
	case severity.SeverityWarning:
		symbol = "⚠"
	case severity.SeverityInfo:
		symbol = "ℹ"
	default:
		symbol = "?"
	}

	path := i.Path
	if path == "" {
		path = "/"
	}
	if i.Keyword != "" {
		return fmt.Sprintf("%s %s [%s]: %s", symbol, path, i.Keyword, i.Message)
	}
	return fmt.Sprintf("%s %s: %s", symbol, path, i.Message)
}

// IsArtifact reports whether the issue is an internal composition artifact
// that must never reach callers.
func (i Issue) IsArtifact() bool {
	return i.Keyword == KeywordComposition
}
