// Package severity provides severity level constants and utilities
// for issues reported by the validator and compat packages.
//
// The severity levels are ordered from least to most severe:
// Info < Warning < Error
package severity

import "encoding/json"

// Severity indicates the severity level of an issue found during document
// validation or compatibility-table linting.
type Severity int

const (
	// SeverityError indicates a violation that makes the document invalid.
	SeverityError Severity = iota

	// SeverityWarning indicates a problem that does not invalidate the
	// document but should be addressed, such as a contradictory bound pair
	// in a compatibility table.
	SeverityWarning

	// SeverityInfo indicates informational messages about processing choices.
	SeverityInfo
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the severity as its string name.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// MarshalYAML encodes the severity as its string name.
func (s Severity) MarshalYAML() (any, error) {
	return s.String(), nil
}
