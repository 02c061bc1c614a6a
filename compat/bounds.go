package compat

// Range is an optional pair of inclusive manifest-version bounds. A nil side
// means unconstrained in that direction. A range whose Min exceeds its Max is
// not an authoring error here: it simply contains no version.
type Range struct {
	Min *int `yaml:"min_manifest_version,omitempty" json:"min_manifest_version,omitempty"`
	Max *int `yaml:"max_manifest_version,omitempty" json:"max_manifest_version,omitempty"`
}

// Contains reports whether version falls inside the range. An absent bound
// never excludes a version.
func (r Range) Contains(version int) bool {
	if r.Min != nil && version < *r.Min {
		return false
	}
	if r.Max != nil && version > *r.Max {
		return false
	}
	return true
}

// IsBounded reports whether the range constrains at least one direction.
func (r Range) IsBounded() bool {
	return r.Min != nil || r.Max != nil
}

// IntersectMax resolves two optional maxima to the more restrictive (lower)
// ceiling. Returns nil (unbounded) when neither is present, and the single
// present one when only one exists.
func IntersectMax(a, b *int) *int {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case *a < *b:
		return a
	default:
		return b
	}
}

// UnionMin resolves two optional minima to the more restrictive (higher)
// floor. Returns 0 (no floor) when neither is present.
func UnionMin(a, b *int) int {
	min := 0
	if a != nil {
		min = *a
	}
	if b != nil && *b > min {
		min = *b
	}
	return min
}
