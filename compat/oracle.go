package compat

// DefaultManifestVersion is the generation assumed when no manifest metadata
// is available at all.
const DefaultManifestVersion = 2

// Metadata carries the manifest fields relevant to availability resolution.
// Three states are distinguishable and resolve differently: a nil *Metadata,
// a Metadata with a nil ManifestVersion, and a fully populated one. See
// EffectiveManifestVersion.
type Metadata struct {
	ManifestVersion *int `yaml:"manifest_version,omitempty" json:"manifest_version,omitempty"`
}

// EffectiveManifestVersion resolves the manifest version to evaluate against.
//
// When md is nil (no metadata at all), the default version 2 is assumed.
// When md is non-nil but its ManifestVersion is absent, nil is returned with
// no default substitution. The asymmetry is deliberate and relied upon by
// callers: "no metadata" means a conventional manifest, while "metadata
// without a version" means the caller knowingly passed an incomplete
// document and gets no version to match bounded entries against.
func EffectiveManifestVersion(md *Metadata) *int {
	if md == nil {
		v := DefaultManifestVersion
		return &v
	}
	return md.ManifestVersion
}

// HasAPI reports whether namespace.member is usable under the manifest
// generation described by md.
//
// Resolution order: temporary members are available unconditionally; unknown
// namespaces and unlisted members are not available; otherwise the effective
// bound is the union of the minima and the intersection of the maxima of the
// namespace and member entries, checked against the effective manifest
// version. A member that is also deprecated resolves through this same path.
func (t *Table) HasAPI(namespace, member string, md *Metadata) bool {
	if t.IsTemporary(namespace, member) {
		return true
	}
	ns := t.Namespaces[namespace]
	if ns == nil {
		return false
	}
	m, ok := ns.Members[member]
	if !ok {
		return false
	}

	var memberRange Range
	if m != nil {
		memberRange = m.Range
	}
	min := UnionMin(ns.Min, memberRange.Min)
	max := IntersectMax(ns.Max, memberRange.Max)

	v := EffectiveManifestVersion(md)
	if v == nil {
		// No version to compare: only an unconstrained window matches.
		return min == 0 && max == nil
	}
	return *v >= min && (max == nil || *v <= *max)
}

// IsTemporary reports whether namespace.member is in the temporary set:
// available unconditionally regardless of version bounds. Unknown pairs are
// false.
func (t *Table) IsTemporary(namespace, member string) bool {
	_, ok := t.temporary[apiKey(namespace, member)]
	return ok
}

// IsDeprecated reports whether namespace.member is flagged deprecated for
// the manifest generation described by md. An entry with no bounds is
// deprecated for all versions.
func (t *Table) IsDeprecated(namespace, member string, md *Metadata) bool {
	entry, ok := t.Deprecated[apiKey(namespace, member)]
	if !ok {
		return false
	}
	v := EffectiveManifestVersion(md)
	if v == nil {
		return !entry.IsBounded()
	}
	return entry.Contains(*v)
}

// MinRequiredVersion returns the lowest manifest version under which
// namespace.member is available: the union of the namespace and member
// minima. Zero means no floor; unknown pairs have no floor. The metadata
// argument is accepted for call-site symmetry with HasAPI and unused, since
// only bounds matter here.
func (t *Table) MinRequiredVersion(namespace, member string, _ *Metadata) int {
	ns := t.Namespaces[namespace]
	if ns == nil {
		return 0
	}
	m, ok := ns.Members[member]
	if !ok {
		return UnionMin(ns.Min, nil)
	}
	var memberMin *int
	if m != nil {
		memberMin = m.Min
	}
	return UnionMin(ns.Min, memberMin)
}

// MaxSupportedVersion returns the highest manifest version under which
// namespace.member is available: the intersection of the namespace and
// member maxima. The second return value is false when the window is
// unbounded above. The metadata argument is accepted for call-site symmetry
// with HasAPI and unused.
func (t *Table) MaxSupportedVersion(namespace, member string, _ *Metadata) (int, bool) {
	ns := t.Namespaces[namespace]
	if ns == nil {
		return 0, false
	}
	var memberMax *int
	if m, ok := ns.Members[member]; ok && m != nil {
		memberMax = m.Max
	}
	max := IntersectMax(ns.Max, memberMax)
	if max == nil {
		return 0, false
	}
	return *max, true
}

// HasAPI consults the shipped compatibility table.
func HasAPI(namespace, member string, md *Metadata) bool {
	return Default().HasAPI(namespace, member, md)
}

// IsTemporary consults the shipped compatibility table.
func IsTemporary(namespace, member string) bool {
	return Default().IsTemporary(namespace, member)
}

// IsDeprecated consults the shipped compatibility table.
func IsDeprecated(namespace, member string, md *Metadata) bool {
	return Default().IsDeprecated(namespace, member, md)
}

// MinRequiredVersion consults the shipped compatibility table.
func MinRequiredVersion(namespace, member string, md *Metadata) int {
	return Default().MinRequiredVersion(namespace, member, md)
}

// MaxSupportedVersion consults the shipped compatibility table.
func MaxSupportedVersion(namespace, member string, md *Metadata) (int, bool) {
	return Default().MaxSupportedVersion(namespace, member, md)
}
