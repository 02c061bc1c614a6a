// Package compat answers API availability questions for namespaced
// extension-API members under a given manifest generation.
//
// The package has three layers:
//
//   - bound arithmetic: pure resolution rules over optional integer version
//     bounds (IntersectMax, UnionMin, Range.Contains)
//   - the compatibility table: per-namespace entries with optional bounds,
//     per-member overrides, a set of temporary members, and a map of
//     deprecated members
//   - the oracle: HasAPI, IsTemporary, IsDeprecated and the version-window
//     queries, evaluated against a table (the shipped one by default)
//
// All oracle operations are pure functions of their arguments: they never
// fail and never block, so a lint pass consulting them cannot be derailed by
// an unknown namespace or a malformed bound. Unknown pairs resolve to false
// or to an unbounded window.
//
// The shipped table is embedded and built once; it is immutable afterwards
// and safe for concurrent reads. Callers can load override tables with
// ParseTable or LoadTable for testing against synthetic namespaces.
package compat
