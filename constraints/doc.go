// Package constraints evaluates manifest-version annotations attached to
// schema nodes: min_manifest_version, max_manifest_version and deprecated.
//
// The annotations extend generic structural matching with version gating.
// They are compared against the manifest version the document itself
// declares at its root (defaulting to 2 when the field is absent), so every
// check receives an explicit Context carrying the document root and the
// instance path. Violations are reported with keyword "unsupported" (version
// gating) or "deprecated" (deprecated manifest properties).
//
// The deprecated annotation is path-scoped: a schema node may carry
// deprecated: true, but the check only fails when the instance path is
// listed in the deprecated-properties registry. Unregistered paths pass, so
// marking a property deprecated in a future schema revision cannot fail
// existing documents until a message is registered for it. This concerns
// manifest JSON fields and is distinct from the runtime API-member
// deprecation handled by the compat package.
package constraints
