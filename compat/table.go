package compat

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"go.yaml.in/yaml/v4"

	"github.com/wextkit/manifesttools/internal/issues"
	"github.com/wextkit/manifesttools/internal/severity"
)

//go:embed tables/api-compat.yaml
var shippedTable []byte

// Member is a single API member entry. Its bounds, when present, narrow the
// owning namespace's bounds for that member.
type Member struct {
	Range `yaml:",inline"`
}

// Namespace groups related API members under optional shared version bounds.
type Namespace struct {
	Range   `yaml:",inline"`
	Members map[string]*Member `yaml:"members"`
}

// DeprecatedEntry marks a member as discouraged within an applicability
// window. An entry with no bounds is deprecated for all versions. A member
// listed here remains available through the normal resolution path;
// deprecation never removes availability.
type DeprecatedEntry struct {
	Range   `yaml:",inline"`
	Message string `yaml:"message,omitempty"`
}

// Table is the API compatibility table: namespaces with member entries, a
// set of unconditionally available temporary members, and deprecated-member
// windows. Tables are read-only after construction and safe for concurrent
// use.
type Table struct {
	Namespaces map[string]*Namespace       `yaml:"namespaces"`
	Temporary  []string                    `yaml:"temporary"`
	Deprecated map[string]*DeprecatedEntry `yaml:"deprecated"`

	temporary map[string]struct{}
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// Default returns the shipped compatibility table. The table is parsed once
// and shared; it must never be mutated.
func Default() *Table {
	defaultOnce.Do(func() {
		t, err := ParseTable(shippedTable)
		if err != nil {
			// The shipped table is process configuration, not user input.
			panic(fmt.Sprintf("compat: shipped table is invalid: %v", err))
		}
		defaultTable = t
	})
	return defaultTable
}

// ParseTable parses a compatibility table from YAML or JSON data.
func ParseTable(data []byte) (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("compat: failed to parse table: %w", err)
	}
	t.index()
	return &t, nil
}

// LoadTable reads and parses a compatibility table file (YAML or JSON).
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("compat: failed to read table: %w", err)
	}
	return ParseTable(data)
}

// index builds the temporary-member lookup set.
func (t *Table) index() {
	t.temporary = make(map[string]struct{}, len(t.Temporary))
	for _, name := range t.Temporary {
		t.temporary[name] = struct{}{}
	}
}

// apiKey returns the fully-qualified "namespace.member" key.
func apiKey(namespace, member string) string {
	return namespace + "." + member
}

// Lint performs a startup-time sanity pass over the table and reports
// authoring inconsistencies as warnings. Runtime resolution never consults
// these findings; contradictory bounds still resolve mechanically.
func (t *Table) Lint() []issues.Issue {
	var found []issues.Issue

	warnf := func(path, format string, args ...any) {
		found = append(found, issues.Issue{
			Path:     path,
			Message:  fmt.Sprintf(format, args...),
			Severity: severity.SeverityWarning,
		})
	}

	for nsName, ns := range t.Namespaces {
		if ns == nil {
			continue
		}
		if ns.Min != nil && ns.Max != nil && *ns.Min > *ns.Max {
			warnf(nsName, "namespace bounds are contradictory: min %d > max %d", *ns.Min, *ns.Max)
		}
		for mName, m := range ns.Members {
			if m == nil {
				continue
			}
			path := apiKey(nsName, mName)
			min := UnionMin(ns.Min, m.Min)
			max := IntersectMax(ns.Max, m.Max)
			if max != nil && min > *max {
				warnf(path, "effective bounds are contradictory: min %d > max %d", min, *max)
			}
		}
	}

	for name := range t.Deprecated {
		if !t.knownKey(name) {
			warnf(name, "deprecated entry does not match any listed member")
		}
	}
	for name := range t.temporary {
		if !t.knownKey(name) {
			warnf(name, "temporary entry does not match any listed member")
		}
	}

	return found
}

// knownKey reports whether a "namespace.member" key names a listed member.
func (t *Table) knownKey(key string) bool {
	for nsName, ns := range t.Namespaces {
		if ns == nil {
			continue
		}
		for mName := range ns.Members {
			if apiKey(nsName, mName) == key {
				return true
			}
		}
	}
	return false
}
