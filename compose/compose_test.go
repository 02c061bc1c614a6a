package compose

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"
)

// loadTree parses YAML into the map form schema sources use.
func loadTree(t *testing.T, src string) map[string]any {
	t.Helper()
	var tree map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(src), &tree))
	return tree
}

const baseSchema = `
$defs:
  ManifestBase:
    type: object
    properties:
      name:
        type: string
      version:
        type: string
    additionalProperties: true
  Icon:
    type: string
`

func baseLookup(t *testing.T) SourceLookup {
	base := loadTree(t, baseSchema)
	defs := base["$defs"].(map[string]any)
	return func(ref string) (map[string]any, error) {
		switch ref {
		case "#/$defs/ManifestBase":
			return defs["ManifestBase"].(map[string]any), nil
		case "#/$defs/Icon":
			return defs["Icon"].(map[string]any), nil
		default:
			return nil, assert.AnError
		}
	}
}

func TestParse(t *testing.T) {
	t.Run("plain nodes pass through", func(t *testing.T) {
		parsed, err := Parse(loadTree(t, `{type: object, properties: {a: {type: string}}}`))
		require.NoError(t, err)
		tree, ok := parsed.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "object", tree["type"])
	})

	t.Run("directive node becomes tagged", func(t *testing.T) {
		parsed, err := Parse(loadTree(t, `
root:
  $merge:
    source: "#/$defs/ManifestBase"
    with:
      additionalProperties: false
`))
		require.NoError(t, err)

		tree := parsed.(map[string]any)
		d, ok := tree["root"].(*Directive)
		require.True(t, ok, "expected a tagged directive node")
		assert.Equal(t, "#/$defs/ManifestBase", d.Source)
		assert.Equal(t, false, d.With["additionalProperties"])
	})

	t.Run("directive nested in an override is tagged", func(t *testing.T) {
		parsed, err := Parse(loadTree(t, `
$merge:
  source: "#/$defs/ManifestBase"
  with:
    properties:
      icon:
        $merge:
          source: "#/$defs/Icon"
`))
		require.NoError(t, err)

		outer, ok := parsed.(*Directive)
		require.True(t, ok)
		inner, ok := outer.With["properties"].(map[string]any)["icon"].(*Directive)
		require.True(t, ok, "expected the override's directive to be tagged")
		assert.Equal(t, "#/$defs/Icon", inner.Source)
	})

	t.Run("override that is itself a directive fails", func(t *testing.T) {
		_, err := Parse(loadTree(t, `
$merge:
  source: "#/$defs/ManifestBase"
  with:
    $merge:
      source: "#/$defs/Icon"
`))
		assert.Error(t, err)
	})

	t.Run("directive without source fails", func(t *testing.T) {
		_, err := Parse(loadTree(t, `{$merge: {with: {}}}`))
		assert.Error(t, err)
	})

	t.Run("directive with sibling keys fails", func(t *testing.T) {
		_, err := Parse(loadTree(t, `{$merge: {source: "#/$defs/Icon"}, stray: 1}`))
		assert.Error(t, err)
	})

	t.Run("directive with non-mapping body fails", func(t *testing.T) {
		_, err := Parse(loadTree(t, `{$merge: "nope"}`))
		assert.Error(t, err)
	})
}

func TestDeepPatch(t *testing.T) {
	t.Run("patch wins on conflicts and merges nested objects", func(t *testing.T) {
		base := loadTree(t, `
type: object
properties:
  name: {type: string}
  version: {type: string}
additionalProperties: true
`)
		patch := loadTree(t, `
properties:
  theme: {type: object}
additionalProperties: false
`)

		got := DeepPatch(base, patch)

		assert.Equal(t, false, got["additionalProperties"])
		props := got["properties"].(map[string]any)
		assert.Contains(t, props, "name")
		assert.Contains(t, props, "version")
		assert.Contains(t, props, "theme")
	})

	t.Run("inputs are never mutated", func(t *testing.T) {
		base := loadTree(t, `{properties: {name: {type: string}}, additionalProperties: true}`)
		patch := loadTree(t, `{additionalProperties: false}`)

		_ = DeepPatch(base, patch)

		assert.Equal(t, true, base["additionalProperties"])
		_, hasName := base["properties"].(map[string]any)["name"]
		assert.True(t, hasName)
	})

	t.Run("result does not alias the base", func(t *testing.T) {
		base := loadTree(t, `{properties: {name: {type: string}}}`)
		got := DeepPatch(base, map[string]any{})

		got["properties"].(map[string]any)["name"].(map[string]any)["type"] = "number"
		assert.Equal(t, "string", base["properties"].(map[string]any)["name"].(map[string]any)["type"])
	})

	t.Run("idempotent for identical inputs", func(t *testing.T) {
		base := loadTree(t, `
$defs:
  Theme: {type: object, properties: {images: {type: object}}}
  Other: {type: object, properties: {x: {type: string}}}
`)
		patch := loadTree(t, `
$defs:
  Theme: {additionalProperties: false}
`)

		first := DeepPatch(base, patch)
		second := DeepPatch(base, patch)
		assert.Equal(t, first, second)

		// Only the patched type changes; siblings stay identical to the base.
		defs := first["$defs"].(map[string]any)
		baseDefs := base["$defs"].(map[string]any)
		assert.Equal(t, baseDefs["Other"], defs["Other"])
		assert.Equal(t, false, defs["Theme"].(map[string]any)["additionalProperties"])
	})
}

func TestResolve(t *testing.T) {
	t.Run("directive resolves to patched source", func(t *testing.T) {
		parsed, err := Parse(loadTree(t, `
$merge:
  source: "#/$defs/ManifestBase"
  with:
    properties:
      theme:
        type: object
    additionalProperties: false
`))
		require.NoError(t, err)

		resolved, err := Resolve(parsed, baseLookup(t))
		require.NoError(t, err)

		tree := resolved.(map[string]any)
		assert.Equal(t, "object", tree["type"])
		assert.Equal(t, false, tree["additionalProperties"])
		props := tree["properties"].(map[string]any)
		assert.Contains(t, props, "name")
		assert.Contains(t, props, "theme")
	})

	t.Run("nested directive inside override resolves", func(t *testing.T) {
		parsed, err := Parse(loadTree(t, `
$merge:
  source: "#/$defs/ManifestBase"
  with:
    properties:
      icon:
        $merge:
          source: "#/$defs/Icon"
          with:
            format: uri
`))
		require.NoError(t, err)

		resolved, err := Resolve(parsed, baseLookup(t))
		require.NoError(t, err)

		icon := resolved.(map[string]any)["properties"].(map[string]any)["icon"].(map[string]any)
		assert.Equal(t, "string", icon["type"])
		assert.Equal(t, "uri", icon["format"])
	})

	t.Run("directives nested two levels deep resolve", func(t *testing.T) {
		parsed, err := Parse(loadTree(t, `
$merge:
  source: "#/$defs/ManifestBase"
  with:
    properties:
      outer:
        $merge:
          source: "#/$defs/ManifestBase"
          with:
            properties:
              icon:
                $merge:
                  source: "#/$defs/Icon"
                  with:
                    format: uri
`))
		require.NoError(t, err)

		resolved, err := Resolve(parsed, baseLookup(t))
		require.NoError(t, err)

		outer := resolved.(map[string]any)["properties"].(map[string]any)["outer"].(map[string]any)
		assert.Equal(t, "object", outer["type"])
		icon := outer["properties"].(map[string]any)["icon"].(map[string]any)
		assert.Equal(t, "string", icon["type"])
		assert.Equal(t, "uri", icon["format"])
	})

	t.Run("unknown source is an authoring error", func(t *testing.T) {
		parsed, err := Parse(loadTree(t, `{$merge: {source: "#/$defs/Missing"}}`))
		require.NoError(t, err)

		_, err = Resolve(parsed, baseLookup(t))
		assert.Error(t, err)
	})

	t.Run("repeated resolution yields identical trees", func(t *testing.T) {
		parsed, err := Parse(loadTree(t, `
$merge:
  source: "#/$defs/ManifestBase"
  with:
    additionalProperties: false
`))
		require.NoError(t, err)

		first, err := Resolve(parsed, baseLookup(t))
		require.NoError(t, err)
		second, err := Resolve(parsed, baseLookup(t))
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestLookupIn(t *testing.T) {
	doc := loadTree(t, baseSchema)
	lookup := LookupIn(doc)

	node, err := lookup("#/$defs/ManifestBase")
	require.NoError(t, err)
	assert.Equal(t, "object", node["type"])

	_, err = lookup("#/$defs/Missing")
	assert.Error(t, err)

	_, err = lookup("not-a-pointer")
	assert.Error(t, err)

	// Scalars are not valid directive sources.
	_, err = lookup("#/$defs/ManifestBase/type")
	assert.Error(t, err)
}

func TestDeepCopy(t *testing.T) {
	original := map[string]any{
		"nested": map[string]any{"list": []any{1, "two", true}},
		"node":   &Directive{Source: "#/$defs/Icon", With: map[string]any{"a": 1}},
	}

	copied := DeepCopy(original).(map[string]any)
	copied["nested"].(map[string]any)["list"].([]any)[0] = 99
	copied["node"].(*Directive).With["a"] = 2

	assert.Equal(t, 1, original["nested"].(map[string]any)["list"].([]any)[0])
	assert.Equal(t, 1, original["node"].(*Directive).With["a"])
	assert.NotSame(t, original["node"], copied["node"])
}
