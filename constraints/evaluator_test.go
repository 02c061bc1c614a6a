package constraints

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"

	"github.com/wextkit/manifesttools/internal/issues"
)

func load(t *testing.T, src string) map[string]any {
	t.Helper()
	var tree map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(src), &tree))
	return tree
}

const annotatedSchema = `
type: object
properties:
  manifest_version:
    type: integer
  action:
    type: object
    min_manifest_version: 3
  browser_action:
    type: object
    max_manifest_version: 2
  applications:
    type: object
    deprecated: true
  background:
    type: object
    properties:
      persistent:
        type: boolean
        deprecated: true
      service_worker:
        $ref: "#/$defs/ServiceWorker"
  host_permissions:
    type: array
    items:
      type: string
      min_manifest_version: 3
$defs:
  ServiceWorker:
    type: string
    min_manifest_version: 3
`

func TestEvaluatorCheck(t *testing.T) {
	eval := New(nil)
	schema := load(t, annotatedSchema)

	t.Run("v3 document using a v2-only property", func(t *testing.T) {
		doc := load(t, `{manifest_version: 3, browser_action: {}}`)
		found := eval.Check(schema, doc)

		require.Len(t, found, 1)
		assert.Equal(t, issues.KeywordUnsupported, found[0].Keyword)
		assert.Equal(t, "/browser_action", found[0].Path)
	})

	t.Run("v2 document using the same property passes", func(t *testing.T) {
		doc := load(t, `{manifest_version: 2, browser_action: {}}`)
		assert.Empty(t, eval.Check(schema, doc))
	})

	t.Run("v2 document using a v3-only property", func(t *testing.T) {
		doc := load(t, `{manifest_version: 2, action: {}}`)
		found := eval.Check(schema, doc)

		require.Len(t, found, 1)
		assert.Equal(t, issues.KeywordUnsupported, found[0].Keyword)
		assert.Equal(t, "/action", found[0].Path)
	})

	t.Run("undeclared version defaults to 2", func(t *testing.T) {
		doc := load(t, `{action: {}}`)
		found := eval.Check(schema, doc)
		require.Len(t, found, 1)
		assert.Equal(t, "/action", found[0].Path)
	})

	t.Run("annotations only fire for present properties", func(t *testing.T) {
		doc := load(t, `{manifest_version: 2, name: whatever}`)
		assert.Empty(t, eval.Check(schema, doc))
	})

	t.Run("registered deprecated property fails regardless of version", func(t *testing.T) {
		for _, v := range []int{2, 3} {
			doc := map[string]any{"manifest_version": v, "applications": map[string]any{}}
			found := eval.Check(schema, doc)
			require.Len(t, found, 1, "manifest_version %d", v)
			assert.Equal(t, issues.KeywordDeprecated, found[0].Keyword)
			assert.Equal(t, "/applications", found[0].Path)
		}
	})

	t.Run("nested deprecated property", func(t *testing.T) {
		doc := load(t, `{manifest_version: 2, background: {persistent: true}}`)
		found := eval.Check(schema, doc)
		require.Len(t, found, 1)
		assert.Equal(t, "/background/persistent", found[0].Path)
	})

	t.Run("annotation behind a local ref", func(t *testing.T) {
		doc := load(t, `{manifest_version: 2, background: {service_worker: bg.js}}`)
		found := eval.Check(schema, doc)
		require.Len(t, found, 1)
		assert.Equal(t, issues.KeywordUnsupported, found[0].Keyword)
		assert.Equal(t, "/background/service_worker", found[0].Path)
	})

	t.Run("array items carry their index in the path", func(t *testing.T) {
		doc := load(t, `{manifest_version: 2, host_permissions: ["<all_urls>", "*://x/*"]}`)
		found := eval.Check(schema, doc)
		require.Len(t, found, 2)
		assert.Equal(t, "/host_permissions/0", found[0].Path)
		assert.Equal(t, "/host_permissions/1", found[1].Path)
	})

	t.Run("non-object document is skipped", func(t *testing.T) {
		assert.Empty(t, eval.Check(schema, "not an object"))
	})
}

func TestResolveLocalRef(t *testing.T) {
	schema := load(t, `
$defs:
  A:
    type: string
  "odd/name":
    type: integer
`)

	require.NotNil(t, resolveLocalRef(schema, "#/$defs/A"))
	assert.Equal(t, "string", resolveLocalRef(schema, "#/$defs/A")["type"])
	assert.Equal(t, "integer", resolveLocalRef(schema, "#/$defs/odd~1name")["type"])
	assert.Nil(t, resolveLocalRef(schema, "#/$defs/Missing"))
	assert.Nil(t, resolveLocalRef(schema, "https://example.com/external#/x"))
}
