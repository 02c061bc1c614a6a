package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSchemaDocuments(t *testing.T) {
	docs, err := buildSchemaDocuments()
	require.NoError(t, err)
	require.Len(t, docs, 6)

	base := docs[VariantManifest]
	baseDefs := base["$defs"].(map[string]any)

	t.Run("theme variant specializes only its own root type", func(t *testing.T) {
		theme := docs[VariantTheme]
		defs := theme["$defs"].(map[string]any)

		resolved := defs["ThemeManifest"].(map[string]any)
		assert.Equal(t, false, resolved["additionalProperties"])
		assert.Contains(t, resolved["required"], "theme")

		// Shared types stay structurally identical to the un-patched base.
		assert.Equal(t, baseDefs["ManifestBase"], defs["ManifestBase"])
		assert.Equal(t, baseDefs["ThemeType"], defs["ThemeType"])
	})

	t.Run("v3 variant raises the ceiling and nothing else", func(t *testing.T) {
		v3 := docs[VariantManifestV3]
		mv := v3["$defs"].(map[string]any)["ManifestBase"].(map[string]any)["properties"].(map[string]any)["manifest_version"].(map[string]any)
		assert.Equal(t, 3, mv["maximum"])

		baseMV := baseDefs["ManifestBase"].(map[string]any)["properties"].(map[string]any)["manifest_version"].(map[string]any)
		assert.Equal(t, 2, baseMV["maximum"])
	})

	t.Run("building twice yields identical trees", func(t *testing.T) {
		again, err := buildSchemaDocuments()
		require.NoError(t, err)
		assert.Equal(t, docs[VariantTheme], again[VariantTheme])
	})
}
