package constraints

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wextkit/manifesttools/internal/issues"
)

func TestDocumentVersion(t *testing.T) {
	tests := []struct {
		name string
		root map[string]any
		want int
	}{
		{"nil root defaults", nil, 2},
		{"absent field defaults", map[string]any{"name": "x"}, 2},
		{"declared int", map[string]any{"manifest_version": 3}, 3},
		{"declared float from JSON decoding", map[string]any{"manifest_version": float64(3)}, 3},
		{"non-numeric defaults", map[string]any{"manifest_version": "three"}, 2},
		{"fractional defaults", map[string]any{"manifest_version": 2.5}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DocumentVersion(tt.root))
		})
	}
}

func TestMinVersionCheck(t *testing.T) {
	check := minVersionCheck{}
	rootV2 := map[string]any{"manifest_version": 2}
	rootV3 := map[string]any{"manifest_version": 3}

	t.Run("below floor fails as unsupported", func(t *testing.T) {
		issue := check.Evaluate(3, Context{Root: rootV2, Path: "/action"})
		require.NotNil(t, issue)
		assert.Equal(t, issues.KeywordUnsupported, issue.Keyword)
		assert.Equal(t, "/action", issue.Path)
		assert.Contains(t, issue.Message, ">= 3")
	})

	t.Run("at floor passes", func(t *testing.T) {
		assert.Nil(t, check.Evaluate(3, Context{Root: rootV3, Path: "/action"}))
	})

	t.Run("undeclared version uses default", func(t *testing.T) {
		assert.Nil(t, check.Evaluate(2, Context{Root: map[string]any{}, Path: "/x"}))
		assert.NotNil(t, check.Evaluate(3, Context{Root: map[string]any{}, Path: "/x"}))
	})

	t.Run("non-numeric operand is ignored", func(t *testing.T) {
		assert.Nil(t, check.Evaluate("3", Context{Root: rootV2}))
	})
}

func TestMaxVersionCheck(t *testing.T) {
	check := maxVersionCheck{}
	rootV3 := map[string]any{"manifest_version": 3}

	t.Run("above ceiling fails as unsupported", func(t *testing.T) {
		issue := check.Evaluate(2, Context{Root: rootV3, Path: "/browser_action"})
		require.NotNil(t, issue)
		assert.Equal(t, issues.KeywordUnsupported, issue.Keyword)
		assert.Contains(t, issue.Message, "<= 2")
	})

	t.Run("at ceiling passes", func(t *testing.T) {
		root := map[string]any{"manifest_version": 2}
		assert.Nil(t, check.Evaluate(2, Context{Root: root, Path: "/browser_action"}))
	})
}

func TestDeprecatedCheck(t *testing.T) {
	check := deprecatedCheck{registry: map[string]string{
		"applications": "use browser_specific_settings instead",
	}}

	t.Run("registered path always fails", func(t *testing.T) {
		issue := check.Evaluate(true, Context{Path: "/applications"})
		require.NotNil(t, issue)
		assert.Equal(t, issues.KeywordDeprecated, issue.Keyword)
		assert.Equal(t, "use browser_specific_settings instead", issue.Message)
	})

	t.Run("unregistered path is a no-op", func(t *testing.T) {
		assert.Nil(t, check.Evaluate(true, Context{Path: "/something_new"}))
	})

	t.Run("annotation disabled with false", func(t *testing.T) {
		assert.Nil(t, check.Evaluate(false, Context{Path: "/applications"}))
	})
}

func TestRegistryKey(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/applications", "applications"},
		{"/background/persistent", "background.persistent"},
		{"/permissions/3", "permissions"},
		{"/content_scripts/0/matches/2", "content_scripts.matches"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, registryKey(tt.path), "path %q", tt.path)
	}
}
