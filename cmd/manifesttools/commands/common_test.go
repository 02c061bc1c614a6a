package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateOutputFormat(t *testing.T) {
	assert.NoError(t, ValidateOutputFormat(FormatText))
	assert.NoError(t, ValidateOutputFormat(FormatJSON))
	assert.NoError(t, ValidateOutputFormat(FormatYAML))
	assert.Error(t, ValidateOutputFormat("xml"))
	assert.Error(t, ValidateOutputFormat(""))
}

func TestFormatDocPath(t *testing.T) {
	assert.Equal(t, "<stdin>", FormatDocPath(StdinFilePath))
	assert.Equal(t, "manifest.json", FormatDocPath("manifest.json"))
}

func TestReadDocument(t *testing.T) {
	t.Run("json file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "manifest.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"manifest_version": 2, "name": "x", "version": "1.0"}`), 0o644))

		doc, err := ReadDocument(path)
		require.NoError(t, err)
		assert.Equal(t, "x", doc["name"])
	})

	t.Run("yaml file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "manifest.yaml")
		require.NoError(t, os.WriteFile(path, []byte("manifest_version: 2\nname: y\nversion: \"1.0\"\n"), 0o644))

		doc, err := ReadDocument(path)
		require.NoError(t, err)
		assert.Equal(t, "y", doc["name"])
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ReadDocument(filepath.Join(t.TempDir(), "missing.json"))
		assert.Error(t, err)
	})

	t.Run("malformed content", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "broken.json")
		require.NoError(t, os.WriteFile(path, []byte("{unterminated"), 0o644))

		_, err := ReadDocument(path)
		assert.Error(t, err)
	})
}
