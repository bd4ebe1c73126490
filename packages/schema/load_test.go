package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile_JSON(t *testing.T) {
	path := writeFixture(t, "user.json", `{
		"type": "object",
		"required": ["name"],
		"properties": {
			"name": {"type": "string", "minLength": 3}
		}
	}`)

	node, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, TypeObject, node.Type)
	require.Contains(t, node.Properties, "name")
	require.NotNil(t, node.Properties["name"].MinLength)
	assert.Equal(t, 3, *node.Properties["name"].MinLength)
}

func TestLoadFile_YAML(t *testing.T) {
	path := writeFixture(t, "user.yaml", `
type: object
required:
  - id
properties:
  id:
    type: number
    minimum: 1
`)

	node, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, TypeObject, node.Type)
	assert.Equal(t, []string{"id"}, node.Required)
	require.NotNil(t, node.Properties["id"].Minimum)
	assert.Equal(t, float64(1), *node.Properties["id"].Minimum)
}

func TestLoadFile_UnsupportedExtension(t *testing.T) {
	path := writeFixture(t, "schema.txt", "whatever")

	_, err := LoadFile(path)

	assert.ErrorContains(t, err, "unsupported schema file extension")
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadFile_InvalidJSON(t *testing.T) {
	path := writeFixture(t, "broken.json", `{"type":`)

	_, err := LoadFile(path)

	assert.ErrorContains(t, err, "failed to parse schema")
}
