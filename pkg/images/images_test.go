package images

import (
	"encoding/base64"
	"os"
	"path"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveBase64(t *testing.T) {
	dir := t.TempDir()
	raw := []byte{0x89, 'P', 'N', 'G'}
	encoded := base64.StdEncoding.EncodeToString(raw)

	publicPath, err := SaveBase64(dir, encoded)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(publicPath, "/uploads/"))
	assert.True(t, strings.HasSuffix(publicPath, ".png"))

	stored, err := os.ReadFile(path.Join(dir, filepath.Base(publicPath)))
	require.NoError(t, err)
	assert.Equal(t, raw, stored)
}

func TestSaveBase64DataURLPrefix(t *testing.T) {
	dir := t.TempDir()
	payload := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("pixels"))

	publicPath, err := SaveBase64(dir, payload)
	require.NoError(t, err)

	stored, err := os.ReadFile(path.Join(dir, filepath.Base(publicPath)))
	require.NoError(t, err)
	assert.Equal(t, []byte("pixels"), stored)
}

func TestSaveBase64Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := SaveBase64(dir, "")
	assert.Error(t, err)

	_, err = SaveBase64(dir, "not!!valid@@base64")
	assert.Error(t, err)

	_, err = SaveBase64(dir, "data:image/png;missing-marker")
	assert.Error(t, err)
}

func TestRemove(t *testing.T) {
	dir := t.TempDir()
	publicPath, err := SaveBase64(dir, base64.StdEncoding.EncodeToString([]byte("x")))
	require.NoError(t, err)

	require.NoError(t, Remove(dir, publicPath))
	_, err = os.Stat(path.Join(dir, filepath.Base(publicPath)))
	assert.True(t, os.IsNotExist(err))

	// Removing twice, or removing nothing, is fine.
	assert.NoError(t, Remove(dir, publicPath))
	assert.NoError(t, Remove(dir, ""))
}
