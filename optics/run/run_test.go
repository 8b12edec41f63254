package run

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateID(t *testing.T) {
	pattern := regexp.MustCompile(`^[a-z]+-[a-z]+-\d{8}-\d{6}$`)
	for i := 0; i < 20; i++ {
		id := GenerateID()
		assert.Regexp(t, pattern, id)
	}
}

func TestCreate(t *testing.T) {
	assert := assert.New(t)
	root := filepath.Join(t.TempDir(), RunsDir)

	first, err := Create(root)
	require.NoError(t, err)
	assert.True(filepath.IsAbs(first.Path))
	info, err := os.Stat(first.Path)
	require.NoError(t, err)
	assert.True(info.IsDir())

	target, err := os.Readlink(filepath.Join(root, LatestSymlink))
	require.NoError(t, err)
	assert.Equal(first.ID, target)

	// Make sure the second run cannot collide with the first
	require.NoError(t, os.Rename(first.Path, first.Path+"-moved"))
	second, err := Create(root)
	require.NoError(t, err)
	target, err = os.Readlink(filepath.Join(root, LatestSymlink))
	require.NoError(t, err)
	assert.Equal(second.ID, target)
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "scene.yaml")
	require.NoError(t, os.WriteFile(src, []byte("elements: []\n"), 0644))

	d, err := Create(filepath.Join(dir, RunsDir))
	require.NoError(t, err)
	require.NoError(t, d.CopyFile(src))

	content, err := os.ReadFile(d.FilePath("scene.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "elements: []\n", string(content))

	assert.Error(t, d.CopyFile(filepath.Join(dir, "missing.yaml")))
}
