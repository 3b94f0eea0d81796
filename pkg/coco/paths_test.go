package coco

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveImagePath(t *testing.T) {
	assert.Equal(t, filepath.Join("/data", "imgs", "a.jpg"),
		ResolveImagePath("/data/train.json", "imgs/a.jpg"))
	assert.Equal(t, "/abs/a.jpg", ResolveImagePath("/data/train.json", "/abs/a.jpg"))
}

func TestInDirectoryTree(t *testing.T) {
	dir := t.TempDir()

	in, err := InDirectoryTree(filepath.Join(dir, "sub", "a.jpg"), dir)
	require.NoError(t, err)
	assert.True(t, in)

	in, err = InDirectoryTree(filepath.Join(dir, "..", "a.jpg"), dir)
	require.NoError(t, err)
	assert.False(t, in)
}

func TestDatasetImagePath(t *testing.T) {
	dir := t.TempDir()
	dataset := filepath.Join(dir, "train.json")

	t.Run("inside tree becomes relative", func(t *testing.T) {
		got, err := DatasetImagePath(dataset, filepath.Join(dir, "images", "a.jpg"), false)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("images", "a.jpg"), got)
	})

	t.Run("outside tree stays absolute", func(t *testing.T) {
		other := t.TempDir()
		img := filepath.Join(other, "a.jpg")
		got, err := DatasetImagePath(dataset, img, false)
		require.NoError(t, err)
		assert.Equal(t, img, got)
	})

	t.Run("force absolute", func(t *testing.T) {
		got, err := DatasetImagePath(dataset, filepath.Join(dir, "images", "a.jpg"), true)
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(got))
	})
}
