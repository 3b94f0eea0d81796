package crawl

import (
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datasetlab/cocokit/pkg/errors"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))))
}

func TestNewOptionValidation(t *testing.T) {
	_, err := New(WithConcurrency(0))
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestDirectoriesRequiresInput(t *testing.T) {
	c, err := New()
	require.NoError(t, err)
	_, err = c.Directories(context.Background(), nil, "out.json")
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestDirectoriesFindsImages(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"), 4, 6)
	writePNG(t, filepath.Join(dir, "sub", "b.PNG"), 2, 2)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	c, err := New(WithVersion("0.2.0"))
	require.NoError(t, err)
	out, err := c.Directories(context.Background(), []string{dir}, filepath.Join(dir, "coco.json"))
	require.NoError(t, err)

	require.Len(t, out.Images, 2, "only image extensions are picked up")
	assert.Empty(t, out.Annotations)
	require.NotNil(t, out.Info)
	assert.Equal(t, "0.2.0", out.Info.Version)

	// Discovery order is the sorted walk order, ids follow it.
	assert.Equal(t, int64(0), out.Images[0].ID)
	assert.Equal(t, "a.png", out.Images[0].FileName)
	assert.Equal(t, 4, out.Images[0].Width)
	assert.Equal(t, 6, out.Images[0].Height)
	require.NotNil(t, out.Images[0].DateCaptured)

	assert.Equal(t, int64(1), out.Images[1].ID)
	assert.Equal(t, filepath.Join("sub", "b.PNG"), out.Images[1].FileName)
}

func TestDirectoriesUndecodableImageGetsZeroDimensions(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "logo.svg"), []byte("<svg/>"), 0o644))

	c, err := New()
	require.NoError(t, err)
	out, err := c.Directories(context.Background(), []string{dir}, filepath.Join(dir, "coco.json"))
	require.NoError(t, err)

	require.Len(t, out.Images, 1)
	assert.Equal(t, 0, out.Images[0].Width)
	assert.Equal(t, 0, out.Images[0].Height)
}

func TestDirectoriesAbsolutePaths(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"), 1, 1)

	c, err := New(WithAbsolutePaths())
	require.NoError(t, err)
	out, err := c.Directories(context.Background(), []string{dir}, filepath.Join(dir, "coco.json"))
	require.NoError(t, err)
	require.Len(t, out.Images, 1)
	assert.True(t, filepath.IsAbs(out.Images[0].FileName))
}
