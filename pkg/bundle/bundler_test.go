package bundle

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datasetlab/cocokit/pkg/coco"
)

func TestDatasetCopiesImages(t *testing.T) {
	srcDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "bundle")
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "a.jpg"), []byte("jpeg-a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "b.jpg"), []byte("jpeg-b"), 0o644))

	f := &coco.File{
		Images: []coco.Image{
			{ID: 1, FileName: "a.jpg"},
			{ID: 2, FileName: filepath.Join(srcDir, "b.jpg")},
		},
		Annotations: []coco.Annotation{
			{Caption: &coco.CaptionAnnotation{ID: 1, ImageID: 1, Caption: "a"}},
		},
	}

	b, err := New()
	require.NoError(t, err)
	res, err := b.Dataset(context.Background(), f, filepath.Join(srcDir, "train.json"), outDir)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Copied)
	assert.Empty(t, res.Missing)
	assert.Equal(t, filepath.Join("images", "a.jpg"), res.File.Images[0].FileName)
	assert.Equal(t, filepath.Join("images", "b.jpg"), res.File.Images[1].FileName)
	assert.Len(t, res.File.Annotations, 1, "annotations pass through")

	data, err := os.ReadFile(filepath.Join(outDir, "images", "a.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg-a", string(data))

	// Input untouched.
	assert.Equal(t, "a.jpg", f.Images[0].FileName)
}

func TestDatasetMissingImageIsSkipped(t *testing.T) {
	srcDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "bundle")

	f := &coco.File{
		Images: []coco.Image{{ID: 1, FileName: "gone.jpg"}},
	}

	b, err := New()
	require.NoError(t, err)
	res, err := b.Dataset(context.Background(), f, filepath.Join(srcDir, "train.json"), outDir)
	require.NoError(t, err)

	assert.Zero(t, res.Copied)
	require.Len(t, res.Missing, 1)
	assert.Equal(t, filepath.Join(srcDir, "gone.jpg"), res.Missing[0])
	assert.Equal(t, "gone.jpg", res.File.Images[0].FileName, "path stays as declared")
}

func TestDatasetAbsolutePaths(t *testing.T) {
	srcDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "bundle")
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "a.jpg"), []byte("x"), 0o644))

	b, err := New(WithAbsolutePaths())
	require.NoError(t, err)
	f := &coco.File{Images: []coco.Image{{ID: 1, FileName: "a.jpg"}}}
	res, err := b.Dataset(context.Background(), f, filepath.Join(srcDir, "train.json"), outDir)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(res.File.Images[0].FileName))
}

func TestOutputDatasetPath(t *testing.T) {
	assert.Equal(t, filepath.Join("out", "train.json"),
		OutputDatasetPath(filepath.Join("data", "train.json"), "out"))
}
