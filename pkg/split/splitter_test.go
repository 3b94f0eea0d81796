package split

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datasetlab/cocokit/pkg/coco"
	"github.com/datasetlab/cocokit/pkg/errors"
)

func dataset() *coco.File {
	return &coco.File{
		Images: []coco.Image{
			{ID: 3, FileName: "/imgs/c.jpg"},
			{ID: 1, FileName: "/imgs/a.jpg"},
			{ID: 2, FileName: "/imgs/b.jpg"},
			{ID: 4, FileName: "/imgs/d.jpg"},
		},
		Annotations: []coco.Annotation{
			{Caption: &coco.CaptionAnnotation{ID: 1, ImageID: 1, Caption: "a"}},
			{Caption: &coco.CaptionAnnotation{ID: 2, ImageID: 3, Caption: "c"}},
		},
		Categories: []coco.Category{
			{ObjectDetection: &coco.ObjectDetectionCategory{ID: 1, Name: "dog"}},
		},
		Licenses: []coco.License{{ID: 1, Name: "CC"}},
	}
}

func split(t *testing.T, f *coco.File, opts ...Option) *coco.File {
	t.Helper()
	s, err := New(opts...)
	require.NoError(t, err)
	out, err := s.Dataset(context.Background(), f, "/data/full.json", "/data/split.json")
	require.NoError(t, err)
	return out
}

func imageIDs(f *coco.File) []int64 {
	ids := make([]int64, len(f.Images))
	for i := range f.Images {
		ids[i] = f.Images[i].ID
	}
	return ids
}

func TestNewRejectsOffsetWithShuffle(t *testing.T) {
	_, err := New(WithShuffle(), WithOffset(1))
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))

	_, err = New(WithOffset(0), WithShuffle())
	assert.NoError(t, err, "a zero offset does not conflict")
}

func TestSplitDefaultTakesAllSortedByID(t *testing.T) {
	out := split(t, dataset())
	assert.Equal(t, []int64{1, 2, 3, 4}, imageIDs(out))
	assert.Len(t, out.Annotations, 2)
	assert.Equal(t, dataset().Categories, out.Categories)
	assert.Equal(t, dataset().Licenses, out.Licenses)
}

func TestSplitCountAndOffset(t *testing.T) {
	out := split(t, dataset(), WithOffset(1), WithCount(2))
	assert.Equal(t, []int64{2, 3}, imageIDs(out))

	out = split(t, dataset(), WithOffset(10))
	assert.Empty(t, out.Images)
}

func TestSplitCarriesOnlySelectedAnnotations(t *testing.T) {
	out := split(t, dataset(), WithCount(1))
	require.Equal(t, []int64{1}, imageIDs(out))
	require.Len(t, out.Annotations, 1)
	assert.Equal(t, int64(1), out.Annotations[0].Caption.ImageID)
}

func TestSplitAnnotatedOnly(t *testing.T) {
	out := split(t, dataset(), WithAnnotatedOnly())
	assert.Equal(t, []int64{1, 3}, imageIDs(out))
}

func TestSplitBlacklist(t *testing.T) {
	prior := &coco.File{Images: []coco.Image{{ID: 1}, {ID: 4}}}
	out := split(t, dataset(), WithBlacklistIDs(BlacklistIDs(prior)))
	assert.Equal(t, []int64{2, 3}, imageIDs(out))
}

func TestSplitSeededShuffleIsReproducible(t *testing.T) {
	a := split(t, dataset(), WithShuffleSeed(42))
	b := split(t, dataset(), WithShuffleSeed(42))
	assert.Equal(t, imageIDs(a), imageIDs(b))
	assert.ElementsMatch(t, []int64{1, 2, 3, 4}, imageIDs(a))
}

func TestSplitRewritesImagePaths(t *testing.T) {
	dir := t.TempDir()
	f := &coco.File{
		Images: []coco.Image{{ID: 1, FileName: "images/a.jpg"}},
	}
	source := filepath.Join(dir, "full.json")
	output := filepath.Join(dir, "splits", "val.json")

	s, err := New()
	require.NoError(t, err)
	out, err := s.Dataset(context.Background(), f, source, output)
	require.NoError(t, err)

	// The image lives outside the output directory, so the recorded
	// path must be absolute and reach the original location.
	require.Len(t, out.Images, 1)
	assert.Equal(t, filepath.Join(dir, "images", "a.jpg"), out.Images[0].FileName)

	s, err = New(WithAbsolutePaths())
	require.NoError(t, err)
	out, err = s.Dataset(context.Background(), f, source, output)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(out.Images[0].FileName))
}

func TestSplitDoesNotMutateInput(t *testing.T) {
	f := dataset()
	out := split(t, f, WithCount(4))
	out.Images[0].FileName = "changed"
	out.Annotations[0].Caption.Caption = "changed"

	assert.Equal(t, "/imgs/c.jpg", f.Images[0].FileName)
	assert.Equal(t, "a", f.Annotations[0].Caption.Caption)
}
