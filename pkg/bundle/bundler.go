// Package bundle gathers a dataset's image files into a
// self-contained directory: every image is copied into an images/
// subdirectory and the dataset records the new locations. The result
// can be moved or archived as one unit.
package bundle

import (
	"context"
	"path/filepath"

	"github.com/viant/afs"

	"github.com/datasetlab/cocokit/pkg/coco"
	"github.com/datasetlab/cocokit/pkg/errors"
	"github.com/datasetlab/cocokit/pkg/logging"
)

// ImagesDirName is the subdirectory images are copied into.
const ImagesDirName = "images"

// Result describes a bundling run. File carries the rewritten image
// paths; Missing lists source paths that could not be found, whose
// images keep their original file_name.
type Result struct {
	File    *coco.File
	Copied  int
	Missing []string
}

// Bundler copies a dataset's images into an output directory.
type Bundler interface {
	// Dataset copies every image of f into outputDir/images and
	// returns a copy of f with file names rewritten relative to
	// outputDir. sourcePath is the path f was loaded from, used to
	// resolve relative image paths. Missing images are skipped with a
	// warning.
	Dataset(ctx context.Context, f *coco.File, sourcePath, outputDir string) (*Result, error)
}

type bundler struct {
	opts options
}

// New creates a Bundler with the given options.
func New(opts ...Option) (Bundler, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return &bundler{opts: *o}, nil
}

func (b *bundler) Dataset(ctx context.Context, f *coco.File, sourcePath, outputDir string) (*Result, error) {
	fs := afs.New()
	imagesDir := filepath.Join(outputDir, ImagesDirName)
	logger := logging.FromContext(ctx)

	out := *f
	out.Images = make([]coco.Image, len(f.Images))
	res := &Result{File: &out}

	for i := range f.Images {
		img := f.Images[i].Clone()
		src := coco.ResolveImagePath(sourcePath, img.FileName)

		ok, err := fs.Exists(ctx, src)
		if err != nil {
			return nil, errors.WrapIO("stat", src, err)
		}
		if !ok {
			logger.Warn().Str("path", src).Msg("source image does not exist, skipping copy")
			res.Missing = append(res.Missing, src)
			out.Images[i] = img
			continue
		}

		dest := filepath.Join(imagesDir, filepath.Base(src))
		if err := fs.Copy(ctx, src, dest); err != nil {
			return nil, errors.WrapIO("copy", src, err)
		}
		res.Copied++

		if b.opts.absolutePaths {
			abs, err := filepath.Abs(dest)
			if err != nil {
				return nil, errors.WrapIO("resolve", dest, err)
			}
			img.FileName = abs
		} else {
			img.FileName = filepath.Join(ImagesDirName, filepath.Base(src))
		}
		out.Images[i] = img
	}
	return res, nil
}

// OutputDatasetPath is where the rewritten dataset file belongs inside
// the bundle: the output directory joined with the source file's base
// name.
func OutputDatasetPath(sourcePath, outputDir string) string {
	return filepath.Join(outputDir, filepath.Base(sourcePath))
}
