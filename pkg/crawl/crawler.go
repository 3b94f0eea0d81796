// Package crawl builds a dataset file from the image files found under
// one or more directory trees. The result has only images; annotations
// come from other tools.
package crawl

import (
	"context"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/karrick/godirwalk"
	"golang.org/x/sync/errgroup"

	// Register the decoders used for dimension probing.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/datasetlab/cocokit/pkg/coco"
	"github.com/datasetlab/cocokit/pkg/errors"
	"github.com/datasetlab/cocokit/pkg/logging"
)

// imageExtensions are the file extensions treated as images, compared
// case-insensitively.
var imageExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".gif":  {},
	".bmp":  {},
	".tiff": {},
	".svg":  {},
	".webp": {},
}

// Crawler scans directory trees for image files.
type Crawler interface {
	// Directories walks the given directories and returns a dataset
	// listing every image file found, ids assigned in discovery
	// order. outputPath is where the dataset will be written; image
	// file names are recorded relative to it when possible.
	Directories(ctx context.Context, dirs []string, outputPath string) (*coco.File, error)
}

type crawler struct {
	opts options
}

// New creates a Crawler with the given options.
func New(opts ...Option) (Crawler, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return &crawler{opts: *o}, nil
}

func (c *crawler) Directories(ctx context.Context, dirs []string, outputPath string) (*coco.File, error) {
	if len(dirs) == 0 {
		return nil, &errors.ValidationError{
			Field:   "dirs",
			Message: "at least one directory is required",
		}
	}

	paths, err := c.findImages(dirs)
	if err != nil {
		return nil, err
	}

	images := make([]coco.Image, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.concurrency)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			img, err := c.describeImage(ctx, int64(i), path, outputPath)
			if err != nil {
				return err
			}
			images[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &coco.File{
		Info:   coco.NewInfo(c.opts.description, c.opts.version),
		Images: images,
	}, nil
}

// findImages walks the directories in order and returns image file
// paths in lexically sorted traversal order, so ids are stable across
// runs.
func (c *crawler) findImages(dirs []string) ([]string, error) {
	var paths []string
	for _, dir := range dirs {
		err := godirwalk.Walk(dir, &godirwalk.Options{
			Callback: func(osPathname string, de *godirwalk.Dirent) error {
				if !de.IsRegular() {
					return nil
				}
				ext := strings.ToLower(filepath.Ext(osPathname))
				if _, ok := imageExtensions[ext]; ok {
					paths = append(paths, osPathname)
				}
				return nil
			},
			ErrorCallback: func(osPathname string, err error) godirwalk.ErrorAction {
				logging.Warn().Str("path", osPathname).Err(err).Msg("skipping unreadable entry")
				return godirwalk.SkipNode
			},
		})
		if err != nil {
			return nil, errors.WrapIO("walk", dir, err)
		}
	}
	return paths, nil
}

func (c *crawler) describeImage(ctx context.Context, id int64, path, outputPath string) (coco.Image, error) {
	fileName, err := coco.DatasetImagePath(outputPath, path, c.opts.absolutePaths)
	if err != nil {
		return coco.Image{}, errors.WrapIO("resolve", path, err)
	}

	width, height := probeDimensions(ctx, path)

	img := coco.Image{
		ID:       id,
		Width:    width,
		Height:   height,
		FileName: fileName,
	}
	if info, err := os.Stat(path); err == nil {
		mtime := info.ModTime().UTC()
		img.DateCaptured = &mtime
	}
	return img, nil
}

// probeDimensions decodes just enough of the file to learn its size.
// Anything undecodable, such as an SVG, yields (0, 0).
func probeDimensions(ctx context.Context, path string) (int, int) {
	f, err := os.Open(path)
	if err != nil {
		logging.FromContext(ctx).Warn().Str("path", path).Err(err).Msg("cannot open image")
		return 0, 0
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		logging.FromContext(ctx).Debug().Str("path", path).Err(err).Msg("cannot determine image dimensions")
		return 0, 0
	}
	return cfg.Width, cfg.Height
}
