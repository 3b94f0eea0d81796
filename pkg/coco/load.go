package coco

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/viant/afs"
	"golang.org/x/sync/errgroup"

	"github.com/datasetlab/cocokit/pkg/errors"
	"github.com/datasetlab/cocokit/pkg/logging"
)

// DefaultFileMode is used when writing dataset files.
const DefaultFileMode = 0o644

// Load reads and decodes a single dataset file.
func Load(ctx context.Context, path string) (*File, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, errors.WrapParse("json", path, err)
	}

	logging.FromContext(ctx).Debug().
		Str("path", path).
		Int("images", len(f.Images)).
		Int("annotations", len(f.Annotations)).
		Msg("loaded dataset")
	return &f, nil
}

// LoadAll loads several dataset files concurrently. The returned slice
// is index-aligned with paths.
func LoadAll(ctx context.Context, paths []string) ([]*File, error) {
	files := make([]*File, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			f, err := Load(ctx, path)
			if err != nil {
				return err
			}
			files[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}

// Save encodes the dataset as indented JSON and writes it to path,
// creating parent directories as needed.
func Save(ctx context.Context, path string, f *File) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return errors.WrapParse("json", path, err)
	}

	fs := afs.New()
	if err := fs.Upload(ctx, path, DefaultFileMode, bytes.NewReader(data)); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}

// NewInfo builds a fresh info block for a generated dataset.
func NewInfo(description, version string) *Info {
	now := time.Now().UTC()
	return &Info{
		Year:        now.Year(),
		Version:     version,
		Description: description,
		DateCreated: now,
	}
}
