// Package split extracts a subset of an annotated-image dataset into a
// new dataset file, carrying each selected image's annotations with it.
// Categories, licenses, and the info block pass through unchanged, and
// no ids are rewritten.
package split

import (
	"context"
	"math/rand"
	"slices"

	"github.com/datasetlab/cocokit/pkg/coco"
	"github.com/datasetlab/cocokit/pkg/errors"
)

// Splitter selects a subset of a dataset.
type Splitter interface {
	// Dataset computes the split of f. sourcePath is the path f was
	// loaded from and outputPath the path the result will be written
	// to; both are needed to rewrite image file names so they stay
	// valid from the output file's directory.
	Dataset(ctx context.Context, f *coco.File, sourcePath, outputPath string) (*coco.File, error)
}

type splitter struct {
	opts options
}

// New creates a Splitter with the given options.
func New(opts ...Option) (Splitter, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	if o.shuffle && o.offset > 0 {
		return nil, &errors.ValidationError{
			Field:   "offset",
			Message: "cannot be combined with shuffle",
		}
	}
	return &splitter{opts: *o}, nil
}

func (s *splitter) Dataset(ctx context.Context, f *coco.File, sourcePath, outputPath string) (*coco.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries := s.selectEntries(f)

	out := &coco.File{
		Info:       f.Info,
		Categories: f.Categories,
		Licenses:   f.Licenses,
	}
	for _, entry := range entries {
		img := entry.Image.Clone()
		abs := coco.ResolveImagePath(sourcePath, img.FileName)
		fileName, err := coco.DatasetImagePath(outputPath, abs, s.opts.absolutePaths)
		if err != nil {
			return nil, errors.WrapIO("resolve", img.FileName, err)
		}
		img.FileName = fileName
		out.Images = append(out.Images, img)

		for _, ann := range entry.Annotations {
			out.Annotations = append(out.Annotations, ann.Clone())
		}
	}
	return out, nil
}

// selectEntries applies, in order: blacklist, ordering (ascending image
// id, then an optional shuffle on top so seeded runs are
// reproducible), the annotated-only filter, and finally offset and
// count windowing.
func (s *splitter) selectEntries(f *coco.File) []*coco.ImageEntry {
	idMap := f.ImageIDMap()
	entries := make([]*coco.ImageEntry, 0, len(idMap))
	for id, entry := range idMap {
		if _, blacklisted := s.opts.blacklist[id]; blacklisted {
			continue
		}
		entries = append(entries, entry)
	}

	slices.SortFunc(entries, func(a, b *coco.ImageEntry) int {
		switch {
		case a.Image.ID < b.Image.ID:
			return -1
		case a.Image.ID > b.Image.ID:
			return 1
		}
		return 0
	})
	if s.opts.shuffle {
		rng := rand.New(rand.NewSource(s.seedValue()))
		rng.Shuffle(len(entries), func(i, j int) {
			entries[i], entries[j] = entries[j], entries[i]
		})
	}

	if s.opts.annotatedOnly {
		entries = slices.DeleteFunc(entries, func(e *coco.ImageEntry) bool {
			return len(e.Annotations) == 0
		})
	}

	if s.opts.offset >= len(entries) {
		return nil
	}
	entries = entries[s.opts.offset:]
	if s.opts.hasCount && s.opts.count < len(entries) {
		entries = entries[:s.opts.count]
	}
	return entries
}

func (s *splitter) seedValue() int64 {
	if s.opts.hasSeed {
		return s.opts.seed
	}
	return rand.Int63()
}

// BlacklistIDs collects the image ids of the given datasets, for
// excluding already used images from a new split.
func BlacklistIDs(files ...*coco.File) []int64 {
	var ids []int64
	for _, f := range files {
		for i := range f.Images {
			ids = append(ids, f.Images[i].ID)
		}
	}
	return ids
}
