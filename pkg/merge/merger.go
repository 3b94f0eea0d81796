// Package merge combines multiple annotated-image dataset files into
// one, reconciling the four id namespaces (categories, licenses,
// images, annotations) so the output is internally consistent.
//
// Categories and licenses are deduplicated by content; images and
// annotations are never deduplicated. Annotation and panoptic segment
// ids share one namespace, so a segment id can never collide with a
// plain annotation id in the output.
package merge

import (
	"context"
	"fmt"

	"github.com/datasetlab/cocokit/pkg/coco"
	"github.com/datasetlab/cocokit/pkg/errors"
)

// Input is one dataset file to merge. Path is used to resolve relative
// image file names and to attribute diagnostics.
type Input struct {
	Path string
	File *coco.File
}

// Merger combines dataset files into a single reconciled dataset.
type Merger interface {
	// Datasets merges the inputs in order. First-seen wins on id
	// collisions; later records are remapped or, for images without
	// reassignment enabled, dropped.
	Datasets(ctx context.Context, inputs []Input) (*Result, error)
}

type merger struct {
	opts options
}

// New creates a Merger with the given options.
func New(opts ...Option) (Merger, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return &merger{opts: *o}, nil
}

// mergeState accumulates output records across all inputs. Allocators
// are shared, so ids stay unique over the whole run.
type mergeState struct {
	categories *dedupSet[coco.Category]
	licenses   *dedupSet[coco.License]

	images     []coco.Image
	imageAlloc *idAllocator[int64]

	annotations []coco.Annotation
	annAlloc    *idAllocator[int64]

	dropped []DroppedImage
}

func newMergeState() *mergeState {
	return &mergeState{
		categories: newDedupSet(coco.Category.WithID),
		licenses:   newDedupSet(coco.License.WithID),
		imageAlloc: newIDAllocator[int64](),
		annAlloc:   newIDAllocator[int64](),
	}
}

func (m *merger) Datasets(ctx context.Context, inputs []Input) (*Result, error) {
	if len(inputs) == 0 {
		return nil, &errors.ValidationError{
			Field:   "inputs",
			Message: "at least one dataset is required",
		}
	}

	state := newMergeState()
	for _, input := range inputs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if input.File == nil {
			return nil, &errors.ValidationError{
				Field:   "inputs",
				Value:   input.Path,
				Message: "dataset file is nil",
			}
		}
		if err := m.mergeFile(input, state); err != nil {
			return nil, err
		}
	}

	// A merged file always carries all four sections, even when empty,
	// so they encode as [] rather than disappearing or becoming null.
	out := &coco.File{
		Info:        coco.NewInfo(m.opts.description, m.opts.version),
		Images:      notNil(state.images),
		Annotations: notNil(state.annotations),
		Categories:  notNil(state.categories.entries()),
		Licenses:    notNil(state.licenses.entries()),
	}
	return &Result{File: out, Dropped: state.dropped}, nil
}

func notNil[E any](s []E) []E {
	if s == nil {
		return []E{}
	}
	return s
}

// mergeFile folds one input into the state, in the fixed order
// categories, licenses, images, annotations. Each later stage consumes
// the remaps the earlier stages produced for this file.
func (m *merger) mergeFile(input Input, state *mergeState) error {
	categoryRemap := make(map[int]int, len(input.File.Categories))
	for _, c := range input.File.Categories {
		categoryRemap[c.EntityID()] = state.categories.add(c)
	}

	licenseRemap := make(map[int]int, len(input.File.Licenses))
	for _, l := range input.File.Licenses {
		licenseRemap[l.ID] = state.licenses.add(l)
	}

	imageRemap, err := m.mergeImages(input, state, licenseRemap)
	if err != nil {
		return err
	}

	return m.mergeAnnotations(input, state, categoryRemap, imageRemap)
}

// mergeImages adds the file's images to the state and returns the
// old-id to new-id remap. A colliding image is either reassigned a
// fresh id or dropped with a warning; a dropped image gets no remap
// entry, which is what later skips its annotations.
func (m *merger) mergeImages(input Input, state *mergeState, licenseRemap map[int]int) (map[int64]int64, error) {
	imageRemap := make(map[int64]int64, len(input.File.Images))
	for i := range input.File.Images {
		img := input.File.Images[i].Clone()
		img.FileName = coco.ResolveImagePath(input.Path, img.FileName)

		if img.License != nil {
			newID, ok := licenseRemap[*img.License]
			if !ok {
				return nil, errors.NewReferenceError(
					input.Path, "license", int64(*img.License),
					fmt.Sprintf("image %d", img.ID))
			}
			*img.License = newID
		}

		if state.imageAlloc.has(img.ID) {
			if !m.opts.reassignClashingIDs {
				m.opts.logger.Warn().
					Str("file", input.Path).
					Int64("image_id", img.ID).
					Msg("image id clashes with an existing image, dropping image and its annotations")
				state.dropped = append(state.dropped, DroppedImage{
					Path:    input.Path,
					ImageID: img.ID,
				})
				continue
			}
			oldID := img.ID
			img.ID = state.imageAlloc.allocate()
			imageRemap[oldID] = img.ID
		} else {
			state.imageAlloc.claim(img.ID)
			imageRemap[img.ID] = img.ID
		}
		state.images = append(state.images, img)
	}
	return imageRemap, nil
}
