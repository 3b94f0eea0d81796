package merge

import (
	"fmt"

	"github.com/datasetlab/cocokit/pkg/errors"
)

// mergeAnnotations adds the file's annotations to the state.
// Annotations whose image was dropped are skipped silently. Category
// references are rewritten through the file's remap; a reference the
// remap cannot resolve is fatal. Annotation and segment ids draw from
// one shared allocator.
func (m *merger) mergeAnnotations(input Input, state *mergeState, categoryRemap map[int]int, imageRemap map[int64]int64) error {
	for i := range input.File.Annotations {
		newImageID, ok := imageRemap[input.File.Annotations[i].ImageID()]
		if !ok {
			continue
		}

		ann := input.File.Annotations[i].Clone()
		ann.SetImageID(newImageID)

		var err error
		switch {
		case ann.ObjectDetection != nil:
			a := ann.ObjectDetection
			a.CategoryID, err = remapCategory(input.Path, categoryRemap, a.CategoryID, a.ID)
			if err != nil {
				return err
			}
			a.ID = reassignID(state.annAlloc, a.ID)

		case ann.Keypoint != nil:
			a := ann.Keypoint
			a.CategoryID, err = remapCategory(input.Path, categoryRemap, a.CategoryID, a.ID)
			if err != nil {
				return err
			}
			a.ID = reassignID(state.annAlloc, a.ID)

		case ann.Panoptic != nil:
			for j := range ann.Panoptic.SegmentsInfo {
				seg := &ann.Panoptic.SegmentsInfo[j]
				newCategoryID, ok := categoryRemap[seg.CategoryID]
				if !ok {
					return errors.NewReferenceError(
						input.Path, "category", int64(seg.CategoryID),
						fmt.Sprintf("segment %d", seg.ID))
				}
				seg.CategoryID = newCategoryID
				seg.ID = reassignID(state.annAlloc, seg.ID)
			}

		case ann.Caption != nil:
			ann.Caption.ID = reassignID(state.annAlloc, ann.Caption.ID)

		case ann.DensePose != nil:
			a := ann.DensePose
			a.CategoryID, err = remapCategory(input.Path, categoryRemap, a.CategoryID, a.ID)
			if err != nil {
				return err
			}
			a.ID = reassignID(state.annAlloc, a.ID)
		}

		state.annotations = append(state.annotations, ann)
	}
	return nil
}

// reassignID keeps id if it is still free, otherwise allocates a fresh
// one. Either way the id ends up claimed.
func reassignID(alloc *idAllocator[int64], id int64) int64 {
	if alloc.has(id) {
		return alloc.allocate()
	}
	alloc.claim(id)
	return id
}

func remapCategory(path string, remap map[int]int, categoryID int, annotationID int64) (int, error) {
	newID, ok := remap[categoryID]
	if !ok {
		return 0, errors.NewReferenceError(
			path, "category", int64(categoryID),
			fmt.Sprintf("annotation %d", annotationID))
	}
	return newID, nil
}
