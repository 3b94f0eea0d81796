// Package coco models annotated-image datasets in the COCO JSON format:
// images, annotations, categories, licenses, and the info block.
//
// Annotations and categories have no explicit type tag on the wire; each
// object matches exactly one variant by which fields are present. This
// package decodes them through an explicit discriminator that checks
// field presence in a fixed, documented order, so an object carrying
// "keypoints" always decodes as keypoint detection even though it also
// has every object-detection field.
package coco

import "time"

// File is one COCO dataset description file.
type File struct {
	Images      []Image      `json:"images"`
	Annotations []Annotation `json:"annotations"`
	Info        *Info        `json:"info,omitempty"`
	Categories  []Category   `json:"categories,omitempty"`
	Licenses    []License    `json:"licenses,omitempty"`
}

// Info is the dataset metadata block.
type Info struct {
	Year        int       `json:"year"`
	Version     string    `json:"version"`
	Description string    `json:"description"`
	Contributor string    `json:"contributor"`
	URL         string    `json:"url"`
	DateCreated time.Time `json:"date_created"`
}

// ImageEntry pairs an image with the annotations that reference it.
type ImageEntry struct {
	Image       *Image
	Annotations []*Annotation
}

// ImageIDMap indexes the file's images by id, attaching each image's
// annotations. Annotations referencing unknown image ids are ignored.
func (f *File) ImageIDMap() map[int64]*ImageEntry {
	entries := make(map[int64]*ImageEntry, len(f.Images))
	for i := range f.Images {
		img := &f.Images[i]
		entries[img.ID] = &ImageEntry{Image: img}
	}
	for i := range f.Annotations {
		ann := &f.Annotations[i]
		if entry, ok := entries[ann.ImageID()]; ok {
			entry.Annotations = append(entry.Annotations, ann)
		}
	}
	return entries
}
