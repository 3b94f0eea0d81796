package coco

// Stats summarizes the contents of a dataset file by record kind.
type Stats struct {
	Images      int64 `json:"images" yaml:"images"`
	Annotations int64 `json:"annotations" yaml:"annotations"`
	Categories  int64 `json:"categories" yaml:"categories"`
	Licenses    int64 `json:"licenses" yaml:"licenses"`

	AnnotationsByKind map[AnnotationKind]int64 `json:"annotations_by_kind" yaml:"annotations_by_kind"`
	CategoriesByKind  map[CategoryKind]int64   `json:"categories_by_kind" yaml:"categories_by_kind"`
}

// Summarize counts images, annotations, categories, and licenses,
// broken down by variant kind.
func Summarize(f *File) Stats {
	s := Stats{
		Images:            int64(len(f.Images)),
		Annotations:       int64(len(f.Annotations)),
		Categories:        int64(len(f.Categories)),
		Licenses:          int64(len(f.Licenses)),
		AnnotationsByKind: make(map[AnnotationKind]int64),
		CategoriesByKind:  make(map[CategoryKind]int64),
	}
	for _, a := range f.Annotations {
		s.AnnotationsByKind[a.Kind()]++
	}
	for _, c := range f.Categories {
		s.CategoriesByKind[c.Kind()]++
	}
	return s
}
