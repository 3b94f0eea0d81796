package merge

import "github.com/datasetlab/cocokit/pkg/coco"

// DroppedImage records an image skipped because its id collided with
// an already merged image. Its annotations were skipped with it.
type DroppedImage struct {
	Path    string
	ImageID int64
}

// Result is the outcome of a merge run.
type Result struct {
	File    *coco.File
	Dropped []DroppedImage
}
