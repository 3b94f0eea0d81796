package coco

import (
	"encoding/json"
	"fmt"
)

// AnnotationKind identifies which annotation variant an Annotation holds.
type AnnotationKind string

// Annotation variants.
const (
	AnnotationObjectDetection      AnnotationKind = "object_detection"
	AnnotationKeypointDetection    AnnotationKind = "keypoint_detection"
	AnnotationPanopticSegmentation AnnotationKind = "panoptic_segmentation"
	AnnotationImageCaptioning      AnnotationKind = "image_captioning"
	AnnotationDensePose            AnnotationKind = "dense_pose"
)

// ObjectDetectionAnnotation is a bounding box plus segmentation for one
// object instance.
type ObjectDetectionAnnotation struct {
	ID           int64        `json:"id"`
	ImageID      int64        `json:"image_id"`
	CategoryID   int          `json:"category_id"`
	Segmentation Segmentation `json:"segmentation"`
	Area         float64      `json:"area"`
	BBox         [4]float64   `json:"bbox"`
	IsCrowd      IntBool      `json:"iscrowd"`
}

// KeypointAnnotation extends object detection with a keypoint sequence
// of [x1, y1, v1, x2, y2, v2, ...] triples.
type KeypointAnnotation struct {
	ID           int64        `json:"id"`
	ImageID      int64        `json:"image_id"`
	CategoryID   int          `json:"category_id"`
	Segmentation Segmentation `json:"segmentation"`
	Area         float64      `json:"area"`
	BBox         [4]float64   `json:"bbox"`
	IsCrowd      IntBool      `json:"iscrowd"`
	Keypoints    []float64    `json:"keypoints"`
	NumKeypoints int          `json:"num_keypoints"`
}

// SegmentInfo is one region entry inside a panoptic annotation. Its id
// lives in the same global namespace as top-level annotation ids.
type SegmentInfo struct {
	ID         int64      `json:"id"`
	CategoryID int        `json:"category_id"`
	Area       int        `json:"area"`
	BBox       [4]float64 `json:"bbox"`
	IsCrowd    IntBool    `json:"iscrowd"`
}

// PanopticAnnotation has no own id; each of its segments does.
type PanopticAnnotation struct {
	ImageID      int64         `json:"image_id"`
	FileName     string        `json:"file_name"`
	SegmentsInfo []SegmentInfo `json:"segments_info"`
}

// CaptionAnnotation is a free-text caption for an image.
type CaptionAnnotation struct {
	ID      int64  `json:"id"`
	ImageID int64  `json:"image_id"`
	Caption string `json:"caption"`
}

// DensePoseAnnotation maps image pixels to a body surface model. It
// references object-detection categories.
type DensePoseAnnotation struct {
	ID         int64      `json:"id"`
	ImageID    int64      `json:"image_id"`
	CategoryID int        `json:"category_id"`
	IsCrowd    IntBool    `json:"iscrowd"`
	Area       int        `json:"area"`
	BBox       [4]float64 `json:"bbox"`
	DPI        []float64  `json:"dp_I"`
	DPU        []float64  `json:"dp_U"`
	DPV        []float64  `json:"dp_V"`
	DPX        []float64  `json:"dp_x"`
	DPY        []float64  `json:"dp_y"`
	DPMasks    []RLE      `json:"dp_masks"`
}

// Annotation is a tagged union over the five annotation variants.
// Exactly one of the variant pointers is non-nil.
type Annotation struct {
	ObjectDetection *ObjectDetectionAnnotation
	Keypoint        *KeypointAnnotation
	Panoptic        *PanopticAnnotation
	Caption         *CaptionAnnotation
	DensePose       *DensePoseAnnotation
}

// Kind reports which variant the annotation holds.
func (a Annotation) Kind() AnnotationKind {
	switch {
	case a.Keypoint != nil:
		return AnnotationKeypointDetection
	case a.Panoptic != nil:
		return AnnotationPanopticSegmentation
	case a.Caption != nil:
		return AnnotationImageCaptioning
	case a.DensePose != nil:
		return AnnotationDensePose
	default:
		return AnnotationObjectDetection
	}
}

// ImageID returns the id of the image the annotation belongs to.
func (a Annotation) ImageID() int64 {
	switch {
	case a.ObjectDetection != nil:
		return a.ObjectDetection.ImageID
	case a.Keypoint != nil:
		return a.Keypoint.ImageID
	case a.Panoptic != nil:
		return a.Panoptic.ImageID
	case a.Caption != nil:
		return a.Caption.ImageID
	case a.DensePose != nil:
		return a.DensePose.ImageID
	}
	return 0
}

// SetImageID rewrites the image reference on the held variant.
func (a *Annotation) SetImageID(id int64) {
	switch {
	case a.ObjectDetection != nil:
		a.ObjectDetection.ImageID = id
	case a.Keypoint != nil:
		a.Keypoint.ImageID = id
	case a.Panoptic != nil:
		a.Panoptic.ImageID = id
	case a.Caption != nil:
		a.Caption.ImageID = id
	case a.DensePose != nil:
		a.DensePose.ImageID = id
	}
}

// Clone returns a deep copy of the annotation.
func (a Annotation) Clone() Annotation {
	var out Annotation
	switch {
	case a.ObjectDetection != nil:
		v := *a.ObjectDetection
		v.Segmentation = a.ObjectDetection.Segmentation.Clone()
		out.ObjectDetection = &v
	case a.Keypoint != nil:
		v := *a.Keypoint
		v.Segmentation = a.Keypoint.Segmentation.Clone()
		v.Keypoints = append([]float64(nil), a.Keypoint.Keypoints...)
		out.Keypoint = &v
	case a.Panoptic != nil:
		v := *a.Panoptic
		v.SegmentsInfo = append([]SegmentInfo(nil), a.Panoptic.SegmentsInfo...)
		out.Panoptic = &v
	case a.Caption != nil:
		v := *a.Caption
		out.Caption = &v
	case a.DensePose != nil:
		v := *a.DensePose
		v.DPI = append([]float64(nil), a.DensePose.DPI...)
		v.DPU = append([]float64(nil), a.DensePose.DPU...)
		v.DPV = append([]float64(nil), a.DensePose.DPV...)
		v.DPX = append([]float64(nil), a.DensePose.DPX...)
		v.DPY = append([]float64(nil), a.DensePose.DPY...)
		v.DPMasks = make([]RLE, len(a.DensePose.DPMasks))
		for i, m := range a.DensePose.DPMasks {
			v.DPMasks[i] = m.Clone()
		}
		out.DensePose = &v
	}
	return out
}

// MarshalJSON implements json.Marshaler by encoding the held variant.
func (a Annotation) MarshalJSON() ([]byte, error) {
	switch {
	case a.ObjectDetection != nil:
		return json.Marshal(a.ObjectDetection)
	case a.Keypoint != nil:
		return json.Marshal(a.Keypoint)
	case a.Panoptic != nil:
		return json.Marshal(a.Panoptic)
	case a.Caption != nil:
		return json.Marshal(a.Caption)
	case a.DensePose != nil:
		return json.Marshal(a.DensePose)
	}
	return nil, fmt.Errorf("annotation holds no variant")
}

// UnmarshalJSON implements json.Unmarshaler. Variant selection is by
// field presence, checked in a fixed order:
//
//  1. segments_info  -> panoptic segmentation
//  2. keypoints      -> keypoint detection
//  3. caption        -> image captioning
//  4. segmentation   -> object detection
//  5. dp_masks       -> dense pose
//
// The order matters: a keypoint annotation carries every
// object-detection field, and a dense-pose annotation carries bbox and
// area but no segmentation.
func (a *Annotation) UnmarshalJSON(data []byte) error {
	var probe struct {
		SegmentsInfo json.RawMessage `json:"segments_info"`
		Keypoints    json.RawMessage `json:"keypoints"`
		Caption      json.RawMessage `json:"caption"`
		Segmentation json.RawMessage `json:"segmentation"`
		DPMasks      json.RawMessage `json:"dp_masks"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}

	*a = Annotation{}
	switch {
	case probe.SegmentsInfo != nil:
		a.Panoptic = &PanopticAnnotation{}
		return json.Unmarshal(data, a.Panoptic)
	case probe.Keypoints != nil:
		a.Keypoint = &KeypointAnnotation{}
		return json.Unmarshal(data, a.Keypoint)
	case probe.Caption != nil:
		a.Caption = &CaptionAnnotation{}
		return json.Unmarshal(data, a.Caption)
	case probe.Segmentation != nil:
		a.ObjectDetection = &ObjectDetectionAnnotation{}
		return json.Unmarshal(data, a.ObjectDetection)
	case probe.DPMasks != nil:
		a.DensePose = &DensePoseAnnotation{}
		return json.Unmarshal(data, a.DensePose)
	default:
		return fmt.Errorf("annotation matches no known variant")
	}
}
