package coco

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// CategoryKind identifies which category variant a Category holds.
type CategoryKind string

// Category variants.
const (
	CategoryObjectDetection      CategoryKind = "object_detection"
	CategoryKeypointDetection    CategoryKind = "keypoint_detection"
	CategoryPanopticSegmentation CategoryKind = "panoptic_segmentation"
)

// ObjectDetectionCategory is also used by dense-pose annotations.
type ObjectDetectionCategory struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Supercategory string `json:"supercategory"`
}

// KeypointCategory extends object detection with a named keypoint
// sequence and skeleton edges. Both sequences are order-sensitive.
type KeypointCategory struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	Supercategory string   `json:"supercategory"`
	Keypoints     []string `json:"keypoints"`
	Skeleton      [][2]int `json:"skeleton"`
}

// PanopticCategory carries the stuff/thing flag and a display color.
type PanopticCategory struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	Supercategory string   `json:"supercategory"`
	IsThing       IntBool  `json:"isthing"`
	Color         [3]uint8 `json:"color"`
}

// Category is a tagged union over the three category variants. Exactly
// one of the variant pointers is non-nil.
type Category struct {
	ObjectDetection *ObjectDetectionCategory
	Keypoint        *KeypointCategory
	Panoptic        *PanopticCategory
}

// Kind reports which variant the category holds.
func (c Category) Kind() CategoryKind {
	switch {
	case c.Keypoint != nil:
		return CategoryKeypointDetection
	case c.Panoptic != nil:
		return CategoryPanopticSegmentation
	default:
		return CategoryObjectDetection
	}
}

// EntityID returns the category id.
func (c Category) EntityID() int {
	switch {
	case c.ObjectDetection != nil:
		return c.ObjectDetection.ID
	case c.Keypoint != nil:
		return c.Keypoint.ID
	case c.Panoptic != nil:
		return c.Panoptic.ID
	}
	return 0
}

// WithID returns a deep copy of the category carrying the given id.
func (c Category) WithID(id int) Category {
	out := c.Clone()
	switch {
	case out.ObjectDetection != nil:
		out.ObjectDetection.ID = id
	case out.Keypoint != nil:
		out.Keypoint.ID = id
	case out.Panoptic != nil:
		out.Panoptic.ID = id
	}
	return out
}

// Clone returns a deep copy of the category.
func (c Category) Clone() Category {
	var out Category
	switch {
	case c.ObjectDetection != nil:
		v := *c.ObjectDetection
		out.ObjectDetection = &v
	case c.Keypoint != nil:
		v := *c.Keypoint
		v.Keypoints = append([]string(nil), c.Keypoint.Keypoints...)
		v.Skeleton = append([][2]int(nil), c.Keypoint.Skeleton...)
		out.Keypoint = &v
	case c.Panoptic != nil:
		v := *c.Panoptic
		out.Panoptic = &v
	}
	return out
}

// Key returns the structural identity of the category, ignoring its id.
// Variant kind is part of the key, so categories of different variants
// never compare equal.
func (c Category) Key() string {
	switch {
	case c.Keypoint != nil:
		k := c.Keypoint
		var sb strings.Builder
		sb.WriteString("keypoint\x00")
		sb.WriteString(k.Name)
		sb.WriteString("\x00")
		sb.WriteString(k.Supercategory)
		sb.WriteString("\x00")
		sb.WriteString(strings.Join(k.Keypoints, "\x1f"))
		sb.WriteString("\x00")
		for _, edge := range k.Skeleton {
			sb.WriteString(strconv.Itoa(edge[0]))
			sb.WriteString(",")
			sb.WriteString(strconv.Itoa(edge[1]))
			sb.WriteString("\x1f")
		}
		return sb.String()
	case c.Panoptic != nil:
		p := c.Panoptic
		return fmt.Sprintf("panoptic\x00%s\x00%s\x00%t\x00%d,%d,%d",
			p.Name, p.Supercategory, bool(p.IsThing), p.Color[0], p.Color[1], p.Color[2])
	case c.ObjectDetection != nil:
		o := c.ObjectDetection
		return "object\x00" + o.Name + "\x00" + o.Supercategory
	}
	return ""
}

// MarshalJSON implements json.Marshaler by encoding the held variant.
func (c Category) MarshalJSON() ([]byte, error) {
	switch {
	case c.ObjectDetection != nil:
		return json.Marshal(c.ObjectDetection)
	case c.Keypoint != nil:
		return json.Marshal(c.Keypoint)
	case c.Panoptic != nil:
		return json.Marshal(c.Panoptic)
	}
	return nil, fmt.Errorf("category holds no variant")
}

// UnmarshalJSON implements json.Unmarshaler. Variant selection is by
// field presence, checked in a fixed order: keypoints marks a keypoint
// category, isthing or color marks a panoptic category, anything else
// is plain object detection.
func (c *Category) UnmarshalJSON(data []byte) error {
	var probe struct {
		Keypoints json.RawMessage `json:"keypoints"`
		IsThing   json.RawMessage `json:"isthing"`
		Color     json.RawMessage `json:"color"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}

	*c = Category{}
	switch {
	case probe.Keypoints != nil:
		c.Keypoint = &KeypointCategory{}
		return json.Unmarshal(data, c.Keypoint)
	case probe.IsThing != nil || probe.Color != nil:
		c.Panoptic = &PanopticCategory{}
		return json.Unmarshal(data, c.Panoptic)
	default:
		c.ObjectDetection = &ObjectDetectionCategory{}
		return json.Unmarshal(data, c.ObjectDetection)
	}
}
