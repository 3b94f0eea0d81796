package coco

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// RLE is a run-length-encoded mask. It is opaque to every tool in this
// module and passed through unchanged.
type RLE struct {
	Counts []int  `json:"counts"`
	Size   [2]int `json:"size"`
}

// Clone returns a deep copy of the RLE.
func (r RLE) Clone() RLE {
	r.Counts = append([]int(nil), r.Counts...)
	return r
}

// Segmentation is either an RLE mask object or a list of polygons,
// each polygon a flat [x1, y1, x2, y2, ...] sequence.
type Segmentation struct {
	RLE      *RLE
	Polygons [][]float64
}

// Clone returns a deep copy of the segmentation.
func (s Segmentation) Clone() Segmentation {
	var out Segmentation
	if s.RLE != nil {
		r := s.RLE.Clone()
		out.RLE = &r
	}
	if s.Polygons != nil {
		out.Polygons = make([][]float64, len(s.Polygons))
		for i, poly := range s.Polygons {
			out.Polygons[i] = append([]float64(nil), poly...)
		}
	}
	return out
}

// MarshalJSON implements json.Marshaler.
func (s Segmentation) MarshalJSON() ([]byte, error) {
	if s.RLE != nil {
		return json.Marshal(s.RLE)
	}
	if s.Polygons == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.Polygons)
}

// UnmarshalJSON implements json.Unmarshaler. An object is an RLE mask,
// an array is a polygon list.
func (s *Segmentation) UnmarshalJSON(data []byte) error {
	*s = Segmentation{}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return fmt.Errorf("empty segmentation value")
	}
	switch trimmed[0] {
	case '{':
		s.RLE = &RLE{}
		return json.Unmarshal(data, s.RLE)
	case '[':
		return json.Unmarshal(data, &s.Polygons)
	default:
		return fmt.Errorf("invalid segmentation value: %s", trimmed)
	}
}
