package coco

import "time"

// Image is one image record. FileName is interpreted relative to the
// directory containing the dataset file that declares it, unless it is
// already absolute.
type Image struct {
	ID           int64      `json:"id"`
	Width        int        `json:"width"`
	Height       int        `json:"height"`
	FileName     string     `json:"file_name"`
	License      *int       `json:"license,omitempty"`
	FlickrURL    *string    `json:"flickr_url,omitempty"`
	CocoURL      *string    `json:"coco_url,omitempty"`
	DateCaptured *time.Time `json:"date_captured,omitempty"`
}

// Clone returns a deep copy of the image.
func (img Image) Clone() Image {
	out := img
	if img.License != nil {
		v := *img.License
		out.License = &v
	}
	if img.FlickrURL != nil {
		v := *img.FlickrURL
		out.FlickrURL = &v
	}
	if img.CocoURL != nil {
		v := *img.CocoURL
		out.CocoURL = &v
	}
	if img.DateCaptured != nil {
		v := *img.DateCaptured
		out.DateCaptured = &v
	}
	return out
}
