package coco

// License is one image license record.
type License struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Key returns the structural identity of the license: two licenses with
// the same name and url are the same license regardless of their ids.
func (l License) Key() string {
	return l.Name + "\x00" + l.URL
}

// EntityID returns the license id.
func (l License) EntityID() int {
	return l.ID
}

// WithID returns a copy of the license carrying the given id.
func (l License) WithID(id int) License {
	l.ID = id
	return l
}
