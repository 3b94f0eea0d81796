package coco

import (
	"bytes"
	"fmt"
)

// IntBool is a boolean encoded on the wire as the integer 0 or 1, the
// way COCO encodes iscrowd and isthing. Any other value is a parse
// error.
type IntBool bool

// MarshalJSON implements json.Marshaler.
func (b IntBool) MarshalJSON() ([]byte, error) {
	if b {
		return []byte("1"), nil
	}
	return []byte("0"), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *IntBool) UnmarshalJSON(data []byte) error {
	switch string(bytes.TrimSpace(data)) {
	case "0":
		*b = false
	case "1":
		*b = true
	default:
		return fmt.Errorf("invalid bool value: %s", data)
	}
	return nil
}
