package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReferenceError(t *testing.T) {
	err := NewReferenceError("train.json", "category", 7, "annotation 12")

	assert.Equal(t, "category id 7 not found for annotation 12 in file train.json", err.Error())
	assert.True(t, errors.Is(err, ErrMissingReference))
	assert.True(t, IsMissingReference(err))
	assert.False(t, IsMissingReference(ErrInvalidInput))
}

func TestReferenceErrorWrapped(t *testing.T) {
	err := fmt.Errorf("merging datasets: %w", NewReferenceError("a.json", "license", 3, "image 9"))

	assert.True(t, IsMissingReference(err))

	var refErr *ReferenceError
	assert.True(t, errors.As(err, &refErr))
	assert.Equal(t, "license", refErr.Kind)
	assert.Equal(t, int64(3), refErr.ID)
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Field: "count", Message: "must be positive"}

	assert.Equal(t, "validation failed for field count: must be positive", err.Error())
	assert.True(t, IsValidationError(err))

	bare := &ValidationError{Message: "bad input"}
	assert.Equal(t, "validation failed: bad input", bare.Error())
}

func TestParseError(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	err := WrapParse("json", "broken.json", cause)

	assert.Contains(t, err.Error(), "broken.json")
	assert.Equal(t, cause, errors.Unwrap(err))

	assert.Nil(t, WrapParse("json", "ok.json", nil))
}

func TestIOError(t *testing.T) {
	cause := errors.New("permission denied")
	err := WrapIO("write", "/tmp/out.json", cause)

	assert.Contains(t, err.Error(), "write")
	assert.Contains(t, err.Error(), "/tmp/out.json")
	assert.Equal(t, cause, errors.Unwrap(err))

	assert.Nil(t, WrapIO("read", "x", nil))
}
