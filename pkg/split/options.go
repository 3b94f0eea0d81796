package split

import (
	"github.com/datasetlab/cocokit/pkg/errors"
)

type options struct {
	count         int
	hasCount      bool
	offset        int
	shuffle       bool
	seed          int64
	hasSeed       bool
	annotatedOnly bool
	absolutePaths bool
	blacklist     map[int64]struct{}
}

// Option configures a Splitter.
type Option func(*options) error

func defaultOptions() *options {
	return &options{blacklist: make(map[int64]struct{})}
}

// WithCount limits the split to n images. Without it, everything left
// after the offset and filters is included.
func WithCount(n int) Option {
	return func(o *options) error {
		if n < 0 {
			return &errors.ValidationError{
				Field: "count", Value: n, Message: "must not be negative",
			}
		}
		o.count = n
		o.hasCount = true
		return nil
	}
}

// WithOffset skips the first n selectable images. Only meaningful with
// the deterministic id ordering, so it cannot be combined with
// shuffling.
func WithOffset(n int) Option {
	return func(o *options) error {
		if n < 0 {
			return &errors.ValidationError{
				Field: "offset", Value: n, Message: "must not be negative",
			}
		}
		o.offset = n
		return nil
	}
}

// WithShuffle randomizes image order before selection.
func WithShuffle() Option {
	return func(o *options) error {
		o.shuffle = true
		return nil
	}
}

// WithShuffleSeed randomizes image order with a fixed seed, making the
// selection reproducible.
func WithShuffleSeed(seed int64) Option {
	return func(o *options) error {
		o.shuffle = true
		o.seed = seed
		o.hasSeed = true
		return nil
	}
}

// WithAnnotatedOnly keeps only images that have at least one
// annotation.
func WithAnnotatedOnly() Option {
	return func(o *options) error {
		o.annotatedOnly = true
		return nil
	}
}

// WithAbsolutePaths writes absolute image paths into the output
// instead of paths relative to the output file.
func WithAbsolutePaths() Option {
	return func(o *options) error {
		o.absolutePaths = true
		return nil
	}
}

// WithBlacklistIDs excludes the given image ids from the split.
// Repeated use accumulates.
func WithBlacklistIDs(ids []int64) Option {
	return func(o *options) error {
		for _, id := range ids {
			o.blacklist[id] = struct{}{}
		}
		return nil
	}
}
