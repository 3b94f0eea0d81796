package crawl

import (
	"runtime"

	"github.com/datasetlab/cocokit/pkg/errors"
)

type options struct {
	version       string
	description   string
	absolutePaths bool
	concurrency   int
}

// Option configures a Crawler.
type Option func(*options) error

func defaultOptions() *options {
	return &options{
		version:     "1.0.0",
		concurrency: runtime.NumCPU(),
	}
}

// WithVersion sets the version string written to the output info block.
func WithVersion(version string) Option {
	return func(o *options) error {
		if version == "" {
			return &errors.ValidationError{
				Field: "version", Message: "must not be empty",
			}
		}
		o.version = version
		return nil
	}
}

// WithDescription sets the description written to the output info block.
func WithDescription(description string) Option {
	return func(o *options) error {
		o.description = description
		return nil
	}
}

// WithAbsolutePaths records absolute image paths instead of paths
// relative to the output file.
func WithAbsolutePaths() Option {
	return func(o *options) error {
		o.absolutePaths = true
		return nil
	}
}

// WithConcurrency bounds the number of images probed in parallel.
func WithConcurrency(n int) Option {
	return func(o *options) error {
		if n < 1 {
			return &errors.ValidationError{
				Field: "concurrency", Value: n, Message: "must be at least 1",
			}
		}
		o.concurrency = n
		return nil
	}
}
