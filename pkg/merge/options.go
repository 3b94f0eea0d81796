package merge

import (
	"github.com/rs/zerolog"

	"github.com/datasetlab/cocokit/pkg/errors"
	"github.com/datasetlab/cocokit/pkg/logging"
)

// DefaultVersion is recorded in the output info block when no version
// is configured.
const DefaultVersion = "1.0.0"

type options struct {
	reassignClashingIDs bool
	version             string
	description         string
	logger              zerolog.Logger
}

// Option configures a Merger.
type Option func(*options) error

func defaultOptions() *options {
	return &options{
		version: DefaultVersion,
		logger:  *logging.Default(),
	}
}

// WithReassignClashingIDs makes the merger assign fresh ids to images
// whose ids collide with already merged ones, instead of dropping them.
func WithReassignClashingIDs() Option {
	return func(o *options) error {
		o.reassignClashingIDs = true
		return nil
	}
}

// WithVersion sets the version string written to the output info block.
func WithVersion(version string) Option {
	return func(o *options) error {
		if version == "" {
			return &errors.ValidationError{
				Field:   "version",
				Message: "must not be empty",
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

// WithLogger routes merge warnings through the given logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}
