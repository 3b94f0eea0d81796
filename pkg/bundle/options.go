package bundle

type options struct {
	absolutePaths bool
}

// Option configures a Bundler.
type Option func(*options) error

func defaultOptions() *options {
	return &options{}
}

// WithAbsolutePaths records absolute paths for the copied images
// instead of paths relative to the bundle directory.
func WithAbsolutePaths() Option {
	return func(o *options) error {
		o.absolutePaths = true
		return nil
	}
}
