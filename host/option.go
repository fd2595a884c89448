package host

import "github.com/ardnew/dots/log"

// Option configures forcing and manifest loading.
type Option func(*options)

type options struct {
	logger  log.Logger
	keepEnv bool
}

// WithLogger sets the logger used for trace-level records.
func WithLogger(logger log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithKeepEnv makes forcing cache the value without releasing the
// environment, so the promise can still take a new expression.
func WithKeepEnv(keep bool) Option {
	return func(o *options) { o.keepEnv = keep }
}

func makeOptions(opts ...Option) options {
	var o options

	for _, opt := range opts {
		opt(&o)
	}

	return o
}
