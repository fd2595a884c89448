package lazy

import (
	"github.com/ardnew/dots/log"
)

// Option configures an operation.
type Option func(*options)

type options struct {
	logger log.Logger
}

// WithLogger sets the structured logger used for trace-level records.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func makeOptions(opts ...Option) options {
	var o options

	for _, opt := range opts {
		opt(&o)
	}

	return o
}
