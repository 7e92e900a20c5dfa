package dashboard

import (
	"log/slog"

	"github.com/dcode-github/dormdash/gateway"
)

type options struct {
	logger *slog.Logger
	creds  *gateway.Credentials
}

type Option func(*options)

func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithCredentials sets the owner credentials sent along with deletes.
func WithCredentials(c *gateway.Credentials) Option {
	return func(o *options) { o.creds = c }
}

func collect(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
