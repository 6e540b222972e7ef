package client

import (
	"log/slog"
	"time"
)

// Default configuration values.
const (
	// DefaultBufferSize is the capacity of the request and response channels.
	DefaultBufferSize = 64

	// DefaultDialTimeout bounds how long Dial waits for the TCP handshake.
	DefaultDialTimeout = 5 * time.Second

	// readBufferSize is the size of a single socket read.
	readBufferSize = 4096
)

// options holds the configuration for a connection.
type options struct {
	logger      *slog.Logger
	bufferSize  int
	dialTimeout time.Duration
}

// Option is a function that configures connection options.
type Option func(*options)

// BufferSizeOption sets the capacity of the request and response channels.
func BufferSizeOption(size int) Option {
	return func(o *options) {
		o.bufferSize = size
	}
}

// DialTimeoutOption sets the timeout used by Dial.
func DialTimeoutOption(timeout time.Duration) Option {
	return func(o *options) {
		o.dialTimeout = timeout
	}
}

// LoggerOption sets the diagnostic logger.
// If not set, slog.Default() is used.
func LoggerOption(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func buildOptions(opt []Option) options {
	var opts options
	for _, o := range opt {
		o(&opts)
	}

	if opts.bufferSize <= 0 {
		opts.bufferSize = DefaultBufferSize
	}
	if opts.dialTimeout <= 0 {
		opts.dialTimeout = DefaultDialTimeout
	}
	if opts.logger == nil {
		opts.logger = slog.Default()
	}

	return opts
}
