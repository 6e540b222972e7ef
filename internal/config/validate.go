package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// Validation errors.
var (
	ErrEmptyTarget         = errors.New("target cannot be empty")
	ErrInvalidTarget       = errors.New("target must be host:port")
	ErrInvalidLogLevel     = errors.New("log level must be debug, info, warn or error")
	ErrInvalidHistoryLimit = errors.New("history limit must be positive")
	ErrInvalidDialTimeout  = errors.New("dial timeout must be a positive duration")
	ErrInvalidBufferSize   = errors.New("buffer size must be positive")
)

// validLogLevels is the list of valid log level values.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// ValidationError wraps a validation error with context.
type ValidationError struct {
	Field   string
	Value   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("%s: %s (got %q)", e.Field, e.Message, e.Value)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Validate checks every field of cfg, returning the first problem found.
func Validate(cfg *Config) error {
	if err := ValidateTarget(cfg.Target); err != nil {
		return err
	}
	if err := ValidateLogLevel(cfg.Log.Level); err != nil {
		return err
	}

	if cfg.REPL.HistoryLimit <= 0 {
		return &ValidationError{
			Field:   "repl.history_limit",
			Value:   strconv.Itoa(cfg.REPL.HistoryLimit),
			Message: "must be greater than zero",
			Err:     ErrInvalidHistoryLimit,
		}
	}

	if d, err := time.ParseDuration(cfg.Connection.DialTimeout); err != nil || d <= 0 {
		return &ValidationError{
			Field:   "connection.dial_timeout",
			Value:   cfg.Connection.DialTimeout,
			Message: "must be a positive duration such as \"5s\"",
			Err:     ErrInvalidDialTimeout,
		}
	}

	if cfg.Connection.BufferSize <= 0 {
		return &ValidationError{
			Field:   "connection.buffer_size",
			Value:   strconv.Itoa(cfg.Connection.BufferSize),
			Message: "must be greater than zero",
			Err:     ErrInvalidBufferSize,
		}
	}

	return nil
}

// ValidateTarget validates a server address.
func ValidateTarget(target string) error {
	if target == "" {
		return &ValidationError{
			Field:   "target",
			Message: "cannot be empty",
			Err:     ErrEmptyTarget,
		}
	}

	_, port, err := net.SplitHostPort(target)
	if err != nil || port == "" {
		return &ValidationError{
			Field:   "target",
			Value:   target,
			Message: "must be host:port",
			Err:     ErrInvalidTarget,
		}
	}

	if n, err := strconv.Atoi(port); err != nil || n < 1 || n > 65535 {
		return &ValidationError{
			Field:   "target",
			Value:   target,
			Message: "port must be a number between 1 and 65535",
			Err:     ErrInvalidTarget,
		}
	}

	return nil
}

// ValidateLogLevel validates a log level name. Empty means the default.
func ValidateLogLevel(level string) error {
	if level == "" || validLogLevels[strings.ToLower(level)] {
		return nil
	}
	return &ValidationError{
		Field:   "log.level",
		Value:   level,
		Message: "must be debug, info, warn or error",
		Err:     ErrInvalidLogLevel,
	}
}
