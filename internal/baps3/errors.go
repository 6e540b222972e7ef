package baps3

import (
	"errors"
	"fmt"
	"strings"

	"github.com/UniversityRadioYork/baps3-cli/internal/proto"
)

// Sentinel errors for BAPS3 sessions.
// These can be checked using errors.Is().
var (
	// ErrHungUp is returned when the server goes away while a response is
	// still expected.
	ErrHungUp = errors.New("server hung up")

	// ErrNotBaps3Server is returned when the server does not greet with OHAI.
	ErrNotBaps3Server = errors.New("not a BAPS3 server")

	// ErrClosed is returned when a command is sent on a closed session.
	ErrClosed = errors.New("session closed")
)

// MissingFeaturesError is returned when the server lacks features the
// caller requires.
type MissingFeaturesError struct {
	// Wanted lists the required features the server does not have.
	Wanted []string
	// Have lists the features the server advertised.
	Have []string
}

func (e *MissingFeaturesError) Error() string {
	return fmt.Sprintf("server is missing features: %s (server has: %s)",
		strings.Join(e.Wanted, " "), strings.Join(e.Have, " "))
}

// UnexpectedResponseError is returned when the server sends something other
// than what the current protocol stage expects.
type UnexpectedResponseError struct {
	Code        string
	Args        []string
	Expectation string
}

func (e *UnexpectedResponseError) Error() string {
	got := proto.New(e.Code, e.Args...).String()
	return fmt.Sprintf("unexpected response %q (expected %s)", got, e.Expectation)
}

// CommandInvalidError is returned when the server answers WHAT: the command
// was not understood.
type CommandInvalidError struct {
	Advice  string
	Command proto.Message
}

func (e *CommandInvalidError) Error() string {
	return fmt.Sprintf("command invalid: %s", e.Advice)
}

// CommandFailedError is returned when the server answers FAIL: the command
// was understood but could not be carried out.
type CommandFailedError struct {
	Advice  string
	Command proto.Message
}

func (e *CommandFailedError) Error() string {
	return fmt.Sprintf("command failed: %s", e.Advice)
}

// InvalidPathError is returned when a file argument cannot be resolved to a
// file the server can load.
type InvalidPathError struct {
	Path string
	Err  error
}

func (e *InvalidPathError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid path %q: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("invalid path %q", e.Path)
}

func (e *InvalidPathError) Unwrap() error {
	return e.Err
}

// IOError wraps a transport failure with the operation that hit it.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
