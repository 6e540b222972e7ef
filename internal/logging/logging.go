// Package logging sets up the diagnostic log the baps3 tools write in the
// background, and the verbose progress trail they print on request.
//
// The diagnostic log is JSON, one entry per line, appended to a file under
// the baps3 base directory. Nothing in it is meant for the terminal.
package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/UniversityRadioYork/baps3-cli/internal/paths"
)

// DefaultLogPath is where the diagnostic log goes when no path is
// configured: baps3.log in the base directory, or the temp dir if the base
// directory cannot be found.
func DefaultLogPath() string {
	if path, err := paths.LogPath(); err == nil {
		return path
	}
	return filepath.Join(os.TempDir(), "baps3.log")
}

// ParseLevel maps a configured level name (debug, info, warn, error, in any
// case) to a slog level. Anything unrecognised logs at info.
func ParseLevel(name string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Setup makes the default slog logger append JSON entries at level or above
// to the file at path, or DefaultLogPath if path is empty. Every entry
// carries the process ID so runs sharing the file can be told apart.
// The returned func closes the file.
func Setup(path string, level slog.Level) (func(), error) {
	f, err := openAppend(path)
	if err != nil {
		return nil, err
	}

	handler := slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler).With("pid", os.Getpid()))

	return func() { _ = f.Close() }, nil
}

func openAppend(path string) (*os.File, error) {
	if path == "" {
		path = DefaultLogPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// Recover stops a panic in the calling goroutine from taking the process
// down. It logs the panic and the stack, then calls then (if non-nil) with
// the recovered value. Defer it first thing in a goroutine:
//
//	defer logging.Recover("reader", nil)
func Recover(goroutine string, then func(any)) {
	r := recover()
	if r == nil {
		return
	}

	slog.Error("goroutine panicked",
		"goroutine", goroutine,
		"panic", r,
		"stack", string(debug.Stack()),
	)
	if then != nil {
		then(r)
	}
}
