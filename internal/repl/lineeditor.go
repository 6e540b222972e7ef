package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ergochat/readline"
	"golang.org/x/term"

	"github.com/UniversityRadioYork/baps3-cli/internal/logging"
	"github.com/UniversityRadioYork/baps3-cli/internal/proto"
)

// LineSource yields lines of user input. ReadLine returns io.EOF when the
// input is exhausted.
type LineSource interface {
	ReadLine() (string, error)
}

// LineEditor reads lines from standard input. On a terminal it provides
// line editing and history; otherwise it reads plain lines.
type LineEditor struct {
	interactive bool

	rl *readline.Instance

	scanner *bufio.Scanner
}

// NewLineEditor returns a LineEditor for standard input. historyFile may be
// empty to disable history.
func NewLineEditor(historyFile string, historyLimit int) *LineEditor {
	isInteractive := term.IsTerminal(int(os.Stdin.Fd())) &&
		os.Getenv("INSIDE_EMACS") == ""

	if !isInteractive {
		return NewScannerEditor(os.Stdin)
	}

	rl, err := readline.NewFromConfig(&readline.Config{
		HistoryFile:            historyFile,
		HistoryLimit:           historyLimit,
		DisableAutoSaveHistory: true,
		Prompt:                 "",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: readline init failed (%v), using basic input\n", err)
		return NewScannerEditor(os.Stdin)
	}

	return &LineEditor{
		interactive: true,
		rl:          rl,
	}
}

// NewScannerEditor returns a non-interactive LineEditor reading from r.
func NewScannerEditor(r io.Reader) *LineEditor {
	return &LineEditor{scanner: bufio.NewScanner(r)}
}

// ReadLine returns the next line, without its line ending.
// Ctrl-C on a terminal is treated as end of input.
func (le *LineEditor) ReadLine() (string, error) {
	if !le.interactive {
		if !le.scanner.Scan() {
			if err := le.scanner.Err(); err != nil {
				return "", err
			}
			return "", io.EOF
		}
		return le.scanner.Text(), nil
	}

	line, err := le.rl.Readline()
	if err != nil {
		if errors.Is(err, readline.ErrInterrupt) {
			return "", io.EOF
		}
		return "", err
	}

	if trimmed := strings.TrimSpace(line); trimmed != "" {
		le.rl.SaveToHistory(trimmed)
	}
	return line, nil
}

// Close releases the terminal.
func (le *LineEditor) Close() error {
	if le.rl != nil {
		return le.rl.Close()
	}
	return nil
}

// ReadMessages starts the input goroutine: it decodes every line from src
// into messages and sends them on the returned channel, which is closed at
// end of input. Quoting may span lines, as on the wire.
func ReadMessages(src LineSource) <-chan proto.Message {
	out := make(chan proto.Message)

	go func() {
		defer close(out)
		defer logging.Recover("input", nil)

		var u proto.Unpacker
		for {
			line, err := src.ReadLine()
			if err != nil {
				if !errors.Is(err, io.EOF) {
					fmt.Fprintf(os.Stderr, "error reading input: %v\n", err)
				}
				if u.Pending() {
					slog.Warn("input ended inside a quoted word, discarding it")
				}
				return
			}

			for _, words := range u.FeedString(line + "\n") {
				m, ok := proto.FromWords(words)
				if !ok {
					slog.Debug("ignoring input without a command word", "words", words)
					continue
				}
				out <- m
			}
		}
	}()

	return out
}
