package logging

import (
	"fmt"
	"io"
	"sync"
)

// Trail receives the human-readable progress lines a tool prints when run
// with --verbose ("Server ident: ...", "Sending command: ...").
type Trail interface {
	// Logf emits one line.
	Logf(format string, args ...any)
}

// NewTrail returns a Trail that writes to w when verbose is set, and one
// that discards everything otherwise.
func NewTrail(verbose bool, w io.Writer) Trail {
	if !verbose || w == nil {
		return Quiet()
	}
	return &writerTrail{w: w}
}

// Quiet returns a Trail that discards everything.
func Quiet() Trail {
	return quietTrail{}
}

type quietTrail struct{}

func (quietTrail) Logf(string, ...any) {}

type writerTrail struct {
	mu sync.Mutex
	w  io.Writer
}

func (t *writerTrail) Logf(format string, args ...any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, _ = fmt.Fprintf(t.w, format+"\n", args...)
}
