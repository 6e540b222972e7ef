// Package repl implements the interactive BAPS3 client.
//
// The client starts disconnected. "connect" opens a session, during which
// typed lines are sent to the server and server messages are printed, and
// "disconnect" or the server hanging up returns to the disconnected state.
package repl

import (
	"context"
	"io"
	"log/slog"

	"github.com/UniversityRadioYork/baps3-cli/internal/client"
	"github.com/UniversityRadioYork/baps3-cli/internal/proto"
)

const offlineIntro = "You are not connected to a BAPS3 server. Connect to one to " +
	"send it commands; while connected, type \"help\" to see the commands the " +
	"client handles itself. Anything else you type is sent to the server as-is."

// DialFunc opens a connection to addr.
type DialFunc func(ctx context.Context, addr string) (*client.Client, error)

// Config configures a REPL.
type Config struct {
	// Target is the address "connect" uses when given none.
	Target string
	// ReportTime sets whether TIME updates are shown when a session starts.
	ReportTime bool
	// Dial opens connections. It defaults to client.Dial.
	Dial DialFunc
}

// REPL is the interactive client's outer, disconnected-state loop.
type REPL struct {
	cfg      Config
	input    <-chan proto.Message
	out      *Printer
	commands OfflineCommands
}

// New returns a REPL reading commands from input and printing to w.
func New(cfg Config, input <-chan proto.Message, w io.Writer) *REPL {
	if cfg.Dial == nil {
		cfg.Dial = func(ctx context.Context, addr string) (*client.Client, error) {
			return client.Dial(ctx, addr)
		}
	}
	return &REPL{
		cfg:      cfg,
		input:    input,
		out:      NewPrinter(w),
		commands: DefaultOfflineCommands(),
	}
}

// Run processes commands until "quit" or the end of input.
func (r *REPL) Run(ctx context.Context) {
	r.out.Line("Disconnected")

	for msg := range r.input {
		switch {
		case is(msg, r.commands.Quit):
			r.out.Line("Quitting")
			return

		case is(msg, r.commands.Help):
			r.out.Help(offlineIntro, r.commands)

		case msg.Word() == "connect" && msg.NumArgs() <= 1:
			addr, ok := msg.Arg(0)
			if !ok {
				addr = r.cfg.Target
			}
			c, err := r.cfg.Dial(ctx, addr)
			if err != nil {
				r.out.Error(err)
				continue
			}
			if r.session(addr, c) {
				r.out.Line("Quitting")
				return
			}
			r.out.Line("Disconnected")

		default:
			r.out.Line("can't do that, disconnected!")
		}
	}

	r.out.Line("Quitting")
}

// session runs one interactive session over c, reporting whether the user
// asked to exit the program.
func (r *REPL) session(addr string, c *client.Client) bool {
	defer func() {
		if err := c.Close(); err != nil {
			slog.Debug("session closed with error", "addr", addr, "error", err)
		}
	}()

	r.out.Status("connected to %s", addr)
	return NewMultiplexer(r.out, r.cfg.ReportTime).Run(r.input, c)
}
