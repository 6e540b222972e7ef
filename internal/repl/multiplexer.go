package repl

import (
	"log/slog"

	"github.com/UniversityRadioYork/baps3-cli/internal/client"
	"github.com/UniversityRadioYork/baps3-cli/internal/playtime"
	"github.com/UniversityRadioYork/baps3-cli/internal/proto"
)

const wordTime = "TIME"

// Conn is the part of a client connection the Multiplexer needs.
// *client.Client implements it.
type Conn interface {
	Send(client.Request) bool
	Responses() <-chan client.Response
}

// Multiplexer merges local commands with a connection's responses for one
// interactive session. Its state belongs to the goroutine calling Run.
type Multiplexer struct {
	out        *Printer
	directives Directives

	reportTime bool
	lastTime   string
}

// NewMultiplexer returns a Multiplexer printing to out. reportTime sets
// whether TIME updates are shown initially.
func NewMultiplexer(out *Printer, reportTime bool) *Multiplexer {
	return &Multiplexer{
		out:        out,
		directives: DefaultDirectives(),
		reportTime: reportTime,
	}
}

// Run handles local commands and server responses until the session ends.
// It returns true only when the user asked to exit the whole program.
func (m *Multiplexer) Run(local <-chan proto.Message, conn Conn) bool {
	responses := conn.Responses()

	for {
		select {
		case msg, ok := <-local:
			if !ok {
				return false
			}
			if done, exit := m.handleLocal(msg, conn); done {
				return exit
			}

		case r, ok := <-responses:
			if !ok {
				return false
			}
			if m.handleResponse(r) {
				return false
			}
		}
	}
}

// handleLocal acts on one local command. done is set when the session is
// over, and exit when the program should exit too.
func (m *Multiplexer) handleLocal(msg proto.Message, conn Conn) (done, exit bool) {
	d := m.directives

	switch {
	case is(msg, d.Disconnect):
		conn.Send(client.QuitRequest())
		return true, false

	case is(msg, d.Quit):
		conn.Send(client.QuitRequest())
		return true, true

	case is(msg, d.Help):
		m.out.Help("", d)

	case is(msg, d.ToggleTimeReport):
		m.reportTime = !m.reportTime
		if m.reportTime {
			m.out.Status("time reporting on")
		} else {
			m.out.Status("time reporting off")
		}

	case is(msg, d.ReportTime):
		if m.lastTime == "" {
			m.out.Status("no time reported yet")
		} else {
			m.out.Time(m.lastTime)
		}

	default:
		m.out.Sent(msg)
		if !conn.Send(client.SendRequest(msg)) {
			slog.Debug("dropped command, writer has exited", "message", msg.String())
		}
	}

	return false, false
}

// handleResponse acts on one response, reporting whether it ended the
// session.
func (m *Multiplexer) handleResponse(r client.Response) bool {
	switch r.Kind {
	case client.ResponseGone:
		return true

	case client.ResponseError:
		m.out.Error(r.Err)
		return true
	}

	if r.Message.Word() == wordTime {
		m.handleTime(r.Message)
		return false
	}

	m.out.Received(r.Message)
	return false
}

// handleTime records a TIME update, printing it if it changed the
// displayed time. Malformed updates are ignored.
func (m *Multiplexer) handleTime(msg proto.Message) {
	arg, ok := msg.Arg(0)
	if !ok || msg.NumArgs() != 1 {
		return
	}
	micros, err := playtime.ParseMicros(arg)
	if err != nil {
		return
	}

	t := playtime.Format(micros)
	if t == m.lastTime {
		return
	}
	m.lastTime = t

	if m.reportTime {
		m.out.Time(t)
	}
}
