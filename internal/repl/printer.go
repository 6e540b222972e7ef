package repl

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/UniversityRadioYork/baps3-cli/internal/proto"
)

// Line prefixes. They keep traffic distinguishable when colour is off.
const (
	prefixSent     = "> "
	prefixReceived = "< "
	prefixError    = "! "
	prefixTime     = "@ "
	prefixStatus   = "* "
)

// wrapWidth is the column at which prose output is wrapped.
const wrapWidth = 72

// Printer writes the client's output lines.
type Printer struct {
	w      io.Writer
	styles Styles
	help   help.Model
}

// NewPrinter returns a Printer writing to w, styled for whatever w is.
func NewPrinter(w io.Writer) *Printer {
	styles := NewStyles(lipgloss.NewRenderer(w))

	h := help.New()
	h.Styles = help.Styles{
		Ellipsis:       styles.Status,
		ShortKey:       styles.HelpKey,
		ShortDesc:      styles.HelpDesc,
		ShortSeparator: styles.Status,
		FullKey:        styles.HelpKey,
		FullDesc:       styles.HelpDesc,
		FullSeparator:  styles.Status,
	}

	return &Printer{w: w, styles: styles, help: h}
}

// Sent prints a message forwarded to the server.
func (p *Printer) Sent(m proto.Message) {
	p.println(p.styles.Sent.Render(prefixSent + m.String()))
}

// Received prints a message from the server.
func (p *Printer) Received(m proto.Message) {
	p.println(p.styles.Received.Render(prefixReceived + m.String()))
}

// Error prints an error.
func (p *Printer) Error(err error) {
	p.println(p.styles.Error.Render(prefixError + err.Error()))
}

// Time prints a playback position.
func (p *Printer) Time(t string) {
	p.println(p.styles.Time.Render(prefixTime + t))
}

// Status prints a local status line.
func (p *Printer) Status(format string, args ...any) {
	p.println(p.styles.Status.Render(prefixStatus + fmt.Sprintf(format, args...)))
}

// Line prints s unstyled.
func (p *Printer) Line(s string) {
	p.println(s)
}

// Help prints an optional wrapped introduction followed by the bindings
// in km.
func (p *Printer) Help(intro string, km help.KeyMap) {
	if intro != "" {
		p.println(wordwrap.String(intro, wrapWidth))
	}
	p.println(p.help.FullHelpView(km.FullHelp()))
}

func (p *Printer) println(s string) {
	_, _ = fmt.Fprintln(p.w, s)
}
