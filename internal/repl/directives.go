package repl

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/UniversityRadioYork/baps3-cli/internal/proto"
)

// word lets a message word be matched against key bindings.
type word string

func (w word) String() string { return string(w) }

// Directives are the commands the interactive client handles itself while
// connected. They are never forwarded to the server.
type Directives struct {
	Disconnect       key.Binding
	Quit             key.Binding
	Help             key.Binding
	ToggleTimeReport key.Binding
	ReportTime       key.Binding
}

// DefaultDirectives returns the connected-mode directives.
func DefaultDirectives() Directives {
	return Directives{
		Disconnect: key.NewBinding(
			key.WithKeys("disconnect"),
			key.WithHelp("disconnect", "end the session and stay in the client"),
		),
		Quit: key.NewBinding(
			key.WithKeys("quit"),
			key.WithHelp("quit", "end the session and exit"),
		),
		Help: key.NewBinding(
			key.WithKeys("help"),
			key.WithHelp("help", "show this help"),
		),
		ToggleTimeReport: key.NewBinding(
			key.WithKeys("toggle-time-report"),
			key.WithHelp("toggle-time-report", "turn playback time display on or off"),
		),
		ReportTime: key.NewBinding(
			key.WithKeys("report-time"),
			key.WithHelp("report-time", "show the last playback time the server sent"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (d Directives) ShortHelp() []key.Binding {
	return []key.Binding{d.Disconnect, d.Quit, d.Help}
}

// FullHelp implements help.KeyMap.
func (d Directives) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{d.Disconnect, d.Quit, d.Help, d.ToggleTimeReport, d.ReportTime},
	}
}

// OfflineCommands are the commands understood while disconnected.
type OfflineCommands struct {
	Connect key.Binding
	Quit    key.Binding
	Help    key.Binding
}

// DefaultOfflineCommands returns the disconnected-mode commands.
func DefaultOfflineCommands() OfflineCommands {
	return OfflineCommands{
		Connect: key.NewBinding(
			key.WithKeys("connect"),
			key.WithHelp("connect [host:port]", "connect to a server"),
		),
		Quit: key.NewBinding(
			key.WithKeys("quit"),
			key.WithHelp("quit", "exit the client"),
		),
		Help: key.NewBinding(
			key.WithKeys("help"),
			key.WithHelp("help", "show this help"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (o OfflineCommands) ShortHelp() []key.Binding {
	return []key.Binding{o.Connect, o.Quit, o.Help}
}

// FullHelp implements help.KeyMap.
func (o OfflineCommands) FullHelp() [][]key.Binding {
	return [][]key.Binding{{o.Connect, o.Quit, o.Help}}
}

// is reports whether m is the bare command bound to b.
func is(m proto.Message, b key.Binding) bool {
	return m.NumArgs() == 0 && key.Matches(word(m.Word()), b)
}
