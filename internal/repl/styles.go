package repl

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	sentColor     = lipgloss.Color("#7C3AED") // Purple
	receivedColor = lipgloss.Color("#10B981") // Green
	mutedColor    = lipgloss.Color("#6B7280") // Gray
	errorColor    = lipgloss.Color("#EF4444") // Red
	timeColor     = lipgloss.Color("#F59E0B") // Amber/Yellow
)

// Styles holds the styles for each kind of line the client prints.
// They are bound to one renderer so that output to a non-terminal stays
// plain text.
type Styles struct {
	Sent     lipgloss.Style
	Received lipgloss.Style
	Error    lipgloss.Style
	Time     lipgloss.Style
	Status   lipgloss.Style

	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style
}

// NewStyles returns the default styles for renderer r.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Sent: r.NewStyle().
			Foreground(sentColor),

		Received: r.NewStyle().
			Foreground(receivedColor),

		Error: r.NewStyle().
			Foreground(errorColor).
			Bold(true),

		Time: r.NewStyle().
			Foreground(timeColor),

		Status: r.NewStyle().
			Foreground(mutedColor).
			Italic(true),

		HelpKey: r.NewStyle().
			Foreground(sentColor).
			Bold(true),

		HelpDesc: r.NewStyle().
			Foreground(mutedColor),
	}
}
