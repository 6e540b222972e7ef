package cli

import (
	"errors"
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"github.com/UniversityRadioYork/baps3-cli/internal/baps3"
)

// diagnosticWidth is the column at which error output is wrapped.
const diagnosticWidth = 72

// FormatError renders err for the terminal, with a hint for the errors a
// user can do something about.
func FormatError(err error) string {
	var b strings.Builder
	b.WriteString(wordwrap.String("error: "+err.Error(), diagnosticWidth))

	if hint := hintFor(err); hint != "" {
		b.WriteString("\n")
		b.WriteString(wordwrap.String("hint: "+hint, diagnosticWidth))
	}
	return b.String()
}

func hintFor(err error) string {
	var (
		missing *baps3.MissingFeaturesError
		ioErr   *baps3.IOError
	)

	switch {
	case errors.Is(err, baps3.ErrNotBaps3Server):
		return "check that --target points at a BAPS3 server and not some other service"
	case errors.As(err, &missing):
		return "this server cannot carry out the command; try one that advertises " +
			strings.Join(missing.Wanted, ", ")
	case errors.As(err, &ioErr) && ioErr.Op == "connect":
		return "is the server running? Set the address with --target or in the config file"
	}
	return ""
}
