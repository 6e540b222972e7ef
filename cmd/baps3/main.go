// Command baps3 is a command-line client for BAPS3 playout servers.
package main

import (
	"fmt"
	"os"

	"github.com/UniversityRadioYork/baps3-cli/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(err))
		os.Exit(1)
	}
}
