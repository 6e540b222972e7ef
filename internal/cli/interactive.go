package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/UniversityRadioYork/baps3-cli/internal/client"
	"github.com/UniversityRadioYork/baps3-cli/internal/repl"
)

var interactiveCmd = &cobra.Command{
	Use:   "cli",
	Short: "Start the interactive client",
	Long: "Start the interactive client. Type \"connect\" to open a session with the target " +
		"server, then type commands to send them; server messages are printed as they arrive.",
	Args: cobra.NoArgs,
	RunE: runInteractive,
}

func runInteractive(cmd *cobra.Command, args []string) error {
	history, err := settings.GetHistoryFile()
	if err != nil || os.MkdirAll(filepath.Dir(history), 0o700) != nil {
		history = ""
	}

	editor := repl.NewLineEditor(history, settings.REPL.HistoryLimit)
	defer editor.Close()

	r := repl.New(repl.Config{
		Target:     settings.Target,
		ReportTime: settings.REPL.ReportTime,
		Dial: func(ctx context.Context, addr string) (*client.Client, error) {
			return client.Dial(ctx, addr, clientOptions()...)
		},
	}, repl.ReadMessages(editor), cmd.OutOrStdout())

	r.Run(commandContext(cmd))
	return nil
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}
