package cli

import (
	"github.com/spf13/cobra"

	"github.com/UniversityRadioYork/baps3-cli/internal/proto"
)

var sendFeatures []string

var sendCmd = &cobra.Command{
	Use:   "send <word> [args...]",
	Short: "Send any command and wait for it to be acknowledged",
	Long: "Send an arbitrary command and wait for the server's OK, WHAT or FAIL. " +
		"Use --feature to refuse servers that do not advertise a feature.",
	Args: cobra.MinimumNArgs(1),
	RunE: runSend,
}

func runSend(cmd *cobra.Command, args []string) error {
	return runOneShot(cmd, sendFeatures, proto.New(args[0], args[1:]...))
}

func init() {
	sendCmd.Flags().StringSliceVarP(&sendFeatures, "feature", "f", nil, "Feature the server must support (repeatable)")
	rootCmd.AddCommand(sendCmd)
}
