package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/UniversityRadioYork/baps3-cli/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  "Print the version, commit, and build date of baps3.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "baps3 %s\n", version.String())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
