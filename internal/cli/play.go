package cli

import (
	"github.com/spf13/cobra"

	"github.com/UniversityRadioYork/baps3-cli/internal/baps3"
	"github.com/UniversityRadioYork/baps3-cli/internal/proto"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start playback",
	Long:  "Start playing the loaded file. The server must support PlayStop.",
	Args:  cobra.NoArgs,
	RunE:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	return runOneShot(cmd, []string{baps3.FeaturePlayStop}, proto.New("play"))
}

func init() {
	rootCmd.AddCommand(playCmd)
}
