package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/UniversityRadioYork/baps3-cli/internal/baps3"
	"github.com/UniversityRadioYork/baps3-cli/internal/proto"
)

var stopRewind bool

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop playback",
	Long: "Stop playing the loaded file. With --rewind, also seek back to the start, " +
		"which needs a server supporting Seek as well as PlayStop.",
	Args: cobra.NoArgs,
	RunE: runStop,
}

func runStop(cmd *cobra.Command, args []string) error {
	if !stopRewind {
		return runOneShot(cmd, []string{baps3.FeaturePlayStop}, proto.New("stop"))
	}

	required := []string{baps3.FeaturePlayStop, baps3.FeatureSeek}
	s, err := baps3.Open(commandContext(cmd), newTrail(cmd), settings.Target, required, clientOptions()...)
	if err != nil {
		return err
	}
	defer func() {
		if err := s.Close(); err != nil {
			slog.Debug("close after stop", "error", err)
		}
	}()

	if err := s.Send(proto.New("stop")); err != nil {
		return err
	}
	return s.Send(proto.New("seek", "0"))
}

func init() {
	stopCmd.Flags().BoolVarP(&stopRewind, "rewind", "r", false, "Seek back to the start after stopping")
	rootCmd.AddCommand(stopCmd)
}
