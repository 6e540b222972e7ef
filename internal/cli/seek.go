package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/UniversityRadioYork/baps3-cli/internal/baps3"
	"github.com/UniversityRadioYork/baps3-cli/internal/playtime"
	"github.com/UniversityRadioYork/baps3-cli/internal/proto"
)

var (
	seekHours   bool
	seekMinutes bool
	seekSeconds bool
	seekMillis  bool
)

var seekCmd = &cobra.Command{
	Use:   "seek <position>",
	Short: "Seek to a position in the loaded file",
	Long: "Seek to a position in the loaded file. The position is a whole number of " +
		"microseconds unless a unit flag is given; if several are, the largest wins.",
	Args: cobra.ExactArgs(1),
	RunE: runSeek,
}

func runSeek(cmd *cobra.Command, args []string) error {
	n, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid position %q: must be a whole number", args[0])
	}

	unit := playtime.UnitFromFlags(seekHours, seekMinutes, seekSeconds, seekMillis)
	micros, err := unit.Micros(n)
	if err != nil {
		return fmt.Errorf("invalid position %q: %w", args[0]+unit.Suffix(), err)
	}
	newTrail(cmd).Logf("seek to %d%s (%dus)", n, unit.Suffix(), micros)

	return runOneShot(cmd, []string{baps3.FeatureSeek}, proto.New("seek", strconv.FormatUint(micros, 10)))
}

func init() {
	seekCmd.Flags().BoolVarP(&seekHours, "hours", "H", false, "Position is in hours")
	seekCmd.Flags().BoolVarP(&seekMinutes, "minutes", "M", false, "Position is in minutes")
	seekCmd.Flags().BoolVarP(&seekSeconds, "seconds", "S", false, "Position is in seconds")
	seekCmd.Flags().BoolVarP(&seekMillis, "millis", "m", false, "Position is in milliseconds")
	rootCmd.AddCommand(seekCmd)
}
