package cli

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/UniversityRadioYork/baps3-cli/internal/baps3"
	"github.com/UniversityRadioYork/baps3-cli/internal/proto"
)

var errNotRegularFile = errors.New("not a regular file")

var loadCmd = &cobra.Command{
	Use:   "load <file>",
	Short: "Load a file into the server",
	Long: "Load a file into the server, ready to play. The path is made absolute " +
		"before it is sent, so the server must be able to see the same filesystem.",
	Args: cobra.ExactArgs(1),
	RunE: runLoad,
}

func runLoad(cmd *cobra.Command, args []string) error {
	path, err := resolveFile(args[0])
	if err != nil {
		return err
	}
	return runOneShot(cmd, []string{baps3.FeatureFileLoad}, proto.New("load", path))
}

// resolveFile returns the absolute path of name, which must be an existing
// regular file.
func resolveFile(name string) (string, error) {
	abs, err := filepath.Abs(name)
	if err != nil {
		return "", &baps3.InvalidPathError{Path: name, Err: err}
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", &baps3.InvalidPathError{Path: abs, Err: err}
	}
	if !info.Mode().IsRegular() {
		return "", &baps3.InvalidPathError{Path: abs, Err: errNotRegularFile}
	}

	return abs, nil
}

func init() {
	rootCmd.AddCommand(loadCmd)
}
