package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseDir(t *testing.T) {
	t.Run("default uses home directory", func(t *testing.T) {
		t.Setenv(EnvBaseDir, "")

		dir, err := BaseDir()
		require.NoError(t, err)
		home, _ := os.UserHomeDir()
		assert.Equal(t, filepath.Join(home, ".baps3"), dir)
	})

	t.Run("BAPS3_DIR overrides default", func(t *testing.T) {
		t.Setenv(EnvBaseDir, "/tmp/baps3-test")

		dir, err := BaseDir()
		require.NoError(t, err)
		assert.Equal(t, "/tmp/baps3-test", dir)
	})
}

func TestConfigPath(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		t.Setenv(EnvBaseDir, "")
		t.Setenv(EnvConfigPath, "")

		path, err := ConfigPath()
		require.NoError(t, err)
		home, _ := os.UserHomeDir()
		assert.Equal(t, filepath.Join(home, ".config", "baps3", "config.toml"), path)
	})

	t.Run("BAPS3_DIR derives config dir", func(t *testing.T) {
		t.Setenv(EnvBaseDir, "/tmp/baps3-test")
		t.Setenv(EnvConfigPath, "")

		path, err := ConfigPath()
		require.NoError(t, err)
		assert.Equal(t, "/tmp/baps3-test/config/config.toml", path)
	})

	t.Run("BAPS3_CONFIG wins", func(t *testing.T) {
		t.Setenv(EnvBaseDir, "/tmp/baps3-test")
		t.Setenv(EnvConfigPath, "/etc/baps3.yaml")

		path, err := ConfigPath()
		require.NoError(t, err)
		assert.Equal(t, "/etc/baps3.yaml", path)
	})
}

func TestDerivedPaths(t *testing.T) {
	t.Setenv(EnvBaseDir, "/tmp/baps3-test")

	logPath, err := LogPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/baps3-test/baps3.log", logPath)

	historyPath, err := HistoryPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/baps3-test/history", historyPath)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		in   string
		want string
	}{
		{"~", home},
		{"~/music/a.mp3", filepath.Join(home, "music", "a.mp3")},
		{"/abs/path", "/abs/path"},
		{"relative/~/x", "relative/~/x"},
		{"~other/x", "~other/x"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ExpandHome(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
