package cli

import (
	"bytes"
	"io"
	"io/fs"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UniversityRadioYork/baps3-cli/internal/baps3"
	"github.com/UniversityRadioYork/baps3-cli/internal/config"
	"github.com/UniversityRadioYork/baps3-cli/internal/playtime"
	"github.com/UniversityRadioYork/baps3-cli/internal/proto"
)

const testTimeout = 2 * time.Second

// fakeServer greets one client, advertises features, acknowledges every
// command with OK, and yields the commands it saw once the client leaves.
func fakeServer(t *testing.T, features ...string) <-chan []string {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = listener.Close() })

	got := make(chan []string, 1)
	go func() {
		conn, err := listener.Accept()
		if err != nil {
			got <- nil
			return
		}
		defer conn.Close()

		greeting := proto.New("OHAI", "fake playd").Pack() + proto.New("FEATURES", features...).Pack()
		_, _ = io.WriteString(conn, greeting)

		var (
			lines []string
			u     proto.Unpacker
		)
		buf := make([]byte, 1024)
		for {
			n, err := conn.Read(buf)
			for _, words := range u.Feed(buf[:n]) {
				m, _ := proto.FromWords(words)
				lines = append(lines, m.String())
				_, _ = io.WriteString(conn, "TIME 1000\n"+proto.New("OK", m.Words()...).Pack())
			}
			if err != nil {
				break
			}
		}
		got <- lines
	}()

	useTarget(t, listener.Addr().String())
	return got
}

func useTarget(t *testing.T, addr string) {
	t.Helper()

	settings = config.Default()
	settings.Target = addr
	settings.Connection.DialTimeout = "1s"
	t.Cleanup(func() { settings = config.Default() })
}

func received(t *testing.T, got <-chan []string) []string {
	t.Helper()

	select {
	case lines := <-got:
		return lines
	case <-time.After(testTimeout):
		t.Fatal("server never saw the connection close")
		return nil
	}
}

func TestPlay(t *testing.T) {
	got := fakeServer(t, "PlayStop")

	require.NoError(t, runPlay(playCmd, nil))
	assert.Equal(t, []string{"play"}, received(t, got))
}

func TestPlayNeedsPlayStop(t *testing.T) {
	got := fakeServer(t, "FileLoad", "Seek")

	err := runPlay(playCmd, nil)

	var missing *baps3.MissingFeaturesError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"PlayStop"}, missing.Wanted)
	assert.Empty(t, received(t, got), "command must not be sent")
}

func TestStop(t *testing.T) {
	t.Run("plain", func(t *testing.T) {
		got := fakeServer(t, "PlayStop")

		require.NoError(t, runStop(stopCmd, nil))
		assert.Equal(t, []string{"stop"}, received(t, got))
	})

	t.Run("rewind", func(t *testing.T) {
		stopRewind = true
		t.Cleanup(func() { stopRewind = false })
		got := fakeServer(t, "PlayStop", "Seek")

		require.NoError(t, runStop(stopCmd, nil))
		assert.Equal(t, []string{"stop", "seek 0"}, received(t, got))
	})

	t.Run("rewind needs seek", func(t *testing.T) {
		stopRewind = true
		t.Cleanup(func() { stopRewind = false })
		got := fakeServer(t, "PlayStop")

		var missing *baps3.MissingFeaturesError
		require.ErrorAs(t, runStop(stopCmd, nil), &missing)
		assert.Equal(t, []string{"Seek"}, missing.Wanted)
		assert.Empty(t, received(t, got))
	})
}

func TestSeek(t *testing.T) {
	tests := []struct {
		name    string
		arg     string
		set     func()
		want    string
		wantLog string
	}{
		{"micros", "5", func() {}, "seek 5", "seek to 5us (5us)"},
		{"millis", "250", func() { seekMillis = true }, "seek 250000", "seek to 250ms (250000us)"},
		{"seconds", "5", func() { seekSeconds = true }, "seek 5000000", "seek to 5s (5000000us)"},
		{"minutes", "2", func() { seekMinutes = true }, "seek 120000000", "seek to 2m (120000000us)"},
		{"hours", "1", func() { seekHours = true }, "seek 3600000000", "seek to 1h (3600000000us)"},
		{"largest unit wins", "1", func() { seekHours, seekSeconds = true, true }, "seek 3600000000", "seek to 1h (3600000000us)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.set()
			t.Cleanup(func() { seekHours, seekMinutes, seekSeconds, seekMillis = false, false, false, false })

			got := fakeServer(t, "Seek")
			settings.Verbose = true

			var trail bytes.Buffer
			seekCmd.SetErr(&trail)
			t.Cleanup(func() { seekCmd.SetErr(nil) })

			require.NoError(t, runSeek(seekCmd, []string{tt.arg}))
			assert.Equal(t, []string{tt.want}, received(t, got))
			assert.Contains(t, trail.String(), tt.wantLog+"\n")
			assert.Contains(t, trail.String(), "Server ident: fake playd\n")
			assert.Contains(t, trail.String(), "success!\n")
		})
	}
}

func TestSeekRejectsBadPosition(t *testing.T) {
	useTarget(t, "127.0.0.1:1")

	for _, arg := range []string{"abc", "-3", "1.5", ""} {
		err := runSeek(seekCmd, []string{arg})
		require.Error(t, err, arg)
		assert.Contains(t, err.Error(), "invalid position")
	}

	t.Run("too large for the unit", func(t *testing.T) {
		seekHours = true
		t.Cleanup(func() { seekHours = false })

		err := runSeek(seekCmd, []string{"5124096000"})
		require.ErrorIs(t, err, playtime.ErrTooLarge)
		assert.Equal(t, `invalid position "5124096000h": position too large`, err.Error())
	})
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "my track.mp3"), []byte("ID3"), 0o644))
	t.Chdir(dir)

	got := fakeServer(t, "FileLoad")

	require.NoError(t, runLoad(loadCmd, []string{"my track.mp3"}))

	abs, err := filepath.Abs("my track.mp3")
	require.NoError(t, err)
	assert.Equal(t, []string{proto.New("load", abs).String()}, received(t, got))
}

func TestLoadRejectsBadPaths(t *testing.T) {
	useTarget(t, "127.0.0.1:1")
	dir := t.TempDir()

	t.Run("missing", func(t *testing.T) {
		err := runLoad(loadCmd, []string{filepath.Join(dir, "nope.mp3")})

		var pathErr *baps3.InvalidPathError
		require.ErrorAs(t, err, &pathErr)
		assert.Equal(t, filepath.Join(dir, "nope.mp3"), pathErr.Path)
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("directory", func(t *testing.T) {
		err := runLoad(loadCmd, []string{dir})

		var pathErr *baps3.InvalidPathError
		require.ErrorAs(t, err, &pathErr)
		assert.ErrorIs(t, err, errNotRegularFile)
	})
}

func TestSend(t *testing.T) {
	t.Run("arbitrary command", func(t *testing.T) {
		sendFeatures = []string{"Dance"}
		t.Cleanup(func() { sendFeatures = nil })
		got := fakeServer(t, "Dance")

		require.NoError(t, runSend(sendCmd, []string{"dance", "the", "twist"}))
		assert.Equal(t, []string{"dance the twist"}, received(t, got))
	})

	t.Run("missing feature", func(t *testing.T) {
		sendFeatures = []string{"Dance"}
		t.Cleanup(func() { sendFeatures = nil })
		got := fakeServer(t)

		var missing *baps3.MissingFeaturesError
		require.ErrorAs(t, runSend(sendCmd, []string{"dance"}), &missing)
		assert.Empty(t, received(t, got))
	})
}

func TestConnectFailure(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())
	useTarget(t, addr)

	err = runPlay(playCmd, nil)

	var ioErr *baps3.IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, "connect", ioErr.Op)
	assert.Contains(t, FormatError(err), "hint: is the server running?")
}

func TestVersion(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	t.Cleanup(func() { versionCmd.SetOut(nil) })

	versionCmd.Run(versionCmd, nil)
	assert.Equal(t, "baps3 dev (commit: unknown, built: unknown)\n", out.String())
}

func TestSetupMergesConfigAndFlags(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("BAPS3_DIR", dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "config"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config", "config.toml"),
		[]byte("target = \"cfghost:1351\"\nverbose = true\n"), 0o644))

	prevLogger := slog.Default()
	t.Cleanup(func() {
		slog.SetDefault(prevLogger)
		settings = config.Default()
		flagTarget = ""
		rootCmd.PersistentFlags().Lookup("target").Changed = false
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
	})
	rootCmd.SetOut(io.Discard)

	rootCmd.SetArgs([]string{"version"})
	require.NoError(t, Execute())
	assert.Equal(t, "cfghost:1351", settings.Target)
	assert.True(t, settings.Verbose)
	assert.FileExists(t, filepath.Join(dir, "baps3.log"))

	rootCmd.SetArgs([]string{"--target", "flaghost:1352", "version"})
	require.NoError(t, Execute())
	assert.Equal(t, "flaghost:1352", settings.Target)

	rootCmd.SetArgs([]string{"--target", "nohost", "version"})
	assert.ErrorIs(t, Execute(), config.ErrInvalidTarget)
}

func TestFormatError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		contains []string
	}{
		{
			name:     "not a server",
			err:      baps3.ErrNotBaps3Server,
			contains: []string{"error: not a BAPS3 server", "hint: check that --target"},
		},
		{
			name:     "missing features",
			err:      &baps3.MissingFeaturesError{Wanted: []string{"Seek"}, Have: []string{"PlayStop"}},
			contains: []string{"error: server is missing features: Seek", "try one that advertises"},
		},
		{
			name:     "plain",
			err:      baps3.ErrHungUp,
			contains: []string{"error: server hung up"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatError(tt.err)
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
		})
	}

	assert.NotContains(t, FormatError(baps3.ErrHungUp), "hint:")
}
