package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/UniversityRadioYork/baps3-cli/internal/baps3"
	"github.com/UniversityRadioYork/baps3-cli/internal/client"
	"github.com/UniversityRadioYork/baps3-cli/internal/config"
	"github.com/UniversityRadioYork/baps3-cli/internal/logging"
	"github.com/UniversityRadioYork/baps3-cli/internal/proto"
	"github.com/UniversityRadioYork/baps3-cli/internal/version"
)

// Global flag values.
var (
	flagTarget   string
	flagVerbose  bool
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
)

// settings is the configuration the running command uses, after config
// file and flags have been merged.
var settings = config.Default()

// logCleanup closes the log file opened by setup.
var logCleanup func()

var rootCmd = &cobra.Command{
	Use:   "baps3",
	Short: "BAPS3 playout client",
	Long: "baps3 talks to BAPS3 playout servers: an interactive client for poking at a server by hand, " +
		"and one-shot commands (load, play, stop, seek) for scripts.",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&flagTarget, "target", "t", "", "server address as host:port (default from config, else "+config.DefaultTarget+")")
	flags.BoolVarP(&flagVerbose, "verbose", "v", false, "print protocol progress to stderr")
	flags.StringVar(&flagConfig, "config", "", "config file (default ~/.config/baps3/config.toml)")
	flags.StringVar(&flagLogLevel, "log-level", "", "diagnostic log level: debug, info, warn, error")
	flags.StringVar(&flagLogFile, "log-file", "", "diagnostic log file (default ~/.baps3/baps3.log)")
}

// Execute runs the command named on the command line.
func Execute() error {
	err := rootCmd.Execute()
	if logCleanup != nil {
		logCleanup()
	}
	return err
}

// setup loads the configuration, applies flag overrides and starts the
// diagnostic log.
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if flagChanged(cmd, "target") {
		cfg.Target = flagTarget
	}
	if flagChanged(cmd, "verbose") {
		cfg.Verbose = flagVerbose
	}
	if flagChanged(cmd, "log-level") {
		cfg.Log.Level = flagLogLevel
	}
	if flagChanged(cmd, "log-file") {
		cfg.Log.Path = flagLogFile
	}

	if err := config.ValidateTarget(cfg.Target); err != nil {
		return err
	}
	if err := config.ValidateLogLevel(cfg.Log.Level); err != nil {
		return err
	}

	logPath, err := cfg.GetLogPath()
	if err != nil {
		return fmt.Errorf("log path: %w", err)
	}
	cleanup, err := logging.Setup(logPath, logging.ParseLevel(cfg.Log.Level))
	if err != nil {
		return fmt.Errorf("set up logging: %w", err)
	}
	logCleanup = cleanup

	settings = cfg
	slog.Debug("starting", "command", cmd.Name(), "target", cfg.Target, "version", version.Version)
	return nil
}

func loadConfig() (*config.Config, error) {
	if flagConfig != "" {
		return config.LoadFromPath(flagConfig)
	}
	return config.Load()
}

func flagChanged(cmd *cobra.Command, name string) bool {
	f := cmd.Flag(name)
	return f != nil && f.Changed
}

// commandContext returns the command's context, which is nil when a run
// function is called directly.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// newTrail returns the progress trail for cmd, printing to its stderr when
// verbose.
func newTrail(cmd *cobra.Command) logging.Trail {
	return logging.NewTrail(settings.Verbose, cmd.ErrOrStderr())
}

// clientOptions returns the connection options from the configuration.
func clientOptions() []client.Option {
	return []client.Option{
		client.DialTimeoutOption(settings.GetDialTimeout()),
		client.BufferSizeOption(settings.GetBufferSize()),
	}
}

// runOneShot sends msg to the configured server in its own session.
func runOneShot(cmd *cobra.Command, required []string, msg proto.Message) error {
	return baps3.OneShot(commandContext(cmd), newTrail(cmd), settings.Target, required, msg, clientOptions()...)
}
