// Package config loads the baps3 client configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/UniversityRadioYork/baps3-cli/internal/paths"
)

// Defaults.
const (
	DefaultTarget       = "localhost:1350"
	DefaultLogLevel     = "info"
	DefaultHistoryLimit = 500
	DefaultDialTimeout  = "5s"
	DefaultBufferSize   = 64
)

// Config is the baps3 client configuration.
type Config struct {
	// Target is the server address (host:port) used when none is given.
	Target string `toml:"target" yaml:"target"`

	// Verbose turns on the progress trail of one-shot commands.
	Verbose bool `toml:"verbose" yaml:"verbose"`

	Log        LogConfig        `toml:"log" yaml:"log"`
	REPL       REPLConfig       `toml:"repl" yaml:"repl"`
	Connection ConnectionConfig `toml:"connection" yaml:"connection"`
}

// LogConfig configures the diagnostic log file.
type LogConfig struct {
	Level string `toml:"level" yaml:"level"`
	Path  string `toml:"path" yaml:"path"`
}

// REPLConfig configures the interactive client.
type REPLConfig struct {
	HistoryFile  string `toml:"history_file" yaml:"history_file"`
	HistoryLimit int    `toml:"history_limit" yaml:"history_limit"`
	// ReportTime sets whether TIME updates are shown when a session starts.
	ReportTime bool `toml:"report_time" yaml:"report_time"`
}

// ConnectionConfig configures server connections.
type ConnectionConfig struct {
	DialTimeout string `toml:"dial_timeout" yaml:"dial_timeout"`
	BufferSize  int    `toml:"buffer_size" yaml:"buffer_size"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Target: DefaultTarget,
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
		REPL: REPLConfig{
			HistoryLimit: DefaultHistoryLimit,
			ReportTime:   true,
		},
		Connection: ConnectionConfig{
			DialTimeout: DefaultDialTimeout,
			BufferSize:  DefaultBufferSize,
		},
	}
}

// Load loads the configuration from the default path.
func Load() (*Config, error) {
	path, err := paths.ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath loads the configuration at path over the defaults and
// validates it. A missing file yields the defaults. Files ending in .yaml
// or .yml are read as YAML, anything else as TOML.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		_, err = toml.Decode(string(data), cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// GetDialTimeout returns the connection timeout, or the default if unset
// or invalid.
func (c *Config) GetDialTimeout() time.Duration {
	if c != nil && c.Connection.DialTimeout != "" {
		if d, err := time.ParseDuration(c.Connection.DialTimeout); err == nil && d > 0 {
			return d
		}
	}
	d, _ := time.ParseDuration(DefaultDialTimeout)
	return d
}

// GetBufferSize returns the connection channel capacity.
func (c *Config) GetBufferSize() int {
	if c != nil && c.Connection.BufferSize > 0 {
		return c.Connection.BufferSize
	}
	return DefaultBufferSize
}

// GetHistoryFile returns the line editor history path, with ~ expanded.
func (c *Config) GetHistoryFile() (string, error) {
	if c != nil && c.REPL.HistoryFile != "" {
		return paths.ExpandHome(c.REPL.HistoryFile)
	}
	return paths.HistoryPath()
}

// GetLogPath returns the configured log file path with ~ expanded, or ""
// for the default.
func (c *Config) GetLogPath() (string, error) {
	if c == nil || c.Log.Path == "" {
		return "", nil
	}
	return paths.ExpandHome(c.Log.Path)
}
