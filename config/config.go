package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const configDirName = "boxdialog"

// Config holds the dialog configuration
type Config struct {
	Dialog     DialogConfig   `toml:"dialog" yaml:"dialog"`
	Terminal   TerminalConfig `toml:"terminal" yaml:"terminal"`
	Log        LogConfig      `toml:"log" yaml:"log"`
	RecentDirs []string       `toml:"recent_dirs,omitempty" yaml:"recent_dirs,omitempty"` // Directories files were last picked from (max 10)
}

// MaxRecentDirs is the maximum number of recent directories to track
const MaxRecentDirs = 10

// AddRecentDir adds a directory to the recent directories list
func (c *Config) AddRecentDir(path string) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	// Remove if already in list (will re-add at top)
	newList := make([]string, 0, MaxRecentDirs)
	for _, d := range c.RecentDirs {
		if d != absPath {
			newList = append(newList, d)
		}
	}

	c.RecentDirs = append([]string{absPath}, newList...)

	if len(c.RecentDirs) > MaxRecentDirs {
		c.RecentDirs = c.RecentDirs[:MaxRecentDirs]
	}
}

// StartDir returns the directory the file explorer opens in: the configured
// start directory, else the most recent one, else the working directory.
func (c *Config) StartDir() string {
	if c.Dialog.StartDir != "" {
		return c.Dialog.StartDir
	}
	if len(c.RecentDirs) > 0 {
		return c.RecentDirs[0]
	}
	return "."
}

// DialogConfig holds dialog appearance and behaviour
type DialogConfig struct {
	Style           string `toml:"style" yaml:"style"`                       // grey, blue or red
	AsciiMode       *bool  `toml:"ascii_mode" yaml:"ascii_mode"`             // nil = auto-detect, true/false = override
	ExplorerColumns int    `toml:"explorer_columns" yaml:"explorer_columns"` // Entries per explorer row
	FilenameMax     int    `toml:"filename_max" yaml:"filename_max"`         // Longest name the explorer accepts, in characters
	StartDir        string `toml:"start_dir" yaml:"start_dir"`               // Explorer starting directory (empty = most recent)
}

// TerminalConfig selects and tunes the terminal backend
type TerminalConfig struct {
	Backend   string `toml:"backend" yaml:"backend"`       // ansi, tcell or tea
	TrueColor *bool  `toml:"true_color" yaml:"true_color"` // nil = auto-detect
}

// LogConfig holds logging settings
type LogConfig struct {
	File      string `toml:"file" yaml:"file"`   // Log file (empty = discard)
	Level     string `toml:"level" yaml:"level"` // debug, info, warn or error
	SentryDSN string `toml:"sentry_dsn" yaml:"sentry_dsn"`
	Env       string `toml:"env" yaml:"env"`
}

// Terminal backends
const (
	BackendANSI  = "ansi"
	BackendTcell = "tcell"
	BackendTea   = "tea" // bubbletea program over an in-memory screen
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Dialog: DialogConfig{
			Style:           "blue",
			ExplorerColumns: 4,
			FilenameMax:     255,
		},
		Terminal: TerminalConfig{
			Backend: BackendANSI,
		},
		Log: LogConfig{
			Level: "info",
			Env:   "development",
		},
	}
}

// Validate reports the first invalid setting
func (c *Config) Validate() error {
	switch c.Terminal.Backend {
	case BackendANSI, BackendTcell, BackendTea:
	default:
		return fmt.Errorf("terminal.backend: unknown backend %q (want %s, %s or %s)", c.Terminal.Backend, BackendANSI, BackendTcell, BackendTea)
	}
	if c.Dialog.ExplorerColumns < 1 {
		return fmt.Errorf("dialog.explorer_columns: must be positive, got %d", c.Dialog.ExplorerColumns)
	}
	if c.Dialog.FilenameMax < 1 {
		return fmt.Errorf("dialog.filename_max: must be positive, got %d", c.Dialog.FilenameMax)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// SlogLevel parses the configured level name
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if l.Level == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo, err
	}
	return level, nil
}

// ConfigPath returns the path to the config file
func ConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, configDirName, "config.toml"), nil
}

// ConfigLoadError holds details about a config loading error
type ConfigLoadError struct {
	FilePath string
	Err      error
}

func (e *ConfigLoadError) Error() string {
	return fmt.Sprintf("%s: %v", e.FilePath, e.Err)
}

func (e *ConfigLoadError) Unwrap() error {
	return e.Err
}

// Load reads the configuration from the default location.
// Returns default config if file doesn't exist
// Returns ConfigLoadError if file exists but has parse errors
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil // Return defaults on error
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	return LoadFile(path)
}

// LoadFile reads the configuration from path. Files ending in .yaml or .yml
// are decoded as YAML, everything else as TOML. Defaults fill any setting
// the file leaves out; on error the defaults are returned alongside a
// ConfigLoadError.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, &ConfigLoadError{FilePath: path, Err: err}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		_, err = toml.Decode(string(data), cfg)
	}
	if err != nil {
		return DefaultConfig(), &ConfigLoadError{FilePath: path, Err: err}
	}

	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), &ConfigLoadError{FilePath: path, Err: err}
	}
	return cfg, nil
}

// Save writes the configuration to the default location
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

// SaveFile writes the configuration as TOML
func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	f.WriteString("# boxdialog configuration\n\n")

	return toml.NewEncoder(f).Encode(c)
}
