// Package config handles vpsup configuration with XDG-compliant paths.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Directories holds all vpsup directory paths.
type Directories struct {
	// Config is the base config directory (~/.config/vpsup or $VPSUP_CONFIG_DIR)
	Config string
	// Data is the base data directory (~/.local/share/vpsup or $VPSUP_DATA_DIR)
	Data string

	// Derived paths
	SettingsFile string // Config/settings.json
	Backups      string // Data/backups - copies of system files before edits
	Logs         string // Data/logs
}

// GetDirectories returns all vpsup directories, respecting env overrides.
func GetDirectories() Directories {
	config := getConfigBase()
	data := getDataBase()

	return Directories{
		Config:       config,
		Data:         data,
		SettingsFile: filepath.Join(config, "settings.json"),
		Backups:      filepath.Join(data, "backups"),
		Logs:         filepath.Join(data, "logs"),
	}
}

func getConfigBase() string {
	if dir := os.Getenv("VPSUP_CONFIG_DIR"); dir != "" {
		return dir
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "vpsup")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "vpsup")
}

func getDataBase() string {
	if dir := os.Getenv("VPSUP_DATA_DIR"); dir != "" {
		return dir
	}
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "vpsup")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "vpsup")
}

// Settings represents the settings.json file contents.
type Settings struct {
	// User defaults for `vpsup user`
	DefaultUser  string `json:"default_user,omitempty"`
	DefaultShell string `json:"default_shell,omitempty"`

	// Git defaults for `vpsup git`
	GitName  string `json:"git_name,omitempty"`
	GitEmail string `json:"git_email,omitempty"`

	// ExtraLocales are always checked by `vpsup locale` in addition to
	// the auto-detected ones.
	ExtraLocales []string `json:"extra_locales,omitempty"`

	// Logging settings
	Log LogSettings `json:"log,omitempty"`
}

// LogSettings configures the rotating file log.
type LogSettings struct {
	MaxSizeMB  int  `json:"max_size_mb,omitempty"`
	MaxBackups int  `json:"max_backups,omitempty"`
	MaxAgeDays int  `json:"max_age_days,omitempty"`
	Compress   bool `json:"compress,omitempty"`
	Debug      bool `json:"debug,omitempty"`
}

// Config combines directories and settings.
type Config struct {
	Dirs     Directories
	Settings Settings
}

// DefaultConfig returns the configuration used when no settings file exists.
func DefaultConfig() Config {
	return Config{
		Dirs: GetDirectories(),
		Settings: Settings{
			DefaultShell: "/bin/bash",
			Log: LogSettings{
				MaxSizeMB:  10,
				MaxBackups: 3,
				MaxAgeDays: 28,
				Compress:   true,
			},
		},
	}
}

// Load reads settings.json, filling in defaults for absent values.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(cfg.Dirs.SettingsFile)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &cfg.Settings); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", cfg.Dirs.SettingsFile, err)
	}
	if cfg.Settings.DefaultShell == "" {
		cfg.Settings.DefaultShell = "/bin/bash"
	}
	return &cfg, nil
}

// Save writes the settings file, creating directories as needed.
func (c *Config) Save() error {
	if err := EnsureDirectories(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c.Settings, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.Dirs.SettingsFile, append(data, '\n'), 0600)
}

// EnsureDirectories creates the config and data directories.
func EnsureDirectories() error {
	dirs := GetDirectories()
	for _, dir := range []string{dirs.Config, dirs.Data, dirs.Backups, dirs.Logs} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	return nil
}
