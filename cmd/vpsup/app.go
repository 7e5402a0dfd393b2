package main

import (
	"fmt"
	"os"

	"github.com/stuffbucket/vpsup/internal/config"
	"github.com/stuffbucket/vpsup/internal/execx"
	"github.com/stuffbucket/vpsup/internal/logging"
	"github.com/stuffbucket/vpsup/internal/ui"
)

// BuildInfo carries version information set at build time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// App holds the application-wide state shared by all subcommands.
type App struct {
	Config *config.Config
	Build  BuildInfo
}

// NewApp initializes the application: loads config and sets up logging.
func NewApp(build BuildInfo) *App {
	cfg, err := config.Load()
	if err != nil {
		// Use defaults if config doesn't exist
		defaultCfg := config.DefaultConfig()
		cfg = &defaultCfg
	}

	initLogging(cfg)

	return &App{
		Config: cfg,
		Build:  build,
	}
}

func initLogging(cfg *config.Config) {
	logCfg := logging.Config{
		Dir:        cfg.Dirs.Logs,
		MaxSizeMB:  cfg.Settings.Log.MaxSizeMB,
		MaxBackups: cfg.Settings.Log.MaxBackups,
		MaxAgeDays: cfg.Settings.Log.MaxAgeDays,
		Compress:   cfg.Settings.Log.Compress,
		Debug:      cfg.Settings.Log.Debug,
	}

	if err := logging.Init(logCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}
}

// Runner returns the host command runner, elevating with sudo when the
// process is not root.
func (a *App) Runner() *execx.Host {
	return execx.NewHost(true)
}

// fatalf prints an error and exits with a failure status.
func (a *App) fatalf(format string, args ...interface{}) {
	logging.Get().Error(fmt.Sprintf(format, args...))
	ui.Errorf(format, args...)
	os.Exit(1)
}
