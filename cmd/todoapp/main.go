package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/idilsaglam/todoapp/internal/api"
	"github.com/idilsaglam/todoapp/internal/cli"
	"github.com/idilsaglam/todoapp/internal/config"
	"github.com/idilsaglam/todoapp/internal/store"
	"github.com/idilsaglam/todoapp/internal/store/jsonstore"
)

func main() {
	// Root flags (apply to every subcommand)
	apiURL := flag.String("api", "", "auth API base URL (overrides config)")
	stateFile := flag.String("state-file", "", "state snapshot path (overrides config)")
	configFile := flag.String("config", "", "config file path")
	flag.Parse()

	cfg, err := loadConfig(*configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	if *apiURL != "" {
		cfg.APIBaseURL = *apiURL
	}
	if *stateFile != "" {
		cfg.StateFile = *stateFile
	}

	log := newLogger(cfg.LogFile)
	defer log.Sync()

	// Guard against a corrupt snapshot before anything reads it, then
	// hydrate the store and keep it saved on every dispatch.
	bridge := jsonstore.New(cfg.StateFile, log)
	bridge.Preflight()
	s := store.New(bridge.Load())
	bridge.Attach(s)

	app := cli.App{
		Store:  s,
		Bridge: bridge,
		API:    api.New(cfg.APIBaseURL, cfg.Timeout()),
		Cfg:    cfg,
		Log:    log,
	}
	os.Exit(cli.Run(app, flag.Args()))
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

// newLogger writes structured logs to a file so they never fight the TUI
// for the terminal. Falls back to a no-op logger if the file is unusable.
func newLogger(path string) *zap.Logger {
	zc := zap.NewProductionConfig()
	zc.OutputPaths = []string{path}
	zc.ErrorOutputPaths = []string{path}
	log, err := zc.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log
}
