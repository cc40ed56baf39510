package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/1broseidon/studiowm/internal/daemon"
	"github.com/1broseidon/studiowm/internal/tui"
)

func runTUI(args []string) int {
	fs := newFlagSet("tui", "studiowm tui [--config PATH]",
		"Run a desktop in this terminal. Windows live only for the session;\nthe daemon is not involved.")
	configPath := fs.String("config", "", "Config file path (default: ~/.config/studiowm/config.yaml)")
	if code := parseFlags(fs, args); code >= 0 {
		return code
	}

	res, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	// The alternate screen owns stdout and stderr; only errors get logged.
	logger := newLogger(slog.LevelError).With("component", "tui")

	d := daemon.New(daemon.Options{
		Config:     res.Config,
		ConfigPath: res.Path,
		Logger:     logger,
	})
	defer d.Close()

	ctx, cancel := signalContext()
	defer cancel()
	go d.Loop().Serve(ctx)

	_, events, unsubscribe := d.Events().Subscribe()
	defer unsubscribe()

	err = tui.Run(ctx, tui.Options{
		Desk:     d,
		Projects: res.Config.Projects,
		Events:   events,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
