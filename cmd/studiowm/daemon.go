package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/1broseidon/studiowm/internal/config"
	"github.com/1broseidon/studiowm/internal/daemon"
	"github.com/1broseidon/studiowm/internal/ipc"
	"github.com/1broseidon/studiowm/internal/runtimepath"
	"github.com/1broseidon/studiowm/internal/x11"
)

func runDaemon(args []string) int {
	fs := flag.NewFlagSet("daemon", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: studiowm daemon [--config PATH]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Run the window manager and serve IPC until interrupted.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	configPath := fs.String("config", "", "Config file path (default: ~/.config/studiowm/config.yaml)")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "daemon takes no arguments")
		fs.Usage()
		return 2
	}

	res, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	cfg := res.Config
	logger := newLogger(cfg.SlogLevel())
	slog.SetDefault(logger)

	if res.Loaded {
		logger.Info("configuration loaded", "path", res.Path)
	} else {
		logger.Info("no configuration file, using defaults", "path", res.Path)
	}

	if err := ipc.NewClient().Ping(); err == nil {
		logger.Error("daemon already running")
		return 1
	}

	pidPath, err := writePIDFile()
	if err != nil {
		logger.Warn("failed to write pid file", "error", err)
	} else {
		defer os.Remove(pidPath)
	}

	d := daemon.New(daemon.Options{
		Config:     cfg,
		ConfigPath: res.Path,
		Logger:     logger.With("component", "daemon"),
	})
	defer d.Close()

	server, err := ipc.NewServer(d, ipc.ServerOptions{Logger: logger.With("component", "ipc")})
	if err != nil {
		logger.Error("failed to create IPC server", "error", err)
		return 1
	}

	super := daemon.NewSupervisor("studiowm", logger)
	daemon.Add(super, d.Loop())
	daemon.Add(super, server)
	daemon.Add(super, daemon.NewServiceFunc("reload-on-hup", func(ctx context.Context) error {
		return reloadOnHangup(ctx, d, logger)
	}))

	if cfg.Viewport.Source == config.ViewportSourceX11 {
		source := x11.NewViewportSource(cfg.Viewport.Display)
		defer source.Close()
		interval := time.Duration(cfg.Viewport.PollSeconds) * time.Second
		daemon.Add(super, daemon.NewViewportWatcher(d, source.Probe, interval))
	}

	ctx, cancel := signalContext()
	defer cancel()

	logger.Info("studiowm daemon started", "socket", server.SocketPath(), "viewport_source", cfg.Viewport.Source)
	if err := super.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("daemon stopped", "error", err)
		return 1
	}
	logger.Info("studiowm daemon stopped")
	return 0
}

// reloadOnHangup rereads the config whenever the process receives SIGHUP.
func reloadOnHangup(ctx context.Context, d *daemon.Daemon, logger *slog.Logger) error {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-hup:
			if err := d.Reload(ctx); err != nil {
				logger.Error("reload failed", "error", err)
			}
		}
	}
}

func writePIDFile() (string, error) {
	path, err := runtimepath.PIDPath()
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())+"\n"), 0o600); err != nil {
		return "", err
	}
	return path, nil
}
