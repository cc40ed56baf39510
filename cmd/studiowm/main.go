package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	console "github.com/phsym/console-slog"

	"github.com/1broseidon/studiowm/internal/config"
)

func main() {
	// A missing .env is fine.
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "daemon":
		os.Exit(runDaemon(os.Args[2:]))
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "reload":
		os.Exit(runReload(os.Args[2:]))
	case "list":
		os.Exit(runList(os.Args[2:]))
	case "open":
		os.Exit(runOpen(os.Args[2:]))
	case "focus", "close", "minimize", "restore", "maximize":
		os.Exit(runWindowCommand(os.Args[1], os.Args[2:]))
	case "move", "resize":
		os.Exit(runPointerCommand(os.Args[1], os.Args[2:]))
	case "watch":
		os.Exit(runWatch(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "tui":
		os.Exit(runTUI(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: studiowm <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  daemon              Start the studiowm daemon (foreground)")
	fmt.Fprintln(w, "  status              Show daemon status")
	fmt.Fprintln(w, "  reload              Reload configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  list                List open windows")
	fmt.Fprintln(w, "  list projects       List the project catalog")
	fmt.Fprintln(w, "  open [project]      Open (or focus) a project window")
	fmt.Fprintln(w, "  focus <id>          Raise and activate a window")
	fmt.Fprintln(w, "  close <id>          Close a window")
	fmt.Fprintln(w, "  minimize <id>       Minimize a window to the dock")
	fmt.Fprintln(w, "  restore <id>        Restore a minimized window")
	fmt.Fprintln(w, "  maximize <id>       Toggle maximize")
	fmt.Fprintln(w, "  move <id> <dx> <dy>     Drag a window by an offset")
	fmt.Fprintln(w, "  resize <id> <dw> <dh>   Resize a window by an offset")
	fmt.Fprintln(w, "  watch               Stream window events")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  tui                 Run a desktop in this terminal (standalone)")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'studiowm <command> --help' for command-specific options.")
}

func newLogger(level slog.Level) *slog.Logger {
	return slog.New(console.NewHandler(os.Stderr, &console.HandlerOptions{Level: level}))
}

func loadConfig(path string) (*config.LoadResult, error) {
	res, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return res, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func isHelpArg(args []string) bool {
	return len(args) > 0 && (args[0] == "help" || args[0] == "-h" || args[0] == "--help")
}
