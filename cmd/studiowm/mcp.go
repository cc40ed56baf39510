package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/1broseidon/studiowm/internal/config"
	"github.com/1broseidon/studiowm/internal/ipc"
	"github.com/1broseidon/studiowm/internal/mcp"
)

func printMCPUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: studiowm mcp <command>")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  serve    Start the MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'studiowm mcp <command> --help' for command-specific options.")
}

func runMCP(args []string) int {
	if len(args) == 0 {
		printMCPUsage(os.Stderr)
		return 2
	}

	switch args[0] {
	case "serve":
		return runMCPServe(args[1:])
	case "help", "-h", "--help":
		printMCPUsage(os.Stdout)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown mcp command: %s\n\n", args[0])
		printMCPUsage(os.Stderr)
		return 2
	}
}

func runMCPServe(args []string) int {
	if isHelpArg(args) {
		fmt.Fprintln(os.Stdout, "Usage: studiowm mcp serve")
		fmt.Fprintln(os.Stdout, "")
		fmt.Fprintln(os.Stdout, "Start the MCP server on stdio. Tool calls are forwarded to the")
		fmt.Fprintln(os.Stdout, "running daemon, so start 'studiowm daemon' first.")
		return 0
	}

	// stdout carries the protocol; logs go to stderr.
	level := config.ParseLogLevel(os.Getenv("STUDIOWM_LOG_LEVEL"))
	logger := newLogger(level).With("component", "mcp")

	server := mcp.NewServer(ipc.NewClient(), logger)

	ctx, cancel := signalContext()
	defer cancel()

	if err := server.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("MCP server error", "error", err)
		return 1
	}
	return 0
}
