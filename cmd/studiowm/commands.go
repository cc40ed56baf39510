package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/1broseidon/studiowm/internal/ipc"
	"github.com/1broseidon/studiowm/internal/wm"
)

func newFlagSet(name, usage, description string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: "+usage)
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, description)
		hasFlags := false
		fs.VisitAll(func(*flag.Flag) { hasFlags = true })
		if hasFlags {
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Flags:")
			fs.PrintDefaults()
		}
	}
	return fs
}

// parseFlags returns -1 when parsing succeeded, otherwise the exit code.
func parseFlags(fs *flag.FlagSet, args []string) int {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	return -1
}

func runStatus(args []string) int {
	fs := newFlagSet("status", "studiowm status", "Show daemon status via IPC.")
	if code := parseFlags(fs, args); code >= 0 {
		return code
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		fs.Usage()
		return 2
	}

	status, err := ipc.NewClient().GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("daemon_running:  %v\n", status.DaemonRunning)
	fmt.Printf("window_count:    %d\n", status.WindowCount)
	fmt.Printf("active_window:   %d\n", status.ActiveWindow)
	fmt.Printf("viewport:        %dx%d (%s)\n", status.Viewport.Width, status.Viewport.Height, status.ViewportSource)
	fmt.Printf("watchers:        %d\n", status.Watchers)
	fmt.Printf("uptime_seconds:  %d\n", status.UptimeSeconds)
	if status.ConfigPath != "" {
		fmt.Printf("config_path:     %s\n", status.ConfigPath)
	}
	return 0
}

func runReload(args []string) int {
	fs := newFlagSet("reload", "studiowm reload", "Re-read the configuration file in the running daemon.")
	if code := parseFlags(fs, args); code >= 0 {
		return code
	}
	if err := ipc.NewClient().Reload(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println("reloaded")
	return 0
}

func runList(args []string) int {
	fs := newFlagSet("list", "studiowm list [--json] [projects]", "List open windows in z-order, or the project catalog.")
	jsonOut := fs.Bool("json", false, "Output JSON")
	if code := parseFlags(fs, args); code >= 0 {
		return code
	}

	client := ipc.NewClient()
	switch fs.Arg(0) {
	case "", "windows":
		windows, err := client.ListWindows()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if *jsonOut {
			return printJSON(windows)
		}
		printWindows(os.Stdout, windows)
		return 0
	case "projects":
		projects, err := client.ListProjects()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if *jsonOut {
			return printJSON(projects)
		}
		printProjects(os.Stdout, projects)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown list target: %s\n", fs.Arg(0))
		fs.Usage()
		return 2
	}
}

func runOpen(args []string) int {
	fs := newFlagSet("open", "studiowm open [--title TITLE] [project]",
		"Open the window for a project, or focus it if already open.\nWithout a project on a terminal, pick one from the catalog.")
	title := fs.String("title", "", "Window title (default: catalog title)")
	if code := parseFlags(fs, args); code >= 0 {
		return code
	}

	client := ipc.NewClient()
	project := strings.TrimSpace(fs.Arg(0))
	if project == "" {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			fmt.Fprintln(os.Stderr, "open requires <project>")
			fs.Usage()
			return 2
		}
		projects, err := client.ListProjects()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		picked, err := pickProject(projects)
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return 0
			}
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		project = picked
	}

	w, err := client.Open(project, *title)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	printWindows(os.Stdout, []wm.Window{w})
	return 0
}

func pickProject(projects []ipc.ProjectInfo) (string, error) {
	if len(projects) == 0 {
		return "", fmt.Errorf("project catalog is empty")
	}
	options := make([]huh.Option[string], 0, len(projects))
	for _, p := range projects {
		label := p.Title
		if p.Open {
			label += " (open)"
		}
		options = append(options, huh.NewOption(label, p.Project))
	}

	var choice string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Open project").
				Options(options...).
				Value(&choice),
		),
	)
	if err := form.Run(); err != nil {
		return "", err
	}
	return choice, nil
}

func runWindowCommand(name string, args []string) int {
	fs := newFlagSet(name, fmt.Sprintf("studiowm %s <id>", name), windowCommandHelp[name])
	if code := parseFlags(fs, args); code >= 0 {
		return code
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "%s requires <id>\n", name)
		fs.Usage()
		return 2
	}
	id, err := parseWindowID(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	client := ipc.NewClient()
	ops := map[string]func(wm.WindowID) (wm.Window, error){
		"focus":    client.Focus,
		"close":    client.Close,
		"minimize": client.Minimize,
		"restore":  client.Restore,
		"maximize": client.ToggleMaximize,
	}
	w, err := ops[name](id)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if w.ID != 0 {
		printWindows(os.Stdout, []wm.Window{w})
	}
	return 0
}

var windowCommandHelp = map[string]string{
	"focus":    "Raise a window to the top and make it active.",
	"close":    "Close a window. It disappears once the close transition ends.",
	"minimize": "Minimize a window to the dock.",
	"restore":  "Restore a minimized window.",
	"maximize": "Maximize a window, or restore it if already maximized.",
}

func runPointerCommand(name string, args []string) int {
	fs := newFlagSet(name, fmt.Sprintf("studiowm %s <id> <dx> <dy>", name),
		"Apply a pointer gesture of the given offset to a window.")
	if code := parseFlags(fs, args); code >= 0 {
		return code
	}
	if fs.NArg() != 3 {
		fmt.Fprintf(os.Stderr, "%s requires <id> <dx> <dy>\n", name)
		fs.Usage()
		return 2
	}
	id, err := parseWindowID(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	dx, dy, err := parseDelta(fs.Arg(1), fs.Arg(2))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	client := ipc.NewClient()
	op := client.Move
	if name == "resize" {
		op = client.Resize
	}
	w, err := op(id, dx, dy)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	printWindows(os.Stdout, []wm.Window{w})
	return 0
}

func runWatch(args []string) int {
	fs := newFlagSet("watch", "studiowm watch [--json]", "Stream window events until interrupted.")
	jsonOut := fs.Bool("json", false, "Output one JSON object per event")
	if code := parseFlags(fs, args); code >= 0 {
		return code
	}

	ctx, cancel := signalContext()
	defer cancel()

	enc := json.NewEncoder(os.Stdout)
	err := ipc.NewClient().Watch(ctx, func(e wm.Event) error {
		if *jsonOut {
			return enc.Encode(e)
		}
		_, err := fmt.Println(formatEvent(e))
		return err
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func parseWindowID(s string) (wm.WindowID, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("invalid window id %q", s)
	}
	return wm.WindowID(n), nil
}

func parseDelta(xs, ys string) (int, int, error) {
	dx, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid offset %q", xs)
	}
	dy, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid offset %q", ys)
	}
	return dx, dy, nil
}

func printJSON(v any) int {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func printWindows(w io.Writer, windows []wm.Window) {
	if len(windows) == 0 {
		fmt.Fprintln(w, "no windows")
		return
	}
	for _, win := range windows {
		fmt.Fprintln(w, formatWindow(win))
	}
}

func formatWindow(w wm.Window) string {
	marker := " "
	if w.Active {
		marker = "*"
	}
	flags := w.Visibility.String()
	if w.Maximized {
		flags += ",maximized"
	}
	return fmt.Sprintf("%s %-4d %-12s %-20s z=%-4d %-20s %s",
		marker, w.ID, w.Project, w.Geometry.String(), w.ZOrder, flags, w.Title)
}

func printProjects(w io.Writer, projects []ipc.ProjectInfo) {
	for i, p := range projects {
		state := "-"
		if p.Open {
			state = fmt.Sprintf("window %d", p.WindowID)
		}
		fmt.Fprintf(w, "%d. %-12s %-20s %s\n", i+1, p.Project, p.Title, state)
	}
}

func formatEvent(e wm.Event) string {
	return fmt.Sprintf("%-18s window=%d project=%s geometry=%s visibility=%s maximized=%v",
		e.Kind.String(), e.WindowID, e.Project, e.Geometry.String(), e.Visibility.String(), e.Maximized)
}
