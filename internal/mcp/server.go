package mcp

import (
	"context"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/studiowm/internal/ipc"
	"github.com/1broseidon/studiowm/internal/wm"
)

const (
	ServerName    = "studiowm"
	ServerVersion = "0.1.0"
)

// Controller is the window command surface the tools drive. ipc.Client
// satisfies it.
type Controller interface {
	ListProjects() ([]ipc.ProjectInfo, error)
	ListWindows() ([]wm.Window, error)
	Open(project, title string) (wm.Window, error)
	Focus(id wm.WindowID) (wm.Window, error)
	Close(id wm.WindowID) (wm.Window, error)
	Minimize(id wm.WindowID) (wm.Window, error)
	Restore(id wm.WindowID) (wm.Window, error)
	ToggleMaximize(id wm.WindowID) (wm.Window, error)
	Move(id wm.WindowID, dx, dy int) (wm.Window, error)
	Resize(id wm.WindowID, dx, dy int) (wm.Window, error)
}

var _ Controller = (*ipc.Client)(nil)

// Server is the MCP server exposing window commands as tools.
type Server struct {
	mcpServer *mcpsdk.Server
	ctl       Controller
	logger    *slog.Logger
}

// NewServer creates a new MCP server backed by ctl.
func NewServer(ctl Controller, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		ctl:    ctl,
		logger: logger,
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_projects",
		Description: "List the project catalog shown in the dock, with the window currently open for each project.",
	}, s.handleListProjects)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List all windows in stacking order, bottom first. The last window is topmost; the active window has active=true.",
	}, s.handleListWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "open_window",
		Description: "Open the window for a project. If the project already has a window it is focused (and restored if minimized) instead.",
	}, s.handleOpenWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "focus_window",
		Description: "Raise a window to the top and make it the active window. Minimized windows stay minimized.",
	}, s.handleFocusWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "close_window",
		Description: "Close a window. It plays a short closing transition and is then removed; focus is not moved to another window.",
	}, s.handleCloseWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "minimize_window",
		Description: "Minimize a window. Its position and size are kept for when it is restored.",
	}, s.handleMinimizeWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "restore_window",
		Description: "Restore a minimized window and focus it. Has no effect on windows that are not minimized.",
	}, s.handleRestoreWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "toggle_maximize",
		Description: "Maximize a window to fill the desktop between the menu bar and the dock, or restore its previous position and size.",
	}, s.handleToggleMaximize)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "move_window",
		Description: "Drag a window by (dx, dy) pixels. The window cannot move above the menu bar. Maximized windows cannot be moved.",
	}, s.handleMoveWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "resize_window",
		Description: "Resize a window from its bottom-right corner by (dx, dy) pixels, never below the minimum size. Maximized windows cannot be resized.",
	}, s.handleResizeWindow)
}
