package mcp

import (
	"context"
	"fmt"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/studiowm/internal/wm"
)

func toWindowInfo(w wm.Window) WindowInfo {
	return WindowInfo{
		ID:         uint64(w.ID),
		Project:    w.Project,
		Title:      w.Title,
		Address:    w.Address,
		Image:      w.Image,
		X:          w.Geometry.X,
		Y:          w.Geometry.Y,
		Width:      w.Geometry.Width,
		Height:     w.Geometry.Height,
		ZOrder:     w.ZOrder,
		Visibility: w.Visibility.String(),
		Maximized:  w.Maximized,
		Active:     w.Active,
	}
}

func windowOutput(w wm.Window) WindowOutput {
	if w.ID == 0 {
		return WindowOutput{Gone: true}
	}
	return WindowOutput{Window: toWindowInfo(w)}
}

func (s *Server) handleListProjects(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListProjectsInput) (*mcpsdk.CallToolResult, ListProjectsOutput, error) {
	projects, err := s.ctl.ListProjects()
	if err != nil {
		return nil, ListProjectsOutput{}, err
	}
	out := ListProjectsOutput{Projects: make([]ProjectInfo, 0, len(projects))}
	for _, p := range projects {
		out.Projects = append(out.Projects, ProjectInfo{
			Project:  p.Project,
			Title:    p.Title,
			Open:     p.Open,
			WindowID: uint64(p.WindowID),
		})
	}
	return nil, out, nil
}

func (s *Server) handleListWindows(_ context.Context, _ *mcpsdk.CallToolRequest, args ListWindowsInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	windows, err := s.ctl.ListWindows()
	if err != nil {
		return nil, ListWindowsOutput{}, err
	}
	project := strings.TrimSpace(args.Project)
	out := ListWindowsOutput{Windows: make([]WindowInfo, 0, len(windows))}
	for _, w := range windows {
		if project != "" && w.Project != project {
			continue
		}
		out.Windows = append(out.Windows, toWindowInfo(w))
	}
	return nil, out, nil
}

func (s *Server) handleOpenWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args OpenWindowInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
	project := strings.TrimSpace(args.Project)
	if project == "" {
		return nil, WindowOutput{}, fmt.Errorf("project is required")
	}
	w, err := s.ctl.Open(project, args.Title)
	if err != nil {
		return nil, WindowOutput{}, err
	}
	s.logger.Info("open_window", "project", project, "window", w.ID)
	return nil, windowOutput(w), nil
}

// windowCommand validates the id and runs op against it.
func (s *Server) windowCommand(tool string, id uint64, op func(wm.WindowID) (wm.Window, error)) (*mcpsdk.CallToolResult, WindowOutput, error) {
	if id == 0 {
		return nil, WindowOutput{}, fmt.Errorf("id is required")
	}
	w, err := op(wm.WindowID(id))
	if err != nil {
		return nil, WindowOutput{}, fmt.Errorf("%s: %w", tool, err)
	}
	s.logger.Info(tool, "window", id)
	return nil, windowOutput(w), nil
}

func (s *Server) handleFocusWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowIDInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
	return s.windowCommand("focus_window", args.ID, s.ctl.Focus)
}

func (s *Server) handleCloseWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowIDInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
	return s.windowCommand("close_window", args.ID, s.ctl.Close)
}

func (s *Server) handleMinimizeWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowIDInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
	return s.windowCommand("minimize_window", args.ID, s.ctl.Minimize)
}

func (s *Server) handleRestoreWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowIDInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
	return s.windowCommand("restore_window", args.ID, s.ctl.Restore)
}

func (s *Server) handleToggleMaximize(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowIDInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
	return s.windowCommand("toggle_maximize", args.ID, s.ctl.ToggleMaximize)
}

func (s *Server) handleMoveWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args DeltaInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
	return s.windowCommand("move_window", args.ID, func(id wm.WindowID) (wm.Window, error) {
		return s.ctl.Move(id, args.DX, args.DY)
	})
}

func (s *Server) handleResizeWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args DeltaInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
	return s.windowCommand("resize_window", args.ID, func(id wm.WindowID) (wm.Window, error) {
		return s.ctl.Resize(id, args.DX, args.DY)
	})
}
