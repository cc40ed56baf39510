package mcp

// WindowInfo describes one window. Visibility is "normal", "minimized" or
// "closing".
type WindowInfo struct {
	ID         uint64 `json:"id"`
	Project    string `json:"project"`
	Title      string `json:"title"`
	Address    string `json:"address"`
	Image      string `json:"image"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	ZOrder     int    `json:"z_order"`
	Visibility string `json:"visibility"`
	Maximized  bool   `json:"maximized"`
	Active     bool   `json:"active"`
}

// ListWindowsInput is the input for the list_windows tool.
type ListWindowsInput struct {
	Project string `json:"project,omitempty" jsonschema:"Only return the window bound to this project"`
}

// ListWindowsOutput is the output for the list_windows tool.
type ListWindowsOutput struct {
	Windows []WindowInfo `json:"windows"`
}

// ListProjectsInput is the input for the list_projects tool.
type ListProjectsInput struct{}

// ProjectInfo describes a catalog entry.
type ProjectInfo struct {
	Project  string `json:"project"`
	Title    string `json:"title"`
	Open     bool   `json:"open"`
	WindowID uint64 `json:"window_id,omitempty"`
}

// ListProjectsOutput is the output for the list_projects tool.
type ListProjectsOutput struct {
	Projects []ProjectInfo `json:"projects"`
}

// OpenWindowInput is the input for the open_window tool.
type OpenWindowInput struct {
	Project string `json:"project" jsonschema:"Project key; an existing window for it is focused instead of opening a second one"`
	Title   string `json:"title,omitempty" jsonschema:"Title bar text (default: catalog title, then the project key)"`
}

// WindowIDInput addresses one window.
type WindowIDInput struct {
	ID uint64 `json:"id" jsonschema:"Window id as returned by open_window or list_windows"`
}

// DeltaInput moves or resizes a window by a pointer delta.
type DeltaInput struct {
	ID uint64 `json:"id" jsonschema:"Window id"`
	DX int    `json:"dx" jsonschema:"Horizontal delta in pixels"`
	DY int    `json:"dy" jsonschema:"Vertical delta in pixels"`
}

// WindowOutput is the window after a command. Gone is set when it no longer
// exists.
type WindowOutput struct {
	Window WindowInfo `json:"window"`
	Gone   bool       `json:"gone,omitempty"`
}
