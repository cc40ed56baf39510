package ipc

import (
	"encoding/json"
	"fmt"

	"github.com/1broseidon/studiowm/internal/geometry"
	"github.com/1broseidon/studiowm/internal/wm"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandReload         CommandType = "RELOAD"
	CommandGetStatus      CommandType = "GET_STATUS"
	CommandListWindows    CommandType = "LIST_WINDOWS"
	CommandListProjects   CommandType = "LIST_PROJECTS"
	CommandOpen           CommandType = "OPEN"
	CommandFocus          CommandType = "FOCUS"
	CommandClose          CommandType = "CLOSE"
	CommandMinimize       CommandType = "MINIMIZE"
	CommandRestore        CommandType = "RESTORE"
	CommandToggleMaximize CommandType = "TOGGLE_MAXIMIZE"
	CommandDragBegin      CommandType = "DRAG_BEGIN"
	CommandDragUpdate     CommandType = "DRAG_UPDATE"
	CommandDragEnd        CommandType = "DRAG_END"
	CommandResizeBegin    CommandType = "RESIZE_BEGIN"
	CommandResizeUpdate   CommandType = "RESIZE_UPDATE"
	CommandResizeEnd      CommandType = "RESIZE_END"
	CommandWatch          CommandType = "WATCH"
)

const (
	StatusOK    = "OK"
	StatusError = "ERROR"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	WindowCount    int           `json:"window_count"`
	ActiveWindow   wm.WindowID   `json:"active_window"`
	Viewport       geometry.Size `json:"viewport"`
	UptimeSeconds  int64         `json:"uptime_seconds"`
	Watchers       int           `json:"watchers"`
	DaemonRunning  bool          `json:"daemon_running"`
	ConfigPath     string        `json:"config_path,omitempty"`
	ViewportSource string        `json:"viewport_source"`
}

type WindowsData struct {
	Windows []wm.Window `json:"windows"`
}

type ProjectInfo struct {
	Project  string      `json:"project"`
	Title    string      `json:"title"`
	Open     bool        `json:"open"`
	WindowID wm.WindowID `json:"window_id,omitempty"`
}

type ProjectsData struct {
	Projects []ProjectInfo `json:"projects"`
}

type OpenPayload struct {
	Project string `json:"project"`
	Title   string `json:"title,omitempty"`
}

// WindowPayload addresses a single window.
type WindowPayload struct {
	ID wm.WindowID `json:"id"`
}

// PointerPayload carries a pointer position for drag and resize commands.
type PointerPayload struct {
	ID wm.WindowID `json:"id"`
	X  int         `json:"x"`
	Y  int         `json:"y"`
}

func (p PointerPayload) Point() geometry.Point {
	return geometry.Point{X: p.X, Y: p.Y}
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: StatusOK,
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: StatusError,
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
