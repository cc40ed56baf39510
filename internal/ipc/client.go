package ipc

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/1broseidon/studiowm/internal/runtimepath"
	"github.com/1broseidon/studiowm/internal/wm"
)

// Client handles IPC communication with the daemon
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a new IPC client
func NewClient() *Client {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		// Keep constructor non-failing; sendRequest surfaces connection errors.
		socketPath = ""
	}
	return NewClientWithSocket(socketPath)
}

// NewClientWithSocket creates a client for an explicit socket path.
func NewClientWithSocket(socketPath string) *Client {
	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

func (c *Client) dial() (net.Conn, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon: %w (is the daemon running?)", err)
	}
	return conn, nil
}

func writeRequest(conn net.Conn, req *Request) error {
	reqData, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}
	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	return nil
}

func readResponse(reader *bufio.Reader) (*Response, error) {
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if resp.Status == StatusError {
		return nil, fmt.Errorf("daemon error: %s", resp.Error)
	}
	return &resp, nil
}

// sendRequest sends a request and waits for a response
func (c *Client) sendRequest(req *Request) (*Response, error) {
	conn, err := c.dial()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	if err := writeRequest(conn, req); err != nil {
		return nil, err
	}
	return readResponse(bufio.NewReader(conn))
}

func (c *Client) call(cmd CommandType, payload any, out any) error {
	req := &Request{Command: cmd}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal %s payload: %w", cmd, err)
		}
		req.Payload = data
	}

	resp, err := c.sendRequest(req)
	if err != nil {
		return err
	}
	if out == nil || len(resp.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("failed to parse %s data: %w", cmd, err)
	}
	return nil
}

// Reload sends a RELOAD command to the daemon
func (c *Client) Reload() error {
	return c.call(CommandReload, nil, nil)
}

// GetStatus retrieves daemon status
func (c *Client) GetStatus() (*StatusData, error) {
	var status StatusData
	if err := c.call(CommandGetStatus, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// ListWindows returns every window, topmost last.
func (c *Client) ListWindows() ([]wm.Window, error) {
	var data WindowsData
	if err := c.call(CommandListWindows, nil, &data); err != nil {
		return nil, err
	}
	return data.Windows, nil
}

// ListProjects returns the daemon's project catalog.
func (c *Client) ListProjects() ([]ProjectInfo, error) {
	var data ProjectsData
	if err := c.call(CommandListProjects, nil, &data); err != nil {
		return nil, err
	}
	return data.Projects, nil
}

// Open opens or re-focuses the window for project.
func (c *Client) Open(project, title string) (wm.Window, error) {
	var win wm.Window
	err := c.call(CommandOpen, OpenPayload{Project: project, Title: title}, &win)
	return win, err
}

// windowCall returns the window after the command. The zero Window means it
// no longer exists.
func (c *Client) windowCall(cmd CommandType, payload any) (wm.Window, error) {
	var win wm.Window
	err := c.call(cmd, payload, &win)
	return win, err
}

func (c *Client) Focus(id wm.WindowID) (wm.Window, error) {
	return c.windowCall(CommandFocus, WindowPayload{ID: id})
}

func (c *Client) Close(id wm.WindowID) (wm.Window, error) {
	return c.windowCall(CommandClose, WindowPayload{ID: id})
}

func (c *Client) Minimize(id wm.WindowID) (wm.Window, error) {
	return c.windowCall(CommandMinimize, WindowPayload{ID: id})
}

func (c *Client) Restore(id wm.WindowID) (wm.Window, error) {
	return c.windowCall(CommandRestore, WindowPayload{ID: id})
}

func (c *Client) ToggleMaximize(id wm.WindowID) (wm.Window, error) {
	return c.windowCall(CommandToggleMaximize, WindowPayload{ID: id})
}

func (c *Client) DragBegin(id wm.WindowID, x, y int) error {
	return c.call(CommandDragBegin, PointerPayload{ID: id, X: x, Y: y}, nil)
}

func (c *Client) DragUpdate(id wm.WindowID, x, y int) error {
	return c.call(CommandDragUpdate, PointerPayload{ID: id, X: x, Y: y}, nil)
}

func (c *Client) DragEnd(id wm.WindowID) error {
	return c.call(CommandDragEnd, WindowPayload{ID: id}, nil)
}

func (c *Client) ResizeBegin(id wm.WindowID, x, y int) error {
	return c.call(CommandResizeBegin, PointerPayload{ID: id, X: x, Y: y}, nil)
}

func (c *Client) ResizeUpdate(id wm.WindowID, x, y int) error {
	return c.call(CommandResizeUpdate, PointerPayload{ID: id, X: x, Y: y}, nil)
}

func (c *Client) ResizeEnd(id wm.WindowID) error {
	return c.call(CommandResizeEnd, WindowPayload{ID: id}, nil)
}

// Move drags id by (dx, dy) as one begin/update/end gesture.
func (c *Client) Move(id wm.WindowID, dx, dy int) (wm.Window, error) {
	if err := c.DragBegin(id, 0, 0); err != nil {
		return wm.Window{}, err
	}
	if err := c.DragUpdate(id, dx, dy); err != nil {
		return wm.Window{}, err
	}
	var win wm.Window
	err := c.call(CommandDragEnd, WindowPayload{ID: id}, &win)
	return win, err
}

// Resize grows id by (dx, dy) as one begin/update/end gesture.
func (c *Client) Resize(id wm.WindowID, dx, dy int) (wm.Window, error) {
	if err := c.ResizeBegin(id, 0, 0); err != nil {
		return wm.Window{}, err
	}
	if err := c.ResizeUpdate(id, dx, dy); err != nil {
		return wm.Window{}, err
	}
	var win wm.Window
	err := c.call(CommandResizeEnd, WindowPayload{ID: id}, &win)
	return win, err
}

// Watch streams events to fn until ctx is cancelled, the daemon goes away or
// fn returns an error.
func (c *Client) Watch(ctx context.Context, fn func(wm.Event) error) error {
	conn, err := c.dial()
	if err != nil {
		return err
	}
	defer conn.Close()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-stop:
		}
	}()

	conn.SetDeadline(time.Now().Add(c.timeout))
	if err := writeRequest(conn, &Request{Command: CommandWatch}); err != nil {
		return err
	}
	reader := bufio.NewReader(conn)
	if _, err := readResponse(reader); err != nil {
		return err
	}
	conn.SetDeadline(time.Time{})

	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("watch stream ended: %w", err)
		}
		var e wm.Event
		if err := json.Unmarshal(line, &e); err != nil {
			return fmt.Errorf("failed to parse event: %w", err)
		}
		if err := fn(e); err != nil {
			return err
		}
	}
}

// Ping checks if the daemon is responding
func (c *Client) Ping() error {
	_, err := c.GetStatus()
	return err
}
