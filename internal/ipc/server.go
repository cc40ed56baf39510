package ipc

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"github.com/1broseidon/studiowm/internal/daemon"
	"github.com/1broseidon/studiowm/internal/geometry"
	"github.com/1broseidon/studiowm/internal/runtimepath"
	"github.com/1broseidon/studiowm/internal/wm"
)

// ServerOptions configures a Server.
type ServerOptions struct {
	// SocketPath defaults to runtimepath.SocketPath().
	SocketPath string
	Logger     *slog.Logger

	// CommandTimeout bounds how long a command waits on the window loop.
	CommandTimeout time.Duration
}

// Server handles IPC requests from clients
type Server struct {
	socketPath string
	daemon     *daemon.Daemon
	logger     *slog.Logger
	timeout    time.Duration
	conns      sync.WaitGroup
}

// NewServer creates a new IPC server
func NewServer(d *daemon.Daemon, opts ServerOptions) (*Server, error) {
	socketPath := opts.SocketPath
	if socketPath == "" {
		var err error
		socketPath, err = runtimepath.SocketPath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
		}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := opts.CommandTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &Server{
		socketPath: socketPath,
		daemon:     d,
		logger:     logger,
		timeout:    timeout,
	}, nil
}

func (s *Server) String() string {
	return "ipc-server"
}

// SocketPath returns the socket the server listens on.
func (s *Server) SocketPath() string {
	return s.socketPath
}

// Serve listens on the socket until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	// Remove a stale socket left by a previous run.
	os.Remove(s.socketPath)

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	defer os.Remove(s.socketPath)

	if err := os.Chmod(s.socketPath, 0600); err != nil {
		listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.logger.Info("IPC server listening", "socket", s.socketPath)

	go func() {
		<-ctx.Done()
		listener.Close()
	}()

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				s.conns.Wait()
				return ctx.Err()
			}
			if errors.Is(err, net.ErrClosed) {
				return err
			}
			s.logger.Warn("IPC accept error", "error", err)
			continue
		}

		s.conns.Add(1)
		go func() {
			defer s.conns.Done()
			s.handleConnection(ctx, conn)
		}()
	}
}

// handleConnection handles a single IPC connection
func (s *Server) handleConnection(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)

	// Read the request (expect JSON on a single line)
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		s.logger.Warn("IPC read error", "error", err)
		return
	}

	req, err := ParseRequest(data)
	if err != nil {
		s.writeResponse(conn, NewErrorResponse(fmt.Sprintf("Invalid request: %v", err)))
		return
	}

	if req.Command == CommandWatch {
		s.handleWatch(ctx, conn, reader)
		return
	}

	cmdCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	s.writeResponse(conn, s.handleCommand(cmdCtx, req))
}

func (s *Server) writeResponse(conn net.Conn, resp *Response) {
	respData, err := resp.Marshal()
	if err != nil {
		s.logger.Error("failed to marshal response", "error", err)
		return
	}
	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		s.logger.Warn("failed to send response", "error", err)
	}
}

// handleCommand processes an IPC command and returns a response
func (s *Server) handleCommand(ctx context.Context, req *Request) *Response {
	switch req.Command {
	case CommandReload:
		return s.handleReload(ctx)
	case CommandGetStatus:
		return s.handleGetStatus(ctx)
	case CommandListWindows:
		return s.handleListWindows(ctx)
	case CommandListProjects:
		return s.handleListProjects(ctx)
	case CommandOpen:
		return s.handleOpen(ctx, req.Payload)
	case CommandFocus:
		return s.windowCommand(ctx, req, (*wm.Manager).Focus)
	case CommandClose:
		return s.windowCommand(ctx, req, (*wm.Manager).Close)
	case CommandMinimize:
		return s.windowCommand(ctx, req, (*wm.Manager).Minimize)
	case CommandRestore:
		return s.windowCommand(ctx, req, (*wm.Manager).Restore)
	case CommandToggleMaximize:
		return s.windowCommand(ctx, req, (*wm.Manager).ToggleMaximize)
	case CommandDragEnd:
		return s.windowCommand(ctx, req, (*wm.Manager).EndDrag)
	case CommandResizeEnd:
		return s.windowCommand(ctx, req, (*wm.Manager).EndResize)
	case CommandDragBegin:
		return s.pointerCommand(ctx, req, (*wm.Manager).BeginDrag)
	case CommandDragUpdate:
		return s.pointerCommand(ctx, req, (*wm.Manager).UpdateDrag)
	case CommandResizeBegin:
		return s.pointerCommand(ctx, req, (*wm.Manager).BeginResize)
	case CommandResizeUpdate:
		return s.pointerCommand(ctx, req, (*wm.Manager).UpdateResize)
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

func (s *Server) handleReload(ctx context.Context) *Response {
	s.logger.Info("IPC: received RELOAD command")
	if err := s.daemon.Reload(ctx); err != nil {
		return NewErrorResponse(err.Error())
	}
	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleGetStatus(ctx context.Context) *Response {
	st, err := s.daemon.Status(ctx)
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to get status: %v", err))
	}
	cfg := s.daemon.Config()

	resp, _ := NewOKResponse(StatusData{
		WindowCount:    st.Windows,
		ActiveWindow:   st.Active,
		Viewport:       st.Viewport,
		UptimeSeconds:  int64(st.Uptime.Seconds()),
		Watchers:       st.Subscribers,
		DaemonRunning:  true,
		ConfigPath:     s.daemon.ConfigPath(),
		ViewportSource: cfg.Viewport.Source,
	})
	return resp
}

func (s *Server) handleListWindows(ctx context.Context) *Response {
	windows, err := s.daemon.Windows(ctx)
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to list windows: %v", err))
	}
	if windows == nil {
		windows = []wm.Window{}
	}
	resp, _ := NewOKResponse(WindowsData{Windows: windows})
	return resp
}

func (s *Server) handleListProjects(ctx context.Context) *Response {
	states, err := s.daemon.Projects(ctx)
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to list projects: %v", err))
	}
	projects := make([]ProjectInfo, 0, len(states))
	for _, st := range states {
		projects = append(projects, ProjectInfo{
			Project:  st.Project.Project,
			Title:    st.Title,
			Open:     st.Open,
			WindowID: st.WindowID,
		})
	}
	resp, _ := NewOKResponse(ProjectsData{Projects: projects})
	return resp
}

func (s *Server) handleOpen(ctx context.Context, payload json.RawMessage) *Response {
	var req OpenPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid open payload: %v", err))
	}
	win, err := s.daemon.Open(ctx, req.Project, req.Title)
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to open: %v", err))
	}
	resp, err := NewOKResponse(win)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

// windowCommand applies op to the window named in the payload and answers
// with its snapshot afterwards.
func (s *Server) windowCommand(ctx context.Context, req *Request, op func(*wm.Manager, wm.WindowID)) *Response {
	var payload WindowPayload
	if err := json.Unmarshal(req.Payload, &payload); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid %s payload: %v", req.Command, err))
	}
	return s.applyToWindow(ctx, payload.ID, func(m *wm.Manager) {
		op(m, payload.ID)
	})
}

func (s *Server) pointerCommand(ctx context.Context, req *Request, op func(*wm.Manager, wm.WindowID, geometry.Point)) *Response {
	var payload PointerPayload
	if err := json.Unmarshal(req.Payload, &payload); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid %s payload: %v", req.Command, err))
	}
	return s.applyToWindow(ctx, payload.ID, func(m *wm.Manager) {
		op(m, payload.ID, payload.Point())
	})
}

func (s *Server) applyToWindow(ctx context.Context, id wm.WindowID, apply func(*wm.Manager)) *Response {
	if id == 0 {
		return NewErrorResponse("id is required")
	}

	var (
		win   wm.Window
		found bool
	)
	err := s.daemon.Do(ctx, func(m *wm.Manager) error {
		if _, ok := m.Window(id); !ok {
			return fmt.Errorf("unknown window %d", id)
		}
		apply(m)
		win, found = m.Window(id)
		return nil
	})
	if err != nil {
		return NewErrorResponse(err.Error())
	}

	if !found {
		resp, _ := NewOKResponse(nil)
		return resp
	}
	resp, _ := NewOKResponse(win)
	return resp
}

// handleWatch answers OK and then streams events until the client hangs up
// or the server stops.
func (s *Server) handleWatch(ctx context.Context, conn net.Conn, reader *bufio.Reader) {
	id, events, unsubscribe := s.daemon.Events().Subscribe()
	defer unsubscribe()

	logger := s.logger.With("watcher", id)
	logger.Debug("IPC: watch started")
	defer logger.Debug("IPC: watch ended")

	resp, _ := NewOKResponse(map[string]string{"watcher": id})
	s.writeResponse(conn, resp)

	hangup := make(chan struct{})
	go func() {
		defer close(hangup)
		// Anything the client sends after WATCH is ignored; EOF means it left.
		io.Copy(io.Discard, reader)
	}()

	enc := json.NewEncoder(conn)
	for {
		select {
		case <-ctx.Done():
			return
		case <-hangup:
			return
		case e, ok := <-events:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(s.timeout))
			if err := enc.Encode(e); err != nil {
				logger.Debug("IPC: watch write failed", "error", err)
				return
			}
		}
	}
}
