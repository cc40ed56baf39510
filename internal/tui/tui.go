// Package tui draws the desktop in a terminal and feeds mouse and keyboard
// input back into the window manager.
package tui

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/1broseidon/studiowm/internal/config"
	"github.com/1broseidon/studiowm/internal/wm"
)

// Desk is the window manager surface the terminal desktop drives.
// *daemon.Daemon satisfies it.
type Desk interface {
	Open(ctx context.Context, project, title string) (wm.Window, error)
	Do(ctx context.Context, fn func(*wm.Manager) error) error
}

type Options struct {
	Desk     Desk
	Projects []config.Project

	// Events triggers a redraw whenever a window changes, including when a
	// timed transition finishes. Optional.
	Events <-chan wm.Event

	// Now defaults to time.Now.
	Now func() time.Time
}

// Run shows the desktop until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("tui requires an interactive terminal")
	}
	if opts.Desk == nil {
		return fmt.Errorf("tui requires a window manager")
	}

	p := tea.NewProgram(
		newModel(ctx, opts),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)

	if opts.Events != nil {
		go func() {
			for e := range opts.Events {
				p.Send(eventMsg(e))
			}
		}()
	}

	_, err := p.Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
