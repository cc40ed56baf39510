/*
Package wm implements the window manager core: window identity, z-order and
focus, drag/resize interaction, and the timed minimize/maximize/close
transitions.

The Manager is a plain state machine. It is not safe for concurrent use and
must be driven from a single goroutine; delayed completions are registered
with a clock.Scheduler whose callbacks are delivered back onto that same
goroutine. Every operation on an unknown, removed or closing window is a
silent no-op, and geometry requests that would break a floor are clamped.

Example usage:

	mgr := wm.NewManager(wm.Options{
		Layout:    wm.DefaultLayout(),
		Timing:    wm.DefaultTiming(),
		Viewport:  geometry.Size{Width: 1440, Height: 900},
		Scheduler: loop,
		Listener:  wm.ListenerFunc(render),
	})
	id := mgr.Open("blog", "Blog")
	mgr.ToggleMaximize(id)
*/
package wm
