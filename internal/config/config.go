package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/1broseidon/studiowm/internal/geometry"
	"github.com/1broseidon/studiowm/internal/wm"
)

const (
	ViewportSourceStatic = "static"
	ViewportSourceX11    = "x11"
)

// Config is the effective studiowm configuration.
type Config struct {
	LogLevel string `yaml:"log_level"`

	Viewport ViewportConfig `yaml:"viewport"`
	Layout   LayoutConfig   `yaml:"layout"`
	Timing   TimingConfig   `yaml:"timing"`

	// ZBase is the first z-order rank handed out, above any host chrome.
	ZBase int `yaml:"z_base"`

	AddressTemplate string `yaml:"address_template"`
	ImageTemplate   string `yaml:"image_template"`

	// Projects is the catalog shown in the dock, in display order.
	Projects []Project `yaml:"projects"`
}

// ViewportConfig describes the backdrop windows live on.
type ViewportConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// Source selects where the size comes from: "static" uses Width and
	// Height, "x11" follows the primary monitor's work area.
	Source      string `yaml:"source"`
	PollSeconds int    `yaml:"poll_seconds"`
	Display     string `yaml:"display,omitempty"`
}

type LayoutConfig struct {
	TopInset      int `yaml:"top_inset"`
	BottomInset   int `yaml:"bottom_inset"`
	MinWidth      int `yaml:"min_width"`
	MinHeight     int `yaml:"min_height"`
	DefaultWidth  int `yaml:"default_width"`
	DefaultHeight int `yaml:"default_height"`
	CascadeBaseX  int `yaml:"cascade_base_x"`
	CascadeBaseY  int `yaml:"cascade_base_y"`
	CascadeStepX  int `yaml:"cascade_step_x"`
	CascadeStepY  int `yaml:"cascade_step_y"`
	CascadeResetX int `yaml:"cascade_reset_x"`
	CascadeResetY int `yaml:"cascade_reset_y"`
}

// TimingConfig holds transition delays in milliseconds.
type TimingConfig struct {
	CloseMS          int `yaml:"close_ms"`
	MinimizeMS       int `yaml:"minimize_ms"`
	MaximizeSettleMS int `yaml:"maximize_settle_ms"`
}

// Project is a catalog entry that can be opened as a window.
type Project struct {
	Project string `yaml:"project"`
	Title   string `yaml:"title"`
}

func DefaultConfig() *Config {
	layout := wm.DefaultLayout()
	timing := wm.DefaultTiming()

	return &Config{
		LogLevel: "info",
		Viewport: ViewportConfig{
			Width:       1440,
			Height:      900,
			Source:      ViewportSourceStatic,
			PollSeconds: 5,
		},
		Layout: LayoutConfig{
			TopInset:      layout.TopInset,
			BottomInset:   layout.BottomInset,
			MinWidth:      layout.MinWidth,
			MinHeight:     layout.MinHeight,
			DefaultWidth:  layout.DefaultSize.Width,
			DefaultHeight: layout.DefaultSize.Height,
			CascadeBaseX:  layout.CascadeBase.X,
			CascadeBaseY:  layout.CascadeBase.Y,
			CascadeStepX:  layout.CascadeStep.X,
			CascadeStepY:  layout.CascadeStep.Y,
			CascadeResetX: layout.CascadeReset.X,
			CascadeResetY: layout.CascadeReset.Y,
		},
		Timing: TimingConfig{
			CloseMS:          int(timing.CloseDelay / time.Millisecond),
			MinimizeMS:       int(timing.MinimizeDelay / time.Millisecond),
			MaximizeSettleMS: int(timing.MaximizeSettle / time.Millisecond),
		},
		ZBase:           0,
		AddressTemplate: "portfolio.studio/{project}",
		ImageTemplate:   "avodot/{project}.png",
		Projects: []Project{
			{Project: "about", Title: "About"},
			{Project: "gallery", Title: "Gallery"},
			{Project: "notes", Title: "Notes"},
			{Project: "contact", Title: "Contact"},
		},
	}
}

func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warning", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}

	switch c.Viewport.Source {
	case ViewportSourceStatic, ViewportSourceX11:
	default:
		return &ValidationError{Path: "viewport.source", Err: fmt.Errorf("source must be one of: static, x11")}
	}
	if c.Viewport.Width <= 0 {
		return &ValidationError{Path: "viewport.width", Err: fmt.Errorf("width must be > 0")}
	}
	if c.Viewport.Height <= 0 {
		return &ValidationError{Path: "viewport.height", Err: fmt.Errorf("height must be > 0")}
	}
	if c.Viewport.Source == ViewportSourceX11 && c.Viewport.PollSeconds <= 0 {
		return &ValidationError{Path: "viewport.poll_seconds", Err: fmt.Errorf("poll_seconds must be > 0 when source is x11")}
	}

	l := c.Layout
	if l.TopInset < 0 {
		return &ValidationError{Path: "layout.top_inset", Err: fmt.Errorf("top_inset must be >= 0")}
	}
	if l.BottomInset < 0 {
		return &ValidationError{Path: "layout.bottom_inset", Err: fmt.Errorf("bottom_inset must be >= 0")}
	}
	if l.MinWidth <= 0 {
		return &ValidationError{Path: "layout.min_width", Err: fmt.Errorf("min_width must be > 0")}
	}
	if l.MinHeight <= 0 {
		return &ValidationError{Path: "layout.min_height", Err: fmt.Errorf("min_height must be > 0")}
	}
	if l.DefaultWidth < l.MinWidth {
		return &ValidationError{Path: "layout.default_width", Err: fmt.Errorf("default_width must be >= min_width (%d)", l.MinWidth)}
	}
	if l.DefaultHeight < l.MinHeight {
		return &ValidationError{Path: "layout.default_height", Err: fmt.Errorf("default_height must be >= min_height (%d)", l.MinHeight)}
	}
	if l.CascadeBaseY < l.TopInset {
		return &ValidationError{Path: "layout.cascade_base_y", Err: fmt.Errorf("cascade_base_y must be >= top_inset (%d)", l.TopInset)}
	}
	if l.CascadeStepX < 0 || l.CascadeStepY < 0 {
		return &ValidationError{Path: "layout.cascade_step_x", Err: fmt.Errorf("cascade steps must be >= 0")}
	}
	if l.CascadeResetX < l.CascadeBaseX {
		return &ValidationError{Path: "layout.cascade_reset_x", Err: fmt.Errorf("cascade_reset_x must be >= cascade_base_x (%d)", l.CascadeBaseX)}
	}
	if l.CascadeResetY < l.CascadeBaseY {
		return &ValidationError{Path: "layout.cascade_reset_y", Err: fmt.Errorf("cascade_reset_y must be >= cascade_base_y (%d)", l.CascadeBaseY)}
	}

	if c.Timing.CloseMS < 0 {
		return &ValidationError{Path: "timing.close_ms", Err: fmt.Errorf("close_ms must be >= 0")}
	}
	if c.Timing.MinimizeMS < 0 {
		return &ValidationError{Path: "timing.minimize_ms", Err: fmt.Errorf("minimize_ms must be >= 0")}
	}
	if c.Timing.MaximizeSettleMS < 0 {
		return &ValidationError{Path: "timing.maximize_settle_ms", Err: fmt.Errorf("maximize_settle_ms must be >= 0")}
	}
	if c.ZBase < 0 {
		return &ValidationError{Path: "z_base", Err: fmt.Errorf("z_base must be >= 0")}
	}

	seen := make(map[string]struct{}, len(c.Projects))
	for i, p := range c.Projects {
		key := strings.TrimSpace(p.Project)
		if key == "" {
			return &ValidationError{Path: "projects", Err: fmt.Errorf("projects[%d]: project must not be empty", i)}
		}
		if _, dup := seen[key]; dup {
			return &ValidationError{Path: "projects", Err: fmt.Errorf("projects[%d]: duplicate project %q", i, key)}
		}
		seen[key] = struct{}{}
	}
	return nil
}

// WMLayout converts the layout section for the window manager.
func (c *Config) WMLayout() wm.Layout {
	l := c.Layout
	return wm.Layout{
		TopInset:     l.TopInset,
		BottomInset:  l.BottomInset,
		MinWidth:     l.MinWidth,
		MinHeight:    l.MinHeight,
		DefaultSize:  geometry.Size{Width: l.DefaultWidth, Height: l.DefaultHeight},
		CascadeBase:  geometry.Point{X: l.CascadeBaseX, Y: l.CascadeBaseY},
		CascadeStep:  geometry.Point{X: l.CascadeStepX, Y: l.CascadeStepY},
		CascadeReset: geometry.Point{X: l.CascadeResetX, Y: l.CascadeResetY},
	}
}

func (c *Config) WMTiming() wm.Timing {
	return wm.Timing{
		CloseDelay:     time.Duration(c.Timing.CloseMS) * time.Millisecond,
		MinimizeDelay:  time.Duration(c.Timing.MinimizeMS) * time.Millisecond,
		MaximizeSettle: time.Duration(c.Timing.MaximizeSettleMS) * time.Millisecond,
	}
}

// ViewportSize is the static viewport size.
func (c *Config) ViewportSize() geometry.Size {
	return geometry.Size{Width: c.Viewport.Width, Height: c.Viewport.Height}
}

// FindProject returns the catalog entry for key.
func (c *Config) FindProject(key string) (Project, bool) {
	for _, p := range c.Projects {
		if p.Project == key {
			return p, true
		}
	}
	return Project{}, false
}

// TitleFor returns the catalog title for key, falling back to key itself.
func (c *Config) TitleFor(key string) string {
	if p, ok := c.FindProject(key); ok && strings.TrimSpace(p.Title) != "" {
		return p.Title
	}
	return key
}

// SlogLevel maps LogLevel onto a slog level. Unknown values map to info.
func (c *Config) SlogLevel() slog.Level {
	return ParseLogLevel(c.LogLevel)
}

func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warning", "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
