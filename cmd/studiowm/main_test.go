package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/1broseidon/studiowm/internal/geometry"
	"github.com/1broseidon/studiowm/internal/ipc"
	"github.com/1broseidon/studiowm/internal/wm"
)

func TestParseWindowID(t *testing.T) {
	tests := []struct {
		in      string
		want    wm.WindowID
		wantErr bool
	}{
		{"1", 1, false},
		{" 42 ", 42, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseWindowID(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseWindowID(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("parseWindowID(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseDelta(t *testing.T) {
	dx, dy, err := parseDelta("-20", "35")
	if err != nil || dx != -20 || dy != 35 {
		t.Fatalf("parseDelta = %d, %d, %v", dx, dy, err)
	}
	if _, _, err := parseDelta("1.5", "0"); err == nil {
		t.Fatal("expected error for non-integer offset")
	}
}

func TestFormatWindow(t *testing.T) {
	w := wm.Window{
		ID:         3,
		Project:    "gallery",
		Title:      "Gallery",
		Geometry:   geometry.Rect{X: 0, Y: 28, Width: 1440, Height: 786},
		ZOrder:     7,
		Visibility: wm.VisibilityNormal,
		Maximized:  true,
		Active:     true,
	}
	got := formatWindow(w)
	for _, want := range []string{"* 3", "gallery", "z=7", "normal,maximized", "Gallery"} {
		if !strings.Contains(got, want) {
			t.Fatalf("formatWindow() = %q, missing %q", got, want)
		}
	}
}

func TestPrintWindows_Empty(t *testing.T) {
	var buf bytes.Buffer
	printWindows(&buf, nil)
	if buf.String() != "no windows\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestPrintProjects(t *testing.T) {
	var buf bytes.Buffer
	printProjects(&buf, []ipc.ProjectInfo{
		{Project: "about", Title: "About", Open: true, WindowID: 2},
		{Project: "notes", Title: "Notes"},
	})
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", buf.String())
	}
	if !strings.HasPrefix(lines[0], "1. about") || !strings.HasSuffix(lines[0], "window 2") {
		t.Fatalf("unexpected first line %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], "-") {
		t.Fatalf("unexpected second line %q", lines[1])
	}
}
