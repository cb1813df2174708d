package slide

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-slideshow/internal/core"
)

func TestResolve(t *testing.T) {
	canvas := core.Size{W: 100, H: 100}

	tests := []struct {
		name string
		src  core.Size
		opt  ResizeOption
		want core.Size
	}{
		{"native keeps source", core.Size{W: 200, H: 100}, Native, core.Size{W: 200, H: 100}},
		{"no resize keeps source", core.Size{W: 30, H: 40}, NoResize, core.Size{W: 30, H: 40}},
		{"fit stretches", core.Size{W: 200, H: 100}, Fit, core.Size{W: 100, H: 100}},
		{"fit proportionally wide", core.Size{W: 200, H: 100}, FitProportionally, core.Size{W: 100, H: 50}},
		{"fit proportionally tall", core.Size{W: 50, H: 200}, FitProportionally, core.Size{W: 25, H: 100}},
		{"fill proportionally wide", core.Size{W: 200, H: 100}, FillProportionally, core.Size{W: 200, H: 100}},
		{"fill proportionally tall", core.Size{W: 50, H: 200}, FillProportionally, core.Size{W: 100, H: 400}},
		{"square", core.Size{W: 10, H: 10}, FitProportionally, core.Size{W: 100, H: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.src, canvas, tt.opt)
			if err != nil {
				t.Fatalf("Resolve() failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Resolve() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveInvalidDimensions(t *testing.T) {
	tests := []struct {
		name   string
		src    core.Size
		canvas core.Size
		opt    ResizeOption
	}{
		{"zero width", core.Size{W: 0, H: 10}, core.Size{W: 10, H: 10}, Native},
		{"zero height", core.Size{W: 10, H: 0}, core.Size{W: 10, H: 10}, Fit},
		{"zero canvas", core.Size{W: 10, H: 10}, core.Size{W: 0, H: 10}, FitProportionally},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(tt.src, tt.canvas, tt.opt)
			if !errors.Is(err, ErrInvalidDimensions) {
				t.Errorf("Resolve() error = %v, want ErrInvalidDimensions", err)
			}
		})
	}
}

func TestEffective(t *testing.T) {
	if got := Effective(NoResize, Fit); got != Fit {
		t.Errorf("Effective(NoResize, Fit) = %v, want Fit", got)
	}
	if got := Effective(Native, Fit); got != Native {
		t.Errorf("Effective(Native, Fit) = %v, want Native", got)
	}
}

func TestParseResizeOption(t *testing.T) {
	for opt, name := range resizeNames {
		got, err := ParseResizeOption(name)
		if err != nil {
			t.Fatalf("ParseResizeOption(%q) failed: %v", name, err)
		}
		if got != opt {
			t.Errorf("ParseResizeOption(%q) = %v, want %v", name, got, opt)
		}
	}

	if got, _ := ParseResizeOption("fitproportionally"); got != FitProportionally {
		t.Errorf("case-insensitive parse = %v", got)
	}
	if got, err := ParseResizeOption(""); err != nil || got != NoResize {
		t.Errorf("empty token = %v, %v", got, err)
	}
	if _, err := ParseResizeOption("Stretch"); !errors.Is(err, ErrUnknownResizeOption) {
		t.Errorf("unknown token error = %v", err)
	}
}
