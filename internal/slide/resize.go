package slide

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/tui-slideshow/internal/core"
)

// ErrInvalidDimensions is returned when a size cannot be resolved because a
// source or canvas dimension is zero.
var ErrInvalidDimensions = errors.New("slide: invalid dimensions")

// ErrUnknownResizeOption is returned by ParseResizeOption for unrecognised tokens.
var ErrUnknownResizeOption = errors.New("slide: unknown resize option")

// ResizeOption selects how a slide's source size maps onto the canvas.
type ResizeOption int

const (
	NoResize           ResizeOption = iota // defer to the show-wide option
	Native                                 // keep the source size
	Fit                                    // stretch to the canvas
	FitProportionally                      // scale the longer axis to the canvas
	FillProportionally                     // scale the shorter axis to the canvas
)

var resizeNames = map[ResizeOption]string{
	NoResize:           "NoResize",
	Native:             "Native",
	Fit:                "Fit",
	FitProportionally:  "FitProportionally",
	FillProportionally: "FillProportionally",
}

// String returns the settings token for the option.
func (o ResizeOption) String() string {
	if name, ok := resizeNames[o]; ok {
		return name
	}
	return fmt.Sprintf("ResizeOption(%d)", int(o))
}

// ParseResizeOption converts a settings token into a ResizeOption.
// Matching ignores case. An empty token means NoResize.
func ParseResizeOption(s string) (ResizeOption, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return NoResize, nil
	}
	for opt, name := range resizeNames {
		if strings.EqualFold(s, name) {
			return opt, nil
		}
	}
	return NoResize, fmt.Errorf("%w: %q", ErrUnknownResizeOption, s)
}

// MarshalYAML writes the option as its token.
func (o ResizeOption) MarshalYAML() (any, error) {
	return o.String(), nil
}

// UnmarshalYAML reads the option from its token.
func (o *ResizeOption) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	opt, err := ParseResizeOption(s)
	if err != nil {
		return err
	}
	*o = opt
	return nil
}

// Effective returns the option that applies to a slide: its own option,
// unless that is NoResize, in which case the show-wide option.
func Effective(slideOpt, showOpt ResizeOption) ResizeOption {
	if slideOpt == NoResize {
		return showOpt
	}
	return slideOpt
}

// Resolve computes the size a slide occupies on a canvas.
func Resolve(src, canvas core.Size, opt ResizeOption) (core.Size, error) {
	if src.Empty() {
		return core.Size{}, fmt.Errorf("%w: source %dx%d", ErrInvalidDimensions, src.W, src.H)
	}

	switch opt {
	case NoResize, Native:
		return src, nil
	case Fit, FitProportionally, FillProportionally:
		if canvas.Empty() {
			return core.Size{}, fmt.Errorf("%w: canvas %dx%d", ErrInvalidDimensions, canvas.W, canvas.H)
		}
	default:
		return core.Size{}, fmt.Errorf("%w: %v", ErrUnknownResizeOption, opt)
	}

	if opt == Fit {
		return canvas, nil
	}

	widthRatio := float64(canvas.W) / float64(src.W)
	heightRatio := float64(canvas.H) / float64(src.H)
	wider := src.W > src.H

	var ratio float64
	switch opt {
	case FitProportionally:
		ratio = heightRatio
		if wider {
			ratio = widthRatio
		}
	case FillProportionally:
		ratio = widthRatio
		if wider {
			ratio = heightRatio
		}
	}

	return core.Size{W: scaleDim(src.W, ratio), H: scaleDim(src.H, ratio)}, nil
}

func scaleDim(v int, ratio float64) int {
	return core.Max(1, int(math.Round(float64(v)*ratio)))
}
