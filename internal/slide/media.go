package slide

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/image/draw"

	"github.com/vovakirdan/tui-slideshow/internal/core"
)

// Kind identifies the media variant behind a slide.
type Kind int

const (
	KindImage Kind = iota
	KindVideo
)

// String returns a lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindVideo:
		return "video"
	default:
		return "unknown"
	}
}

// Media is the content shown by a slide. The set of implementations is
// closed: ImageMedia and VideoMedia.
type Media interface {
	Kind() Kind

	// draw paints the media into area. visible filters cells hidden by the
	// active transition; elapsed is the time since the slide started.
	draw(dst *core.Screen, area core.Rect, elapsed time.Duration, visible func(x, y int) bool)
}

// lumaRamp orders glyphs from darkest to brightest.
const lumaRamp = " .:-=+*#%@"

// ImageMedia is a decoded still image rendered as coloured glyphs.
type ImageMedia struct {
	img image.Image

	mu     sync.Mutex
	scaled *image.RGBA
}

// NewImageMedia wraps a decoded image.
func NewImageMedia(img image.Image) *ImageMedia {
	return &ImageMedia{img: img}
}

// Kind returns KindImage.
func (m *ImageMedia) Kind() Kind { return KindImage }

// Bounds returns the pixel size of the source image.
func (m *ImageMedia) Bounds() core.Size {
	b := m.img.Bounds()
	return core.Size{W: b.Dx(), H: b.Dy()}
}

// scaledTo returns the image resampled to size, reusing the last result when
// the size is unchanged.
func (m *ImageMedia) scaledTo(size core.Size) *image.RGBA {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.scaled != nil && m.scaled.Bounds().Dx() == size.W && m.scaled.Bounds().Dy() == size.H {
		return m.scaled
	}
	dst := image.NewRGBA(image.Rect(0, 0, size.W, size.H))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), m.img, m.img.Bounds(), draw.Src, nil)
	m.scaled = dst
	return dst
}

func (m *ImageMedia) draw(dst *core.Screen, area core.Rect, _ time.Duration, visible func(x, y int) bool) {
	clip := area.Intersect(dst.Bounds())
	if clip.W == 0 || clip.H == 0 {
		return
	}
	px := m.scaledTo(core.Size{W: area.W, H: area.H})

	ramp := []rune(lumaRamp)
	for y := clip.Y; y < clip.Bottom(); y++ {
		for x := clip.X; x < clip.Right(); x++ {
			if !visible(x, y) {
				continue
			}
			c := px.RGBAAt(x-area.X, y-area.Y)
			luma := (299*int(c.R) + 587*int(c.G) + 114*int(c.B)) / 1000
			r := ramp[luma*(len(ramp)-1)/255]
			if r == ' ' {
				continue
			}
			dst.SetCell(x, y, core.Cell{Rune: r, Color: core.NearestColor(c.R, c.G, c.B)})
		}
	}
}

// VideoMedia is a movie file. Frames are not decoded; the slide shows a
// titled placeholder with a playback bar.
type VideoMedia struct {
	Path   string
	Length time.Duration
}

// Kind returns KindVideo.
func (m *VideoMedia) Kind() Kind { return KindVideo }

func (m *VideoMedia) draw(dst *core.Screen, area core.Rect, elapsed time.Duration, visible func(x, y int) bool) {
	set := func(x, y int, r rune, c core.Color) {
		if area.Contains(x, y) && visible(x, y) {
			dst.SetCell(x, y, core.Cell{Rune: r, Color: c})
		}
	}
	text := func(x, y int, s string, c core.Color) {
		for _, r := range s {
			set(x, y, r, c)
			x++
		}
	}

	if area.W < 2 || area.H < 2 {
		return
	}

	// Border
	for x := area.X + 1; x < area.Right()-1; x++ {
		set(x, area.Y, '─', core.ColorCyan)
		set(x, area.Bottom()-1, '─', core.ColorCyan)
	}
	for y := area.Y + 1; y < area.Bottom()-1; y++ {
		set(area.X, y, '│', core.ColorCyan)
		set(area.Right()-1, y, '│', core.ColorCyan)
	}
	set(area.X, area.Y, '┌', core.ColorCyan)
	set(area.Right()-1, area.Y, '┐', core.ColorCyan)
	set(area.X, area.Bottom()-1, '└', core.ColorCyan)
	set(area.Right()-1, area.Bottom()-1, '┘', core.ColorCyan)

	inner := area.W - 4
	if inner <= 0 {
		return
	}

	name := []rune("▶ " + strings.TrimSuffix(filepath.Base(m.Path), filepath.Ext(m.Path)))
	if len(name) > inner {
		name = name[:inner]
	}
	mid := area.Y + area.H/2
	text(area.X+(area.W-len(name))/2, mid-1, string(name), core.ColorBrightWhite)

	pos := elapsed
	if pos > m.Length {
		pos = m.Length
	}
	clock := fmt.Sprintf("%s / %s", formatClock(pos), formatClock(m.Length))
	if area.H >= 5 {
		text(area.X+(area.W-len(clock))/2, mid+1, clock, core.ColorGray)
	}

	filled := inner
	if m.Length > 0 {
		filled = int(float64(inner) * float64(pos) / float64(m.Length))
	}
	for i := 0; i < inner; i++ {
		r, c := '░', core.ColorGray
		if i < filled {
			r, c = '█', core.ColorBrightCyan
		}
		set(area.X+2+i, mid, r, c)
	}
}

func formatClock(d time.Duration) string {
	s := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", s/60, s%60)
}
