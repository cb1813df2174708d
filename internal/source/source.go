// Package source turns files on disk into slides: a folder of images and
// movies, the pages of a PDF, a YAML slide list or a single file.
package source

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-slideshow/internal/core"
	"github.com/vovakirdan/tui-slideshow/internal/slide"
)

// ErrEmptySource is returned when a source yields no usable slides.
var ErrEmptySource = errors.New("source: no usable slides")

var errUnsupported = errors.New("source: unsupported file")

// movieExtensions lists the file extensions treated as video when a file
// does not decode as an image.
var movieExtensions = []string{
	"mov", "qt", "mp4", "m4p", "m4v", "mpg", "mp2", "mpeg", "mpe", "mpv", "m2v",
	"3gp", "avi", "wmv", "asf", "webm", "mkv", "flv", "vob", "ogv", "ogg", "drc", "mxf",
}

// Loader produces the slides of a show.
type Loader interface {
	Slides(ctx context.Context) ([]*slide.Slide, error)
}

// Options holds the defaults applied to every loaded slide.
type Options struct {
	Duration           time.Duration
	TransitionDuration time.Duration

	DPI     float64 // PDF rasterisation resolution
	Workers int     // parallel decoders; <= 0 uses 4

	Prober Prober // nil disables video slides
	Logger *log.Logger
}

func (o Options) logger() *log.Logger {
	if o.Logger == nil {
		return log.New(io.Discard)
	}
	return o.Logger
}

func (o Options) workers() int {
	if o.Workers <= 0 {
		return 4
	}
	return o.Workers
}

// Open picks a loader for path: a directory becomes a Folder, a .pdf a PDF,
// a .yaml or .yml file a Descriptor and anything else a single File.
func Open(path string, opts Options) (Loader, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	if fi.IsDir() {
		return &Folder{Dir: path, Options: opts}, nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return &PDF{Path: path, Options: opts}, nil
	case ".yaml", ".yml":
		return &Descriptor{Path: path, Options: opts}, nil
	default:
		return &File{Path: path, Options: opts}, nil
	}
}

// IsMovie reports whether path has a known movie extension.
func IsMovie(path string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	return slices.Contains(movieExtensions, ext)
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	return img, err
}

// loadFile builds a slide from an image, falling back to a video slide for
// known movie extensions.
func (o Options) loadFile(ctx context.Context, path string) (*slide.Slide, error) {
	img, decodeErr := decodeImage(path)
	if decodeErr == nil {
		return o.newSlide(path, slide.NewImageMedia(img), core.Size{W: img.Bounds().Dx(), H: img.Bounds().Dy()}), nil
	}

	if !IsMovie(path) {
		return nil, fmt.Errorf("%w: %s: %v", errUnsupported, filepath.Base(path), decodeErr)
	}
	if o.Prober == nil {
		return nil, fmt.Errorf("%w: no video prober for %s", errUnsupported, filepath.Base(path))
	}

	info, err := o.Prober.Probe(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("source: probe %s: %w", filepath.Base(path), err)
	}
	media := &slide.VideoMedia{Path: path, Length: info.Duration}
	return o.newSlide(path, media, core.Size{W: info.Width, H: info.Height}), nil
}

func (o Options) newSlide(name string, media slide.Media, size core.Size) *slide.Slide {
	s := slide.New(name, media, size, o.Duration)
	s.TransitionDuration = o.TransitionDuration
	return s
}

// collect runs load for n items on a bounded worker pool and returns the
// slides in item order. Items whose load fails are logged and skipped.
func (o Options) collect(ctx context.Context, n int, name func(i int) string, load func(ctx context.Context, i int) (*slide.Slide, error)) ([]*slide.Slide, error) {
	logger := o.logger()
	results := make([]*slide.Slide, n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers())
	for i := 0; i < n; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			s, err := load(gctx, i)
			if err != nil {
				if errors.Is(err, errUnsupported) {
					logger.Debug("skipping file", "item", name(i), "error", err)
				} else {
					logger.Warn("skipping slide", "item", name(i), "error", err)
				}
				return nil
			}
			results[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slides := slices.DeleteFunc(results, func(s *slide.Slide) bool { return s == nil })
	if len(slides) == 0 {
		return nil, ErrEmptySource
	}
	return slides, nil
}
