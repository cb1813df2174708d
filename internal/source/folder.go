package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vovakirdan/tui-slideshow/internal/slide"
)

// Folder loads every file of a directory in name order. Hidden files and
// subdirectories are ignored.
type Folder struct {
	Dir string
	Options
}

// Slides decodes the folder contents.
func (f *Folder) Slides(ctx context.Context) ([]*slide.Slide, error) {
	entries, err := os.ReadDir(f.Dir)
	if err != nil {
		return nil, fmt.Errorf("source: read folder: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		paths = append(paths, filepath.Join(f.Dir, e.Name()))
	}

	slides, err := f.collect(ctx, len(paths),
		func(i int) string { return paths[i] },
		func(ctx context.Context, i int) (*slide.Slide, error) { return f.loadFile(ctx, paths[i]) },
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Dir, err)
	}
	return slides, nil
}

// File loads a single image or movie.
type File struct {
	Path string
	Options
}

// Slides returns the one slide for the file.
func (f *File) Slides(ctx context.Context) ([]*slide.Slide, error) {
	s, err := f.loadFile(ctx, f.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmptySource, err)
	}
	return []*slide.Slide{s}, nil
}

// Static serves a fixed slide list. Each call returns fresh clones so
// several shows can play the same slides at once.
type Static struct {
	slides []*slide.Slide
}

// NewStatic wraps already loaded slides.
func NewStatic(slides []*slide.Slide) *Static {
	return &Static{slides: slides}
}

// Slides returns clones of the wrapped slides.
func (s *Static) Slides(context.Context) ([]*slide.Slide, error) {
	if len(s.slides) == 0 {
		return nil, ErrEmptySource
	}
	out := make([]*slide.Slide, len(s.slides))
	for i, sl := range s.slides {
		out[i] = sl.Clone()
	}
	return out, nil
}

// Len returns the number of wrapped slides.
func (s *Static) Len() int { return len(s.slides) }
