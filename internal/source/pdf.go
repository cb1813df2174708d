package source

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/gen2brain/go-fitz"

	"github.com/vovakirdan/tui-slideshow/internal/core"
	"github.com/vovakirdan/tui-slideshow/internal/slide"
)

// DefaultDPI is used when Options.DPI is unset.
const DefaultDPI = 72

// PDF loads each page of a document as an image slide.
type PDF struct {
	Path string
	Options
}

// Slides rasterises the document pages.
func (p *PDF) Slides(ctx context.Context) ([]*slide.Slide, error) {
	doc, err := fitz.New(p.Path)
	if err != nil {
		return nil, fmt.Errorf("source: open pdf: %w", err)
	}
	pages := doc.NumPage()
	doc.Close()

	dpi := p.DPI
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	base := filepath.Base(p.Path)

	slides, err := p.collect(ctx, pages,
		func(i int) string { return fmt.Sprintf("%s page %d", base, i+1) },
		func(_ context.Context, i int) (*slide.Slide, error) {
			// Each worker opens its own document; fitz documents are not safe
			// for concurrent use.
			d, err := fitz.New(p.Path)
			if err != nil {
				return nil, err
			}
			defer d.Close()

			img, err := d.ImageDPI(i, dpi)
			if err != nil {
				return nil, fmt.Errorf("render page %d: %w", i+1, err)
			}
			name := fmt.Sprintf("%s#%d", p.Path, i+1)
			return p.newSlide(name, slide.NewImageMedia(img), core.Size{W: img.Bounds().Dx(), H: img.Bounds().Dy()}), nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.Path, err)
	}
	return slides, nil
}
