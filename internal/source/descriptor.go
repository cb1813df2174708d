package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-slideshow/internal/slide"
)

// DescriptorFile is the YAML layout of a slide list.
type DescriptorFile struct {
	Slides []DescriptorEntry `yaml:"slides"`
}

// DescriptorEntry describes one slide. Durations are in seconds. An unset
// duration falls back to the loader default; zero is a valid duration.
type DescriptorEntry struct {
	Path               string             `yaml:"path"`
	Duration           *float64           `yaml:"duration,omitempty"`
	Transition         string             `yaml:"transition,omitempty"`
	TransitionDuration float64            `yaml:"transition_duration,omitempty"`
	Resize             slide.ResizeOption `yaml:"resize,omitempty"`
}

// Descriptor loads the slides listed in a YAML file. Relative paths are
// resolved against the file's directory.
type Descriptor struct {
	Path string
	Options
}

// ReadDescriptor parses a slide list file.
func ReadDescriptor(path string) (*DescriptorFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("source: read descriptor: %w", err)
	}

	var df DescriptorFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return nil, fmt.Errorf("source: parse descriptor %s: %w", path, err)
	}
	return &df, nil
}

// WriteDescriptor saves a slide list file.
func WriteDescriptor(path string, df *DescriptorFile) error {
	data, err := yaml.Marshal(df)
	if err != nil {
		return fmt.Errorf("source: encode descriptor: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("source: write descriptor: %w", err)
	}
	return nil
}

// Slides loads every listed slide and applies its overrides.
func (d *Descriptor) Slides(ctx context.Context) ([]*slide.Slide, error) {
	df, err := ReadDescriptor(d.Path)
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(d.Path)

	resolve := func(i int) string {
		p := df.Slides[i].Path
		if !filepath.IsAbs(p) {
			p = filepath.Join(dir, p)
		}
		return p
	}

	slides, err := d.collect(ctx, len(df.Slides), resolve,
		func(ctx context.Context, i int) (*slide.Slide, error) {
			s, err := d.loadFile(ctx, resolve(i))
			if err != nil {
				return nil, err
			}
			e := df.Slides[i]
			if e.Duration != nil {
				s.Duration = max(seconds(*e.Duration), 0)
			}
			if e.TransitionDuration > 0 {
				s.TransitionDuration = seconds(e.TransitionDuration)
			}
			s.Transition = e.Transition
			s.Resize = e.Resize
			return s, nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", d.Path, err)
	}
	return slides, nil
}

func seconds(v float64) time.Duration {
	return time.Duration(v * float64(time.Second))
}
