// Package config provides YAML-based slideshow settings loading and
// validation.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-slideshow/internal/core"
	"github.com/vovakirdan/tui-slideshow/internal/show"
	"github.com/vovakirdan/tui-slideshow/internal/slide"
	"github.com/vovakirdan/tui-slideshow/internal/source"
)

// ErrInvalidConfiguration is returned for settings that cannot describe a show.
var ErrInvalidConfiguration = errors.New("config: invalid configuration")

// Settings contains all configuration for a slideshow.
type Settings struct {
	Width         int                `yaml:"width"`
	Height        int                `yaml:"height"`
	SlideDuration float64            `yaml:"slide_duration"`
	Transition    TransitionSettings `yaml:"transition"`
	Loop          LoopSettings       `yaml:"loop"`
	ResizeOption  string             `yaml:"resize_option"`
	FolderPath    string             `yaml:"folder_path"`
	ShowFile      string             `yaml:"slideshow_file"`
	Source        SourceSettings     `yaml:"source"`
}

// TransitionSettings names the default transition.
type TransitionSettings struct {
	Name     string  `yaml:"name"`
	Duration float64 `yaml:"duration"`
}

// LoopSettings defines the loop policy.
type LoopSettings struct {
	Type  string `yaml:"type"`
	Count int    `yaml:"count"`
}

// SourceSettings tunes slide ingestion.
type SourceSettings struct {
	DPI     float64 `yaml:"dpi"`
	Workers int     `yaml:"workers"`
	FFprobe string  `yaml:"ffprobe"`
}

// ContentPath returns the configured content: the slide list file when set,
// otherwise the folder.
func (s Settings) ContentPath() string {
	if s.ShowFile != "" {
		return s.ShowFile
	}
	return s.FolderPath
}

// FillCanvas sets unset canvas dimensions from a terminal size.
func (s *Settings) FillCanvas(termW, termH int) {
	if s.Width == 0 {
		s.Width = termW
	}
	if s.Height == 0 {
		s.Height = termH
	}
}

// Validate checks the settings for values a show cannot run with.
func (s Settings) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: canvas %dx%d", ErrInvalidConfiguration, s.Width, s.Height)
	}
	if s.SlideDuration < 0 {
		return fmt.Errorf("%w: slide duration %v", ErrInvalidConfiguration, s.SlideDuration)
	}
	if s.Transition.Duration < 0 {
		return fmt.Errorf("%w: transition duration %v", ErrInvalidConfiguration, s.Transition.Duration)
	}
	if s.Loop.Count < 0 {
		return fmt.Errorf("%w: loop count %d", ErrInvalidConfiguration, s.Loop.Count)
	}
	if _, err := show.ParseLoopType(s.Loop.Type); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	if _, err := slide.ParseResizeOption(s.ResizeOption); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	return nil
}

// ShowOptions converts validated settings into show options.
func (s Settings) ShowOptions() (show.Options, error) {
	if err := s.Validate(); err != nil {
		return show.Options{}, err
	}
	loop, _ := show.ParseLoopType(s.Loop.Type)
	resize, _ := slide.ParseResizeOption(s.ResizeOption)

	return show.Options{
		Canvas:             core.Size{W: s.Width, H: s.Height},
		Loop:               loop,
		NumLoops:           s.Loop.Count,
		Resize:             resize,
		TransitionName:     s.Transition.Name,
		TransitionDuration: seconds(s.Transition.Duration),
	}, nil
}

// SourceOptions returns the ingestion options for these settings.
func (s Settings) SourceOptions(logger *log.Logger) source.Options {
	var prober source.Prober
	if s.Source.FFprobe != "" {
		prober = source.FFprobe{Binary: s.Source.FFprobe}
	}
	return source.Options{
		Duration:           seconds(s.SlideDuration),
		TransitionDuration: seconds(s.Transition.Duration),
		DPI:                s.Source.DPI,
		Workers:            s.Source.Workers,
		Prober:             prober,
		Logger:             logger,
	}
}

func seconds(v float64) time.Duration {
	return time.Duration(v * float64(time.Second))
}
