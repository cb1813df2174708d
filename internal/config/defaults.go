package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-slideshow/internal/transition"
)

//go:embed defaults/slideshow.yaml
var defaultSettingsYAML []byte

// DefaultSettings returns the built-in slideshow settings.
func DefaultSettings() Settings {
	return Settings{
		SlideDuration: 5,
		Transition: TransitionSettings{
			Name:     transition.DefaultName,
			Duration: transition.DefaultDuration.Seconds(),
		},
		Loop: LoopSettings{
			Type:  "NORMAL",
			Count: 0,
		},
		ResizeOption: "FitProportionally",
		Source: SourceSettings{
			DPI:     72,
			Workers: 4,
			FFprobe: "ffprobe",
		},
	}
}
