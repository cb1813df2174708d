package main

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-slideshow/internal/config"
	"github.com/vovakirdan/tui-slideshow/internal/core"
	"github.com/vovakirdan/tui-slideshow/internal/platform/tui"
	"github.com/vovakirdan/tui-slideshow/internal/show"
	"github.com/vovakirdan/tui-slideshow/internal/source"
	"github.com/vovakirdan/tui-slideshow/internal/storage"
	"github.com/vovakirdan/tui-slideshow/internal/transition"
)

var (
	flagResume     bool
	flagExit       bool
	flagLoop       string
	flagLoops      int
	flagDuration   float64
	flagTransition string
	flagResize     string
)

var playCmd = &cobra.Command{
	Use:   "play [path]",
	Short: "Play a show",
	Long: `Play a folder of images and movies, a PDF or a YAML slide list.
Without a path the configured slideshow_file or folder_path is played.

Controls:
  Space/P      - Pause/resume
  Right/L      - Next slide
  Left/H       - Previous slide
  1-9          - Jump to slide
  R            - Restart
  ?            - Toggle help
  Q/Ctrl+C     - Quit

Loop types:
  NONE       - Stop after the last slide
  NORMAL     - Wrap to the first slide
  PING-PONG  - Reverse direction at either end

Examples:
  slideshow play ./photos
  slideshow play talk.pdf --duration 10 --transition Wipe
  slideshow play show.yaml --loop PING-PONG --loops 2
  slideshow play ./photos --resume`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagResume, "resume", false, "Start from the slide shown when this show was last quit")
	playCmd.Flags().BoolVar(&flagExit, "exit", false, "Exit when the show completes")
	addShowFlags(playCmd)
}

// addShowFlags registers the flags that override show settings.
func addShowFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagLoop, "loop", "", "Loop type: NONE, NORMAL, PING-PONG")
	cmd.Flags().IntVar(&flagLoops, "loops", 0, "Number of loops (0 = forever)")
	cmd.Flags().Float64Var(&flagDuration, "duration", 0, "Seconds each slide is shown")
	cmd.Flags().StringVar(&flagTransition, "transition", "", "Transition name (see 'slideshow transitions')")
	cmd.Flags().StringVar(&flagResize, "resize", "", "Resize option: NoResize, Native, Fit, FitProportionally, FillProportionally")
}

// applyShowFlags overrides settings with the flags the user set.
func applyShowFlags(cmd *cobra.Command, settings *config.Settings) {
	flags := cmd.Flags()
	if flags.Changed("loop") {
		settings.Loop.Type = flagLoop
	}
	if flags.Changed("loops") {
		settings.Loop.Count = flagLoops
	}
	if flags.Changed("duration") {
		settings.SlideDuration = flagDuration
	}
	if flags.Changed("transition") {
		settings.Transition.Name = flagTransition
	}
	if flags.Changed("resize") {
		settings.ResizeOption = flagResize
	}
}

// showKey is the path plays and bookmarks are recorded under.
func showKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

func runPlay(cmd *cobra.Command, args []string) {
	settings := loadSettings(args)
	applyShowFlags(cmd, &settings)
	logger := newLogger("slideshow")

	width, height := terminalSize()
	settings.FillCanvas(width, height-1) // Status bar row

	opts, err := settings.ShowOptions()
	if err != nil {
		fatal("%v", err)
	}

	path := settings.ContentPath()
	loader, err := source.Open(path, settings.SourceOptions(logger))
	if err != nil {
		fatal("%v", err)
	}

	logger.Info("loading slides", "path", path)
	sh, err := show.New(context.Background(), opts, loader, transition.Builtin(), logger)
	if err != nil {
		fatal("%v", err)
	}

	// Open history storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open history database", "error", err)
		// Continue without storage - the show still plays
		store = nil
	}

	key := showKey(path)
	if flagResume && store != nil {
		idx, ok, bmErr := store.Bookmark(key)
		switch {
		case bmErr != nil:
			logger.Warn("could not read bookmark", "error", bmErr)
		case ok && !sh.Seek(idx):
			logger.Warn("bookmark out of range", "index", idx, "slides", sh.Len())
		}
	}

	cfg := core.DefaultConfig()
	cfg.ScreenW, cfg.ScreenH = width, height
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}

	runErr := tui.Run(sh, store, cfg, tui.PlayerOptions{
		ShowPath:       key,
		Session:        "local",
		ExitOnComplete: flagExit,
		Logger:         logger,
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fatal("running show: %v", runErr)
	}
}
