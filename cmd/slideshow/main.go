// slideshow plays folders of images and movies, PDFs and slide lists in the
// terminal.
//
// Usage:
//
//	slideshow play [path]       - Play a show
//	slideshow list [path]       - List the slides of a show
//	slideshow transitions       - List available transitions
//	slideshow history           - Show play history
//	slideshow serve [path]      - Serve a show over SSH
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 30)
//	--db <path>           - Set database path (default: ~/.slideshow/history.db)
//	--config <path>       - Use a custom settings file
//	--log-level <level>   - debug, info, warn or error (default: warn)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-slideshow/internal/config"
	"github.com/vovakirdan/tui-slideshow/internal/core"
)

var (
	// Global flags
	flagFPS      int
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "slideshow",
	Short: "TUI Slideshow - Play slideshows in your terminal",
	Long: `TUI Slideshow plays a folder of images and movies, the pages of a PDF
or a YAML slide list directly in your terminal, with transitions between
slides and looping.

Available commands:
  play         - Play a show
  list         - List the slides of a show without playing it
  transitions  - List available transitions
  history      - Show play history
  serve        - Start SSH server so others can watch

Examples:
  slideshow play ./photos
  slideshow play talk.pdf --loop PING-PONG
  slideshow list ./photos --save show.yaml
  slideshow serve ./photos --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.slideshow/history.db", "Path to history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom settings YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(transitionsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
}

// fatal prints an error and exits.
func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// newLogger builds the stderr logger shared by every command.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		fatal("%v", err)
	}
	logger.SetLevel(level)
	return logger
}

// terminalSize returns the size of stdout, or 80x24 when it is not a terminal.
func terminalSize() (int, int) {
	def := core.DefaultConfig()
	width, height := def.ScreenW, def.ScreenH
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}

// loadSettings loads settings and applies the content path argument.
func loadSettings(args []string) config.Settings {
	settings, err := config.Load(flagConfig)
	if err != nil {
		fatal("%v", err)
	}
	if len(args) > 0 {
		settings.FolderPath = args[0]
		settings.ShowFile = ""
	}
	if settings.ContentPath() == "" {
		fatal("no slides given; pass a path or set folder_path in %s", config.FileName)
	}
	return settings
}
