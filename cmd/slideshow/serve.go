package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-slideshow/internal/platform/tui"
	"github.com/vovakirdan/tui-slideshow/internal/source"
	"github.com/vovakirdan/tui-slideshow/internal/transition"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve [path]",
	Short: "Start the slideshow SSH server",
	Long: `Start an SSH server that plays a show to everyone who connects.

Slides are loaded once at startup. Each SSH connection gets its own
playback sized to its terminal, with its own pause and navigation.
Plays are recorded per-server under the SSH user name.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.slideshow/host_key

Examples:
  slideshow serve ./photos                  # Listen on :23234
  slideshow serve talk.pdf --ssh :2222      # Listen on port 2222
  slideshow serve ./photos --loop NONE      # Stop after the last slide

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.MaximumNArgs(1),
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	addShowFlags(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) {
	settings := loadSettings(args)
	applyShowFlags(cmd, &settings)
	logger := newLogger("slideshow-ssh")

	// Validate with a placeholder canvas; sessions fill their own terminal
	// unless the settings fix one.
	fixedW, fixedH := settings.Width, settings.Height
	settings.FillCanvas(1, 1)
	template, err := settings.ShowOptions()
	if err != nil {
		fatal("%v", err)
	}
	template.Canvas.W, template.Canvas.H = fixedW, fixedH

	path := settings.ContentPath()
	loader, err := source.Open(path, settings.SourceOptions(logger))
	if err != nil {
		fatal("%v", err)
	}

	slides, err := loader.Slides(context.Background())
	if err != nil {
		fatal("%v", err)
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		TickRate:    flagFPS,
	}

	server, err := tui.NewSSHServer(cfg, source.NewStatic(slides), template, transition.Builtin(), showKey(path), logger)
	if err != nil {
		fatal("creating server: %v", err)
	}

	fmt.Printf("Serving %s (%d slides) on %s\n", path, len(slides), cfg.Address)
	fmt.Println("Connect with: ssh localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fatal("server: %v", err)
	}
}
