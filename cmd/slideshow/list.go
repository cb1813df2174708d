package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-slideshow/internal/slide"
	"github.com/vovakirdan/tui-slideshow/internal/source"
)

var flagSave string

var listCmd = &cobra.Command{
	Use:   "list [path]",
	Short: "List the slides of a show",
	Long: `Load a show and print its slides without playing it.

With --save the slides are written as a YAML slide list that can be edited
and played with 'slideshow play <file>.yaml'.

Examples:
  slideshow list ./photos
  slideshow list ./photos --save show.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runList,
}

func init() {
	listCmd.Flags().StringVar(&flagSave, "save", "", "Write the slides to a YAML slide list")
}

func runList(cmd *cobra.Command, args []string) {
	settings := loadSettings(args)
	logger := newLogger("slideshow")

	path := settings.ContentPath()
	loader, err := source.Open(path, settings.SourceOptions(logger))
	if err != nil {
		fatal("%v", err)
	}

	slides, err := loader.Slides(context.Background())
	if err != nil {
		fatal("%v", err)
	}

	fmt.Printf("Slides in %s:\n", path)
	fmt.Println()

	// Print header
	fmt.Printf("  %-3s  %-5s  %-9s  %-8s  %s\n", "#", "Kind", "Size", "Duration", "Name")
	fmt.Printf("  %-3s  %-5s  %-9s  %-8s  %s\n", "-", "----", "----", "--------", "----")

	// Print slides
	for i, s := range slides {
		size := fmt.Sprintf("%dx%d", s.SourceSize.W, s.SourceSize.H)
		fmt.Printf("  %-3d  %-5s  %-9s  %-8s  %s\n", i+1, s.Media.Kind(), size, s.Duration, s.Name)
	}

	if flagSave == "" {
		fmt.Println()
		fmt.Println("Run 'slideshow play " + path + "' to play them.")
		return
	}

	df := descriptorFor(slides)
	if len(df.Slides) != len(slides) {
		logger.Warn("slides without a file of their own were not saved", "skipped", len(slides)-len(df.Slides))
	}
	if err := source.WriteDescriptor(flagSave, df); err != nil {
		fatal("%v", err)
	}
	fmt.Println()
	fmt.Printf("Saved %d slides to %s\n", len(df.Slides), flagSave)
}

// descriptorFor builds a slide list with absolute paths from loaded slides.
// Slides that are not files on disk, such as PDF pages, are left out.
func descriptorFor(slides []*slide.Slide) *source.DescriptorFile {
	df := &source.DescriptorFile{}
	for _, s := range slides {
		if fi, err := os.Stat(s.Name); err != nil || fi.IsDir() {
			continue
		}
		d := s.Duration.Seconds()
		df.Slides = append(df.Slides, source.DescriptorEntry{
			Path:               showKey(s.Name),
			Duration:           &d,
			Transition:         s.Transition,
			TransitionDuration: s.TransitionDuration.Seconds(),
			Resize:             s.Resize,
		})
	}
	return df
}
