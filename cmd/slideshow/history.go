package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-slideshow/internal/platform/tui"
	"github.com/vovakirdan/tui-slideshow/internal/storage"
)

var (
	flagInteractive bool
	flagLimit       int
	flagClear       bool
)

var historyCmd = &cobra.Command{
	Use:   "history [path]",
	Short: "Show play history",
	Long: `Display recent plays, or the plays of one show when a path is given.

Examples:
  slideshow history
  slideshow history ./photos
  slideshow history --interactive
  slideshow history ./photos --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse history in a table")
	historyCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of plays to print")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the plays of the given show")
}

func runHistory(cmd *cobra.Command, args []string) {
	// Open history storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatal("opening history database: %v", err)
	}
	defer store.Close()

	if flagInteractive {
		width, height := terminalSize()
		if err := tui.RunHistory(store, width, height); err != nil {
			fatal("%v", err)
		}
		return
	}

	var (
		plays []storage.Play
		title = "Recent plays"
	)
	if len(args) > 0 {
		key := showKey(args[0])
		if flagClear {
			if err := store.ClearPlays(key); err != nil {
				fatal("%v", err)
			}
			fmt.Printf("Cleared history of %s\n", key)
			return
		}
		title = "Plays - " + key
		plays, err = store.PlaysForShow(key, flagLimit)
	} else {
		if flagClear {
			fatal("--clear needs a show path")
		}
		plays, err = store.RecentPlays(flagLimit)
	}
	if err != nil {
		fatal("retrieving plays: %v", err)
	}

	fmt.Println(title)
	fmt.Println()

	if len(plays) == 0 {
		fmt.Println("No plays recorded yet.")
		fmt.Println()
		fmt.Println("Run 'slideshow play <path>' to start one!")
		return
	}

	// Print header
	fmt.Printf("  %-16s  %-10s  %-6s  %-14s  %-4s  %-7s  %s\n", "Date", "Session", "Slides", "Loop", "Done", "Time", "Show")
	fmt.Printf("  %-16s  %-10s  %-6s  %-14s  %-4s  %-7s  %s\n", "----", "-------", "------", "----", "----", "----", "----")

	for _, p := range plays {
		done := "no"
		if p.Completed {
			done = "yes"
		}
		fmt.Printf("  %-16s  %-10s  %-6d  %-14s  %-4s  %-7s  %s\n",
			p.CreatedAt.Format("2006-01-02 15:04"),
			p.Session,
			p.Slides,
			fmt.Sprintf("%s x%d", p.LoopType, p.Loops),
			done,
			tui.FormatElapsed(p.Elapsed),
			p.ShowPath,
		)
	}

	// Show totals
	if len(args) > 0 {
		if stats, err := store.GetShowStats(showKey(args[0])); err == nil && stats != nil {
			fmt.Println()
			fmt.Printf("Plays: %d, completed: %d, watched: %s\n", stats.Plays, stats.Completed, tui.FormatElapsed(stats.TotalTime))
		}
	}
}
