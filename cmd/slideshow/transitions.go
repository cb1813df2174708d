package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-slideshow/internal/transition"
)

var transitionsCmd = &cobra.Command{
	Use:   "transitions",
	Short: "List available transitions",
	Long:  `Shows the transitions slides can build in and out with.`,
	Run:   runTransitions,
}

func runTransitions(cmd *cobra.Command, args []string) {
	list := transition.Builtin().List()

	fmt.Println("Available transitions:")
	fmt.Println()

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, t := range list {
		if len(t.Name) > maxNameLen {
			maxNameLen = len(t.Name)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %s\n", maxNameLen, "Name", "Description")
	fmt.Printf("  %-*s  %s\n", maxNameLen, "----", "-----------")

	for _, t := range list {
		fmt.Printf("  %-*s  %s\n", maxNameLen, t.Name, t.Description)
	}

	fmt.Println()
	fmt.Printf("Default: %s. Use 'slideshow play <path> --transition <name>'.\n", transition.DefaultName)
}
