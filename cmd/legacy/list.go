package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/delta-legacy/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available catalogs",
	Long:  `Shows every stage catalog built into the binary.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	catalogs := registry.List()

	if len(catalogs) == 0 {
		fmt.Println("No catalogs available.")
		return
	}

	fmt.Println("Available catalogs:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, c := range catalogs {
		if len(c.ID) > maxIDLen {
			maxIDLen = len(c.ID)
		}
	}

	fmt.Printf("  %-*s  %-6s  %s\n", maxIDLen, "ID", "Stages", "Title")
	fmt.Printf("  %-*s  %-6s  %s\n", maxIDLen, "--", "------", "-----")

	for _, c := range catalogs {
		fmt.Printf("  %-*s  %-6d  %s\n", maxIDLen, c.ID, c.Stages, c.Title)
	}

	fmt.Println()
	fmt.Println("Run 'legacy play --catalog <id>' to play a catalog.")
}
