package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/delta-legacy/internal/catalog"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a catalog file",
	Long: `Parse a YAML or TOML catalog and check the stage contract:
stage ids follow their position, every solution is non-empty with
distinct entries drawn from the stage items, and every reward has a title.

Examples:
  legacy validate ./my-stages.yaml
  legacy validate ./my-stages.toml`,
	Args: cobra.ExactArgs(1),
	Run:  runValidate,
}

func runValidate(_ *cobra.Command, args []string) {
	c, err := catalog.LoadFile(args[0])
	if err != nil {
		var verr catalog.ValidationError
		if errors.As(err, &verr) {
			fmt.Fprintf(os.Stderr, "Invalid catalog: %s\n", verr.Message)
			fmt.Fprintf(os.Stderr, "Code: %s\n", verr.Code)
			os.Exit(1)
		}
		fail("%v", err)
	}

	fmt.Printf("OK: %s (%s), %d stages\n", c.Title, c.ID, c.StageCount())
	for _, s := range c.Stages {
		fmt.Printf("  %d. %-40s %d items, sequence of %d\n", s.ID+1, s.Title, len(s.Items), len(s.Solution))
	}
}
