package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/egg/internal/harness"
	"github.com/spf13/cobra"
)

var testCmd = &cobra.Command{
	Use:   "test [dir]",
	Short: "Run .egg fixture scripts against their embedded ///>/ ///< directives",
	Long: `Run every *.egg script under dir (default ".") through the
///>/ ///< directive harness (spec.md §6): each script embeds the
output it expects as line comments, and passes when every directive
matches the logged entry it names, in order.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTest,
}

func init() {
	rootCmd.AddCommand(testCmd)
}

func runTest(_ *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	results, err := harness.RunDir(dir)
	if err != nil {
		return fmt.Errorf("failed to walk %s: %w", dir, err)
	}
	if len(results) == 0 {
		fmt.Printf("no *.egg scripts found under %s\n", dir)
		return nil
	}

	failed := 0
	for _, r := range results {
		if r.Passed() {
			if verbose {
				fmt.Printf("PASS %s\n", r.Source)
			}
			continue
		}
		failed++
		fmt.Printf("FAIL %s\n", r.Source)
		if r.CompileErr != nil {
			fmt.Printf("  compile error: %v\n", r.CompileErr)
		}
		if r.RunErr != nil {
			fmt.Printf("  runtime error: %v\n", r.RunErr)
		}
		for _, m := range r.Mismatches {
			fmt.Printf("  %s\n", m.String())
		}
	}

	fmt.Printf("%d passed, %d failed, %d total\n", len(results)-failed, failed, len(results))
	if failed > 0 {
		os.Exit(1)
	}
	return nil
}
