package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/egg/internal/diag"
	"github.com/cwbudde/egg/internal/egg"
	"github.com/spf13/cobra"
)

var evalExpr string

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run an egg script",
	Long: `Execute an egg program from a file or inline expression.

Examples:
  # Run a script file
  egg run script.egg

  # Evaluate inline code instead of reading from a file
  egg run -e "print(\"Hello, World!\");"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
}

func runScript(_ *cobra.Command, args []string) error {
	input, source, err := readSource(evalExpr, args)
	if err != nil {
		return err
	}

	prog, err := egg.Compile(source, input)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return fmt.Errorf("compilation failed")
	}

	logger := diag.NewWriterLogger(os.Stdout)
	if err := prog.Run(logger); err != nil {
		return fmt.Errorf("execution failed")
	}
	return nil
}

// readSource determines the (input, source) pair from either an inline
// -e expression or a single file argument, mirroring the teacher's
// cmd/dwscript/cmd's "either -e or a file path" convention.
func readSource(eval string, args []string) (input, source string, err error) {
	if eval != "" {
		return eval, "<eval>", nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(content), args[0], nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e flag for inline code")
}
