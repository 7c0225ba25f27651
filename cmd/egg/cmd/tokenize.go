package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/egg/internal/lexer"
	"github.com/cwbudde/egg/internal/token"
	"github.com/spf13/cobra"
)

var (
	tokenizeEval       string
	tokenizeShowPos    bool
	tokenizeOnlyErrors bool
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [file]",
	Short: "Tokenize an egg file or expression",
	Long: `Tokenize an egg program and print the resulting tokens.

This command is useful for debugging the tokenizer and understanding
how egg source code is split into lexical units.`,
	Args: cobra.MaximumNArgs(1),
	RunE: tokenizeScript,
}

func init() {
	rootCmd.AddCommand(tokenizeCmd)

	tokenizeCmd.Flags().StringVarP(&tokenizeEval, "eval", "e", "", "tokenize inline code instead of reading from file")
	tokenizeCmd.Flags().BoolVar(&tokenizeShowPos, "show-pos", false, "show token positions (line:column)")
	tokenizeCmd.Flags().BoolVar(&tokenizeOnlyErrors, "only-errors", false, "show only illegal tokens")
}

func tokenizeScript(_ *cobra.Command, args []string) error {
	input, source, err := readSource(tokenizeEval, args)
	if err != nil {
		return err
	}

	tz := lexer.FromString(source, input)
	count, errCount := 0, 0
	for {
		tok, err := tz.NextToken()
		if err != nil {
			errCount++
			if !tokenizeOnlyErrors {
				fmt.Printf("[%-10s] ⚠ %s\n", "illegal", err.Error())
			}
			continue
		}
		if tokenizeOnlyErrors {
			if tok.Type == token.EOF {
				break
			}
			continue
		}
		count++
		printToken(tok)
		if tok.Type == token.EOF {
			break
		}
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Total tokens: %d\n", count)
		if errCount > 0 {
			fmt.Fprintf(os.Stderr, "Errors: %d\n", errCount)
		}
	}
	if errCount > 0 {
		return fmt.Errorf("found %d illegal token(s)", errCount)
	}
	return nil
}

func printToken(tok token.Token) {
	out := fmt.Sprintf("[%-10s]", tok.Type)
	if tok.Value != "" || tok.Type == token.String {
		out += fmt.Sprintf(" %q", tok.Value)
	} else {
		out += fmt.Sprintf(" %s", tok.Raw)
	}
	if tokenizeShowPos {
		out += fmt.Sprintf(" @%d:%d", tok.Line, tok.Column)
	}
	fmt.Println(out)
}
