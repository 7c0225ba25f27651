// Command egg is the CLI front-end for the egg interpreter.
package main

import (
	"os"

	"github.com/cwbudde/egg/cmd/egg/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
