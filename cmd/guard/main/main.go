package main

import (
	"fmt"
	"os"

	guard "github.com/arthur-debert/guard/cmd/guard"
	"github.com/arthur-debert/guard/pkg/errors"
	"github.com/arthur-debert/guard/pkg/ui"
)

func main() {
	rootCmd := guard.NewRootCmd()
	err := rootCmd.Execute()
	code := guard.ExitCode(err)
	if code > 1 {
		styles := ui.NewStyles(os.Stderr, ui.DetectFormat(os.Stderr))
		fmt.Fprintln(os.Stderr, styles.Error.Render(fmt.Sprintf("Error: %v", err)))
		if details := errors.GetErrorDetails(err); len(details) > 0 {
			for k, v := range details {
				fmt.Fprintf(os.Stderr, "  %s: %v\n", k, v)
			}
		}
	}
	os.Exit(code)
}
