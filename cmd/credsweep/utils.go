package credsweep

import (
	"os"

	"golang.org/x/term"
)

// pickString returns the flag value when set, otherwise the resolved one.
func pickString(cli, resolved string) string {
	if cli != "" {
		return cli
	}
	return resolved
}

func pickBool(cli, resolved bool) bool {
	if cli {
		return true
	}
	return resolved
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
