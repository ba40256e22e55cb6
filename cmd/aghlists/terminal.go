package main

import (
	"os"

	"golang.org/x/term"
)

// terminalWidth returns the current terminal width, with a fallback for
// non-terminal output.
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 120
	}
	return width
}
