package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// noter returns a printf-like function writing highlighted notes to w.
func noter(w io.Writer) func(format string, args ...any) {
	faint := color.New(color.Faint)
	return func(format string, args ...any) {
		fmt.Fprintln(w, faint.Sprintf(format, args...))
	}
}
