// Package cliutil provides output helpers for the restdoc command.
package cliutil

import (
	"fmt"
	"io"
	"os"
)

// Writef writes formatted output to w. A failed write is reported on
// stderr rather than returned, since CLI output has no caller to handle it.
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// Fail writes "Error: <err>" to w and returns the process exit code for a
// failed command.
func Fail(w io.Writer, err error) int {
	Writef(w, "Error: %v\n", err)
	return 1
}
