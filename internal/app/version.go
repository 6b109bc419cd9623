package app

import (
	"fmt"
	"io"
	"runtime"
)

// Version is the application version, overridable at link time with
// -ldflags "-X github.com/agbru/sqrace/internal/app.Version=...".
var Version = "dev"

// HasVersionFlag reports whether the argument list requests version output.
// Checked before flag parsing so -V works even with otherwise invalid flags.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		if arg == "-V" || arg == "--version" || arg == "-version" {
			return true
		}
		if arg == "--" {
			return false
		}
	}
	return false
}

// PrintVersion writes the version banner.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "sqrace %s (%s)\n", Version, runtime.Version())
}
