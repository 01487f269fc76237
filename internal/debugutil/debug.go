// Package debugutil provides an env-var-gated debug print, ported from the
// teacher's sqlparser/internal/utils debug helper.
package debugutil

import (
	"fmt"
	"os"
)

var _, enableDebug = os.LookupEnv("DIALECTCSV_DEBUG")

// DPrint writes a debug line to stderr when DIALECTCSV_DEBUG is set in the
// environment; otherwise it is a no-op.
func DPrint(format string, a ...any) {
	if !enableDebug {
		return
	}
	fmt.Fprintf(os.Stderr, "\033[0;31mDEBUG:\033[0m ")
	fmt.Fprintf(os.Stderr, format, a...)
}
