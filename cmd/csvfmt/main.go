// Command csvfmt reads and writes CSV-family streams under a configurable
// dialect. It is the thin external collaborator the core engine assumes:
// CSV data only ever comes from os.Stdin and goes to os.Stdout, never from
// or to other files, paths, or URLs; the one file it reads is the optional
// --dialect-file YAML dialect definition.
package main

import (
	"os"

	"github.com/csvtools/dialectcsv/cmd/csvfmt/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
