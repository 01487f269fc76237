package dialectcsv

import "runtime"

// systemLineSeparator mirrors the host platform's native newline, used only
// by the ORACLE predefined dialect (spec §6.3: "system EOL"), matching
// SQL*Loader's behavior of writing whatever the generating host's default
// line ending is.
var systemLineSeparator = func() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}()
