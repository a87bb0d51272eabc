// Package detector picks the log format from the environment rockbuild runs in.
package detector

import (
	"os"

	"golang.org/x/term"
)

// LogFormat is the rendering of log records on stderr.
type LogFormat int

const (
	// FormatAuto defers to DetectLogFormat.
	FormatAuto LogFormat = iota
	// FormatPretty renders colored, human readable records.
	FormatPretty
	// FormatJSON renders one JSON object per record.
	FormatJSON
)

// DetectLogFormat returns the recommended log format. Logs read by a machine, which is the
// case when stderr is not a terminal or a CI variable is set, are written as JSON.
func DetectLogFormat() LogFormat {
	isTTY := term.IsTerminal(int(os.Stderr.Fd()))

	ci := os.Getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !isTTY || isCI {
		return FormatJSON
	}
	return FormatPretty
}

// ResolveLogFormat applies the user's --log-format value to the detected format.
// userFlag should be one of "auto", "pretty", "text", "json", or empty.
func ResolveLogFormat(autoDetected LogFormat, userFlag string) LogFormat {
	switch userFlag {
	case "pretty", "text":
		return FormatPretty
	case "json":
		return FormatJSON
	default:
		return autoDetected
	}
}
