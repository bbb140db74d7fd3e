package detector

import (
	"os"

	"golang.org/x/term"
)

// OutputMode selects which sink variant renders job output.
type OutputMode int

const (
	// ModeAuto automatically detects the appropriate mode.
	ModeAuto OutputMode = iota
	// ModeStream streams raw output to a terminal-like writer.
	ModeStream
	// ModeProblems collects output into a structured problem list.
	ModeProblems
)

// DetectEnvironment returns the recommended output mode based on the
// environment: a TTY gets the streaming sink, CI and pipes get the problem
// list.
func DetectEnvironment() OutputMode {
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))

	ci := os.Getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !isTTY || isCI {
		return ModeProblems
	}
	return ModeStream
}

// ResolveMode applies a user override to auto-detection.
// userFlag should be one of: "auto", "stream", "problems", or empty.
func ResolveMode(autoDetected OutputMode, userFlag string) OutputMode {
	switch userFlag {
	case "stream":
		return ModeStream
	case "problems":
		return ModeProblems
	default:
		return autoDetected
	}
}
