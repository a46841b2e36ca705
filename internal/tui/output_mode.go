package tui

import (
	"os"

	"golang.org/x/term"
)

// OutputMode says how results should be presented.
type OutputMode int

const (
	// OutputModePlain is line-oriented output for pipes and scripts.
	OutputModePlain OutputMode = iota
	// OutputModeInteractive is the full-screen Bubble Tea browser.
	OutputModeInteractive
)

// DetectOutputMode picks the interactive browser only when stdout is a
// terminal and the caller has not forced plain output.
func DetectOutputMode(forcePlain bool) OutputMode {
	if forcePlain {
		return OutputModePlain
	}
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return OutputModeInteractive
	}
	return OutputModePlain
}
