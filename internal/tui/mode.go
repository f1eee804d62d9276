package tui

import (
	"io"
	"os"
	"runtime"
	"strings"
)

// OutputMode describes how install progress is rendered.
type OutputMode int

const (
	// ModeTUI renders the stage table with bubbletea.
	ModeTUI OutputMode = iota
	// ModePlain prints progress lines only.
	ModePlain
	// ModeJSON prints the install result as JSON.
	ModeJSON
)

// DetectMode picks the output mode for out. getenv is consulted for TERM.
func DetectMode(out io.Writer, noProgress, jsonOutput bool, getenv func(string) string) OutputMode {
	if jsonOutput {
		return ModeJSON
	}
	if noProgress || !isTerminal(out) {
		return ModePlain
	}
	if runtime.GOOS != "windows" {
		term := getenv("TERM")
		if term == "" || strings.EqualFold(term, "dumb") {
			return ModePlain
		}
	}
	return ModeTUI
}

func isTerminal(out io.Writer) bool {
	file, ok := out.(*os.File)
	if !ok {
		return false
	}
	info, err := file.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
