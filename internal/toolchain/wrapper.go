package toolchain

import (
	"fmt"
	"os"
	"strings"
)

// WrapperWriter writes the launcher that forwards invocations to the installed
// compiler binary.
type WrapperWriter interface {
	// Path returns the final launcher location for the base path.
	Path(base string) string
	// Content returns the launcher text for binaryPath.
	Content(binaryPath string) string
	// Write creates or overwrites the launcher at path.
	Write(path, binaryPath string) error
}

// NewWrapperWriter selects the launcher variant for the target OS.
func NewWrapperWriter(windows bool) WrapperWriter {
	if windows {
		return cmdWrapper{}
	}
	return shellWrapper{}
}

// shellWrapper writes an executable bash script.
type shellWrapper struct{}

func (shellWrapper) Path(base string) string { return base }

func (shellWrapper) Content(binaryPath string) string {
	var b strings.Builder
	b.WriteString("#!/usr/bin/env bash\n")
	b.WriteString(shellQuote(binaryPath))
	b.WriteString(" \"$@\"\n")
	return b.String()
}

func (w shellWrapper) Write(path, binaryPath string) error {
	if err := writeTruncate(path, w.Content(binaryPath), 0o777); err != nil {
		return err
	}
	// OpenFile's mode is filtered by the umask and ignored for existing files.
	if err := os.Chmod(path, 0o777); err != nil {
		return fmt.Errorf("set executable %s: %w", path, err)
	}
	return nil
}

// cmdWrapper writes a batch launcher; Windows resolves .cmd through PATHEXT so
// no permission bits are needed.
type cmdWrapper struct{}

func (cmdWrapper) Path(base string) string {
	if strings.HasSuffix(strings.ToLower(base), ".cmd") {
		return base
	}
	return base + ".cmd"
}

func (cmdWrapper) Content(binaryPath string) string {
	return "@echo off\r\n\"" + binaryPath + "\" %*\r\n"
}

func (w cmdWrapper) Write(path, binaryPath string) error {
	return writeTruncate(path, w.Content(binaryPath), 0o755)
}

func writeTruncate(path, content string, mode os.FileMode) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("create wrapper script %s: %w", path, err)
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return fmt.Errorf("write wrapper script %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close wrapper script %s: %w", path, err)
	}
	return nil
}

// shellQuote single-quotes s unless it consists only of characters that are
// safe unquoted in bash.
func shellQuote(s string) string {
	safe := s != "" && strings.IndexFunc(s, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || strings.ContainsRune("/._-+:@%", r))
	}) < 0
	if safe {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
