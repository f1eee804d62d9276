// Package platform maps the running CPU architecture and operating system to
// the "{arch}-{os}" keys used by the Zig version index.
package platform

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedPlatform is returned when the architecture or operating system
// has no Zig release.
var ErrUnsupportedPlatform = errors.New("unsupported platform")

const (
	ArchX86    = "x86"
	ArchX86_64 = "x86_64"
	ArchARM64  = "aarch64"

	OSLinux   = "linux"
	OSMacOS   = "macos"
	OSWindows = "windows"
)

// archMap accepts both Go GOARCH names and the index's own spelling.
var archMap = map[string]string{
	"386":     ArchX86,
	"x86":     ArchX86,
	"amd64":   ArchX86_64,
	"x86_64":  ArchX86_64,
	"arm64":   ArchARM64,
	"aarch64": ArchARM64,
}

var osMap = map[string]string{
	"linux":   OSLinux,
	"darwin":  OSMacOS,
	"macos":   OSMacOS,
	"windows": OSWindows,
}

// Platform is a resolved architecture and operating system pair.
type Platform struct {
	Arch string
	OS   string
}

// Key returns the index lookup key, e.g. "x86_64-linux".
func (p Platform) Key() string {
	return p.Arch + "-" + p.OS
}

// BinaryName returns the file name of the compiler inside an extracted release.
func (p Platform) BinaryName() string {
	if p.OS == OSWindows {
		return "zig.exe"
	}
	return "zig"
}

// IsWindows reports whether the platform needs a Windows launcher.
func (p Platform) IsWindows() bool {
	return p.OS == OSWindows
}

// Resolve determines the platform from env. It performs no I/O.
func Resolve(env Env) (Platform, error) {
	arch, err := normalizeArch(env.GOARCH())
	if err != nil {
		return Platform{}, err
	}
	goos, err := normalizeOS(env.GOOS())
	if err != nil {
		return Platform{}, err
	}
	return Platform{Arch: arch, OS: goos}, nil
}

func normalizeArch(arch string) (string, error) {
	if canonical, ok := archMap[strings.ToLower(strings.TrimSpace(arch))]; ok {
		return canonical, nil
	}
	return "", fmt.Errorf("%w: system arch %s is not supported yet", ErrUnsupportedPlatform, arch)
}

func normalizeOS(goos string) (string, error) {
	if canonical, ok := osMap[strings.ToLower(strings.TrimSpace(goos))]; ok {
		return canonical, nil
	}
	return "", fmt.Errorf("%w: system type %s is not supported yet", ErrUnsupportedPlatform, goos)
}
