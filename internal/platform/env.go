package platform

import (
	"errors"
	"os"
	"runtime"
)

// Env abstracts the process-wide lookups the installer depends on so tests can
// substitute fixed values for the real host.
type Env interface {
	HomeDir() (string, error)
	GOOS() string
	GOARCH() string
	Getenv(key string) string
}

type systemEnv struct{}

// System returns the Env backed by the running process.
func System() Env {
	return systemEnv{}
}

func (systemEnv) HomeDir() (string, error) { return os.UserHomeDir() }
func (systemEnv) GOOS() string             { return runtime.GOOS }
func (systemEnv) GOARCH() string           { return runtime.GOARCH }
func (systemEnv) Getenv(key string) string { return os.Getenv(key) }

// Static is an Env with fixed values.
type Static struct {
	Home string
	OS   string
	Arch string
	Vars map[string]string
}

func (s Static) HomeDir() (string, error) {
	if s.Home == "" {
		return "", errors.New("home directory not set")
	}
	return s.Home, nil
}

func (s Static) GOOS() string   { return s.OS }
func (s Static) GOARCH() string { return s.Arch }

func (s Static) Getenv(key string) string {
	return s.Vars[key]
}
