package paths

import (
	"fmt"
	"path/filepath"
	"strings"

	"zigup/internal/config"
	"zigup/internal/platform"
)

// HomeEnvVar overrides the install root.
const HomeEnvVar = "ZIGUP_HOME"

// Paths captures canonical locations for a zigup installation.
type Paths struct {
	Root         string
	CurrentDir   string
	ConfigFile   string
	ManifestFile string
	LockFile     string
	LogsDir      string
	BinDir       string
	WrapperName  string
}

// Resolve determines the install root from ZIGUP_HOME or ~/.zigup.
func Resolve(env platform.Env) (Paths, error) {
	root := strings.TrimSpace(env.Getenv(HomeEnvVar))
	if root != "" {
		abs, err := filepath.Abs(root)
		if err != nil {
			return Paths{}, fmt.Errorf("resolve %s: %w", HomeEnvVar, err)
		}
		root = abs
	} else {
		home, err := env.HomeDir()
		if err != nil {
			return Paths{}, fmt.Errorf("get home directory: %w", err)
		}
		root = filepath.Join(home, ".zigup")
	}
	return newPaths(root), nil
}

func newPaths(root string) Paths {
	return Paths{
		Root:         root,
		CurrentDir:   filepath.Join(root, "current"),
		ConfigFile:   filepath.Join(root, "config.yaml"),
		ManifestFile: filepath.Join(root, "manifest.json"),
		LockFile:     filepath.Join(root, "install.lock"),
		LogsDir:      filepath.Join(root, "logs"),
	}
}

// ApplyConfig fills the wrapper location from the configuration, expanding a
// leading "~" against the home directory.
func ApplyConfig(p Paths, cfg config.Config, env platform.Env) (Paths, error) {
	binDir, err := expandHome(cfg.BinDir, env)
	if err != nil {
		return Paths{}, err
	}
	p.BinDir = binDir
	p.WrapperName = cfg.WrapperName
	return p, nil
}

// WrapperPath returns the wrapper location before any platform suffix.
func (p Paths) WrapperPath() string {
	return filepath.Join(p.BinDir, p.WrapperName)
}

func expandHome(path string, env platform.Env) (string, error) {
	path = strings.TrimSpace(path)
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return filepath.Abs(path)
	}
	home, err := env.HomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
