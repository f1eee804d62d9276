package paths

import (
	"path/filepath"
	"testing"

	"zigup/internal/config"
	"zigup/internal/platform"
)

func TestResolveDefaultsToHome(t *testing.T) {
	home := t.TempDir()
	p, err := Resolve(platform.Static{Home: home})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	root := filepath.Join(home, ".zigup")
	if p.Root != root {
		t.Fatalf("Root = %s, want %s", p.Root, root)
	}
	if p.CurrentDir != filepath.Join(root, "current") {
		t.Fatalf("CurrentDir = %s", p.CurrentDir)
	}
	if p.ManifestFile != filepath.Join(root, "manifest.json") {
		t.Fatalf("ManifestFile = %s", p.ManifestFile)
	}
}

func TestResolveHonoursOverride(t *testing.T) {
	override := t.TempDir()
	env := platform.Static{Vars: map[string]string{HomeEnvVar: override}}
	p, err := Resolve(env)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if p.Root != override {
		t.Fatalf("Root = %s, want %s", p.Root, override)
	}
}

func TestResolveWithoutHome(t *testing.T) {
	if _, err := Resolve(platform.Static{}); err == nil {
		t.Fatal("expected error when home is unavailable")
	}
}

func TestApplyConfigExpandsHome(t *testing.T) {
	home := t.TempDir()
	env := platform.Static{Home: home}
	p, err := Resolve(env)
	if err != nil {
		t.Fatal(err)
	}

	p, err = ApplyConfig(p, config.Default(), env)
	if err != nil {
		t.Fatalf("ApplyConfig() error = %v", err)
	}
	want := filepath.Join(home, ".cargo", "bin", "zig")
	if got := p.WrapperPath(); got != want {
		t.Fatalf("WrapperPath() = %s, want %s", got, want)
	}
}

func TestApplyConfigAbsoluteBinDir(t *testing.T) {
	bin := t.TempDir()
	cfg := config.Default()
	cfg.BinDir = bin
	cfg.WrapperName = "zig-latest"

	p, err := ApplyConfig(Paths{}, cfg, platform.Static{})
	if err != nil {
		t.Fatalf("ApplyConfig() error = %v", err)
	}
	if got := p.WrapperPath(); got != filepath.Join(bin, "zig-latest") {
		t.Fatalf("WrapperPath() = %s", got)
	}
}
