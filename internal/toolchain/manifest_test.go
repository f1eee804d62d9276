package toolchain

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadManifestMissing(t *testing.T) {
	m, err := LoadManifest(filepath.Join(t.TempDir(), "manifest.json"))
	if err != nil {
		t.Fatalf("LoadManifest() error = %v", err)
	}
	if m.Current != nil {
		t.Fatalf("expected empty manifest, got %+v", m.Current)
	}
}

func TestSaveManifestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "manifest.json")
	want := Installation{
		Version:     "0.13.0",
		Platform:    "x86_64-linux",
		URL:         "https://ziglang.org/download/0.13.0/zig-linux-x86_64-0.13.0.tar.xz",
		Archive:     "zig-linux-x86_64-0.13.0.tar.xz",
		BinaryPath:  "/home/me/.zigup/current/zig-linux-x86_64-0.13.0/zig",
		WrapperPath: "/home/me/.cargo/bin/zig",
		InstalledAt: "2024-06-07T00:00:00Z",
	}
	if err := SaveManifest(path, Manifest{Current: &want}); err != nil {
		t.Fatalf("SaveManifest() error = %v", err)
	}

	got, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest() error = %v", err)
	}
	if got.Current == nil || *got.Current != want {
		t.Fatalf("LoadManifest() = %+v, want %+v", got.Current, want)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %d entries", len(entries))
	}
}

func TestLoadManifestCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	if err := os.WriteFile(path, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadManifest(path); err == nil {
		t.Fatal("expected error for corrupt manifest")
	}
}
