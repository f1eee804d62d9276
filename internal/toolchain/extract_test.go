package toolchain

import (
	"archive/tar"
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/ulikunitz/xz"
)

func writeArchive(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "release.tar.xz")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExtractTarXz(t *testing.T) {
	archive := writeArchive(t, buildTarXz(t, []tarEntry{
		{Name: "zig-1.0.0/", Dir: true},
		{Name: "zig-1.0.0/zig", Body: "binary", Mode: 0o755},
		{Name: "zig-1.0.0/lib/std/std.zig", Body: "std"},
		{Name: "zig-1.0.0/zig-link", Link: "zig"},
	}))
	dest := t.TempDir()

	if err := extractTarXz(context.Background(), archive, dest); err != nil {
		t.Fatalf("extractTarXz(context.Background(), ) error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dest, "zig-1.0.0", "lib", "std", "std.zig"))
	if err != nil {
		t.Fatalf("read extracted file: %v", err)
	}
	if string(data) != "std" {
		t.Fatalf("content = %q", data)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(filepath.Join(dest, "zig-1.0.0", "zig"))
		if err != nil {
			t.Fatal(err)
		}
		if info.Mode().Perm()&0o100 == 0 {
			t.Fatalf("expected executable bit, got %v", info.Mode())
		}
		link, err := os.Readlink(filepath.Join(dest, "zig-1.0.0", "zig-link"))
		if err != nil || link != "zig" {
			t.Fatalf("Readlink() = %q, %v", link, err)
		}
	}
}

func TestExtractRejectsPathTraversal(t *testing.T) {
	archive := writeArchive(t, buildTarXz(t, []tarEntry{
		{Name: "../escape.txt", Body: "nope"},
	}))
	dest := filepath.Join(t.TempDir(), "dest")

	err := extractTarXz(context.Background(), archive, dest)
	if err == nil || !strings.Contains(err.Error(), "illegal file path") {
		t.Fatalf("expected illegal path error, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(dest), "escape.txt")); !os.IsNotExist(err) {
		t.Fatal("entry escaped the destination")
	}
}

func TestExtractRejectsNonXz(t *testing.T) {
	archive := writeArchive(t, []byte("plain text, not xz"))
	if err := extractTarXz(context.Background(), archive, t.TempDir()); err == nil {
		t.Fatal("expected error for non-xz input")
	}
}

func TestArchiveDirName(t *testing.T) {
	dir, err := ArchiveDirName("zig-linux-x86_64-0.13.0.tar.xz")
	if err != nil {
		t.Fatalf("ArchiveDirName() error = %v", err)
	}
	if dir != "zig-linux-x86_64-0.13.0" {
		t.Fatalf("ArchiveDirName() = %q", dir)
	}

	if _, err := ArchiveDirName("zig-windows-x86_64-0.13.0.zip"); !errors.Is(err, ErrUnsupportedArchive) {
		t.Fatalf("expected ErrUnsupportedArchive, got %v", err)
	}
}

func TestExtractRejectsEscapingSymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	outside := t.TempDir()

	tests := []struct {
		name    string
		entries []tarEntry
	}{
		{"absolute target", []tarEntry{
			{Name: "zig-1.0.0/", Dir: true},
			{Name: "zig-1.0.0/evil", Link: outside},
			{Name: "zig-1.0.0/evil/pwned", Body: "escaped\n"},
		}},
		{"relative target", []tarEntry{
			{Name: "zig-1.0.0/", Dir: true},
			{Name: "zig-1.0.0/evil", Link: "../../../../../../../../" + strings.TrimPrefix(outside, "/")},
			{Name: "zig-1.0.0/evil/pwned", Body: "escaped\n"},
		}},
		{"parent escape", []tarEntry{
			{Name: "zig-1.0.0/up", Link: "../.."},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			archive := writeArchive(t, buildTarXz(t, tt.entries))
			dest := filepath.Join(t.TempDir(), "current")

			err := extractTarXz(context.Background(), archive, dest)
			if err == nil || !strings.Contains(err.Error(), "illegal symlink") {
				t.Fatalf("expected illegal symlink error, got %v", err)
			}
			if _, err := os.Stat(filepath.Join(outside, "pwned")); !os.IsNotExist(err) {
				t.Fatal("entry was written outside the destination")
			}
		})
	}
}

func TestExtractRefusesExistingEscapingSymlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	outside := t.TempDir()
	dest := filepath.Join(t.TempDir(), "current")
	if err := os.MkdirAll(dest, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(outside, filepath.Join(dest, "zig-1.0.0")); err != nil {
		t.Fatal(err)
	}

	archive := writeArchive(t, buildTarXz(t, []tarEntry{
		{Name: "zig-1.0.0/zig", Body: "binary", Mode: 0o755},
	}))
	err := extractTarXz(context.Background(), archive, dest)
	if err == nil || !strings.Contains(err.Error(), "illegal file path") {
		t.Fatalf("expected illegal path error, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(outside, "zig")); !os.IsNotExist(err) {
		t.Fatal("entry was written through the symlink")
	}
}

func TestExtractInternalSymlinkDirectory(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	archive := writeArchive(t, buildTarXz(t, []tarEntry{
		{Name: "zig-1.0.0/lib/", Dir: true},
		{Name: "zig-1.0.0/include", Link: "lib"},
		{Name: "zig-1.0.0/include/zig.h", Body: "header"},
	}))
	dest := filepath.Join(t.TempDir(), "current")

	if err := extractTarXz(context.Background(), archive, dest); err != nil {
		t.Fatalf("extractTarXz(context.Background(), ) error = %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dest, "zig-1.0.0", "lib", "zig.h"))
	if err != nil || string(data) != "header" {
		t.Fatalf("ReadFile() = %q, %v", data, err)
	}
}

func TestExtractHardLinks(t *testing.T) {
	archive := writeArchive(t, buildTarXz(t, []tarEntry{
		{Name: "zig-1.0.0/", Dir: true},
		{Name: "zig-1.0.0/zig", Body: "binary", Mode: 0o755},
		{Name: "zig-1.0.0/bin/zig", Link: "zig-1.0.0/zig", Hard: true},
	}))
	dest := filepath.Join(t.TempDir(), "current")

	if err := extractTarXz(context.Background(), archive, dest); err != nil {
		t.Fatalf("extractTarXz(context.Background(), ) error = %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dest, "zig-1.0.0", "bin", "zig"))
	if err != nil || string(data) != "binary" {
		t.Fatalf("ReadFile() = %q, %v", data, err)
	}
}

func TestExtractRejectsEscapingHardLink(t *testing.T) {
	archive := writeArchive(t, buildTarXz(t, []tarEntry{
		{Name: "zig-1.0.0/passwd", Link: "../../etc/passwd", Hard: true},
	}))
	dest := filepath.Join(t.TempDir(), "current")

	err := extractTarXz(context.Background(), archive, dest)
	if err == nil || !strings.Contains(err.Error(), "illegal hard link") {
		t.Fatalf("expected illegal hard link error, got %v", err)
	}
}

func TestExtractRejectsUnsupportedEntries(t *testing.T) {
	var buf bytes.Buffer
	xzw, err := xz.NewWriter(&buf)
	if err != nil {
		t.Fatal(err)
	}
	tw := tar.NewWriter(xzw)
	if err := tw.WriteHeader(&tar.Header{Name: "zig-1.0.0/pipe", Typeflag: tar.TypeFifo, Mode: 0o644}); err != nil {
		t.Fatal(err)
	}
	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := xzw.Close(); err != nil {
		t.Fatal(err)
	}

	err = extractTarXz(context.Background(), writeArchive(t, buf.Bytes()), t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "unsupported tar entry") {
		t.Fatalf("expected unsupported entry error, got %v", err)
	}
}
