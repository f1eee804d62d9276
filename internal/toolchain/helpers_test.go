package toolchain

import (
	"archive/tar"
	"bytes"
	"testing"

	"github.com/ulikunitz/xz"
)

type tarEntry struct {
	Name string
	Body string
	Mode int64
	Dir  bool
	Link string
	// Hard makes Link a hard link to another archive member.
	Hard bool
}

func buildTarXz(t *testing.T, entries []tarEntry) []byte {
	t.Helper()

	var buf bytes.Buffer
	xzw, err := xz.NewWriter(&buf)
	if err != nil {
		t.Fatalf("xz writer: %v", err)
	}
	tw := tar.NewWriter(xzw)
	for _, e := range entries {
		hdr := &tar.Header{Name: e.Name, Mode: e.Mode}
		switch {
		case e.Dir:
			hdr.Typeflag = tar.TypeDir
			if hdr.Mode == 0 {
				hdr.Mode = 0o755
			}
		case e.Link != "" && e.Hard:
			hdr.Typeflag = tar.TypeLink
			hdr.Linkname = e.Link
		case e.Link != "":
			hdr.Typeflag = tar.TypeSymlink
			hdr.Linkname = e.Link
		default:
			hdr.Typeflag = tar.TypeReg
			hdr.Size = int64(len(e.Body))
			if hdr.Mode == 0 {
				hdr.Mode = 0o644
			}
		}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatalf("write header %s: %v", e.Name, err)
		}
		if hdr.Typeflag == tar.TypeReg {
			if _, err := tw.Write([]byte(e.Body)); err != nil {
				t.Fatalf("write body %s: %v", e.Name, err)
			}
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("close tar: %v", err)
	}
	if err := xzw.Close(); err != nil {
		t.Fatalf("close xz: %v", err)
	}
	return buf.Bytes()
}

// zigRelease builds an archive shaped like an upstream release.
func zigRelease(t *testing.T, dir string) []byte {
	t.Helper()
	return buildTarXz(t, []tarEntry{
		{Name: dir + "/", Dir: true},
		{Name: dir + "/zig", Body: "#!/bin/sh\necho zig\n", Mode: 0o755},
		{Name: dir + "/lib/std/std.zig", Body: "pub const x = 1;\n"},
		{Name: dir + "/LICENSE", Body: "MIT\n"},
	})
}
