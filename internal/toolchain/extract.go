package toolchain

import (
	"archive/tar"
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"
)

const tarXzSuffix = ".tar.xz"

// ArchiveDirName returns the directory a release archive is expected to unpack
// into: the archive name without its .tar.xz suffix.
func ArchiveDirName(archiveName string) (string, error) {
	if !strings.HasSuffix(archiveName, tarXzSuffix) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedArchive, archiveName)
	}
	return strings.TrimSuffix(archiveName, tarXzSuffix), nil
}

func extractTarXz(ctx context.Context, archivePath, dest string) error {
	file, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer file.Close()

	xzr, err := xz.NewReader(bufio.NewReader(file))
	if err != nil {
		return fmt.Errorf("xz reader: %w", err)
	}

	if err := os.MkdirAll(dest, 0o755); err != nil {
		return fmt.Errorf("prepare extract dir: %w", err)
	}
	return untarStream(ctx, xzr, dest)
}

func untarStream(ctx context.Context, r io.Reader, dest string) error {
	dest = filepath.Clean(dest)
	realDest, err := filepath.EvalSymlinks(dest)
	if err != nil {
		return fmt.Errorf("resolve extract dir: %w", err)
	}

	tr := tar.NewReader(r)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("read tar header: %w", err)
		}

		target := filepath.Join(dest, filepath.FromSlash(header.Name))
		if !within(dest, target) {
			return fmt.Errorf("illegal file path: %s", header.Name)
		}
		if target == dest {
			continue
		}
		if err := checkExisting(dest, realDest, filepath.Dir(target)); err != nil {
			return fmt.Errorf("illegal file path: %s: %w", header.Name, err)
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := checkExisting(dest, realDest, target); err != nil {
				return fmt.Errorf("illegal file path: %s: %w", header.Name, err)
			}
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("create dir %s: %w", target, err)
			}
		case tar.TypeReg:
			if err := removeSymlink(target); err != nil {
				return err
			}
			if err := writeEntry(tr, target, os.FileMode(header.Mode).Perm()); err != nil {
				return err
			}
		case tar.TypeSymlink:
			linkTarget := filepath.FromSlash(header.Linkname)
			if !filepath.IsAbs(linkTarget) {
				linkTarget = filepath.Join(filepath.Dir(target), linkTarget)
			}
			linkTarget = filepath.Clean(linkTarget)
			if !within(dest, linkTarget) && !within(realDest, linkTarget) {
				return fmt.Errorf("illegal symlink: %s -> %s", header.Name, header.Linkname)
			}
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return fmt.Errorf("prepare symlink %s: %w", target, err)
			}
			_ = os.Remove(target)
			if err := os.Symlink(header.Linkname, target); err != nil {
				return fmt.Errorf("create symlink %s: %w", target, err)
			}
		case tar.TypeLink:
			source := filepath.Join(dest, filepath.FromSlash(header.Linkname))
			if !within(dest, source) {
				return fmt.Errorf("illegal hard link: %s -> %s", header.Name, header.Linkname)
			}
			if err := checkExisting(dest, realDest, source); err != nil {
				return fmt.Errorf("illegal hard link: %s -> %s: %w", header.Name, header.Linkname, err)
			}
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return fmt.Errorf("prepare hard link %s: %w", target, err)
			}
			_ = os.Remove(target)
			if err := os.Link(source, target); err != nil {
				return fmt.Errorf("create hard link %s: %w", target, err)
			}
		case tar.TypeXGlobalHeader:
			// pax metadata only
		default:
			return fmt.Errorf("unsupported tar entry %s (type %q)", header.Name, header.Typeflag)
		}
	}
	return nil
}

// within reports whether path is root or lies below it.
func within(root, path string) bool {
	return path == root || strings.HasPrefix(path, root+string(os.PathSeparator))
}

// checkExisting walks the components of path below dest and fails when an
// existing symlink among them resolves outside realDest.
func checkExisting(dest, realDest, path string) error {
	rel, err := filepath.Rel(dest, path)
	if err != nil {
		return err
	}
	if rel == "." {
		return nil
	}
	cur := dest
	for _, part := range strings.Split(rel, string(os.PathSeparator)) {
		cur = filepath.Join(cur, part)
		info, err := os.Lstat(cur)
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		if err != nil {
			return err
		}
		if info.Mode()&os.ModeSymlink == 0 {
			continue
		}
		resolved, err := filepath.EvalSymlinks(cur)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", cur, err)
		}
		if !within(realDest, resolved) {
			return fmt.Errorf("%s resolves outside the destination", cur)
		}
	}
	return nil
}

// removeSymlink deletes target when it is a symlink so a regular file entry
// replaces the link instead of writing through it.
func removeSymlink(target string) error {
	info, err := os.Lstat(target)
	if err != nil || info.Mode()&os.ModeSymlink == 0 {
		return nil
	}
	if err := os.Remove(target); err != nil {
		return fmt.Errorf("replace symlink %s: %w", target, err)
	}
	return nil
}

func writeEntry(r io.Reader, target string, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("prepare file %s: %w", target, err)
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("create file %s: %w", target, err)
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return fmt.Errorf("write file %s: %w", target, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close file %s: %w", target, err)
	}
	return nil
}
