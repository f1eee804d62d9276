package toolchain

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"zigup/internal/logx"
)

// Installer unpacks release archives and points the wrapper at them.
type Installer struct {
	// CurrentDir receives extracted releases (<root>/current).
	CurrentDir string
	// WrapperPath is the launcher location before any platform suffix.
	WrapperPath string
	// BinaryName is the compiler file inside the extracted release.
	BinaryName string
	Wrapper    WrapperWriter
	// WorkDir holds the downloaded archive; empty means the working directory.
	WorkDir string
	Logger  *log.Logger
}

// Installed describes the outcome of a successful install.
type Installed struct {
	ArchiveDir  string
	BinaryPath  string
	WrapperPath string
}

// Install writes archive to disk as archiveName, extracts it, verifies the
// compiler binary exists, and rewrites the wrapper. The local archive file is
// removed afterwards on a best-effort basis. Cancelling ctx stops the install
// before the wrapper is touched.
func (in *Installer) Install(ctx context.Context, archive []byte, archiveName string) (Installed, error) {
	logger := logx.OrDiscard(in.Logger)
	if err := ctx.Err(); err != nil {
		return Installed{}, err
	}

	dirName, err := ArchiveDirName(archiveName)
	if err != nil {
		return Installed{}, err
	}

	archivePath := filepath.Join(in.WorkDir, archiveName)
	if err := os.WriteFile(archivePath, archive, 0o644); err != nil {
		return Installed{}, fmt.Errorf("%w: write zig package data to %s: %w", ErrIO, archivePath, err)
	}
	defer removeArchive(logger, archivePath)

	if err := extractTarXz(ctx, archivePath, in.CurrentDir); err != nil {
		return Installed{}, fmt.Errorf("%w: decompress %s to %s: %w", ErrIO, archiveName, in.CurrentDir, err)
	}
	logger.Printf("extracted %s into %s", archiveName, in.CurrentDir)

	archiveDir := filepath.Join(in.CurrentDir, dirName)
	binaryPath := filepath.Join(archiveDir, in.BinaryName)
	info, err := os.Stat(binaryPath)
	if err != nil || !info.Mode().IsRegular() {
		return Installed{}, fmt.Errorf("%w: expected %s inside %s", ErrBinaryMissing, in.BinaryName, archiveDir)
	}

	if err := ctx.Err(); err != nil {
		return Installed{}, err
	}
	wrapperPath := in.Wrapper.Path(in.WrapperPath)
	if err := os.MkdirAll(filepath.Dir(wrapperPath), 0o755); err != nil {
		return Installed{}, fmt.Errorf("%w: create wrapper directory: %w", ErrIO, err)
	}
	if err := in.Wrapper.Write(wrapperPath, binaryPath); err != nil {
		return Installed{}, fmt.Errorf("%w: %w", ErrIO, err)
	}
	logger.Printf("wrapper %s now forwards to %s", wrapperPath, binaryPath)

	return Installed{
		ArchiveDir:  archiveDir,
		BinaryPath:  binaryPath,
		WrapperPath: wrapperPath,
	}, nil
}

func removeArchive(logger *log.Logger, path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Printf("cleanup: could not remove %s: %v", path, err)
		return
	}
	logger.Printf("cleanup: removed %s", path)
}
