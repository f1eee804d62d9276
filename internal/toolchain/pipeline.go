package toolchain

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"zigup/internal/logx"
	"zigup/internal/paths"
	"zigup/internal/platform"
)

// Stage names a step of the install flow.
type Stage string

const (
	StageIndex    Stage = "index"
	StagePlatform Stage = "platform"
	StageSelect   Stage = "select"
	StageDownload Stage = "download"
	StageInstall  Stage = "install"
)

// Stages lists the install flow in execution order.
func Stages() []Stage {
	return []Stage{StageIndex, StagePlatform, StageSelect, StageDownload, StageInstall}
}

// Reporter receives stage transitions. status is one of "running", "complete"
// or "error".
type Reporter interface {
	Report(stage Stage, status, detail string)
}

type nopReporter struct{}

func (nopReporter) Report(Stage, string, string) {}

// Options configures one install run. Zero values fall back to defaults.
type Options struct {
	// Version requests an exact index label; empty selects the latest release.
	Version string
	// Proxy routes both requests through the given URL.
	Proxy    string
	IndexURL string
	Paths    paths.Paths
	Env      platform.Env
	// WorkDir holds the temporary archive; empty means the working directory.
	WorkDir  string
	Logger   *log.Logger
	Reporter Reporter
	// Out receives plain progress lines.
	Out io.Writer
	// Client overrides the HTTP client built from Proxy.
	Client *Client
}

// Install fetches the index, selects a release for the running platform,
// downloads it, and installs it as the active toolchain.
func Install(ctx context.Context, opts Options) (Installation, error) {
	logger := logx.OrDiscard(opts.Logger)
	reporter := opts.Reporter
	if reporter == nil {
		reporter = nopReporter{}
	}
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	env := opts.Env
	if env == nil {
		env = platform.System()
	}

	fail := func(stage Stage, err error) (Installation, error) {
		reporter.Report(stage, "error", err.Error())
		logger.Printf("%s failed: %v", stage, err)
		return Installation{}, err
	}

	if err := os.MkdirAll(opts.Paths.Root, 0o755); err != nil {
		return Installation{}, fmt.Errorf("%w: create directory %s for zigup: %w", ErrIO, opts.Paths.Root, err)
	}
	unlock, err := AcquireLock(ctx, opts.Paths.LockFile)
	if err != nil {
		return Installation{}, err
	}
	defer unlock()

	client := opts.Client
	if client == nil {
		client, err = NewClient(opts.Proxy)
		if err != nil {
			return Installation{}, err
		}
	}

	reporter.Report(StageIndex, "running", opts.IndexURL)
	idx, err := FetchIndex(ctx, client, opts.IndexURL)
	if err != nil {
		return fail(StageIndex, fmt.Errorf("fetch version index: %w", err))
	}
	reporter.Report(StageIndex, "complete", fmt.Sprintf("%d versions", len(idx)))

	reporter.Report(StagePlatform, "running", "")
	plat, err := platform.Resolve(env)
	if err != nil {
		return fail(StagePlatform, fmt.Errorf("resolve platform: %w", err))
	}
	reporter.Report(StagePlatform, "complete", plat.Key())

	reporter.Report(StageSelect, "running", opts.Version)
	version, err := SelectVersion(idx, opts.Version)
	if err != nil {
		return fail(StageSelect, fmt.Errorf("select version: %w", err))
	}
	url, err := ResolveDownloadURL(idx, version, plat.Key())
	if err != nil {
		return fail(StageSelect, fmt.Errorf("select version: %w", err))
	}
	archiveName, err := ArchiveName(url)
	if err != nil {
		return fail(StageSelect, fmt.Errorf("get zig package name: %w", err))
	}
	reporter.Report(StageSelect, "complete", version)
	logger.Printf("selected %s for %s: %s", version, plat.Key(), url)

	fmt.Fprintf(out, "install selected version %s from %s ...\n", version, url)

	reporter.Report(StageDownload, "running", url)
	data, err := client.Get(ctx, url)
	if err != nil {
		return fail(StageDownload, fmt.Errorf("request data from %s: %w", url, err))
	}
	reporter.Report(StageDownload, "complete", fmt.Sprintf("%s (%d bytes)", archiveName, len(data)))

	reporter.Report(StageInstall, "running", archiveName)
	installer := &Installer{
		CurrentDir:  opts.Paths.CurrentDir,
		WrapperPath: opts.Paths.WrapperPath(),
		BinaryName:  plat.BinaryName(),
		Wrapper:     NewWrapperWriter(plat.IsWindows()),
		WorkDir:     opts.WorkDir,
		Logger:      logger,
	}
	installed, err := installer.Install(ctx, data, archiveName)
	if err != nil {
		return fail(StageInstall, fmt.Errorf("install %s: %w", archiveName, err))
	}

	record := Installation{
		Version:     version,
		Platform:    plat.Key(),
		URL:         url,
		Archive:     archiveName,
		BinaryPath:  installed.BinaryPath,
		WrapperPath: installed.WrapperPath,
		InstalledAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := SaveManifest(opts.Paths.ManifestFile, Manifest{Current: &record}); err != nil {
		// The wrapper is already in place; a stale manifest only affects status.
		logger.Printf("manifest update failed: %v", err)
	}
	reporter.Report(StageInstall, "complete", installed.WrapperPath)
	return record, nil
}
