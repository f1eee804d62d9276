package cli

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"zigup/internal/logx"
	"zigup/internal/toolchain"
	"zigup/internal/tui"
)

var installVersion string

func newInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install the latest stable Zig, or the version given with --version",
		Args:  cobra.NoArgs,
		RunE:  runInstall,
	}
	cmd.Flags().StringVarP(&installVersion, "version", "v", "", "Exact version label from the index")
	return cmd
}

func newUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Replace the active Zig with the latest stable release, or --version",
		Args:  cobra.NoArgs,
		RunE:  runInstall,
	}
	cmd.Flags().StringVarP(&installVersion, "version", "v", "", "Exact version label from the index")
	return cmd
}

func runInstall(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	s, err := loadSession()
	if err != nil {
		return err
	}

	logger, closer, err := logx.New(s.Paths.LogsDir)
	if err != nil {
		return err
	}
	defer closer.Close()
	logger.Printf("%s: version=%q index=%s proxy=%q", cmd.Name(), installVersion, s.Config.IndexURL, s.Config.Proxy)

	opts := toolchain.Options{
		Version:  installVersion,
		Proxy:    s.Config.Proxy,
		IndexURL: s.Config.IndexURL,
		Paths:    s.Paths,
		Env:      environ,
		Logger:   logger,
	}

	out := cmd.OutOrStdout()
	var result toolchain.Installation
	switch tui.DetectMode(out, noProgress, outputJSON, environ.Getenv) {
	case tui.ModeJSON:
		opts.Out = io.Discard
		result, err = toolchain.Install(ctx, opts)
		if err != nil {
			return fmt.Errorf("update zig installation: %w", err)
		}
		return printJSON(cmd, result)

	case tui.ModeTUI:
		opts.Out = io.Discard
		model := tui.NewStageModel("zigup " + cmd.Name())
		err = tui.RunWithWork(ctx, out, model, func(ctx context.Context, send func(tea.Msg)) error {
			opts.Reporter = tui.NewStageReporter(send)
			var runErr error
			result, runErr = toolchain.Install(ctx, opts)
			return runErr
		})
		if err != nil {
			return fmt.Errorf("update zig installation: %w", err)
		}
		fmt.Fprintf(out, "zig %s is now available as %s\n", result.Version, result.WrapperPath)
		return nil

	default:
		opts.Out = out
		if _, err := toolchain.Install(ctx, opts); err != nil {
			return fmt.Errorf("update zig installation: %w", err)
		}
		return nil
	}
}
