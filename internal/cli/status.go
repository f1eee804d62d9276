package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"zigup/internal/toolchain"
	"zigup/internal/tui"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the active Zig installation",
		Args:  cobra.NoArgs,
		RunE:  runStatus,
	}
}

func runStatus(cmd *cobra.Command, _ []string) error {
	s, err := loadSession()
	if err != nil {
		return err
	}

	manifest, err := toolchain.LoadManifest(s.Paths.ManifestFile)
	if err != nil {
		return err
	}

	if outputJSON {
		return printJSON(cmd, manifest)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Root: %s\n", s.Paths.Root)
	if manifest.Current == nil {
		fmt.Fprintln(cmd.OutOrStdout(), "No zig installation recorded. Run `zigup install`.")
		return nil
	}

	cur := manifest.Current
	fmt.Fprintf(cmd.OutOrStdout(), "Version:   %s\n", cur.Version)
	fmt.Fprintf(cmd.OutOrStdout(), "Platform:  %s\n", cur.Platform)
	fmt.Fprintf(cmd.OutOrStdout(), "Binary:    %s\n", cur.BinaryPath)
	fmt.Fprintf(cmd.OutOrStdout(), "Wrapper:   %s\n", cur.WrapperPath)
	fmt.Fprintf(cmd.OutOrStdout(), "Source:    %s\n", tui.NonEmptyOrDash(cur.URL))
	fmt.Fprintf(cmd.OutOrStdout(), "Installed: %s\n", tui.NonEmptyOrDash(cur.InstalledAt))
	return nil
}
