package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"zigup/internal/platform"
	"zigup/internal/toolchain"
	"zigup/internal/tui"
)

type versionListing struct {
	Version   string `json:"version"`
	Available bool   `json:"available"`
	Latest    bool   `json:"latest"`
	Installed bool   `json:"installed"`
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List versions in the remote index",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}
}

func runList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	s, err := loadSession()
	if err != nil {
		return err
	}
	plat, err := platform.Resolve(environ)
	if err != nil {
		return fmt.Errorf("resolve platform: %w", err)
	}
	client, err := toolchain.NewClient(s.Config.Proxy)
	if err != nil {
		return err
	}

	var status *tui.StatusWriter
	if tui.DetectMode(cmd.ErrOrStderr(), noProgress, outputJSON, environ.Getenv) == tui.ModeTUI {
		status = tui.NewStatusWriter(cmd.ErrOrStderr(), "fetching "+s.Config.IndexURL)
	}
	idx, err := toolchain.FetchIndex(ctx, client, s.Config.IndexURL)
	if status != nil {
		status.Stop()
	}
	if err != nil {
		return fmt.Errorf("fetch version index: %w", err)
	}

	manifest, err := toolchain.LoadManifest(s.Paths.ManifestFile)
	if err != nil {
		return err
	}
	installed := ""
	if manifest.Current != nil {
		installed = manifest.Current.Version
	}
	latest, _ := toolchain.Latest(idx)

	listing := make([]versionListing, 0, len(idx))
	for _, version := range toolchain.Ordered(idx) {
		_, urlErr := toolchain.ResolveDownloadURL(idx, version, plat.Key())
		listing = append(listing, versionListing{
			Version:   version,
			Available: urlErr == nil,
			Latest:    version == latest,
			Installed: version == installed,
		})
	}

	if outputJSON {
		return printJSON(cmd, listing)
	}
	printVersionTable(cmd, plat.Key(), listing)
	return nil
}

func printVersionTable(cmd *cobra.Command, platformKey string, listing []versionListing) {
	if len(listing) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "(index lists no versions)")
		return
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%-24s %-14s %s\n", "VERSION", platformKey, "NOTES")
	for _, v := range listing {
		available := "no"
		if v.Available {
			available = "yes"
		}
		var notes string
		switch {
		case v.Installed && v.Latest:
			notes = tui.ActiveStyle.Render("installed") + ", " + tui.LatestStyle.Render("latest")
		case v.Installed:
			notes = tui.ActiveStyle.Render("installed")
		case v.Latest:
			notes = tui.LatestStyle.Render("latest")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%-24s %-14s %s\n", v.Version, available, notes)
	}
}
