package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"zigup/internal/platform"
)

var (
	proxyURL   string
	configPath string
	outputJSON bool
	noProgress bool

	// environ is swapped out by tests.
	environ platform.Env = platform.System()
)

// Execute runs the root cobra command.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "zigup",
		Short:         "Install and update the Zig toolchain",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&proxyURL, "proxy", "", "Route index and archive requests through this proxy URL")
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default $ZIGUP_HOME/config.yaml)")
	cmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "Output machine-readable JSON")
	cmd.PersistentFlags().BoolVar(&noProgress, "no-progress", false, "Disable the interactive progress table")

	cmd.AddCommand(newInstallCmd())
	cmd.AddCommand(newUpdateCmd())
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newStatusCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}
