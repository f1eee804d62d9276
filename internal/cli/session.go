package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"zigup/internal/config"
	"zigup/internal/paths"
)

// session is the resolved configuration shared by every command.
type session struct {
	Paths  paths.Paths
	Config config.Config
}

// configFile resolves the config location without reading it.
func configFile() (paths.Paths, string, error) {
	pp, err := paths.Resolve(environ)
	if err != nil {
		return paths.Paths{}, "", err
	}
	if strings.TrimSpace(configPath) != "" {
		return pp, configPath, nil
	}
	return pp, pp.ConfigFile, nil
}

func loadSession() (session, error) {
	pp, cfgFile, err := configFile()
	if err != nil {
		return session{}, err
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return session{}, err
	}
	if strings.TrimSpace(proxyURL) != "" {
		cfg.Proxy = strings.TrimSpace(proxyURL)
	}
	if err := cfg.Validate(); err != nil {
		return session{}, fmt.Errorf("invalid configuration %s: %w", cfgFile, err)
	}

	pp, err = paths.ApplyConfig(pp, cfg, environ)
	if err != nil {
		return session{}, err
	}
	pp.ConfigFile = cfgFile
	return session{Paths: pp, Config: cfg}, nil
}

func printJSON(cmd *cobra.Command, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
