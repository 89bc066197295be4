// file: cmd/config.go
// version: 1.0.0
// guid: c2e4a9d0-5b8f-4f1e-8a61-9d3b7e2f0a15

package cmd

import (
	"fmt"

	"github.com/jdfalk/isbn-renamer/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration after merging defaults, the config file,
ISBN_RENAMER_* environment variables and flags, as YAML.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := yaml.Marshal(config.AppConfig)
			if err != nil {
				return fmt.Errorf("failed to encode configuration: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
