package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quill-works/docstore/internal/config"
)

// NewSetupCommand creates the setup command.
func NewSetupCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "setup",
		Short:        "Create the database and apply the schema",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if rootOpts.Config == "" {
				return fmt.Errorf("setup requires --config")
			}
			cfg, err := config.Load(rootOpts.Config)
			if err != nil {
				return err
			}

			pool, err := cfg.Storage.Open()
			if err != nil {
				return err
			}
			defer pool.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "database ready: %s\n", cfg.Storage.Path)
			return nil
		},
	}

	return cmd
}
