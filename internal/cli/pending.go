package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quill-works/docstore/internal/config"
)

// NewPendingCommand creates the pending command.
func NewPendingCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "pending",
		Short:        "List documents with undelivered outgoing messages",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if rootOpts.Config == "" {
				return fmt.Errorf("pending requires --config")
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

			pending, err := pool.PendingIDs(cmd.Context())
			if err != nil {
				return err
			}
			for _, id := range pending {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}

	return cmd
}
