package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/quill-works/docstore/internal/ids"
)

// NewDecomposeCommand creates the decompose command.
func NewDecomposeCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "decompose <id>...",
		Short:        "Decompose identifiers into timestamp and random parts",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				id, err := ids.ParseUntyped(arg)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "t:%s; r:0x%016x\n",
					id.Timestamp().Format(time.RFC3339Nano), id.Random())
			}
			return nil
		},
	}

	return cmd
}
