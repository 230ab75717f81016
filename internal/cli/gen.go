package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quill-works/docstore/internal/ids"
)

// GenOptions holds flags for the gen command.
type GenOptions struct {
	*RootOptions
	Count int
}

// NewGenCommand creates the gen command.
func NewGenCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:          "gen",
		Short:        "Generate identifiers",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Count < 1 {
				return fmt.Errorf("count must be at least 1, got %d", opts.Count)
			}
			gen := ids.NewGenerator()
			for i := 0; i < opts.Count; i++ {
				fmt.Fprintln(cmd.OutOrStdout(), gen.Untyped())
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&opts.Count, "count", "n", 1, "number of identifiers to generate")

	return cmd
}
