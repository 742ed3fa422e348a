package commands

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/fmdata/pkg/fmdata"
	"github.com/spf13/cobra"
)

// NewGlobalsCommand creates the globals command group.
func NewGlobalsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "globals",
		Short: "Manage global fields",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set table::field=value...",
		Short: "Set global field values",
		Long: `Set global field values. Globals only live as long as the session, so
this is mostly useful for checking field names and access.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			globals, err := parseGlobals(args)
			if err != nil {
				return err
			}

			return withSession(cmd, false, func(ctx context.Context, client fmdata.Client) error {
				err := client.SetGlobals(ctx, globals...)
				if err != nil {
					return fmt.Errorf("failed to set globals: %w", err)
				}

				_, _ = fmt.Fprintf(stdout, "Set %d global field(s)\n", len(fmdata.MergeGlobals(globals)))

				return nil
			})
		},
	})

	return cmd
}
