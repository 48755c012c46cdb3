package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete [id]",
		Aliases: []string{"rm"},
		Short:   "Delete an event",
		Long: `Delete an event permanently.

Example:
  taqvim delete 3f0c...`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			ctx := context.Background()
			e, err := a.repo.GetEvent(ctx, args[0])
			if err != nil {
				return fmt.Errorf("fetching event: %w", err)
			}

			if err := a.repo.DeleteEvent(ctx, e.ID); err != nil {
				return fmt.Errorf("deleting event: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted event %s: %s\n", e.ID, e.Title)
			return nil
		},
	}
}
