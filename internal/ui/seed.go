package ui

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/taqvim/internal/event"
)

func (a *App) seedCmd() *cobra.Command {
	var (
		count int
		days  int
		seed  uint64
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the database with sample events",
		Long: `Generate sample events starting at the beginning of the current
Jalali month. Useful for trying out the grid views.

Example:
  taqvim seed --count 200 --days 60 --seed 42`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			opts := event.MockOptions{Count: count, Days: days}
			if cmd.Flags().Changed("seed") {
				opts.Rand = rand.New(rand.NewPCG(seed, seed))
			}

			events, err := event.GenerateMock(a.clock, a.now(), opts)
			if err != nil {
				return fmt.Errorf("generating events: %w", err)
			}

			res, err := storeNew(context.Background(), a.repo, events)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %d sample events\n", res.Imported)
			if len(res.Duplicates) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatMuted(fmt.Sprintf("  %d already present", len(res.Duplicates))))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&count, "count", 120, "Number of events")
	cmd.Flags().IntVar(&days, "days", 90, "Number of days to spread them over")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Random seed for reproducible data")
	return cmd
}
