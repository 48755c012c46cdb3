package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/taqvim/internal/dateutil"
	"github.com/javiermolinar/taqvim/internal/event"
	"github.com/javiermolinar/taqvim/internal/jalali"
)

func (a *App) listCmd() *cobra.Command {
	var (
		startDate string
		endDate   string
		format    string
		latin     bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events in a date range",
		Long: `List all events overlapping a date range.

If no dates are specified, lists today's events.
If only --start is specified, lists events for that single day.
If both --start and --end are specified, lists events in that range (inclusive).`,
		Example: `  taqvim list
  taqvim list --start 1403/01/15
  taqvim list --start 1403/01/15 --end 1403/01/20 --format yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validFormat(format); err != nil {
				return err
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}

			dateRange, err := dateutil.NewDateRange(a.clock, startDate, endDate, a.now())
			if err != nil {
				return err
			}
			start, end, err := dateRange.Span(a.clock)
			if err != nil {
				return err
			}

			events, err := a.repo.ListEventsInRange(context.Background(), start, end)
			if err != nil {
				return fmt.Errorf("listing events: %w", err)
			}

			out := cmd.OutOrStdout()
			if format != FormatText {
				rows := make([]exportEvent, 0, len(events))
				for _, e := range events {
					rows = append(rows, toExportEvent(e))
				}
				return writeStructured(out, format, rows)
			}

			if len(events) == 0 {
				fmt.Fprintln(out, "No events found in the specified date range.")
				return nil
			}

			printGroupedByDay(cmd, events, a.clock, a.numerals(latin))
			return nil
		},
	}

	cmd.Flags().StringVar(&startDate, "start", "", "Start date (default: today)")
	cmd.Flags().StringVar(&endDate, "end", "", "End date (default: start date)")
	cmd.Flags().StringVar(&format, "format", FormatText, "Output format: text, json or yaml")
	cmd.Flags().BoolVar(&latin, "latin", false, "Use Latin digits and transliterated names")
	return cmd
}

// printGroupedByDay prints events under a header for the day they start on.
func printGroupedByDay(cmd *cobra.Command, events []*event.Event, clock jalali.Clock, n jalali.Numerals) {
	out := cmd.OutOrStdout()
	var current jalali.Date
	for i, e := range events {
		d, _ := clock.ToCivil(e.Start)
		if i == 0 || d != current {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "=== %s %s ===\n", jalali.WeekdayName(clock.Weekday(d), n), jalali.Format(d, n))
			current = d
		}
		PrintEventRow(out, e, clock, n)
	}
}
