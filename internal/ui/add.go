package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/taqvim/internal/dateutil"
	"github.com/javiermolinar/taqvim/internal/event"
	"github.com/javiermolinar/taqvim/internal/jalali"
)

func (a *App) addCmd() *cobra.Command {
	var (
		description string
		date        string
		endDate     string
		start       string
		end         string
		color       string
	)

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a new event",
		Long: `Add a new event to the calendar.

Example:
  taqvim add "جلسه تیم" --description "برنامه‌ریزی هفته" --date 1403/01/15 --start 09:00 --end 10:30 --color emerald`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			startAt, endAt, err := a.parseInterval(date, endDate, start, end)
			if err != nil {
				return err
			}
			if description == "" {
				description = args[0]
			}

			e, err := event.New(args[0], description, startAt, endAt, color)
			if err != nil {
				return err
			}

			if err := a.repo.CreateEvent(context.Background(), e); err != nil {
				return fmt.Errorf("creating event: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created event %s: %s\n", e.ID, e.Title)
			PrintEventRow(cmd.OutOrStdout(), e, a.clock, a.config.Numerals())
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "Description (default: the title)")
	cmd.Flags().StringVar(&date, "date", "", "Start date (default: today)")
	cmd.Flags().StringVar(&endDate, "end-date", "", "End date for multi-day events (default: start date)")
	cmd.Flags().StringVar(&start, "start", "", "Start time (HH:MM, required)")
	cmd.Flags().StringVar(&end, "end", "", "End time (HH:MM, required)")
	cmd.Flags().StringVar(&color, "color", string(event.DefaultColor), "Color: blue, indigo, pink, red, orange, amber or emerald")

	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

// parseInterval combines Jalali dates and HH:MM times into instants. An
// empty endDate means the start date.
func (a *App) parseInterval(date, endDate, start, end string) (time.Time, time.Time, error) {
	now := a.now()
	startDay, err := dateutil.ParseRelativeDate(a.clock, date, now)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	endDay := startDay
	if endDate != "" {
		if endDay, err = dateutil.ParseRelativeDate(a.clock, endDate, now); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}

	startAt, err := dateutil.Combine(a.clock, startDay, start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	endAt, err := dateutil.Combine(a.clock, endDay, end)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return startAt, endAt, nil
}

// civilDate returns the Jalali date of t, or the zero date if t is outside
// the supported era.
func (a *App) civilDate(t time.Time) jalali.Date {
	d, _ := a.clock.ToCivil(t)
	return d
}
