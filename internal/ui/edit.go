package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/taqvim/internal/event"
)

func (a *App) editCmd() *cobra.Command {
	var (
		title       string
		description string
		date        string
		endDate     string
		start       string
		end         string
		color       string
	)

	cmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Edit an existing event",
		Long: `Change fields of an event. Flags that are not given keep their
current value. Moving the date keeps the times; a multi-day event
moved without --end-date ends on its new start date.

Example:
  taqvim edit 3f0c... --date tomorrow
  taqvim edit 3f0c... --start 14:00 --end 15:00 --color red`,
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

			flags := cmd.Flags()
			if flags.Changed("title") {
				e.Title = title
			}
			if flags.Changed("description") {
				e.Description = description
			}
			if flags.Changed("color") {
				c, err := event.ParseColor(color)
				if err != nil {
					return err
				}
				e.Color = c
			}

			if date != "" || endDate != "" || start != "" || end != "" {
				if date == "" {
					date = a.civilDate(e.Start).String()
				}
				if endDate == "" && date == a.civilDate(e.Start).String() {
					endDate = a.civilDate(e.End).String()
				}
				if start == "" {
					start = e.Start.Format("15:04")
				}
				if end == "" {
					end = e.End.Format("15:04")
				}
				if e.Start, e.End, err = a.parseInterval(date, endDate, start, end); err != nil {
					return err
				}
			}

			if err := e.Validate(); err != nil {
				return err
			}
			if err := a.repo.UpdateEvent(ctx, e); err != nil {
				return fmt.Errorf("updating event: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated event %s\n", e.ID)
			PrintEventRow(cmd.OutOrStdout(), e, a.clock, a.config.Numerals())
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().StringVar(&date, "date", "", "New start date")
	cmd.Flags().StringVar(&endDate, "end-date", "", "New end date")
	cmd.Flags().StringVar(&start, "start", "", "New start time (HH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "New end time (HH:MM)")
	cmd.Flags().StringVar(&color, "color", "", "New color")
	return cmd
}
