package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/taqvim/internal/jalali"
)

func (a *App) showCmd() *cobra.Command {
	var format string
	var latin bool

	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show one event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validFormat(format); err != nil {
				return err
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}

			e, err := a.repo.GetEvent(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("fetching event: %w", err)
			}

			out := cmd.OutOrStdout()
			if format != FormatText {
				return writeStructured(out, format, toExportEvent(e))
			}

			n := a.numerals(latin)
			start, end := a.civilDate(e.Start), a.civilDate(e.End)
			fmt.Fprintf(out, "%s\n", formatHeader(e.Title))
			fmt.Fprintf(out, "  %s\n\n", e.Description)
			fmt.Fprintf(out, "  ID:       %s\n", e.ID)
			fmt.Fprintf(out, "  Start:    %s %s %s\n", jalali.WeekdayName(a.clock.Weekday(start), n),
				jalali.Format(start, n), jalali.FormatDigits(e.Start.Format("15:04"), n))
			fmt.Fprintf(out, "  End:      %s %s %s\n", jalali.WeekdayName(a.clock.Weekday(end), n),
				jalali.Format(end, n), jalali.FormatDigits(e.End.Format("15:04"), n))
			fmt.Fprintf(out, "  Duration: %s\n", FormatDuration(int(e.Duration().Minutes())))
			fmt.Fprintf(out, "  Color:    %s\n", formatEvent(e.Color, string(e.Color)))
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", FormatText, "Output format: text, json or yaml")
	cmd.Flags().BoolVar(&latin, "latin", false, "Use Latin digits and transliterated names")
	return cmd
}
