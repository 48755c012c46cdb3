package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/taqvim/internal/dateutil"
	"github.com/javiermolinar/taqvim/internal/debuglog"
	"github.com/javiermolinar/taqvim/internal/grid"
	"github.com/javiermolinar/taqvim/internal/jalali"
	"github.com/javiermolinar/taqvim/internal/summary"
)

// viewFlags are shared by the month, week and day commands.
type viewFlags struct {
	date      string
	format    string
	weekStart string
	capacity  int
	lenient   bool
	latin     bool
	stats     bool
	noColor   bool
}

var viewShort = map[grid.Mode]string{
	grid.ModeMonth: "Print the month grid",
	grid.ModeWeek:  "Print the week",
	grid.ModeDay:   "Print one day hour by hour",
}

func (a *App) viewCmd(mode grid.Mode) *cobra.Command {
	var f viewFlags

	cmd := &cobra.Command{
		Use:   string(mode),
		Short: viewShort[mode],
		Long: fmt.Sprintf(`Lay out the events of the %[1]s containing --date.

Dates are Jalali, written YYYY/MM/DD (Persian digits allowed), or one of
today, tomorrow, yesterday, next-week or a weekday name.`, mode),
		Example: fmt.Sprintf(`  taqvim %[1]s
  taqvim %[1]s --date 1403/01/15
  taqvim %[1]s --date tomorrow --format json`, mode),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validFormat(f.format); err != nil {
				return err
			}
			if f.noColor {
				DisableColor()
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}

			opts, err := a.gridOptions(cmd, f)
			if err != nil {
				return err
			}

			now := a.now()
			ref, err := dateutil.ParseRelativeDate(a.clock, f.date, now)
			if err != nil {
				return err
			}

			l, err := summary.LoadLayout(context.Background(), a.repo, grid.NewBuilder(a.clock), summary.LoadOptions{
				Reference: ref,
				Mode:      mode,
				Now:       now,
				Grid:      opts,
			})
			if err != nil {
				return fmt.Errorf("building %s view: %w", mode, err)
			}
			debuglog.LogBuild("cli", l)

			out := cmd.OutOrStdout()
			if f.format != FormatText {
				return writeStructured(out, f.format, toExportLayout(l))
			}

			RenderLayout(out, l, RenderOpts{
				Numerals: a.numerals(f.latin),
				Width:    a.width,
				Stats:    f.stats,
			})
			return nil
		},
	}

	cmd.Flags().StringVar(&f.date, "date", "", "Reference date (default: today)")
	cmd.Flags().StringVar(&f.format, "format", FormatText, "Output format: text, json or yaml")
	cmd.Flags().StringVar(&f.weekStart, "week-start", "", "First day of the week (default from config)")
	cmd.Flags().IntVar(&f.capacity, "capacity", grid.DefaultCapacity, "Events shown per day before \"+N more\"")
	cmd.Flags().BoolVar(&f.lenient, "lenient", false, "Fall back to defaults instead of failing on bad settings")
	cmd.Flags().BoolVar(&f.latin, "latin", false, "Use Latin digits and transliterated names")
	cmd.Flags().BoolVar(&f.stats, "stats", mode != grid.ModeDay, "Print summary statistics")
	cmd.Flags().BoolVar(&f.noColor, "no-color", false, "Disable color output")
	return cmd
}

// gridOptions merges command flags over the configured grid options.
func (a *App) gridOptions(cmd *cobra.Command, f viewFlags) (grid.Options, error) {
	opts := a.config.GridOptions()
	if f.lenient {
		opts.UseDefaultsOnInvalid = true
	}
	if cmd.Flags().Changed("capacity") {
		opts.Capacity = f.capacity
	}
	if f.weekStart != "" {
		w, err := jalali.ParseWeekday(f.weekStart)
		switch {
		case err == nil:
			opts.WeekStart = w
		case opts.UseDefaultsOnInvalid:
			opts.WeekStart = jalali.Weekday(-1)
		default:
			return grid.Options{}, fmt.Errorf("%w: %v", grid.ErrConfiguration, err)
		}
	}
	return opts, nil
}

func (a *App) numerals(latin bool) jalali.Numerals {
	if latin {
		return jalali.LatinDigits
	}
	return a.config.Numerals()
}
