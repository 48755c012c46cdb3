package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/taqvim/internal/config"
	"github.com/javiermolinar/taqvim/internal/db"
	"github.com/javiermolinar/taqvim/internal/debuglog"
	"github.com/javiermolinar/taqvim/internal/event"
	"github.com/javiermolinar/taqvim/internal/grid"
	"github.com/javiermolinar/taqvim/internal/jalali"
	"github.com/javiermolinar/taqvim/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo   event.Repository
	config *config.Config
	root   *cobra.Command
	debug  bool // Enable debug logging

	clock jalali.Clock
	now   func() time.Time
	width int // terminal width for text output; 0 means detect
}

// NewApp creates a new CLI application. A nil repo is opened lazily from the
// configured database path by commands that need it.
func NewApp(repo event.Repository, cfg *config.Config) *App {
	a := &App{
		repo:   repo,
		config: cfg,
		clock:  jalali.Local(),
		now:    time.Now,
	}

	a.root = &cobra.Command{
		Use:   "taqvim",
		Short: "A Jalali calendar for the terminal",
		Long: `Taqvim lays out your events on the Jalali (Solar Hijri) calendar.

Run without a command to open the interactive calendar, or use the
month, week and day commands to print a view.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return debuglog.Init(a.debug, "")
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			debuglog.Close()
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			return tui.Run(a.repo, a.config, a.clock)
		},
	}

	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (writes "+debuglog.DefaultPath+")")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.viewCmd(grid.ModeMonth))
	a.root.AddCommand(a.viewCmd(grid.ModeWeek))
	a.root.AddCommand(a.viewCmd(grid.ModeDay))
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.editCmd())
	a.root.AddCommand(a.deleteCmd())
	a.root.AddCommand(a.showCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.importCmd())
	a.root.AddCommand(a.seedCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "taqvim %s (commit: %s)\n", Version, Commit)
		},
	}
}

// ensureRepo opens the configured database if no repository was injected.
func (a *App) ensureRepo() error {
	if a.repo != nil {
		return nil
	}
	repo, err := db.New(a.config.Storage.DBPath, db.WithLocation(a.clock.Location()))
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	a.repo = repo
	return nil
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// SetOutput redirects command output. Used by tests.
func (a *App) SetOutput(w io.Writer) {
	a.root.SetOut(w)
	a.root.SetErr(w)
}

// SetArgs overrides os.Args[1:]. Used by tests.
func (a *App) SetArgs(args []string) {
	a.root.SetArgs(args)
}

// Close releases the repository.
func (a *App) Close() error {
	if a.repo == nil {
		return nil
	}
	return a.repo.Close()
}
