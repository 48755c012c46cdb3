package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/taqvim/internal/db"
	"github.com/javiermolinar/taqvim/internal/event"
	"github.com/javiermolinar/taqvim/internal/ics"
)

// ImportResult reports what an import did.
type ImportResult struct {
	Imported   int
	Duplicates []string // IDs already present in the destination
	Skipped    []ics.Skip
}

func (a *App) importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import events from an iCalendar file or another database",
		Long: `Import events into the current database.

Files ending in .db, .sqlite or .sqlite3 are read as another taqvim
database; anything else is parsed as iCalendar (.ics). Recurring entries
contribute their first occurrence only. Events whose ID already exists
are left untouched.

Example:
  taqvim import ~/Downloads/holidays.ics
  taqvim import /path/to/other.db`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			sourcePath, err := resolvePath(args[0])
			if err != nil {
				return err
			}

			info, err := os.Stat(sourcePath)
			if err != nil {
				if os.IsNotExist(err) {
					return fmt.Errorf("source does not exist: %s", sourcePath)
				}
				return fmt.Errorf("checking source: %w", err)
			}
			if info.IsDir() {
				return fmt.Errorf("source path is a directory: %s", sourcePath)
			}

			ctx := context.Background()
			var res *ImportResult
			if isDatabase(sourcePath) {
				destPath, err := resolvePath(a.config.Storage.DBPath)
				if err != nil {
					return err
				}
				if sourcePath == destPath {
					return fmt.Errorf("source database matches current database")
				}
				res, err = importDatabase(ctx, a.repo, sourcePath)
				if err != nil {
					return err
				}
			} else {
				f, err := os.Open(sourcePath)
				if err != nil {
					return fmt.Errorf("opening calendar: %w", err)
				}
				defer func() { _ = f.Close() }()

				res, err = importCalendar(ctx, a.repo, f, ics.Options{
					Location: a.clock.Location(),
					Now:      a.now(),
				})
				if err != nil {
					return err
				}
			}

			printImportResult(cmd.OutOrStdout(), res, sourcePath)
			return nil
		},
	}

	return cmd
}

func printImportResult(w io.Writer, res *ImportResult, source string) {
	fmt.Fprintf(w, "Imported %d events from %s\n", res.Imported, source)
	if len(res.Duplicates) > 0 {
		fmt.Fprintln(w, formatMuted(fmt.Sprintf("  %d already present", len(res.Duplicates))))
	}
	for _, s := range res.Skipped {
		fmt.Fprintln(w, formatWarn(fmt.Sprintf("  ! skipped %q: %v", s.UID, s.Err)))
	}
}

// importCalendar parses an iCalendar stream and stores the new events.
func importCalendar(ctx context.Context, dest event.Repository, r io.Reader, opts ics.Options) (*ImportResult, error) {
	parsed, err := ics.Parse(r, opts)
	if err != nil {
		return nil, err
	}
	res, err := storeNew(ctx, dest, parsed.Events)
	if err != nil {
		return nil, err
	}
	res.Skipped = parsed.Skipped
	return res, nil
}

// importDatabase copies every event of another database.
func importDatabase(ctx context.Context, dest event.Repository, sourcePath string) (*ImportResult, error) {
	sourceRepo, err := db.New(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("opening source database: %w", err)
	}
	defer func() { _ = sourceRepo.Close() }()

	events, err := sourceRepo.ListAllEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing source events: %w", err)
	}
	return storeNew(ctx, dest, events)
}

// storeNew writes the events whose IDs are not yet in dest in one batch.
func storeNew(ctx context.Context, dest event.Repository, events []*event.Event) (*ImportResult, error) {
	res := &ImportResult{}
	fresh := make([]*event.Event, 0, len(events))
	seen := make(map[string]bool, len(events))
	for _, e := range events {
		if seen[e.ID] {
			res.Duplicates = append(res.Duplicates, e.ID)
			continue
		}
		seen[e.ID] = true

		_, err := dest.GetEvent(ctx, e.ID)
		switch {
		case err == nil:
			res.Duplicates = append(res.Duplicates, e.ID)
			continue
		case !errors.Is(err, event.ErrEventNotFound):
			return nil, fmt.Errorf("checking event %s: %w", e.ID, err)
		}

		if e.CreatedAt.IsZero() {
			e.CreatedAt = time.Now()
		}
		fresh = append(fresh, e)
	}

	if len(fresh) == 0 {
		return res, nil
	}
	if err := dest.CreateEvents(ctx, fresh); err != nil {
		return nil, fmt.Errorf("importing events: %w", err)
	}
	res.Imported = len(fresh)
	return res, nil
}

func isDatabase(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
