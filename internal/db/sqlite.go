// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/taqvim/internal/event"
)

// SQLite implements event.Repository using SQLite. Instants are kept at
// whole-second precision.
type SQLite struct {
	db  *sql.DB
	loc *time.Location
}

var _ event.Repository = (*SQLite)(nil)

// Option configures a SQLite repository.
type Option func(*SQLite)

// WithLocation sets the zone returned instants are expressed in.
// The default is time.Local.
func WithLocation(loc *time.Location) Option {
	return func(s *SQLite) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// New creates a new SQLite repository and runs migrations.
func New(path string, opts ...Option) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db, loc: time.Local}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

const eventColumns = `id, title, description, start_at, end_at, color, created_at`

const insertEvent = `
	INSERT INTO events (` + eventColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?)
`

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// CreateEvent adds a new event to the repository.
// Returns event.ErrDuplicateID if an event with the same ID exists.
func (s *SQLite) CreateEvent(ctx context.Context, e *event.Event) error {
	if err := checkDuplicate(ctx, s.db, e.ID); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, insertEvent, insertArgs(e)...); err != nil {
		return fmt.Errorf("inserting event: %w", err)
	}
	return nil
}

// CreateEvents adds multiple events in a single transaction. Nothing is
// written if any event fails.
func (s *SQLite) CreateEvents(ctx context.Context, events []*event.Event) error {
	if len(events) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(events))
	for _, e := range events {
		if seen[e.ID] {
			return fmt.Errorf("%w: %s", event.ErrDuplicateID, e.ID)
		}
		seen[e.ID] = true
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, e := range events {
		if err := checkDuplicate(ctx, tx, e.ID); err != nil {
			return err
		}
	}

	stmt, err := tx.PrepareContext(ctx, insertEvent)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, e := range events {
		if _, err := stmt.ExecContext(ctx, insertArgs(e)...); err != nil {
			return fmt.Errorf("inserting event %q: %w", e.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// GetEvent retrieves an event by ID.
// Returns event.ErrEventNotFound if no event has that ID.
func (s *SQLite) GetEvent(ctx context.Context, id string) (*event.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = ?`

	e, err := s.scanEvent(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", event.ErrEventNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying event: %w", err)
	}
	return e, nil
}

// UpdateEvent replaces the title, description, times and color of an
// existing event.
func (s *SQLite) UpdateEvent(ctx context.Context, e *event.Event) error {
	query := `
		UPDATE events
		SET title = ?, description = ?, start_at = ?, end_at = ?, color = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		e.Title,
		e.Description,
		e.Start.Unix(),
		e.End.Unix(),
		string(e.Color),
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("updating event: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("%w: %s", event.ErrEventNotFound, e.ID)
	}
	return nil
}

// DeleteEvent removes an event by ID.
func (s *SQLite) DeleteEvent(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("%w: %s", event.ErrEventNotFound, id)
	}
	return nil
}

// ListEventsInRange returns every event overlapping [start, end): events
// that start before end and do not end before start.
func (s *SQLite) ListEventsInRange(ctx context.Context, start, end time.Time) ([]*event.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE start_at < ? AND end_at >= ?
		ORDER BY start_at, id
	`
	return s.listEvents(ctx, query, end.Unix(), start.Unix())
}

// ListAllEvents returns every stored event.
func (s *SQLite) ListAllEvents(ctx context.Context) ([]*event.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY start_at, id`
	return s.listEvents(ctx, query)
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) listEvents(ctx context.Context, query string, args ...any) ([]*event.Event, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var events []*event.Event
	for rows.Next() {
		e, err := s.scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating events: %w", err)
	}
	return events, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func (s *SQLite) scanEvent(row scanner) (*event.Event, error) {
	var (
		e         event.Event
		startAt   int64
		endAt     int64
		color     string
		createdAt string
	)

	if err := row.Scan(&e.ID, &e.Title, &e.Description, &startAt, &endAt, &color, &createdAt); err != nil {
		return nil, err
	}

	e.Start = time.Unix(startAt, 0).In(s.loc)
	e.End = time.Unix(endAt, 0).In(s.loc)
	e.Color = event.Color(color)

	var err error
	e.CreatedAt, err = parseTimestamp(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created at: %w", err)
	}
	e.CreatedAt = e.CreatedAt.In(s.loc)
	return &e, nil
}

func insertArgs(e *event.Event) []any {
	createdAt := e.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	color := e.Color
	if color == "" {
		color = event.DefaultColor
	}
	return []any{
		e.ID,
		e.Title,
		e.Description,
		e.Start.Unix(),
		e.End.Unix(),
		string(color),
		createdAt.UTC().Format(time.RFC3339),
	}
}

func checkDuplicate(ctx context.Context, q queryer, id string) error {
	var one int
	err := q.QueryRowContext(ctx, `SELECT 1 FROM events WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("checking id: %w", err)
	}
	return fmt.Errorf("%w: %s", event.ErrDuplicateID, id)
}

// parseTimestamp parses the formats SQLite might hand back for a timestamp.
func parseTimestamp(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339,
		"2006-01-02T15:04:05Z",
		"2006-01-02 15:04:05",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp format: %s", s)
}
