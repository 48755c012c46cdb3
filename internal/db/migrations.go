package db

import "fmt"

// migrate runs database migrations.
// Instants are stored as Unix seconds so range queries compare correctly
// regardless of the zone an event was created in. Sub-second parts are
// dropped; Unix nanoseconds would overflow int64 outside 1678-2262, well
// inside the supported Jalali years.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS events (
			id          TEXT PRIMARY KEY,
			title       TEXT NOT NULL,
			description TEXT NOT NULL,
			start_at    INTEGER NOT NULL,
			end_at      INTEGER NOT NULL CHECK(end_at >= start_at),
			color       TEXT NOT NULL DEFAULT 'blue'
			            CHECK(color IN ('blue', 'indigo', 'pink', 'red', 'orange', 'amber', 'emerald')),
			created_at  TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_events_start ON events(start_at);
		CREATE INDEX IF NOT EXISTS idx_events_end ON events(end_at);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating events table: %w", err)
	}

	return nil
}
