package event

import (
	"context"
	"time"
)

// Repository defines the storage interface for events. The grid engine never
// calls it; callers load events and hand them to the engine.
//
// Implementations may store instants at whole-second precision. Start and End
// then come back truncated to the second, and events whose starts differed
// only below a second are ordered by ID.
type Repository interface {
	// CreateEvent adds a new event to the repository.
	// Returns ErrDuplicateID if the ID is already stored.
	CreateEvent(ctx context.Context, e *Event) error

	// CreateEvents adds multiple events in a single transaction.
	CreateEvents(ctx context.Context, events []*Event) error

	// GetEvent retrieves an event by ID.
	// Returns ErrEventNotFound if no event has that ID.
	GetEvent(ctx context.Context, id string) (*Event, error)

	// UpdateEvent replaces the stored fields of an existing event.
	UpdateEvent(ctx context.Context, e *Event) error

	// DeleteEvent removes an event by ID.
	DeleteEvent(ctx context.Context, id string) error

	// ListEventsInRange returns every event that intersects [start, end),
	// ordered by start time and ID.
	ListEventsInRange(ctx context.Context, start, end time.Time) ([]*Event, error)

	// ListAllEvents returns every stored event ordered by start time and ID.
	ListAllEvents(ctx context.Context) ([]*Event, error)

	// Close releases any resources held by the repository.
	Close() error
}
