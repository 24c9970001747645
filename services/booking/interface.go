package booking

import (
	"context"

	"slotbook/models"
)

// BookingService is the availability/booking engine over the backing
// spreadsheet. Conflicts ("slot already taken", "nothing to cancel") are
// reported as false booleans, never as errors.
type BookingService interface {
	// GetDirectory returns the location to provider mapping, cache-first.
	GetDirectory(ctx context.Context) (models.Directory, error)

	// AvailableDays returns the sorted date-sheet names within the scan
	// horizon that have at least one open slot for the location and provider.
	// An empty provider means any provider.
	AvailableDays(ctx context.Context, location, provider string) ([]string, error)

	// FreeTimes returns the open slot times for one date, deduplicated and
	// sorted. A missing date sheet yields an empty result, not an error.
	FreeTimes(ctx context.Context, location, provider, date string) ([]string, error)

	// Reserve writes occupant into the first open slot matching the
	// selection. Returns false when no matching open slot remains.
	Reserve(ctx context.Context, sel models.Selection, occupant string) (bool, error)

	// Cancel clears the slot matching the selection if occupant holds it.
	Cancel(ctx context.Context, sel models.Selection, occupant string) (bool, error)

	// UpcomingBookings returns the occupant's reservations within the scan
	// horizon, sorted by date and time.
	UpcomingBookings(ctx context.Context, occupant string) ([]models.BookingRecord, error)

	// Warm refreshes the sheet list and directory into the metadata cache.
	Warm(ctx context.Context) error
}

// SessionStore keeps per-client booking sessions with TTL eviction.
type SessionStore interface {
	Get(ctx context.Context, clientID string) (*models.BookingSession, error)
	Set(ctx context.Context, session *models.BookingSession) error
	Clear(ctx context.Context, clientID string) error
}

// ReminderScheduler enqueues an appointment reminder after a successful
// reservation. Scheduling failures never fail the reservation itself.
type ReminderScheduler interface {
	Schedule(ctx context.Context, record models.BookingRecord, occupant string) error
}
