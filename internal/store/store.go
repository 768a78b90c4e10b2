package store

import (
	"context"
	"time"

	"github.com/yalatech/venuebook-backend/internal/models"
)

// BookingStore is the durable record set of bookings. It performs no business
// validation; admission rules live in the admission package.
type BookingStore interface {
	// Insert persists a new booking and assigns its id.
	Insert(ctx context.Context, booking *models.Booking) error

	// ListByStatus returns bookings with the given status, newest start first.
	ListByStatus(ctx context.Context, status models.BookingStatus) ([]models.Booking, error)

	// ListAllOrdered returns every booking ordered by status descending then
	// start time descending, the admin overview ordering.
	ListAllOrdered(ctx context.Context) ([]models.Booking, error)

	// ListOverlapping returns approved bookings for the resource whose
	// [start, end) interval intersects the given half-open window.
	ListOverlapping(ctx context.Context, resource string, start, end time.Time) ([]models.Booking, error)

	// ListApprovedAfter returns approved bookings starting strictly after
	// cutoff, used for cooldown lookups.
	ListApprovedAfter(ctx context.Context, cutoff time.Time) ([]models.Booking, error)

	// ListUpcoming returns bookings of any status starting at or after now,
	// earliest first.
	ListUpcoming(ctx context.Context, now time.Time) ([]models.Booking, error)

	// Search returns bookings where the booker id matches exactly or the
	// stored participant list contains queryID as a substring, newest start
	// first. The substring match mirrors the legacy LIKE semantics.
	Search(ctx context.Context, queryID string) ([]models.Booking, error)

	// UpdateStatus sets the status of a booking. A missing id is a silent
	// no-op, not an error.
	UpdateStatus(ctx context.Context, id uint, status models.BookingStatus) error

	// Delete removes a booking of any status. A missing id is a silent no-op.
	Delete(ctx context.Context, id uint) error

	CountTotal(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status models.BookingStatus) (int64, error)

	// Atomically runs fn against a store view whose reads and writes commit
	// as a single serializable unit. Concurrent submissions for the same
	// window cannot both pass the conflict check inside such a unit.
	Atomically(ctx context.Context, fn func(BookingStore) error) error
}
