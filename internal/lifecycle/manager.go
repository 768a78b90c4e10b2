package lifecycle

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/yalatech/venuebook-backend/internal/models"
	"github.com/yalatech/venuebook-backend/internal/store"
)

// ErrUnauthorized is returned when a caller without the admin capability
// attempts an administrative transition.
var ErrUnauthorized = errors.New("administrator privileges required")

// Manager applies the administrative transitions on existing bookings.
// Approving an already-approved booking and deleting a missing id are both
// deliberate no-ops.
type Manager struct {
	store store.BookingStore
}

func NewManager(st store.BookingStore) *Manager {
	return &Manager{store: st}
}

// Approve marks a booking Approved. Idempotent; a missing id is a no-op.
func (m *Manager) Approve(ctx context.Context, id uint, isAdmin bool) error {
	if !isAdmin {
		return ErrUnauthorized
	}
	if err := m.store.UpdateStatus(ctx, id, models.BookingStatusApproved); err != nil {
		return err
	}
	logrus.WithField("bookingId", id).Info("Booking approved")
	return nil
}

// Delete removes a booking of any status. A missing id is a no-op; rejection
// of a pending request is modeled as deletion.
func (m *Manager) Delete(ctx context.Context, id uint, isAdmin bool) error {
	if !isAdmin {
		return ErrUnauthorized
	}
	if err := m.store.Delete(ctx, id); err != nil {
		return err
	}
	logrus.WithField("bookingId", id).Info("Booking deleted")
	return nil
}
