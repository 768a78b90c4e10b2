package query

import (
	"context"
	"time"

	"github.com/yalatech/venuebook-backend/internal/models"
	"github.com/yalatech/venuebook-backend/internal/store"
)

// Stats are the admin dashboard counters.
type Stats struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
}

// Service exposes the read-side projections over the booking store.
type Service struct {
	store store.BookingStore
}

func NewService(st store.BookingStore) *Service {
	return &Service{store: st}
}

// ApprovedFeed is the public "what's booked" view, newest start first.
func (s *Service) ApprovedFeed(ctx context.Context) ([]models.Booking, error) {
	return s.store.ListByStatus(ctx, models.BookingStatusApproved)
}

// Upcoming returns bookings of any status starting at or after now, earliest
// first. Past pending bookings linger in the store until an admin deletes
// them; this view filters them out by time.
func (s *Service) Upcoming(ctx context.Context, now time.Time) ([]models.Booking, error) {
	return s.store.ListUpcoming(ctx, now)
}

// Search returns every booking the given id took part in, as booker or
// participant, newest start first. Participant matching is a substring match
// on the stored list, mirroring the legacy LIKE behavior: id "12" also
// matches a stored "112".
func (s *Service) Search(ctx context.Context, queryID string) ([]models.Booking, error) {
	return s.store.Search(ctx, queryID)
}

// AdminOverview lists every booking with pending entries first.
func (s *Service) AdminOverview(ctx context.Context) ([]models.Booking, error) {
	return s.store.ListAllOrdered(ctx)
}

func (s *Service) DashboardStats(ctx context.Context) (Stats, error) {
	total, err := s.store.CountTotal(ctx)
	if err != nil {
		return Stats{}, err
	}
	pending, err := s.store.CountByStatus(ctx, models.BookingStatusPending)
	if err != nil {
		return Stats{}, err
	}
	approved, err := s.store.CountByStatus(ctx, models.BookingStatusApproved)
	if err != nil {
		return Stats{}, err
	}
	return Stats{Total: total, Pending: pending, Approved: approved}, nil
}
