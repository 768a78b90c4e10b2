package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/yalatech/venuebook-backend/internal/models"
)

// MemoryStore keeps bookings in process memory behind a single mutex. It is
// the store used in tests and as a development fallback when no database is
// configured; semantics match the gorm implementation.
type MemoryStore struct {
	mu     sync.Mutex
	nextID uint
	rows   []models.Booking
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

func (s *MemoryStore) Insert(ctx context.Context, booking *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memTx{s}).Insert(ctx, booking)
}

func (s *MemoryStore) ListByStatus(ctx context.Context, status models.BookingStatus) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memTx{s}).ListByStatus(ctx, status)
}

func (s *MemoryStore) ListAllOrdered(ctx context.Context) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memTx{s}).ListAllOrdered(ctx)
}

func (s *MemoryStore) ListOverlapping(ctx context.Context, resource string, start, end time.Time) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memTx{s}).ListOverlapping(ctx, resource, start, end)
}

func (s *MemoryStore) ListApprovedAfter(ctx context.Context, cutoff time.Time) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memTx{s}).ListApprovedAfter(ctx, cutoff)
}

func (s *MemoryStore) ListUpcoming(ctx context.Context, now time.Time) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memTx{s}).ListUpcoming(ctx, now)
}

func (s *MemoryStore) Search(ctx context.Context, queryID string) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memTx{s}).Search(ctx, queryID)
}

func (s *MemoryStore) UpdateStatus(ctx context.Context, id uint, status models.BookingStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memTx{s}).UpdateStatus(ctx, id, status)
}

func (s *MemoryStore) Delete(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memTx{s}).Delete(ctx, id)
}

func (s *MemoryStore) CountTotal(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memTx{s}).CountTotal(ctx)
}

func (s *MemoryStore) CountByStatus(ctx context.Context, status models.BookingStatus) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memTx{s}).CountByStatus(ctx, status)
}

// Atomically holds the store lock for the whole callback, giving fn the same
// check-then-act isolation a serializable transaction provides.
func (s *MemoryStore) Atomically(ctx context.Context, fn func(BookingStore) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&memTx{s})
}

// memTx is a view of MemoryStore that assumes the lock is already held.
type memTx struct {
	s *MemoryStore
}

func (t *memTx) Insert(_ context.Context, booking *models.Booking) error {
	booking.ID = t.s.nextID
	t.s.nextID++
	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now
	t.s.rows = append(t.s.rows, *booking)
	return nil
}

func (t *memTx) ListByStatus(_ context.Context, status models.BookingStatus) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range t.s.rows {
		if b.Status == status {
			out = append(out, b)
		}
	}
	sortByStartDesc(out)
	return out, nil
}

func (t *memTx) ListAllOrdered(_ context.Context) ([]models.Booking, error) {
	out := append([]models.Booking(nil), t.s.rows...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Status != out[j].Status {
			return out[i].Status > out[j].Status
		}
		return out[i].StartTime.After(out[j].StartTime)
	})
	return out, nil
}

func (t *memTx) ListOverlapping(_ context.Context, resource string, start, end time.Time) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range t.s.rows {
		if b.Resource != resource || b.Status != models.BookingStatusApproved {
			continue
		}
		// half-open intervals: touching endpoints do not overlap
		if b.EndTime.After(start) && b.StartTime.Before(end) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (t *memTx) ListApprovedAfter(_ context.Context, cutoff time.Time) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range t.s.rows {
		if b.Status == models.BookingStatusApproved && b.StartTime.After(cutoff) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (t *memTx) ListUpcoming(_ context.Context, now time.Time) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range t.s.rows {
		if !b.StartTime.Before(now) {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out, nil
}

func (t *memTx) Search(_ context.Context, queryID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range t.s.rows {
		if b.BookerID == queryID || strings.Contains(b.Participants, queryID) {
			out = append(out, b)
		}
	}
	sortByStartDesc(out)
	return out, nil
}

func (t *memTx) UpdateStatus(_ context.Context, id uint, status models.BookingStatus) error {
	for i := range t.s.rows {
		if t.s.rows[i].ID == id {
			t.s.rows[i].Status = status
			t.s.rows[i].UpdatedAt = time.Now()
			return nil
		}
	}
	return nil
}

func (t *memTx) Delete(_ context.Context, id uint) error {
	for i := range t.s.rows {
		if t.s.rows[i].ID == id {
			t.s.rows = append(t.s.rows[:i], t.s.rows[i+1:]...)
			return nil
		}
	}
	return nil
}

func (t *memTx) CountTotal(_ context.Context) (int64, error) {
	return int64(len(t.s.rows)), nil
}

func (t *memTx) CountByStatus(_ context.Context, status models.BookingStatus) (int64, error) {
	var count int64
	for _, b := range t.s.rows {
		if b.Status == status {
			count++
		}
	}
	return count, nil
}

func (t *memTx) Atomically(ctx context.Context, fn func(BookingStore) error) error {
	// already inside the critical section
	return fn(t)
}

func sortByStartDesc(bookings []models.Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].StartTime.After(bookings[j].StartTime)
	})
}
