package admission

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yalatech/venuebook-backend/internal/catalog"
	"github.com/yalatech/venuebook-backend/internal/models"
	"github.com/yalatech/venuebook-backend/internal/store"
)

var testNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func newTestEngine(limits map[string]int, defaultCapacity int) (*Engine, *store.MemoryStore) {
	st := store.NewMemoryStore()
	cat := catalog.New(limits, defaultCapacity)
	return NewEngine(cat, st, 14*24*time.Hour), st
}

func draftFor(bookerID string, participants []string, resource, date, start, end string) Draft {
	return Draft{
		RequesterName: "Requester " + bookerID,
		BookerID:      bookerID,
		Resource:      resource,
		Participants:  participants,
		Date:          date,
		StartTime:     start,
		EndTime:       end,
	}
}

// seedApproved inserts an approved booking directly, bypassing admission.
func seedApproved(t *testing.T, st *store.MemoryStore, bookerID, participants, resource string, start, end time.Time) uint {
	t.Helper()
	b := models.Booking{
		RequesterName: "Seed " + bookerID,
		BookerID:      bookerID,
		Resource:      resource,
		Participants:  participants,
		StartTime:     start,
		EndTime:       end,
		Status:        models.BookingStatusApproved,
	}
	require.NoError(t, st.Insert(context.Background(), &b))
	return b.ID
}

func TestSubmitSuccess(t *testing.T) {
	engine, st := newTestEngine(map[string]int{"Room A": 2}, 10)

	id, err := engine.Submit(context.Background(),
		draftFor("S1", nil, "Room A", "2026-03-11", "10:00", "11:00"), testNow)
	require.NoError(t, err)
	assert.Equal(t, uint(1), id)

	pending, err := st.ListByStatus(context.Background(), models.BookingStatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "S1", pending[0].BookerID)
	assert.Equal(t, models.BookingStatusPending, pending[0].Status)
	assert.Equal(t, time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC), pending[0].StartTime)
	assert.Equal(t, time.Date(2026, 3, 11, 11, 0, 0, 0, time.UTC), pending[0].EndTime)
}

func TestSubmitTrimsAndDropsEmptyParticipants(t *testing.T) {
	engine, st := newTestEngine(map[string]int{"Room A": 5}, 10)

	_, err := engine.Submit(context.Background(),
		draftFor(" S1 ", []string{" S2 ", "", "S3", "  "}, "Room A", "2026-03-11", "10:00", "11:00"), testNow)
	require.NoError(t, err)

	pending, err := st.ListByStatus(context.Background(), models.BookingStatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "S1", pending[0].BookerID)
	assert.Equal(t, "S2,S3", pending[0].Participants)
}

func TestSubmitCapacity(t *testing.T) {
	tests := []struct {
		name         string
		participants []string
		wantErr      bool
	}{
		{name: "team over capacity", participants: []string{"S3", "S4"}, wantErr: true},
		{name: "team at capacity", participants: []string{"S3"}, wantErr: false},
		{name: "solo booker", participants: nil, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, st := newTestEngine(map[string]int{"Room A": 2}, 10)

			_, err := engine.Submit(context.Background(),
				draftFor("S2", tt.participants, "Room A", "2026-03-11", "10:00", "11:00"), testNow)

			if tt.wantErr {
				var capErr *CapacityExceededError
				require.ErrorAs(t, err, &capErr)
				assert.Equal(t, "Room A", capErr.Resource)
				assert.Equal(t, 2, capErr.Limit)
				assert.Equal(t, 3, capErr.Actual)

				total, _ := st.CountTotal(context.Background())
				assert.Zero(t, total, "rejected submission must not be stored")
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestSubmitUnknownResourceUsesDefaultCapacity(t *testing.T) {
	engine, _ := newTestEngine(map[string]int{"Room A": 20}, 2)

	_, err := engine.Submit(context.Background(),
		draftFor("S1", []string{"S2", "S3"}, "Mystery Hall", "2026-03-11", "10:00", "11:00"), testNow)

	var capErr *CapacityExceededError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, 2, capErr.Limit)
}

func TestSubmitTimeValidation(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		start   string
		end     string
		wantErr any
	}{
		{"malformed date", "not-a-date", "10:00", "11:00", &InvalidTimeFormatError{}},
		{"malformed start", "2026-03-11", "25:99", "11:00", &InvalidTimeFormatError{}},
		{"malformed end", "2026-03-11", "10:00", "eleven", &InvalidTimeFormatError{}},
		{"start in past", "2026-03-09", "10:00", "11:00", &StartInPastError{}},
		{"end before start", "2026-03-11", "11:00", "10:00", &EndBeforeStartError{}},
		{"end equals start", "2026-03-11", "10:00", "10:00", &EndBeforeStartError{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, st := newTestEngine(map[string]int{"Room A": 10}, 10)

			_, err := engine.Submit(context.Background(),
				draftFor("S1", nil, "Room A", tt.date, tt.start, tt.end), testNow)
			require.Error(t, err)

			switch want := tt.wantErr.(type) {
			case *InvalidTimeFormatError:
				assert.ErrorAs(t, err, &want)
			case *StartInPastError:
				assert.ErrorAs(t, err, &want)
			case *EndBeforeStartError:
				assert.ErrorAs(t, err, &want)
			}

			total, _ := st.CountTotal(context.Background())
			assert.Zero(t, total, "rejected submission must not be stored")
		})
	}
}

func TestSubmitCooldown(t *testing.T) {
	t.Run("booker blocked by own recent approved booking", func(t *testing.T) {
		engine, st := newTestEngine(map[string]int{"Room A": 10}, 10)
		seedApproved(t, st, "S1", "", "Room A",
			testNow.Add(-72*time.Hour), testNow.Add(-71*time.Hour))

		_, err := engine.Submit(context.Background(),
			draftFor("S1", nil, "Room B", "2026-03-11", "10:00", "11:00"), testNow)

		var cdErr *CooldownActiveError
		require.ErrorAs(t, err, &cdErr)
		assert.Equal(t, []string{"S1"}, cdErr.BlockedIDs)
	})

	t.Run("participant of past team blocked as new booker", func(t *testing.T) {
		engine, st := newTestEngine(map[string]int{"Room A": 10}, 10)
		seedApproved(t, st, "S1", "S2,S3", "Room A",
			testNow.Add(-72*time.Hour), testNow.Add(-71*time.Hour))

		_, err := engine.Submit(context.Background(),
			draftFor("S2", nil, "Room A", "2026-03-11", "10:00", "11:00"), testNow)

		var cdErr *CooldownActiveError
		require.ErrorAs(t, err, &cdErr)
		assert.Equal(t, []string{"S2"}, cdErr.BlockedIDs)
	})

	t.Run("all offenders reported once, sorted", func(t *testing.T) {
		engine, st := newTestEngine(map[string]int{"Room A": 10}, 10)
		seedApproved(t, st, "S3", "S2", "Room A",
			testNow.Add(-48*time.Hour), testNow.Add(-47*time.Hour))
		seedApproved(t, st, "S2", "S5", "Room B",
			testNow.Add(-24*time.Hour), testNow.Add(-23*time.Hour))

		_, err := engine.Submit(context.Background(),
			draftFor("S5", []string{"S2", "S3", "S4"}, "Room A", "2026-03-11", "10:00", "11:00"), testNow)

		var cdErr *CooldownActiveError
		require.ErrorAs(t, err, &cdErr)
		assert.Equal(t, []string{"S2", "S3", "S5"}, cdErr.BlockedIDs)
	})

	t.Run("booking older than the window does not block", func(t *testing.T) {
		engine, st := newTestEngine(map[string]int{"Room A": 10}, 10)
		seedApproved(t, st, "S1", "", "Room A",
			testNow.Add(-15*24*time.Hour), testNow.Add(-15*24*time.Hour+time.Hour))

		_, err := engine.Submit(context.Background(),
			draftFor("S1", nil, "Room A", "2026-03-11", "10:00", "11:00"), testNow)
		require.NoError(t, err)
	})

	t.Run("pending bookings never trigger cooldown", func(t *testing.T) {
		engine, st := newTestEngine(map[string]int{"Room A": 10}, 10)
		pending := models.Booking{
			BookerID:  "S1",
			Resource:  "Room A",
			StartTime: testNow.Add(-72 * time.Hour),
			EndTime:   testNow.Add(-71 * time.Hour),
			Status:    models.BookingStatusPending,
		}
		require.NoError(t, st.Insert(context.Background(), &pending))

		_, err := engine.Submit(context.Background(),
			draftFor("S1", nil, "Room A", "2026-03-11", "10:00", "11:00"), testNow)
		require.NoError(t, err)
	})
}

func TestSubmitConflict(t *testing.T) {
	t.Run("overlap with approved booking rejected", func(t *testing.T) {
		engine, st := newTestEngine(map[string]int{"Room A": 10}, 10)
		seedApproved(t, st, "S9", "", "Room A",
			time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 11, 11, 0, 0, 0, time.UTC))

		_, err := engine.Submit(context.Background(),
			draftFor("S5", nil, "Room A", "2026-03-11", "10:30", "11:30"), testNow)

		var conflictErr *SlotConflictError
		require.ErrorAs(t, err, &conflictErr)
		assert.Equal(t, "Room A", conflictErr.Resource)

		total, _ := st.CountTotal(context.Background())
		assert.Equal(t, int64(1), total)
	})

	t.Run("adjacent interval allowed", func(t *testing.T) {
		engine, st := newTestEngine(map[string]int{"Room A": 10}, 10)
		seedApproved(t, st, "S9", "", "Room A",
			time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 11, 11, 0, 0, 0, time.UTC))

		_, err := engine.Submit(context.Background(),
			draftFor("S5", nil, "Room A", "2026-03-11", "11:00", "12:00"), testNow)
		require.NoError(t, err)
	})

	t.Run("same window on another resource allowed", func(t *testing.T) {
		engine, st := newTestEngine(map[string]int{"Room A": 10, "Room B": 10}, 10)
		seedApproved(t, st, "S9", "", "Room A",
			time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 11, 11, 0, 0, 0, time.UTC))

		_, err := engine.Submit(context.Background(),
			draftFor("S5", nil, "Room B", "2026-03-11", "10:00", "11:00"), testNow)
		require.NoError(t, err)
	})

	t.Run("two pending requests may share a slot", func(t *testing.T) {
		engine, st := newTestEngine(map[string]int{"Room A": 10}, 10)

		_, err := engine.Submit(context.Background(),
			draftFor("S5", nil, "Room A", "2026-03-11", "10:00", "11:00"), testNow)
		require.NoError(t, err)

		_, err = engine.Submit(context.Background(),
			draftFor("S6", nil, "Room A", "2026-03-11", "10:00", "11:00"), testNow)
		require.NoError(t, err)

		total, _ := st.CountTotal(context.Background())
		assert.Equal(t, int64(2), total)
	})
}
