package admission

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yalatech/venuebook-backend/internal/catalog"
	"github.com/yalatech/venuebook-backend/internal/models"
	"github.com/yalatech/venuebook-backend/internal/store"
)

// dateTimeLayout combines the form's date and clock fields, both on the same
// calendar day.
const dateTimeLayout = "2006-01-02T15:04"

// Draft is a booking request before validation. Date, StartTime and EndTime
// arrive as the raw form fields ("2006-01-02", "15:04").
type Draft struct {
	RequesterName string
	BookerID      string
	Resource      string
	Participants  []string
	Date          string
	StartTime     string
	EndTime       string
}

// Engine validates a draft against the catalog and store and commits it
// atomically. Every check short-circuits; nothing is written on any failure
// path.
type Engine struct {
	catalog  *catalog.Catalog
	store    store.BookingStore
	cooldown time.Duration
}

func NewEngine(cat *catalog.Catalog, st store.BookingStore, cooldown time.Duration) *Engine {
	return &Engine{catalog: cat, store: st, cooldown: cooldown}
}

// Submit runs the admission pipeline and persists the booking as Pending on
// success, returning its assigned id. The cooldown read, conflict read and
// insert run as one serializable unit so two concurrent submissions for the
// same window cannot both pass.
func (e *Engine) Submit(ctx context.Context, draft Draft, now time.Time) (uint, error) {
	bookerID := strings.TrimSpace(draft.BookerID)
	participants := cleanParticipants(draft.Participants)
	team := append([]string{bookerID}, participants...)

	limit := e.catalog.Capacity(draft.Resource)
	if len(team) > limit {
		return 0, &CapacityExceededError{Resource: draft.Resource, Limit: limit, Actual: len(team)}
	}

	start, err := parseAt(draft.Date, draft.StartTime, now.Location())
	if err != nil {
		return 0, &InvalidTimeFormatError{Field: "start time", Value: draft.Date + "T" + draft.StartTime}
	}
	end, err := parseAt(draft.Date, draft.EndTime, now.Location())
	if err != nil {
		return 0, &InvalidTimeFormatError{Field: "end time", Value: draft.Date + "T" + draft.EndTime}
	}

	if start.Before(now) {
		return 0, &StartInPastError{Start: start, Now: now}
	}
	if !end.After(start) {
		return 0, &EndBeforeStartError{Start: start, End: end}
	}

	booking := models.Booking{
		RequesterName: draft.RequesterName,
		BookerID:      bookerID,
		Resource:      draft.Resource,
		Participants:  models.JoinParticipants(participants),
		StartTime:     start,
		EndTime:       end,
		Status:        models.BookingStatusPending,
	}

	err = e.store.Atomically(ctx, func(tx store.BookingStore) error {
		blocked, err := e.blockedMembers(ctx, tx, team, now)
		if err != nil {
			return err
		}
		if len(blocked) > 0 {
			return &CooldownActiveError{BlockedIDs: blocked}
		}

		overlapping, err := tx.ListOverlapping(ctx, draft.Resource, start, end)
		if err != nil {
			return err
		}
		if len(overlapping) > 0 {
			return &SlotConflictError{Resource: draft.Resource}
		}

		return tx.Insert(ctx, &booking)
	})
	if err != nil {
		return 0, err
	}

	logrus.WithFields(logrus.Fields{
		"bookingId": booking.ID,
		"resource":  booking.Resource,
		"bookerId":  booking.BookerID,
		"teamSize":  len(team),
	}).Info("Booking admitted")

	return booking.ID, nil
}

// blockedMembers returns every id in team that also appears in the team of an
// approved booking whose own start time falls inside the trailing cooldown
// window. The window is anchored to past start times, not to the requested
// slot, so the check is purely identity-based.
func (e *Engine) blockedMembers(ctx context.Context, tx store.BookingStore, team []string, now time.Time) ([]string, error) {
	recent, err := tx.ListApprovedAfter(ctx, now.Add(-e.cooldown))
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var blocked []string
	for _, past := range recent {
		pastTeam := make(map[string]bool)
		for _, id := range past.Team() {
			pastTeam[id] = true
		}
		for _, member := range team {
			if pastTeam[member] && !seen[member] {
				seen[member] = true
				blocked = append(blocked, member)
			}
		}
	}
	sort.Strings(blocked)
	return blocked, nil
}

func cleanParticipants(raw []string) []string {
	var ids []string
	for _, id := range raw {
		id = strings.TrimSpace(id)
		if id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

func parseAt(date, clock string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(dateTimeLayout, date+"T"+clock, loc)
}
