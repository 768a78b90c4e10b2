package admission

import (
	"fmt"
	"strings"
	"time"
)

// InvalidTimeFormatError reports a date or time field that failed to parse.
type InvalidTimeFormatError struct {
	Field string
	Value string
}

func (e *InvalidTimeFormatError) Error() string {
	return fmt.Sprintf("invalid %s value %q", e.Field, e.Value)
}

// StartInPastError reports a start time before the submission instant.
type StartInPastError struct {
	Start time.Time
	Now   time.Time
}

func (e *StartInPastError) Error() string {
	return fmt.Sprintf("start time %s is in the past", e.Start.Format(time.RFC3339))
}

// EndBeforeStartError reports an end time at or before the start time.
type EndBeforeStartError struct {
	Start time.Time
	End   time.Time
}

func (e *EndBeforeStartError) Error() string {
	return fmt.Sprintf("end time %s must be after start time %s",
		e.End.Format(time.RFC3339), e.Start.Format(time.RFC3339))
}

// CapacityExceededError reports a team larger than the resource allows.
type CapacityExceededError struct {
	Resource string
	Limit    int
	Actual   int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("%s holds at most %d people, got %d", e.Resource, e.Limit, e.Actual)
}

// CooldownActiveError lists every team member blocked by a recent approved
// booking. BlockedIDs is deduplicated and sorted.
type CooldownActiveError struct {
	BlockedIDs []string
}

func (e *CooldownActiveError) Error() string {
	return fmt.Sprintf("cooldown active for: %s", strings.Join(e.BlockedIDs, ", "))
}

// SlotConflictError reports an approved booking already occupying the window.
type SlotConflictError struct {
	Resource string
}

func (e *SlotConflictError) Error() string {
	return fmt.Sprintf("%s is already booked in this time window", e.Resource)
}
