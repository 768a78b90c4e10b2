package models

import (
	"strings"
	"time"
)

type BookingStatus string

const (
	BookingStatusPending  BookingStatus = "Pending"
	BookingStatusApproved BookingStatus = "Approved"
)

// Booking is a reservation of a single venue for a time window.
// Participants holds the team members excluding the booker, stored as a
// comma-joined list. Rows are hard-deleted: rejection is modeled as removal,
// there is no Rejected status.
type Booking struct {
	ID            uint          `json:"id" gorm:"primaryKey"`
	RequesterName string        `json:"requesterName" gorm:"not null"`
	BookerID      string        `json:"bookerId" gorm:"not null;index"`
	Resource      string        `json:"resource" gorm:"not null;index"`
	Participants  string        `json:"participants"`
	StartTime     time.Time     `json:"startTime" gorm:"not null;index"`
	EndTime       time.Time     `json:"endTime" gorm:"not null"`
	Status        BookingStatus `json:"status" gorm:"not null;default:'Pending'"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// SplitParticipants parses a comma-joined participant list, trimming
// whitespace and dropping empty entries.
func SplitParticipants(raw string) []string {
	var ids []string
	for _, id := range strings.Split(raw, ",") {
		id = strings.TrimSpace(id)
		if id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// JoinParticipants renders participant ids in the stored wire form.
func JoinParticipants(ids []string) string {
	return strings.Join(ids, ",")
}

// ParticipantIDs returns the cleaned participant list for this booking.
func (b *Booking) ParticipantIDs() []string {
	return SplitParticipants(b.Participants)
}

// Team returns the booker plus all participants.
func (b *Booking) Team() []string {
	return append([]string{b.BookerID}, b.ParticipantIDs()...)
}
