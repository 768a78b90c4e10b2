package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yalatech/venuebook-backend/internal/admission"
	"github.com/yalatech/venuebook-backend/internal/query"
	"github.com/yalatech/venuebook-backend/internal/services"
)

type SubmitBookingInput struct {
	RequesterName string   `json:"requesterName" binding:"required"`
	BookerID      string   `json:"bookerId" binding:"required"`
	Resource      string   `json:"resource" binding:"required"`
	Participants  []string `json:"participants"`
	Date          string   `json:"date" binding:"required"`
	StartTime     string   `json:"startTime" binding:"required"`
	EndTime       string   `json:"endTime" binding:"required"`
}

// SubmitBooking runs a request through the admission engine.
func SubmitBooking(engine *admission.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input SubmitBookingInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		draft := admission.Draft{
			RequesterName: input.RequesterName,
			BookerID:      input.BookerID,
			Resource:      input.Resource,
			Participants:  input.Participants,
			Date:          input.Date,
			StartTime:     input.StartTime,
			EndTime:       input.EndTime,
		}

		id, err := engine.Submit(c.Request.Context(), draft, time.Now())
		if err != nil {
			renderAdmissionError(c, err)
			return
		}

		services.InvalidateBookingCaches(c.Request.Context())

		c.JSON(201, gin.H{
			"id":      id,
			"status":  "Pending",
			"message": "Booking recorded, awaiting approval",
		})
	}
}

// renderAdmissionError maps each rejection to a status code and a structured
// body the caller can render. Every rejection is deterministic, never retried.
func renderAdmissionError(c *gin.Context, err error) {
	var capErr *admission.CapacityExceededError
	if errors.As(err, &capErr) {
		c.JSON(400, gin.H{
			"error":    capErr.Error(),
			"resource": capErr.Resource,
			"limit":    capErr.Limit,
			"actual":   capErr.Actual,
		})
		return
	}

	var timeErr *admission.InvalidTimeFormatError
	if errors.As(err, &timeErr) {
		c.JSON(400, gin.H{"error": timeErr.Error(), "field": timeErr.Field})
		return
	}

	var pastErr *admission.StartInPastError
	if errors.As(err, &pastErr) {
		c.JSON(400, gin.H{"error": "cannot book a slot in the past"})
		return
	}

	var orderErr *admission.EndBeforeStartError
	if errors.As(err, &orderErr) {
		c.JSON(400, gin.H{"error": "end time must be after start time"})
		return
	}

	var cooldownErr *admission.CooldownActiveError
	if errors.As(err, &cooldownErr) {
		c.JSON(409, gin.H{
			"error":      cooldownErr.Error(),
			"blockedIds": cooldownErr.BlockedIDs,
		})
		return
	}

	var conflictErr *admission.SlotConflictError
	if errors.As(err, &conflictErr) {
		c.JSON(409, gin.H{
			"error":    conflictErr.Error(),
			"resource": conflictErr.Resource,
		})
		return
	}

	c.JSON(500, gin.H{"error": "Failed to submit booking"})
}

// GetApprovedBookings serves the public feed, newest start first.
func GetApprovedBookings(q *query.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if cached, ok := services.GetCachedApprovedFeed(ctx); ok {
			c.JSON(200, cached)
			return
		}

		bookings, err := q.ApprovedFeed(ctx)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch bookings"})
			return
		}

		services.CacheApprovedFeed(ctx, bookings)
		c.JSON(200, bookings)
	}
}

// GetUpcomingBookings lists future bookings of any status. With an id query
// parameter it switches to the personal history lookup instead.
func GetUpcomingBookings(q *query.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if queryID := c.Query("id"); queryID != "" {
			bookings, err := q.Search(c.Request.Context(), queryID)
			if err != nil {
				c.JSON(500, gin.H{"error": "Failed to search bookings"})
				return
			}
			c.JSON(200, bookings)
			return
		}

		bookings, err := q.Upcoming(c.Request.Context(), time.Now())
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch bookings"})
			return
		}
		c.JSON(200, bookings)
	}
}

// SearchBookings returns every booking an id took part in.
func SearchBookings(q *query.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		queryID := c.Query("id")
		if queryID == "" {
			c.JSON(400, gin.H{"error": "id query parameter required"})
			return
		}

		bookings, err := q.Search(c.Request.Context(), queryID)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to search bookings"})
			return
		}
		c.JSON(200, bookings)
	}
}
