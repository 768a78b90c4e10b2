package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/yalatech/venuebook-backend/config"
	"github.com/yalatech/venuebook-backend/internal/lifecycle"
	"github.com/yalatech/venuebook-backend/internal/query"
	"github.com/yalatech/venuebook-backend/internal/services"
	"github.com/yalatech/venuebook-backend/pkg/utils"
)

type AdminLoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AdminLogin checks the configured credential and issues an admin token.
func AdminLogin(cfg config.AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input AdminLoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		if input.Username != cfg.AdminUsername {
			c.JSON(401, gin.H{"error": "Invalid credentials"})
			return
		}
		if err := bcrypt.CompareHashAndPassword(
			[]byte(cfg.AdminPasswordHash), []byte(input.Password)); err != nil {
			c.JSON(401, gin.H{"error": "Invalid credentials"})
			return
		}

		token, err := utils.GenerateAdminToken(input.Username, cfg.JWTSecret, cfg.TokenTTL)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to generate token"})
			return
		}

		c.JSON(200, gin.H{"token": token})
	}
}

// GetDashboard serves the admin overview: counters, every booking with
// pending entries first, and the public URL for the QR code.
func GetDashboard(q *query.Service, publicURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		stats, ok := services.GetCachedDashboardStats(ctx)
		if !ok {
			var err error
			stats, err = q.DashboardStats(ctx)
			if err != nil {
				c.JSON(500, gin.H{"error": "Failed to fetch dashboard stats"})
				return
			}
			services.CacheDashboardStats(ctx, stats)
		}

		bookings, err := q.AdminOverview(ctx)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch bookings"})
			return
		}

		c.JSON(200, gin.H{
			"stats":     stats,
			"bookings":  bookings,
			"serverUrl": publicURL,
		})
	}
}

// ApproveBooking marks a booking Approved. Approving twice is a no-op.
func ApproveBooking(lm *lifecycle.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid booking id"})
			return
		}

		if err := lm.Approve(c.Request.Context(), uint(id), c.GetBool("isAdmin")); err != nil {
			renderLifecycleError(c, err)
			return
		}

		services.InvalidateBookingCaches(c.Request.Context())
		c.JSON(200, gin.H{"message": "Booking approved"})
	}
}

// DeleteBooking removes a booking of any status; missing ids succeed.
func DeleteBooking(lm *lifecycle.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid booking id"})
			return
		}

		if err := lm.Delete(c.Request.Context(), uint(id), c.GetBool("isAdmin")); err != nil {
			renderLifecycleError(c, err)
			return
		}

		services.InvalidateBookingCaches(c.Request.Context())
		c.JSON(200, gin.H{"message": "Booking deleted"})
	}
}

func renderLifecycleError(c *gin.Context, err error) {
	if errors.Is(err, lifecycle.ErrUnauthorized) {
		c.JSON(403, gin.H{"error": "Unauthorized"})
		return
	}
	c.JSON(500, gin.H{"error": "Failed to update booking"})
}
