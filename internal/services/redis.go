package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yalatech/venuebook-backend/internal/models"
	"github.com/yalatech/venuebook-backend/internal/query"
)

var RedisClient *redis.Client

const (
	dashboardStatsKey = "dashboard:stats"
	approvedFeedKey   = "feed:approved"

	statsTTL = 30 * time.Second
	feedTTL  = 30 * time.Second
)

// InitRedis initializes the shared Redis client. Caching is optional; when
// the client stays nil every read goes straight to the store.
func InitRedis(redisURL string) error {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opt)

	ctx := context.Background()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %v", err)
	}

	RedisClient = client
	return nil
}

// CacheDashboardStats stores dashboard counters for a short window.
func CacheDashboardStats(ctx context.Context, stats query.Stats) error {
	if RedisClient == nil {
		return nil
	}
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return RedisClient.Set(ctx, dashboardStatsKey, data, statsTTL).Err()
}

// GetCachedDashboardStats returns cached counters, or ok=false on a miss or
// when caching is disabled.
func GetCachedDashboardStats(ctx context.Context) (query.Stats, bool) {
	if RedisClient == nil {
		return query.Stats{}, false
	}
	data, err := RedisClient.Get(ctx, dashboardStatsKey).Result()
	if err != nil {
		return query.Stats{}, false
	}
	var stats query.Stats
	if err := json.Unmarshal([]byte(data), &stats); err != nil {
		return query.Stats{}, false
	}
	return stats, true
}

// CacheApprovedFeed stores the public feed for a short window.
func CacheApprovedFeed(ctx context.Context, bookings []models.Booking) error {
	if RedisClient == nil {
		return nil
	}
	data, err := json.Marshal(bookings)
	if err != nil {
		return err
	}
	return RedisClient.Set(ctx, approvedFeedKey, data, feedTTL).Err()
}

// GetCachedApprovedFeed returns the cached feed, or ok=false on a miss or
// when caching is disabled.
func GetCachedApprovedFeed(ctx context.Context) ([]models.Booking, bool) {
	if RedisClient == nil {
		return nil, false
	}
	data, err := RedisClient.Get(ctx, approvedFeedKey).Result()
	if err != nil {
		return nil, false
	}
	var bookings []models.Booking
	if err := json.Unmarshal([]byte(data), &bookings); err != nil {
		return nil, false
	}
	return bookings, true
}

// InvalidateBookingCaches drops cached projections after any mutation.
func InvalidateBookingCaches(ctx context.Context) {
	if RedisClient == nil {
		return
	}
	RedisClient.Del(ctx, dashboardStatsKey, approvedFeedKey)
}
