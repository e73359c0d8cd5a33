package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jigmet/ladakh-tourism-backend/internal/models"
	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

const (
	activeAlertsKey = "alerts:active"

	alertsChannel   = "alerts:safety"
	bookingsChannel = "bookings:updates"
)

// InitRedis initializes the Redis client
func InitRedis() error {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://redis:6379" // Default Redis address for Docker
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	RedisClient = redis.NewClient(opt)

	// Test the connection
	ctx := context.Background()
	_, err = RedisClient.Ping(ctx).Result()
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return nil
}

// CloseRedis releases the client during shutdown.
func CloseRedis() error {
	if RedisClient == nil {
		return nil
	}
	return RedisClient.Close()
}

// CacheActiveAlerts stores the current active alert list
func CacheActiveAlerts(ctx context.Context, alerts []models.Alert) error {
	data, err := json.Marshal(alerts)
	if err != nil {
		return err
	}
	return RedisClient.Set(ctx, activeAlertsKey, data, 5*time.Minute).Err()
}

// GetCachedActiveAlerts retrieves the cached active alert list
func GetCachedActiveAlerts(ctx context.Context) ([]models.Alert, error) {
	data, err := RedisClient.Get(ctx, activeAlertsKey).Result()
	if err != nil {
		return nil, err
	}

	var alerts []models.Alert
	if err := json.Unmarshal([]byte(data), &alerts); err != nil {
		return nil, err
	}
	return alerts, nil
}

// InvalidateActiveAlerts drops the cached alert list after a write
func InvalidateActiveAlerts(ctx context.Context) error {
	return RedisClient.Del(ctx, activeAlertsKey).Err()
}

// CacheBikeListing stores a bike listing for a status/location filter
func CacheBikeListing(ctx context.Context, status, location string, bikes []models.Bike) error {
	data, err := json.Marshal(bikes)
	if err != nil {
		return err
	}
	key := fmt.Sprintf("bikes:%s:%s", status, location)
	return RedisClient.Set(ctx, key, data, time.Minute).Err()
}

// GetCachedBikeListing retrieves a cached bike listing
func GetCachedBikeListing(ctx context.Context, status, location string) ([]models.Bike, error) {
	key := fmt.Sprintf("bikes:%s:%s", status, location)
	data, err := RedisClient.Get(ctx, key).Result()
	if err != nil {
		return nil, err
	}

	var bikes []models.Bike
	if err := json.Unmarshal([]byte(data), &bikes); err != nil {
		return nil, err
	}
	return bikes, nil
}

// InvalidateBikeListings drops every cached bike listing
func InvalidateBikeListings(ctx context.Context) error {
	keys, err := RedisClient.Keys(ctx, "bikes:*").Result()
	if err != nil || len(keys) == 0 {
		return err
	}
	return RedisClient.Del(ctx, keys...).Err()
}

// PublishAlert mirrors a safety alert to Redis pub/sub for out-of-process
// consumers. Delivery follows Redis semantics: current subscribers only.
func PublishAlert(ctx context.Context, alert models.Alert) error {
	data, err := json.Marshal(alert)
	if err != nil {
		return err
	}
	return RedisClient.Publish(ctx, alertsChannel, data).Err()
}

// PublishBookingUpdate publishes a booking status change to Redis pub/sub
func PublishBookingUpdate(ctx context.Context, bookingID uint, status models.BookingStatus) error {
	updateData := map[string]interface{}{
		"bookingId": bookingID,
		"status":    status,
		"timestamp": time.Now().Unix(),
	}

	data, err := json.Marshal(updateData)
	if err != nil {
		return err
	}
	return RedisClient.Publish(ctx, bookingsChannel, data).Err()
}
