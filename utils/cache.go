// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"petcare/config"

	"github.com/go-redis/redis/v8"
)

// EventsClient publishes booking domain events.
var EventsClient *redis.Client

// InitEventsClient initializes the Redis client used for event publication.
func InitEventsClient() {
	EventsClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisEventsDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := EventsClient.Ping(ctx).Result(); err != nil {
		// Events are best effort, so the server keeps running without Redis.
		log.Printf("WARNING: failed to connect to Redis (Events): %v", err)
	}
}

// GetEventsClient returns the Redis client for event publication.
func GetEventsClient() *redis.Client {
	if EventsClient == nil {
		InitEventsClient()
	}
	return EventsClient
}
