package cache

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

// NewRedis connects to Redis for short-TTL caching of upstream lookups.
// Returns nil when addr is empty or the server is unreachable; callers
// treat a nil client as "no cache" and go straight to the upstream.
func NewRedis(addr string) *redis.Client {
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("[Redis] unreachable at %s, caching disabled: %v", addr, err)
		return nil
	}

	log.Printf("[Redis] connected to %s", addr)
	return client
}
