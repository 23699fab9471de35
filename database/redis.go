package database

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	config "github.com/omondi3768/turf_booking/configs"
)

// ConnectRedis returns the listing-cache client, or nil when REDIS_URL is
// unset or the server is unreachable. The application runs fine without it;
// only listing freshness is affected.
func ConnectRedis() *redis.Client {
	url := config.Config("REDIS_URL")
	if url == "" {
		log.Println("REDIS_URL not set, listing cache disabled")
		return nil
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("Invalid REDIS_URL, listing cache disabled: %v", err)
		return nil
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis unreachable, listing cache disabled: %v", err)
		return nil
	}

	log.Println("Redis connected successfully")
	return client
}
