package utils

import (
	"context"
	"log"
	"time"

	"spacebook/config"

	"github.com/go-redis/redis/v8"
)

var (
	// AuthCacheClient caches resolved caller identities.
	AuthCacheClient *redis.Client
	// LockClient holds the per-property booking locks.
	LockClient *redis.Client
)

func newRedisClient(db int, name string) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (%s): %v", name, err)
	}
	return client
}

// InitRedis connects every Redis client the API uses.
func InitRedis() {
	GetAuthCacheClient()
	GetLockClient()
}

// GetAuthCacheClient returns the Redis client for identity caching.
func GetAuthCacheClient() *redis.Client {
	if AuthCacheClient == nil {
		AuthCacheClient = newRedisClient(config.AppConfig.RedisAuthDB, "Auth Cache")
	}
	return AuthCacheClient
}

// GetLockClient returns the Redis client for booking locks.
func GetLockClient() *redis.Client {
	if LockClient == nil {
		LockClient = newRedisClient(config.AppConfig.RedisLockDB, "Lock")
	}
	return LockClient
}

// RedisClients lists the initialized clients, for health checks and shutdown.
func RedisClients() []*redis.Client {
	var clients []*redis.Client
	for _, c := range []*redis.Client{AuthCacheClient, LockClient} {
		if c != nil {
			clients = append(clients, c)
		}
	}
	return clients
}
