// File: utils/cache.go
package utils

import (
	"context"
	"fmt"
	"time"

	"oneday/config"

	"github.com/go-redis/redis/v8"
)

var (
	// AuthCacheClient holds live session tokens.
	AuthCacheClient *redis.Client
	// OTPCacheClient holds pending verification codes.
	OTPCacheClient *redis.Client
)

func newRedisClient(db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis db %d: %w", db, err)
	}
	return client, nil
}

// InitRedis connects the auth and OTP clients.
func InitRedis() error {
	var err error
	if AuthCacheClient, err = newRedisClient(config.AppConfig.RedisAuthDB); err != nil {
		return fmt.Errorf("failed to connect to Redis (Auth Cache): %w", err)
	}
	if OTPCacheClient, err = newRedisClient(config.AppConfig.RedisOTPDB); err != nil {
		return fmt.Errorf("failed to connect to Redis (OTP Cache): %w", err)
	}
	return nil
}

// RedisClients lists every connected client for health checks and shutdown.
func RedisClients() []*redis.Client {
	var out []*redis.Client
	for _, c := range []*redis.Client{AuthCacheClient, OTPCacheClient} {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}
