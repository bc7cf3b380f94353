package common

import (
	"context"
	"time"

	"pilotconnect/internal/logging"

	"github.com/redis/go-redis/v9"
)

const redisPingTimeout = 5 * time.Second

// NewRedisClient builds the shared cache client. An unreachable server is
// logged, not fatal: go-redis redials on the next command.
func NewRedisClient(addr, password string, db int) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  redisPingTimeout,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logging.Warn("Redis unreachable, directory cache will miss until it returns", "addr", addr, "db", db, "error", err)
		return client
	}

	logging.Info("Connected to Redis", "addr", addr, "db", db)
	return client
}
