package database

import (
	"context"
	"konsulin-assessment-engine/internal/app/config"
	"log"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisPingTimeout = 5 * time.Second

func NewRedisClient(driverConfig *config.DriverConfig) *redis.Client {
	addr := net.JoinHostPort(driverConfig.Redis.Host, driverConfig.Redis.Port)
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: driverConfig.Redis.Password,
		DB:       driverConfig.Redis.Database,
		PoolSize: driverConfig.Redis.PoolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("Could not connect to Redis at %s: %v", addr, err)
	}
	log.Printf("Successfully connected to redis at %s (db %d)", addr, driverConfig.Redis.Database)

	return rdb
}
