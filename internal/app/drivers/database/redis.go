package database

import (
	"context"
	"fmt"
	"lesson-display-service/internal/app/config"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func NewRedisClient(driverConfig *config.DriverConfig, log *zap.Logger) *redis.Client {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", driverConfig.Redis.Host, driverConfig.Redis.Port),
		Password: driverConfig.Redis.Password,
		DB:       driverConfig.Redis.DB,
	})

	_, err := rdb.Ping(ctx).Result()
	if err != nil {
		log.Fatal("Could not connect to Redis", zap.Error(err))
	}

	log.Info("Successfully connected to Redis", zap.String("addr", rdb.Options().Addr))
	return rdb
}
