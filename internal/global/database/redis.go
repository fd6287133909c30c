package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"innovation-hub/config"
	"innovation-hub/internal/global/sentry/tracing"
)

var Redis *redis.Client

// OpenRedis 连接并 PING 一次，失败时关闭客户端
func OpenRedis(ctx context.Context, c config.Redis) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", c.Host, c.Port),
		Password: c.Password,
		DB:       c.DB,
	})
	if tracing.IsEnabled() {
		client.AddHook(tracing.NewRedisHook())
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

func InitRedis() error {
	client, err := OpenRedis(context.Background(), config.Get().Redis)
	if err != nil {
		return err
	}
	Redis = client
	return nil
}
