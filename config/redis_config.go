package config

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisClient struct {
	Client *redis.Client
}

// NewRedisClient создает клиента Redis и проверяет соединение пингом.
// Клиент создается один раз при старте и передается зависимостям явно.
func NewRedisClient(cfg *RedisConfig) (*RedisClient, error) {
	if cfg == nil {
		return nil, fmt.Errorf("конфигурация Redis не задана")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ошибка подключения к Redis: %w", err)
	}

	log.Printf("Подключение к Redis выполнено (%s, db %d)", cfg.Addr, cfg.DB)
	return &RedisClient{Client: client}, nil
}

func (r *RedisClient) Close() error {
	if err := r.Client.Close(); err != nil {
		return fmt.Errorf("ошибка закрытия соединения с Redis: %w", err)
	}
	return nil
}
