package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const redisKeyPrefix = "session:"

// RedisConfig содержит параметры подключения к Redis.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisClient создает клиент Redis и проверяет соединение.
func NewRedisClient(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ошибка подключения к Redis: %w", err)
	}

	zap.S().Infof("[Session] Подключение к Redis %s установлено", cfg.Addr)
	return client, nil
}

// RedisStore хранит сессии в Redis в виде JSON под ключом session:{id}.
type RedisStore struct {
	client redis.Cmdable
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore создает хранилище сессий поверх клиента Redis.
func NewRedisStore(client redis.Cmdable) *RedisStore {
	return &RedisStore{client: client}
}

// Load читает сессию из Redis.
func (s *RedisStore) Load(ctx context.Context, id string) (*Data, error) {
	raw, err := s.client.Get(ctx, redisKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка чтения сессии из Redis: %w", err)
	}

	var data Data
	if err = json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("ошибка декодирования сессии: %w", err)
	}
	return &data, nil
}

// Save записывает сессию в Redis с временем жизни ttl.
func (s *RedisStore) Save(ctx context.Context, id string, data *Data, ttl time.Duration) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("ошибка кодирования сессии: %w", err)
	}
	if err = s.client.Set(ctx, redisKeyPrefix+id, raw, ttl).Err(); err != nil {
		return fmt.Errorf("ошибка записи сессии в Redis: %w", err)
	}
	return nil
}

// Delete удаляет сессию из Redis.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, redisKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("ошибка удаления сессии из Redis: %w", err)
	}
	return nil
}
