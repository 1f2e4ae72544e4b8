package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore implementa Store usando contadores no Redis, permitindo que o
// limite seja compartilhado entre múltiplas instâncias da API.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore cria uma nova instância de RedisStore
func NewRedisStore(addr, password string, db int) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("erro ao conectar ao redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

// Increment implementa Store.Increment
func (s *RedisStore) Increment(ctx context.Context, key string, window time.Duration) (int64, error) {
	redisKey := "ratelimit:" + key

	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	// NX garante que a expiração marque o início da janela e não seja renovada
	pipe.ExpireNX(ctx, redisKey, window)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("erro ao incrementar contador no redis: %w", err)
	}

	return incr.Val(), nil
}

// Close fecha a conexão com o Redis
func (s *RedisStore) Close() error {
	return s.client.Close()
}
