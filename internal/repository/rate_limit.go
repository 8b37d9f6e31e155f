package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"medical_chat/pkg/logger"
)

type RateLimitRepository interface {
	// Hit увеличивает счетчик для ключа и возвращает текущее значение в окне
	Hit(ctx context.Context, key string, window time.Duration) (int64, error)
}

type rateLimitRepository struct {
	rdb *redis.Client
	log logger.Logger
}

func NewRateLimitRepository(rdb *redis.Client, log logger.Logger) RateLimitRepository {
	return &rateLimitRepository{rdb: rdb, log: log}
}

func (r *rateLimitRepository) Hit(ctx context.Context, key string, window time.Duration) (int64, error) {
	count, err := r.rdb.Incr(ctx, "ratelimit:"+key).Result()
	if err != nil {
		r.log.Error("Failed to increment rate limit counter", "error", err, "key", key)
		return 0, err
	}

	// Окно начинается с первого запроса
	if count == 1 {
		r.rdb.Expire(ctx, "ratelimit:"+key, window)
	}

	return count, nil
}
