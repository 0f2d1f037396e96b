package cart

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	myErr "muskan-shop/internal/types/errors"
)

// maxUpdateAttempts число попыток Update при конкурентной записи того же ключа
const maxUpdateAttempts = 100

// RedisStore хранит корзины посетителей в Redis
type RedisStore struct {
	RedisClient *redis.Client
	Logger      *zap.SugaredLogger
	ttl         time.Duration
}

// NewRedisStore ttl = 0 хранит корзину без срока жизни
func NewRedisStore(redisClient *redis.Client, logger *zap.SugaredLogger, ttl time.Duration) *RedisStore {
	return &RedisStore{
		RedisClient: redisClient,
		Logger:      logger,
		ttl:         ttl,
	}
}

func (s *RedisStore) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := s.RedisClient.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, myErr.ErrNotFound
		}

		s.Logger.Errorw("Failed get cart from Redis", zap.Error(err), zap.String("key", key))
		return nil, err
	}

	return data, nil
}

func (s *RedisStore) Save(ctx context.Context, key string, data []byte) error {
	if err := s.RedisClient.Set(ctx, key, data, s.ttl).Err(); err != nil {
		s.Logger.Errorw("Failed save cart to Redis", zap.Error(err), zap.String("key", key))
		return err
	}

	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.RedisClient.Del(ctx, key).Err(); err != nil {
		s.Logger.Errorw("Failed delete cart from Redis", zap.Error(err), zap.String("key", key))
		return err
	}

	return nil
}

// Update читает и пишет ключ под WATCH, при конфликте транзакция повторяется
func (s *RedisStore) Update(ctx context.Context, key string, fn func(data []byte) ([]byte, error)) error {
	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}

		updated, err := fn(data)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, updated, s.ttl)
			return nil
		})
		return err
	}

	for i := 0; i < maxUpdateAttempts; i++ {
		err := s.RedisClient.Watch(ctx, txf, key)
		if err == nil {
			return nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}

		s.Logger.Errorw("Failed update cart in Redis", zap.Error(err), zap.String("key", key))
		return err
	}

	s.Logger.Errorw("Cart update conflicts exhausted", zap.String("key", key))
	return redis.TxFailedErr
}
