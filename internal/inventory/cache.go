package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const cacheKey = "muskan-inventory"

// CachedRepository держит снимок остатков в Redis.
// Ошибки кэша не возвращаются наружу, запрос уходит в базу
type CachedRepository struct {
	Repo        InventoryRepo
	RedisClient *redis.Client
	Logger      *zap.SugaredLogger
	TTL         time.Duration
}

func NewCachedRepository(repo InventoryRepo, redisClient *redis.Client, logger *zap.SugaredLogger, ttl time.Duration) *CachedRepository {
	return &CachedRepository{
		Repo:        repo,
		RedisClient: redisClient,
		Logger:      logger,
		TTL:         ttl,
	}
}

func (c *CachedRepository) ListAll(ctx context.Context) (map[string]Status, error) {
	data, err := c.RedisClient.Get(ctx, cacheKey).Bytes()
	switch {
	case err == nil:
		var cached map[string]Status
		errDecode := json.Unmarshal(data, &cached)
		if errDecode == nil {
			return cached, nil
		}
		c.Logger.Warnw("broken inventory cache, reloading", "err", errDecode)
	case !errors.Is(err, redis.Nil):
		c.Logger.Warnw("inventory cache unavailable", "err", err)
	}

	result, err := c.Repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(result); err == nil {
		if err := c.RedisClient.Set(ctx, cacheKey, data, c.TTL).Err(); err != nil {
			c.Logger.Warnw("failed to cache inventory", "err", err)
		}
	}

	return result, nil
}

func (c *CachedRepository) GetByProductID(ctx context.Context, productID string) (*Status, error) {
	return c.Repo.GetByProductID(ctx, productID)
}
