package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"vitrifiye-studio/internal/dto"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const resultKeyPrefix = "quiz_result:"

// ResultCache is a read-through cache for resolved quiz results. A nil cache
// or a nil client disables caching; Redis errors are logged and treated as misses.
type ResultCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewResultCache(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *ResultCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &ResultCache{
		rdb:    rdb,
		ttl:    ttl,
		logger: logger,
	}
}

func resultKey(id int64) string {
	return fmt.Sprintf("%s%d", resultKeyPrefix, id)
}

func (c *ResultCache) enabled() bool {
	return c != nil && c.rdb != nil
}

func (c *ResultCache) Get(ctx context.Context, id int64) (*dto.QuizResultResponse, bool) {
	if !c.enabled() {
		return nil, false
	}

	data, err := c.rdb.Get(ctx, resultKey(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("Result cache read failed", zap.Int64("result_id", id), zap.Error(err))
		}
		return nil, false
	}

	var res dto.QuizResultResponse
	if err := json.Unmarshal(data, &res); err != nil {
		c.logger.Warn("Dropping malformed cached result", zap.Int64("result_id", id), zap.Error(err))
		c.Invalidate(ctx, id)
		return nil, false
	}
	return &res, true
}

func (c *ResultCache) Set(ctx context.Context, res *dto.QuizResultResponse) {
	if !c.enabled() || res == nil {
		return
	}

	data, err := json.Marshal(res)
	if err != nil {
		c.logger.Warn("Failed to encode result for cache", zap.Int64("result_id", res.ID), zap.Error(err))
		return
	}

	if err := c.rdb.Set(ctx, resultKey(res.ID), data, c.ttl).Err(); err != nil {
		c.logger.Warn("Result cache write failed", zap.Int64("result_id", res.ID), zap.Error(err))
	}
}

func (c *ResultCache) Invalidate(ctx context.Context, id int64) {
	if !c.enabled() {
		return
	}
	if err := c.rdb.Del(ctx, resultKey(id)).Err(); err != nil {
		c.logger.Warn("Result cache delete failed", zap.Int64("result_id", id), zap.Error(err))
	}
}
