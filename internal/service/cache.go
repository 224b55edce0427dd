package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	moduleTestKeyPrefix = "lms:module_test:"
	moduleTestCacheTTL  = 10 * time.Minute
)

// AssessmentCache 缓存组装好的模块测试载荷，客户端为 nil 时全部退化为直查
type AssessmentCache struct {
	Client *redis.Client
	Logger *zap.Logger
}

func NewAssessmentCache(client *redis.Client, logger *zap.Logger) *AssessmentCache {
	return &AssessmentCache{Client: client, Logger: logger}
}

func (c *AssessmentCache) key(testID uint) string {
	return fmt.Sprintf("%s%d", moduleTestKeyPrefix, testID)
}

func (c *AssessmentCache) GetModuleTest(ctx context.Context, testID uint, dest interface{}) bool {
	if c == nil || c.Client == nil {
		return false
	}
	data, err := c.Client.Get(ctx, c.key(testID)).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		if c.Logger != nil {
			c.Logger.Warn("缓存载荷解析失败", zap.Uint("testID", testID), zap.Error(err))
		}
		return false
	}
	return true
}

func (c *AssessmentCache) SetModuleTest(ctx context.Context, testID uint, payload interface{}) {
	if c == nil || c.Client == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	if err := c.Client.Set(ctx, c.key(testID), data, moduleTestCacheTTL).Err(); err != nil && c.Logger != nil {
		c.Logger.Warn("写入测试缓存失败", zap.Uint("testID", testID), zap.Error(err))
	}
}

func (c *AssessmentCache) Invalidate(testID uint) {
	if c == nil || c.Client == nil {
		return
	}
	_ = c.Client.Del(context.Background(), c.key(testID)).Err()
}

// InvalidateAll 清掉全部测试缓存，用于无法定位具体测试的写操作
func (c *AssessmentCache) InvalidateAll() {
	if c == nil || c.Client == nil {
		return
	}
	ctx := context.Background()
	keys, err := c.Client.Keys(ctx, moduleTestKeyPrefix+"*").Result()
	if err != nil || len(keys) == 0 {
		return
	}
	_ = c.Client.Del(ctx, keys...).Err()
}
