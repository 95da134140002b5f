package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jimwalker53/Image-to-SVG/config"
	i2stypes "github.com/jimwalker53/Image-to-SVG/type"
	"github.com/jimwalker53/Image-to-SVG/utils"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "svg:"

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(cfg *config.RedisConfig) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	return &RedisCache{
		client: client,
		ttl:    cfg.TTL,
	}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Key 由图片内容和转换选项共同决定缓存键
func Key(data []byte, opts i2stypes.Options) (string, error) {
	optHash, err := utils.ValueMD5(opts)
	if err != nil {
		return "", fmt.Errorf("hash options: %w", err)
	}
	return keyPrefix + utils.BytesMD5(data) + ":" + optHash, nil
}

// Get 从缓存获取转换结果，未命中时返回 nil, nil
func (c *RedisCache) Get(ctx context.Context, key string) (*i2stypes.Result, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	result, err := decodeResult(data)
	if err != nil {
		utils.Logger.Error("failed to decode cached result",
			zap.String("key", key), zap.Error(err))
		return nil, err
	}
	return result, nil
}

// Set 写入转换结果
func (c *RedisCache) Set(ctx context.Context, key string, result *i2stypes.Result) error {
	data, err := encodeResult(result)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func encodeResult(result *i2stypes.Result) ([]byte, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}
	return compress(data), nil
}

func decodeResult(data []byte) (*i2stypes.Result, error) {
	raw, err := decompress(data)
	if err != nil {
		return nil, err
	}
	var result i2stypes.Result
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
