// Package statscache хранит счётчики завершённых сделок продавцов в
// Redis, чтобы не пересчитывать их на каждый показ профиля.
package statscache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "guarantor:seller_stats:"

type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Get возвращает закешированный счётчик. Второе значение — признак
// попадания в кеш.
func (c *Cache) Get(ctx context.Context, sellerID int64) (int, bool, error) {
	val, err := c.client.Get(ctx, key(sellerID)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("statscache get: %w", err)
	}

	count, err := strconv.Atoi(val)
	if err != nil {
		return 0, false, fmt.Errorf("statscache parse: %w", err)
	}

	return count, true, nil
}

// Set записывает счётчик с TTL кеша.
func (c *Cache) Set(ctx context.Context, sellerID int64, count int) error {
	if err := c.client.Set(ctx, key(sellerID), count, c.ttl).Err(); err != nil {
		return fmt.Errorf("statscache set: %w", err)
	}

	return nil
}

func key(sellerID int64) string {
	return keyPrefix + strconv.FormatInt(sellerID, 10)
}
