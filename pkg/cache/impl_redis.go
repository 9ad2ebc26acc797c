package cache

import (
	"context"
	"strings"
	"time"

	"github.com/cozy/cozy-barcode/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// redisPrefix is put in front of the keys, so that the redis database can be
// shared with other services.
const redisPrefix = "barcode:"

// redisTimeout bounds the time spent on a redis command: a slow redis must
// not block the rendering of the documents.
const redisTimeout = 2 * time.Second

// Redis is the Cache backend used when several cozy-barcode servers share
// their documents.
type Redis struct {
	client redis.UniversalClient
	log    *logger.Entry
}

// NewRedis returns a Cache stored in the given redis.
func NewRedis(client redis.UniversalClient) *Redis {
	return &Redis{
		client: client,
		log:    logger.WithNamespace("cache"),
	}
}

// CheckStatus pings redis and returns the round trip time.
func (c *Redis) CheckStatus(ctx context.Context) (time.Duration, error) {
	before := time.Now()
	if err := c.client.Ping(ctx).Err(); err != nil {
		return 0, err
	}
	return time.Since(before), nil
}

// Get returns the document at the given key. A redis error is a miss.
func (c *Redis) Get(key string) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	data, err := c.client.Get(ctx, redisPrefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warnf("Cannot get %s: %s", key, err)
		}
		return nil, false
	}
	return data, true
}

// Keys returns the keys with the given prefix. It iterates with SCAN to not
// block redis.
func (c *Redis) Keys(prefix string) []string {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	keys := make([]string, 0)
	iter := c.client.Scan(ctx, 0, redisPrefix+prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, strings.TrimPrefix(iter.Val(), redisPrefix))
	}
	if err := iter.Err(); err != nil {
		c.log.Warnf("Cannot list the keys %s*: %s", prefix, err)
	}
	return keys
}

// Clear removes a document.
func (c *Redis) Clear(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	if err := c.client.Del(ctx, redisPrefix+key).Err(); err != nil {
		c.log.Warnf("Cannot clear %s: %s", key, err)
	}
}

// Set stores a document for the given duration. The document is only
// regenerated on the next call if it fails.
func (c *Redis) Set(key string, data []byte, expiration time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	if err := c.client.Set(ctx, redisPrefix+key, data, expiration).Err(); err != nil {
		c.log.Warnf("Cannot store %s: %s", key, err)
	}
}
