package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultSize is the number of entries kept by the in-memory backend when
// no size is given.
const DefaultSize = 1024

// Cache is a rudimentary key/value caching store for the generated
// documents.
type Cache interface {
	CheckStatus(ctx context.Context) (time.Duration, error)
	Get(key string) ([]byte, bool)
	Keys(prefix string) []string
	Clear(key string)
	Set(key string, data []byte, expiration time.Duration)
}

type cacheEntry struct {
	payload   []byte
	expiredAt time.Time
}

// Init instantiates a Cache Client.
//
// The backend selection is done based on the `client` argument. If a client is
// given, the redis backend is chosen, if nil is provided the inmemory backend
// would be chosen, keeping at most size entries.
func Init(client redis.UniversalClient, size int) (Cache, error) {
	if client == nil {
		return NewInMemory(size)
	}

	return NewRedis(client), nil
}
