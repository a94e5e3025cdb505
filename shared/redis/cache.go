package redis

import (
	"context"
	"encoding/json"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// tombstone marks a key whose entity was deleted. It is never valid JSON for
// a view, so Get can tell it apart from a cached value.
const tombstone = "tombstone"

// setUnlessTombstoned overwrites a key unless it holds a tombstone.
// ARGV: value, tombstone marker, ttl in milliseconds (0 for no expiry).
var setUnlessTombstoned = goredis.NewScript(`
if redis.call('GET', KEYS[1]) == ARGV[2] then
	return 0
end
if tonumber(ARGV[3]) > 0 then
	redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[3])
else
	redis.call('SET', KEYS[1], ARGV[1])
end
return 1
`)

// ViewCache is a generic JSON-backed Redis cache for read model projections.
// Bind it to a specific view type T; each instance holds a Redis client and an
// optional TTL (pass 0 for keys that should not expire).
type ViewCache[T any] struct {
	client *goredis.Client
	ttl    time.Duration
	log    logrus.FieldLogger
}

// NewViewCache creates a ViewCache backed by the provided Redis client.
func NewViewCache[T any](client *goredis.Client, ttl time.Duration, log logrus.FieldLogger) *ViewCache[T] {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &ViewCache[T]{client: client, ttl: ttl, log: log.WithField("component", "view-cache")}
}

// Get retrieves and unmarshals a value from Redis.
// Returns (nil, false) on any miss, tombstone or deserialisation error.
func (c *ViewCache[T]) Get(ctx context.Context, key string) (*T, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != goredis.Nil {
			c.log.WithError(err).WithField("key", key).Warn("cache read failed")
		}
		return nil, false
	}
	if string(data) == tombstone {
		return nil, false
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		c.log.WithError(err).WithField("key", key).Warn("cache entry is corrupt")
		return nil, false
	}
	return &v, true
}

// Set stores a freshly written value under key, replacing any older value
// but never a tombstone. Errors are logged; a failed cache write is non-fatal.
func (c *ViewCache[T]) Set(ctx context.Context, key string, value *T) {
	data, err := json.Marshal(value)
	if err != nil {
		c.log.WithError(err).WithField("key", key).Error("cache marshal failed")
		return
	}
	err = setUnlessTombstoned.Run(ctx, c.client, []string{key}, data, tombstone, c.ttl.Milliseconds()).Err()
	if err != nil && err != goredis.Nil {
		c.log.WithError(err).WithField("key", key).Warn("cache write failed")
	}
}

// SetIfAbsent fills key only when it holds nothing, so a value loaded by a
// slow read can never replace a newer value or a tombstone.
func (c *ViewCache[T]) SetIfAbsent(ctx context.Context, key string, value *T) {
	data, err := json.Marshal(value)
	if err != nil {
		c.log.WithError(err).WithField("key", key).Error("cache marshal failed")
		return
	}
	if err := c.client.SetNX(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.WithError(err).WithField("key", key).Warn("cache fill failed")
	}
}

// Tombstone replaces key with a deletion marker that lives for ttl. The
// error is returned so callers can stop trusting the cache for that key.
func (c *ViewCache[T]) Tombstone(ctx context.Context, key string, ttl time.Duration) error {
	return c.client.Set(ctx, key, tombstone, ttl).Err()
}
