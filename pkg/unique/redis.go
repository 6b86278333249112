package unique

import (
	"context"
	"errors"
	"strings"

	"github.com/redis/go-redis/v9"
)

// RedisChecker keeps taken values in a Redis set, which suits values shared
// across instances such as reserved usernames.
type RedisChecker struct {
	client redis.Cmdable
	key    string
}

var _ Checker = (*RedisChecker)(nil)

// NewRedisChecker checks membership of the set stored at key.
func NewRedisChecker(client redis.Cmdable, key string) (*RedisChecker, error) {
	if client == nil {
		return nil, errors.New("unique: redis client is required")
	}
	if strings.TrimSpace(key) == "" {
		return nil, errors.New("unique: redis key is required")
	}
	return &RedisChecker{client: client, key: key}, nil
}

// Exists implements Checker.
func (c *RedisChecker) Exists(ctx context.Context, value string) (bool, error) {
	return c.client.SIsMember(ctx, c.key, value).Result()
}

// Add marks values as taken.
func (c *RedisChecker) Add(ctx context.Context, values ...string) error {
	if len(values) == 0 {
		return nil
	}
	members := make([]any, 0, len(values))
	for _, value := range values {
		members = append(members, value)
	}
	return c.client.SAdd(ctx, c.key, members...).Err()
}

// Remove releases values.
func (c *RedisChecker) Remove(ctx context.Context, values ...string) error {
	if len(values) == 0 {
		return nil
	}
	members := make([]any, 0, len(values))
	for _, value := range values {
		members = append(members, value)
	}
	return c.client.SRem(ctx, c.key, members...).Err()
}
