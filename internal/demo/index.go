package demo

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/goliatone/go-submissions/internal/config"
	"github.com/goliatone/go-submissions/pkg/unique"
)

// UsernameIndex answers uniqueness checks for usernames and is kept in sync
// as users are created, renamed and deleted.
type UsernameIndex interface {
	unique.Checker
	Add(ctx context.Context, values ...string) error
	Remove(ctx context.Context, values ...string) error
}

type memoryIndex struct {
	set *unique.Memory
}

func (m memoryIndex) Exists(ctx context.Context, value string) (bool, error) {
	return m.set.Exists(ctx, value)
}

func (m memoryIndex) Add(_ context.Context, values ...string) error {
	m.set.Add(values...)
	return nil
}

func (m memoryIndex) Remove(_ context.Context, values ...string) error {
	m.set.Remove(values...)
	return nil
}

// tableIndex reads the users table directly, so there is nothing to sync.
type tableIndex struct {
	*unique.GormChecker
}

func (tableIndex) Add(context.Context, ...string) error    { return nil }
func (tableIndex) Remove(context.Context, ...string) error { return nil }

// NewUsernameIndex builds the index selected by cfg.Backend. db is required
// for the gorm backend and client for the redis backend.
func NewUsernameIndex(cfg config.UniqueConfig, db *gorm.DB, client redis.Cmdable) (UsernameIndex, error) {
	switch cfg.Backend {
	case "", "memory":
		return memoryIndex{set: unique.NewMemory()}, nil
	case "gorm":
		checker, err := unique.NewGormChecker(db, &User{}, "username")
		if err != nil {
			return nil, err
		}
		return tableIndex{GormChecker: checker}, nil
	case "redis":
		checker, err := unique.NewRedisChecker(client, cfg.RedisKey)
		if err != nil {
			return nil, err
		}
		return checker, nil
	default:
		return nil, fmt.Errorf("demo: unknown unique backend %q", cfg.Backend)
	}
}
