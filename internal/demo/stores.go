package demo

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/goliatone/go-submissions/internal/config"
)

// Stores groups the repositories and the username index of the demo.
type Stores struct {
	Todos     Repository[Todo]
	Users     Repository[User]
	Usernames UsernameIndex

	db    *gorm.DB
	redis *redis.Client
}

// NewStores opens the backends selected by cfg. The memory username index is
// seeded from the users already stored.
func NewStores(ctx context.Context, cfg *config.Config) (*Stores, error) {
	s := &Stores{}
	if cfg.Database.Driver == "memory" {
		s.Todos = NewMemoryRepository[Todo]()
		s.Users = NewMemoryRepository[User]()
	} else {
		db, err := OpenDatabase(cfg.Database)
		if err != nil {
			return nil, err
		}
		s.db = db
		s.Todos = NewGormRepository[Todo](db)
		s.Users = NewGormRepository[User](db)
	}

	var client redis.Cmdable
	if cfg.Unique.Backend == "redis" {
		s.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Username: cfg.Redis.Username,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := s.redis.Ping(ctx).Err(); err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("demo: redis ping %s: %w", cfg.Redis.Addr, err)
		}
		client = s.redis
	}

	index, err := NewUsernameIndex(cfg.Unique, s.db, client)
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	s.Usernames = index

	if cfg.Unique.Backend == "memory" {
		users, err := s.Users.List(ctx)
		if err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("demo: seed usernames: %w", err)
		}
		for _, user := range users {
			_ = s.Usernames.Add(ctx, user.Username)
		}
	}
	return s, nil
}

// DB returns the SQL database, or nil for the memory driver.
func (s *Stores) DB() *gorm.DB {
	return s.db
}

// Close releases the database and Redis connections.
func (s *Stores) Close() error {
	var errs []error
	if s.db != nil {
		if sqlDB, err := s.db.DB(); err == nil {
			errs = append(errs, sqlDB.Close())
		}
	}
	if s.redis != nil {
		errs = append(errs, s.redis.Close())
	}
	return errors.Join(errs...)
}
