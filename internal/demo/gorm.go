package demo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/goliatone/go-submissions/internal/config"
)

// DefaultSQLiteDSN is used when the sqlite driver is selected without a DSN.
const DefaultSQLiteDSN = "submissions.db"

// OpenDatabase opens the SQL database selected by cfg and migrates the demo
// tables.
func OpenDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		dsn := cfg.DSN
		if dsn == "" {
			dsn = DefaultSQLiteDSN
		}
		dialector = sqlite.Open(dsn)
	case "mysql":
		dialector = mysql.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("demo: driver %q has no sql database", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("demo: open %s: %w", cfg.Driver, err)
	}
	if err := db.AutoMigrate(&Todo{}, &User{}); err != nil {
		return nil, fmt.Errorf("demo: migrate: %w", err)
	}
	return db, nil
}

// GormRepository stores entities in a SQL table through gorm.
type GormRepository[T entity] struct {
	db *gorm.DB
}

// NewGormRepository wraps db.
func NewGormRepository[T entity](db *gorm.DB) *GormRepository[T] {
	return &GormRepository[T]{db: db}
}

// List returns every entity, oldest first.
func (r *GormRepository[T]) List(ctx context.Context) ([]T, error) {
	var out []T
	if err := r.db.WithContext(ctx).Order("created_at").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns the entity with id.
func (r *GormRepository[T]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	var item T
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Create inserts item.
func (r *GormRepository[T]) Create(ctx context.Context, item *T) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// Update saves every column of item except its ID and creation time.
func (r *GormRepository[T]) Update(ctx context.Context, item *T) error {
	result := r.db.WithContext(ctx).Model(item).Select("*").Omit("id", "created_at").Updates(item)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the entity with id.
func (r *GormRepository[T]) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(new(T), "id = ?", id.String())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
