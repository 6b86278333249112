package unique

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormChecker looks values up in a table column.
type GormChecker struct {
	db     *gorm.DB
	model  any
	column string
}

var _ Checker = (*GormChecker)(nil)

// NewGormChecker checks column of the table backing model, e.g.
// NewGormChecker(db, &User{}, "email").
func NewGormChecker(db *gorm.DB, model any, column string) (*GormChecker, error) {
	if db == nil {
		return nil, errors.New("unique: gorm db is required")
	}
	if model == nil || strings.TrimSpace(column) == "" {
		return nil, errors.New("unique: model and column are required")
	}
	return &GormChecker{db: db, model: model, column: strings.TrimSpace(column)}, nil
}

// Exists implements Checker.
func (c *GormChecker) Exists(ctx context.Context, value string) (bool, error) {
	var count int64
	err := c.db.WithContext(ctx).
		Model(c.model).
		Where(clause.Eq{Column: clause.Column{Name: c.column}, Value: value}).
		Limit(1).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
