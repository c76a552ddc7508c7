package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"

	"github.com/camden-git/policeportal/database"
)

// GormLookupRepository runs existence queries against arbitrary tables.
// Table and column names come from rule definitions, never from requests.
type GormLookupRepository struct {
	DB *gorm.DB
}

func NewLookupRepository(db *gorm.DB) *GormLookupRepository {
	return &GormLookupRepository{DB: db}
}

func (r *GormLookupRepository) Exists(ctx context.Context, table, column string, value any, excludeID uint) (bool, error) {
	q := database.Builder.Select("1").From(table).Where(sq.Eq{column: value}).Limit(1)
	if excludeID != 0 {
		q = q.Where(sq.NotEq{"id": excludeID})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build lookup on %s.%s: %w", table, column, err)
	}

	var found []int
	if err := r.DB.WithContext(ctx).Raw(query, args...).Scan(&found).Error; err != nil {
		return false, fmt.Errorf("failed to look up %s.%s: %w", table, column, err)
	}
	return len(found) > 0, nil
}
