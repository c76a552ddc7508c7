package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"

	"github.com/camden-git/policeportal/database"
	"github.com/camden-git/policeportal/models"
)

const recentCaseCount = 5

type GormDashboardRepository struct {
	DB *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{DB: db}
}

type groupCount struct {
	Bucket string
	Count  int64
}

// countBy returns the number of cases per distinct value of column.
func (r *GormDashboardRepository) countBy(ctx context.Context, column string) (map[string]int64, error) {
	query, args, err := database.Builder.
		Select(column+" AS bucket", "COUNT(*) AS count").
		From(models.Case{}.TableName()).
		GroupBy(column).
		ToSql()
	if err != nil {
		return nil, err
	}

	var rows []groupCount
	if err := r.DB.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Bucket] = row.Count
	}
	return out, nil
}

func (r *GormDashboardRepository) Summary(ctx context.Context) (*Dashboard, error) {
	db := r.DB.WithContext(ctx)
	d := &Dashboard{}

	if err := db.Model(&models.Case{}).Count(&d.Stats.TotalCases).Error; err != nil {
		return nil, fmt.Errorf("failed to count cases: %w", err)
	}
	if err := db.Model(&models.Case{}).Where("status = ?", models.CaseStatusOpen).Count(&d.Stats.OpenCases).Error; err != nil {
		return nil, fmt.Errorf("failed to count open cases: %w", err)
	}
	err := db.Model(&models.Case{}).
		Scopes(whereScope(sq.Eq{"priority": []string{string(models.CasePriorityHigh), string(models.CasePriorityCritical)}})).
		Count(&d.Stats.HighPriorityCases).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count high priority cases: %w", err)
	}
	if err := db.Model(&models.Personnel{}).Where("status = ?", models.PersonnelStatusActive).Count(&d.Stats.TotalPersonnel).Error; err != nil {
		return nil, fmt.Errorf("failed to count active personnel: %w", err)
	}

	d.RecentCases = []models.Case{}
	err = db.Preload("AssignedOfficer").Preload("Creator").
		Order("created_at DESC").Order("id DESC").
		Limit(recentCaseCount).
		Find(&d.RecentCases).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load recent cases: %w", err)
	}

	if d.CasesByStatus, err = r.countBy(ctx, "status"); err != nil {
		return nil, fmt.Errorf("failed to group cases by status: %w", err)
	}
	if d.CasesByPriority, err = r.countBy(ctx, "priority"); err != nil {
		return nil, fmt.Errorf("failed to group cases by priority: %w", err)
	}
	return d, nil
}
