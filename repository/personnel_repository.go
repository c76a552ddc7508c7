package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/camden-git/policeportal/database"
	"github.com/camden-git/policeportal/media"
	"github.com/camden-git/policeportal/models"
)

var personnelSearchColumns = []string{"badge_number", "first_name", "last_name", "email"}

var personnelUpdateColumns = []string{
	"badge_number", "first_name", "last_name", "email", "phone", "rank",
	"department", "status", "hire_date", "address", "birth_date", "gender",
	"emergency_contact_name", "emergency_contact_phone", "notes",
}

// GormPersonnelRepository handles database operations for personnel records
type GormPersonnelRepository struct {
	DB *gorm.DB
}

func NewPersonnelRepository(db *gorm.DB) *GormPersonnelRepository {
	return &GormPersonnelRepository{DB: db}
}

func personnelConditions(f PersonnelFilters) sq.And {
	cond := sq.And{}
	if v := filled(f.Status); v != "" {
		cond = append(cond, sq.Eq{"status": v})
	}
	if v := filled(f.Rank); v != "" {
		cond = append(cond, sq.Eq{"rank": v})
	}
	if v := filled(f.Department); v != "" {
		cond = append(cond, database.ContainsFold("department", v))
	}
	if v := filled(f.Search); v != "" {
		cond = append(cond, database.AnyContainsFold(personnelSearchColumns, v))
	}
	return cond
}

func (r *GormPersonnelRepository) filtered(ctx context.Context, f PersonnelFilters) *gorm.DB {
	return r.DB.WithContext(ctx).Model(&models.Personnel{}).Scopes(whereScope(personnelConditions(f)))
}

func personnelOrder(f PersonnelFilters) func(*gorm.DB) *gorm.DB {
	return orderScope(database.ResolveSort(database.PersonnelSortFields, f.SortBy, f.SortOrder))
}

func (r *GormPersonnelRepository) Create(ctx context.Context, p *models.Personnel) error {
	if p.Documents == nil {
		p.Documents = []models.Attachment{}
	}
	if err := r.DB.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("failed to create personnel %s: %w", p.BadgeNumber, err)
	}
	return nil
}

func (r *GormPersonnelRepository) GetByID(ctx context.Context, id uint) (*models.Personnel, error) {
	var p models.Personnel
	if err := r.DB.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get personnel by ID %d: %w", id, err)
	}
	return &p, nil
}

func (r *GormPersonnelRepository) List(ctx context.Context, f PersonnelFilters, page PageRequest) (*Page[models.Personnel], error) {
	var total int64
	if err := r.filtered(ctx, f).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count personnel: %w", err)
	}

	var people []models.Personnel
	err := r.filtered(ctx, f).Scopes(personnelOrder(f)).
		Limit(PerPage).Offset(page.Offset()).
		Find(&people).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list personnel: %w", err)
	}
	return newPage(people, total, page), nil
}

func (r *GormPersonnelRepository) ListAll(ctx context.Context, f PersonnelFilters) ([]models.Personnel, error) {
	var people []models.Personnel
	if err := r.filtered(ctx, f).Scopes(personnelOrder(f)).Find(&people).Error; err != nil {
		return nil, fmt.Errorf("failed to list personnel: %w", err)
	}
	return people, nil
}

// Update writes the allow-listed columns named in fields under a row lock,
// appending added to the stored document list.
func (r *GormPersonnelRepository) Update(ctx context.Context, id uint, changes *models.Personnel, fields []string, added []models.Attachment) (*models.Personnel, error) {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.Personnel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&current, id).Error; err != nil {
			return err
		}

		changes.ID = id
		changes.Documents = media.AppendAttachments(current.Documents, added)

		return tx.Model(&models.Personnel{ID: id}).
			Select(updateColumns(personnelUpdateColumns, fields, "documents")).
			Updates(changes).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update personnel ID %d: %w", id, err)
	}
	return r.GetByID(ctx, id)
}

func (r *GormPersonnelRepository) Delete(ctx context.Context, id uint) error {
	result := r.DB.WithContext(ctx).Delete(&models.Personnel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete personnel ID %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
