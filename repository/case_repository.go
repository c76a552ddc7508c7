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

var caseSearchColumns = []string{"case_number", "title", "description"}

// caseUpdateColumns is the allow-list of columns an update may write.
var caseUpdateColumns = []string{
	"case_number", "title", "description", "status", "priority", "category",
	"location", "incident_date", "assigned_officer_id",
}

// GormCaseRepository handles database operations for cases
type GormCaseRepository struct {
	DB *gorm.DB
}

func NewCaseRepository(db *gorm.DB) *GormCaseRepository {
	return &GormCaseRepository{DB: db}
}

func caseConditions(f CaseFilters) sq.And {
	cond := sq.And{}
	if v := filled(f.Status); v != "" {
		cond = append(cond, sq.Eq{"status": v})
	}
	if v := filled(f.Priority); v != "" {
		cond = append(cond, sq.Eq{"priority": v})
	}
	if v := filled(f.Category); v != "" {
		cond = append(cond, sq.Eq{"category": v})
	}
	if v := filled(f.Search); v != "" {
		cond = append(cond, database.AnyContainsFold(caseSearchColumns, v))
	}
	return cond
}

func (r *GormCaseRepository) filtered(ctx context.Context, f CaseFilters) *gorm.DB {
	return r.DB.WithContext(ctx).Model(&models.Case{}).Scopes(whereScope(caseConditions(f)))
}

func caseOrder(f CaseFilters) func(*gorm.DB) *gorm.DB {
	return orderScope(database.ResolveSort(database.CaseSortFields, f.SortBy, f.SortOrder))
}

// Create inserts a case. Related users are referenced by id only.
func (r *GormCaseRepository) Create(ctx context.Context, c *models.Case) error {
	if c.EvidenceFiles == nil {
		c.EvidenceFiles = []models.Attachment{}
	}
	if err := r.DB.WithContext(ctx).Omit(clause.Associations).Create(c).Error; err != nil {
		return fmt.Errorf("failed to create case %s: %w", c.CaseNumber, err)
	}
	return nil
}

// GetByID retrieves a case with its assigned officer and creator.
func (r *GormCaseRepository) GetByID(ctx context.Context, id uint) (*models.Case, error) {
	var c models.Case
	err := r.DB.WithContext(ctx).Preload("AssignedOfficer").Preload("Creator").First(&c, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get case by ID %d: %w", id, err)
	}
	return &c, nil
}

// List returns one page of cases matching filters.
func (r *GormCaseRepository) List(ctx context.Context, f CaseFilters, page PageRequest) (*Page[models.Case], error) {
	var total int64
	if err := r.filtered(ctx, f).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count cases: %w", err)
	}

	var cases []models.Case
	err := r.filtered(ctx, f).Scopes(caseOrder(f)).
		Preload("AssignedOfficer").Preload("Creator").
		Limit(PerPage).Offset(page.Offset()).
		Find(&cases).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list cases: %w", err)
	}
	return newPage(cases, total, page), nil
}

// ListAll returns every case matching filters, in the requested order.
func (r *GormCaseRepository) ListAll(ctx context.Context, f CaseFilters) ([]models.Case, error) {
	var cases []models.Case
	err := r.filtered(ctx, f).Scopes(caseOrder(f)).
		Preload("AssignedOfficer").Preload("Creator").
		Find(&cases).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list cases: %w", err)
	}
	return cases, nil
}

// Update writes the allow-listed columns named in fields under a row lock;
// columns the caller did not send keep their stored value. The evidence list
// is re-read inside the transaction so concurrent uploads append rather than
// overwrite.
func (r *GormCaseRepository) Update(ctx context.Context, id uint, changes *models.Case, fields []string, added []models.Attachment) (*models.Case, error) {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.Case
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&current, id).Error; err != nil {
			return err
		}

		changes.ID = id
		changes.EvidenceFiles = media.AppendAttachments(current.EvidenceFiles, added)

		return tx.Model(&models.Case{ID: id}).
			Select(updateColumns(caseUpdateColumns, fields, "evidence_files")).
			Updates(changes).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update case ID %d: %w", id, err)
	}
	return r.GetByID(ctx, id)
}

// Delete removes the case row. Stored evidence must be cleaned up by the caller.
func (r *GormCaseRepository) Delete(ctx context.Context, id uint) error {
	result := r.DB.WithContext(ctx).Delete(&models.Case{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete case ID %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
