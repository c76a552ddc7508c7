package repository

import (
	"context"

	"github.com/camden-git/policeportal/models"
)

// CaseFilters are the listing constraints accepted for cases. Empty fields
// apply no constraint.
type CaseFilters struct {
	Status    string `json:"status,omitempty"`
	Priority  string `json:"priority,omitempty"`
	Category  string `json:"category,omitempty"`
	Search    string `json:"search,omitempty"`
	SortBy    string `json:"sort_by,omitempty"`
	SortOrder string `json:"sort_order,omitempty"`
}

// PersonnelFilters are the listing constraints accepted for personnel.
type PersonnelFilters struct {
	Status     string `json:"status,omitempty"`
	Rank       string `json:"rank,omitempty"`
	Department string `json:"department,omitempty"`
	Search     string `json:"search,omitempty"`
	SortBy     string `json:"sort_by,omitempty"`
	SortOrder  string `json:"sort_order,omitempty"`
}

// CaseRepository defines the methods for case data operations
type CaseRepository interface {
	Create(ctx context.Context, c *models.Case) error
	GetByID(ctx context.Context, id uint) (*models.Case, error)
	List(ctx context.Context, filters CaseFilters, page PageRequest) (*Page[models.Case], error)
	ListAll(ctx context.Context, filters CaseFilters) ([]models.Case, error)
	// Update writes the allow-listed columns of changes named in fields and
	// appends added to the stored evidence list. Unnamed columns are kept.
	Update(ctx context.Context, id uint, changes *models.Case, fields []string, added []models.Attachment) (*models.Case, error)
	Delete(ctx context.Context, id uint) error
}

// PersonnelRepository defines the methods for personnel data operations
type PersonnelRepository interface {
	Create(ctx context.Context, p *models.Personnel) error
	GetByID(ctx context.Context, id uint) (*models.Personnel, error)
	List(ctx context.Context, filters PersonnelFilters, page PageRequest) (*Page[models.Personnel], error)
	ListAll(ctx context.Context, filters PersonnelFilters) ([]models.Personnel, error)
	Update(ctx context.Context, id uint, changes *models.Personnel, fields []string, added []models.Attachment) (*models.Personnel, error)
	Delete(ctx context.Context, id uint) error
}

// UserRepository defines the methods for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ListOfficers(ctx context.Context) ([]models.User, error)
}

// LookupRepository answers the uniqueness and existence questions asked by
// validation rules.
type LookupRepository interface {
	// Exists reports whether a row of table has column = value, ignoring the
	// row whose id is excludeID (0 ignores nothing).
	Exists(ctx context.Context, table, column string, value any, excludeID uint) (bool, error)
}

// DashboardStats are the headline counts on the dashboard.
type DashboardStats struct {
	TotalCases        int64 `json:"totalCases"`
	OpenCases         int64 `json:"openCases"`
	HighPriorityCases int64 `json:"highPriorityCases"`
	TotalPersonnel    int64 `json:"totalPersonnel"`
}

// Dashboard is the payload of the dashboard view.
type Dashboard struct {
	Stats           DashboardStats   `json:"stats"`
	RecentCases     []models.Case    `json:"recentCases"`
	CasesByStatus   map[string]int64 `json:"casesByStatus"`
	CasesByPriority map[string]int64 `json:"casesByPriority"`
}

// DashboardRepository computes dashboard aggregates.
type DashboardRepository interface {
	Summary(ctx context.Context) (*Dashboard, error)
}
