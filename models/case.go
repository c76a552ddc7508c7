package models

import "time"

// Case is an incident record. It corresponds to the 'cases' table.
type Case struct {
	ID           uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	CaseNumber   string       `gorm:"size:255;not null;uniqueIndex" json:"case_number"`
	Title        string       `gorm:"size:255;not null" json:"title"`
	Description  string       `gorm:"type:text;not null" json:"description"`
	Status       CaseStatus   `gorm:"type:varchar(20);not null;default:open;index;index:idx_cases_status_priority,priority:1;check:chk_cases_status,status IN ('open','in_progress','closed','archived')" json:"status"`
	Priority     CasePriority `gorm:"type:varchar(20);not null;default:medium;index;index:idx_cases_status_priority,priority:2;check:chk_cases_priority,priority IN ('low','medium','high','critical')" json:"priority"`
	Category     CaseCategory `gorm:"type:varchar(20);not null;default:other;check:chk_cases_category,category IN ('theft','assault','fraud','traffic','domestic','drug','cybercrime','other')" json:"category"`
	Location     *string      `gorm:"size:255" json:"location"`
	IncidentDate *time.Time   `gorm:"index" json:"incident_date"`

	AssignedOfficerID *uint `gorm:"index" json:"assigned_officer_id"`
	CreatedBy         uint  `gorm:"not null;index" json:"created_by"`

	// Ordered and append-only; see media.AppendAttachments.
	EvidenceFiles []Attachment `gorm:"type:json;serializer:json" json:"evidence_files"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	AssignedOfficer *User `gorm:"foreignKey:AssignedOfficerID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"assigned_officer"`
	Creator         *User `gorm:"foreignKey:CreatedBy;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"creator"`
}

// TableName explicitly sets the table name for GORM.
func (Case) TableName() string {
	return "cases"
}
