package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Personnel is an officer or employee record. It corresponds to the
// 'personnel' table.
type Personnel struct {
	ID          uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	BadgeNumber string          `gorm:"size:255;not null;uniqueIndex" json:"badge_number"`
	FirstName   string          `gorm:"size:255;not null;index:idx_personnel_name,priority:1" json:"first_name"`
	LastName    string          `gorm:"size:255;not null;index:idx_personnel_name,priority:2" json:"last_name"`
	Email       string          `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Phone       *string         `gorm:"size:20" json:"phone"`
	Rank        Rank            `gorm:"type:varchar(20);not null;default:officer;index:idx_personnel_status_rank,priority:2;check:chk_personnel_rank,rank IN ('officer','sergeant','lieutenant','captain','major','chief')" json:"rank"`
	Department  string          `gorm:"size:255;not null;index" json:"department"`
	Status      PersonnelStatus `gorm:"type:varchar(20);not null;default:active;index;index:idx_personnel_status_rank,priority:1;check:chk_personnel_status,status IN ('active','inactive','suspended','retired')" json:"status"`
	HireDate    datatypes.Date  `gorm:"not null" json:"hire_date"`
	Address     *string         `gorm:"type:text" json:"address"`
	BirthDate   *datatypes.Date `json:"birth_date"`
	Gender      *Gender         `gorm:"type:varchar(10);check:chk_personnel_gender,gender IN ('male','female','other')" json:"gender"`

	EmergencyContactName  *string `gorm:"size:255" json:"emergency_contact_name"`
	EmergencyContactPhone *string `gorm:"size:20" json:"emergency_contact_phone"`

	// Ordered and append-only; see media.AppendAttachments.
	Documents []Attachment `gorm:"type:json;serializer:json" json:"documents"`
	Notes     *string      `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName explicitly sets the table name for GORM.
func (Personnel) TableName() string {
	return "personnel"
}

// FullName is derived, never stored.
func (p *Personnel) FullName() string {
	return p.FirstName + " " + p.LastName
}

// MarshalJSON adds the derived full_name to the serialized record.
func (p Personnel) MarshalJSON() ([]byte, error) {
	type plain Personnel
	return json.Marshal(struct {
		plain
		FullName string `json:"full_name"`
	}{
		plain:    plain(p),
		FullName: p.FullName(),
	})
}
