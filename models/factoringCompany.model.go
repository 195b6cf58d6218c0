package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type FactoringCompany struct {
	ID          string         `gorm:"type:uuid;primaryKey" json:"id"`
	AccountID   string         `gorm:"type:uuid;not null;index" json:"account_id"`
	Name        string         `gorm:"not null" json:"name"`
	ContactInfo datatypes.JSON `json:"contact_info"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (f *FactoringCompany) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}
