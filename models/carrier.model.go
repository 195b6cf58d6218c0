package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Carrier struct {
	ID                 string         `gorm:"type:uuid;primaryKey" json:"id"`
	AccountID          string         `gorm:"type:uuid;not null;uniqueIndex:idx_carrier_account_mc;index" json:"account_id"`
	Name               string         `gorm:"not null" json:"name"`
	MCNumber           string         `gorm:"column:mc_number;uniqueIndex:idx_carrier_account_mc" json:"mc_number"`
	ContactInfo        datatypes.JSON `json:"contact_info"`
	Rating             float32        `json:"rating"`
	PreferredStatus    bool           `gorm:"default:false" json:"preferred_status"`
	FactoringCompanyID *string        `gorm:"type:uuid" json:"factoring_company_id"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

func (c *Carrier) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
