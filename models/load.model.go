package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Load struct {
	ID          string     `gorm:"type:uuid;primaryKey" json:"id"`
	AccountID   string     `gorm:"type:uuid;not null;index" json:"account_id"`
	Status      string     `gorm:"type:varchar(32);default:'created'" json:"status"`
	Origin      string     `json:"origin"`
	Destination string     `json:"destination"`
	PickupDate  *time.Time `json:"pickup_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (l *Load) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
