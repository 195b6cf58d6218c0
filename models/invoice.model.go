package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Invoice struct {
	ID            string     `gorm:"type:uuid;primaryKey" json:"id"`
	AccountID     string     `gorm:"type:uuid;not null;index" json:"account_id"`
	LoadID        string     `gorm:"type:uuid;not null" json:"load_id"`
	Load          Load       `gorm:"foreignKey:LoadID" json:"-"`
	CarrierID     string     `gorm:"type:uuid;not null" json:"carrier_id"`
	Carrier       Carrier    `gorm:"foreignKey:CarrierID" json:"-"`
	Amount        float64    `gorm:"not null" json:"amount"`
	Status        string     `gorm:"type:varchar(32);default:'draft'" json:"status"`
	DueDate       *time.Time `json:"due_date"`
	PaidStatus    bool       `gorm:"default:false" json:"paid_status"`
	InternalNotes string     `json:"internal_notes"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
