package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Account is the tenant boundary. Every business resource belongs to exactly
// one account. Personal accounts are created at signup, team accounts on
// demand.
type Account struct {
	ID                 string `gorm:"type:uuid;primaryKey" json:"id"`
	Name               string `gorm:"not null" json:"name"`
	Slug               string `gorm:"unique" json:"slug"`
	IsPersonalAccount  bool   `gorm:"default:false" json:"is_personal_account"`
	PrimaryOwnerUserID uint   `gorm:"not null" json:"primary_owner_user_id"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
