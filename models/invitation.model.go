package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Invitation struct {
	ID         string     `gorm:"type:uuid;primaryKey" json:"id"`
	AccountID  string     `gorm:"type:uuid;not null;index" json:"account_id"`
	Email      string     `gorm:"not null" json:"email"`
	Role       string     `gorm:"type:varchar(64);not null" json:"role"`
	Token      string     `gorm:"type:uuid;unique;not null" json:"-"`
	InvitedBy  uint       `gorm:"not null" json:"invited_by"`
	ExpiresAt  time.Time  `json:"expires_at"`
	AcceptedAt *time.Time `json:"accepted_at"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (i *Invitation) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.Token == "" {
		i.Token = uuid.NewString()
	}
	return nil
}
