package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name                string `gorm:"default:''"`
	Email               string `gorm:"unique;not null" json:"email"`
	Password            string `gorm:"not null" json:"-"`
	IsEmailVerified     bool   `gorm:"default:false"`
	LastLogin           *time.Time
	FailedLoginAttempts int        `gorm:"default:0"`
	LastFailedLogin     *time.Time `json:"last_failed_login"`
	IsDeleted           bool       `gorm:"default:false"`
}
