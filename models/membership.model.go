package models

import "time"

// Membership links a user to an account with a role. Unique per
// (user, account). Every account keeps exactly one owner membership, tied to
// its primary owner.
type Membership struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	UserID    uint   `gorm:"not null;uniqueIndex:idx_member_account_user" json:"user_id"`
	User      User   `gorm:"foreignKey:UserID" json:"-"`
	AccountID string `gorm:"type:uuid;not null;uniqueIndex:idx_member_account_user;index" json:"account_id"`
	Role      string `gorm:"type:varchar(64);not null" json:"role"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName keeps the join-table name used by the original schema.
func (Membership) TableName() string {
	return "account_user"
}
