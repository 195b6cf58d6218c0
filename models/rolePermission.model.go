package models

import "time"

// RolePermission binds one permission string to a tenant-defined custom role.
// Built-in roles resolve from the static catalog and never hit this table.
type RolePermission struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	AccountID  string `gorm:"type:uuid;not null;uniqueIndex:idx_role_perm;index" json:"account_id"`
	Role       string `gorm:"type:varchar(64);not null;uniqueIndex:idx_role_perm" json:"role"`
	Permission string `gorm:"type:varchar(255);not null;uniqueIndex:idx_role_perm" json:"permission"`
	CreatedAt  time.Time
}
