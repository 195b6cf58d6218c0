package rbac

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"truckscout/models"
)

var (
	// ErrMissingIdentity is returned when the caller identity is absent.
	ErrMissingIdentity = errors.New("rbac: missing caller identity")
	// ErrMissingAccount is returned when no account id is supplied.
	ErrMissingAccount = errors.New("rbac: missing account id")
)

// HasPermission reports whether the user holds the given permission in the
// account. It is a pure read: no membership or account state is mutated.
//
// A well-formed but unauthorized request returns (false, nil) — unknown
// permission keys and missing memberships fail closed rather than erroring.
// An error is returned only for malformed input or when the database is
// unreachable.
func HasPermission(db *gorm.DB, userID uint, accountID string, permission string) (bool, error) {
	if userID == 0 {
		return false, ErrMissingIdentity
	}
	if accountID == "" {
		return false, ErrMissingAccount
	}

	// Unknown keys evaluate to false, never error.
	if !IsValidPermission(permission) {
		return false, nil
	}

	var membership models.Membership
	err := db.Where("account_id = ? AND user_id = ?", accountID, userID).
		First(&membership).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// No membership, no implicit access.
			return false, nil
		}
		return false, fmt.Errorf("rbac: membership lookup: %w", err)
	}

	// Owner holds every permission in the catalog.
	if membership.Role == RoleOwner {
		return true, nil
	}

	if set, ok := rolePermissions[membership.Role]; ok {
		return grantedBy(set, permission), nil
	}

	// Tenant-defined custom role: bindings live in role_permissions.
	return hasCustomRolePermission(db, accountID, membership.Role, permission)
}

func hasCustomRolePermission(db *gorm.DB, accountID, role, permission string) (bool, error) {
	resource, action := splitPermission(permission)

	keys := []string{permission}
	if action != ActionManage {
		keys = append(keys, resource+"."+ActionManage)
	}

	var count int64
	err := db.Model(&models.RolePermission{}).
		Where("account_id = ? AND role = ? AND permission IN ?", accountID, role, keys).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("rbac: custom role lookup: %w", err)
	}
	return count > 0, nil
}
