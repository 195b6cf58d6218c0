package rbac

import "strings"

// Built-in roles. Custom roles are tenant-defined rows in role_permissions.
const (
	RoleOwner     = "owner"
	RoleAdmin     = "admin"
	RoleMember    = "member"
	RoleBilling   = "billing"
	RoleFactoring = "factoring"
)

// Permission actions. "manage" is a superset alias for the four CRUD actions
// on its resource.
const (
	ActionCreate = "create"
	ActionRead   = "read"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionManage = "manage"
)

// Resources with a permission group in the catalog.
var resources = []string{
	"carriers",
	"factoring_companies",
	"loads",
	"invoices",
	"members",
	"invitations",
	"billing",
	"settings",
}

var actions = []string{ActionCreate, ActionRead, ActionUpdate, ActionDelete, ActionManage}

// roleRank orders the built-in roles for comparisons. Higher wins.
var roleRank = map[string]int{
	RoleOwner:     4,
	RoleAdmin:     3,
	RoleMember:    2,
	RoleBilling:   1,
	RoleFactoring: 1,
}

// rolePermissions binds each built-in role to the permissions it grants.
// Owner is absent on purpose: it holds every permission in the catalog.
var rolePermissions = map[string][]string{
	RoleAdmin: {
		"carriers.manage",
		"factoring_companies.manage",
		"loads.manage",
		"invoices.manage",
		"members.manage",
		"invitations.manage",
		"settings.read",
		"settings.update",
		"billing.read",
	},
	RoleMember: {
		"carriers.read",
		"factoring_companies.read",
		"loads.read",
		"invoices.read",
		"members.read",
	},
	RoleBilling: {
		"billing.manage",
		"invoices.read",
		"carriers.read",
	},
	RoleFactoring: {
		"factoring_companies.manage",
		"carriers.read",
	},
}

// catalog holds every valid permission key.
var catalog = buildCatalog()

func buildCatalog() map[string]bool {
	m := make(map[string]bool, len(resources)*len(actions))
	for _, r := range resources {
		for _, a := range actions {
			m[r+"."+a] = true
		}
	}
	return m
}

// Permissions returns every permission key in the catalog.
func Permissions() []string {
	keys := make([]string, 0, len(catalog))
	for _, r := range resources {
		for _, a := range actions {
			keys = append(keys, r+"."+a)
		}
	}
	return keys
}

// IsValidPermission reports whether key exists in the static catalog.
func IsValidPermission(key string) bool {
	return catalog[key]
}

// IsBuiltinRole reports whether role is part of the static registry.
func IsBuiltinRole(role string) bool {
	_, ok := roleRank[role]
	return ok
}

// RankRole returns the privilege level of a built-in role, 0 for custom roles.
func RankRole(role string) int {
	return roleRank[role]
}

// splitPermission breaks "resource.action" into its parts. The action is the
// segment after the last dot so resource names may contain underscores only.
func splitPermission(key string) (resource, action string) {
	idx := strings.LastIndex(key, ".")
	if idx < 0 {
		return key, ""
	}
	return key[:idx], key[idx+1:]
}

// grantedBy reports whether the permission set grants key, treating
// "<resource>.manage" as granting the four CRUD actions on that resource.
func grantedBy(set []string, key string) bool {
	resource, action := splitPermission(key)
	for _, p := range set {
		if p == key {
			return true
		}
		if action != ActionManage && p == resource+"."+ActionManage {
			return true
		}
	}
	return false
}
