package accountController

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"truckscout/models"
	"truckscout/rbac"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Account{},
		&models.Membership{},
		&models.RolePermission{},
		&models.Invitation{},
		&models.FactoringCompany{},
		&models.Carrier{},
		&models.Load{},
		&models.Invoice{},
	))

	return db
}

func seedAccount(t *testing.T, db *gorm.DB, ownerID uint) models.Account {
	t.Helper()

	account := models.Account{
		Name:               "Test Account",
		Slug:               fmt.Sprintf("test-%s-%d", t.Name(), ownerID),
		PrimaryOwnerUserID: ownerID,
	}
	require.NoError(t, db.Create(&account).Error)
	require.NoError(t, db.Create(&models.Membership{
		UserID:    ownerID,
		AccountID: account.ID,
		Role:      rbac.RoleOwner,
	}).Error)
	return account
}

func TestAddMembership(t *testing.T) {
	db := setupTestDB(t)
	account := seedAccount(t, db, 1)

	membership, err := AddMembership(db, account.ID, 2, rbac.RoleMember)
	require.NoError(t, err)
	assert.Equal(t, account.ID, membership.AccountID)
	assert.Equal(t, rbac.RoleMember, membership.Role)

	// No duplicates per (user, account)
	_, err = AddMembership(db, account.ID, 2, rbac.RoleAdmin)
	assert.ErrorIs(t, err, ErrDuplicateMembership)

	// The owner role is never handed out
	_, err = AddMembership(db, account.ID, 3, rbac.RoleOwner)
	assert.ErrorIs(t, err, ErrOwnerRoleAssignment)

	// Unknown roles are rejected
	_, err = AddMembership(db, account.ID, 3, "dispatcher")
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestAddMembershipCustomRole(t *testing.T) {
	db := setupTestDB(t)
	account := seedAccount(t, db, 1)

	require.NoError(t, db.Create(&models.RolePermission{
		AccountID:  account.ID,
		Role:       "dispatcher",
		Permission: "loads.manage",
	}).Error)

	_, err := AddMembership(db, account.ID, 2, "dispatcher")
	require.NoError(t, err)

	ok, err := rbac.HasPermission(db, 2, account.ID, "loads.create")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRemoveMembership(t *testing.T) {
	db := setupTestDB(t)
	account := seedAccount(t, db, 1)

	_, err := AddMembership(db, account.ID, 2, rbac.RoleMember)
	require.NoError(t, err)

	require.NoError(t, RemoveMembership(db, account.ID, 2))

	// Removal is visible to the next evaluation
	ok, err := rbac.HasPermission(db, 2, account.ID, "carriers.read")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.ErrorIs(t, RemoveMembership(db, account.ID, 2), ErrMembershipNotFound)

	// The owner membership cannot be deleted independently of the account
	assert.ErrorIs(t, RemoveMembership(db, account.ID, 1), ErrSoleOwner)
}

func TestChangeRole(t *testing.T) {
	db := setupTestDB(t)
	account := seedAccount(t, db, 1)

	_, err := AddMembership(db, account.ID, 2, rbac.RoleMember)
	require.NoError(t, err)

	ok, err := rbac.HasPermission(db, 2, account.ID, "carriers.create")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, ChangeRole(db, account.ID, 2, rbac.RoleAdmin))

	// The new role takes effect immediately, no stale role data
	ok, err = rbac.HasPermission(db, 2, account.ID, "carriers.create")
	require.NoError(t, err)
	assert.True(t, ok)

	// The owner cannot be demoted, nobody promoted to owner
	assert.ErrorIs(t, ChangeRole(db, account.ID, 1, rbac.RoleAdmin), ErrSoleOwner)
	assert.ErrorIs(t, ChangeRole(db, account.ID, 2, rbac.RoleOwner), ErrOwnerRoleAssignment)

	assert.ErrorIs(t, ChangeRole(db, account.ID, 99, rbac.RoleMember), ErrMembershipNotFound)
}
