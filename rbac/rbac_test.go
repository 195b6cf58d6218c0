package rbac

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"truckscout/models"
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
		&models.Carrier{},
	))

	return db
}

func seedAccount(t *testing.T, db *gorm.DB, ownerID uint) models.Account {
	t.Helper()

	account := models.Account{
		Name:               "Test Account",
		Slug:               fmt.Sprintf("test-%s", t.Name()),
		PrimaryOwnerUserID: ownerID,
	}
	require.NoError(t, db.Create(&account).Error)
	require.NoError(t, db.Create(&models.Membership{
		UserID:    ownerID,
		AccountID: account.ID,
		Role:      RoleOwner,
	}).Error)
	return account
}

func addMember(t *testing.T, db *gorm.DB, accountID string, userID uint, role string) {
	t.Helper()
	require.NoError(t, db.Create(&models.Membership{
		UserID:    userID,
		AccountID: accountID,
		Role:      role,
	}).Error)
}

func TestHasPermissionNoMembership(t *testing.T) {
	db := setupTestDB(t)
	account := seedAccount(t, db, 1)

	// User 99 has no membership anywhere
	for _, perm := range Permissions() {
		ok, err := HasPermission(db, 99, account.ID, perm)
		require.NoError(t, err)
		assert.False(t, ok, "user without membership must not hold %s", perm)
	}
}

func TestHasPermissionOwnerHoldsEverything(t *testing.T) {
	db := setupTestDB(t)
	account := seedAccount(t, db, 1)

	for _, perm := range Permissions() {
		ok, err := HasPermission(db, 1, account.ID, perm)
		require.NoError(t, err)
		assert.True(t, ok, "owner must hold %s", perm)
	}
}

func TestHasPermissionUnknownKeyFailsClosed(t *testing.T) {
	db := setupTestDB(t)
	account := seedAccount(t, db, 1)

	ok, err := HasPermission(db, 1, account.ID, "spaceships.launch")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = HasPermission(db, 1, account.ID, "carriers")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHasPermissionMalformedInput(t *testing.T) {
	db := setupTestDB(t)
	account := seedAccount(t, db, 1)

	_, err := HasPermission(db, 0, account.ID, "carriers.read")
	assert.ErrorIs(t, err, ErrMissingIdentity)

	_, err = HasPermission(db, 1, "", "carriers.read")
	assert.ErrorIs(t, err, ErrMissingAccount)
}

func TestManageImpliesCrud(t *testing.T) {
	db := setupTestDB(t)
	account := seedAccount(t, db, 1)
	addMember(t, db, account.ID, 2, RoleAdmin)

	// Admin holds carriers.manage, which implies the four CRUD actions.
	for _, action := range []string{ActionCreate, ActionRead, ActionUpdate, ActionDelete, ActionManage} {
		ok, err := HasPermission(db, 2, account.ID, "carriers."+action)
		require.NoError(t, err)
		assert.True(t, ok, "manage must imply carriers.%s", action)
	}

	// The reverse does not hold: member has carriers.read but not manage.
	addMember(t, db, account.ID, 3, RoleMember)

	ok, err := HasPermission(db, 3, account.ID, "carriers.read")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = HasPermission(db, 3, account.ID, "carriers.manage")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = HasPermission(db, 3, account.ID, "carriers.create")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBillingRole(t *testing.T) {
	db := setupTestDB(t)
	account := seedAccount(t, db, 1)
	addMember(t, db, account.ID, 2, RoleBilling)

	ok, err := HasPermission(db, 2, account.ID, "billing.update")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = HasPermission(db, 2, account.ID, "invoices.read")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = HasPermission(db, 2, account.ID, "invoices.delete")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCustomRolePermissions(t *testing.T) {
	db := setupTestDB(t)
	account := seedAccount(t, db, 1)
	addMember(t, db, account.ID, 2, "dispatcher")

	require.NoError(t, db.Create(&models.RolePermission{
		AccountID:  account.ID,
		Role:       "dispatcher",
		Permission: "loads.manage",
	}).Error)

	// manage expands for custom roles too
	ok, err := HasPermission(db, 2, account.ID, "loads.update")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = HasPermission(db, 2, account.ID, "carriers.read")
	require.NoError(t, err)
	assert.False(t, ok)

	// Bindings are tenant-scoped: the same role name grants nothing elsewhere
	other := models.Account{Name: "Other", Slug: "other-custom-role", PrimaryOwnerUserID: 1}
	require.NoError(t, db.Create(&other).Error)
	addMember(t, db, other.ID, 2, "dispatcher")

	ok, err = HasPermission(db, 2, other.ID, "loads.update")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMembershipIsPerAccount(t *testing.T) {
	db := setupTestDB(t)
	accountA := seedAccount(t, db, 1)

	accountB := models.Account{Name: "B", Slug: "account-b", PrimaryOwnerUserID: 2}
	require.NoError(t, db.Create(&accountB).Error)
	addMember(t, db, accountB.ID, 2, RoleOwner)

	// Owner of A holds nothing in B
	ok, err := HasPermission(db, 1, accountB.ID, "carriers.read")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = HasPermission(db, 2, accountA.ID, "carriers.read")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGuardDeniesWithoutPermission(t *testing.T) {
	db := setupTestDB(t)
	account := seedAccount(t, db, 1)
	addMember(t, db, account.ID, 2, RoleMember)

	called := false
	err := Guard(db, 2, account.ID, "carriers.create", func(tx *gorm.DB) error {
		called = true
		return tx.Create(&models.Carrier{AccountID: account.ID, Name: "X", MCNumber: "MC1"}).Error
	})
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.False(t, called, "guarded operation must not run when denied")

	var count int64
	db.Model(&models.Carrier{}).Count(&count)
	assert.Zero(t, count)
}

func TestGuardRollsBackOnError(t *testing.T) {
	db := setupTestDB(t)
	account := seedAccount(t, db, 1)

	boom := fmt.Errorf("boom")
	err := Guard(db, 1, account.ID, "carriers.create", func(tx *gorm.DB) error {
		if err := tx.Create(&models.Carrier{AccountID: account.ID, Name: "X", MCNumber: "MC1"}).Error; err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var count int64
	db.Model(&models.Carrier{}).Count(&count)
	assert.Zero(t, count, "failed guarded operation must leave no rows behind")
}

func TestScopeAccount(t *testing.T) {
	db := setupTestDB(t)
	accountA := seedAccount(t, db, 1)

	accountB := models.Account{Name: "B", Slug: "scope-account-b", PrimaryOwnerUserID: 2}
	require.NoError(t, db.Create(&accountB).Error)

	require.NoError(t, db.Create(&models.Carrier{AccountID: accountA.ID, Name: "A Carrier", MCNumber: "MC-A"}).Error)
	require.NoError(t, db.Create(&models.Carrier{AccountID: accountB.ID, Name: "B Carrier", MCNumber: "MC-B"}).Error)

	// Caller-supplied filters cannot widen the scope
	var carriers []models.Carrier
	err := db.Scopes(ScopeAccount(accountA.ID)).
		Where("account_id = ?", accountB.ID).
		Find(&carriers).Error
	require.NoError(t, err)
	assert.Empty(t, carriers)

	carriers = nil
	require.NoError(t, db.Scopes(ScopeAccount(accountA.ID)).Find(&carriers).Error)
	require.Len(t, carriers, 1)
	assert.Equal(t, accountA.ID, carriers[0].AccountID)
}

func TestRoleCatalog(t *testing.T) {
	assert.True(t, IsBuiltinRole(RoleOwner))
	assert.True(t, IsBuiltinRole(RoleBilling))
	assert.False(t, IsBuiltinRole("dispatcher"))

	assert.Greater(t, RankRole(RoleOwner), RankRole(RoleAdmin))
	assert.Greater(t, RankRole(RoleAdmin), RankRole(RoleMember))
	assert.Greater(t, RankRole(RoleMember), RankRole(RoleBilling))
	assert.Zero(t, RankRole("dispatcher"))

	assert.True(t, IsValidPermission("carriers.manage"))
	assert.True(t, IsValidPermission("invoices.read"))
	assert.False(t, IsValidPermission("carriers.launch"))
}
