package accountController

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"truckscout/models"
	"truckscout/rbac"
)

func seedAccountWithResources(t *testing.T, db *gorm.DB) models.Account {
	t.Helper()

	account := seedAccount(t, db, 1)

	_, err := AddMembership(db, account.ID, 2, rbac.RoleMember)
	require.NoError(t, err)

	fc := models.FactoringCompany{AccountID: account.ID, Name: "Factor Inc"}
	require.NoError(t, db.Create(&fc).Error)

	carrier := models.Carrier{AccountID: account.ID, Name: "Carrier", MCNumber: "MC123", FactoringCompanyID: &fc.ID}
	require.NoError(t, db.Create(&carrier).Error)

	load := models.Load{AccountID: account.ID}
	require.NoError(t, db.Create(&load).Error)

	invoice := models.Invoice{
		AccountID: account.ID,
		LoadID:    load.ID,
		CarrierID: carrier.ID,
		Amount:    1200.50,
	}
	require.NoError(t, db.Create(&invoice).Error)

	require.NoError(t, db.Create(&models.Invitation{
		AccountID: account.ID,
		Email:     "invitee@example.com",
		Role:      rbac.RoleMember,
		InvitedBy: 1,
		ExpiresAt: time.Now().Add(time.Hour),
	}).Error)

	require.NoError(t, db.Create(&models.RolePermission{
		AccountID:  account.ID,
		Role:       "dispatcher",
		Permission: "loads.manage",
	}).Error)

	return account
}

func countRows(t *testing.T, db *gorm.DB, model interface{}, accountID string) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(model).Where("account_id = ?", accountID).Count(&count).Error)
	return count
}

func TestDeleteAccountRemovesEverything(t *testing.T) {
	db := setupTestDB(t)
	account := seedAccountWithResources(t, db)

	// An unrelated account survives the teardown untouched
	other := seedAccount(t, db, 3)
	otherCarrier := models.Carrier{AccountID: other.ID, Name: "Other", MCNumber: "MC999"}
	require.NoError(t, db.Create(&otherCarrier).Error)

	require.NoError(t, DeleteAccount(db, account.ID))

	assert.Zero(t, countRows(t, db, &models.Invoice{}, account.ID))
	assert.Zero(t, countRows(t, db, &models.Load{}, account.ID))
	assert.Zero(t, countRows(t, db, &models.Carrier{}, account.ID))
	assert.Zero(t, countRows(t, db, &models.FactoringCompany{}, account.ID))
	assert.Zero(t, countRows(t, db, &models.Invitation{}, account.ID))
	assert.Zero(t, countRows(t, db, &models.RolePermission{}, account.ID))
	assert.Zero(t, countRows(t, db, &models.Membership{}, account.ID))

	var gone models.Account
	err := db.Where("id = ?", account.ID).First(&gone).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Neighbour tenant is intact
	assert.EqualValues(t, 1, countRows(t, db, &models.Carrier{}, other.ID))
	assert.EqualValues(t, 1, countRows(t, db, &models.Membership{}, other.ID))
}

func TestDeleteAccountIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	account := seedAccountWithResources(t, db)

	require.NoError(t, DeleteAccount(db, account.ID))

	// A second call is a no-op, not an error
	require.NoError(t, DeleteAccount(db, account.ID))

	// Unknown ids are a no-op too
	require.NoError(t, DeleteAccount(db, "00000000-0000-0000-0000-000000000000"))
}
