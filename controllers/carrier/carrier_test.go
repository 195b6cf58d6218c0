package carrierController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"truckscout/config"
	"truckscout/database"
	"truckscout/middleware"
	"truckscout/models"
	"truckscout/rbac"
	carrierRoutes "truckscout/routers/carrierRoutes"
)

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testEnv struct {
	app *fiber.App
	cfg *config.Config
	db  *gorm.DB
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.Database = database.DbInstance{Db: db}

	cfg := &config.Config{JWTKey: "test-secret", SaltRound: 4}

	app := fiber.New()
	carrierRoutes.SetupCarrierRoutes(app, cfg)

	return &testEnv{app: app, cfg: cfg, db: db}
}

func (e *testEnv) createUser(t *testing.T, email string) models.User {
	t.Helper()
	user := models.User{Name: "Test User", Email: email, Password: "x"}
	require.NoError(t, e.db.Create(&user).Error)
	return user
}

func (e *testEnv) createAccount(t *testing.T, owner models.User, slug string) models.Account {
	t.Helper()
	account := models.Account{Name: "Test Account", Slug: slug, PrimaryOwnerUserID: owner.ID}
	require.NoError(t, e.db.Create(&account).Error)
	require.NoError(t, e.db.Create(&models.Membership{
		UserID:    owner.ID,
		AccountID: account.ID,
		Role:      rbac.RoleOwner,
	}).Error)
	return account
}

func (e *testEnv) addMember(t *testing.T, account models.Account, user models.User, role string) {
	t.Helper()
	require.NoError(t, e.db.Create(&models.Membership{
		UserID:    user.ID,
		AccountID: account.ID,
		Role:      role,
	}).Error)
}

func (e *testEnv) token(t *testing.T, user models.User) string {
	t.Helper()
	token, err := middleware.GenerateJWT(e.cfg, user.ID, user.Name, user.Email)
	require.NoError(t, err)
	return token
}

func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) (*http.Response, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &env))

	return resp, env
}

func TestMemberCannotCreateCarrierOwnerCan(t *testing.T) {
	env := setupEnv(t)
	owner := env.createUser(t, "owner@example.com")
	member := env.createUser(t, "member@example.com")
	account := env.createAccount(t, owner, "acme")
	env.addMember(t, account, member, rbac.RoleMember)

	payload := fiber.Map{"name": "Test Carrier", "mc_number": "MC67890", "rating": 4.5}
	path := "/accounts/" + account.ID + "/carriers"

	// Member is rejected before anything is written
	resp, env2 := env.request(t, http.MethodPost, path, env.token(t, member), payload)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.False(t, env2.Status)

	var count int64
	env.db.Model(&models.Carrier{}).Count(&count)
	assert.Zero(t, count)

	// Owner succeeds and the record lands in the right tenant
	resp, env2 = env.request(t, http.MethodPost, path, env.token(t, owner), payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var carrier models.Carrier
	require.NoError(t, json.Unmarshal(env2.Data, &carrier))
	assert.Equal(t, account.ID, carrier.AccountID)
	assert.Equal(t, "MC67890", carrier.MCNumber)
	assert.NotEmpty(t, carrier.ID)

	// Member can still read it
	resp, env2 = env.request(t, http.MethodGet, path+"/"+carrier.ID, env.token(t, member), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestDuplicateMCNumberConflicts(t *testing.T) {
	env := setupEnv(t)
	owner := env.createUser(t, "owner@example.com")
	account := env.createAccount(t, owner, "acme")
	token := env.token(t, owner)
	path := "/accounts/" + account.ID + "/carriers"

	payload := fiber.Map{"name": "First", "mc_number": "MC11111"}
	resp, _ := env.request(t, http.MethodPost, path, token, payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	payload = fiber.Map{"name": "Second", "mc_number": "MC11111"}
	resp, env2 := env.request(t, http.MethodPost, path, token, payload)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.False(t, env2.Status)
}

func TestCrossTenantIsolation(t *testing.T) {
	env := setupEnv(t)
	ownerA := env.createUser(t, "owner-a@example.com")
	ownerB := env.createUser(t, "owner-b@example.com")
	accountA := env.createAccount(t, ownerA, "tenant-a")
	accountB := env.createAccount(t, ownerB, "tenant-b")

	// ownerA is also a member of B, so the account context accepts them in
	// both tenants
	env.addMember(t, accountB, ownerA, rbac.RoleMember)

	resp, env2 := env.request(t, http.MethodPost,
		"/accounts/"+accountB.ID+"/carriers",
		env.token(t, ownerB),
		fiber.Map{"name": "B Carrier", "mc_number": "MC-B"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var carrierB models.Carrier
	require.NoError(t, json.Unmarshal(env2.Data, &carrierB))

	// Fetching B's carrier through A's scope finds nothing, whatever the id
	resp, _ = env.request(t, http.MethodGet,
		"/accounts/"+accountA.ID+"/carriers/"+carrierB.ID,
		env.token(t, ownerA), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// A stranger to the account is rejected at the context boundary
	resp, _ = env.request(t, http.MethodGet,
		"/accounts/"+accountA.ID+"/carriers",
		env.token(t, ownerB), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAdminUpdateBumpsUpdatedAt(t *testing.T) {
	env := setupEnv(t)
	owner := env.createUser(t, "owner@example.com")
	admin := env.createUser(t, "admin@example.com")
	account := env.createAccount(t, owner, "acme")
	env.addMember(t, account, admin, rbac.RoleAdmin)

	path := "/accounts/" + account.ID + "/carriers"

	resp, env2 := env.request(t, http.MethodPost, path, env.token(t, owner),
		fiber.Map{"name": "Before", "mc_number": "MC22222"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.Carrier
	require.NoError(t, json.Unmarshal(env2.Data, &created))

	time.Sleep(20 * time.Millisecond)

	resp, env2 = env.request(t, http.MethodPut, path+"/"+created.ID, env.token(t, admin),
		fiber.Map{"name": "After"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated models.Carrier
	require.NoError(t, json.Unmarshal(env2.Data, &updated))
	assert.Equal(t, "After", updated.Name)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt),
		"updated_at must strictly increase on update")
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))
}

func TestRatingOutOfRangeRejected(t *testing.T) {
	env := setupEnv(t)
	owner := env.createUser(t, "owner@example.com")
	account := env.createAccount(t, owner, "acme")

	resp, env2 := env.request(t, http.MethodPost,
		"/accounts/"+account.ID+"/carriers",
		env.token(t, owner),
		fiber.Map{"name": "Bad", "mc_number": "MC33333", "rating": 9.5})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.False(t, env2.Status)

	// Rejected before the permission check and before any write
	var count int64
	env.db.Model(&models.Carrier{}).Count(&count)
	assert.Zero(t, count)
}

func TestUnknownAccountIsNotFound(t *testing.T) {
	env := setupEnv(t)
	owner := env.createUser(t, "owner@example.com")
	env.createAccount(t, owner, "acme")

	resp, _ := env.request(t, http.MethodGet,
		"/accounts/00000000-0000-0000-0000-000000000000/carriers",
		env.token(t, owner), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
