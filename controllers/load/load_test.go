package loadController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

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
	loadRoutes "truckscout/routers/loadRoutes"
)

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setupLoadApp(t *testing.T) (*fiber.App, *config.Config, *gorm.DB) {
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
	loadRoutes.SetupLoadRoutes(app, cfg)

	return app, cfg, db
}

func TestGetLoad(t *testing.T) {
	app, cfg, db := setupLoadApp(t)

	owner := models.User{Name: "Owner", Email: "owner@example.com", Password: "x"}
	require.NoError(t, db.Create(&owner).Error)
	member := models.User{Name: "Member", Email: "member@example.com", Password: "x"}
	require.NoError(t, db.Create(&member).Error)

	account := models.Account{Name: "Test Account", Slug: "acme", PrimaryOwnerUserID: owner.ID}
	require.NoError(t, db.Create(&account).Error)
	require.NoError(t, db.Create(&models.Membership{UserID: owner.ID, AccountID: account.ID, Role: rbac.RoleOwner}).Error)
	require.NoError(t, db.Create(&models.Membership{UserID: member.ID, AccountID: account.ID, Role: rbac.RoleMember}).Error)

	memberToken, err := middleware.GenerateJWT(cfg, member.ID, member.Name, member.Email)
	require.NoError(t, err)

	load := models.Load{AccountID: account.ID, Origin: "Dallas", Destination: "Memphis", Status: "booked"}
	require.NoError(t, db.Create(&load).Error)

	get := func(path string) (*http.Response, envelope) {
		req := httptest.NewRequest(http.MethodGet, path, bytes.NewReader(nil))
		req.Header.Set("Authorization", "Bearer "+memberToken)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		var env envelope
		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, &env))
		return resp, env
	}

	resp, env := get("/accounts/" + account.ID + "/loads/" + load.ID)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var fetched models.Load
	require.NoError(t, json.Unmarshal(env.Data, &fetched))
	assert.Equal(t, load.ID, fetched.ID)
	assert.Equal(t, account.ID, fetched.AccountID)
	assert.Equal(t, "Dallas", fetched.Origin)

	resp, _ = get("/accounts/" + account.ID + "/loads/00000000-0000-0000-0000-000000000000")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
