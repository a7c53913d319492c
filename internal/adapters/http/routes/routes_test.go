package routes

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

	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/adapters/persistence/models"
	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/config"
)

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))

	cfg := &config.Config{
		AppMode:            "dev",
		Port:               "0",
		SuperAdminUsername: "boss",
		JWT: config.JWTConfig{
			Secret:          "test_secret",
			AccessTokenMins: 15,
		},
	}
	config.AppConfig = cfg
	config.DB = db

	app := fiber.New()
	Setup(app, db, cfg)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded map[string]any
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &decoded)
	}
	return resp, decoded
}

func registerAndLogin(t *testing.T, app *fiber.App, username, password, role string) string {
	t.Helper()
	resp, _ := doJSON(t, app, "POST", "/api/v1/auth/register", "", map[string]any{
		"username": username, "password": password, "role": role,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, app, "POST", "/api/v1/auth/login", "", map[string]any{
		"username": username, "password": password,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	return data["access_token"].(string)
}

func TestHealthEndpoint(t *testing.T) {
	app := setupTestApp(t)
	resp, body := doJSON(t, app, "GET", "/health", "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}

func TestRegisterLoginAndWorkspaceFlow(t *testing.T) {
	app := setupTestApp(t)
	token := registerAndLogin(t, app, "alice", "secret", "FleetManager")

	// Create a folder, then a vehicle inside it.
	resp, body := doJSON(t, app, "POST", "/api/v1/folders", token, map[string]any{
		"name": "North fleet", "type": "vehicle",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	folderID := body["data"].(map[string]any)["id"].(string)

	resp, _ = doJSON(t, app, "POST", "/api/v1/vehicles", token, map[string]any{
		"name": "Truck A", "customId": "T-1", "folderId": folderID,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// Root view shows the folder tile but no vehicles.
	resp, body = doJSON(t, app, "GET", "/api/v1/vehicles", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.Empty(t, data["vehicles"])
	require.Len(t, data["folders"], 1)

	// Folder view shows the vehicle.
	resp, body = doJSON(t, app, "GET", "/api/v1/vehicles?folder_id="+folderID, token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data = body["data"].(map[string]any)
	assert.Len(t, data["vehicles"], 1)
}

func TestLoginErrorMessagesAreDistinct(t *testing.T) {
	app := setupTestApp(t)
	registerAndLogin(t, app, "alice", "secret", "Admin")

	resp, body := doJSON(t, app, "POST", "/api/v1/auth/login", "", map[string]any{
		"username": "nobody", "password": "secret",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Username not found", body["error"])

	resp, body = doJSON(t, app, "POST", "/api/v1/auth/login", "", map[string]any{
		"username": "alice", "password": "wrong",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Incorrect password", body["error"])
}

func TestBillingOfficerCannotOpenFleetSection(t *testing.T) {
	app := setupTestApp(t)
	token := registerAndLogin(t, app, "billy", "secret", "BillingOfficer")

	resp, _ := doJSON(t, app, "GET", "/api/v1/vehicles", token, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// Clients stay reachable.
	resp, _ = doJSON(t, app, "GET", "/api/v1/clients", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestUserManagementIsAdminOnly(t *testing.T) {
	app := setupTestApp(t)
	manager := registerAndLogin(t, app, "mike", "secret", "FleetManager")
	admin := registerAndLogin(t, app, "alice", "secret", "Admin")

	resp, _ := doJSON(t, app, "GET", "/api/v1/users", manager, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, _ = doJSON(t, app, "GET", "/api/v1/users", admin, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestUnauthenticatedRequestsRejected(t *testing.T) {
	app := setupTestApp(t)

	resp, _ := doJSON(t, app, "GET", "/api/v1/bills", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, app, "GET", "/api/v1/bills", "not-a-token", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestDashboardSendsPrivateCacheHeaders(t *testing.T) {
	app := setupTestApp(t)
	token := registerAndLogin(t, app, "alice", "secret", "FleetManager")

	resp, _ := doJSON(t, app, "GET", "/api/v1/dashboard", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "private, max-age=30", resp.Header.Get("Cache-Control"))
}

func TestBillPrintEndpointReturnsHTML(t *testing.T) {
	app := setupTestApp(t)
	token := registerAndLogin(t, app, "alice", "secret", "FleetManager")

	resp, body := doJSON(t, app, "POST", "/api/v1/vehicles", token, map[string]any{
		"name": "Truck A",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	vehicleID := body["data"].(map[string]any)["id"].(string)

	resp, body = doJSON(t, app, "POST", "/api/v1/bills", token, map[string]any{
		"vehicleId": vehicleID,
		"client":    "ACME",
		"services":  []map[string]any{{"name": "Towing", "cost": 50}},
		"currency":  "USD",
		"total":     50,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	billID := body["data"].(map[string]any)["id"].(string)

	req := httptest.NewRequest("GET", "/api/v1/bills/"+billID+"/print", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	printResp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, printResp.StatusCode)
	assert.Contains(t, printResp.Header.Get("Content-Type"), "text/html")

	raw, err := io.ReadAll(printResp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "ACME")
}
