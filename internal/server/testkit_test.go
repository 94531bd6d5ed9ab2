package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"devconnector/internal/config"
	"devconnector/internal/database"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestApp builds a Fiber app over an in-memory SQLite database with the
// full route table. Middleware (rate limiting, CORS, metrics) stays out of
// the way so tests exercise handler behavior directly.
func newTestApp(t *testing.T) (*fiber.App, *Server) {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))

	cfg := &config.Config{
		JWTSecret:      "test_secret",
		JWTExpiryHours: 1,
		Env:            "test",
	}

	srv, err := NewServerWithDeps(cfg, db, nil)
	require.NoError(t, err)

	app := fiber.New()
	srv.SetupRoutes(app)
	return app, srv
}

// doJSON issues a request with an optional JSON body and auth token and
// decodes the response body into a map.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	status, raw := doRaw(t, app, method, path, token, body)
	var out map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return status, out
}

// doJSONList is doJSON for endpoints returning arrays.
func doJSONList(t *testing.T, app *fiber.App, method, path, token string, body any) (int, []map[string]any) {
	t.Helper()
	status, raw := doRaw(t, app, method, path, token, body)
	var out []map[string]any
	if len(raw) > 0 && raw[0] == '[' {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return status, out
}

func doRaw(t *testing.T, app *fiber.App, method, path, token string, body any) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("x-auth-token", token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

// registerUser creates an account and returns its token and user ID.
func registerUser(t *testing.T, app *fiber.App, name, email, password string) (string, uint) {
	t.Helper()

	status, body := doJSON(t, app, http.MethodPost, "/api/user", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, status)
	token, ok := body["token"].(string)
	require.True(t, ok, "registration response missing token")

	status, me := doJSON(t, app, http.MethodGet, "/api/auth", token, nil)
	require.Equal(t, http.StatusOK, status)
	id, ok := me["id"].(float64)
	require.True(t, ok, "auth response missing id")

	return token, uint(id)
}
