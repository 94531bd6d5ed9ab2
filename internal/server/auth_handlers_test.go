package server

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	app, _ := newTestApp(t)

	tests := []struct {
		name           string
		body           map[string]string
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]string{
				"name":     "Jane Doe",
				"email":    "jane@example.com",
				"password": "secret123",
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Short password",
			body: map[string]string{
				"name":     "Jane Doe",
				"email":    "jane2@example.com",
				"password": "abc",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Bad email",
			body: map[string]string{
				"name":     "Jane Doe",
				"email":    "not-an-email",
				"password": "secret123",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Missing name",
			body: map[string]string{
				"email":    "jane3@example.com",
				"password": "secret123",
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := doJSON(t, app, http.MethodPost, "/api/user", "", tt.body)
			assert.Equal(t, tt.expectedStatus, status)
			if tt.expectedStatus == http.StatusCreated {
				assert.NotEmpty(t, body["token"])
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app, _ := newTestApp(t)

	registerUser(t, app, "First User", "dupe@example.com", "secret123")

	status, body := doJSON(t, app, http.MethodPost, "/api/user", "", map[string]string{
		"name":     "Second User",
		"email":    "dupe@example.com",
		"password": "different456",
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "CONFLICT", body["code"])
}

func TestRegisterSetsGravatarAvatar(t *testing.T) {
	app, _ := newTestApp(t)

	token, _ := registerUser(t, app, "Ava Tester", "test@example.com", "secret123")

	status, me := doJSON(t, app, http.MethodGet, "/api/auth", token, nil)
	require.Equal(t, http.StatusOK, status)

	avatar, _ := me["avatar"].(string)
	assert.True(t, strings.HasPrefix(avatar, "https://www.gravatar.com/avatar/"))
	assert.Contains(t, avatar, "55502f40dc8b7c769880b10874abc9d0")
	assert.Contains(t, avatar, "s=200")
}

func TestLogin(t *testing.T) {
	app, _ := newTestApp(t)

	registerUser(t, app, "Login User", "login@example.com", "secret123")

	t.Run("Success", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodPost, "/api/auth", "", map[string]string{
			"email":    "login@example.com",
			"password": "secret123",
		})
		assert.Equal(t, http.StatusOK, status)
		assert.NotEmpty(t, body["token"])
	})

	// Wrong password and unknown email must be indistinguishable.
	t.Run("Wrong password", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodPost, "/api/auth", "", map[string]string{
			"email":    "login@example.com",
			"password": "wrongpass",
		})
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "INVALID_CREDENTIALS", body["code"])
		assert.Equal(t, "Invalid credentials", body["error"])
	})

	t.Run("Unknown email", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodPost, "/api/auth", "", map[string]string{
			"email":    "nobody@example.com",
			"password": "secret123",
		})
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "INVALID_CREDENTIALS", body["code"])
		assert.Equal(t, "Invalid credentials", body["error"])
	})
}

func TestTokenSubjectMatchesUser(t *testing.T) {
	app, srv := newTestApp(t)

	token, userID := registerUser(t, app, "Claims User", "claims@example.com", "secret123")

	parsed, err := jwt.Parse(token, func(tok *jwt.Token) (interface{}, error) {
		return []byte(srv.config.JWTSecret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	sub, err := claims.GetSubject()
	require.NoError(t, err)
	assert.Equal(t, "1", sub)
	assert.Equal(t, uint(1), userID)
	// Only identity and lifetime travel in the token.
	assert.NotContains(t, claims, "email")
	assert.NotContains(t, claims, "name")
}

func TestGetAuthUser(t *testing.T) {
	app, _ := newTestApp(t)

	token, _ := registerUser(t, app, "Auth User", "authuser@example.com", "secret123")

	t.Run("Returns user without password", func(t *testing.T) {
		status, me := doJSON(t, app, http.MethodGet, "/api/auth", token, nil)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "Auth User", me["name"])
		assert.Equal(t, "authuser@example.com", me["email"])
		assert.NotContains(t, me, "password")
	})

	t.Run("Missing token", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodGet, "/api/auth", "", nil)
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "MISSING_TOKEN", body["code"])
	})

	t.Run("Garbage token", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodGet, "/api/auth", "not.a.token", nil)
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "INVALID_TOKEN", body["code"])
	})
}

func TestExpiredTokenRejected(t *testing.T) {
	app, srv := newTestApp(t)

	registerUser(t, app, "Expired User", "expired@example.com", "secret123")

	claims := jwt.MapClaims{
		"sub": "1",
		"exp": int64(1000000000), // long past
		"iat": int64(999990000),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(srv.config.JWTSecret))
	require.NoError(t, err)

	status, body := doJSON(t, app, fiber.MethodGet, "/api/auth", expired, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "INVALID_TOKEN", body["code"])
}
