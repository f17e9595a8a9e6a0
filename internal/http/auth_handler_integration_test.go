//go:build integration

package http

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/budget-service/internal/domain/dto"
)

func TestAuthHandler_Login_Integration(t *testing.T) {
	t.Run("register then login", func(t *testing.T) {
		router, _ := setupIntegrationRouter(t)
		registerUser(t, router, "test@example.com", "testuser")

		w := serve(router, http.MethodPost, "/api/auth/login", `{"email": "Test@Example.com", "password": "password123"}`, nil)
		require.Equal(t, http.StatusOK, w.Code, "Login should succeed after registration: %s", w.Body.String())

		resp := decodeData[dto.LoginResponse](t, w)
		assert.NotEmpty(t, resp.Token)
		assert.NotEmpty(t, resp.RefreshToken)
		assert.Equal(t, "test@example.com", resp.User.Email)
		assert.False(t, resp.User.Admin)
	})

	t.Run("admin allow-list", func(t *testing.T) {
		router, _ := setupIntegrationRouter(t)
		registerUser(t, router, integrationAdminEmail, "admin")

		w := serve(router, http.MethodPost, "/api/auth/login", `{"email": "`+integrationAdminEmail+`", "password": "password123"}`, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.True(t, decodeData[dto.LoginResponse](t, w).User.Admin)
	})

	t.Run("login with invalid credentials", func(t *testing.T) {
		router, _ := setupIntegrationRouter(t)

		w := serve(router, http.MethodPost, "/api/auth/login", `{"email": "nonexistent@example.com", "password": "wrongpassword"}`, nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthHandler_Register_Integration(t *testing.T) {
	t.Run("duplicate email registration", func(t *testing.T) {
		router, _ := setupIntegrationRouter(t)
		body, _ := json.Marshal(dto.RegisterRequest{
			Email:    "duplicate@example.com",
			Username: "duplicateuser",
			Password: "password123",
			Name:     "First User",
		})

		w := serve(router, http.MethodPost, "/api/auth/register", string(body), nil)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = serve(router, http.MethodPost, "/api/auth/register", string(body), nil)
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestAuthHandler_RefreshToken_Integration(t *testing.T) {
	t.Run("successful token refresh rotates the refresh token", func(t *testing.T) {
		router, _ := setupIntegrationRouter(t)
		body, _ := json.Marshal(dto.RegisterRequest{
			Email:    "refreshtest@example.com",
			Username: "refreshtest",
			Password: "password123",
		})
		w := serve(router, http.MethodPost, "/api/auth/register", string(body), nil)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		registered := decodeData[dto.LoginResponse](t, w)

		// JWT timestamps have second resolution.
		time.Sleep(time.Second)

		w = serve(router, http.MethodPost, "/api/auth/refresh", "", map[string]string{RefreshTokenHeader: registered.RefreshToken})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		refreshed := decodeData[dto.LoginResponse](t, w)
		assert.NotEmpty(t, refreshed.Token)
		assert.NotEqual(t, registered.Token, refreshed.Token)

		w = serve(router, http.MethodPost, "/api/auth/refresh", "", map[string]string{RefreshTokenHeader: registered.RefreshToken})
		assert.Equal(t, http.StatusUnauthorized, w.Code, "a used refresh token must not be accepted twice")
	})

	t.Run("refresh with invalid token", func(t *testing.T) {
		router, _ := setupIntegrationRouter(t)

		w := serve(router, http.MethodPost, "/api/auth/refresh", "", map[string]string{RefreshTokenHeader: "invalid-refresh-token"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthHandler_Logout_Integration(t *testing.T) {
	t.Run("logout revokes the access token", func(t *testing.T) {
		router, _ := setupIntegrationRouter(t)
		body, _ := json.Marshal(dto.RegisterRequest{
			Email:    "logouttest@example.com",
			Username: "logouttest",
			Password: "password123",
		})
		w := serve(router, http.MethodPost, "/api/auth/register", string(body), nil)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		registered := decodeData[dto.LoginResponse](t, w)
		bearer := map[string]string{"Authorization": "Bearer " + registered.Token}

		w = serve(router, http.MethodGet, "/api/budget", "", bearer)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = serve(router, http.MethodPost, "/api/auth/logout", "", map[string]string{
			"Authorization":    "Bearer " + registered.Token,
			RefreshTokenHeader: registered.RefreshToken,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = serve(router, http.MethodGet, "/api/budget", "", bearer)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
