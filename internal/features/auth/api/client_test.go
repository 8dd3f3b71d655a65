package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "backoffice-telegram-auth/internal/common/errors"
	"backoffice-telegram-auth/internal/features/auth/api"
	"backoffice-telegram-auth/internal/features/auth/models"
	"backoffice-telegram-auth/internal/features/auth/storage"
)

// stubBackend — заглушка бэкенда аутентификации Backoffice
type stubBackend struct {
	server *httptest.Server

	webappRequests  int
	widgetRequests  int
	refreshRequests int
	logoutRequests  int

	lastAuthorization string
	lastClientType    string
	lastRefreshToken  string
}

func newStubBackend(t *testing.T) *stubBackend {
	t.Helper()
	gin.SetMode(gin.TestMode)

	backend := &stubBackend{}
	router := gin.New()

	router.POST("/api/auth/telegram/webapp", func(c *gin.Context) {
		backend.webappRequests++
		backend.lastAuthorization = c.GetHeader("Authorization")
		backend.lastClientType = c.GetHeader("client-type")
		c.JSON(http.StatusOK, gin.H{"accessToken": "access-twa", "refreshToken": "refresh-twa"})
	})

	router.POST("/api/auth/telegram/login", func(c *gin.Context) {
		backend.widgetRequests++
		backend.lastClientType = c.GetHeader("client-type")

		var payload models.WidgetLoginRequest
		if err := c.ShouldBindJSON(&payload); err != nil || payload.Hash == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid widget payload", "code": "INVALID_PAYLOAD"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"accessToken": "access-widget", "refreshToken": "refresh-widget"})
	})

	router.POST("/api/auth/telegram/refresh", func(c *gin.Context) {
		backend.refreshRequests++

		var body struct {
			RefreshToken string `json:"refreshToken"`
		}
		_ = c.ShouldBindJSON(&body)
		backend.lastRefreshToken = body.RefreshToken

		if body.RefreshToken != "valid-refresh" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Refresh token revoked", "code": 4011})
			return
		}
		c.JSON(http.StatusOK, gin.H{"accessToken": "access-new", "refreshToken": "refresh-new"})
	})

	router.GET("/auth/profile", func(c *gin.Context) {
		backend.lastAuthorization = c.GetHeader("Authorization")
		if backend.lastAuthorization != "Bearer valid-access" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid access token"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"id": 1, "telegramId": 1, "firstName": "John",
			"roles": []string{"admin"}, "permissions": []string{"users:read"},
		})
	})

	router.POST("/api/auth/telegram/logout", func(c *gin.Context) {
		backend.logoutRequests++
		c.Status(http.StatusNoContent)
	})

	backend.server = httptest.NewServer(router)
	t.Cleanup(backend.server.Close)
	return backend
}

func newClientForTest(t *testing.T, backend *stubBackend, webApp bool) (*api.Client, storage.TokenStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	client := api.NewClient(backend.server.URL, backend.server.Client(), store, webApp, zerolog.Nop())
	return client, store
}

func TestLoginViaTelegramWebApp(t *testing.T) {
	backend := newStubBackend(t)
	client, _ := newClientForTest(t, backend, true)

	tokens, err := client.LoginViaTelegramWebApp(context.Background(), "raw-init-data")
	require.NoError(t, err)

	assert.Equal(t, "access-twa", tokens.AccessToken)
	assert.Equal(t, "refresh-twa", tokens.RefreshToken)
	assert.Equal(t, "tma raw-init-data", backend.lastAuthorization)
	assert.Equal(t, api.ClientTypeWebApp, backend.lastClientType)
}

func TestLoginViaTelegramWidget(t *testing.T) {
	backend := newStubBackend(t)
	client, _ := newClientForTest(t, backend, false)

	tokens, err := client.LoginViaTelegramWidget(context.Background(), models.WidgetLoginRequest{
		ID: 1, FirstName: "A", AuthDate: 1000, Hash: "h",
	})
	require.NoError(t, err)

	assert.Equal(t, "access-widget", tokens.AccessToken)
	assert.Equal(t, api.ClientTypeWeb, backend.lastClientType)
}

func TestLoginWidgetErrorBody(t *testing.T) {
	backend := newStubBackend(t)
	client, _ := newClientForTest(t, backend, false)

	_, err := client.LoginViaTelegramWidget(context.Background(), models.WidgetLoginRequest{ID: 1, FirstName: "A"})
	require.Error(t, err)

	apiErr, ok := apperrors.AsAuthAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "Invalid widget payload", apiErr.Message)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "INVALID_PAYLOAD", apiErr.Code)
}

func TestRefreshTokens(t *testing.T) {
	backend := newStubBackend(t)
	client, store := newClientForTest(t, backend, false)

	ctx := context.Background()
	require.NoError(t, store.SetTokens(ctx, models.AuthTokens{AccessToken: "x", RefreshToken: "valid-refresh"}))

	tokens, err := client.RefreshTokens(ctx)
	require.NoError(t, err)
	assert.Equal(t, "access-new", tokens.AccessToken)
	assert.Equal(t, "valid-refresh", backend.lastRefreshToken)
}

func TestRefreshTokensNumericCode(t *testing.T) {
	backend := newStubBackend(t)
	client, store := newClientForTest(t, backend, false)

	ctx := context.Background()
	require.NoError(t, store.SetTokens(ctx, models.AuthTokens{AccessToken: "x", RefreshToken: "revoked"}))

	_, err := client.RefreshTokens(ctx)
	require.Error(t, err)

	apiErr, ok := apperrors.AsAuthAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "Refresh token revoked", apiErr.Message)
	// Числовой код приводится к строке
	assert.Equal(t, "4011", apiErr.Code)
}

func TestRefreshTokensWithoutToken(t *testing.T) {
	backend := newStubBackend(t)
	client, _ := newClientForTest(t, backend, false)

	_, err := client.RefreshTokens(context.Background())
	require.Error(t, err)

	apiErr, ok := apperrors.AsAuthAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	// До HTTP дело не дошло
	assert.Zero(t, backend.refreshRequests)
}

func TestGetProfile(t *testing.T) {
	backend := newStubBackend(t)
	client, store := newClientForTest(t, backend, false)

	ctx := context.Background()
	require.NoError(t, store.SetTokens(ctx, models.AuthTokens{AccessToken: "valid-access", RefreshToken: "r"}))

	user, err := client.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, []string{"admin"}, user.Roles)
	assert.Equal(t, "Bearer valid-access", backend.lastAuthorization)
}

func TestGetProfileWithoutToken(t *testing.T) {
	backend := newStubBackend(t)
	client, _ := newClientForTest(t, backend, false)

	_, err := client.GetProfile(context.Background())
	require.Error(t, err)

	apiErr, ok := apperrors.AsAuthAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestLogoutBestEffort(t *testing.T) {
	backend := newStubBackend(t)
	client, store := newClientForTest(t, backend, false)

	ctx := context.Background()

	// Без refresh-токена запрос не выполняется
	require.NoError(t, client.Logout(ctx))
	assert.Zero(t, backend.logoutRequests)

	require.NoError(t, store.SetTokens(ctx, models.AuthTokens{AccessToken: "a", RefreshToken: "r"}))
	require.NoError(t, client.Logout(ctx))
	assert.Equal(t, 1, backend.logoutRequests)
}

func TestUnknownErrorBodyShape(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/auth/telegram/login", func(c *gin.Context) {
		c.String(http.StatusInternalServerError, "<html>boom</html>")
	})
	server := httptest.NewServer(router)
	defer server.Close()

	client := api.NewClient(server.URL, server.Client(), storage.NewMemoryStore(), false, zerolog.Nop())

	_, err := client.LoginViaTelegramWidget(context.Background(), models.WidgetLoginRequest{ID: 1, FirstName: "A", Hash: "h"})
	require.Error(t, err)

	apiErr, ok := apperrors.AsAuthAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "Network error", apiErr.Message)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Empty(t, apiErr.Code)
}
