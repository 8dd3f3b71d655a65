package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	apperrors "backoffice-telegram-auth/internal/common/errors"
	"backoffice-telegram-auth/internal/features/auth/models"
	"backoffice-telegram-auth/internal/features/auth/storage"
)

// Значения заголовка client-type
const (
	ClientTypeWebApp = "WEB-APP"
	ClientTypeWeb    = "WEB"
)

// Client выполняет HTTP-вызовы к бэкенду аутентификации Backoffice.
// Токены для refresh/profile/logout берутся напрямую из TokenStore.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      storage.TokenStore
	clientType string
	logger     zerolog.Logger
}

// NewClient создает клиент API. webApp выбирает значение заголовка
// client-type: WEB-APP внутри Telegram, WEB в обычном браузере.
// Таймауты не настраиваются — используется дефолт http.Client.
func NewClient(baseURL string, httpClient *http.Client, store storage.TokenStore, webApp bool, logger zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	clientType := ClientTypeWeb
	if webApp {
		clientType = ClientTypeWebApp
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		store:      store,
		clientType: clientType,
		logger:     logger,
	}
}

// LoginViaTelegramWebApp авторизует по сырой строке initData Mini App
func (c *Client) LoginViaTelegramWebApp(ctx context.Context, initDataRaw string) (*models.AuthTokens, error) {
	request := models.WebAppLoginRequest{InitDataRaw: initDataRaw}
	headers := map[string]string{
		"Authorization": "tma " + initDataRaw,
	}

	var tokens models.AuthTokens
	if err := c.do(ctx, http.MethodPost, "/api/auth/telegram/webapp", headers, request, &tokens); err != nil {
		return nil, err
	}
	return &tokens, nil
}

// LoginViaTelegramWidget авторизует по payload Telegram Login Widget
func (c *Client) LoginViaTelegramWidget(ctx context.Context, payload models.WidgetLoginRequest) (*models.AuthTokens, error) {
	var tokens models.AuthTokens
	if err := c.do(ctx, http.MethodPost, "/api/auth/telegram/login", nil, payload, &tokens); err != nil {
		return nil, err
	}
	return &tokens, nil
}

// RefreshTokens обменивает refresh-токен из хранилища на новую пару.
// Без refresh-токена запрос не выполняется вовсе.
func (c *Client) RefreshTokens(ctx context.Context) (*models.AuthTokens, error) {
	refreshToken, err := c.store.GetRefreshToken(ctx)
	if err != nil {
		return nil, err
	}
	if refreshToken == "" {
		return nil, apperrors.NewAuthAPIError("No refresh token available", http.StatusUnauthorized, "")
	}

	request := map[string]string{"refreshToken": refreshToken}

	var tokens models.AuthTokens
	if err := c.do(ctx, http.MethodPost, "/api/auth/telegram/refresh", nil, request, &tokens); err != nil {
		return nil, err
	}
	return &tokens, nil
}

// GetProfile запрашивает профиль текущего пользователя
func (c *Client) GetProfile(ctx context.Context) (*models.User, error) {
	accessToken, err := c.store.GetAccessToken(ctx)
	if err != nil {
		return nil, err
	}
	if accessToken == "" {
		return nil, apperrors.NewAuthAPIError("No access token available", http.StatusUnauthorized, "")
	}

	headers := map[string]string{
		"Authorization": "Bearer " + accessToken,
	}

	var user models.User
	if err := c.do(ctx, http.MethodGet, "/auth/profile", headers, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout уведомляет бэкенд о выходе. Ошибка HTTP поглощается:
// локальная очистка сессии от нее не зависит.
func (c *Client) Logout(ctx context.Context) error {
	refreshToken, err := c.store.GetRefreshToken(ctx)
	if err != nil || refreshToken == "" {
		return nil
	}

	if err := c.do(ctx, http.MethodPost, "/api/auth/telegram/logout", nil, nil, nil); err != nil {
		c.logger.Debug().Err(err).Msg("logout request failed, ignoring")
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, headers map[string]string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("client-type", c.clientType)
	for name, value := range headers {
		req.Header.Set(name, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(data, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
