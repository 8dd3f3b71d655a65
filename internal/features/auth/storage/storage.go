package storage

import (
	"context"

	"backoffice-telegram-auth/internal/features/auth/models"
)

// Фиксированные ключи клиентского хранилища
const (
	AccessTokenKey  = "auth_access_token"
	RefreshTokenKey = "auth_refresh_token"
	UserDataKey     = "auth_user_data"
)

// TokenStore определяет методы для работы с персистентным хранилищем
// токенов и кэшированного профиля.
//
// ClearTokens выполняет три независимых удаления без транзакции: при сбое
// хранилища посередине возможно частичное состояние. Конкурирующие логины
// также не координируются — пишет последний.
type TokenStore interface {
	SetTokens(ctx context.Context, tokens models.AuthTokens) error
	GetAccessToken(ctx context.Context) (string, error)
	GetRefreshToken(ctx context.Context) (string, error)
	HasTokens(ctx context.Context) (bool, error)
	SetUserData(ctx context.Context, user *models.User) error
	GetUserData(ctx context.Context) (*models.User, error)
	ClearTokens(ctx context.Context) error
}
