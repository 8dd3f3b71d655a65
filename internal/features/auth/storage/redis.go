package storage

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	"backoffice-telegram-auth/internal/features/auth/models"
)

// RedisStore хранит токены в Redis. Prefix позволяет разделить
// несколько независимых сессий в одном инстансе.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(name string) string {
	if s.prefix == "" {
		return name
	}
	return s.prefix + ":" + name
}

func (s *RedisStore) get(ctx context.Context, name string) (string, error) {
	val, err := s.client.Get(ctx, s.key(name)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (s *RedisStore) SetTokens(ctx context.Context, tokens models.AuthTokens) error {
	if err := s.client.Set(ctx, s.key(AccessTokenKey), tokens.AccessToken, 0).Err(); err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(RefreshTokenKey), tokens.RefreshToken, 0).Err()
}

func (s *RedisStore) GetAccessToken(ctx context.Context) (string, error) {
	return s.get(ctx, AccessTokenKey)
}

func (s *RedisStore) GetRefreshToken(ctx context.Context) (string, error) {
	return s.get(ctx, RefreshTokenKey)
}

func (s *RedisStore) HasTokens(ctx context.Context) (bool, error) {
	access, err := s.get(ctx, AccessTokenKey)
	if err != nil {
		return false, err
	}
	refresh, err := s.get(ctx, RefreshTokenKey)
	if err != nil {
		return false, err
	}
	return access != "" && refresh != "", nil
}

func (s *RedisStore) SetUserData(ctx context.Context, user *models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(UserDataKey), string(data), 0).Err()
}

func (s *RedisStore) GetUserData(ctx context.Context) (*models.User, error) {
	raw, err := s.get(ctx, UserDataKey)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}

	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		// Битый кэш профиля не фатален: считаем, что профиля нет
		return nil, nil
	}
	return &user, nil
}

// ClearTokens удаляет токены и кэш профиля. Три независимых удаления,
// без транзакции.
func (s *RedisStore) ClearTokens(ctx context.Context) error {
	for _, name := range []string{AccessTokenKey, RefreshTokenKey, UserDataKey} {
		if err := s.client.Del(ctx, s.key(name)).Err(); err != nil {
			return err
		}
	}
	return nil
}
