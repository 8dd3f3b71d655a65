package storage

import (
	"context"
	"encoding/json"
	"sync"

	"backoffice-telegram-auth/internal/features/auth/models"
)

// MemoryStore хранит токены в памяти процесса. Используется в тестах
// и в headless-запусках без внешнего хранилища.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) SetTokens(_ context.Context, tokens models.AuthTokens) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[AccessTokenKey] = tokens.AccessToken
	s.values[RefreshTokenKey] = tokens.RefreshToken
	return nil
}

func (s *MemoryStore) GetAccessToken(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[AccessTokenKey], nil
}

func (s *MemoryStore) GetRefreshToken(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[RefreshTokenKey], nil
}

func (s *MemoryStore) HasTokens(_ context.Context) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[AccessTokenKey] != "" && s.values[RefreshTokenKey] != "", nil
}

func (s *MemoryStore) SetUserData(_ context.Context, user *models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[UserDataKey] = string(data)
	return nil
}

func (s *MemoryStore) GetUserData(_ context.Context) (*models.User, error) {
	s.mu.RLock()
	raw := s.values[UserDataKey]
	s.mu.RUnlock()

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

func (s *MemoryStore) ClearTokens(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, AccessTokenKey)
	delete(s.values, RefreshTokenKey)
	delete(s.values, UserDataKey)
	return nil
}
