package models

import "time"

// User представляет профиль пользователя Backoffice.
// Собирается либо из initData Telegram Mini App, либо из payload
// Telegram Login Widget; roles/permissions от Telegram не приходят.
type User struct {
	ID           int64    `json:"id"`
	TelegramID   int64    `json:"telegramId"`
	FirstName    string   `json:"firstName"`
	LastName     string   `json:"lastName,omitempty"`
	Username     string   `json:"username,omitempty"`
	PhotoURL     string   `json:"photoUrl,omitempty"`
	LanguageCode string   `json:"languageCode,omitempty"`
	IsPremium    bool     `json:"isPremium,omitempty"`
	Roles        []string `json:"roles"`
	Permissions  []string `json:"permissions"`
	CreatedAt    string   `json:"createdAt"`
	UpdatedAt    string   `json:"updatedAt"`
}

// AuthTokens содержит пару токенов сессии
type AuthTokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// WidgetLoginRequest представляет payload Telegram Login Widget.
// Поле AuthKey заполняется только при авторизации по deep link.
type WidgetLoginRequest struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	Username  string `json:"username,omitempty"`
	PhotoURL  string `json:"photo_url,omitempty"`
	AuthDate  int64  `json:"auth_date"`
	Hash      string `json:"hash"`
	AuthKey   string `json:"auth_key,omitempty"`
}

// WebAppLoginRequest представляет запрос авторизации через Mini App
type WebAppLoginRequest struct {
	InitDataRaw string `json:"initDataRaw"`
}

// NewUserFromWidget синтезирует профиль из payload Login Widget
func NewUserFromWidget(payload WidgetLoginRequest) *User {
	now := time.Now().UTC().Format(time.RFC3339)
	return &User{
		ID:          payload.ID,
		TelegramID:  payload.ID,
		FirstName:   payload.FirstName,
		LastName:    payload.LastName,
		Username:    payload.Username,
		PhotoURL:    payload.PhotoURL,
		Roles:       []string{},
		Permissions: []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// NewUserFromTelegram синтезирует профиль из unsafe-части initData
func NewUserFromTelegram(id int64, firstName, username, photoURL string) *User {
	now := time.Now().UTC().Format(time.RFC3339)
	return &User{
		ID:          id,
		TelegramID:  id,
		FirstName:   firstName,
		Username:    username,
		PhotoURL:    photoURL,
		Roles:       []string{},
		Permissions: []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// HasRole проверяет наличие роли у пользователя
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// HasPermission проверяет наличие разрешения у пользователя
func (u *User) HasPermission(permission string) bool {
	for _, p := range u.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}
