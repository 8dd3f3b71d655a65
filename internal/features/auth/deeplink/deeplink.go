package deeplink

import (
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"

	"backoffice-telegram-auth/internal/features/auth/models"
)

// Параметры запроса deep-link авторизации
const (
	AuthKeyParam  = "auth_key"
	UserDataParam = "user_data"
)

// UserData представляет URL-закодированный JSON из параметра user_data
type UserData struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	Username  string `json:"username,omitempty"`
	PhotoURL  string `json:"photo_url,omitempty"`
	AuthDate  int64  `json:"auth_date,omitempty"`
	Hash      string `json:"hash,omitempty"`
}

// GenerateAuthKey выдает ключ для связывания deep-link авторизации
func GenerateAuthKey() string {
	return uuid.NewString()
}

// BuildStartLink строит ссылку t.me, открывающую Mini App бота
func BuildStartLink(botName string) string {
	return fmt.Sprintf("https://t.me/%s?startapp", botName)
}

// Parse извлекает auth_key и user_data из параметров запроса.
// Параметры потребляются один раз: после успешного разбора вызывающий
// обязан убрать их из URL через Strip. Битый JSON в user_data не
// фатален — пара просто считается отсутствующей.
func Parse(query url.Values) (string, *UserData, bool) {
	authKey := query.Get(AuthKeyParam)
	rawData := query.Get(UserDataParam)
	if authKey == "" || rawData == "" {
		return "", nil, false
	}

	var data UserData
	if err := json.Unmarshal([]byte(rawData), &data); err != nil {
		return "", nil, false
	}

	return authKey, &data, true
}

// Strip удаляет параметры deep-link, сохраняя остальные
func Strip(query url.Values) url.Values {
	stripped := url.Values{}
	for name, values := range query {
		if name == AuthKeyParam || name == UserDataParam {
			continue
		}
		stripped[name] = values
	}
	return stripped
}

// WidgetPayload собирает payload widget-логина из данных deep link.
// Отсутствующий auth_date заменяется текущим временем.
func WidgetPayload(authKey string, data *UserData) models.WidgetLoginRequest {
	authDate := data.AuthDate
	if authDate == 0 {
		authDate = time.Now().Unix()
	}

	return models.WidgetLoginRequest{
		ID:        data.ID,
		FirstName: data.FirstName,
		LastName:  data.LastName,
		Username:  data.Username,
		PhotoURL:  data.PhotoURL,
		AuthDate:  authDate,
		Hash:      data.Hash,
		AuthKey:   authKey,
	}
}
