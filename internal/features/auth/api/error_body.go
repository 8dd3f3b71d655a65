package api

import (
	"encoding/json"
	"strconv"

	apperrors "backoffice-telegram-auth/internal/common/errors"
)

// errorBody описывает известную форму тела ошибки бэкенда.
// Оба поля опциональны; code приходит строкой или числом.
type errorBody struct {
	Message json.RawMessage `json:"message"`
	Code    json.RawMessage `json:"code"`
}

// decodeAPIError разбирает тело не-2xx ответа в AuthAPIError.
// Неизвестная форма тела (не JSON, не объект, message не строка)
// дает вариант по умолчанию: "Network error" без прикладного кода.
func decodeAPIError(data []byte, statusCode int) *apperrors.AuthAPIError {
	message := "Network error"
	code := ""

	var body errorBody
	if err := json.Unmarshal(data, &body); err == nil {
		if s, ok := decodeString(body.Message); ok {
			message = s
		}
		code = decodeCode(body.Code)
	}

	return apperrors.NewAuthAPIError(message, statusCode, code)
}

func decodeString(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// decodeCode принимает строковый или числовой код, остальное отбрасывает
func decodeCode(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}

	return ""
}
