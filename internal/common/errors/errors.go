package errors

import (
	"errors"
	"fmt"
)

// ErrorCode представляет код ошибки
type ErrorCode string

const (
	// Ошибки конфигурации и использования
	ErrCodeConfiguration ErrorCode = "CONFIGURATION_ERROR"
	ErrCodeNoInitData    ErrorCode = "NO_INIT_DATA"

	// Ошибки API аутентификации
	ErrCodeAuthAPI        ErrorCode = "AUTH_API_ERROR"
	ErrCodeSessionExpired ErrorCode = "SESSION_EXPIRED"

	// Локально поглощаемые ошибки
	ErrCodeValidationGap ErrorCode = "VALIDATION_GAP"
)

// AppError представляет типизированную ошибку приложения
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Cause   error     `json:"-"`
}

// Error возвращает строковое представление ошибки
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap возвращает причину ошибки
func (e *AppError) Unwrap() error {
	return e.Cause
}

// New создает новую ошибку приложения
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap оборачивает существующую ошибку
func Wrap(err error, code ErrorCode, message string) *AppError {
	appErr := New(code, message)
	appErr.Cause = err
	return appErr
}

// AsAppError приводит ошибку к AppError
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// AuthAPIError представляет ошибку HTTP-вызова к бэкенду аутентификации.
// Несет HTTP-статус и опциональный прикладной код из тела ответа.
type AuthAPIError struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
	Code       string `json:"code,omitempty"`
}

func (e *AuthAPIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("auth api: %s (status %d, code %s)", e.Message, e.StatusCode, e.Code)
	}
	return fmt.Sprintf("auth api: %s (status %d)", e.Message, e.StatusCode)
}

// NewAuthAPIError создает ошибку API аутентификации
func NewAuthAPIError(message string, statusCode int, code string) *AuthAPIError {
	return &AuthAPIError{Message: message, StatusCode: statusCode, Code: code}
}

// AsAuthAPIError приводит ошибку к AuthAPIError
func AsAuthAPIError(err error) (*AuthAPIError, bool) {
	var apiErr *AuthAPIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// NewConfigurationError создает ошибку использования вне провайдера
func NewConfigurationError(message string) *AppError {
	return New(ErrCodeConfiguration, message)
}

// NewSessionExpiredError создает ошибку истекшей сессии
func NewSessionExpiredError(cause error) *AppError {
	return Wrap(cause, ErrCodeSessionExpired, "Session expired. Please login again.")
}
