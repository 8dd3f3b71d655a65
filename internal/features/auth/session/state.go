package session

import "backoffice-telegram-auth/internal/features/auth/models"

// State описывает видимое состояние сессии. Снимок неизменяем;
// подписчики получают копию после каждого перехода.
type State struct {
	User            *models.User `json:"user"`
	IsAuthenticated bool         `json:"isAuthenticated"`
	IsLoading       bool         `json:"isLoading"`
	Error           string       `json:"error,omitempty"`
}

// Полный набор переходов состояния. Других мутаций нет.

func (s *State) setLoading(loading bool) {
	s.IsLoading = loading
}

// setError выставляет сообщение об ошибке и всегда сбрасывает loading
func (s *State) setError(message string) {
	s.Error = message
	s.IsLoading = false
}

func (s *State) setUser(user *models.User) {
	s.User = user
}

func (s *State) setAuthenticated(authenticated bool) {
	s.IsAuthenticated = authenticated
}

func (s *State) reset() {
	*s = State{}
}
