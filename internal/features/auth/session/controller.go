package session

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	initdata "github.com/telegram-mini-apps/init-data-golang"

	apperrors "backoffice-telegram-auth/internal/common/errors"
	"backoffice-telegram-auth/internal/features/auth/models"
	"backoffice-telegram-auth/internal/features/auth/storage"
)

// LoginMethod выбирает способ авторизации
type LoginMethod string

const (
	MethodTWA    LoginMethod = "twa"
	MethodWidget LoginMethod = "widget"
)

// Сообщения об ошибках, видимые в состоянии сессии
const (
	msgLoginFailed    = "Login failed"
	msgTWAAuthFailed  = "Telegram Web App authentication failed"
	msgSessionExpired = "Session expired. Please login again."
)

// AuthAPI описывает вызовы к бэкенду аутентификации
type AuthAPI interface {
	LoginViaTelegramWebApp(ctx context.Context, initDataRaw string) (*models.AuthTokens, error)
	LoginViaTelegramWidget(ctx context.Context, payload models.WidgetLoginRequest) (*models.AuthTokens, error)
	RefreshTokens(ctx context.Context) (*models.AuthTokens, error)
	GetProfile(ctx context.Context) (*models.User, error)
	Logout(ctx context.Context) error
}

// TelegramClient описывает часть адаптера Mini App, нужную контроллеру
type TelegramClient interface {
	IsAvailable() bool
	InitData() string
	InitDataUnsafe() *initdata.InitData
	Close()
}

// Controller управляет жизненным циклом сессии: login/logout/refresh и
// восстановление при старте. Единственный владелец состояния; сам стор
// между вызовами не блокируется — два конкурирующих логина перезапишут
// друг друга по принципу «пишет последний».
type Controller struct {
	api      AuthAPI
	store    storage.TokenStore
	telegram TelegramClient
	logger   zerolog.Logger

	mu       sync.Mutex
	state    State
	listener func(State)

	initOnce sync.Once
}

func NewController(api AuthAPI, store storage.TokenStore, telegram TelegramClient, logger zerolog.Logger) *Controller {
	return &Controller{
		api:      api,
		store:    store,
		telegram: telegram,
		logger:   logger,
	}
}

// State возвращает снимок текущего состояния
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetListener регистрирует колбэк, вызываемый после каждого перехода.
// Слой представления перерисовывается из переданного снимка.
func (c *Controller) SetListener(listener func(State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listener = listener
}

func (c *Controller) dispatch(mutate func(*State)) {
	c.mu.Lock()
	mutate(&c.state)
	snapshot := c.state
	listener := c.listener
	c.mu.Unlock()

	if listener != nil {
		listener(snapshot)
	}
}

// Login выполняет авторизацию выбранным способом. Для twa параметр
// widget игнорируется: initData берется из адаптера. Ошибка видна в
// состоянии и возвращается вызывающему.
func (c *Controller) Login(ctx context.Context, method LoginMethod, widget *models.WidgetLoginRequest) error {
	c.dispatch(func(s *State) { s.setLoading(true) })
	c.dispatch(func(s *State) { s.setError("") })

	defer c.dispatch(func(s *State) { s.setLoading(false) })

	var tokens *models.AuthTokens

	switch method {
	case MethodTWA:
		initDataRaw := c.telegram.InitData()
		if initDataRaw == "" {
			err := apperrors.New(apperrors.ErrCodeNoInitData, "No TWA initData available")
			c.dispatch(func(s *State) { s.setError(err.Message) })
			return err
		}

		var err error
		tokens, err = c.api.LoginViaTelegramWebApp(ctx, initDataRaw)
		if err != nil {
			return c.failLogin(err)
		}

		// Профиль синтезируется из unsafe-части initData: бэкенд
		// на этом эндпоинте пользователя не возвращает
		if parsed := c.telegram.InitDataUnsafe(); parsed != nil && parsed.User.ID != 0 {
			user := models.NewUserFromTelegram(
				parsed.User.ID,
				parsed.User.FirstName,
				parsed.User.Username,
				parsed.User.PhotoURL,
			)
			if err := c.store.SetUserData(ctx, user); err != nil {
				c.logger.Warn().Err(err).Msg("failed to cache user profile")
			}
			c.dispatch(func(s *State) { s.setUser(user) })
		}

	case MethodWidget:
		if widget == nil {
			err := apperrors.New(apperrors.ErrCodeValidationGap, "widget payload required")
			c.dispatch(func(s *State) { s.setError(err.Message) })
			return err
		}

		var err error
		tokens, err = c.api.LoginViaTelegramWidget(ctx, *widget)
		if err != nil {
			return c.failLogin(err)
		}

		user := models.NewUserFromWidget(*widget)
		if err := c.store.SetUserData(ctx, user); err != nil {
			c.logger.Warn().Err(err).Msg("failed to cache user profile")
		}
		c.dispatch(func(s *State) { s.setUser(user) })

	default:
		err := apperrors.New(apperrors.ErrCodeValidationGap, "unknown login method: "+string(method))
		c.dispatch(func(s *State) { s.setError(err.Message) })
		return err
	}

	if err := c.store.SetTokens(ctx, *tokens); err != nil {
		return c.failLogin(err)
	}
	c.dispatch(func(s *State) { s.setAuthenticated(true) })

	c.logger.Info().Str("method", string(method)).Msg("authentication successful")
	return nil
}

func (c *Controller) failLogin(err error) error {
	message := errorMessage(err)
	if message == "" {
		message = msgLoginFailed
	}
	c.dispatch(func(s *State) { s.setError(message) })
	c.logger.Warn().Err(err).Msg("authentication failed")
	return err
}

// Initialize восстанавливает сессию при старте. Выполняется один раз;
// повторные вызовы игнорируются. Приоритет: авто-логин через Mini App,
// затем возобновление по сохраненным токенам, иначе анонимное состояние.
// Все сбои отражаются в состоянии и не возвращаются вызывающему.
func (c *Controller) Initialize(ctx context.Context) {
	c.initOnce.Do(func() { c.initialize(ctx) })
}

func (c *Controller) initialize(ctx context.Context) {
	// Mini App проверяется первым для бесшовной авторизации
	if c.telegram.IsAvailable() {
		if c.telegram.InitData() != "" {
			c.dispatch(func(s *State) { s.setLoading(true) })
			if err := c.Login(ctx, MethodTWA, nil); err != nil {
				// Без отката на токены: ошибка Mini App терминальна
				c.dispatch(func(s *State) { s.setError(msgTWAAuthFailed) })
			}
			return
		}
	}

	hasTokens, err := c.store.HasTokens(ctx)
	if err != nil {
		c.logger.Warn().Err(err).Msg("token store unavailable")
	}
	if !hasTokens {
		c.dispatch(func(s *State) { s.setLoading(false) })
		return
	}

	c.dispatch(func(s *State) { s.setLoading(true) })
	defer c.dispatch(func(s *State) { s.setLoading(false) })

	tokens, err := c.api.RefreshTokens(ctx)
	if err != nil {
		if clearErr := c.store.ClearTokens(ctx); clearErr != nil {
			c.logger.Warn().Err(clearErr).Msg("failed to clear tokens")
		}
		c.dispatch(func(s *State) { s.setError(msgSessionExpired) })
		return
	}

	if err := c.store.SetTokens(ctx, *tokens); err != nil {
		c.logger.Warn().Err(err).Msg("failed to persist refreshed tokens")
	}
	user, err := c.store.GetUserData(ctx)
	if err != nil {
		c.logger.Warn().Err(err).Msg("failed to load cached user")
	}
	c.dispatch(func(s *State) { s.setUser(user) })
	c.dispatch(func(s *State) { s.setAuthenticated(true) })
}

// Logout завершает сессию. Вызов бэкенда best-effort: его сбой не
// мешает локальной очистке. Внутри Telegram дополнительно закрывает
// представление Mini App. Никогда не возвращает ошибку.
func (c *Controller) Logout(ctx context.Context) {
	c.dispatch(func(s *State) { s.setLoading(true) })

	_ = c.api.Logout(ctx)

	if err := c.store.ClearTokens(ctx); err != nil {
		c.logger.Warn().Err(err).Msg("failed to clear tokens")
	}
	c.dispatch(func(s *State) { s.reset() })

	if c.telegram.IsAvailable() {
		c.telegram.Close()
	}
}

// Refresh обновляет пару токенов. Сбой означает принудительный выход:
// состояние сбрасывается, токены удаляются, ошибка отдается вызывающему.
func (c *Controller) Refresh(ctx context.Context) error {
	tokens, err := c.api.RefreshTokens(ctx)
	if err != nil {
		if clearErr := c.store.ClearTokens(ctx); clearErr != nil {
			c.logger.Warn().Err(clearErr).Msg("failed to clear tokens")
		}
		c.dispatch(func(s *State) { s.reset() })
		return err
	}

	return c.store.SetTokens(ctx, *tokens)
}

// GetAccessToken синхронно читает токен из хранилища, без побочных эффектов
func (c *Controller) GetAccessToken(ctx context.Context) (string, error) {
	return c.store.GetAccessToken(ctx)
}

// HasPermission проверяет разрешение текущего пользователя
func (c *Controller) HasPermission(permission string) bool {
	c.mu.Lock()
	user := c.state.User
	c.mu.Unlock()

	return user != nil && user.HasPermission(permission)
}

// HasRole проверяет роль текущего пользователя
func (c *Controller) HasRole(role string) bool {
	c.mu.Lock()
	user := c.state.User
	c.mu.Unlock()

	return user != nil && user.HasRole(role)
}

// errorMessage извлекает пользовательское сообщение из ошибки
func errorMessage(err error) string {
	if apiErr, ok := apperrors.AsAuthAPIError(err); ok {
		return apiErr.Message
	}
	if appErr, ok := apperrors.AsAppError(err); ok {
		return appErr.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
