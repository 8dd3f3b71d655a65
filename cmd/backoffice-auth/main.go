package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"

	"backoffice-telegram-auth/internal/common/config"
	"backoffice-telegram-auth/internal/common/logger"
	"backoffice-telegram-auth/internal/features/auth/api"
	"backoffice-telegram-auth/internal/features/auth/session"
	"backoffice-telegram-auth/internal/features/auth/storage"
	"backoffice-telegram-auth/internal/features/i18n"
	redisplatform "backoffice-telegram-auth/internal/platform/redis"
	"backoffice-telegram-auth/internal/platform/telegram"
)

// envBridge подменяет мост Mini App в headless-запуске: initData
// приходит из окружения, UI-операции ничего не делают.
type envBridge struct {
	initData string
}

func (b *envBridge) Ready()                                          {}
func (b *envBridge) InitData() string                                { return b.initData }
func (b *envBridge) Platform() string                                { return "headless" }
func (b *envBridge) Version() string                                 { return "" }
func (b *envBridge) ColorScheme() string                             { return "light" }
func (b *envBridge) Expand()                                         {}
func (b *envBridge) Close()                                          {}
func (b *envBridge) ShowAlert(string)                                {}
func (b *envBridge) ShowConfirm(string) bool                         { return false }
func (b *envBridge) ImpactOccurred(telegram.HapticStyle)             {}
func (b *envBridge) NotificationOccurred(telegram.HapticStyle)       {}
func (b *envBridge) SelectionChanged()                               {}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	logger.Init("backoffice-auth", cfg.Debug)

	store, err := buildStore(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open token store")
	}

	var bridge telegram.Bridge
	if cfg.Telegram.InitData != "" {
		bridge = &envBridge{initData: cfg.Telegram.InitData}
	}
	tgClient := telegram.NewClient(bridge)

	apiClient := api.NewClient(cfg.API.BaseURL, http.DefaultClient, store, tgClient.IsAvailable(), logger.With("auth-api"))
	controller := session.NewController(apiClient, store, tgClient, logger.With("session"))

	lang, ok := i18n.ParseLanguage(cfg.Language.Default)
	if !ok {
		lang = i18n.LanguageEN
	}
	t := i18n.Translator(lang, i18n.Auth)

	controller.SetListener(func(state session.State) {
		logger.Debug().
			Bool("isAuthenticated", state.IsAuthenticated).
			Bool("isLoading", state.IsLoading).
			Str("error", state.Error).
			Msg("session state changed")
	})

	logger.Info().Msg(t("auth.authenticating", nil))
	controller.Initialize(ctx)

	state := controller.State()
	switch {
	case state.IsAuthenticated:
		event := logger.Info()
		if state.User != nil {
			event = event.Int64("userId", state.User.ID)
		}
		if token, err := controller.GetAccessToken(ctx); err == nil && token != "" {
			event = event.Bool("hasAccessToken", true)
		}
		event.Msg(t("auth.loggedInSuccessfully", nil))
	case state.Error != "":
		logger.Error().Str("reason", state.Error).Msg(t("auth.loginFailed", nil))
	default:
		logger.Info().Msg(t("auth.clickToSignIn", nil))
	}
}

func buildStore(ctx context.Context, cfg *config.Config) (storage.TokenStore, error) {
	if cfg.Storage.Backend == "redis" {
		client, err := redisplatform.OpenFromConfig(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return storage.NewRedisStore(client.Client, "backoffice"), nil
	}
	return storage.NewMemoryStore(), nil
}
