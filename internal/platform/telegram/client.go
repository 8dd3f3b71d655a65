package telegram

import (
	initdata "github.com/telegram-mini-apps/init-data-golang"
)

// HapticStyle перечисляет стили тактильной отдачи Mini App
type HapticStyle string

const (
	HapticLight   HapticStyle = "light"
	HapticMedium  HapticStyle = "medium"
	HapticHeavy   HapticStyle = "heavy"
	HapticRigid   HapticStyle = "rigid"
	HapticSoft    HapticStyle = "soft"
	HapticError   HapticStyle = "error"
	HapticSuccess HapticStyle = "success"
	HapticWarning HapticStyle = "warning"
)

// Bridge описывает поверхность WebApp-объекта, внедряемого клиентом
// Telegram в страницу. Реализация приходит от хоста; в тестах
// подставляется фейк.
type Bridge interface {
	Ready()
	InitData() string
	Platform() string
	Version() string
	ColorScheme() string
	Expand()
	Close()
	ShowAlert(message string)
	ShowConfirm(message string) bool
	ImpactOccurred(style HapticStyle)
	NotificationOccurred(style HapticStyle)
	SelectionChanged()
}

// Client оборачивает Bridge и разбирает initData. Конструируется явно
// и передается в контроллер сессии — никакого глобального состояния.
type Client struct {
	bridge Bridge
}

// NewClient создает адаптер поверх моста Mini App. bridge может быть
// nil, если страница открыта вне Telegram; Ready() вызывается сразу,
// как того требует контракт WebApp.
func NewClient(bridge Bridge) *Client {
	c := &Client{bridge: bridge}
	if bridge != nil {
		bridge.Ready()
	}
	return c
}

// IsAvailable сообщает, доступен ли мост и есть ли initData
func (c *Client) IsAvailable() bool {
	return c.bridge != nil && c.bridge.InitData() != ""
}

// InitData возвращает сырую строку initData как есть от Telegram
func (c *Client) InitData() string {
	if c.bridge == nil {
		return ""
	}
	return c.bridge.InitData()
}

// InitDataUnsafe разбирает initData в типизированный payload.
// Подпись не проверяется — это делает бэкенд. Ошибка разбора
// поглощается: вызывающий получает nil, как при отсутствии данных.
func (c *Client) InitDataUnsafe() *initdata.InitData {
	raw := c.InitData()
	if raw == "" {
		return nil
	}

	parsed, err := initdata.Parse(raw)
	if err != nil {
		return nil
	}
	return &parsed
}

func (c *Client) Platform() string {
	if c.bridge == nil {
		return ""
	}
	return c.bridge.Platform()
}

func (c *Client) Version() string {
	if c.bridge == nil {
		return ""
	}
	return c.bridge.Version()
}

func (c *Client) ColorScheme() string {
	if c.bridge == nil {
		return ""
	}
	return c.bridge.ColorScheme()
}

func (c *Client) Expand() {
	if c.bridge != nil {
		c.bridge.Expand()
	}
}

// Close просит хост закрыть представление Mini App
func (c *Client) Close() {
	if c.bridge != nil {
		c.bridge.Close()
	}
}

func (c *Client) ShowAlert(message string) {
	if c.bridge != nil {
		c.bridge.ShowAlert(message)
	}
}

func (c *Client) ShowConfirm(message string) bool {
	if c.bridge == nil {
		return false
	}
	return c.bridge.ShowConfirm(message)
}

// HapticFeedback передает тактильную отдачу хосту, если мост доступен
func (c *Client) HapticFeedback(kind string, style HapticStyle) {
	if c.bridge == nil {
		return
	}

	switch kind {
	case "impact":
		c.bridge.ImpactOccurred(style)
	case "notification":
		c.bridge.NotificationOccurred(style)
	case "selection":
		c.bridge.SelectionChanged()
	}
}
