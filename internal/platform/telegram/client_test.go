package telegram_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice-telegram-auth/internal/platform/telegram"
)

type fakeBridge struct {
	initData string
	ready    bool
	closed   bool
	expanded bool
	alerts   []string
	haptics  []string
}

func (b *fakeBridge) Ready()              { b.ready = true }
func (b *fakeBridge) InitData() string    { return b.initData }
func (b *fakeBridge) Platform() string    { return "ios" }
func (b *fakeBridge) Version() string     { return "7.8" }
func (b *fakeBridge) ColorScheme() string { return "dark" }
func (b *fakeBridge) Expand()             { b.expanded = true }
func (b *fakeBridge) Close()              { b.closed = true }

func (b *fakeBridge) ShowAlert(message string)  { b.alerts = append(b.alerts, message) }
func (b *fakeBridge) ShowConfirm(string) bool   { return true }

func (b *fakeBridge) ImpactOccurred(style telegram.HapticStyle) {
	b.haptics = append(b.haptics, "impact:"+string(style))
}

func (b *fakeBridge) NotificationOccurred(style telegram.HapticStyle) {
	b.haptics = append(b.haptics, "notification:"+string(style))
}

func (b *fakeBridge) SelectionChanged() {
	b.haptics = append(b.haptics, "selection")
}

func rawInitData(userJSON string) string {
	values := url.Values{
		"user":      {userJSON},
		"auth_date": {"1716922846"},
		"hash":      {"abcdef"},
	}
	return values.Encode()
}

func TestClientWithoutBridge(t *testing.T) {
	client := telegram.NewClient(nil)

	assert.False(t, client.IsAvailable())
	assert.Empty(t, client.InitData())
	assert.Nil(t, client.InitDataUnsafe())
	assert.Empty(t, client.Platform())
	assert.False(t, client.ShowConfirm("sure?"))

	// UI-операции без моста — no-op, не паника
	client.Expand()
	client.Close()
	client.ShowAlert("hi")
	client.HapticFeedback("selection", "")
}

func TestClientAvailability(t *testing.T) {
	bridge := &fakeBridge{}
	client := telegram.NewClient(bridge)

	assert.True(t, bridge.ready)
	// Мост есть, но initData пуст — страница открыта вне Telegram
	assert.False(t, client.IsAvailable())

	bridge.initData = rawInitData(`{"id":1,"first_name":"A"}`)
	assert.True(t, client.IsAvailable())
}

func TestInitDataUnsafe(t *testing.T) {
	bridge := &fakeBridge{
		initData: rawInitData(`{"id":99281932,"first_name":"Andrew","username":"rogue","photo_url":"https://t.me/p.jpg"}`),
	}
	client := telegram.NewClient(bridge)

	parsed := client.InitDataUnsafe()
	require.NotNil(t, parsed)
	assert.Equal(t, int64(99281932), parsed.User.ID)
	assert.Equal(t, "Andrew", parsed.User.FirstName)
	assert.Equal(t, "rogue", parsed.User.Username)
	assert.Equal(t, "https://t.me/p.jpg", parsed.User.PhotoURL)
}

func TestInitDataUnsafeMalformed(t *testing.T) {
	bridge := &fakeBridge{initData: "%%%not-a-query%%%"}
	client := telegram.NewClient(bridge)

	// Ошибка разбора поглощается
	assert.Nil(t, client.InitDataUnsafe())
}

func TestBridgePassThroughs(t *testing.T) {
	bridge := &fakeBridge{initData: rawInitData(`{"id":1,"first_name":"A"}`)}
	client := telegram.NewClient(bridge)

	assert.Equal(t, "ios", client.Platform())
	assert.Equal(t, "7.8", client.Version())
	assert.Equal(t, "dark", client.ColorScheme())

	client.Expand()
	assert.True(t, bridge.expanded)

	client.Close()
	assert.True(t, bridge.closed)

	client.ShowAlert("hello")
	assert.Equal(t, []string{"hello"}, bridge.alerts)
	assert.True(t, client.ShowConfirm("sure?"))

	client.HapticFeedback("impact", telegram.HapticMedium)
	client.HapticFeedback("notification", telegram.HapticSuccess)
	client.HapticFeedback("selection", "")
	assert.Equal(t, []string{"impact:medium", "notification:success", "selection"}, bridge.haptics)
}
