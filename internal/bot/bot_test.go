package bot

import (
	"context"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vintedwatch/internal/catalog"
	"vintedwatch/logger"
)

// mockAPI records everything sent through the Telegram client
type mockAPI struct {
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
	sendErr  error
}

func (m *mockAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	m.sent = append(m.sent, c)
	return tgbotapi.Message{}, m.sendErr
}

func (m *mockAPI) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	m.requests = append(m.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (m *mockAPI) GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return make(chan tgbotapi.Update)
}

func (m *mockAPI) StopReceivingUpdates() {}

// lastText returns the text of the most recently sent or edited message
func (m *mockAPI) lastText(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, m.sent)
	switch c := m.sent[len(m.sent)-1].(type) {
	case tgbotapi.MessageConfig:
		return c.Text
	case tgbotapi.EditMessageTextConfig:
		return c.Text
	default:
		t.Fatalf("unexpected chattable type %T", c)
		return ""
	}
}

// mockStore is an in-memory configstore.Store
type mockStore struct {
	configs map[int64]map[string]catalog.FilterConfig
	saveErr error
	saves   int
}

func newMockStore() *mockStore {
	return &mockStore{configs: make(map[int64]map[string]catalog.FilterConfig)}
}

func (m *mockStore) LoadAll(ctx context.Context) (map[int64]map[string]catalog.FilterConfig, error) {
	return m.configs, nil
}

func (m *mockStore) Load(ctx context.Context, chatID int64) (map[string]catalog.FilterConfig, error) {
	return m.configs[chatID], nil
}

func (m *mockStore) Save(ctx context.Context, chatID int64, configs map[string]catalog.FilterConfig) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.configs[chatID] = configs
	return nil
}

func (m *mockStore) Close() error { return nil }

func newTestBot() (*Bot, *mockAPI, *mockStore) {
	api := &mockAPI{}
	store := newMockStore()
	return newWithAPI(api, store, logger.ForBot()), api, store
}

func commandMessage(chatID int64, cmd string) *tgbotapi.Message {
	return &tgbotapi.Message{
		Text: "/" + cmd,
		Chat: &tgbotapi.Chat{ID: chatID},
		Entities: []tgbotapi.MessageEntity{
			{Type: "bot_command", Offset: 0, Length: len(cmd) + 1},
		},
	}
}

func callbackQuery(chatID int64, data string) *tgbotapi.CallbackQuery {
	return &tgbotapi.CallbackQuery{
		ID:   "cb-1",
		Data: data,
		Message: &tgbotapi.Message{
			MessageID: 42,
			Chat:      &tgbotapi.Chat{ID: chatID},
		},
	}
}

func TestStartRegistersDefaultConfigs(t *testing.T) {
	b, api, store := newTestBot()

	b.handleCommand(context.Background(), commandMessage(100, "start"))

	require.Contains(t, store.configs, int64(100))
	configs := store.configs[100]
	assert.Len(t, configs, 2)
	assert.Equal(t, catalog.DefaultMenConfig(), configs["men"])
	assert.Equal(t, catalog.DefaultWomenConfig(), configs["women"])
	assert.Contains(t, api.lastText(t), "registered")
}

func TestStartKeepsExistingConfigs(t *testing.T) {
	b, _, store := newTestBot()
	existing := map[string]catalog.FilterConfig{
		"custom": {Name: "Custom", BrandIDs: []int{53}},
	}
	store.configs[100] = existing

	b.handleCommand(context.Background(), commandMessage(100, "start"))

	assert.Equal(t, 0, store.saves)
	assert.Equal(t, existing, store.configs[100])
}

func TestDashboardShowsSummaryWithKeyboard(t *testing.T) {
	b, api, store := newTestBot()
	store.configs[100] = map[string]catalog.FilterConfig{
		"men": {Name: "Men's Config", BrandIDs: []int{53, 14}},
	}

	b.handleCommand(context.Background(), commandMessage(100, "dashboard"))

	require.Len(t, api.sent, 1)
	msg, ok := api.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Contains(t, msg.Text, "Configuration: Men's Config")
	assert.Contains(t, msg.Text, "Brands: Nike, Adidas")
	assert.Contains(t, msg.Text, "Min Price: None")

	markup, ok := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok)
	last := markup.InlineKeyboard[len(markup.InlineKeyboard)-1]
	assert.Equal(t, "save:all", *last[0].CallbackData)
}

func TestDashboardWithoutRegistration(t *testing.T) {
	b, api, _ := newTestBot()

	b.handleCommand(context.Background(), commandMessage(100, "dashboard"))

	assert.Contains(t, api.lastText(t), "/start")
}

func TestConfigsListsConfigurations(t *testing.T) {
	b, api, store := newTestBot()
	store.configs[100] = map[string]catalog.FilterConfig{
		"men":   catalog.DefaultMenConfig(),
		"women": catalog.DefaultWomenConfig(),
	}

	b.handleCommand(context.Background(), commandMessage(100, "configs"))

	require.Len(t, api.sent, 1)
	msg, ok := api.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	markup, ok := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok)
	require.Len(t, markup.InlineKeyboard, 2)
	assert.Equal(t, "select:men", *markup.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "select:women", *markup.InlineKeyboard[1][0].CallbackData)
}

func TestSelectSwitchesActiveConfig(t *testing.T) {
	b, api, store := newTestBot()
	store.configs[100] = map[string]catalog.FilterConfig{
		"men":   catalog.DefaultMenConfig(),
		"women": catalog.DefaultWomenConfig(),
	}
	ctx := context.Background()

	b.handleCallback(ctx, callbackQuery(100, "select:women"))
	assert.Contains(t, api.lastText(t), "Women's Config")

	// Subsequent edits target the selected configuration
	b.handleCallback(ctx, callbackQuery(100, "edit:brands"))
	b.handleCallback(ctx, callbackQuery(100, "toggle:brands:53"))
	b.handleCallback(ctx, callbackQuery(100, "confirm:brands"))

	assert.Equal(t, []int{53}, store.configs[100]["women"].BrandIDs)
	assert.Empty(t, store.configs[100]["men"].BrandIDs)
}

func TestToggleConfirmPersistsSelection(t *testing.T) {
	b, api, store := newTestBot()
	store.configs[100] = map[string]catalog.FilterConfig{
		"men": catalog.DefaultMenConfig(),
	}
	ctx := context.Background()

	b.handleCallback(ctx, callbackQuery(100, "edit:brands"))
	assert.Contains(t, api.lastText(t), "Select Brands")

	b.handleCallback(ctx, callbackQuery(100, "toggle:brands:53"))
	b.handleCallback(ctx, callbackQuery(100, "toggle:brands:14"))
	b.handleCallback(ctx, callbackQuery(100, "toggle:brands:53"))
	b.handleCallback(ctx, callbackQuery(100, "confirm:brands"))

	assert.Equal(t, []int{14}, store.configs[100]["men"].BrandIDs)
	assert.Contains(t, api.lastText(t), "Brands updated.")
	assert.Contains(t, api.lastText(t), "Brands: Adidas")
}

func TestConfirmOrdersIDsByTable(t *testing.T) {
	b, _, store := newTestBot()
	store.configs[100] = map[string]catalog.FilterConfig{
		"men": catalog.DefaultMenConfig(),
	}
	ctx := context.Background()

	b.handleCallback(ctx, callbackQuery(100, "edit:colors"))
	// Toggled in reverse table order
	b.handleCallback(ctx, callbackQuery(100, "toggle:colors:9"))
	b.handleCallback(ctx, callbackQuery(100, "toggle:colors:1"))
	b.handleCallback(ctx, callbackQuery(100, "confirm:colors"))

	assert.Equal(t, []int{1, 9}, store.configs[100]["men"].ColorIDs)
}

func TestPriceEditFlow(t *testing.T) {
	b, _, store := newTestBot()
	store.configs[100] = map[string]catalog.FilterConfig{
		"men": catalog.DefaultMenConfig(),
	}
	ctx := context.Background()

	b.handleCallback(ctx, callbackQuery(100, "edit:price_to"))
	b.handleCallback(ctx, callbackQuery(100, "price:price_to:30"))
	b.handleCallback(ctx, callbackQuery(100, "confirm:price_to"))

	require.NotNil(t, store.configs[100]["men"].PriceTo)
	assert.Equal(t, 30, *store.configs[100]["men"].PriceTo)

	// Clearing the minimum works through the explicit none row
	b.handleCallback(ctx, callbackQuery(100, "edit:price_from"))
	b.handleCallback(ctx, callbackQuery(100, "price:price_from:none"))
	b.handleCallback(ctx, callbackQuery(100, "confirm:price_from"))

	assert.Nil(t, store.configs[100]["men"].PriceFrom)
}

func TestCurrencyEditFlow(t *testing.T) {
	b, api, store := newTestBot()
	store.configs[100] = map[string]catalog.FilterConfig{
		"men": catalog.DefaultMenConfig(),
	}
	ctx := context.Background()

	b.handleCallback(ctx, callbackQuery(100, "edit:currency"))
	b.handleCallback(ctx, callbackQuery(100, "currency:EUR"))
	b.handleCallback(ctx, callbackQuery(100, "confirm:currency"))

	assert.Equal(t, "EUR", store.configs[100]["men"].Currency)
	assert.Contains(t, api.lastText(t), "Currency: EUR")
}

func TestCallbackWithoutRegistration(t *testing.T) {
	b, api, _ := newTestBot()

	b.handleCallback(context.Background(), callbackQuery(100, "edit:brands"))

	assert.Contains(t, api.lastText(t), "/start")
}

func TestCallbackIsAcknowledged(t *testing.T) {
	b, api, store := newTestBot()
	store.configs[100] = map[string]catalog.FilterConfig{
		"men": catalog.DefaultMenConfig(),
	}

	b.handleCallback(context.Background(), callbackQuery(100, "dashboard:-"))

	require.Len(t, api.requests, 1)
	_, ok := api.requests[0].(tgbotapi.CallbackConfig)
	assert.True(t, ok)
}

func TestToggleKeyboardMarksSelection(t *testing.T) {
	selected := map[int]struct{}{53: {}}
	markup := buildToggleKeyboard(fieldBrands, catalog.Brands, selected)

	// One row per brand plus confirm and back rows
	require.Len(t, markup.InlineKeyboard, len(catalog.Brands)+2)
	assert.Equal(t, "✅ Nike", markup.InlineKeyboard[0][0].Text)
	assert.Equal(t, "toggle:brands:53", *markup.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "Adidas", markup.InlineKeyboard[1][0].Text)
	assert.Equal(t, "confirm:brands", *markup.InlineKeyboard[len(catalog.Brands)][0].CallbackData)
}

func TestPriceKeyboardNoneRow(t *testing.T) {
	markup := buildPriceKeyboard(fieldPriceFrom, nil, true)
	assert.Equal(t, "✅ No minimum", markup.InlineKeyboard[0][0].Text)
	assert.Equal(t, "price:price_from:none", *markup.InlineKeyboard[0][0].CallbackData)

	markup = buildPriceKeyboard(fieldPriceTo, nil, false)
	assert.Equal(t, "5", markup.InlineKeyboard[0][0].Text)
}

func TestConfigSummaryRendersNones(t *testing.T) {
	summary := configSummary(catalog.FilterConfig{Name: "Empty"})

	assert.Contains(t, summary, "Configuration: Empty")
	assert.Contains(t, summary, "Brands: None")
	assert.Contains(t, summary, "Min Price: None")
	assert.Contains(t, summary, "Currency: None")
	assert.Contains(t, summary, "Women's Sizes: None")
}

func TestConfigSummaryResolvesLabels(t *testing.T) {
	price := 25
	summary := configSummary(catalog.FilterConfig{
		Name:       "Full",
		BrandIDs:   []int{53, 535},
		ColorIDs:   []int{12},
		StatusIDs:  []int{6},
		PriceFrom:  &price,
		Currency:   "GBP",
		SizeIDsMen: []int{784, 786},
	})

	assert.Contains(t, summary, "Brands: Nike, Puma")
	assert.Contains(t, summary, "Colors: White")
	assert.Contains(t, summary, "Statuses: New with tag")
	assert.Contains(t, summary, "Min Price: 25")
	assert.Contains(t, summary, "Currency: GBP")
	assert.Contains(t, summary, "Men's Sizes: 8, 9")
}

func TestActiveKeyPrefersMen(t *testing.T) {
	s := &session{}
	configs := map[string]catalog.FilterConfig{
		"men":   catalog.DefaultMenConfig(),
		"women": catalog.DefaultWomenConfig(),
	}
	assert.Equal(t, "men", s.activeKey(configs))

	s = &session{configKey: "women"}
	assert.Equal(t, "women", s.activeKey(configs))

	s = &session{configKey: "gone"}
	assert.Equal(t, "men", s.activeKey(configs))
}
