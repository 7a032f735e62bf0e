package bot

import (
	"context"
	"sort"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"vintedwatch/internal/catalog"
	"vintedwatch/logger"
	apperr "vintedwatch/pkg/errors"
	"vintedwatch/services/configstore"
)

// telegramAPI is the subset of the Telegram client the bot needs; narrowed
// for testability.
type telegramAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Bot serves the conversational configuration UI: inline-keyboard editing of
// a subscriber's named filter configurations. Edits accumulate in a per-chat
// session and reach the store only on explicit confirm actions.
type Bot struct {
	api      telegramAPI
	store    configstore.Store
	log      *logger.Logger
	sessions map[int64]*session
}

// New creates a Bot with the given Telegram token and configuration store
func New(token string, store configstore.Store, log *logger.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, apperr.NewConfiguration("failed to create telegram api", err)
	}
	return newWithAPI(api, store, log), nil
}

func newWithAPI(api telegramAPI, store configstore.Store, log *logger.Logger) *Bot {
	return &Bot{
		api:      api,
		store:    store,
		log:      log,
		sessions: make(map[int64]*session),
	}
}

// Run starts the bot's long-polling loop, blocking until ctx is cancelled.
// Updates are handled sequentially, so session state needs no locking.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update := <-updates:
			if update.CallbackQuery != nil {
				b.handleCallback(ctx, update.CallbackQuery)
				continue
			}
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}
			b.handleCommand(ctx, update.Message)
		}
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	b.log.Debug().
		Str("cmd", msg.Command()).
		Int64("chat_id", chatID).
		Msg("Command received")

	switch msg.Command() {
	case "start":
		b.handleStart(ctx, chatID)
	case "configs":
		b.handleConfigs(ctx, chatID)
	case "dashboard":
		b.handleDashboard(ctx, chatID)
	default:
		b.reply(chatID, "Unknown command. Use /start, /configs or /dashboard.")
	}
}

// handleStart registers the chat with default men/women configurations when
// it has none yet.
func (b *Bot) handleStart(ctx context.Context, chatID int64) {
	configs, err := b.store.Load(ctx, chatID)
	if err != nil {
		b.log.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to load configurations")
		b.reply(chatID, "Something went wrong, please try again.")
		return
	}

	if configs == nil {
		configs = map[string]catalog.FilterConfig{
			"men":   catalog.DefaultMenConfig(),
			"women": catalog.DefaultWomenConfig(),
		}
		if err := b.store.Save(ctx, chatID, configs); err != nil {
			b.log.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to save default configurations")
			b.reply(chatID, "Something went wrong, please try again.")
			return
		}
	}

	b.reply(chatID, "You are registered for new listing notifications.\nUse /configs to switch between your saved configurations and /dashboard to edit the active one.")
}

// handleConfigs lists the chat's configurations for selection
func (b *Bot) handleConfigs(ctx context.Context, chatID int64) {
	configs, err := b.store.Load(ctx, chatID)
	if err != nil || configs == nil {
		b.reply(chatID, "No configurations found. Use /start to register.")
		return
	}

	msg := tgbotapi.NewMessage(chatID, "Select one of your configurations:")
	msg.ReplyMarkup = buildConfigKeyboard(configs)
	b.send(msg)
}

// handleDashboard shows the active configuration's summary and edit keyboard
func (b *Bot) handleDashboard(ctx context.Context, chatID int64) {
	configs, err := b.store.Load(ctx, chatID)
	if err != nil || configs == nil {
		b.reply(chatID, "No configurations found. Use /start to register.")
		return
	}

	key := b.session(chatID).activeKey(configs)
	cfg := configs[key]

	msg := tgbotapi.NewMessage(chatID, configSummary(cfg))
	msg.ReplyMarkup = buildDashboardKeyboard()
	b.send(msg)
}

// session returns the chat's edit session, creating it when absent
func (b *Bot) session(chatID int64) *session {
	s, ok := b.sessions[chatID]
	if !ok {
		s = &session{}
		b.sessions[chatID] = s
	}
	return s
}

func (b *Bot) reply(chatID int64, text string) {
	b.send(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		b.log.Error().Err(err).Msg("Failed to send message")
	}
}

func sortedKeys(configs map[string]catalog.FilterConfig) []string {
	keys := make([]string, 0, len(configs))
	for key := range configs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
