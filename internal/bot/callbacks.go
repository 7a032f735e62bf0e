package bot

import (
	"context"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"vintedwatch/internal/catalog"
)

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	messageID := cb.Message.MessageID

	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		b.log.Error().Err(err).Msg("Failed to ack callback")
	}

	parts := strings.SplitN(cb.Data, ":", 3)
	action := parts[0]
	arg := ""
	if len(parts) > 1 {
		arg = parts[1]
	}

	b.log.Debug().
		Str("action", action).
		Str("data", cb.Data).
		Int64("chat_id", chatID).
		Msg("Callback received")

	configs, err := b.store.Load(ctx, chatID)
	if err != nil || configs == nil {
		b.editText(chatID, messageID, "No configuration found. Use /start to register.", nil)
		return
	}

	s := b.session(chatID)
	key := s.activeKey(configs)
	cfg := configs[key]

	switch action {
	case "select":
		if _, ok := configs[arg]; !ok {
			b.editText(chatID, messageID, "Selected configuration not found.", nil)
			return
		}
		s.configKey = arg
		name := configs[arg].Name
		if name == "" {
			name = arg
		}
		b.editText(chatID, messageID, "Switched to configuration '"+name+"'. Use /dashboard to view and edit it.", nil)

	case "dashboard":
		markup := buildDashboardKeyboard()
		b.editText(chatID, messageID, configSummary(cfg), &markup)

	case "save":
		if err := b.store.Save(ctx, chatID, configs); err != nil {
			b.log.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to save configurations")
			b.editText(chatID, messageID, "Failed to save configuration, please try again.", nil)
			return
		}
		b.editText(chatID, messageID, "Configuration saved.\n"+configSummary(cfg), nil)

	case "edit":
		b.startEdit(chatID, messageID, s, cfg, arg)

	case "toggle":
		if len(parts) != 3 {
			return
		}
		id, err := strconv.Atoi(parts[2])
		if err != nil {
			return
		}
		s.toggle(id)
		table := fieldTable(arg)
		markup := buildToggleKeyboard(arg, table, s.pendingIDs)
		b.editMarkup(chatID, messageID, markup)

	case "price":
		if len(parts) != 3 {
			return
		}
		field := arg
		if parts[2] == "none" {
			s.pendingPrice = nil
		} else {
			v, err := strconv.Atoi(parts[2])
			if err != nil {
				b.editText(chatID, messageID, "Error parsing price value.", nil)
				return
			}
			s.pendingPrice = &v
		}
		markup := buildPriceKeyboard(field, s.pendingPrice, field == fieldPriceFrom)
		b.editMarkup(chatID, messageID, markup)

	case "currency":
		s.pendingCurrency = arg
		markup := buildCurrencyKeyboard(arg)
		b.editMarkup(chatID, messageID, markup)

	case "confirm":
		b.confirmEdit(ctx, chatID, messageID, s, configs, key, arg)

	default:
		b.editText(chatID, messageID, "Unknown selection.", nil)
	}
}

// startEdit seeds the session's pending state from the persisted
// configuration and shows the field's selection keyboard.
func (b *Bot) startEdit(chatID int64, messageID int, s *session, cfg catalog.FilterConfig, field string) {
	var markup tgbotapi.InlineKeyboardMarkup
	var prompt string

	switch field {
	case fieldBrands:
		s.beginIDEdit(field, cfg.BrandIDs)
		prompt = "Select Brands:"
		markup = buildToggleKeyboard(field, catalog.Brands, s.pendingIDs)
	case fieldColors:
		s.beginIDEdit(field, cfg.ColorIDs)
		prompt = "Select Colors:"
		markup = buildToggleKeyboard(field, catalog.Colors, s.pendingIDs)
	case fieldStatuses:
		s.beginIDEdit(field, cfg.StatusIDs)
		prompt = "Select Statuses:"
		markup = buildToggleKeyboard(field, catalog.Statuses, s.pendingIDs)
	case fieldSizeMen:
		s.beginIDEdit(field, cfg.SizeIDsMen)
		prompt = "Select Men's Sizes:"
		markup = buildToggleKeyboard(field, catalog.SizesMen, s.pendingIDs)
	case fieldSizeWomen:
		s.beginIDEdit(field, cfg.SizeIDsWomen)
		prompt = "Select Women's Sizes:"
		markup = buildToggleKeyboard(field, catalog.SizesWomen, s.pendingIDs)
	case fieldPriceFrom:
		s.field = field
		s.pendingPrice = cfg.PriceFrom
		prompt = "Select Minimum Price:"
		markup = buildPriceKeyboard(field, s.pendingPrice, true)
	case fieldPriceTo:
		s.field = field
		s.pendingPrice = cfg.PriceTo
		prompt = "Select Maximum Price:"
		markup = buildPriceKeyboard(field, s.pendingPrice, false)
	case fieldCurrency:
		s.field = field
		s.pendingCurrency = cfg.Currency
		prompt = "Select Currency:"
		markup = buildCurrencyKeyboard(s.pendingCurrency)
	default:
		return
	}

	b.editText(chatID, messageID, prompt, &markup)
}

// confirmEdit flushes the session's pending selection into the persisted
// configuration. This is the only place edits reach the store.
func (b *Bot) confirmEdit(ctx context.Context, chatID int64, messageID int, s *session, configs map[string]catalog.FilterConfig, key, field string) {
	cfg := configs[key]
	var what string

	switch field {
	case fieldBrands:
		cfg.BrandIDs = s.pendingSlice(catalog.Brands)
		what = "Brands"
	case fieldColors:
		cfg.ColorIDs = s.pendingSlice(catalog.Colors)
		what = "Colors"
	case fieldStatuses:
		cfg.StatusIDs = s.pendingSlice(catalog.Statuses)
		what = "Statuses"
	case fieldSizeMen:
		cfg.SizeIDsMen = s.pendingSlice(catalog.SizesMen)
		what = "Men's sizes"
	case fieldSizeWomen:
		cfg.SizeIDsWomen = s.pendingSlice(catalog.SizesWomen)
		what = "Women's sizes"
	case fieldPriceFrom:
		cfg.PriceFrom = s.pendingPrice
		what = "Minimum price"
	case fieldPriceTo:
		cfg.PriceTo = s.pendingPrice
		what = "Maximum price"
	case fieldCurrency:
		cfg.Currency = s.pendingCurrency
		what = "Currency"
	default:
		return
	}

	configs[key] = cfg
	if err := b.store.Save(ctx, chatID, configs); err != nil {
		b.log.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to save configurations")
		b.editText(chatID, messageID, "Failed to save configuration, please try again.", nil)
		return
	}

	markup := buildDashboardKeyboard()
	b.editText(chatID, messageID, what+" updated.\n"+configSummary(cfg), &markup)
}

func fieldTable(field string) []catalog.Entry {
	switch field {
	case fieldBrands:
		return catalog.Brands
	case fieldColors:
		return catalog.Colors
	case fieldStatuses:
		return catalog.Statuses
	case fieldSizeMen:
		return catalog.SizesMen
	case fieldSizeWomen:
		return catalog.SizesWomen
	default:
		return nil
	}
}

// editText edits a message in place, tolerating Telegram's "message is not
// modified" response when nothing changed.
func (b *Bot) editText(chatID int64, messageID int, text string, markup *tgbotapi.InlineKeyboardMarkup) {
	var edit tgbotapi.Chattable
	if markup != nil {
		edit = tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, *markup)
	} else {
		edit = tgbotapi.NewEditMessageText(chatID, messageID, text)
	}
	if _, err := b.api.Send(edit); err != nil && !isNotModified(err) {
		b.log.Error().Err(err).Msg("Failed to edit message")
	}
}

func (b *Bot) editMarkup(chatID int64, messageID int, markup tgbotapi.InlineKeyboardMarkup) {
	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, messageID, markup)
	if _, err := b.api.Send(edit); err != nil && !isNotModified(err) {
		b.log.Error().Err(err).Msg("Failed to edit reply markup")
	}
}

func isNotModified(err error) bool {
	return err != nil && strings.Contains(err.Error(), "message is not modified")
}
