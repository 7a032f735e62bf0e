package bot

import (
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"vintedwatch/internal/catalog"
)

// buildConfigKeyboard lists the chat's configurations, one per row
func buildConfigKeyboard(configs map[string]catalog.FilterConfig) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, key := range sortedKeys(configs) {
		name := configs[key].Name
		if name == "" {
			name = key
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(name, "select:"+key),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildDashboardKeyboard lists the editable fields
func buildDashboardKeyboard() tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		row("Edit Brands", "edit:"+fieldBrands),
		row("Edit Colors", "edit:"+fieldColors),
		row("Edit Statuses", "edit:"+fieldStatuses),
		row("Edit Minimum Price", "edit:"+fieldPriceFrom),
		row("Edit Maximum Price", "edit:"+fieldPriceTo),
		row("Edit Currency", "edit:"+fieldCurrency),
		row("Edit Men's Sizes", "edit:"+fieldSizeMen),
		row("Edit Women's Sizes", "edit:"+fieldSizeWomen),
		row("Save & Exit", "save:all"),
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildToggleKeyboard renders a sequence field's table with the pending
// selection checked, plus confirm and back rows
func buildToggleKeyboard(field string, table []catalog.Entry, selected map[int]struct{}) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, e := range table {
		label := e.Label
		if _, ok := selected[e.ID]; ok {
			label = "✅ " + label
		}
		rows = append(rows, row(label, fmt.Sprintf("toggle:%s:%d", field, e.ID)))
	}
	rows = append(rows, row("Confirm", "confirm:"+field))
	rows = append(rows, row("Back to Dashboard", "dashboard:-"))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildPriceKeyboard renders the price steps with the pending value checked.
// The minimum-price variant carries an explicit "No minimum" row.
func buildPriceKeyboard(field string, selected *int, withNone bool) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	if withNone {
		label := "No minimum"
		if selected == nil {
			label = "✅ " + label
		}
		rows = append(rows, row(label, "price:"+field+":none"))
	}
	for _, v := range catalog.PriceSteps {
		label := strconv.Itoa(v)
		if selected != nil && *selected == v {
			label = "✅ " + label
		}
		rows = append(rows, row(label, fmt.Sprintf("price:%s:%d", field, v)))
	}
	rows = append(rows, row("Confirm", "confirm:"+field))
	rows = append(rows, row("Back to Dashboard", "dashboard:-"))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildCurrencyKeyboard renders the currency codes with the pending value checked
func buildCurrencyKeyboard(selected string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, code := range catalog.Currencies {
		label := code
		if selected == code {
			label = "✅ " + label
		}
		rows = append(rows, row(label, "currency:"+code))
	}
	rows = append(rows, row("Confirm", "confirm:"+fieldCurrency))
	rows = append(rows, row("Back to Dashboard", "dashboard:-"))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func row(label, data string) []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(label, data))
}
