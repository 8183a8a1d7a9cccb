package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Callback data values for inline buttons.
const (
	cbExchangeBybit = "exchange_bybit"
	cbExchangeBingx = "exchange_bingx"
	cbSideLong      = "side_long"
	cbSideShort     = "side_short"
	cbMarketPrice   = "market_price"
	cbBack          = "back"
	cbSkip          = "skip"
	cbNewCard       = "new_card"
	cbCustomCard    = "custom_card"

	cbMarathonStart  = "marathon_start"
	cbMarathonStatus = "marathon_status"
	cbMarathonStop   = "marathon_stop"
)

func exchangeKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Bybit", cbExchangeBybit),
			tgbotapi.NewInlineKeyboardButtonData("BingX", cbExchangeBingx),
		),
	)
}

func sideKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🟢 Long", cbSideLong),
			tgbotapi.NewInlineKeyboardButtonData("🔴 Short", cbSideShort),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅️ Back", cbBack),
		),
	)
}

func backKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅️ Back", cbBack),
		),
	)
}

func markKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📡 Market price", cbMarketPrice),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅️ Back", cbBack),
		),
	)
}

func skipKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⏭️ Skip", cbSkip),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅️ Back", cbBack),
		),
	)
}

func restartKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 New card", cbNewCard),
			tgbotapi.NewInlineKeyboardButtonData("🎨 Custom card", cbCustomCard),
		),
	)
}

func marathonKeyboard(enrolled bool) tgbotapi.InlineKeyboardMarkup {
	if enrolled {
		return tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("📊 Status", cbMarathonStatus),
				tgbotapi.NewInlineKeyboardButtonData("🛑 Stop", cbMarathonStop),
			),
		)
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🚀 Join marathon", cbMarathonStart),
		),
	)
}
