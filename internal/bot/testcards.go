package bot

import (
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/simex888888-dotcom/tg-trade-bot3/internal/pnl"
)

// testTrades are fixed inputs for eyeballing the layout after template or
// coordinate changes.
var testTrades = map[string]pnl.TradeInputs{
	"test_bybit_long": {
		Exchange: pnl.Bybit,
		Symbol:   "BTCUSDT",
		Side:     pnl.Long,
		Entry:    decimal.RequireFromString("65000"),
		Mark:     decimal.RequireFromString("67500"),
		Amount:   decimal.RequireFromString("100"),
		Leverage: 10,
		Deposit:  decimal.RequireFromString("1000"),
	},
	"test_bybit_short": {
		Exchange: pnl.Bybit,
		Symbol:   "ETHUSDT",
		Side:     pnl.Short,
		Entry:    decimal.RequireFromString("3200"),
		Mark:     decimal.RequireFromString("3350"),
		Amount:   decimal.RequireFromString("250"),
		Leverage: 25,
		Deposit:  decimal.RequireFromString("1000"),
	},
	"test_bingx_long": {
		Exchange: pnl.BingX,
		Symbol:   "SOLUSDT",
		Side:     pnl.Long,
		Entry:    decimal.RequireFromString("145.5"),
		Mark:     decimal.RequireFromString("152.8"),
		Amount:   decimal.RequireFromString("50"),
		Leverage: 20,
		Deposit:  decimal.RequireFromString("500"),
	},
	"test_bingx_short": {
		Exchange: pnl.BingX,
		Symbol:   "DOGEUSDT",
		Side:     pnl.Short,
		Entry:    decimal.RequireFromString("0.158"),
		Mark:     decimal.RequireFromString("0.149"),
		Amount:   decimal.RequireFromString("75"),
		Leverage: 50,
		Deposit:  decimal.RequireFromString("300"),
	},
}

func (b *Bot) cmdTest(chatID int64, cmd string) {
	if cmd == "test_all" {
		for name := range testTrades {
			b.renderTest(chatID, name)
		}
		return
	}
	if _, ok := testTrades[cmd]; !ok {
		b.send(chatID, "❓ Unknown command. Use /help")
		return
	}
	b.renderTest(chatID, cmd)
}

func (b *Bot) renderTest(chatID int64, name string) {
	in := testTrades[name]

	d, err := pnl.Derive(in)
	if err != nil {
		log.Error().Err(err).Str("test", name).Msg("Failed to derive test trade")
		return
	}

	path, err := b.pool.Do(func() (string, error) {
		return b.composer.RenderTradeCard(in, d, -1)
	})
	if err != nil {
		log.Error().Err(err).Str("test", name).Msg("Failed to render test card")
		b.send(chatID, "Failed to render "+name)
		return
	}

	b.sendPhoto(chatID, path, tradeCaption(in, d), restartKeyboard())
}
