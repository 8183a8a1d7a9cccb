package bot

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/simex888888-dotcom/tg-trade-bot3/internal/marathon"
	"github.com/simex888888-dotcom/tg-trade-bot3/internal/pnl"
)

var errNotPositive = errors.New("value must be positive")

// parseDecimal accepts "1234.5" or "1234,5" and rejects non-positive input.
func parseDecimal(text string) (decimal.Decimal, error) {
	v, err := decimal.NewFromString(strings.ReplaceAll(text, ",", "."))
	if err != nil {
		return decimal.Zero, err
	}
	if v.Sign() <= 0 {
		return decimal.Zero, errNotPositive
	}
	return v, nil
}

func signed(v decimal.Decimal, places int32) string {
	if v.Sign() >= 0 {
		return "+" + v.StringFixed(places)
	}
	return v.StringFixed(places)
}

func tradeCaption(in pnl.TradeInputs, d pnl.DerivedTrade) string {
	side := "Long"
	if in.Side == pnl.Short {
		side = "Short"
	}
	return fmt.Sprintf("%s %s %dx\nPnL: %s$ (%s%%)",
		in.Symbol, side, in.Leverage,
		signed(d.PnL.Amount, 2), signed(d.PnL.Percent, 2),
	)
}

func marathonSummary(entry *marathon.Entry) string {
	profit := entry.Balance.Sub(entry.StartDeposit)
	percent := decimal.Zero
	if entry.StartDeposit.Sign() > 0 {
		percent = profit.Div(entry.StartDeposit).Mul(decimal.NewFromInt(100))
	}

	emoji := "📈"
	if profit.Sign() < 0 {
		emoji = "📉"
	}

	return fmt.Sprintf(`%s *MARATHON*
━━━━━━━━━━━━━━━━━━━━

💰 Start deposit: *$%s*
💵 Balance: *$%s*
📊 PnL: *%s$* (*%s%%*)`,
		emoji,
		entry.StartDeposit.StringFixed(2),
		entry.Balance.StringFixed(2),
		signed(profit, 2), signed(percent, 2),
	)
}
