package bot

import (
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/simex888888-dotcom/tg-trade-bot3/internal/pnl"
	"github.com/simex888888-dotcom/tg-trade-bot3/internal/render"
)

func (b *Bot) finishCustom(chatID int64, s *session) {
	defer s.reset()

	percent, err := pnl.PercentOnly(*s.custom.entry, *s.custom.exit, s.custom.side, leverageValue(s.custom.leverage))
	if err != nil {
		log.Error().Err(err).Msg("Failed to compute custom card percent")
		b.send(chatID, "Something went wrong with those numbers, try /custom again")
		return
	}

	in := render.CustomInputs{
		Exchange: s.custom.exchange,
		Username: s.custom.username,
		Symbol:   s.custom.symbol,
		Side:     s.custom.side,
		Entry:    *s.custom.entry,
		Exit:     *s.custom.exit,
		Leverage: s.custom.leverage,
		Percent:  percent,
		Referral: s.custom.referral,
		Datetime: s.custom.datetime,
	}

	b.send(chatID, "🎨 Rendering your card...")

	path, err := b.pool.Do(func() (string, error) {
		return b.composer.RenderCustomCard(in)
	})
	if err != nil {
		log.Error().Err(err).Str("symbol", in.Symbol).Msg("Failed to render custom card")
		b.send(chatID, "Failed to render the card, try again later")
		return
	}

	b.sendPhoto(chatID, path, "", restartKeyboard())
}

// leverageValue pulls the leading number out of a free-form leverage string
// such as "50x" or "25X". Unparseable input counts as 1x.
func leverageValue(raw string) int {
	digits := strings.TrimFunc(raw, func(r rune) bool {
		return r < '0' || r > '9'
	})
	if i := strings.IndexFunc(digits, func(r rune) bool { return r < '0' || r > '9' }); i >= 0 {
		digits = digits[:i]
	}
	lev, err := strconv.Atoi(digits)
	if err != nil || lev < 1 {
		return 1
	}
	return lev
}
