package bot

import (
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"github.com/simex888888-dotcom/tg-trade-bot3/internal/pnl"
)

const (
	minLeverage = 1
	maxLeverage = 125
)

// Sessions are keyed by user ID; in private chats it equals the chat ID.

func (b *Bot) startTradeWizard(chatID int64) {
	s := b.sessions.get(chatID)
	s.reset()
	s.step = stepExchange
	b.prompt(chatID, s)
}

func (b *Bot) startCustomWizard(chatID int64) {
	s := b.sessions.get(chatID)
	s.reset()
	s.step = stepCustomExchange
	b.prompt(chatID, s)
}

// prompt asks the question for the session's current step.
func (b *Bot) prompt(chatID int64, s *session) {
	switch s.step {
	case stepExchange, stepCustomExchange:
		b.sendWithKeyboard(chatID, "Choose an exchange:", exchangeKeyboard())
	case stepSymbol:
		b.sendWithKeyboard(chatID, "Enter the symbol (e.g. BTCUSDT):", backKeyboard())
	case stepSide:
		b.sendWithKeyboard(chatID, "Choose the position side:", sideKeyboard())
	case stepEntry:
		b.sendWithKeyboard(chatID, "Enter the entry price:", backKeyboard())
	case stepMark:
		b.sendWithKeyboard(chatID, "Enter the mark price, or pull it live:", markKeyboard())
	case stepAmount:
		b.sendWithKeyboard(chatID, "Enter the margin amount in USDT:", backKeyboard())
	case stepLeverage:
		b.sendWithKeyboard(chatID, "Enter the leverage (1-125):", backKeyboard())
	case stepDeposit:
		b.sendWithKeyboard(chatID, "Enter your deposit in USDT:", backKeyboard())

	case stepCustomUsername:
		b.sendWithKeyboard(chatID, "Enter the username to show on the card:", backKeyboard())
	case stepCustomSide:
		b.sendWithKeyboard(chatID, "Choose the position side:", sideKeyboard())
	case stepCustomSymbol:
		b.sendWithKeyboard(chatID, "Enter the symbol (e.g. BTCUSDT):", backKeyboard())
	case stepCustomEntry:
		b.sendWithKeyboard(chatID, "Enter the entry price:", backKeyboard())
	case stepCustomExit:
		b.sendWithKeyboard(chatID, "Enter the exit price:", backKeyboard())
	case stepCustomLeverage:
		b.sendWithKeyboard(chatID, "Enter the leverage as it should appear (e.g. 50x):", backKeyboard())
	case stepCustomReferral:
		b.sendWithKeyboard(chatID, "Enter a referral code, or skip:", skipKeyboard())
	case stepCustomDatetime:
		b.sendWithKeyboard(chatID, "Enter the date and time line, or skip:", skipKeyboard())

	case stepMarathonDeposit:
		b.send(chatID, "Enter your marathon start deposit in USDT:")
	}
}

func (b *Bot) handleBack(chatID int64, s *session) {
	if s.step == stepNone {
		return
	}
	s.back()
	b.prompt(chatID, s)
}

// handleWizardCallback routes exchange/side/market-price/skip buttons.
func (b *Bot) handleWizardCallback(chatID, userID int64, data string, s *session) {
	switch data {
	case cbExchangeBybit, cbExchangeBingx:
		exchange := pnl.Bybit
		if data == cbExchangeBingx {
			exchange = pnl.BingX
		}
		switch s.step {
		case stepExchange:
			s.trade.exchange = exchange
			s.advance(stepSymbol)
		case stepCustomExchange:
			s.custom.exchange = exchange
			s.advance(stepCustomUsername)
		default:
			return
		}
		b.prompt(chatID, s)

	case cbSideLong, cbSideShort:
		side := pnl.Long
		if data == cbSideShort {
			side = pnl.Short
		}
		switch s.step {
		case stepSide:
			s.trade.side = side
			s.advance(stepEntry)
		case stepCustomSide:
			s.custom.side = side
			s.advance(stepCustomSymbol)
		default:
			return
		}
		b.prompt(chatID, s)

	case cbMarketPrice:
		if s.step != stepMark {
			return
		}
		price, ok := b.market.MarkPrice(s.trade.exchange, s.trade.symbol)
		if !ok {
			b.send(chatID, "Couldn't fetch the market price, please type it")
			return
		}
		s.trade.mark = &price
		s.advance(stepAmount)
		b.prompt(chatID, s)

	case cbSkip:
		switch s.step {
		case stepCustomReferral:
			s.custom.referral = ""
			s.advance(stepCustomDatetime)
			b.prompt(chatID, s)
		case stepCustomDatetime:
			s.custom.datetime = ""
			b.finishCustom(chatID, s)
		}
	}
}

// handleAnswer consumes a typed answer for the current step.
func (b *Bot) handleAnswer(msg *tgbotapi.Message, s *session) {
	chatID := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)

	switch s.step {
	case stepSymbol, stepCustomSymbol:
		symbol := strings.ToUpper(strings.ReplaceAll(text, " ", ""))
		if symbol == "" {
			b.send(chatID, "Please enter a symbol, e.g. BTCUSDT")
			return
		}
		if s.step == stepSymbol {
			s.trade.symbol = symbol
			s.advance(stepSide)
		} else {
			s.custom.symbol = symbol
			s.advance(stepCustomEntry)
		}
		b.prompt(chatID, s)

	case stepEntry:
		v, err := parseDecimal(text)
		if err != nil {
			b.send(chatID, "Please enter a positive number")
			return
		}
		s.trade.entry = &v
		s.advance(stepMark)
		b.prompt(chatID, s)

	case stepMark:
		v, err := parseDecimal(text)
		if err != nil {
			b.send(chatID, "Please enter a positive number")
			return
		}
		s.trade.mark = &v
		s.advance(stepAmount)
		b.prompt(chatID, s)

	case stepAmount:
		v, err := parseDecimal(text)
		if err != nil {
			b.send(chatID, "Please enter a positive number")
			return
		}
		s.trade.amount = &v
		s.advance(stepLeverage)
		b.prompt(chatID, s)

	case stepLeverage:
		lev, err := strconv.Atoi(text)
		if err != nil || lev < minLeverage || lev > maxLeverage {
			b.send(chatID, "Leverage must be a whole number between 1 and 125")
			return
		}
		s.trade.leverage = &lev

		// Marathon players carry their tracked balance as the deposit.
		if entry, err := b.marathon.Get(msg.From.ID); err == nil && entry != nil {
			deposit := entry.Balance
			s.trade.deposit = &deposit
			b.finishTrade(chatID, msg.From.ID, s)
			return
		}
		s.advance(stepDeposit)
		b.prompt(chatID, s)

	case stepDeposit:
		v, err := parseDecimal(text)
		if err != nil {
			b.send(chatID, "Please enter a positive number")
			return
		}
		s.trade.deposit = &v
		b.finishTrade(chatID, msg.From.ID, s)

	case stepCustomUsername:
		if text == "" {
			b.send(chatID, "Please enter a username")
			return
		}
		s.custom.username = text
		s.advance(stepCustomSide)
		b.prompt(chatID, s)

	case stepCustomEntry:
		v, err := parseDecimal(text)
		if err != nil {
			b.send(chatID, "Please enter a positive number")
			return
		}
		s.custom.entry = &v
		s.advance(stepCustomExit)
		b.prompt(chatID, s)

	case stepCustomExit:
		v, err := parseDecimal(text)
		if err != nil {
			b.send(chatID, "Please enter a positive number")
			return
		}
		s.custom.exit = &v
		s.advance(stepCustomLeverage)
		b.prompt(chatID, s)

	case stepCustomLeverage:
		if text == "" {
			b.send(chatID, "Please enter the leverage, e.g. 50x")
			return
		}
		s.custom.leverage = text
		s.advance(stepCustomReferral)
		b.prompt(chatID, s)

	case stepCustomReferral:
		s.custom.referral = text
		s.advance(stepCustomDatetime)
		b.prompt(chatID, s)

	case stepCustomDatetime:
		s.custom.datetime = text
		b.finishCustom(chatID, s)

	case stepMarathonDeposit:
		v, err := parseDecimal(text)
		if err != nil {
			b.send(chatID, "Please enter a positive number")
			return
		}
		if err := b.marathon.Start(msg.From.ID, v); err != nil {
			log.Error().Err(err).Int64("user", msg.From.ID).Msg("Failed to start marathon")
			b.send(chatID, "Failed to join the marathon, try again later")
			return
		}
		s.reset()
		b.sendMarkdown(chatID, "🚀 *You're in!* Every card you render now moves your marathon balance.")
	}
}

func (b *Bot) finishTrade(chatID, userID int64, s *session) {
	defer s.reset()

	in := pnl.TradeInputs{
		Exchange: s.trade.exchange,
		Symbol:   s.trade.symbol,
		Side:     s.trade.side,
		Entry:    *s.trade.entry,
		Mark:     *s.trade.mark,
		Amount:   *s.trade.amount,
		Leverage: *s.trade.leverage,
		Deposit:  *s.trade.deposit,
	}

	d, err := pnl.Derive(in)
	if err != nil {
		log.Error().Err(err).Msg("Failed to derive trade figures")
		b.send(chatID, "Something went wrong with those numbers, try /card again")
		return
	}

	precision := -1
	if p, ok := b.market.PricePrecision(in.Exchange, in.Symbol); ok {
		precision = p
	}

	b.send(chatID, "🎨 Rendering your card...")

	path, err := b.pool.Do(func() (string, error) {
		return b.composer.RenderTradeCard(in, d, precision)
	})
	if err != nil {
		log.Error().Err(err).Str("symbol", in.Symbol).Msg("Failed to render trade card")
		b.send(chatID, "Failed to render the card, try again later")
		return
	}

	b.sendPhoto(chatID, path, tradeCaption(in, d), restartKeyboard())

	// Marathon players get their balance moved by the card's PnL.
	if entry, err := b.marathon.ApplyPnL(userID, d.PnL.Amount); err == nil && entry != nil {
		b.sendMarkdown(chatID, marathonSummary(entry))
	} else if err != nil {
		log.Error().Err(err).Int64("user", userID).Msg("Failed to update marathon balance")
	}
}
