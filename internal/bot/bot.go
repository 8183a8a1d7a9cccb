// Package bot implements the Telegram front end: a step-by-step wizard that
// collects trade parameters and replies with a rendered PnL card.
package bot

import (
	"fmt"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"github.com/simex888888-dotcom/tg-trade-bot3/internal/config"
	"github.com/simex888888-dotcom/tg-trade-bot3/internal/marathon"
	"github.com/simex888888-dotcom/tg-trade-bot3/internal/market"
	"github.com/simex888888-dotcom/tg-trade-bot3/internal/render"
)

// Bot manages the Telegram interface
type Bot struct {
	mu      sync.RWMutex
	api     *tgbotapi.BotAPI
	running bool
	stopCh  chan struct{}

	composer *render.Composer
	pool     *render.Pool
	market   *market.Client
	marathon *marathon.Tracker

	sessions *sessionStore
}

// New creates the bot and verifies the token against the Telegram API.
func New(cfg *config.Config, composer *render.Composer, pool *render.Pool, mkt *market.Client, tracker *marathon.Tracker) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	b := &Bot{
		api:      api,
		stopCh:   make(chan struct{}),
		composer: composer,
		pool:     pool,
		market:   mkt,
		marathon: tracker,
		sessions: newSessionStore(),
	}

	log.Info().Str("username", api.Self.UserName).Msg("🤖 Telegram bot initialized")
	return b, nil
}

// Start begins processing updates
func (b *Bot) Start() {
	b.mu.Lock()
	if b.running {
		b.mu.Unlock()
		return
	}
	b.running = true
	b.mu.Unlock()

	go b.updateLoop()
	log.Info().Msg("📱 Telegram bot started")
}

// Stop stops the bot
func (b *Bot) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.running {
		return
	}

	b.running = false
	close(b.stopCh)
	log.Info().Msg("Telegram bot stopped")
}

func (b *Bot) updateLoop() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-b.stopCh:
			return
		case update := <-updates:
			switch {
			case update.Message != nil:
				go b.handleMessage(update.Message)
			case update.CallbackQuery != nil:
				go b.handleCallback(update.CallbackQuery)
			}
		}
	}
}

func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	if msg.Chat == nil || !msg.Chat.IsPrivate() {
		return
	}

	if msg.IsCommand() {
		b.handleCommand(msg)
		return
	}

	s := b.sessions.get(msg.From.ID)
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step == stepNone {
		b.send(msg.Chat.ID, "Use /card to build a PnL card, or /help for commands")
		return
	}
	b.handleAnswer(msg, s)
}

func (b *Bot) handleCommand(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	s := b.sessions.get(msg.From.ID)
	s.mu.Lock()
	defer s.mu.Unlock()

	cmd := strings.ToLower(msg.Command())
	switch cmd {
	case "start", "help":
		b.cmdHelp(chatID)
	case "card":
		s.reset()
		b.startTradeWizard(chatID)
	case "custom":
		s.reset()
		b.startCustomWizard(chatID)
	case "cancel":
		s.reset()
		b.send(chatID, "Cancelled")
	case "marathon":
		b.cmdMarathon(chatID, msg.From.ID)
	default:
		if strings.HasPrefix(cmd, "test_") {
			b.cmdTest(chatID, cmd)
			return
		}
		b.send(chatID, "❓ Unknown command. Use /help")
	}
}

func (b *Bot) handleCallback(cb *tgbotapi.CallbackQuery) {
	// Acknowledge so the button spinner stops.
	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		log.Debug().Err(err).Msg("Failed to answer callback")
	}

	if cb.Message == nil {
		return
	}
	chatID := cb.Message.Chat.ID
	s := b.sessions.get(cb.From.ID)
	s.mu.Lock()
	defer s.mu.Unlock()

	switch cb.Data {
	case cbBack:
		b.handleBack(chatID, s)
	case cbNewCard:
		s.reset()
		b.startTradeWizard(chatID)
	case cbCustomCard:
		s.reset()
		b.startCustomWizard(chatID)
	case cbMarathonStart, cbMarathonStatus, cbMarathonStop:
		b.handleMarathonCallback(chatID, cb.From.ID, cb.Data, s)
	default:
		b.handleWizardCallback(chatID, cb.From.ID, cb.Data, s)
	}
}

func (b *Bot) cmdHelp(chatID int64) {
	msg := `🤖 *TRADE CARD BOT*
━━━━━━━━━━━━━━━━━━━━

📇 /card — Build a PnL card
🎨 /custom — Build a custom card
🏃 /marathon — Trading marathon
❌ /cancel — Abort the current wizard

━━━━━━━━━━━━━━━━━━━━
Supported exchanges: Bybit, BingX`

	b.sendMarkdown(chatID, msg)
}

// ═══════════════════════════════════════════════════════════════════════════════
// HELPERS
// ═══════════════════════════════════════════════════════════════════════════════

func (b *Bot) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Error().Err(err).Msg("Failed to send Telegram message")
	}
}

func (b *Bot) sendMarkdown(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	if _, err := b.api.Send(msg); err != nil {
		log.Error().Err(err).Msg("Failed to send Telegram message")
	}
}

func (b *Bot) sendMarkdownWithKeyboard(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = kb
	if _, err := b.api.Send(msg); err != nil {
		log.Error().Err(err).Msg("Failed to send Telegram message")
	}
}

func (b *Bot) sendWithKeyboard(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = kb
	if _, err := b.api.Send(msg); err != nil {
		log.Error().Err(err).Msg("Failed to send Telegram message")
	}
}

func (b *Bot) sendPhoto(chatID int64, path, caption string, kb tgbotapi.InlineKeyboardMarkup) {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FilePath(path))
	photo.Caption = caption
	photo.ReplyMarkup = kb
	if _, err := b.api.Send(photo); err != nil {
		log.Error().Err(err).Str("path", path).Msg("Failed to send photo")
	}
}
