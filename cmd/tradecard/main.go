// Tradecard - Telegram bot that renders shareable PnL cards
//
// The bot walks a user through a short wizard (exchange, symbol, side,
// prices, margin, leverage) and replies with a PNG card composited onto the
// exchange's template, plus a free-form "custom" card mode and an optional
// trading marathon that tracks a running balance across rendered cards.
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/simex888888-dotcom/tg-trade-bot3/internal/bot"
	"github.com/simex888888-dotcom/tg-trade-bot3/internal/config"
	"github.com/simex888888-dotcom/tg-trade-bot3/internal/layout"
	"github.com/simex888888-dotcom/tg-trade-bot3/internal/marathon"
	"github.com/simex888888-dotcom/tg-trade-bot3/internal/market"
	"github.com/simex888888-dotcom/tg-trade-bot3/internal/render"
)

const version = "1.0.0"

func main() {
	// Setup logging
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	// Load environment
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found, using environment variables")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	log.Info().
		Str("version", version).
		Str("assets", cfg.AssetsDir).
		Str("output", cfg.OutputDir).
		Int("workers", cfg.RenderWorkers).
		Msg("📇 Tradecard starting...")

	// Marathon balance tracker
	tracker, err := marathon.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}

	// Market data client (mark prices, price precision)
	mkt := market.NewClient(cfg.PriceCacheTTL, cfg.PrecisionCacheTTL)

	// Card composer and render worker pool
	composer, err := render.NewComposer(layout.Default(), cfg.AssetsDir, cfg.OutputDir, cfg.OutputRetention)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize renderer")
	}
	pool := render.NewPool(cfg.RenderWorkers)

	// Telegram bot
	tgBot, err := bot.New(cfg, composer, pool, mkt, tracker)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize Telegram bot")
	}
	tgBot.Start()

	log.Info().Msg("✅ All systems online")
	log.Info().Msg("💡 Use /help for commands")

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("🛑 Received shutdown signal")
	tgBot.Stop()
	log.Info().Msg("👋 Goodbye!")
}
