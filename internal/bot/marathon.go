package bot

import (
	"github.com/rs/zerolog/log"
)

func (b *Bot) cmdMarathon(chatID, userID int64) {
	entry, err := b.marathon.Get(userID)
	if err != nil {
		log.Error().Err(err).Int64("user", userID).Msg("Failed to load marathon entry")
		b.send(chatID, "Marathon is unavailable right now")
		return
	}

	if entry == nil {
		b.sendWithKeyboard(chatID,
			"🏃 Trading marathon: set a start deposit and every card you render moves your balance.",
			marathonKeyboard(false))
		return
	}

	msg := marathonSummary(entry)
	m := marathonKeyboard(true)
	b.sendMarkdownWithKeyboard(chatID, msg, m)
}

func (b *Bot) handleMarathonCallback(chatID, userID int64, data string, s *session) {
	switch data {
	case cbMarathonStart:
		s.reset()
		s.step = stepMarathonDeposit
		b.prompt(chatID, s)

	case cbMarathonStatus:
		entry, err := b.marathon.Get(userID)
		if err != nil || entry == nil {
			b.send(chatID, "You're not in the marathon. Use /marathon to join")
			return
		}
		b.sendMarkdown(chatID, marathonSummary(entry))

	case cbMarathonStop:
		if err := b.marathon.Stop(userID); err != nil {
			log.Error().Err(err).Int64("user", userID).Msg("Failed to stop marathon")
			b.send(chatID, "Failed to leave the marathon, try again later")
			return
		}
		b.send(chatID, "🛑 Marathon stopped. Use /marathon to start over")
	}
}
