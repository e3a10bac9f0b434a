// Package telegram lets the owner continue advisory conversations from
// chat. Each Telegram chat maps to one conversation id, so follow-ups
// keep their history across messages.
package telegram

import (
	"context"
	"fmt"
	"sync"
	"time"

	tele "gopkg.in/telebot.v3"

	"github.com/sandevgo/archie/internal/config"
	"github.com/sandevgo/archie/internal/service/advisor"
	"github.com/sandevgo/archie/pkg/log"
)

const baseContextKey = "base_context"

type Bot struct {
	bot     *tele.Bot
	advisor *advisor.Advisor
	sender  *sender
	ownerID int64

	mu       sync.Mutex
	sessions map[int64]string
}

func NewBot(ctx context.Context, cfg *config.TelegramConfig, adv *advisor.Advisor) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:      b,
		advisor:  adv,
		sender:   newSender(b),
		ownerID:  cfg.OwnerID,
		sessions: make(map[int64]string),
	}

	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	// Only the owner may talk to the bot.
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if c.Sender().ID != bot.ownerID {
				return nil
			}
			return next(c)
		}
	})

	b.Handle("/new", bot.handleNew)
	b.Handle(tele.OnText, bot.handleMessage)

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

// handleNew drops the chat's conversation binding so the next question
// starts fresh.
func (b *Bot) handleNew(c tele.Context) error {
	b.mu.Lock()
	delete(b.sessions, c.Chat().ID)
	b.mu.Unlock()
	return c.Send("Started a new conversation.")
}

func (b *Bot) handleMessage(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	logger := log.FromCtx(ctx)

	_ = c.Notify(tele.Typing)

	res := b.advisor.Chat(ctx, c.Text(), b.conversationID(c.Chat().ID))

	switch res.Kind {
	case advisor.KindFailed:
		logger.Error().Err(res.Err).Msg("advisory request failed")
		return c.Send(fmt.Sprintf("error: %v", res.Err))
	case advisor.KindFiltered, advisor.KindEmptyContext:
		return b.sender.sendMarkdown(ctx, c.Chat(), res.Response, false)
	}

	if err := b.sender.sendMarkdown(ctx, c.Chat(), res.Response, false); err != nil {
		return err
	}
	if len(res.Sources) > 0 {
		if err := b.sender.sendSources(ctx, c.Chat(), res.Sources); err != nil {
			logger.Error().Err(err).Msg("failed to send sources")
		}
	}
	return nil
}

func (b *Bot) conversationID(chatID int64) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	id, ok := b.sessions[chatID]
	if !ok {
		id = b.advisor.NewConversationID()
		b.sessions[chatID] = id
	}
	return id
}
