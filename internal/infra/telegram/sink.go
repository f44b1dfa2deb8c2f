package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"
)

// Sender — то, что умеет *tgbotapi.BotAPI. В тестах подменяется.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Sink отправляет исходящие сообщения с ограничением частоты (лимиты Telegram ~30 msg/s).
type Sink struct {
	api     Sender
	limiter *rate.Limiter
}

// NewSink: perSecond <= 0 — без ограничения.
func NewSink(api Sender, perSecond float64) *Sink {
	limit := rate.Inf
	burst := 1
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
		burst = max(1, int(perSecond))
	}
	return &Sink{api: api, limiter: rate.NewLimiter(limit, burst)}
}

func (s *Sink) Deliver(ctx context.Context, c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return tgbotapi.Message{}, fmt.Errorf("rate limit wait: %w", err)
	}
	msg, err := s.api.Send(c)
	if err != nil {
		return tgbotapi.Message{}, fmt.Errorf("telegram send: %w", err)
	}
	return msg, nil
}

// Send возвращает id отправленного сообщения.
func (s *Sink) Send(ctx context.Context, chatID int64, text string) (int, error) {
	msg, err := s.Deliver(ctx, tgbotapi.NewMessage(chatID, text))
	if err != nil {
		return 0, err
	}
	return msg.MessageID, nil
}

func (s *Sink) SendMarkdown(ctx context.Context, chatID int64, text string) (int, error) {
	m := tgbotapi.NewMessage(chatID, text)
	m.ParseMode = tgbotapi.ModeMarkdown
	msg, err := s.Deliver(ctx, m)
	if err != nil {
		return 0, err
	}
	return msg.MessageID, nil
}
