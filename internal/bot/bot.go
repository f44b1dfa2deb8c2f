package bot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/Spok95/telegisto-bot/internal/apperr"
	"github.com/Spok95/telegisto-bot/internal/conversions"
	"github.com/Spok95/telegisto-bot/internal/domain/subscriptions"
	"github.com/Spok95/telegisto-bot/internal/domain/users"
)

// Outbox — исходящие сообщения (infra/telegram.Sink).
type Outbox interface {
	Send(ctx context.Context, chatID int64, text string) (int, error)
	SendMarkdown(ctx context.Context, chatID int64, text string) (int, error)
	Deliver(ctx context.Context, c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type SubscriptionOracle interface {
	Get(userID int64) (subscriptions.Snapshot, error)
}

type ConversionQueue interface {
	Enqueue(ctx context.Context, req conversions.Request) (conversions.Admission, error)
	CheckStatus(userID int64) []conversions.Job
}

type UserStore interface {
	UpsertFromTelegram(ctx context.Context, tg users.Telegram) (*users.User, error)
}

type Bot struct {
	out         Outbox
	log         *slog.Logger
	subs        SubscriptionOracle
	queue       ConversionQueue
	users       UserStore
	botUsername string
	rejections  *prometheus.CounterVec
	now         func() time.Time
}

// New: usersRepo может быть nil, тогда /start профиль не сохраняет.
func New(out Outbox, log *slog.Logger,
	subs SubscriptionOracle, queue ConversionQueue,
	usersRepo UserStore, botUsername string, reg prometheus.Registerer) *Bot {

	return &Bot{
		out: out, log: log, subs: subs, queue: queue,
		users: usersRepo, botUsername: botUsername,
		rejections: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "telegisto_admission_rejections_total",
			Help: "Links rejected before enqueue.",
		}, []string{"reason"}),
		now: time.Now,
	}
}

// Run читает апдейты до отмены ctx или закрытия канала.
func (b *Bot) Run(ctx context.Context, updates tgbotapi.UpdatesChannel) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case upd, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, upd)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, upd tgbotapi.Update) {
	msg := upd.Message
	if msg == nil || msg.From == nil || msg.Chat == nil {
		return
	}
	log := b.log.With("request_id", uuid.NewString(), "chat_id", msg.Chat.ID, "user_id", msg.From.ID)

	// сбой одного сообщения не роняет процесс
	defer func() {
		if r := recover(); r != nil {
			log.Error("handler panicked", "panic", r)
			b.reportError(ctx, log, msg.Chat.ID, fmt.Errorf("panic: %v", r))
		}
	}()

	if msg.IsCommand() {
		b.handleCommand(ctx, log, msg)
		return
	}
	b.handleLink(ctx, log, msg)
}

// reportError отправляет пользователю фразу по виду ошибки. Ошибку отправки только логируем.
func (b *Bot) reportError(ctx context.Context, log *slog.Logger, chatID int64, err error) {
	log.Error("request failed", "kind", string(apperr.KindOf(err)), "err", err)
	if _, sendErr := b.out.Send(ctx, chatID, apperr.UserMessage(err)); sendErr != nil {
		log.Error("failed to send error message", "err", sendErr)
	}
}

func (b *Bot) send(ctx context.Context, log *slog.Logger, chatID int64, text string) {
	if _, err := b.out.Send(ctx, chatID, text); err != nil {
		log.Error("send failed", "err", err)
	}
}

func (b *Bot) sendMarkdown(ctx context.Context, log *slog.Logger, chatID int64, text string) {
	if _, err := b.out.SendMarkdown(ctx, chatID, text); err != nil {
		log.Error("send failed", "err", err)
	}
}
