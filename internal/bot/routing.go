package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/telegisto-bot/internal/conversions"
	"github.com/Spok95/telegisto-bot/internal/domain/subscriptions"
	"github.com/Spok95/telegisto-bot/internal/domain/users"
	"github.com/Spok95/telegisto-bot/internal/links"
	"github.com/Spok95/telegisto-bot/internal/report"
)

func (b *Bot) handleCommand(ctx context.Context, log *slog.Logger, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	userID := msg.From.ID

	switch msg.Command() {
	case "start":
		tg := users.Telegram{
			ID:        userID,
			Username:  msg.From.UserName,
			FirstName: msg.From.FirstName,
			LastName:  msg.From.LastName,
		}
		if b.users != nil {
			if _, err := b.users.UpsertFromTelegram(ctx, tg); err != nil {
				log.Error("user upsert failed", "err", err)
			}
		}
		m := tgbotapi.NewMessage(chatID, welcomeText(tg.DisplayName(), b.botUsername))
		m.ReplyMarkup = mainReplyKeyboard()
		if _, err := b.out.Deliver(ctx, m); err != nil {
			log.Error("send failed", "err", err)
		}

	case "help":
		b.sendMarkdown(ctx, log, chatID, helpText(b.botUsername))

	case "about":
		b.sendMarkdown(ctx, log, chatID, aboutText(b.botUsername))

	case "status":
		snap, err := b.subs.Get(userID)
		if err != nil {
			b.reportError(ctx, log, chatID, err)
			return
		}
		b.sendMarkdown(ctx, log, chatID, statusText(snap))

	case "queue":
		jobs := b.queue.CheckStatus(userID)
		if len(jobs) == 0 {
			b.send(ctx, log, chatID, textEmptyQueue)
			return
		}
		b.sendMarkdown(ctx, log, chatID, queueText(jobs))

	case "export":
		b.exportQueue(ctx, log, chatID, userID)

	default:
		b.send(ctx, log, chatID, textUnknownCmd)
	}
}

// handleLink — любой текст без команды. Не ссылка на поддерживаемую платформу — молча игнорируем.
func (b *Bot) handleLink(ctx context.Context, log *slog.Logger, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	userID := msg.From.ID
	text := strings.TrimSpace(msg.Text)

	if text == "" || strings.HasPrefix(text, "/") || !links.IsSupported(text) {
		return
	}

	snap, err := b.subs.Get(userID)
	if err != nil {
		b.reportError(ctx, log, chatID, err)
		return
	}

	if snap.LimitReached() {
		b.rejections.WithLabelValues("monthly_limit").Inc()
		log.Info("admission rejected", "reason", "monthly_limit", "usage", snap.UsageThisMonth)
		b.send(ctx, log, chatID, textMonthlyLimit)
		return
	}
	if snap.Plan == subscriptions.PlanFree && snap.OnCooldown {
		b.rejections.WithLabelValues("cooldown").Inc()
		log.Info("admission rejected", "reason", "cooldown", "remaining_min", snap.CooldownRemainingMinutes)
		b.send(ctx, log, chatID, cooldownText(snap.CooldownRemainingMinutes))
		return
	}

	var start *int
	if ts, ok := links.StartTimestamp(text); ok {
		start = &ts
	}

	ackID, err := b.out.Send(ctx, chatID, textProcessing)
	if err != nil {
		b.reportError(ctx, log, chatID, fmt.Errorf("send acknowledgment: %w", err))
		return
	}

	adm, err := b.queue.Enqueue(ctx, conversions.Request{
		UserID:         userID,
		URL:            text,
		StartTimestamp: start,
		ChatID:         chatID,
		MessageID:      ackID,
	})
	if err != nil {
		b.reportError(ctx, log, chatID, err)
		return
	}
	log.Info("link accepted", "position", adm.Position, "estimate", adm.EstimatedTime)

	if adm.Position > 1 {
		b.send(ctx, log, chatID, queuedAtText(adm.Position))
	}
}

func (b *Bot) exportQueue(ctx context.Context, log *slog.Logger, chatID, userID int64) {
	jobs := b.queue.CheckStatus(userID)
	if len(jobs) == 0 {
		b.send(ctx, log, chatID, textEmptyQueue)
		return
	}

	data, err := report.QueueWorkbook(jobs)
	if err != nil {
		b.reportError(ctx, log, chatID, err)
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  report.QueueFileName(userID, b.now()),
		Bytes: data,
	})
	doc.Caption = fmt.Sprintf("Your conversion queue: %d item(s).", len(jobs))
	if _, err := b.out.Deliver(ctx, doc); err != nil {
		log.Error("send document failed", "err", err)
	}
}

func statusText(s subscriptions.Snapshot) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "*Your Subscription:* %s\n", s.Plan)
	fmt.Fprintf(&sb, "*Status:* %s\n", s.Status)
	if s.ExpiresAt != nil {
		fmt.Fprintf(&sb, "*Expires:* %s\n", s.ExpiresAt.Format("2006-01-02"))
	}

	limit := "Unlimited"
	if !s.Unlimited() {
		limit = fmt.Sprintf("%d", s.MonthlyLimit)
	}
	sb.WriteString("\n*Conversions:*\n")
	fmt.Fprintf(&sb, "• This month: %d/%s\n", s.UsageThisMonth, limit)
	fmt.Fprintf(&sb, "• Simultaneous: %d\n", s.SimultaneousLimit)

	if s.Plan == subscriptions.PlanFree {
		sb.WriteString("\n*Upgrade to Premium* for more conversions and no waiting time between conversions!")
	}
	return sb.String()
}

func queueText(jobs []conversions.Job) string {
	var sb strings.Builder
	sb.WriteString("*Your Conversion Queue:*\n\n")
	for i, j := range jobs {
		title := j.Title
		if title == "" {
			title = "Unknown"
		}
		fmt.Fprintf(&sb, "%d. %s\n", i+1, escapeMarkdown(title))
		fmt.Fprintf(&sb, "   Status: %s\n", j.Status)
		if j.EstimatedTimeRemaining != "" {
			fmt.Fprintf(&sb, "   Est. time: %s\n", j.EstimatedTimeRemaining)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
