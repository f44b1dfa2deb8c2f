package subscriptions

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/Spok95/telegisto-bot/internal/apperr"
)

const (
	statusActive        = "active"
	syntheticLastUseAgo = 20 * time.Minute
	subscriptionTerm    = 30 * 24 * time.Hour
)

// UsageStore — куда пишется факт завершённой конверсии.
type UsageStore interface {
	Increment(ctx context.Context, userID int64, month string) error
}

// Oracle выводит подписку из userID. Пока реального биллинга нет,
// тариф и счётчики считаются детерминированно от идентификатора.
type Oracle struct {
	log   *slog.Logger
	store UsageStore
	now   func() time.Time
}

func NewOracle(log *slog.Logger, store UsageStore) *Oracle {
	return &Oracle{log: log, store: store, now: time.Now}
}

// WithClock подменяет часы (для тестов).
func (o *Oracle) WithClock(now func() time.Time) *Oracle {
	o.now = now
	return o
}

func planFor(userID int64) Plan {
	switch {
	case userID%10 == 0:
		return PlanPremium
	case userID%3 == 0:
		return PlanStandard
	default:
		return PlanFree
	}
}

func (o *Oracle) Get(userID int64) (snap Snapshot, err error) {
	defer func() {
		if r := recover(); r != nil {
			o.log.Error("subscription lookup panicked", "user_id", userID, "panic", r)
			snap = Snapshot{}
			err = apperr.Wrap(apperr.KindSubscription, "failed to check subscription status", fmt.Errorf("%v", r))
		}
	}()

	now := o.now()
	tier := tiers[planFor(userID)]

	snap = Snapshot{
		UserID:            userID,
		Plan:              tier.Plan,
		Status:            statusActive,
		MonthlyLimit:      tier.MonthlyLimit,
		SimultaneousLimit: tier.SimultaneousLimit,
		UsageThisMonth:    int(userID % 7),
		CooldownMinutes:   tier.CooldownMinutes,
	}
	if userID%5 != 0 {
		exp := now.Add(subscriptionTerm)
		snap.ExpiresAt = &exp
	}
	if userID%3 == 0 {
		last := now.Add(-syntheticLastUseAgo)
		snap.LastConversionAt = &last
	}

	snap.OnCooldown, snap.CooldownRemainingMinutes = cooldown(snap.LastConversionAt, snap.CooldownMinutes, now)
	return snap, nil
}

// cooldown считает паузу только для тарифов с cooldownMinutes > 0, остаток округляется вверх.
func cooldown(last *time.Time, minutes int, now time.Time) (bool, int) {
	if minutes <= 0 || last == nil {
		return false, 0
	}
	ends := last.Add(time.Duration(minutes) * time.Minute)
	if !now.Before(ends) {
		return false, 0
	}
	return true, int(math.Ceil(ends.Sub(now).Minutes()))
}

// UpdateUsage best-effort: ошибки только логируются, конверсию не прерываем.
func (o *Oracle) UpdateUsage(ctx context.Context, userID int64) {
	defer func() {
		if r := recover(); r != nil {
			o.log.Error("usage update panicked", "user_id", userID, "panic", r)
		}
	}()

	if o.store != nil {
		month := o.now().Format("2006-01")
		if err := o.store.Increment(ctx, userID, month); err != nil {
			o.log.Error("usage update failed", "user_id", userID, "err", err)
			return
		}
	}
	o.log.Info("usage updated", "user_id", userID)
}
