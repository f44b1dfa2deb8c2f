package subscriptions

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Spok95/telegisto-bot/internal/apperr"
)

var fixedNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func newTestOracle(store UsageStore) *Oracle {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewOracle(log, store).WithClock(func() time.Time { return fixedNow })
}

type fakeStore struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (f *fakeStore) Increment(_ context.Context, userID int64, month string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, month)
	return f.err
}

func TestOracle_Get_Tiers(t *testing.T) {
	o := newTestOracle(nil)

	tests := []struct {
		userID  int64
		plan    Plan
		limit   int
		simult  int
		cool    int
		usage   int
		expires bool
	}{
		{userID: 10, plan: PlanPremium, limit: Unlimited, simult: 10, cool: 0, usage: 3, expires: false},
		{userID: 3, plan: PlanStandard, limit: 50, simult: 5, cool: 0, usage: 3, expires: true},
		{userID: 5, plan: PlanFree, limit: 5, simult: 1, cool: 15, usage: 5, expires: false},
		{userID: 7, plan: PlanFree, limit: 5, simult: 1, cool: 15, usage: 0, expires: true},
		{userID: 30, plan: PlanPremium, limit: Unlimited, simult: 10, cool: 0, usage: 2, expires: false},
		{userID: 9, plan: PlanStandard, limit: 50, simult: 5, cool: 0, usage: 2, expires: true},
	}
	for _, tt := range tests {
		snap, err := o.Get(tt.userID)
		require.NoError(t, err)
		assert.Equal(t, tt.userID, snap.UserID)
		assert.Equal(t, tt.plan, snap.Plan, "user %d", tt.userID)
		assert.Equal(t, "active", snap.Status)
		assert.Equal(t, tt.limit, snap.MonthlyLimit, "user %d", tt.userID)
		assert.Equal(t, tt.simult, snap.SimultaneousLimit, "user %d", tt.userID)
		assert.Equal(t, tt.cool, snap.CooldownMinutes, "user %d", tt.userID)
		assert.Equal(t, tt.usage, snap.UsageThisMonth, "user %d", tt.userID)
		assert.Equal(t, tt.expires, snap.ExpiresAt != nil, "user %d", tt.userID)
	}
}

func TestOracle_Get_Deterministic(t *testing.T) {
	o := newTestOracle(nil)
	for _, id := range []int64{1, 3, 5, 10, 21, 99, 1000} {
		a, err := o.Get(id)
		require.NoError(t, err)
		b, err := o.Get(id)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	}
}

func TestOracle_Get_StandardHasNoCooldown(t *testing.T) {
	o := newTestOracle(nil)

	snap, err := o.Get(3)
	require.NoError(t, err)

	require.NotNil(t, snap.LastConversionAt)
	assert.Equal(t, fixedNow.Add(-20*time.Minute), *snap.LastConversionAt)
	assert.False(t, snap.OnCooldown)
	assert.Zero(t, snap.CooldownRemainingMinutes)
}

func TestOracle_Get_LimitReached(t *testing.T) {
	o := newTestOracle(nil)

	free, err := o.Get(5)
	require.NoError(t, err)
	assert.True(t, free.LimitReached())

	premium, err := o.Get(10)
	require.NoError(t, err)
	assert.True(t, premium.Unlimited())
	assert.False(t, premium.LimitReached())

	fresh, err := o.Get(7)
	require.NoError(t, err)
	assert.False(t, fresh.LimitReached())
}

func TestCooldown(t *testing.T) {
	ago := func(d time.Duration) *time.Time {
		ts := fixedNow.Add(-d)
		return &ts
	}

	tests := []struct {
		name      string
		last      *time.Time
		minutes   int
		want      bool
		remaining int
	}{
		{"no window", ago(time.Minute), 0, false, 0},
		{"no last conversion", nil, 15, false, 0},
		{"inside window", ago(5 * time.Minute), 15, true, 10},
		{"rounds up", ago(5*time.Minute + 30*time.Second), 15, true, 10},
		{"just started", ago(10 * time.Second), 15, true, 15},
		{"expired", ago(20 * time.Minute), 15, false, 0},
		{"boundary", ago(15 * time.Minute), 15, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			on, rem := cooldown(tt.last, tt.minutes, fixedNow)
			assert.Equal(t, tt.want, on)
			assert.Equal(t, tt.remaining, rem)
		})
	}
}

func TestOracle_Get_RecoversPanic(t *testing.T) {
	o := newTestOracle(nil).WithClock(func() time.Time { panic("clock broke") })

	_, err := o.Get(1)
	require.Error(t, err)
	assert.Equal(t, apperr.KindSubscription, apperr.KindOf(err))
}

func TestOracle_UpdateUsage(t *testing.T) {
	t.Run("records month", func(t *testing.T) {
		store := &fakeStore{}
		newTestOracle(store).UpdateUsage(context.Background(), 42)
		assert.Equal(t, []string{"2026-03"}, store.calls)
	})

	t.Run("swallows store error", func(t *testing.T) {
		store := &fakeStore{err: errors.New("db down")}
		assert.NotPanics(t, func() {
			newTestOracle(store).UpdateUsage(context.Background(), 42)
		})
		assert.Len(t, store.calls, 1)
	})

	t.Run("no store", func(t *testing.T) {
		assert.NotPanics(t, func() {
			newTestOracle(nil).UpdateUsage(context.Background(), 42)
		})
	})
}
