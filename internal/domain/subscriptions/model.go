package subscriptions

import "time"

type Plan string

const (
	PlanFree     Plan = "free"
	PlanStandard Plan = "standard"
	PlanPremium  Plan = "premium"
)

// Unlimited — значение MonthlyLimit для безлимитного тарифа.
const Unlimited = -1

type Tier struct {
	Plan              Plan
	MonthlyLimit      int
	SimultaneousLimit int
	CooldownMinutes   int
}

var tiers = map[Plan]Tier{
	PlanFree:     {Plan: PlanFree, MonthlyLimit: 5, SimultaneousLimit: 1, CooldownMinutes: 15},
	PlanStandard: {Plan: PlanStandard, MonthlyLimit: 50, SimultaneousLimit: 5, CooldownMinutes: 0},
	PlanPremium:  {Plan: PlanPremium, MonthlyLimit: Unlimited, SimultaneousLimit: 10, CooldownMinutes: 0},
}

// Snapshot — вычисляемое состояние подписки, нигде не хранится.
type Snapshot struct {
	UserID                   int64
	Plan                     Plan
	Status                   string
	MonthlyLimit             int
	SimultaneousLimit        int
	UsageThisMonth           int
	CooldownMinutes          int
	LastConversionAt         *time.Time
	OnCooldown               bool
	CooldownRemainingMinutes int
	ExpiresAt                *time.Time
}

func (s Snapshot) Unlimited() bool { return s.MonthlyLimit == Unlimited }

// LimitReached true, если месячный лимит исчерпан.
func (s Snapshot) LimitReached() bool {
	return !s.Unlimited() && s.UsageThisMonth >= s.MonthlyLimit
}
