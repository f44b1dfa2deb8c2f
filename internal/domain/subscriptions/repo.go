package subscriptions

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type UsageRepo struct{ db *pgxpool.Pool }

func NewUsageRepo(db *pgxpool.Pool) *UsageRepo { return &UsageRepo{db: db} }

// Increment +1 конверсия за месяц, запись создаётся при первой.
func (r *UsageRepo) Increment(ctx context.Context, userID int64, month string) error {
	const q = `
INSERT INTO conversion_usage (user_id, month, conversions)
VALUES ($1, $2, 1)
ON CONFLICT (user_id, month)
DO UPDATE SET conversions = conversion_usage.conversions + 1,
              updated_at = NOW()`
	_, err := r.db.Exec(ctx, q, userID, month)
	return err
}
