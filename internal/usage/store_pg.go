package usage

import (
	"context"
	"database/sql"
	"errors"
)

type pgStore struct {
	DB *sql.DB
}

// NewPGStore constructs a Postgres-backed usage store.
func NewPGStore(db *sql.DB) *pgStore {
	return &pgStore{DB: db}
}

func (s *pgStore) Get(ctx context.Context, userID string) (Counts, error) {
	var c Counts
	row := s.DB.QueryRowContext(ctx, `
SELECT daily_conversions, monthly_conversions FROM user_usage WHERE user_id = $1`, userID)
	err := row.Scan(&c.Daily, &c.Monthly)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Counts{}, nil
		}
		return Counts{}, err
	}
	return c, nil
}

func (s *pgStore) Increment(ctx context.Context, userID string) (Counts, error) {
	var c Counts
	row := s.DB.QueryRowContext(ctx, `
INSERT INTO user_usage (user_id, daily_conversions, monthly_conversions)
VALUES ($1, 1, 1)
ON CONFLICT (user_id) DO UPDATE SET
    daily_conversions   = user_usage.daily_conversions + 1,
    monthly_conversions = user_usage.monthly_conversions + 1
RETURNING daily_conversions, monthly_conversions`, userID)
	if err := row.Scan(&c.Daily, &c.Monthly); err != nil {
		return Counts{}, err
	}
	return c, nil
}
