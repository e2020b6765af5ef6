package resumes

import (
	"context"
	"database/sql"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a resume record.
func (r *PGRepo) Create(ctx context.Context, record Record) error {
	const query = `
INSERT INTO resume_table (id, created_at, resume_link, user_id)
VALUES ($1, $2, $3, $4)`
	_, err := r.DB.ExecContext(ctx, query,
		record.ID,
		record.CreatedAt,
		record.ResumeLink,
		record.UserID,
	)
	return err
}

// ListByUser returns a user's records, newest first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	const query = `
SELECT id, created_at, resume_link, user_id
FROM resume_table
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var record Record
		if err := rows.Scan(&record.ID, &record.CreatedAt, &record.ResumeLink, &record.UserID); err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
