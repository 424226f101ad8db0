// Package dhikrrepo stores the dhikr collection in Postgres.
package dhikrrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ID-Brains/islam-station/internal/domain/dhikr"
)

// PostgresRepository implements dhikr.Repository using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Pick selects the category entry whose id rotation lands on dayOfYear, so
// every caller sees the same entry on the same day.
func (r *PostgresRepository) Pick(ctx context.Context, categoryID int, dayOfYear int) (dhikr.Dhikr, bool, error) {
	var d dhikr.Dhikr
	err := r.pool.QueryRow(ctx, `
		SELECT dhikr_id, category_id, text_ar, text_en,
		       COALESCE(benefits_ar, ''), COALESCE(benefits_en, ''),
		       COALESCE(reference, '')
		FROM dhikr
		WHERE category_id = $1
		ORDER BY (dhikr_id % 365) = ($2 % 365) DESC, dhikr_id ASC
		LIMIT 1
	`, categoryID, dayOfYear).Scan(
		&d.ID, &d.CategoryID, &d.TextAr, &d.TextEn,
		&d.BenefitsAr, &d.BenefitsEn, &d.Reference,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return dhikr.Dhikr{}, false, nil
	}
	if err != nil {
		return dhikr.Dhikr{}, false, err
	}
	return d, true, nil
}

// ListByCategory returns up to limit entries for a category.
func (r *PostgresRepository) ListByCategory(ctx context.Context, categoryID, limit int) ([]dhikr.Dhikr, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT dhikr_id, category_id, text_ar, text_en,
		       COALESCE(benefits_ar, ''), COALESCE(benefits_en, ''),
		       COALESCE(reference, '')
		FROM dhikr
		WHERE category_id = $1
		ORDER BY dhikr_id ASC
		LIMIT $2
	`, categoryID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []dhikr.Dhikr
	for rows.Next() {
		var d dhikr.Dhikr
		if err := rows.Scan(&d.ID, &d.CategoryID, &d.TextAr, &d.TextEn,
			&d.BenefitsAr, &d.BenefitsEn, &d.Reference); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
