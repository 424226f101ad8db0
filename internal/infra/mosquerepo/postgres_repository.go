// Package mosquerepo implements the mosque directory over PostGIS.
package mosquerepo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ID-Brains/islam-station/internal/domain/geo"
	"github.com/ID-Brains/islam-station/internal/domain/mosque"
)

// PostgresRepository implements mosque.Repository using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// FindNearby returns mosques within radiusMeters ordered by distance.
func (r *PostgresRepository) FindNearby(ctx context.Context, loc geo.Coordinate, radiusMeters, limit int) ([]mosque.Mosque, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT mosque_id, name, address, city, country,
		       ST_Y(location::geometry) AS latitude,
		       ST_X(location::geometry) AS longitude
		FROM mosques
		WHERE ST_DWithin(
			location::geography,
			ST_SetSRID(ST_MakePoint($2, $1), 4326)::geography,
			$3
		)
		ORDER BY ST_Distance(
			location::geography,
			ST_SetSRID(ST_MakePoint($2, $1), 4326)::geography
		) ASC
		LIMIT $4
	`, loc.Latitude, loc.Longitude, radiusMeters, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMosques(rows)
}

// SearchByName matches mosque names with optional city/country filters and
// reports the total hit count for pagination.
func (r *PostgresRepository) SearchByName(ctx context.Context, name, city, country string, limit, offset int) ([]mosque.Mosque, int, error) {
	pattern := "%" + name + "%"

	rows, err := r.pool.Query(ctx, `
		SELECT mosque_id, name, address, city, country,
		       ST_Y(location::geometry) AS latitude,
		       ST_X(location::geometry) AS longitude
		FROM mosques
		WHERE name ILIKE $1
		  AND ($2 = '' OR LOWER(city) = LOWER($2))
		  AND ($3 = '' OR LOWER(country) = LOWER($3))
		ORDER BY name ASC
		LIMIT $4 OFFSET $5
	`, pattern, city, country, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	mosques, err := scanMosques(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int
	err = r.pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM mosques
		WHERE name ILIKE $1
		  AND ($2 = '' OR LOWER(city) = LOWER($2))
		  AND ($3 = '' OR LOWER(country) = LOWER($3))
	`, pattern, city, country).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	return mosques, total, nil
}

// GetByID fetches a single directory entry.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (mosque.Mosque, bool, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT mosque_id, name, address, city, country,
		       ST_Y(location::geometry) AS latitude,
		       ST_X(location::geometry) AS longitude
		FROM mosques
		WHERE mosque_id = $1
		LIMIT 1
	`, id)
	if err != nil {
		return mosque.Mosque{}, false, err
	}
	defer rows.Close()

	if !rows.Next() {
		return mosque.Mosque{}, false, rows.Err()
	}
	m, err := scanMosque(rows)
	if err != nil {
		return mosque.Mosque{}, false, err
	}
	return m, true, rows.Err()
}

func scanMosques(rows pgx.Rows) ([]mosque.Mosque, error) {
	var out []mosque.Mosque
	for rows.Next() {
		m, err := scanMosque(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func scanMosque(rows pgx.Rows) (mosque.Mosque, error) {
	var m mosque.Mosque
	err := rows.Scan(&m.ID, &m.Name, &m.Address, &m.City, &m.Country,
		&m.Location.Latitude, &m.Location.Longitude)
	return m, err
}
