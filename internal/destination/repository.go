package destination

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("destination not found")

// Destination is catalog content managed elsewhere; the booking flow consumes
// it read-only to snapshot pricing.
type Destination struct {
	ID         int64           `json:"id"`
	Title      string          `json:"title"`
	Duration   string          `json:"duration"`
	MinimumPax int             `json:"minimumPax"`
	Inclusions []string        `json:"inclusions"`
	Price      decimal.Decimal `json:"price"`
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{db: pool}
}

func (r *Repository) List(ctx context.Context) ([]Destination, error) {
	const q = `
SELECT id, title, duration, minimum_pax, inclusions, price::text
FROM destinations
ORDER BY title ASC
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Destination
	for rows.Next() {
		d, err := scanDestination(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Destination, error) {
	const q = `
SELECT id, title, duration, minimum_pax, inclusions, price::text
FROM destinations
WHERE id = $1
`
	d, err := scanDestination(r.db.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return d, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDestination(row scanner) (*Destination, error) {
	var d Destination
	var price string
	if err := row.Scan(&d.ID, &d.Title, &d.Duration, &d.MinimumPax, &d.Inclusions, &price); err != nil {
		return nil, err
	}
	var err error
	if d.Price, err = decimal.NewFromString(price); err != nil {
		return nil, err
	}
	return &d, nil
}
