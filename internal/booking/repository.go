package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"tourbooking/internal/events"
	"tourbooking/pkg/db"
)

const bookingColumns = `
id, customer_name, email, booking_date, pickup_location, pax,
destination_id, destination_title, destination_duration, destination_inclusions, destination_price::text,
subtotal::text, tax::text, tax_rate::text, total::text,
payment_proof, status, created_at, updated_at`

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{db: pool}
}

type ListFilter struct {
	Search string
	Page   int
	Limit  int
}

func (r *Repository) Create(ctx context.Context, b *Booking) error {
	return db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		const q = `
INSERT INTO bookings (
	id, customer_name, email, booking_date, pickup_location, pax,
	destination_id, destination_title, destination_duration, destination_inclusions, destination_price,
	subtotal, tax, tax_rate, total, status
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
RETURNING created_at, updated_at
`
		if err := tx.QueryRow(ctx, q,
			b.ID, b.CustomerName, b.Email, b.BookingDate, b.PickupLocation, b.Pax,
			b.Destination.ID, b.Destination.Title, b.Destination.Duration, b.Destination.Inclusions, b.Destination.Price.String(),
			b.Subtotal.String(), b.Tax.String(), b.TaxRate.String(), b.Total.String(), string(b.Status),
		).Scan(&b.CreatedAt, &b.UpdatedAt); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return ErrDuplicateID
			}
			return err
		}

		return events.Insert(ctx, tx, b.ID, "BOOKING_CREATED", "Booking created", "customer",
			map[string]any{"status": b.Status, "total": b.Total.String()})
	})
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

// List returns a page of bookings matching the filter plus the total match
// count. Search is a case-insensitive substring match across id, name, email,
// status and pickup location; results are most-recently-updated first.
func (r *Repository) List(ctx context.Context, f ListFilter) ([]Booking, int, error) {
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Page <= 0 {
		f.Page = 1
	}
	offset := (f.Page - 1) * f.Limit

	q := `SELECT ` + bookingColumns + `, count(*) OVER() AS total_count
FROM bookings
WHERE ($1 = ''
	OR id ILIKE '%' || $1 || '%'
	OR customer_name ILIKE '%' || $1 || '%'
	OR email ILIKE '%' || $1 || '%'
	OR status ILIKE '%' || $1 || '%'
	OR pickup_location ILIKE '%' || $1 || '%')
ORDER BY updated_at DESC
LIMIT $2 OFFSET $3
`
	rows, err := r.db.Query(ctx, q, f.Search, f.Limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Booking
	total := 0
	for rows.Next() {
		b, n, err := scanBookingWithCount(rows)
		if err != nil {
			return nil, 0, err
		}
		total = n
		out = append(out, *b)
	}
	return out, total, rows.Err()
}

// UpdateStatus is a compare-and-swap on updated_at: the write only lands if
// the row has not changed since the caller read it. The losing writer gets
// ErrConflict instead of silently clobbering a newer transition.
func (r *Repository) UpdateStatus(ctx context.Context, id string, from, next Status, event Event, expectedUpdatedAt time.Time) (*Booking, error) {
	var updated *Booking
	err := db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		const q = `
UPDATE bookings
SET status = $2, updated_at = now()
WHERE id = $1 AND updated_at = $3
RETURNING ` + bookingColumns
		row := tx.QueryRow(ctx, q, id, string(next), expectedUpdatedAt)
		b, err := scanBooking(row)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				var one int
				if err := tx.QueryRow(ctx, `SELECT 1 FROM bookings WHERE id = $1`, id).Scan(&one); err != nil {
					if errors.Is(err, pgx.ErrNoRows) {
						return ErrNotFound
					}
					return err
				}
				return ErrConflict
			}
			return err
		}

		if err := events.Insert(ctx, tx, id, "STATUS_CHANGED",
			fmt.Sprintf("Status changed from %s to %s", from, next), "staff",
			map[string]any{"from": from, "to": next, "event": event}); err != nil {
			return err
		}
		updated = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// SetPaymentProof is deliberately unconditional: the customer is the only
// legitimate uploader per booking, so last write wins.
func (r *Repository) SetPaymentProof(ctx context.Context, id, url string) (*Booking, error) {
	var updated *Booking
	err := db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		const q = `
UPDATE bookings
SET payment_proof = $2, updated_at = now()
WHERE id = $1
RETURNING ` + bookingColumns
		row := tx.QueryRow(ctx, q, id, url)
		b, err := scanBooking(row)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}

		if err := events.Insert(ctx, tx, id, "PAYMENT_PROOF_UPLOADED", "Payment proof uploaded", "customer",
			map[string]any{"url": url}); err != nil {
			return err
		}
		updated = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *Repository) ListEvents(ctx context.Context, bookingID string) ([]events.Record, error) {
	return events.ListByBooking(ctx, r.db, bookingID)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBooking(row scanner) (*Booking, error) {
	return scan(row, nil)
}

func scanBookingWithCount(row scanner) (*Booking, int, error) {
	var total int
	b, err := scan(row, &total)
	return b, total, err
}

func scan(row scanner, total *int) (*Booking, error) {
	var (
		b                Booking
		destPrice        string
		subtotal, tax    string
		taxRate, totalAm string
		proof            *string
		status           string
	)
	dest := []any{
		&b.ID, &b.CustomerName, &b.Email, &b.BookingDate, &b.PickupLocation, &b.Pax,
		&b.Destination.ID, &b.Destination.Title, &b.Destination.Duration, &b.Destination.Inclusions, &destPrice,
		&subtotal, &tax, &taxRate, &totalAm,
		&proof, &status, &b.CreatedAt, &b.UpdatedAt,
	}
	if total != nil {
		dest = append(dest, total)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	var err error
	if b.Destination.Price, err = decimal.NewFromString(destPrice); err != nil {
		return nil, err
	}
	if b.Subtotal, err = decimal.NewFromString(subtotal); err != nil {
		return nil, err
	}
	if b.Tax, err = decimal.NewFromString(tax); err != nil {
		return nil, err
	}
	if b.TaxRate, err = decimal.NewFromString(taxRate); err != nil {
		return nil, err
	}
	if b.Total, err = decimal.NewFromString(totalAm); err != nil {
		return nil, err
	}
	if proof != nil {
		b.PaymentProof = *proof
	}
	b.Status = Status(status)
	return &b, nil
}
