package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Record is one entry in a booking's history timeline, shown in the back
// office detail view.
type Record struct {
	ID        int64           `json:"id"`
	BookingID string          `json:"bookingId"`
	Type      string          `json:"type"`
	Message   string          `json:"message"`
	Actor     string          `json:"actor"`
	Meta      json.RawMessage `json:"meta,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Insert writes an event inside the caller's transaction so the timeline
// commits atomically with the change it describes.
func Insert(ctx context.Context, tx pgx.Tx, bookingID, eventType, message, actor string, meta map[string]any) error {
	payload, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO booking_events (booking_id, type, message, actor, meta)
VALUES ($1, $2, $3, $4, $5)
`
	_, err = tx.Exec(ctx, q, bookingID, eventType, message, actor, payload)
	return err
}

func ListByBooking(ctx context.Context, db *pgxpool.Pool, bookingID string) ([]Record, error) {
	const q = `
SELECT id, booking_id, type, message, actor, meta, created_at
FROM booking_events
WHERE booking_id = $1
ORDER BY created_at ASC, id ASC
`
	rows, err := db.Query(ctx, q, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.BookingID, &rec.Type, &rec.Message, &rec.Actor, &rec.Meta, &rec.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
