package paymentproof

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"tourbooking/internal/booking"
	"tourbooking/pkg/blob"
)

// ErrUnsupportedMediaType means the upload is not one of the accepted image
// formats.
var ErrUnsupportedMediaType = errors.New("unsupported payment proof media type")

// extByMIME is the accepted upload allowlist. Bank-transfer proofs are photos
// or screenshots; anything else is rejected before touching storage.
var extByMIME = map[string]string{
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
}

// BookingStore is the slice of the booking store the ingestor needs.
type BookingStore interface {
	GetByID(ctx context.Context, id string) (*booking.Booking, error)
	SetPaymentProof(ctx context.Context, id, url string) (*booking.Booking, error)
}

// Ingestor accepts a proof upload, writes it to blob storage under a
// deterministic key and records the URL on the booking. It never advances
// status: verification stays a manual staff action.
type Ingestor struct {
	store BookingStore
	blobs blob.Store
}

func NewIngestor(store BookingStore, blobs blob.Store) *Ingestor {
	return &Ingestor{store: store, blobs: blobs}
}

// ObjectKey is deterministic per booking so a re-upload before staff review
// overwrites the previous proof instead of accumulating objects.
func ObjectKey(bookingID, mimeType string) (string, error) {
	ext, ok := extByMIME[strings.ToLower(strings.TrimSpace(mimeType))]
	if !ok {
		return "", ErrUnsupportedMediaType
	}
	return fmt.Sprintf("payment_proof/%s.%s", bookingID, ext), nil
}

func (i *Ingestor) Ingest(ctx context.Context, bookingID, mimeType string, body io.Reader) (*booking.Booking, error) {
	key, err := ObjectKey(bookingID, mimeType)
	if err != nil {
		return nil, err
	}

	// Reject unknown bookings before paying for a blob write.
	if _, err := i.store.GetByID(ctx, bookingID); err != nil {
		return nil, err
	}

	url, err := i.blobs.Put(ctx, key, mimeType, body)
	if err != nil {
		// Blob write failed; the booking is untouched.
		return nil, err
	}

	updated, err := i.store.SetPaymentProof(ctx, bookingID, url)
	if err != nil {
		// The blob is already written; leave it orphaned rather than attempt
		// a rollback against an eventually consistent store.
		log.Printf("WARNING: payment proof stored at %s but booking %s update failed: %v", key, bookingID, err)
		return nil, err
	}
	return updated, nil
}
