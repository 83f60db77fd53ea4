package booking

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"tourbooking/internal/destination"
	"tourbooking/internal/events"
)

type Store interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, f ListFilter) ([]Booking, int, error)
	UpdateStatus(ctx context.Context, id string, from, next Status, event Event, expectedUpdatedAt time.Time) (*Booking, error)
	SetPaymentProof(ctx context.Context, id, url string) (*Booking, error)
	ListEvents(ctx context.Context, bookingID string) ([]events.Record, error)
}

// Catalog is the read-only destination collaborator; bookings snapshot its
// fields at creation time.
type Catalog interface {
	GetByID(ctx context.Context, id int64) (*destination.Destination, error)
}

// Notifier fires an outbound message for a transition event. It reports
// whether a message was actually attempted; silent events return false, nil.
type Notifier interface {
	Notify(ctx context.Context, ev Event, b *Booking) (bool, error)
}

type Service struct {
	store    Store
	catalog  Catalog
	notifier Notifier
	taxRate  decimal.Decimal
	now      func() time.Time
}

func NewService(store Store, catalog Catalog, notifier Notifier, taxRate decimal.Decimal) *Service {
	return &Service{
		store:    store,
		catalog:  catalog,
		notifier: notifier,
		taxRate:  taxRate,
		now:      time.Now,
	}
}

type CreateInput struct {
	CustomerName   string    `json:"customerName"`
	Email          string    `json:"email"`
	BookingDate    time.Time `json:"bookingDate"`
	PickupLocation string    `json:"pickupLocation"`
	Pax            int       `json:"pax"`
	DestinationID  int64     `json:"destinationId"`
}

// Create validates the submission, snapshots destination pricing and persists
// the booking in its initial pending status.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Booking, error) {
	now := s.now()

	fields := map[string]string{}
	if strings.TrimSpace(in.CustomerName) == "" {
		fields["customerName"] = "customer name is required"
	}
	email := strings.TrimSpace(in.Email)
	if email == "" {
		fields["email"] = "email is required"
	} else if !strings.Contains(email, "@") {
		fields["email"] = "email is invalid"
	}
	if in.BookingDate.IsZero() {
		fields["bookingDate"] = "booking date is required"
	} else if in.BookingDate.Before(now.Truncate(24 * time.Hour)) {
		fields["bookingDate"] = "booking date must not be in the past"
	}
	if strings.TrimSpace(in.PickupLocation) == "" {
		fields["pickupLocation"] = "pickup location is required"
	}
	if in.Pax <= 0 {
		fields["pax"] = "pax must be at least 1"
	}
	if in.DestinationID <= 0 {
		fields["destinationId"] = "destination is required"
	}
	if len(fields) > 0 {
		return nil, ValidationError{Fields: fields}
	}

	dest, err := s.catalog.GetByID(ctx, in.DestinationID)
	if err != nil {
		if errors.Is(err, destination.ErrNotFound) {
			return nil, ValidationError{Fields: map[string]string{"destinationId": "unknown destination"}}
		}
		return nil, err
	}
	if in.Pax < dest.MinimumPax {
		return nil, ValidationError{Fields: map[string]string{"pax": "pax is below the destination minimum"}}
	}

	pricing := Quote(dest.Price, in.Pax, s.taxRate)
	b := &Booking{
		ID:             NewID(now),
		CustomerName:   strings.TrimSpace(in.CustomerName),
		Email:          email,
		BookingDate:    in.BookingDate,
		PickupLocation: strings.TrimSpace(in.PickupLocation),
		Pax:            in.Pax,
		Destination: DestinationSnapshot{
			ID:         dest.ID,
			Title:      dest.Title,
			Duration:   dest.Duration,
			Inclusions: dest.Inclusions,
			Price:      dest.Price,
		},
		Subtotal: pricing.Subtotal,
		Tax:      pricing.Tax,
		TaxRate:  pricing.TaxRate,
		Total:    pricing.Total,
		Status:   StatusPending,
	}

	if err := s.store.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// ChangeStatus validates the requested transition, commits it with a
// compare-and-swap, and then fires the notification out-of-band. The reported
// bool is whether a notification was delivered; a failed send never rolls the
// committed transition back.
func (s *Service) ChangeStatus(ctx context.Context, id string, target Status) (*Booking, bool, error) {
	current, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, false, err
	}

	ev, err := Transition(current.Status, target)
	if err != nil {
		return nil, false, err
	}

	updated, err := s.store.UpdateStatus(ctx, id, current.Status, target, ev, current.UpdatedAt)
	if err != nil {
		return nil, false, err
	}

	sent, nerr := s.notifier.Notify(ctx, ev, updated)
	if nerr != nil {
		log.Printf("WARNING: notification for booking %s event %s failed: %v", updated.ID, ev, nerr)
		return updated, false, nil
	}
	return updated, sent, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Booking, error) {
	return s.store.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]Booking, int, error) {
	return s.store.List(ctx, f)
}

func (s *Service) Events(ctx context.Context, id string) ([]events.Record, error) {
	if _, err := s.store.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.store.ListEvents(ctx, id)
}

var _ Store = (*Repository)(nil)
