package booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DestinationSnapshot freezes the catalog fields a booking was sold against.
// It is copied at creation time, not joined live, so later catalog edits do
// not rewrite historical pricing.
type DestinationSnapshot struct {
	ID         int64           `json:"id"`
	Title      string          `json:"title"`
	Duration   string          `json:"duration"`
	Inclusions []string        `json:"inclusions"`
	Price      decimal.Decimal `json:"price"`
}

type Booking struct {
	ID             string              `json:"id"`
	CustomerName   string              `json:"customerName"`
	Email          string              `json:"email"`
	BookingDate    time.Time           `json:"bookingDate"`
	PickupLocation string              `json:"pickupLocation"`
	Pax            int                 `json:"pax"`
	Destination    DestinationSnapshot `json:"destination"`
	Subtotal       decimal.Decimal     `json:"subtotal"`
	Tax            decimal.Decimal     `json:"tax"`
	TaxRate        decimal.Decimal     `json:"taxRate"`
	Total          decimal.Decimal     `json:"total"`
	PaymentProof   string              `json:"paymentProof,omitempty"`
	Status         Status              `json:"status"`
	CreatedAt      time.Time           `json:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt"`
}

// NewID generates an opaque booking id, e.g. BKG-9f3c21aa-1735689600.
func NewID(now time.Time) string {
	random := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return fmt.Sprintf("BKG-%s-%d", random, now.Unix())
}
