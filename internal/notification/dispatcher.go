package notification

import (
	"context"
	"fmt"
	"strings"

	"tourbooking/internal/booking"
)

// Message is a templated transactional email handed to the delivery provider.
type Message struct {
	ToEmail    string
	ToName     string
	TemplateID int64
	Subject    string
	Variables  map[string]any
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Dispatcher maps transition events to email templates. Only the confirmation
// (invoice) and payment-received transitions notify the customer; the rest of
// the lifecycle is silent.
type Dispatcher struct {
	sender        Sender
	publicBaseURL string

	invoiceTemplateID         int64
	paymentReceivedTemplateID int64
}

func NewDispatcher(sender Sender, publicBaseURL string, invoiceTemplateID, paymentReceivedTemplateID int64) *Dispatcher {
	return &Dispatcher{
		sender:                    sender,
		publicBaseURL:             strings.TrimRight(publicBaseURL, "/"),
		invoiceTemplateID:         invoiceTemplateID,
		paymentReceivedTemplateID: paymentReceivedTemplateID,
	}
}

// Notify sends the message for ev, if any. The returned bool reports whether
// a send was attempted and succeeded; silent events return false, nil.
func (d *Dispatcher) Notify(ctx context.Context, ev booking.Event, b *booking.Booking) (bool, error) {
	var templateID int64
	var subject string
	switch ev {
	case booking.EventConfirmed:
		templateID = d.invoiceTemplateID
		subject = fmt.Sprintf("Your booking %s is confirmed", b.ID)
	case booking.EventMarkedPaid:
		templateID = d.paymentReceivedTemplateID
		subject = fmt.Sprintf("Payment received for booking %s", b.ID)
	default:
		return false, nil
	}

	msg := Message{
		ToEmail:    b.Email,
		ToName:     b.CustomerName,
		TemplateID: templateID,
		Subject:    subject,
		Variables: map[string]any{
			"bookingId":        b.ID,
			"customerName":     b.CustomerName,
			"destinationTitle": b.Destination.Title,
			"duration":         b.Destination.Duration,
			"inclusions":       b.Destination.Inclusions,
			"bookingDate":      b.BookingDate.Format("2006-01-02"),
			"pickupLocation":   b.PickupLocation,
			"pax":              b.Pax,
			"subtotal":         b.Subtotal.String(),
			"tax":              b.Tax.String(),
			"total":            b.Total.String(),
			"invoiceUrl":       d.InvoiceURL(b.ID),
		},
	}

	if err := d.sender.Send(ctx, msg); err != nil {
		return false, err
	}
	return true, nil
}

// InvoiceURL is the customer-facing invoice page for a booking.
func (d *Dispatcher) InvoiceURL(bookingID string) string {
	return d.publicBaseURL + "/invoice/" + bookingID
}

var _ booking.Notifier = (*Dispatcher)(nil)
