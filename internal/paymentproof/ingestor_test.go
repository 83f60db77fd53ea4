package paymentproof

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"tourbooking/internal/booking"
)

type MockBookingStore struct {
	mock.Mock
}

func (m *MockBookingStore) GetByID(ctx context.Context, id string) (*booking.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Booking), args.Error(1)
}

func (m *MockBookingStore) SetPaymentProof(ctx context.Context, id, url string) (*booking.Booking, error) {
	args := m.Called(ctx, id, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Booking), args.Error(1)
}

type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) Put(ctx context.Context, key string, contentType string, body io.Reader) (string, error) {
	args := m.Called(ctx, key, contentType, body)
	return args.String(0), args.Error(1)
}

func TestObjectKey_Deterministic(t *testing.T) {
	key, err := ObjectKey("BKG-abc-1", "image/png")
	assert.NoError(t, err)
	assert.Equal(t, "payment_proof/BKG-abc-1.png", key)

	// jpg and jpeg collapse to the same extension, so re-uploads overwrite.
	k1, _ := ObjectKey("BKG-abc-1", "image/jpeg")
	k2, _ := ObjectKey("BKG-abc-1", "image/jpg")
	assert.Equal(t, k1, k2)
}

func TestIngest_RejectsUnsupportedMediaType(t *testing.T) {
	store := &MockBookingStore{}
	blobs := &MockBlobStore{}
	ing := NewIngestor(store, blobs)

	_, err := ing.Ingest(context.Background(), "BKG-abc-1", "application/pdf", strings.NewReader("%PDF"))

	assert.ErrorIs(t, err, ErrUnsupportedMediaType)
	blobs.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "SetPaymentProof", mock.Anything, mock.Anything, mock.Anything)
}

func TestIngest_UnknownBooking(t *testing.T) {
	store := &MockBookingStore{}
	blobs := &MockBlobStore{}
	ing := NewIngestor(store, blobs)

	store.On("GetByID", mock.Anything, "BKG-missing-1").Return(nil, booking.ErrNotFound)

	_, err := ing.Ingest(context.Background(), "BKG-missing-1", "image/png", strings.NewReader("png"))

	assert.ErrorIs(t, err, booking.ErrNotFound)
	blobs.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestIngest_BlobFailureLeavesBookingUntouched(t *testing.T) {
	store := &MockBookingStore{}
	blobs := &MockBlobStore{}
	ing := NewIngestor(store, blobs)

	store.On("GetByID", mock.Anything, "BKG-abc-1").Return(&booking.Booking{ID: "BKG-abc-1"}, nil)
	blobs.On("Put", mock.Anything, "payment_proof/BKG-abc-1.png", "image/png", mock.Anything).
		Return("", errors.New("storage down"))

	_, err := ing.Ingest(context.Background(), "BKG-abc-1", "image/png", strings.NewReader("png"))

	assert.Error(t, err)
	store.AssertNotCalled(t, "SetPaymentProof", mock.Anything, mock.Anything, mock.Anything)
}

func TestIngest_Success(t *testing.T) {
	store := &MockBookingStore{}
	blobs := &MockBlobStore{}
	ing := NewIngestor(store, blobs)

	updated := &booking.Booking{ID: "BKG-abc-1", PaymentProof: "https://cdn.example.com/payment_proof/BKG-abc-1.png"}

	store.On("GetByID", mock.Anything, "BKG-abc-1").Return(&booking.Booking{ID: "BKG-abc-1", Status: booking.StatusPending}, nil)
	blobs.On("Put", mock.Anything, "payment_proof/BKG-abc-1.png", "image/png", mock.Anything).
		Return("https://cdn.example.com/payment_proof/BKG-abc-1.png", nil)
	store.On("SetPaymentProof", mock.Anything, "BKG-abc-1", "https://cdn.example.com/payment_proof/BKG-abc-1.png").
		Return(updated, nil)

	got, err := ing.Ingest(context.Background(), "BKG-abc-1", "image/png", strings.NewReader("png"))

	assert.NoError(t, err)
	assert.Equal(t, updated.PaymentProof, got.PaymentProof)
	store.AssertExpectations(t)
	blobs.AssertExpectations(t)
}

func TestIngest_DBFailureAfterBlobWriteSurfacesError(t *testing.T) {
	store := &MockBookingStore{}
	blobs := &MockBlobStore{}
	ing := NewIngestor(store, blobs)

	store.On("GetByID", mock.Anything, "BKG-abc-1").Return(&booking.Booking{ID: "BKG-abc-1"}, nil)
	blobs.On("Put", mock.Anything, "payment_proof/BKG-abc-1.jpg", "image/jpeg", mock.Anything).
		Return("https://cdn.example.com/payment_proof/BKG-abc-1.jpg", nil)
	store.On("SetPaymentProof", mock.Anything, "BKG-abc-1", mock.Anything).
		Return(nil, errors.New("db down"))

	_, err := ing.Ingest(context.Background(), "BKG-abc-1", "image/jpeg", strings.NewReader("jpg"))

	// The orphaned blob is logged, not rolled back; the caller still sees
	// the failure.
	assert.Error(t, err)
}
