package paymentproof

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"tourbooking/internal/api"
	"tourbooking/internal/booking"
)

// maxUploadBytes caps proof uploads; bank transfer screenshots are small.
const maxUploadBytes = 10 << 20

type Handlers struct {
	Ingestor *Ingestor
}

func (h Handlers) Upload(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing id")
		return
	}

	mimeType := strings.TrimSpace(r.URL.Query().Get("filetype"))
	if mimeType == "" {
		mimeType = r.Header.Get("Content-Type")
	}

	body := http.MaxBytesReader(w, r.Body, maxUploadBytes)
	defer func() { _ = body.Close() }()

	b, err := h.Ingestor.Ingest(r.Context(), id, mimeType, body)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnsupportedMediaType):
			api.WriteError(w, http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE", "payment proof must be a jpeg, png or gif image")
		case errors.Is(err, booking.ErrNotFound):
			api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "booking not found")
		default:
			api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to store payment proof")
		}
		return
	}

	api.WriteJSON(w, http.StatusOK, b)
}
