package booking

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"tourbooking/internal/api"
)

type Handlers struct {
	Svc *Service
}

func (h Handlers) Create(w http.ResponseWriter, r *http.Request) {
	var in CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}

	b, err := h.Svc.Create(r.Context(), in)
	if err != nil {
		writeBookingError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, b)
}

func (h Handlers) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing id")
		return
	}

	b, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		writeBookingError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, b)
}

func (h Handlers) List(w http.ResponseWriter, r *http.Request) {
	f := ListFilter{
		Search: strings.TrimSpace(r.URL.Query().Get("search")),
		Page:   queryInt(r, "page", 1),
		Limit:  queryInt(r, "limit", 20),
	}

	items, total, err := h.Svc.List(r.Context(), f)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	if items == nil {
		items = []Booking{}
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{
		"items": items,
		"total": total,
		"page":  f.Page,
		"limit": f.Limit,
	})
}

type patchStatusRequest struct {
	Status string `json:"status"`
}

func (h Handlers) PatchStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing id")
		return
	}

	var req patchStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	target, err := ParseStatus(req.Status)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid status")
		return
	}
	if target == StatusPending {
		api.WriteError(w, http.StatusUnprocessableEntity, "INVALID_STATE_TRANSITION", "bookings cannot return to pending")
		return
	}

	b, notified, err := h.Svc.ChangeStatus(r.Context(), id, target)
	if err != nil {
		writeBookingError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{
		"booking":          b,
		"notificationSent": notified,
	})
}

func (h Handlers) Events(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing id")
		return
	}

	evs, err := h.Svc.Events(r.Context(), id)
	if err != nil {
		writeBookingError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": evs})
}

func writeBookingError(w http.ResponseWriter, err error) {
	var verr ValidationError
	var terr InvalidTransitionError
	switch {
	case errors.As(err, &verr):
		api.WriteValidationError(w, verr.Fields)
	case errors.As(err, &terr):
		api.WriteError(w, http.StatusUnprocessableEntity, "INVALID_STATE_TRANSITION", terr.Error())
	case errors.Is(err, ErrNotFound):
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "booking not found")
	case errors.Is(err, ErrConflict):
		api.WriteError(w, http.StatusConflict, "CONFLICT", "booking was modified concurrently, re-fetch and retry")
	default:
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
	}
}

func queryInt(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
