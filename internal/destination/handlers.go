package destination

import (
	"net/http"

	"tourbooking/internal/api"
)

type Handlers struct {
	Catalog *CachedCatalog
}

func (h Handlers) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Catalog.List(r.Context())
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	if items == nil {
		items = []Destination{}
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}
