package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"tourbooking/internal/api"
	"tourbooking/internal/auth"
	"tourbooking/internal/booking"
	"tourbooking/internal/destination"
	"tourbooking/internal/notification"
	"tourbooking/internal/paymentproof"
	"tourbooking/pkg/blob"
	"tourbooking/pkg/config"
)

type Dependencies struct {
	Cfg   config.Config
	DB    *pgxpool.Pool
	Blobs blob.Store
}

func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	taxRate, err := decimal.NewFromString(deps.Cfg.TaxRate)
	if err != nil {
		taxRate = decimal.NewFromFloat(0.05)
	}

	bookingRepo := booking.NewRepository(deps.DB)
	destinationRepo := destination.NewRepository(deps.DB)
	catalog := destination.NewCachedCatalog(destinationRepo, deps.Cfg.Redis)
	dispatcher := notification.NewDispatcher(
		notification.NewMailjetSender(deps.Cfg.Mailjet),
		deps.Cfg.PublicBaseURL,
		deps.Cfg.Mailjet.InvoiceTemplateID,
		deps.Cfg.Mailjet.PaymentReceivedTemplateID,
	)

	bookingSvc := booking.NewService(bookingRepo, catalog, dispatcher, taxRate)
	bookingHandlers := booking.Handlers{Svc: bookingSvc}
	proofHandlers := paymentproof.Handlers{
		Ingestor: paymentproof.NewIngestor(bookingRepo, deps.Blobs),
	}
	destinationHandlers := destination.Handlers{Catalog: catalog}
	authHandlers := auth.Handlers{Cfg: deps.Cfg}

	r.Route("/v1", func(r chi.Router) {
		r.Use(api.CORSMiddleware(api.CORSOptions{
			AllowedOrigins: deps.Cfg.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "PATCH", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", "Authorization"},
			MaxAgeSeconds:  600,
		}))

		r.Post("/auth/login", authHandlers.Login)

		// Customer-facing endpoints
		r.Get("/destinations", destinationHandlers.List)
		r.Post("/bookings", bookingHandlers.Create)
		r.Post("/bookings/{id}/payment-proof", proofHandlers.Upload)

		// Back office (staff session required)
		r.Group(func(r chi.Router) {
			r.Use(api.StaffAuth(deps.Cfg.Staff.JWTSecret))

			r.Get("/bookings", bookingHandlers.List)
			r.Get("/bookings/{id}", bookingHandlers.Get)
			r.Patch("/bookings/{id}", bookingHandlers.PatchStatus)
			r.Get("/bookings/{id}/events", bookingHandlers.Events)
		})
	})

	return r
}
