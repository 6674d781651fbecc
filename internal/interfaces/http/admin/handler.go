package admin

import (
	"log"

	"github.com/go-chi/chi/v5"
	adminapp "github.com/sngm3741/ugym-konect/api/internal/admin/application"
)

// Handler wires admin HTTP endpoints to application services.
type Handler struct {
	logger   *log.Logger
	listings adminapp.ListingService
}

// Config provides dependencies for Handler.
type Config struct {
	Logger   *log.Logger
	Listings adminapp.ListingService
}

// NewHandler constructs an admin HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:   cfg.Logger,
		listings: cfg.Listings,
	}
}

// Register mounts admin routes onto router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/listings", h.listingSearchHandler())
	r.Post("/listings", h.listingCreateHandler())
	r.Get("/listings/{id}", h.listingDetailHandler())
	r.Patch("/listings/{id}", h.listingUpdateHandler())
	r.Patch("/listings/{id}/status", h.listingStatusHandler())
}
