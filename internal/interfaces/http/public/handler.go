package public

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	publicapp "github.com/sngm3741/ugym-konect/api/internal/public/application"
	"github.com/sngm3741/ugym-konect/api/internal/public/domain"
)

// Handler wires public HTTP endpoints to application services.
type Handler struct {
	logger    *log.Logger
	listings  publicapp.ListingQueryService
	carts     publicapp.CartService
	inquiries publicapp.InquiryCommandService
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger    *log.Logger
	Listings  publicapp.ListingQueryService
	Carts     publicapp.CartService
	Inquiries publicapp.InquiryCommandService
}

// NewHandler constructs a public HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:    cfg.Logger,
		listings:  cfg.Listings,
		carts:     cfg.Carts,
		inquiries: cfg.Inquiries,
	}
}

// Register mounts all public routes onto the router.
func (h *Handler) Register(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	for _, variant := range domain.Variants {
		base := "/" + variant.Plural()
		r.Get(base, h.listingListHandler(variant))
		r.Get(base+"/facets", h.listingFacetsHandler(variant))
		r.Get(base+"/{id}", h.listingDetailHandler(variant))
	}
	r.Get("/search", h.searchHandler())
	r.Get("/taxonomy", h.taxonomyHandler())

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/auth/verify", h.authVerifyHandler())
		r.Get("/cart", h.cartGetHandler())
		r.Delete("/cart", h.cartClearHandler())
		r.Post("/cart/items", h.cartAddHandler())
		r.Patch("/cart/items/{itemId}", h.cartUpdateHandler())
		r.Delete("/cart/items/{itemId}", h.cartRemoveHandler())
		r.Post("/cart/checkout", h.cartCheckoutHandler())
		r.Post("/services/{id}/inquiries", h.inquiryCreateHandler())
	})
}
