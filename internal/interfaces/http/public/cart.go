package public

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sngm3741/ugym-konect/api/internal/interfaces/http/common"
	publicapp "github.com/sngm3741/ugym-konect/api/internal/public/application"
	"github.com/sngm3741/ugym-konect/api/internal/public/domain"
)

func (h *Handler) cartGetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := h.ownerID(w, r)
		if !ok {
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		state, err := h.carts.Get(ctx, owner)
		if err != nil {
			common.WriteDomainError(h.logger, w, err, "failed to load cart")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, buildCartResponse(state))
	}
}

// cartAddHandler は価格・商品名をクライアントから受け取らず、商品リスティングから引き直す。
func (h *Handler) cartAddHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := h.ownerID(w, r)
		if !ok {
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		var req addCartItemRequest
		if err := decodeJSON(r, &req); err != nil {
			common.WriteDomainError(h.logger, w, err, "invalid request")
			return
		}
		productID := strings.TrimSpace(req.ProductID)
		if productID == "" {
			common.WriteError(h.logger, w, http.StatusBadRequest, "productId is required")
			return
		}
		if req.Quantity > common.MaxCartQuantity {
			common.WriteError(h.logger, w, http.StatusBadRequest, fmt.Sprintf("quantity must be at most %d", common.MaxCartQuantity))
			return
		}

		product, err := h.listings.Detail(ctx, domain.VariantProduct, productID)
		if err != nil {
			common.WriteDomainError(h.logger, w, err, "failed to load product")
			return
		}
		if !product.Details.InStock {
			common.WriteError(h.logger, w, http.StatusConflict, "product is out of stock")
			return
		}

		line := domain.CartLine{
			ItemID:     product.ID,
			ProductID:  product.ID,
			BusinessID: product.BusinessID,
			Name:       product.Name,
			UnitPrice:  product.RepresentativePrice(),
		}
		if len(product.ImageURLs) > 0 {
			line.Image = product.ImageURLs[0]
		}

		h.applyCartAction(ctx, w, owner, domain.AddItem{Line: line, Quantity: req.Quantity})
	}
}

func (h *Handler) cartUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := h.ownerID(w, r)
		if !ok {
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		var req updateCartItemRequest
		if err := decodeJSON(r, &req); err != nil {
			common.WriteDomainError(h.logger, w, err, "invalid request")
			return
		}
		if req.Quantity == nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, "quantity is required")
			return
		}
		if *req.Quantity > common.MaxCartQuantity {
			common.WriteError(h.logger, w, http.StatusBadRequest, fmt.Sprintf("quantity must be at most %d", common.MaxCartQuantity))
			return
		}

		h.applyCartAction(ctx, w, owner, domain.UpdateQuantity{
			ItemID:   strings.TrimSpace(chi.URLParam(r, "itemId")),
			Quantity: *req.Quantity,
		})
	}
}

func (h *Handler) cartRemoveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := h.ownerID(w, r)
		if !ok {
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		h.applyCartAction(ctx, w, owner, domain.RemoveItem{ItemID: strings.TrimSpace(chi.URLParam(r, "itemId"))})
	}
}

func (h *Handler) cartClearHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := h.ownerID(w, r)
		if !ok {
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		h.applyCartAction(ctx, w, owner, domain.ClearCart{})
	}
}

func (h *Handler) applyCartAction(ctx context.Context, w http.ResponseWriter, owner string, action domain.CartAction) {
	state, err := h.carts.Apply(ctx, owner, action)
	if err != nil {
		common.WriteDomainError(h.logger, w, err, "failed to update cart")
		return
	}
	common.WriteJSON(h.logger, w, http.StatusOK, buildCartResponse(state))
}

func (h *Handler) cartCheckoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := h.ownerID(w, r)
		if !ok {
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		var req checkoutRequest
		if err := decodeJSON(r, &req); err != nil {
			common.WriteDomainError(h.logger, w, err, "invalid request")
			return
		}

		receipt, err := h.carts.Checkout(ctx, publicapp.CheckoutCommand{
			OwnerID: owner,
			Contact: req.Contact.toDomain(),
			Shipping: publicapp.ShippingAddress{
				Address:    strings.TrimSpace(req.Shipping.Address),
				City:       strings.TrimSpace(req.Shipping.City),
				Province:   strings.TrimSpace(req.Shipping.Province),
				PostalCode: strings.TrimSpace(req.Shipping.PostalCode),
			},
			PaymentMethod: strings.TrimSpace(req.PaymentMethod),
			AgreeToTerms:  req.AgreeToTerms,
		})
		if err != nil {
			common.WriteDomainError(h.logger, w, err, "checkout failed")
			return
		}

		common.WriteJSON(h.logger, w, http.StatusCreated, checkoutReceiptResponse{
			OrderRef:     receipt.OrderRef,
			ItemCount:    receipt.ItemCount,
			Subtotal:     receipt.Totals.Subtotal,
			Fee:          receipt.Totals.Fee,
			Total:        receipt.Totals.Total,
			CheckedOutAt: receipt.CheckedOutAt,
		})
	}
}
