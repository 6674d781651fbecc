package admin

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	adminapp "github.com/sngm3741/ugym-konect/api/internal/admin/application"
	"github.com/sngm3741/ugym-konect/api/internal/interfaces/http/common"
)

func (h *Handler) listingSearchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		query := r.URL.Query()
		filter, err := parseListingFilter(query)
		if err != nil {
			common.WriteDomainError(h.logger, w, err, "invalid filter")
			return
		}
		page, _ := common.ParsePositiveInt(query.Get("page"), 1)
		limit, _ := common.ParsePositiveInt(query.Get("limit"), 20)

		listings, err := h.listings.List(ctx, filter, adminapp.Paging{Page: page, Limit: limit})
		if err != nil {
			common.WriteDomainError(h.logger, w, err, "failed to load listings")
			return
		}

		items := make([]adminListingResponse, 0, len(listings))
		for _, l := range listings {
			items = append(items, adminListingDomainToResponse(l))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, adminListingListResponse{Items: items, Page: page, Limit: limit})
	}
}

func (h *Handler) listingDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		listing, err := h.listings.Detail(ctx, strings.TrimSpace(chi.URLParam(r, "id")))
		if err != nil {
			common.WriteDomainError(h.logger, w, err, "failed to load listing")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, adminListingDomainToResponse(*listing))
	}
}

func (h *Handler) listingCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req adminListingRequest
		if err := decodeJSON(r, &req); err != nil {
			common.WriteDomainError(h.logger, w, err, "invalid request")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		listing, err := h.listings.Create(ctx, req.toCommand())
		if err != nil {
			common.WriteDomainError(h.logger, w, err, "failed to create listing")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusCreated, adminListingDomainToResponse(*listing))
	}
}

func (h *Handler) listingUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req adminListingRequest
		if err := decodeJSON(r, &req); err != nil {
			common.WriteDomainError(h.logger, w, err, "invalid request")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		listing, err := h.listings.Update(ctx, strings.TrimSpace(chi.URLParam(r, "id")), req.toCommand())
		if err != nil {
			common.WriteDomainError(h.logger, w, err, "failed to update listing")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, adminListingDomainToResponse(*listing))
	}
}

func (h *Handler) listingStatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req adminStatusRequest
		if err := decodeJSON(r, &req); err != nil {
			common.WriteDomainError(h.logger, w, err, "invalid request")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		listing, err := h.listings.SetStatus(ctx, strings.TrimSpace(chi.URLParam(r, "id")), adminapp.SetStatusCommand{
			Status: req.Status,
			Note:   req.Note,
		})
		if err != nil {
			common.WriteDomainError(h.logger, w, err, "failed to change listing status")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, adminListingDomainToResponse(*listing))
	}
}
