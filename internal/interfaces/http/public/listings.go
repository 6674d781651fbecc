package public

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sngm3741/ugym-konect/api/internal/interfaces/http/common"
	"github.com/sngm3741/ugym-konect/api/internal/public/domain"
)

func (h *Handler) listingListHandler(variant domain.Variant) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		query := r.URL.Query()
		criteria, err := parseCriteria(query)
		if err != nil {
			common.WriteDomainError(h.logger, w, err, "invalid filter")
			return
		}
		sortKey, err := domain.ParseSortKey(query.Get("sort"))
		if err != nil {
			common.WriteDomainError(h.logger, w, err, "invalid sort")
			return
		}

		page, err := h.listings.List(ctx, variant, criteria, sortKey, parsePaging(query))
		if err != nil {
			common.WriteDomainError(h.logger, w, err, "failed to load "+variant.Plural())
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, listingListResponse{
			Items:        buildListingResponses(page.Items),
			Page:         page.Page,
			Limit:        page.Limit,
			Total:        page.Total,
			Sort:         string(sortKey),
			ActiveFacets: criteria.ActiveFacets(variant),
		})
	}
}

func (h *Handler) listingDetailHandler(variant domain.Variant) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		id := strings.TrimSpace(chi.URLParam(r, "id"))
		if id == "" {
			common.WriteError(h.logger, w, http.StatusBadRequest, "listing id is required")
			return
		}

		listing, err := h.listings.Detail(ctx, variant, id)
		if err != nil {
			common.WriteDomainError(h.logger, w, err, "failed to load listing")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, buildListingResponse(*listing))
	}
}

func (h *Handler) listingFacetsHandler(variant domain.Variant) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		facets, err := h.listings.Facets(ctx, variant)
		if err != nil {
			common.WriteDomainError(h.logger, w, err, "failed to load filter metadata")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, buildFacetsResponse(facets))
	}
}

// searchHandler は 3 種別を横断して同じ条件で検索する。ページングは行わない。
func (h *Handler) searchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		query := r.URL.Query()
		criteria, err := parseCriteria(query)
		if err != nil {
			common.WriteDomainError(h.logger, w, err, "invalid filter")
			return
		}
		sortKey, err := domain.ParseSortKey(query.Get("sort"))
		if err != nil {
			common.WriteDomainError(h.logger, w, err, "invalid sort")
			return
		}

		results, err := h.listings.Search(ctx, criteria, sortKey)
		if err != nil {
			common.WriteDomainError(h.logger, w, err, "search failed")
			return
		}

		resp := searchResponse{
			Gyms:     buildListingResponses(results[domain.VariantGym]),
			Services: buildListingResponses(results[domain.VariantService]),
			Products: buildListingResponses(results[domain.VariantProduct]),
		}
		resp.Total = len(resp.Gyms) + len(resp.Services) + len(resp.Products)
		common.WriteJSON(h.logger, w, http.StatusOK, resp)
	}
}

func (h *Handler) taxonomyHandler() http.HandlerFunc {
	resp := taxonomyResponse{
		ProductCategories: domain.ProductCategories,
		GymFacilities:     domain.GymFacilities,
		Provinces:         domain.Provinces,
		MajorCities:       domain.MajorCities,
	}
	for _, c := range domain.ServiceCategories {
		resp.ServiceCategories = append(resp.ServiceCategories, serviceCategoryPayload{Name: c.Name, ServiceTypes: c.ServiceTypes})
	}
	return func(w http.ResponseWriter, _ *http.Request) {
		common.WriteJSON(h.logger, w, http.StatusOK, resp)
	}
}
