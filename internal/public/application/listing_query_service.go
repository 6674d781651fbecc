package application

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/sngm3741/ugym-konect/api/internal/public/domain"
)

const (
	// DefaultPageLimit is used when the caller does not ask for a page size.
	DefaultPageLimit = 20
	// MaxPageLimit caps the page size.
	MaxPageLimit = 100
)

// listingQueryService is the concrete implementation of ListingQueryService.
type listingQueryService struct {
	repo ListingRepository
}

// NewListingQueryService creates a new listing query service.
func NewListingQueryService(repo ListingRepository) ListingQueryService {
	return &listingQueryService{repo: repo}
}

func (s *listingQueryService) List(ctx context.Context, variant domain.Variant, criteria domain.FilterCriteria, sortKey domain.SortKey, paging Paging) (ListingPage, error) {
	if err := criteria.Validate(); err != nil {
		return ListingPage{}, err
	}
	listings, err := s.repo.FindByVariant(ctx, variant)
	if err != nil {
		return ListingPage{}, fmt.Errorf("load %s feed: %w", variant.Plural(), err)
	}

	matched := domain.SortListings(domain.FilterListings(listings, criteria), sortKey)
	paging = normalizePaging(paging)

	return ListingPage{
		Items: paginate(matched, paging),
		Total: len(matched),
		Page:  paging.Page,
		Limit: paging.Limit,
	}, nil
}

// Search runs the same criteria against every variant feed in parallel.
func (s *listingQueryService) Search(ctx context.Context, criteria domain.FilterCriteria, sortKey domain.SortKey) (map[domain.Variant][]domain.Listing, error) {
	if err := criteria.Validate(); err != nil {
		return nil, err
	}

	results := make([][]domain.Listing, len(domain.Variants))
	g, gctx := errgroup.WithContext(ctx)
	for i, variant := range domain.Variants {
		i, variant := i, variant
		g.Go(func() error {
			listings, err := s.repo.FindByVariant(gctx, variant)
			if err != nil {
				return fmt.Errorf("load %s feed: %w", variant.Plural(), err)
			}
			results[i] = domain.SortListings(domain.FilterListings(listings, criteria), sortKey)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byVariant := make(map[domain.Variant][]domain.Listing, len(domain.Variants))
	for i, variant := range domain.Variants {
		byVariant[variant] = results[i]
	}
	return byVariant, nil
}

func (s *listingQueryService) Detail(ctx context.Context, variant domain.Variant, id string) (*domain.Listing, error) {
	return s.repo.FindByID(ctx, variant, id)
}

func (s *listingQueryService) Facets(ctx context.Context, variant domain.Variant) (Facets, error) {
	listings, err := s.repo.FindByVariant(ctx, variant)
	if err != nil {
		return Facets{}, fmt.Errorf("load %s feed: %w", variant.Plural(), err)
	}

	categories := map[string]struct{}{}
	serviceTypes := map[string]struct{}{}
	provinces := map[string]struct{}{}
	cities := map[string]struct{}{}

	facets := Facets{Variant: variant, PriceCeiling: variant.PriceCeiling(), Count: len(listings)}
	for i, l := range listings {
		addNonEmpty(categories, l.Category)
		for _, t := range l.ServiceTypes {
			addNonEmpty(serviceTypes, t)
		}
		addNonEmpty(provinces, l.Location.Province)
		addNonEmpty(cities, l.Location.City)

		price := l.RepresentativePrice()
		if i == 0 || price < facets.MinPrice {
			facets.MinPrice = price
		}
		if price > facets.MaxPrice {
			facets.MaxPrice = price
		}
	}
	facets.Categories = sortedKeys(categories)
	facets.ServiceTypes = sortedKeys(serviceTypes)
	facets.Provinces = sortedKeys(provinces)
	facets.Cities = sortedKeys(cities)
	return facets, nil
}

func normalizePaging(p Paging) Paging {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	return p
}

func paginate(listings []domain.Listing, p Paging) []domain.Listing {
	pages := (len(listings) + p.Limit - 1) / p.Limit
	if p.Page-1 >= pages {
		return []domain.Listing{}
	}
	start := p.Offset()
	if start >= len(listings) {
		return []domain.Listing{}
	}
	end := start + p.Limit
	if end > len(listings) {
		end = len(listings)
	}
	return listings[start:end]
}

func addNonEmpty(set map[string]struct{}, value string) {
	if value != "" {
		set[value] = struct{}{}
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
