package application_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/sngm3741/ugym-konect/api/internal/public/application"
	"github.com/sngm3741/ugym-konect/api/internal/public/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gymListing(id string, price float64, province string) domain.Listing {
	return domain.Listing{
		ID:       id,
		Variant:  domain.VariantGym,
		Name:     "Gym " + id,
		Category: "Gym",
		Pricing:  domain.SinglePrice(price),
		Location: domain.Location{Province: province, City: province + " City"},
	}
}

func TestListingQueryService_ListFiltersSortsAndPages(t *testing.T) {
	repo := newFakeListingRepo(
		gymListing("g1", 750, "Western Cape"),
		gymListing("g2", 320, "Gauteng"),
		gymListing("g3", 450, "Gauteng"),
		gymListing("g4", 600, "Gauteng"),
	)
	svc := application.NewListingQueryService(repo)

	criteria := domain.FilterCriteria{}.WithPriceRange(300, 700)
	page, err := svc.List(context.Background(), domain.VariantGym, criteria, domain.SortPriceLow, application.Paging{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "g2", page.Items[0].ID)
	assert.Equal(t, "g3", page.Items[1].ID)

	page, err = svc.List(context.Background(), domain.VariantGym, criteria, domain.SortPriceLow, application.Paging{Page: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "g4", page.Items[0].ID)

	page, err = svc.List(context.Background(), domain.VariantGym, criteria, domain.SortPriceLow, application.Paging{Page: 5, Limit: 2})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 3, page.Total)
}

func TestListingQueryService_ListHugePageIsEmpty(t *testing.T) {
	repo := newFakeListingRepo(
		gymListing("g1", 750, "Western Cape"),
		gymListing("g2", 320, "Gauteng"),
	)
	svc := application.NewListingQueryService(repo)

	for _, pageNo := range []int{3, 500000000000000001, math.MaxInt} {
		var page application.ListingPage
		require.NotPanics(t, func() {
			var err error
			page, err = svc.List(context.Background(), domain.VariantGym, domain.FilterCriteria{}, domain.SortRelevance, application.Paging{Page: pageNo, Limit: 20})
			require.NoError(t, err)
		})
		assert.Empty(t, page.Items, "page %d", pageNo)
		assert.Equal(t, 2, page.Total)
	}

	assert.Equal(t, math.MaxInt, application.Paging{Page: math.MaxInt, Limit: 100}.Offset())
	assert.Equal(t, 40, application.Paging{Page: 3, Limit: 20}.Offset())
}

func TestListingQueryService_ListDefaultsPaging(t *testing.T) {
	var listings []domain.Listing
	for i := 0; i < 150; i++ {
		listings = append(listings, gymListing(fmt.Sprintf("g%d", i), float64(i), "Gauteng"))
	}
	svc := application.NewListingQueryService(newFakeListingRepo(listings...))

	page, err := svc.List(context.Background(), domain.VariantGym, domain.FilterCriteria{}, domain.SortRelevance, application.Paging{})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, application.DefaultPageLimit, page.Limit)
	assert.Len(t, page.Items, application.DefaultPageLimit)

	page, err = svc.List(context.Background(), domain.VariantGym, domain.FilterCriteria{}, domain.SortRelevance, application.Paging{Limit: 1000})
	require.NoError(t, err)
	assert.Len(t, page.Items, application.MaxPageLimit)
}

func TestListingQueryService_ListRejectsInvalidRange(t *testing.T) {
	svc := application.NewListingQueryService(newFakeListingRepo())

	_, err := svc.List(context.Background(), domain.VariantGym, domain.FilterCriteria{}.WithPriceRange(-1, 10), "", application.Paging{})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestListingQueryService_SearchFansOut(t *testing.T) {
	repo := newFakeListingRepo(
		gymListing("g1", 300, "Gauteng"),
		domain.Listing{ID: "s1", Variant: domain.VariantService, Name: "Priya Patel", Title: "Yoga Instructor", Pricing: domain.SinglePrice(150)},
		domain.Listing{ID: "p1", Variant: domain.VariantProduct, Name: "Yoga Mat", Pricing: domain.SinglePrice(350)},
		domain.Listing{ID: "p2", Variant: domain.VariantProduct, Name: "Premium Whey Protein Powder", Pricing: domain.SinglePrice(899)},
	)
	svc := application.NewListingQueryService(repo)

	results, err := svc.Search(context.Background(), domain.FilterCriteria{SearchTerm: "yoga"}, domain.SortName)
	require.NoError(t, err)
	assert.Empty(t, results[domain.VariantGym])
	assert.Len(t, results[domain.VariantService], 1)
	assert.Len(t, results[domain.VariantProduct], 1)
	for _, v := range domain.Variants {
		assert.Equal(t, 1, repo.calls[v])
	}
}

func TestListingQueryService_SearchPropagatesFeedErrors(t *testing.T) {
	repo := newFakeListingRepo()
	repo.failOn = domain.VariantProduct
	repo.failErr = errors.New("mongo down")
	svc := application.NewListingQueryService(repo)

	_, err := svc.Search(context.Background(), domain.FilterCriteria{}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "products")
}

func TestListingQueryService_Facets(t *testing.T) {
	repo := newFakeListingRepo(
		domain.Listing{ID: "s1", Variant: domain.VariantService, Category: "Medical", ServiceTypes: []string{"Physiotherapist"}, Location: domain.Location{Province: "Western Cape", City: "Cape Town"}, Pricing: domain.SinglePrice(450)},
		domain.Listing{ID: "s2", Variant: domain.VariantService, Category: "Health & Wellness", ServiceTypes: []string{"Yoga Instructor", "Wellness Coach"}, Location: domain.Location{Province: "Gauteng", City: "Johannesburg"}, Pricing: domain.SinglePrice(150)},
	)
	svc := application.NewListingQueryService(repo)

	facets, err := svc.Facets(context.Background(), domain.VariantService)
	require.NoError(t, err)
	assert.Equal(t, []string{"Health & Wellness", "Medical"}, facets.Categories)
	assert.Equal(t, []string{"Physiotherapist", "Wellness Coach", "Yoga Instructor"}, facets.ServiceTypes)
	assert.Equal(t, []string{"Gauteng", "Western Cape"}, facets.Provinces)
	assert.Equal(t, 150.0, facets.MinPrice)
	assert.Equal(t, 450.0, facets.MaxPrice)
	assert.Equal(t, 1000.0, facets.PriceCeiling)
	assert.Equal(t, 2, facets.Count)
}

func TestListingQueryService_DetailNotFound(t *testing.T) {
	svc := application.NewListingQueryService(newFakeListingRepo())

	_, err := svc.Detail(context.Background(), domain.VariantGym, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
