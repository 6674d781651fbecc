package domain_test

import (
	"testing"

	"github.com/sngm3741/ugym-konect/api/internal/public/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortListings(t *testing.T) {
	listings := serviceFixtures()

	tests := []struct {
		key  domain.SortKey
		want []string
	}{
		{domain.SortRelevance, []string{"svc-1", "svc-2", "svc-3"}},
		{domain.SortRating, []string{"svc-1", "svc-2", "svc-3"}},
		{domain.SortPrice, []string{"svc-1", "svc-3", "svc-2"}},
		{domain.SortPriceLow, []string{"svc-1", "svc-3", "svc-2"}},
		{domain.SortPriceHigh, []string{"svc-2", "svc-3", "svc-1"}},
		{domain.SortName, []string{"svc-2", "svc-3", "svc-1"}},
		{domain.SortExperience, []string{"svc-3", "svc-2", "svc-1"}},
		{domain.SortReviews, []string{"svc-3", "svc-1", "svc-2"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			got := domain.SortListings(listings, tt.key)
			assert.Equal(t, tt.want, ids(got))
			assert.Equal(t, []string{"svc-1", "svc-2", "svc-3"}, ids(listings), "input must not be reordered")
		})
	}
}

func TestSortListings_StableOnTies(t *testing.T) {
	listings := []domain.Listing{
		{ID: "a", Rating: 4.5},
		{ID: "b", Rating: 4.9},
		{ID: "c", Rating: 4.5},
		{ID: "d", Rating: 4.5},
	}

	got := domain.SortListings(listings, domain.SortRating)
	assert.Equal(t, []string{"b", "a", "c", "d"}, ids(got))
}

func TestSortListings_NameIsCollated(t *testing.T) {
	listings := []domain.Listing{{ID: "1", Name: "cherry"}, {ID: "2", Name: "Banana"}, {ID: "3", Name: "apple"}}

	got := domain.SortListings(listings, domain.SortName)
	assert.Equal(t, []string{"3", "2", "1"}, ids(got))
}

func TestParseSortKey(t *testing.T) {
	for _, in := range []string{"", "relevance", "rating", "price", "price-low", "PRICE-HIGH", "name", "experience", "reviews"} {
		_, err := domain.ParseSortKey(in)
		require.NoError(t, err, in)
	}

	key, err := domain.ParseSortKey("relevance")
	require.NoError(t, err)
	assert.Equal(t, domain.SortRelevance, key)

	_, err = domain.ParseSortKey("popularity")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestParseAmount(t *testing.T) {
	tests := map[string]float64{
		"6 years":    6,
		"10+ years":  10,
		"R750/month": 750,
		"R1,200":     1200,
		"":           0,
		"n/a":        0,
	}
	for in, want := range tests {
		assert.Equal(t, want, domain.ParseAmount(in), in)
	}
}
