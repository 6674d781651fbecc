package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey selects the ordering applied after filtering.
type SortKey string

const (
	SortRelevance  SortKey = ""
	SortRating     SortKey = "rating"
	SortPrice      SortKey = "price"
	SortPriceLow   SortKey = "price-low"
	SortPriceHigh  SortKey = "price-high"
	SortName       SortKey = "name"
	SortExperience SortKey = "experience"
	SortReviews    SortKey = "reviews"
)

// ParseSortKey maps a query value onto a SortKey.
func ParseSortKey(value string) (SortKey, error) {
	key := SortKey(strings.ToLower(strings.TrimSpace(value)))
	switch key {
	case SortRelevance, SortRating, SortPrice, SortPriceLow, SortPriceHigh, SortName, SortExperience, SortReviews:
		return key, nil
	case "relevance":
		return SortRelevance, nil
	}
	return "", fmt.Errorf("%w: unknown sort key %q", ErrInvalidArgument, value)
}

// SortListings returns a sorted copy of listings. Equal keys keep their input order.
func SortListings(listings []Listing, key SortKey) []Listing {
	sorted := append([]Listing(nil), listings...)

	switch key {
	case SortRating:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Rating > sorted[j].Rating
		})
	case SortPrice, SortPriceLow:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].RepresentativePrice() < sorted[j].RepresentativePrice()
		})
	case SortPriceHigh:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].RepresentativePrice() > sorted[j].RepresentativePrice()
		})
	case SortName:
		col := collate.New(language.English)
		sort.SliceStable(sorted, func(i, j int) bool {
			return col.CompareString(sorted[i].Name, sorted[j].Name) < 0
		})
	case SortExperience:
		sort.SliceStable(sorted, func(i, j int) bool {
			return ParseAmount(sorted[i].Experience) > ParseAmount(sorted[j].Experience)
		})
	case SortReviews:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].ReviewCount > sorted[j].ReviewCount
		})
	}
	return sorted
}

// ParseAmount keeps only the digits of value and parses them, so "10+ years" is 10
// and "R750/month" is 750. Anything without digits, or too large to parse, is 0.
func ParseAmount(value string) float64 {
	var digits strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0
	}
	n, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		return 0
	}
	return float64(n)
}
