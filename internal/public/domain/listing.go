package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Variant identifies which collection a listing belongs to.
type Variant string

const (
	VariantGym     Variant = "gym"
	VariantService Variant = "service"
	VariantProduct Variant = "product"
)

// Variants lists every variant in display order.
var Variants = []Variant{VariantGym, VariantService, VariantProduct}

// ParseVariant accepts both the singular and the plural route segment.
func ParseVariant(value string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "gym", "gyms":
		return VariantGym, nil
	case "service", "services":
		return VariantService, nil
	case "product", "products":
		return VariantProduct, nil
	}
	return "", fmt.Errorf("%w: unknown listing variant %q", ErrInvalidArgument, value)
}

// PriceCeiling is the upper bound of the default price slider for the variant.
func (v Variant) PriceCeiling() float64 {
	if v == VariantProduct {
		return 2000
	}
	return 1000
}

// Plural returns the collection name used in routes and responses.
func (v Variant) Plural() string {
	return string(v) + "s"
}

// Listing represents a publicly visible gym, service provider or product.
type Listing struct {
	ID              string
	Variant         Variant
	BusinessID      string
	Name            string
	Title           string
	Description     string
	Category        string
	ServiceTypes    []string
	Specializations []string
	Location        Location
	Pricing         Pricing
	PriceLabel      string
	Rating          float64
	ReviewCount     int
	Experience      string
	ImageURLs       []string
	Details         Details
	CreatedAt       time.Time
}

// Location is the geographic facet of a listing.
type Location struct {
	City     string
	Province string
}

// Pricing holds the price (Min == Max) or price range of a listing in ZAR.
type Pricing struct {
	Min      float64
	Max      float64
	Currency string
}

// SinglePrice builds a Pricing for listings that carry exactly one price.
func SinglePrice(amount float64) Pricing {
	return Pricing{Min: amount, Max: amount, Currency: DefaultCurrency}
}

// DefaultCurrency is assumed whenever a listing does not state one.
const DefaultCurrency = "ZAR"

// Details keeps variant-specific fields that the filter engine never reads.
type Details struct {
	Facilities     []string
	Qualifications []string
	Languages      []string
	Brand          string
	InStock        bool
	Hours          string
	Availability   Availability
}

// RepresentativePrice is the amount compared against a price range and used for price sorting.
func (l Listing) RepresentativePrice() float64 {
	return l.Pricing.Min
}

// Validate checks the listing invariants.
func (l Listing) Validate() error {
	if strings.TrimSpace(l.ID) == "" {
		return fmt.Errorf("%w: listing id is required", ErrInvalidArgument)
	}
	if math.IsNaN(l.Pricing.Min) || math.IsNaN(l.Pricing.Max) {
		return fmt.Errorf("%w: listing %s has a non-numeric price", ErrInvalidArgument, l.ID)
	}
	if l.Pricing.Min < 0 {
		return fmt.Errorf("%w: listing %s has a negative price", ErrInvalidArgument, l.ID)
	}
	if l.Pricing.Max < l.Pricing.Min {
		return fmt.Errorf("%w: listing %s has pricing.max below pricing.min", ErrInvalidArgument, l.ID)
	}
	return nil
}

// categoryTags returns the single category as a tag set.
func (l Listing) categoryTags() []string {
	if l.Category == "" {
		return nil
	}
	return []string{l.Category}
}
