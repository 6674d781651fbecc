package domain

import (
	"fmt"
	"math"
	"strings"
)

// PriceRange is an inclusive [Min, Max] bound on the representative price.
type PriceRange struct {
	Min float64
	Max float64
}

// Validate rejects bounds that can only come from a caller bug.
// A reversed range is valid input: it simply matches nothing.
func (r PriceRange) Validate() error {
	if math.IsNaN(r.Min) || math.IsNaN(r.Max) {
		return fmt.Errorf("%w: price range bound is not a number", ErrInvalidArgument)
	}
	if r.Min < 0 || r.Max < 0 {
		return fmt.Errorf("%w: price range bound is negative", ErrInvalidArgument)
	}
	return nil
}

// Contains reports whether price falls within the range, bounds included.
func (r PriceRange) Contains(price float64) bool {
	return price >= r.Min && price <= r.Max
}

// FilterCriteria is the set of active facets. The zero value matches every listing.
//
// Criteria are values: every transition returns a copy and leaves the receiver untouched.
type FilterCriteria struct {
	SearchTerm   string
	Categories   []string
	ServiceTypes []string
	PriceRange   *PriceRange
	Province     string
	City         string
}

// DefaultCriteria returns the criteria a fresh browse page starts with:
// no search term, no tags and the full price slider for the variant.
func DefaultCriteria(v Variant) FilterCriteria {
	return FilterCriteria{PriceRange: &PriceRange{Min: 0, Max: v.PriceCeiling()}}
}

// IsEmpty reports whether no facet is active.
func (c FilterCriteria) IsEmpty() bool {
	return strings.TrimSpace(c.SearchTerm) == "" &&
		len(c.Categories) == 0 &&
		len(c.ServiceTypes) == 0 &&
		c.PriceRange == nil &&
		c.Province == "" &&
		c.City == ""
}

// ActiveFacets counts the facets that narrow the result, the way the filter sidebar badge does.
func (c FilterCriteria) ActiveFacets(v Variant) int {
	count := len(c.Categories) + len(c.ServiceTypes)
	if c.PriceRange != nil && (c.PriceRange.Min > 0 || c.PriceRange.Max < v.PriceCeiling()) {
		count++
	}
	if c.Province != "" {
		count++
	}
	if c.City != "" {
		count++
	}
	if strings.TrimSpace(c.SearchTerm) != "" {
		count++
	}
	return count
}

// WithSearchTerm replaces the free-text term.
func (c FilterCriteria) WithSearchTerm(term string) FilterCriteria {
	next := c.clone()
	next.SearchTerm = term
	return next
}

// ToggleCategory adds or removes a category tag.
func (c FilterCriteria) ToggleCategory(tag string, on bool) FilterCriteria {
	next := c.clone()
	next.Categories = toggle(next.Categories, tag, on)
	return next
}

// ToggleServiceType adds or removes a service type tag.
func (c FilterCriteria) ToggleServiceType(tag string, on bool) FilterCriteria {
	next := c.clone()
	next.ServiceTypes = toggle(next.ServiceTypes, tag, on)
	return next
}

// WithPriceRange sets the price bounds as given; reversed bounds are kept and yield no results.
func (c FilterCriteria) WithPriceRange(lo, hi float64) FilterCriteria {
	next := c.clone()
	next.PriceRange = &PriceRange{Min: lo, Max: hi}
	return next
}

// WithoutPriceRange drops the price facet.
func (c FilterCriteria) WithoutPriceRange() FilterCriteria {
	next := c.clone()
	next.PriceRange = nil
	return next
}

// WithProvince sets the province; changing province clears a city that belonged to the old one.
func (c FilterCriteria) WithProvince(province string) FilterCriteria {
	next := c.clone()
	if next.Province != province {
		next.City = ""
	}
	next.Province = province
	return next
}

// WithCity sets the city.
func (c FilterCriteria) WithCity(city string) FilterCriteria {
	next := c.clone()
	next.City = city
	return next
}

// Validate reports contract violations in the criteria.
func (c FilterCriteria) Validate() error {
	if c.PriceRange != nil {
		return c.PriceRange.Validate()
	}
	return nil
}

func (c FilterCriteria) clone() FilterCriteria {
	next := c
	next.Categories = append([]string(nil), c.Categories...)
	next.ServiceTypes = append([]string(nil), c.ServiceTypes...)
	if c.PriceRange != nil {
		r := *c.PriceRange
		next.PriceRange = &r
	}
	return next
}

func toggle(values []string, tag string, on bool) []string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return values
	}
	result := make([]string, 0, len(values)+1)
	present := false
	for _, v := range values {
		if v == tag {
			present = true
			if !on {
				continue
			}
		}
		result = append(result, v)
	}
	if on && !present {
		result = append(result, tag)
	}
	return result
}

// Reset returns the default criteria for the variant, dropping every active facet.
func (c FilterCriteria) Reset(v Variant) FilterCriteria {
	return DefaultCriteria(v)
}
