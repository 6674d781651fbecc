package domain

import (
	"strings"

	"golang.org/x/text/cases"
)

// FilterListings returns the listings that satisfy every active facet, in their original order.
// Facets are ANDed together; within a tag facet any shared tag is enough.
// It never fails: criteria that cannot match anything yield an empty slice.
func FilterListings(listings []Listing, criteria FilterCriteria) []Listing {
	m := newMatcher(criteria)
	result := make([]Listing, 0, len(listings))
	for _, listing := range listings {
		if m.match(listing) {
			result = append(result, listing)
		}
	}
	return result
}

// Matches reports whether a single listing passes the criteria.
func (c FilterCriteria) Matches(listing Listing) bool {
	return newMatcher(c).match(listing)
}

type matcher struct {
	fold         cases.Caser
	term         string
	categories   map[string]struct{}
	serviceTypes map[string]struct{}
	priceRange   *PriceRange
	province     string
	city         string
}

func newMatcher(c FilterCriteria) *matcher {
	fold := cases.Fold()
	m := &matcher{
		fold:         fold,
		categories:   stringSet(c.Categories),
		serviceTypes: stringSet(c.ServiceTypes),
		priceRange:   c.PriceRange,
		province:     c.Province,
		city:         c.City,
	}
	if term := strings.TrimSpace(c.SearchTerm); term != "" {
		m.term = fold.String(term)
	}
	return m
}

func (m *matcher) match(l Listing) bool {
	return m.matchTerm(l) &&
		intersects(m.categories, l.categoryTags()) &&
		intersects(m.serviceTypes, l.ServiceTypes) &&
		m.matchPrice(l) &&
		(m.province == "" || l.Location.Province == m.province) &&
		(m.city == "" || l.Location.City == m.city)
}

func (m *matcher) matchTerm(l Listing) bool {
	if m.term == "" {
		return true
	}
	for _, field := range []string{l.Name, l.Title, l.Description} {
		if m.contains(field) {
			return true
		}
	}
	for _, tag := range l.ServiceTypes {
		if m.contains(tag) {
			return true
		}
	}
	for _, spec := range l.Specializations {
		if m.contains(spec) {
			return true
		}
	}
	return false
}

func (m *matcher) contains(field string) bool {
	if field == "" {
		return false
	}
	return strings.Contains(m.fold.String(field), m.term)
}

func (m *matcher) matchPrice(l Listing) bool {
	if m.priceRange == nil {
		return true
	}
	return m.priceRange.Contains(l.RepresentativePrice())
}

// intersects treats an empty wanted set as "match all".
func intersects(wanted map[string]struct{}, tags []string) bool {
	if len(wanted) == 0 {
		return true
	}
	for _, tag := range tags {
		if _, ok := wanted[tag]; ok {
			return true
		}
	}
	return false
}

func stringSet(items []string) map[string]struct{} {
	if len(items) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		set[item] = struct{}{}
	}
	return set
}
