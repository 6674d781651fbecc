// Package fixtures embeds the starter catalog used by the seed and offline search commands.
package fixtures

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	adminapp "github.com/sngm3741/ugym-konect/api/internal/admin/application"
	admindomain "github.com/sngm3741/ugym-konect/api/internal/admin/domain"
	publicdomain "github.com/sngm3741/ugym-konect/api/internal/public/domain"
)

//go:embed listings.yaml
var listingsYAML []byte

// Catalog is the decoded fixture file.
type Catalog struct {
	Listings []Entry `yaml:"listings"`
}

// Entry is one listing as written in YAML.
type Entry struct {
	ID              string     `yaml:"id"`
	Variant         string     `yaml:"variant"`
	BusinessID      string     `yaml:"businessId"`
	Name            string     `yaml:"name"`
	Title           string     `yaml:"title"`
	Description     string     `yaml:"description"`
	Category        string     `yaml:"category"`
	ServiceTypes    []string   `yaml:"serviceTypes"`
	Specializations []string   `yaml:"specializations"`
	Province        string     `yaml:"province"`
	City            string     `yaml:"city"`
	MinPrice        float64    `yaml:"minPrice"`
	MaxPrice        float64    `yaml:"maxPrice"`
	Currency        string     `yaml:"currency"`
	PriceLabel      string     `yaml:"priceLabel"`
	Experience      string     `yaml:"experience"`
	ContactEmail    string     `yaml:"contactEmail"`
	ImageURLs       []string   `yaml:"imageURLs"`
	Facilities      []string   `yaml:"facilities"`
	Qualifications  []string   `yaml:"qualifications"`
	Languages       []string   `yaml:"languages"`
	Brand           string     `yaml:"brand"`
	InStock         bool       `yaml:"inStock"`
	Hours           string     `yaml:"hours"`
	Availability    []DayEntry `yaml:"availability"`
	Rating          float64    `yaml:"rating"`
	ReviewCount     int        `yaml:"reviewCount"`
}

// DayEntry is one weekday of a service's booking grid.
type DayEntry struct {
	Day   string   `yaml:"day"`
	Slots []string `yaml:"slots"`
}

// Load decodes the embedded catalog.
func Load() (Catalog, error) {
	return Parse(bytes.NewReader(listingsYAML))
}

// Parse decodes a catalog and rejects unknown keys so typos surface at seed time.
func Parse(r io.Reader) (Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var catalog Catalog
	if err := dec.Decode(&catalog); err != nil {
		if errors.Is(err, io.EOF) {
			return Catalog{}, nil
		}
		return Catalog{}, fmt.Errorf("decode catalog: %w", err)
	}
	return catalog, nil
}

// Command converts the entry into the admin upsert input.
func (e Entry) Command() adminapp.UpsertListingCommand {
	days := make([]adminapp.AvailabilityCommand, 0, len(e.Availability))
	for _, d := range e.Availability {
		days = append(days, adminapp.AvailabilityCommand{Day: d.Day, Slots: d.Slots})
	}
	return adminapp.UpsertListingCommand{
		Variant:         e.Variant,
		BusinessID:      e.BusinessID,
		Name:            e.Name,
		Title:           e.Title,
		Description:     e.Description,
		Category:        e.Category,
		ServiceTypes:    e.ServiceTypes,
		Specializations: e.Specializations,
		Province:        e.Province,
		City:            e.City,
		MinPrice:        e.MinPrice,
		MaxPrice:        e.MaxPrice,
		Currency:        e.Currency,
		PriceLabel:      e.PriceLabel,
		Experience:      e.Experience,
		ContactEmail:    e.ContactEmail,
		ImageURLs:       e.ImageURLs,
		Facilities:      e.Facilities,
		Qualifications:  e.Qualifications,
		Languages:       e.Languages,
		Brand:           e.Brand,
		InStock:         e.InStock,
		Hours:           e.Hours,
		Availability:    days,
	}
}

// AdminListings validates every entry and returns them as approved listings.
// The fixture id is kept so offline results can be referenced by it.
func (c Catalog) AdminListings() ([]*admindomain.Listing, error) {
	result := make([]*admindomain.Listing, 0, len(c.Listings))
	for i, e := range c.Listings {
		listing, err := adminapp.BuildListing(e.Command())
		if err != nil {
			return nil, fmt.Errorf("listing %d (%s): %w", i, e.Name, err)
		}
		if e.Rating < 0 || e.Rating > 5 {
			return nil, fmt.Errorf("listing %d (%s): rating %v out of range", i, e.Name, e.Rating)
		}
		listing.ID = e.ID
		listing.Status = admindomain.StatusApproved
		listing.Rating = e.Rating
		listing.ReviewCount = e.ReviewCount
		result = append(result, listing)
	}
	return result, nil
}

// PublicListings projects the approved catalog of one variant onto the public read model.
func (c Catalog) PublicListings(variant publicdomain.Variant) ([]publicdomain.Listing, error) {
	listings, err := c.AdminListings()
	if err != nil {
		return nil, err
	}
	result := make([]publicdomain.Listing, 0, len(listings))
	for _, l := range listings {
		if l.Variant == variant {
			result = append(result, l.Public())
		}
	}
	return result, nil
}
