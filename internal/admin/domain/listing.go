package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	publicdomain "github.com/sngm3741/ugym-konect/api/internal/public/domain"
)

var (
	// ErrValidation wraps every value object failure so handlers can answer 400.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound is returned when the listing does not exist.
	ErrNotFound = errors.New("listing not found")
	// ErrDuplicate is returned when a business already owns a listing with the same name.
	ErrDuplicate = errors.New("listing already exists")
)

// Status is the moderation state of a listing. Only approved listings are public.
type Status string

const (
	StatusPendingReview Status = "pending_review"
	StatusApproved      Status = "approved"
	StatusRejected      Status = "rejected"
)

func NewStatus(value string) (Status, error) {
	switch s := Status(strings.ToLower(strings.TrimSpace(value))); s {
	case StatusPendingReview, StatusApproved, StatusRejected:
		return s, nil
	case "":
		return StatusPendingReview, nil
	}
	return "", invalid("unknown status: %s", value)
}

func (s Status) String() string {
	return string(s)
}

// Listing aggregates data required for admin operations.
type Listing struct {
	ID              string
	Variant         publicdomain.Variant
	BusinessID      string
	Name            string
	Title           string
	Description     string
	Category        Category
	ServiceTypes    ServiceTypeList
	Specializations []string
	Province        Province
	City            string
	Pricing         PriceBand
	PriceLabel      string
	Experience      string
	ContactEmail    Email
	ImageURLs       PhotoURLList
	Facilities      []string
	Qualifications  []string
	Languages       []string
	Brand           string
	InStock         bool
	Hours           string
	Availability    publicdomain.Availability
	Rating          float64
	ReviewCount     int
	Status          Status
	ReviewNote      string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Validate checks cross-field rules that single value objects cannot see.
func (l Listing) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return invalid("name is required")
	}
	if strings.TrimSpace(l.BusinessID) == "" {
		return invalid("businessId is required")
	}
	if l.Variant == publicdomain.VariantService && len(l.ServiceTypes) == 0 {
		return invalid("services need at least one service type")
	}
	if l.Variant != publicdomain.VariantService && len(l.ServiceTypes) > 0 {
		return invalid("only services carry service types")
	}
	if l.City != "" && !cityInProvince(l.Province, l.City) {
		return invalid("city %s is not listed under %s", l.City, l.Province)
	}
	return nil
}

// Public projects the listing onto the public read model.
func (l Listing) Public() publicdomain.Listing {
	currency := l.Pricing.Currency
	if currency == "" {
		currency = publicdomain.DefaultCurrency
	}
	return publicdomain.Listing{
		ID:              l.ID,
		Variant:         l.Variant,
		BusinessID:      l.BusinessID,
		Name:            l.Name,
		Title:           l.Title,
		Description:     l.Description,
		Category:        l.Category.String(),
		ServiceTypes:    l.ServiceTypes.Strings(),
		Specializations: append([]string{}, l.Specializations...),
		Location:        publicdomain.Location{City: l.City, Province: l.Province.String()},
		Pricing:         publicdomain.Pricing{Min: l.Pricing.Min.Float64(), Max: l.Pricing.Max.Float64(), Currency: currency},
		PriceLabel:      l.PriceLabel,
		Rating:          l.Rating,
		ReviewCount:     l.ReviewCount,
		Experience:      l.Experience,
		ImageURLs:       l.ImageURLs.Strings(),
		Details: publicdomain.Details{
			Facilities:     append([]string{}, l.Facilities...),
			Qualifications: append([]string{}, l.Qualifications...),
			Languages:      append([]string{}, l.Languages...),
			Brand:          l.Brand,
			InStock:        l.InStock,
			Hours:          l.Hours,
			Availability:   l.Availability,
		},
		CreatedAt: l.CreatedAt,
	}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
