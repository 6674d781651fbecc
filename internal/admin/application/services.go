package application

import (
	"context"

	admindomain "github.com/sngm3741/ugym-konect/api/internal/admin/domain"
	publicdomain "github.com/sngm3741/ugym-konect/api/internal/public/domain"
)

// ListingRepository exposes admin operations on listings of every status.
type ListingRepository interface {
	Find(ctx context.Context, filter ListingFilter, paging Paging) ([]admindomain.Listing, error)
	FindByID(ctx context.Context, id string) (*admindomain.Listing, error)
	Create(ctx context.Context, listing *admindomain.Listing) error
	Update(ctx context.Context, listing *admindomain.Listing) error
	SetStatus(ctx context.Context, id string, status admindomain.Status, note string) error
}

// FeedInvalidator drops cached public feeds after a write.
type FeedInvalidator interface {
	Invalidate(ctx context.Context, variant publicdomain.Variant) error
}

// ListingFilter expresses admin search criteria.
type ListingFilter struct {
	Variant    publicdomain.Variant
	Status     admindomain.Status
	BusinessID string
	Province   string
	Keyword    string
}

// Paging controls pagination.
type Paging struct {
	Page  int
	Limit int
}

// ListingService describes admin listing use-cases.
type ListingService interface {
	List(ctx context.Context, filter ListingFilter, paging Paging) ([]admindomain.Listing, error)
	Detail(ctx context.Context, id string) (*admindomain.Listing, error)
	Create(ctx context.Context, cmd UpsertListingCommand) (*admindomain.Listing, error)
	Update(ctx context.Context, id string, cmd UpsertListingCommand) (*admindomain.Listing, error)
	SetStatus(ctx context.Context, id string, cmd SetStatusCommand) (*admindomain.Listing, error)
}

// UpsertListingCommand contains inputs for creating/updating listings.
type UpsertListingCommand struct {
	Variant         string
	BusinessID      string
	Name            string
	Title           string
	Description     string
	Category        string
	ServiceTypes    []string
	Specializations []string
	Province        string
	City            string
	MinPrice        float64
	MaxPrice        float64
	Currency        string
	PriceLabel      string
	Experience      string
	ContactEmail    string
	ImageURLs       []string
	Facilities      []string
	Qualifications  []string
	Languages       []string
	Brand           string
	InStock         bool
	Hours           string
	Availability    []AvailabilityCommand
}

// AvailabilityCommand is one weekday of a provider's booking grid.
type AvailabilityCommand struct {
	Day   string
	Slots []string
}

// SetStatusCommand moves a listing through moderation.
type SetStatusCommand struct {
	Status string
	Note   string
}
