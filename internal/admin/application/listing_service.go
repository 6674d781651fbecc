package application

import (
	"context"
	"fmt"
	"log"
	"strings"

	admindomain "github.com/sngm3741/ugym-konect/api/internal/admin/domain"
	publicdomain "github.com/sngm3741/ugym-konect/api/internal/public/domain"
)

const maxListingImages = 10

// listingService implements ListingService.
type listingService struct {
	repo        ListingRepository
	invalidator FeedInvalidator
	logger      *log.Logger
}

// NewListingService wires the admin listing use-cases. invalidator may be nil.
func NewListingService(repo ListingRepository, invalidator FeedInvalidator, logger *log.Logger) ListingService {
	return &listingService{repo: repo, invalidator: invalidator, logger: logger}
}

func (s *listingService) List(ctx context.Context, filter ListingFilter, paging Paging) ([]admindomain.Listing, error) {
	return s.repo.Find(ctx, filter, paging)
}

func (s *listingService) Detail(ctx context.Context, id string) (*admindomain.Listing, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *listingService) Create(ctx context.Context, cmd UpsertListingCommand) (*admindomain.Listing, error) {
	listing, err := BuildListing(cmd)
	if err != nil {
		return nil, err
	}
	listing.Status = admindomain.StatusPendingReview
	if err := s.repo.Create(ctx, listing); err != nil {
		return nil, err
	}
	s.invalidate(ctx, listing.Variant)
	return listing, nil
}

func (s *listingService) Update(ctx context.Context, id string, cmd UpsertListingCommand) (*admindomain.Listing, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	listing, err := BuildListing(cmd)
	if err != nil {
		return nil, err
	}
	if listing.Variant != current.Variant {
		return nil, validationError("variant cannot change from %s to %s", current.Variant, listing.Variant)
	}
	listing.ID = current.ID
	listing.Status = current.Status
	listing.ReviewNote = current.ReviewNote
	listing.Rating = current.Rating
	listing.ReviewCount = current.ReviewCount
	listing.CreatedAt = current.CreatedAt
	if err := s.repo.Update(ctx, listing); err != nil {
		return nil, err
	}
	s.invalidate(ctx, listing.Variant)
	return listing, nil
}

func (s *listingService) SetStatus(ctx context.Context, id string, cmd SetStatusCommand) (*admindomain.Listing, error) {
	status, err := admindomain.NewStatus(cmd.Status)
	if err != nil {
		return nil, err
	}
	if status == admindomain.StatusRejected && strings.TrimSpace(cmd.Note) == "" {
		return nil, validationError("a rejection needs a note for the business")
	}
	if err := s.repo.SetStatus(ctx, id, status, strings.TrimSpace(cmd.Note)); err != nil {
		return nil, err
	}
	listing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, listing.Variant)
	return listing, nil
}

// invalidate is best-effort: a stale cache expires on its own TTL.
func (s *listingService) invalidate(ctx context.Context, variant publicdomain.Variant) {
	if s.invalidator == nil {
		return
	}
	if err := s.invalidator.Invalidate(ctx, variant); err != nil && s.logger != nil {
		s.logger.Printf("feed cache invalidation failed variant=%s err=%v", variant, err)
	}
}

// BuildListing validates cmd through the admin value objects and returns an unsaved listing.
func BuildListing(cmd UpsertListingCommand) (*admindomain.Listing, error) {
	variant, err := publicdomain.ParseVariant(cmd.Variant)
	if err != nil {
		return nil, validationError("%v", err)
	}
	category, err := admindomain.NewCategory(variant, cmd.Category)
	if err != nil {
		return nil, err
	}
	serviceTypes, err := admindomain.NewServiceTypeList(cmd.ServiceTypes)
	if err != nil {
		return nil, err
	}
	province, err := admindomain.NewProvince(cmd.Province)
	if err != nil {
		return nil, err
	}
	pricing, err := admindomain.NewPriceBand(cmd.MinPrice, cmd.MaxPrice, cmd.Currency)
	if err != nil {
		return nil, err
	}
	email, err := admindomain.NewEmail(cmd.ContactEmail)
	if err != nil {
		return nil, err
	}
	images, err := admindomain.NewPhotoURLList(cmd.ImageURLs, maxListingImages)
	if err != nil {
		return nil, err
	}
	availability, err := buildAvailability(cmd.Availability)
	if err != nil {
		return nil, err
	}

	listing := &admindomain.Listing{
		Variant:         variant,
		BusinessID:      strings.TrimSpace(cmd.BusinessID),
		Name:            strings.TrimSpace(cmd.Name),
		Title:           strings.TrimSpace(cmd.Title),
		Description:     strings.TrimSpace(cmd.Description),
		Category:        category,
		ServiceTypes:    serviceTypes,
		Specializations: trimAll(cmd.Specializations),
		Province:        province,
		City:            strings.TrimSpace(cmd.City),
		Pricing:         pricing,
		PriceLabel:      strings.TrimSpace(cmd.PriceLabel),
		Experience:      strings.TrimSpace(cmd.Experience),
		ContactEmail:    email,
		ImageURLs:       images,
		Facilities:      trimAll(cmd.Facilities),
		Qualifications:  trimAll(cmd.Qualifications),
		Languages:       trimAll(cmd.Languages),
		Brand:           strings.TrimSpace(cmd.Brand),
		InStock:         cmd.InStock,
		Hours:           strings.TrimSpace(cmd.Hours),
		Availability:    availability,
	}
	if err := listing.Validate(); err != nil {
		return nil, err
	}
	return listing, nil
}

func buildAvailability(days []AvailabilityCommand) (publicdomain.Availability, error) {
	if len(days) == 0 {
		return nil, nil
	}
	result := make(publicdomain.Availability, 0, len(days))
	for _, d := range days {
		weekday, err := publicdomain.ParseWeekday(d.Day)
		if err != nil {
			return nil, validationError("%v", err)
		}
		result = append(result, publicdomain.DaySlots{Day: weekday, Slots: trimAll(d.Slots)})
	}
	return result, nil
}

func trimAll(values []string) []string {
	result := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			result = append(result, v)
		}
	}
	return result
}

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", admindomain.ErrValidation, fmt.Sprintf(format, args...))
}
