package application

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sngm3741/ugym-konect/api/internal/public/domain"
)

// NewInquiryCommandService wires the inquiry use-case. notifier may be nil.
func NewInquiryCommandService(listings ListingRepository, repo InquiryRepository, notifier InquiryNotifier, logger *log.Logger) InquiryCommandService {
	return &inquiryCommandService{
		listings: listings,
		repo:     repo,
		notifier: notifier,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

type inquiryCommandService struct {
	listings ListingRepository
	repo     InquiryRepository
	notifier InquiryNotifier
	logger   *log.Logger
	now      func() time.Time
}

func (s *inquiryCommandService) Submit(ctx context.Context, cmd SubmitInquiryCommand) (*domain.Inquiry, error) {
	if err := cmd.From.Validate(); err != nil {
		return nil, err
	}
	message := strings.TrimSpace(cmd.Message)
	if message == "" && cmd.DesiredDate == nil {
		return nil, fmt.Errorf("%w: message or desired date is required", domain.ErrInvalidArgument)
	}

	listing, err := s.listings.FindByID(ctx, domain.VariantService, cmd.ServiceID)
	if err != nil {
		return nil, err
	}
	provider, err := domain.ProviderFromListing(*listing)
	if err != nil {
		return nil, err
	}

	kind := cmd.Type
	if kind == "" {
		kind = domain.InquiryContact
	}
	if cmd.DesiredDate != nil {
		kind = domain.InquiryBooking
		slot := strings.TrimSpace(cmd.DesiredTime)
		if !provider.Availability.HasSlot(*cmd.DesiredDate, slot) {
			return nil, fmt.Errorf("%w: %s is not available on %s at %q", domain.ErrInvalidArgument, provider.Name, cmd.DesiredDate.Weekday(), slot)
		}
	}

	now := s.now()
	inquiry := &domain.Inquiry{
		Reference:   strings.ToUpper(uuid.NewString()[:8]),
		Type:        kind,
		ListingID:   provider.ID,
		Variant:     domain.VariantService,
		BusinessID:  provider.BusinessID,
		UserID:      cmd.UserID,
		From:        cmd.From,
		Message:     message,
		DesiredDate: cmd.DesiredDate,
		DesiredTime: strings.TrimSpace(cmd.DesiredTime),
		Status:      domain.InquiryPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, inquiry); err != nil {
		return nil, fmt.Errorf("store inquiry: %w", err)
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyInquiry(ctx, *inquiry, provider); err != nil && s.logger != nil {
			s.logger.Printf("inquiry %s notification failed: %v", inquiry.Reference, err)
		}
	}
	return inquiry, nil
}
