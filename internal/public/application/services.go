package application

import (
	"context"
	"math"
	"time"

	"github.com/sngm3741/ugym-konect/api/internal/public/domain"
)

// ListingRepository abstracts read access to the public listing feed.
// Only approved listings are ever returned.
type ListingRepository interface {
	FindByVariant(ctx context.Context, variant domain.Variant) ([]domain.Listing, error)
	FindByID(ctx context.Context, variant domain.Variant, id string) (*domain.Listing, error)
}

// CartRepository persists one cart per owner.
// Load returns domain.ErrNotFound when the owner has no cart yet.
type CartRepository interface {
	Load(ctx context.Context, ownerID string) (domain.CartState, error)
	Save(ctx context.Context, ownerID string, state domain.CartState) error
	Delete(ctx context.Context, ownerID string) error
}

// CheckoutPublisher hands a checked-out cart to the order/payment side.
type CheckoutPublisher interface {
	PublishCartCheckedOut(ctx context.Context, event CheckoutEvent) error
}

// InquiryRepository stores inquiries sent to businesses.
type InquiryRepository interface {
	Create(ctx context.Context, inquiry *domain.Inquiry) error
}

// InquiryNotifier forwards a stored inquiry to the business owner.
type InquiryNotifier interface {
	NotifyInquiry(ctx context.Context, inquiry domain.Inquiry, provider domain.Provider) error
}

// Paging controls pagination.
type Paging struct {
	Page  int
	Limit int
}

// Offset returns the index of the first element of the page.
func (p Paging) Offset() int {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

// ListingPage is one page of a filtered, sorted feed.
type ListingPage struct {
	Items []domain.Listing
	Total int
	Page  int
	Limit int
}

// Facets describes the values a feed offers for each filter facet.
type Facets struct {
	Variant      domain.Variant
	Categories   []string
	ServiceTypes []string
	Provinces    []string
	Cities       []string
	MinPrice     float64
	MaxPrice     float64
	PriceCeiling float64
	Count        int
}

// ListingQueryService describes read use-cases over the listing feeds.
type ListingQueryService interface {
	List(ctx context.Context, variant domain.Variant, criteria domain.FilterCriteria, sortKey domain.SortKey, paging Paging) (ListingPage, error)
	Search(ctx context.Context, criteria domain.FilterCriteria, sortKey domain.SortKey) (map[domain.Variant][]domain.Listing, error)
	Detail(ctx context.Context, variant domain.Variant, id string) (*domain.Listing, error)
	Facets(ctx context.Context, variant domain.Variant) (Facets, error)
}

// CartService applies cart actions on behalf of an owner and performs checkout.
type CartService interface {
	Get(ctx context.Context, ownerID string) (domain.CartState, error)
	Apply(ctx context.Context, ownerID string, action domain.CartAction) (domain.CartState, error)
	Checkout(ctx context.Context, cmd CheckoutCommand) (*CheckoutReceipt, error)
}

// ShippingAddress is where the order is delivered.
type ShippingAddress struct {
	Address    string
	City       string
	Province   string
	PostalCode string
}

// CheckoutCommand captures the checkout form. Card details never reach this service.
type CheckoutCommand struct {
	OwnerID       string
	Contact       domain.Contact
	Shipping      ShippingAddress
	PaymentMethod string
	AgreeToTerms  bool
}

// CheckoutEvent is published once per successful checkout.
type CheckoutEvent struct {
	EventID       string
	OrderRef      string
	OwnerID       string
	Contact       domain.Contact
	Shipping      ShippingAddress
	PaymentMethod string
	Lines         []domain.CartLine
	FeeRate       float64
	Totals        domain.CartTotals
	CheckedOutAt  time.Time
}

// CheckoutReceipt is returned to the client after checkout.
type CheckoutReceipt struct {
	OrderRef     string
	ItemCount    int
	Totals       domain.CartTotals
	CheckedOutAt time.Time
}

// InquiryCommandService handles inquiry submission.
type InquiryCommandService interface {
	Submit(ctx context.Context, cmd SubmitInquiryCommand) (*domain.Inquiry, error)
}

// SubmitInquiryCommand captures the booking modal input.
type SubmitInquiryCommand struct {
	ServiceID   string
	UserID      string
	Type        domain.InquiryType
	From        domain.Contact
	Message     string
	DesiredDate *time.Time
	DesiredTime string
}
