package application_test

import (
	"context"
	"sync"

	"github.com/sngm3741/ugym-konect/api/internal/public/application"
	"github.com/sngm3741/ugym-konect/api/internal/public/domain"
)

type fakeListingRepo struct {
	mu      sync.Mutex
	feeds   map[domain.Variant][]domain.Listing
	failOn  domain.Variant
	failErr error
	calls   map[domain.Variant]int
}

func newFakeListingRepo(listings ...domain.Listing) *fakeListingRepo {
	repo := &fakeListingRepo{feeds: map[domain.Variant][]domain.Listing{}, calls: map[domain.Variant]int{}}
	for _, l := range listings {
		repo.feeds[l.Variant] = append(repo.feeds[l.Variant], l)
	}
	return repo
}

func (f *fakeListingRepo) FindByVariant(ctx context.Context, variant domain.Variant) ([]domain.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[variant]++
	if f.failErr != nil && variant == f.failOn {
		return nil, f.failErr
	}
	return append([]domain.Listing(nil), f.feeds[variant]...), nil
}

func (f *fakeListingRepo) FindByID(ctx context.Context, variant domain.Variant, id string) (*domain.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, l := range f.feeds[variant] {
		if l.ID == id {
			found := l
			return &found, nil
		}
	}
	return nil, domain.ErrNotFound
}

type fakeCartRepo struct {
	carts   map[string]domain.CartState
	saveErr error
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: map[string]domain.CartState{}}
}

func (f *fakeCartRepo) Load(ctx context.Context, ownerID string) (domain.CartState, error) {
	state, ok := f.carts[ownerID]
	if !ok {
		return domain.CartState{}, domain.ErrNotFound
	}
	return state, nil
}

func (f *fakeCartRepo) Save(ctx context.Context, ownerID string, state domain.CartState) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.carts[ownerID] = state
	return nil
}

func (f *fakeCartRepo) Delete(ctx context.Context, ownerID string) error {
	delete(f.carts, ownerID)
	return nil
}

type fakePublisher struct {
	events []application.CheckoutEvent
	err    error
}

func (f *fakePublisher) PublishCartCheckedOut(ctx context.Context, event application.CheckoutEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

type fakeInquiryRepo struct {
	created []domain.Inquiry
}

func (f *fakeInquiryRepo) Create(ctx context.Context, inquiry *domain.Inquiry) error {
	inquiry.ID = "inq-1"
	f.created = append(f.created, *inquiry)
	return nil
}

type fakeNotifier struct {
	sent []domain.Inquiry
	err  error
}

func (f *fakeNotifier) NotifyInquiry(ctx context.Context, inquiry domain.Inquiry, provider domain.Provider) error {
	f.sent = append(f.sent, inquiry)
	return f.err
}
