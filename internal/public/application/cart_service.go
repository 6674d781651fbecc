package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sngm3741/ugym-konect/api/internal/public/domain"
)

// MaxLineQuantity caps the quantity a single cart line may reach.
const MaxLineQuantity = 99

// cartService is the concrete implementation of CartService.
type cartService struct {
	carts     CartRepository
	publisher CheckoutPublisher
	feeRate   float64
	now       func() time.Time
}

// NewCartService creates a cart service charging feeRate on every cart it loads.
func NewCartService(carts CartRepository, publisher CheckoutPublisher, feeRate float64) CartService {
	return &cartService{
		carts:     carts,
		publisher: publisher,
		feeRate:   feeRate,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *cartService) Get(ctx context.Context, ownerID string) (domain.CartState, error) {
	return s.load(ctx, ownerID)
}

func (s *cartService) Apply(ctx context.Context, ownerID string, action domain.CartAction) (domain.CartState, error) {
	state, err := s.load(ctx, ownerID)
	if err != nil {
		return domain.CartState{}, err
	}
	next, err := domain.ReduceCart(state, action)
	if err != nil {
		return domain.CartState{}, err
	}
	if err := checkLineQuantities(next); err != nil {
		return domain.CartState{}, err
	}
	if err := s.carts.Save(ctx, ownerID, next); err != nil {
		return domain.CartState{}, fmt.Errorf("save cart: %w", err)
	}
	return next, nil
}

// Checkout reads the totals once, publishes them with the lines and then empties the cart.
// The cart is kept when publishing fails so the client can retry.
func (s *cartService) Checkout(ctx context.Context, cmd CheckoutCommand) (*CheckoutReceipt, error) {
	if !cmd.AgreeToTerms {
		return nil, fmt.Errorf("%w: terms must be accepted", domain.ErrInvalidArgument)
	}
	if err := cmd.Contact.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(cmd.Shipping.Address) == "" {
		return nil, fmt.Errorf("%w: shipping address is required", domain.ErrInvalidArgument)
	}

	state, err := s.load(ctx, cmd.OwnerID)
	if err != nil {
		return nil, err
	}
	if len(state.Lines) == 0 {
		return nil, domain.ErrEmptyCart
	}

	totals := state.Totals()
	now := s.now()
	event := CheckoutEvent{
		EventID:       uuid.NewString(),
		OrderRef:      uuid.NewString(),
		OwnerID:       cmd.OwnerID,
		Contact:       cmd.Contact,
		Shipping:      cmd.Shipping,
		PaymentMethod: cmd.PaymentMethod,
		Lines:         append([]domain.CartLine(nil), state.Lines...),
		FeeRate:       state.PlatformFeeRate,
		Totals:        totals,
		CheckedOutAt:  now,
	}
	if err := s.publisher.PublishCartCheckedOut(ctx, event); err != nil {
		return nil, fmt.Errorf("publish checkout: %w", err)
	}
	if err := s.carts.Delete(ctx, cmd.OwnerID); err != nil {
		return nil, fmt.Errorf("clear cart: %w", err)
	}

	return &CheckoutReceipt{
		OrderRef:     event.OrderRef,
		ItemCount:    state.ItemCount(),
		Totals:       totals,
		CheckedOutAt: now,
	}, nil
}

func (s *cartService) load(ctx context.Context, ownerID string) (domain.CartState, error) {
	if strings.TrimSpace(ownerID) == "" {
		return domain.CartState{}, fmt.Errorf("%w: cart owner is required", domain.ErrInvalidArgument)
	}
	state, err := s.carts.Load(ctx, ownerID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NewCart(s.feeRate), nil
	}
	if err != nil {
		return domain.CartState{}, fmt.Errorf("load cart: %w", err)
	}
	return state.WithFeeRate(s.feeRate), nil
}

// checkLineQuantities rejects a state whose lines grew past MaxLineQuantity, e.g. by repeated adds.
func checkLineQuantities(state domain.CartState) error {
	for _, line := range state.Lines {
		if line.Quantity > MaxLineQuantity {
			return fmt.Errorf("%w: %s would reach quantity %d, at most %d allowed", domain.ErrInvalidArgument, line.Name, line.Quantity, MaxLineQuantity)
		}
	}
	return nil
}
