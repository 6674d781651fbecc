package application_test

import (
	"context"
	"errors"
	"testing"

	"github.com/sngm3741/ugym-konect/api/internal/public/application"
	"github.com/sngm3741/ugym-konect/api/internal/public/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func whey() domain.CartLine {
	return domain.CartLine{ItemID: "whey-1", ProductID: "prod-whey", BusinessID: "biz-1", Name: "Premium Whey Protein Powder", UnitPrice: 899}
}

func checkoutCommand(owner string) application.CheckoutCommand {
	return application.CheckoutCommand{
		OwnerID:       owner,
		Contact:       domain.Contact{Name: "Thandi Nkosi", Email: "thandi@example.com"},
		Shipping:      application.ShippingAddress{Address: "12 Long Street", City: "Cape Town", Province: "Western Cape", PostalCode: "8001"},
		PaymentMethod: "card",
		AgreeToTerms:  true,
	}
}

func TestCartService_ApplyPersists(t *testing.T) {
	carts := newFakeCartRepo()
	svc := application.NewCartService(carts, &fakePublisher{}, domain.DefaultPlatformFeeRate)
	ctx := context.Background()

	state, err := svc.Apply(ctx, "user-1", domain.AddItem{Line: whey()})
	require.NoError(t, err)
	assert.Equal(t, 1169.0, state.Total)

	state, err = svc.Apply(ctx, "user-1", domain.AddItem{Line: whey()})
	require.NoError(t, err)
	assert.Equal(t, 2337.0, state.Total)

	stored, err := svc.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Lines[0].Quantity)
	assert.Equal(t, 539.0, stored.Fee)
}

func TestCartService_ApplyCapsLineQuantity(t *testing.T) {
	carts := newFakeCartRepo()
	svc := application.NewCartService(carts, &fakePublisher{}, domain.DefaultPlatformFeeRate)
	ctx := context.Background()

	_, err := svc.Apply(ctx, "user-1", domain.AddItem{Line: whey(), Quantity: application.MaxLineQuantity})
	require.NoError(t, err)

	_, err = svc.Apply(ctx, "user-1", domain.AddItem{Line: whey(), Quantity: application.MaxLineQuantity})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = svc.Apply(ctx, "user-1", domain.AddItem{Line: whey()})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	stored, err := svc.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, application.MaxLineQuantity, stored.Lines[0].Quantity)

	_, err = svc.Apply(ctx, "user-1", domain.UpdateQuantity{ItemID: "whey-1", Quantity: 5})
	assert.NoError(t, err)
}

func TestCartService_GetEmptyCart(t *testing.T) {
	svc := application.NewCartService(newFakeCartRepo(), &fakePublisher{}, 0.3)

	state, err := svc.Get(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, state.Lines)
	assert.Equal(t, 0.3, state.PlatformFeeRate)

	_, err = svc.Get(context.Background(), " ")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestCartService_LoadAppliesConfiguredRate(t *testing.T) {
	carts := newFakeCartRepo()
	stored, err := domain.ReduceCart(domain.NewCart(0.3), domain.AddItem{Line: whey()})
	require.NoError(t, err)
	carts.carts["user-1"] = stored

	svc := application.NewCartService(carts, &fakePublisher{}, 0.1)
	state, err := svc.Get(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 90.0, state.Fee)
}

func TestCartService_ApplySaveFailure(t *testing.T) {
	carts := newFakeCartRepo()
	carts.saveErr = errors.New("write conflict")
	svc := application.NewCartService(carts, &fakePublisher{}, 0.3)

	_, err := svc.Apply(context.Background(), "user-1", domain.AddItem{Line: whey()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save cart")
}

func TestCartService_CheckoutPublishesThenClears(t *testing.T) {
	carts := newFakeCartRepo()
	publisher := &fakePublisher{}
	svc := application.NewCartService(carts, publisher, domain.DefaultPlatformFeeRate)
	ctx := context.Background()

	_, err := svc.Apply(ctx, "user-1", domain.AddItem{Line: whey(), Quantity: 2})
	require.NoError(t, err)

	receipt, err := svc.Checkout(ctx, checkoutCommand("user-1"))
	require.NoError(t, err)
	assert.Equal(t, domain.CartTotals{Subtotal: 1798, Fee: 539, Total: 2337}, receipt.Totals)
	assert.Equal(t, 2, receipt.ItemCount)
	assert.NotEmpty(t, receipt.OrderRef)

	require.Len(t, publisher.events, 1)
	event := publisher.events[0]
	assert.Equal(t, receipt.OrderRef, event.OrderRef)
	assert.Equal(t, "user-1", event.OwnerID)
	assert.Equal(t, receipt.Totals, event.Totals)
	require.Len(t, event.Lines, 1)

	state, err := svc.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, state.Lines)
}

func TestCartService_CheckoutEmptyCart(t *testing.T) {
	publisher := &fakePublisher{}
	svc := application.NewCartService(newFakeCartRepo(), publisher, 0.3)

	_, err := svc.Checkout(context.Background(), checkoutCommand("user-1"))
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
	assert.Empty(t, publisher.events)
}

func TestCartService_CheckoutKeepsCartWhenPublishFails(t *testing.T) {
	carts := newFakeCartRepo()
	publisher := &fakePublisher{err: errors.New("broker unreachable")}
	svc := application.NewCartService(carts, publisher, 0.3)
	ctx := context.Background()

	_, err := svc.Apply(ctx, "user-1", domain.AddItem{Line: whey()})
	require.NoError(t, err)

	_, err = svc.Checkout(ctx, checkoutCommand("user-1"))
	require.Error(t, err)

	state, err := svc.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, state.Lines, 1)
}

func TestCartService_CheckoutValidatesForm(t *testing.T) {
	svc := application.NewCartService(newFakeCartRepo(), &fakePublisher{}, 0.3)

	noTerms := checkoutCommand("user-1")
	noTerms.AgreeToTerms = false
	_, err := svc.Checkout(context.Background(), noTerms)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	badEmail := checkoutCommand("user-1")
	badEmail.Contact.Email = "not-an-email"
	_, err = svc.Checkout(context.Background(), badEmail)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}
