package application_test

import (
	"bytes"
	"context"
	"errors"
	"log"
	"testing"
	"time"

	"github.com/sngm3741/ugym-konect/api/internal/public/application"
	"github.com/sngm3741/ugym-konect/api/internal/public/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func physio() domain.Listing {
	return domain.Listing{
		ID:         "svc-physio",
		Variant:    domain.VariantService,
		BusinessID: "biz-physio",
		Name:       "James Wilson",
		Pricing:    domain.Pricing{Min: 450, Max: 650, Currency: "ZAR"},
		Details: domain.Details{Availability: domain.Availability{
			{Day: time.Monday, Slots: []string{"09:00", "11:00", "14:00"}},
			{Day: time.Wednesday, Slots: []string{"09:00"}},
		}},
	}
}

// 2026-10-19 is a Monday.
var monday = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

func TestInquiryCommandService_BookingInsideAvailability(t *testing.T) {
	repo := &fakeInquiryRepo{}
	notifier := &fakeNotifier{}
	svc := application.NewInquiryCommandService(newFakeListingRepo(physio()), repo, notifier, log.New(&bytes.Buffer{}, "", 0))

	inquiry, err := svc.Submit(context.Background(), application.SubmitInquiryCommand{
		ServiceID:   "svc-physio",
		UserID:      "user-1",
		From:        domain.Contact{Name: "Thandi", Email: "thandi@example.com"},
		Message:     "Knee rehab",
		DesiredDate: &monday,
		DesiredTime: "11:00",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.InquiryBooking, inquiry.Type)
	assert.Equal(t, domain.InquiryPending, inquiry.Status)
	assert.Equal(t, "biz-physio", inquiry.BusinessID)
	assert.Len(t, inquiry.Reference, 8)
	assert.Len(t, repo.created, 1)
	assert.Len(t, notifier.sent, 1)
}

func TestInquiryCommandService_SlotOutsideAvailability(t *testing.T) {
	repo := &fakeInquiryRepo{}
	svc := application.NewInquiryCommandService(newFakeListingRepo(physio()), repo, nil, nil)

	tuesday := monday.AddDate(0, 0, 1)
	for _, tc := range []struct {
		date time.Time
		slot string
	}{
		{monday, "16:00"},
		{tuesday, "09:00"},
	} {
		date := tc.date
		_, err := svc.Submit(context.Background(), application.SubmitInquiryCommand{
			ServiceID:   "svc-physio",
			From:        domain.Contact{Name: "Thandi", Email: "thandi@example.com"},
			DesiredDate: &date,
			DesiredTime: tc.slot,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	}
	assert.Empty(t, repo.created)
}

func TestInquiryCommandService_ContactWithoutDate(t *testing.T) {
	repo := &fakeInquiryRepo{}
	svc := application.NewInquiryCommandService(newFakeListingRepo(physio()), repo, nil, nil)

	inquiry, err := svc.Submit(context.Background(), application.SubmitInquiryCommand{
		ServiceID: "svc-physio",
		From:      domain.Contact{Name: "Thandi", Email: "thandi@example.com"},
		Message:   "Do you take medical aid?",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.InquiryContact, inquiry.Type)
}

func TestInquiryCommandService_NotifierFailureIsNotFatal(t *testing.T) {
	var logs bytes.Buffer
	svc := application.NewInquiryCommandService(newFakeListingRepo(physio()), &fakeInquiryRepo{}, &fakeNotifier{err: errors.New("gateway timeout")}, log.New(&logs, "", 0))

	_, err := svc.Submit(context.Background(), application.SubmitInquiryCommand{
		ServiceID: "svc-physio",
		From:      domain.Contact{Name: "Thandi", Email: "thandi@example.com"},
		Message:   "Hello",
	})
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "notification failed")
}

func TestInquiryCommandService_Errors(t *testing.T) {
	svc := application.NewInquiryCommandService(newFakeListingRepo(physio()), &fakeInquiryRepo{}, nil, nil)

	_, err := svc.Submit(context.Background(), application.SubmitInquiryCommand{
		ServiceID: "missing",
		From:      domain.Contact{Name: "Thandi", Email: "thandi@example.com"},
		Message:   "Hello",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Submit(context.Background(), application.SubmitInquiryCommand{
		ServiceID: "svc-physio",
		From:      domain.Contact{Name: "", Email: "thandi@example.com"},
		Message:   "Hello",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}
