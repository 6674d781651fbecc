package domain

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
)

// DaySlots lists the bookable start times ("09:00") of one weekday.
type DaySlots struct {
	Day   time.Weekday
	Slots []string
}

// Availability is a provider's weekly booking grid.
type Availability []DaySlots

// SlotsOn returns the slots offered on the weekday of date.
func (a Availability) SlotsOn(date time.Time) []string {
	for _, day := range a {
		if day.Day == date.Weekday() {
			return day.Slots
		}
	}
	return nil
}

// HasSlot reports whether slot is offered on the weekday of date.
func (a Availability) HasSlot(date time.Time, slot string) bool {
	for _, s := range a.SlotsOn(date) {
		if s == slot {
			return true
		}
	}
	return false
}

// ParseWeekday accepts English weekday names in any case.
func ParseWeekday(value string) (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(value))
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.ToLower(d.String()) == name {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown weekday %q", ErrInvalidArgument, value)
}

// Provider is the bookable side of a service listing.
type Provider struct {
	ID           string
	BusinessID   string
	Name         string
	Pricing      Pricing
	Availability Availability
}

// ProviderFromListing projects a service listing onto a Provider.
func ProviderFromListing(l Listing) (Provider, error) {
	if l.Variant != VariantService {
		return Provider{}, fmt.Errorf("%w: listing %s is a %s, not a service", ErrInvalidArgument, l.ID, l.Variant)
	}
	return Provider{
		ID:           l.ID,
		BusinessID:   l.BusinessID,
		Name:         l.Name,
		Pricing:      l.Pricing,
		Availability: l.Details.Availability,
	}, nil
}

// InquiryType separates bookings from plain contact requests.
type InquiryType string

const (
	InquiryBooking InquiryType = "booking"
	InquiryContact InquiryType = "contact"
	InquiryGeneral InquiryType = "general"
)

// InquiryStatus tracks the business side of an inquiry.
type InquiryStatus string

const (
	InquiryPending   InquiryStatus = "pending"
	InquiryResponded InquiryStatus = "responded"
	InquiryClosed    InquiryStatus = "closed"
)

// Contact identifies the client sending an inquiry.
type Contact struct {
	Name  string
	Email string
	Phone string
}

// Validate requires a name and a well-formed email.
func (c Contact) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: contact name is required", ErrInvalidArgument)
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(c.Email)); err != nil {
		return fmt.Errorf("%w: contact email is invalid", ErrInvalidArgument)
	}
	return nil
}

// Inquiry is a message from a client to the business behind a listing.
type Inquiry struct {
	ID          string
	Reference   string
	Type        InquiryType
	ListingID   string
	Variant     Variant
	BusinessID  string
	UserID      string
	From        Contact
	Message     string
	DesiredDate *time.Time
	DesiredTime string
	Status      InquiryStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
