package domain

import (
	"math"
	"net/mail"
	"net/url"
	"strings"

	publicdomain "github.com/sngm3741/ugym-konect/api/internal/public/domain"
)

type Province string

func NewProvince(value string) (Province, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", invalid("province is required")
	}
	for _, p := range publicdomain.Provinces {
		if strings.EqualFold(p, trimmed) {
			return Province(p), nil
		}
	}
	return "", invalid("unknown province: %s", trimmed)
}

func (p Province) String() string {
	return string(p)
}

func cityInProvince(p Province, city string) bool {
	for _, c := range publicdomain.MajorCities[p.String()] {
		if c == city {
			return true
		}
	}
	return false
}

// Category is the single category tag of a listing; services must use a taxonomy heading.
type Category string

func NewCategory(variant publicdomain.Variant, value string) (Category, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", invalid("category is required")
	}
	switch variant {
	case publicdomain.VariantService:
		if !publicdomain.IsServiceCategory(trimmed) {
			return "", invalid("unknown service category: %s", trimmed)
		}
	case publicdomain.VariantProduct:
		found := false
		for _, c := range publicdomain.ProductCategories {
			if c == trimmed {
				found = true
				break
			}
		}
		if !found {
			return "", invalid("unknown product category: %s", trimmed)
		}
	}
	return Category(trimmed), nil
}

func (c Category) String() string {
	return string(c)
}

type ServiceType string

func NewServiceType(value string) (ServiceType, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", invalid("service type is required")
	}
	if _, ok := publicdomain.CategoryOfServiceType(trimmed); !ok {
		return "", invalid("unknown service type: %s", trimmed)
	}
	return ServiceType(trimmed), nil
}

type ServiceTypeList []ServiceType

func NewServiceTypeList(values []string) (ServiceTypeList, error) {
	if len(values) == 0 {
		return nil, nil
	}
	result := make([]ServiceType, 0, len(values))
	seen := make(map[ServiceType]struct{})
	for _, raw := range values {
		value, err := NewServiceType(raw)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		result = append(result, value)
	}
	return ServiceTypeList(result), nil
}

func (l ServiceTypeList) Strings() []string {
	result := make([]string, 0, len(l))
	for _, v := range l {
		result = append(result, string(v))
	}
	return result
}

type Money float64

func NewMoney(value float64) (Money, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, invalid("amount must be a number")
	}
	if value < 0 {
		return 0, invalid("amount must be >= 0")
	}
	return Money(value), nil
}

func (m Money) Float64() float64 {
	return float64(m)
}

// PriceBand is a single price (Min == Max) or a from-to range.
type PriceBand struct {
	Min      Money
	Max      Money
	Currency string
}

// NewPriceBand treats a zero max as "single price".
func NewPriceBand(minPrice, maxPrice float64, currency string) (PriceBand, error) {
	lo, err := NewMoney(minPrice)
	if err != nil {
		return PriceBand{}, err
	}
	if maxPrice == 0 {
		maxPrice = minPrice
	}
	hi, err := NewMoney(maxPrice)
	if err != nil {
		return PriceBand{}, err
	}
	if hi < lo {
		return PriceBand{}, invalid("maximum price is below minimum price")
	}
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = publicdomain.DefaultCurrency
	}
	return PriceBand{Min: lo, Max: hi, Currency: currency}, nil
}

type Email string

func NewEmail(value string) (Email, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", nil
	}
	if len(trimmed) > 254 {
		return "", invalid("email too long")
	}
	if _, err := mail.ParseAddress(trimmed); err != nil {
		return "", invalid("invalid email: %v", err)
	}
	return Email(trimmed), nil
}

func (e Email) String() string {
	return string(e)
}

type PhotoURL string

func NewPhotoURL(value string) (PhotoURL, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", invalid("photo URL is required")
	}
	if _, err := url.ParseRequestURI(trimmed); err != nil {
		return "", invalid("invalid photo URL: %v", err)
	}
	return PhotoURL(trimmed), nil
}

func (u PhotoURL) String() string {
	return string(u)
}

type PhotoURLList []PhotoURL

func NewPhotoURLList(values []string, limit int) (PhotoURLList, error) {
	if len(values) == 0 {
		return nil, nil
	}
	if limit > 0 && len(values) > limit {
		return nil, invalid("photo URLs must be <= %d", limit)
	}
	result := make([]PhotoURL, 0, len(values))
	for _, raw := range values {
		urlValue, err := NewPhotoURL(raw)
		if err != nil {
			return nil, err
		}
		result = append(result, urlValue)
	}
	return PhotoURLList(result), nil
}

func (l PhotoURLList) Strings() []string {
	result := make([]string, 0, len(l))
	for _, v := range l {
		result = append(result, string(v))
	}
	return result
}
