package public

import (
	"time"

	publicapp "github.com/sngm3741/ugym-konect/api/internal/public/application"
	"github.com/sngm3741/ugym-konect/api/internal/public/domain"
)

type locationPayload struct {
	City     string `json:"city,omitempty"`
	Province string `json:"province"`
}

type pricingPayload struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency"`
}

type daySlotsPayload struct {
	Day   string   `json:"day"`
	Slots []string `json:"slots"`
}

type detailsPayload struct {
	Facilities     []string          `json:"facilities,omitempty"`
	Qualifications []string          `json:"qualifications,omitempty"`
	Languages      []string          `json:"languages,omitempty"`
	Brand          string            `json:"brand,omitempty"`
	InStock        bool              `json:"inStock"`
	Hours          string            `json:"hours,omitempty"`
	Availability   []daySlotsPayload `json:"availability,omitempty"`
}

type listingResponse struct {
	ID              string          `json:"id"`
	Variant         string          `json:"variant"`
	BusinessID      string          `json:"businessId,omitempty"`
	Name            string          `json:"name"`
	Title           string          `json:"title,omitempty"`
	Description     string          `json:"description,omitempty"`
	Category        string          `json:"category,omitempty"`
	ServiceTypes    []string        `json:"serviceTypes,omitempty"`
	Specializations []string        `json:"specializations,omitempty"`
	Location        locationPayload `json:"location"`
	Pricing         pricingPayload  `json:"pricing"`
	PriceLabel      string          `json:"priceLabel,omitempty"`
	Rating          float64         `json:"rating"`
	ReviewCount     int             `json:"reviewCount"`
	Experience      string          `json:"experience,omitempty"`
	ImageURLs       []string        `json:"imageUrls,omitempty"`
	Details         detailsPayload  `json:"details"`
	CreatedAt       *time.Time      `json:"createdAt,omitempty"`
}

type listingListResponse struct {
	Items        []listingResponse `json:"items"`
	Page         int               `json:"page"`
	Limit        int               `json:"limit"`
	Total        int               `json:"total"`
	Sort         string            `json:"sort,omitempty"`
	ActiveFacets int               `json:"activeFacets"`
}

type facetsResponse struct {
	Variant      string   `json:"variant"`
	Categories   []string `json:"categories"`
	ServiceTypes []string `json:"serviceTypes"`
	Provinces    []string `json:"provinces"`
	Cities       []string `json:"cities"`
	MinPrice     float64  `json:"minPrice"`
	MaxPrice     float64  `json:"maxPrice"`
	PriceCeiling float64  `json:"priceCeiling"`
	Count        int      `json:"count"`
}

type searchResponse struct {
	Gyms     []listingResponse `json:"gyms"`
	Services []listingResponse `json:"services"`
	Products []listingResponse `json:"products"`
	Total    int               `json:"total"`
}

type serviceCategoryPayload struct {
	Name         string   `json:"name"`
	ServiceTypes []string `json:"serviceTypes"`
}

type taxonomyResponse struct {
	ServiceCategories []serviceCategoryPayload `json:"serviceCategories"`
	ProductCategories []string                 `json:"productCategories"`
	GymFacilities     []string                 `json:"gymFacilities"`
	Provinces         []string                 `json:"provinces"`
	MajorCities       map[string][]string      `json:"majorCities"`
}

type cartLineResponse struct {
	ItemID     string  `json:"itemId"`
	ProductID  string  `json:"productId,omitempty"`
	BusinessID string  `json:"businessId,omitempty"`
	Name       string  `json:"name"`
	Image      string  `json:"image,omitempty"`
	UnitPrice  float64 `json:"unitPrice"`
	Quantity   int     `json:"quantity"`
	LineTotal  float64 `json:"lineTotal"`
}

type cartResponse struct {
	Lines           []cartLineResponse `json:"lines"`
	ItemCount       int                `json:"itemCount"`
	PlatformFeeRate float64            `json:"platformFeeRate"`
	Subtotal        float64            `json:"subtotal"`
	Fee             float64            `json:"fee"`
	Total           float64            `json:"total"`
}

type checkoutReceiptResponse struct {
	OrderRef     string    `json:"orderRef"`
	ItemCount    int       `json:"itemCount"`
	Subtotal     float64   `json:"subtotal"`
	Fee          float64   `json:"fee"`
	Total        float64   `json:"total"`
	CheckedOutAt time.Time `json:"checkedOutAt"`
}

type inquiryResponse struct {
	ID          string     `json:"id"`
	Reference   string     `json:"reference"`
	Type        string     `json:"type"`
	ListingID   string     `json:"listingId"`
	Status      string     `json:"status"`
	DesiredDate *time.Time `json:"desiredDate,omitempty"`
	DesiredTime string     `json:"desiredTime,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type addCartItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type updateCartItemRequest struct {
	Quantity *int `json:"quantity"`
}

type contactPayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

type shippingPayload struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postalCode"`
}

// checkoutRequest はカード情報を受け付けない。決済は外部の決済画面で行う。
type checkoutRequest struct {
	Contact       contactPayload  `json:"contact"`
	Shipping      shippingPayload `json:"shipping"`
	PaymentMethod string          `json:"paymentMethod"`
	AgreeToTerms  bool            `json:"agreeToTerms"`
}

type inquiryRequest struct {
	Type        string         `json:"type"`
	From        contactPayload `json:"from"`
	Message     string         `json:"message"`
	DesiredDate string         `json:"desiredDate,omitempty"`
	DesiredTime string         `json:"desiredTime,omitempty"`
}

func buildListingResponse(l domain.Listing) listingResponse {
	resp := listingResponse{
		ID:              l.ID,
		Variant:         string(l.Variant),
		BusinessID:      l.BusinessID,
		Name:            l.Name,
		Title:           l.Title,
		Description:     l.Description,
		Category:        l.Category,
		ServiceTypes:    l.ServiceTypes,
		Specializations: l.Specializations,
		Location:        locationPayload{City: l.Location.City, Province: l.Location.Province},
		Pricing:         pricingPayload{Min: l.Pricing.Min, Max: l.Pricing.Max, Currency: currencyOrDefault(l.Pricing.Currency)},
		PriceLabel:      l.PriceLabel,
		Rating:          l.Rating,
		ReviewCount:     l.ReviewCount,
		Experience:      l.Experience,
		ImageURLs:       l.ImageURLs,
		Details: detailsPayload{
			Facilities:     l.Details.Facilities,
			Qualifications: l.Details.Qualifications,
			Languages:      l.Details.Languages,
			Brand:          l.Details.Brand,
			InStock:        l.Details.InStock,
			Hours:          l.Details.Hours,
		},
	}
	for _, day := range l.Details.Availability {
		resp.Details.Availability = append(resp.Details.Availability, daySlotsPayload{Day: day.Day.String(), Slots: day.Slots})
	}
	if !l.CreatedAt.IsZero() {
		created := l.CreatedAt
		resp.CreatedAt = &created
	}
	return resp
}

func buildListingResponses(listings []domain.Listing) []listingResponse {
	items := make([]listingResponse, 0, len(listings))
	for _, l := range listings {
		items = append(items, buildListingResponse(l))
	}
	return items
}

func buildFacetsResponse(f publicapp.Facets) facetsResponse {
	return facetsResponse{
		Variant:      string(f.Variant),
		Categories:   nonNil(f.Categories),
		ServiceTypes: nonNil(f.ServiceTypes),
		Provinces:    nonNil(f.Provinces),
		Cities:       nonNil(f.Cities),
		MinPrice:     f.MinPrice,
		MaxPrice:     f.MaxPrice,
		PriceCeiling: f.PriceCeiling,
		Count:        f.Count,
	}
}

func buildCartResponse(state domain.CartState) cartResponse {
	lines := make([]cartLineResponse, 0, len(state.Lines))
	for _, line := range state.Lines {
		lines = append(lines, cartLineResponse{
			ItemID:     line.ItemID,
			ProductID:  line.ProductID,
			BusinessID: line.BusinessID,
			Name:       line.Name,
			Image:      line.Image,
			UnitPrice:  line.UnitPrice,
			Quantity:   line.Quantity,
			LineTotal:  line.LineTotal(),
		})
	}
	return cartResponse{
		Lines:           lines,
		ItemCount:       state.ItemCount(),
		PlatformFeeRate: state.PlatformFeeRate,
		Subtotal:        state.Subtotal,
		Fee:             state.Fee,
		Total:           state.Total,
	}
}

func buildInquiryResponse(i domain.Inquiry) inquiryResponse {
	return inquiryResponse{
		ID:          i.ID,
		Reference:   i.Reference,
		Type:        string(i.Type),
		ListingID:   i.ListingID,
		Status:      string(i.Status),
		DesiredDate: i.DesiredDate,
		DesiredTime: i.DesiredTime,
		CreatedAt:   i.CreatedAt,
	}
}

func (c contactPayload) toDomain() domain.Contact {
	return domain.Contact{Name: c.Name, Email: c.Email, Phone: c.Phone}
}
