package admin

import (
	"time"

	admindomain "github.com/sngm3741/ugym-konect/api/internal/admin/domain"
)

type availabilityPayload struct {
	Day   string   `json:"day"`
	Slots []string `json:"slots"`
}

type adminListingRequest struct {
	Variant         string                `json:"variant"`
	BusinessID      string                `json:"businessId"`
	Name            string                `json:"name"`
	Title           string                `json:"title"`
	Description     string                `json:"description"`
	Category        string                `json:"category"`
	ServiceTypes    []string              `json:"serviceTypes"`
	Specializations []string              `json:"specializations"`
	Province        string                `json:"province"`
	City            string                `json:"city"`
	MinPrice        float64               `json:"minPrice"`
	MaxPrice        float64               `json:"maxPrice"`
	Currency        string                `json:"currency"`
	PriceLabel      string                `json:"priceLabel"`
	Experience      string                `json:"experience"`
	ContactEmail    string                `json:"contactEmail"`
	ImageURLs       []string              `json:"imageUrls"`
	Facilities      []string              `json:"facilities"`
	Qualifications  []string              `json:"qualifications"`
	Languages       []string              `json:"languages"`
	Brand           string                `json:"brand"`
	InStock         bool                  `json:"inStock"`
	Hours           string                `json:"hours"`
	Availability    []availabilityPayload `json:"availability"`
}

type adminStatusRequest struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

type adminListingResponse struct {
	ID              string                `json:"id"`
	Variant         string                `json:"variant"`
	BusinessID      string                `json:"businessId"`
	Name            string                `json:"name"`
	Title           string                `json:"title,omitempty"`
	Description     string                `json:"description,omitempty"`
	Category        string                `json:"category,omitempty"`
	ServiceTypes    []string              `json:"serviceTypes,omitempty"`
	Specializations []string              `json:"specializations,omitempty"`
	Province        string                `json:"province"`
	City            string                `json:"city,omitempty"`
	MinPrice        float64               `json:"minPrice"`
	MaxPrice        float64               `json:"maxPrice"`
	Currency        string                `json:"currency"`
	PriceLabel      string                `json:"priceLabel,omitempty"`
	Experience      string                `json:"experience,omitempty"`
	ContactEmail    string                `json:"contactEmail,omitempty"`
	ImageURLs       []string              `json:"imageUrls,omitempty"`
	Facilities      []string              `json:"facilities,omitempty"`
	Qualifications  []string              `json:"qualifications,omitempty"`
	Languages       []string              `json:"languages,omitempty"`
	Brand           string                `json:"brand,omitempty"`
	InStock         bool                  `json:"inStock"`
	Hours           string                `json:"hours,omitempty"`
	Availability    []availabilityPayload `json:"availability,omitempty"`
	Rating          float64               `json:"rating"`
	ReviewCount     int                   `json:"reviewCount"`
	Status          string                `json:"status"`
	ReviewNote      string                `json:"reviewNote,omitempty"`
	CreatedAt       time.Time             `json:"createdAt"`
	UpdatedAt       time.Time             `json:"updatedAt"`
}

type adminListingListResponse struct {
	Items []adminListingResponse `json:"items"`
	Page  int                    `json:"page"`
	Limit int                    `json:"limit"`
}

// adminListingDomainToResponse はドメインの Listing 集約を Admin UI 用レスポンスへ変換する。
func adminListingDomainToResponse(l admindomain.Listing) adminListingResponse {
	resp := adminListingResponse{
		ID:              l.ID,
		Variant:         string(l.Variant),
		BusinessID:      l.BusinessID,
		Name:            l.Name,
		Title:           l.Title,
		Description:     l.Description,
		Category:        l.Category.String(),
		ServiceTypes:    l.ServiceTypes.Strings(),
		Specializations: l.Specializations,
		Province:        l.Province.String(),
		City:            l.City,
		MinPrice:        l.Pricing.Min.Float64(),
		MaxPrice:        l.Pricing.Max.Float64(),
		Currency:        l.Pricing.Currency,
		PriceLabel:      l.PriceLabel,
		Experience:      l.Experience,
		ContactEmail:    l.ContactEmail.String(),
		ImageURLs:       l.ImageURLs.Strings(),
		Facilities:      l.Facilities,
		Qualifications:  l.Qualifications,
		Languages:       l.Languages,
		Brand:           l.Brand,
		InStock:         l.InStock,
		Hours:           l.Hours,
		Rating:          l.Rating,
		ReviewCount:     l.ReviewCount,
		Status:          l.Status.String(),
		ReviewNote:      l.ReviewNote,
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}
	for _, day := range l.Availability {
		resp.Availability = append(resp.Availability, availabilityPayload{Day: day.Day.String(), Slots: day.Slots})
	}
	return resp
}
