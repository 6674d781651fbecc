package admin

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	adminapp "github.com/sngm3741/ugym-konect/api/internal/admin/application"
	admindomain "github.com/sngm3741/ugym-konect/api/internal/admin/domain"
	"github.com/sngm3741/ugym-konect/api/internal/interfaces/http/common"
	publicdomain "github.com/sngm3741/ugym-konect/api/internal/public/domain"
)

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(io.LimitReader(r.Body, common.MaxRequestBody)).Decode(dst); err != nil {
		return fmt.Errorf("%w: malformed request body", admindomain.ErrValidation)
	}
	return nil
}

// parseListingFilter は空の variant / status を「指定なし」として扱う。
func parseListingFilter(query url.Values) (adminapp.ListingFilter, error) {
	filter := adminapp.ListingFilter{
		BusinessID: strings.TrimSpace(query.Get("businessId")),
		Province:   strings.TrimSpace(query.Get("province")),
		Keyword:    strings.TrimSpace(query.Get("keyword")),
	}
	if raw := strings.TrimSpace(query.Get("variant")); raw != "" {
		variant, err := publicdomain.ParseVariant(raw)
		if err != nil {
			return adminapp.ListingFilter{}, fmt.Errorf("%w: %v", admindomain.ErrValidation, err)
		}
		filter.Variant = variant
	}
	if raw := strings.TrimSpace(query.Get("status")); raw != "" {
		status, err := admindomain.NewStatus(raw)
		if err != nil {
			return adminapp.ListingFilter{}, err
		}
		filter.Status = status
	}
	return filter, nil
}

func (req adminListingRequest) toCommand() adminapp.UpsertListingCommand {
	cmd := adminapp.UpsertListingCommand{
		Variant:         req.Variant,
		BusinessID:      req.BusinessID,
		Name:            req.Name,
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		ServiceTypes:    req.ServiceTypes,
		Specializations: req.Specializations,
		Province:        req.Province,
		City:            req.City,
		MinPrice:        req.MinPrice,
		MaxPrice:        req.MaxPrice,
		Currency:        req.Currency,
		PriceLabel:      req.PriceLabel,
		Experience:      req.Experience,
		ContactEmail:    req.ContactEmail,
		ImageURLs:       req.ImageURLs,
		Facilities:      req.Facilities,
		Qualifications:  req.Qualifications,
		Languages:       req.Languages,
		Brand:           req.Brand,
		InStock:         req.InStock,
		Hours:           req.Hours,
	}
	for _, day := range req.Availability {
		cmd.Availability = append(cmd.Availability, adminapp.AvailabilityCommand{Day: day.Day, Slots: day.Slots})
	}
	return cmd
}
