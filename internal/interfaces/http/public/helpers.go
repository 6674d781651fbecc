package public

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"

	"github.com/sngm3741/ugym-konect/api/internal/interfaces/http/common"
	publicapp "github.com/sngm3741/ugym-konect/api/internal/public/application"
	"github.com/sngm3741/ugym-konect/api/internal/public/domain"
)

// parseCriteria はクエリ文字列をフィルタ条件へ変換する。
// minPrice / maxPrice のどちらも無ければ価格条件なし (全件一致) として扱う。
func parseCriteria(query url.Values) (domain.FilterCriteria, error) {
	criteria := domain.FilterCriteria{}.
		WithSearchTerm(query.Get("q")).
		WithProvince(strings.TrimSpace(query.Get("province"))).
		WithCity(strings.TrimSpace(query.Get("city")))

	for _, tag := range splitMulti(query["category"]) {
		criteria = criteria.ToggleCategory(tag, true)
	}
	for _, tag := range splitMulti(query["serviceType"]) {
		criteria = criteria.ToggleServiceType(tag, true)
	}

	minPrice, err := common.ParseOptionalFloat("minPrice", query.Get("minPrice"))
	if err != nil {
		return domain.FilterCriteria{}, fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
	}
	maxPrice, err := common.ParseOptionalFloat("maxPrice", query.Get("maxPrice"))
	if err != nil {
		return domain.FilterCriteria{}, fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
	}
	if minPrice != nil || maxPrice != nil {
		lo, hi := 0.0, math.Inf(1)
		if minPrice != nil {
			lo = *minPrice
		}
		if maxPrice != nil {
			hi = *maxPrice
		}
		criteria = criteria.WithPriceRange(lo, hi)
	}

	if err := criteria.Validate(); err != nil {
		return domain.FilterCriteria{}, err
	}
	return criteria, nil
}

// splitMulti accepts both ?category=a&category=b and ?category=a,b.
func splitMulti(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func parsePaging(query url.Values) publicapp.Paging {
	page, _ := common.ParsePositiveInt(query.Get("page"), 1)
	limit, _ := common.ParsePositiveInt(query.Get("limit"), publicapp.DefaultPageLimit)
	return publicapp.Paging{Page: page, Limit: limit}
}

func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(io.LimitReader(r.Body, common.MaxRequestBody))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: malformed request body", domain.ErrInvalidArgument)
	}
	return nil
}

func currencyOrDefault(currency string) string {
	if currency == "" {
		return domain.DefaultCurrency
	}
	return currency
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
