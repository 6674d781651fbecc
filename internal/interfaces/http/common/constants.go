package common

import "github.com/sngm3741/ugym-konect/api/internal/public/application"

const (
	// MaxRequestBody limits JSON request bodies for cart, inquiry and admin endpoints.
	MaxRequestBody = 1 << 20
	// MaxCartQuantity caps the quantity of a single cart line, per request and in total.
	MaxCartQuantity = application.MaxLineQuantity
	// MaxInquiryMessageRunes limits inquiry message length.
	MaxInquiryMessageRunes = 2000
)
