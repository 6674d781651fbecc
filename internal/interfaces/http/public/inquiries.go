package public

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"github.com/sngm3741/ugym-konect/api/internal/interfaces/http/common"
	publicapp "github.com/sngm3741/ugym-konect/api/internal/public/application"
	"github.com/sngm3741/ugym-konect/api/internal/public/domain"
)

const desiredDateLayout = "2006-01-02"

func (h *Handler) inquiryCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok || user.ID == "" {
			common.WriteError(h.logger, w, http.StatusUnauthorized, "authentication required")
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		var req inquiryRequest
		if err := decodeJSON(r, &req); err != nil {
			common.WriteDomainError(h.logger, w, err, "invalid request")
			return
		}
		if utf8.RuneCountInString(req.Message) > common.MaxInquiryMessageRunes {
			common.WriteError(h.logger, w, http.StatusBadRequest, fmt.Sprintf("message must be at most %d characters", common.MaxInquiryMessageRunes))
			return
		}

		cmd := publicapp.SubmitInquiryCommand{
			ServiceID:   strings.TrimSpace(chi.URLParam(r, "id")),
			UserID:      user.ID,
			Type:        domain.InquiryType(strings.TrimSpace(req.Type)),
			From:        req.From.toDomain(),
			Message:     req.Message,
			DesiredTime: strings.TrimSpace(req.DesiredTime),
		}
		switch cmd.Type {
		case "", domain.InquiryBooking, domain.InquiryContact, domain.InquiryGeneral:
		default:
			common.WriteError(h.logger, w, http.StatusBadRequest, "unknown inquiry type")
			return
		}
		if raw := strings.TrimSpace(req.DesiredDate); raw != "" {
			date, err := time.Parse(desiredDateLayout, raw)
			if err != nil {
				common.WriteError(h.logger, w, http.StatusBadRequest, "desiredDate must be YYYY-MM-DD")
				return
			}
			cmd.DesiredDate = &date
		}

		inquiry, err := h.inquiries.Submit(ctx, cmd)
		if err != nil {
			common.WriteDomainError(h.logger, w, err, "failed to send inquiry")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusCreated, buildInquiryResponse(*inquiry))
	}
}
