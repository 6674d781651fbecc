package public

import (
	"net/http"

	"github.com/sngm3741/ugym-konect/api/internal/interfaces/http/common"
)

func (h *Handler) authVerifyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteError(h.logger, w, http.StatusInternalServerError, "failed to resolve the authenticated user")
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, map[string]any{
			"status": "ok",
			"user":   user,
		})
	}
}

// ownerID は認証済みユーザーの subject をカート所有者として扱う。
func (h *Handler) ownerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	user, ok := common.UserFromContext(r.Context())
	if !ok || user.ID == "" {
		common.WriteError(h.logger, w, http.StatusUnauthorized, "authentication required")
		return "", false
	}
	return user.ID, true
}
