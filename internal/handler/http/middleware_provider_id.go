package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-pass-sync/internal/logger"
	"github.com/MKhiriev/go-pass-sync/internal/utils"
)

// withProviderID parses the {id} path parameter, stores it in the request
// context and tags the request logger with it.
func (h *Handler) withProviderID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil || id <= 0 {
			logger.FromRequest(r).Err(ErrInvalidID).Str("id", chi.URLParam(r, "id")).Send()
			utils.WriteError(w, ErrInvalidID.Error(), http.StatusBadRequest)
			return
		}

		l := logger.FromRequest(r).GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Int64("provider_id", id)
		})

		ctx := context.WithValue(r.Context(), utils.ProviderIDCtxKey, id)
		next.ServeHTTP(w, r.WithContext(l.WithContext(ctx)))
	})
}
