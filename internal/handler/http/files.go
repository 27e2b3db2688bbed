package http

import (
	"net/http"

	"github.com/MKhiriev/go-pass-sync/internal/logger"
	"github.com/MKhiriev/go-pass-sync/internal/utils"
	"github.com/MKhiriev/go-pass-sync/models"
)

func (h *Handler) listFiles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	id, _ := utils.GetProviderIDFromContext(ctx)

	if _, err := h.services.AccountService.GetProvider(ctx, id); err != nil {
		log.Err(err).Str("func", "*Handler.listFiles").Msg("error getting provider")
		writeServiceError(w, err)
		return
	}

	files, err := h.services.LocalFileService.ListFiles(ctx, id)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listFiles").Msg("error listing files")
		writeServiceError(w, err)
		return
	}
	if files == nil {
		files = []models.SyncFile{}
	}

	utils.WriteJSON(w, files, http.StatusOK)
}
