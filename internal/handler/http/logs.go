package http

import (
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-pass-sync/internal/app"
	"github.com/MKhiriev/go-pass-sync/internal/logger"
	"github.com/MKhiriev/go-pass-sync/internal/utils"
	"github.com/MKhiriev/go-pass-sync/models"
)

const defaultLogsLimit = 50

func (h *Handler) listLogs(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	limit := defaultLogsLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			utils.WriteError(w, app.MsgInvalidLimit, http.StatusBadRequest)
			return
		}
		limit = n
	}

	logs, err := h.services.SyncLogService.ListLogs(r.Context(), limit)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listLogs").Msg("error listing sync logs")
		writeServiceError(w, err)
		return
	}
	if logs == nil {
		logs = []models.SyncLogRecord{}
	}

	utils.WriteJSON(w, logs, http.StatusOK)
}
