package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/MKhiriev/go-pass-sync/internal/app"
	"github.com/MKhiriev/go-pass-sync/internal/logger"
	"github.com/MKhiriev/go-pass-sync/internal/utils"
	"github.com/MKhiriev/go-pass-sync/models"
)

type addProviderRequest struct {
	Type    string `json:"type"`
	Account string `json:"account"`
}

type syncFrequencyRequest struct {
	// Frequency is a Go duration string such as "30m".
	Frequency string `json:"frequency"`
}

func (h *Handler) listProviders(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	providers, err := h.services.AccountService.ListProviders(r.Context())
	if err != nil {
		log.Err(err).Str("func", "*Handler.listProviders").Msg("error listing providers")
		writeServiceError(w, err)
		return
	}
	if providers == nil {
		providers = []models.Provider{}
	}

	utils.WriteJSON(w, providers, http.StatusOK)
}

func (h *Handler) addProvider(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req addProviderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.addProvider").Msg("invalid JSON was passed")
		utils.WriteError(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	typ, err := models.ParseProviderType(req.Type)
	if err != nil {
		utils.WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, err := h.services.AccountService.AddProvider(r.Context(), typ, req.Account)
	if err != nil {
		log.Err(err).Str("func", "*Handler.addProvider").Msg("error adding provider")
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Location", "/api/providers/"+strconv.FormatInt(p.ID, 10))
	utils.WriteJSON(w, p, http.StatusCreated)
}

func (h *Handler) getProvider(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	id, _ := utils.GetProviderIDFromContext(r.Context())

	p, err := h.services.AccountService.GetProvider(r.Context(), id)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getProvider").Msg("error getting provider")
		writeServiceError(w, err)
		return
	}

	utils.WriteJSON(w, p, http.StatusOK)
}

func (h *Handler) removeProvider(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	id, _ := utils.GetProviderIDFromContext(r.Context())

	if err := h.services.AccountService.RemoveProvider(r.Context(), id); err != nil {
		log.Err(err).Str("func", "*Handler.removeProvider").Msg("error removing provider")
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) setSyncFrequency(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	id, _ := utils.GetProviderIDFromContext(r.Context())

	var req syncFrequencyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.setSyncFrequency").Msg("invalid JSON was passed")
		utils.WriteError(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}
	freq, err := time.ParseDuration(req.Frequency)
	if err != nil {
		utils.WriteError(w, app.MsgInvalidFrequency, http.StatusBadRequest)
		return
	}

	if err = h.services.AccountService.SetSyncFrequency(r.Context(), id, freq); err != nil {
		log.Err(err).Str("func", "*Handler.setSyncFrequency").Msg("error setting sync frequency")
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// syncProvider runs a manual session and returns its log. Failures inside
// the session are part of the log, not of the status code.
func (h *Handler) syncProvider(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	id, _ := utils.GetProviderIDFromContext(r.Context())

	rec, err := h.services.SyncJob.SyncNow(r.Context(), id)
	if err != nil {
		log.Err(err).Str("func", "*Handler.syncProvider").Msg("error running sync session")
		writeServiceError(w, err)
		return
	}

	utils.WriteJSON(w, rec, http.StatusOK)
}
