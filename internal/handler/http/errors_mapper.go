package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-pass-sync/internal/app"
	"github.com/MKhiriev/go-pass-sync/internal/service"
	"github.com/MKhiriev/go-pass-sync/internal/store"
	"github.com/MKhiriev/go-pass-sync/internal/utils"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided: http.StatusBadRequest,
	service.ErrInvalidFrequency:    http.StatusBadRequest,
	service.ErrEmptyTitle:          http.StatusBadRequest,
	service.ErrFileRemoved:         http.StatusGone,
	service.ErrSyncInProgress:      http.StatusConflict,

	store.ErrProviderNotFound:      http.StatusNotFound,
	store.ErrProviderAlreadyExists: http.StatusConflict,
	store.ErrFileNotFound:          http.StatusNotFound,
	store.ErrLocalFileNotFound:     http.StatusNotFound,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeServiceError writes err with its mapped status. Messages of 500
// responses are replaced with a generic one.
func writeServiceError(w http.ResponseWriter, err error) {
	status := statusFromError(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = app.MsgInternalServerError
	}
	utils.WriteError(w, msg, status)
}
