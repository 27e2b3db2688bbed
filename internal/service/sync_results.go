package service

import (
	"sync"
	"time"

	"github.com/MKhiriev/go-pass-sync/models"
)

// syncResultsTracker records session outcomes. It is safe for concurrent
// use.
type syncResultsTracker struct {
	mu      sync.Mutex
	results models.SyncResults
}

func newSyncResultsTracker() *syncResultsTracker {
	return &syncResultsTracker{results: make(models.SyncResults)}
}

// record stores the outcome of a session and returns the number of
// consecutive failures of the provider.
func (t *syncResultsTracker) record(providerID int64, success bool, at time.Time) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	r := t.results[providerID]
	if success {
		r.LastSuccess = at
		r.ConsecutiveFailures = 0
	} else {
		r.LastFailure = at
		r.ConsecutiveFailures++
	}
	t.results[providerID] = r
	return r.ConsecutiveFailures
}

func (t *syncResultsTracker) snapshot() models.SyncResults {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make(models.SyncResults, len(t.results))
	for id, r := range t.results {
		out[id] = r
	}
	return out
}
