package models

import "time"

// ProviderResult is the in-memory outcome history of one provider.
type ProviderResult struct {
	LastSuccess         time.Time `json:"last_success"`
	LastFailure         time.Time `json:"last_failure"`
	ConsecutiveFailures int       `json:"consecutive_failures"`
}

// SyncResults is a snapshot of the per-provider session outcomes since the
// process started, keyed by provider id.
type SyncResults map[int64]ProviderResult
