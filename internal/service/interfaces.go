// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service implements the sync engine of go-pass-sync and the
// services built around it.
//
// A sync session compares the local and remote state of every file tracked
// for a provider, decides a repair action per file and executes the actions
// one at a time. [SessionRunner] runs sessions, [SyncJob] schedules them,
// [AccountService] and [LocalFileService] manage the records the sessions
// work on.
package service

import (
	"context"
	"io"
	"time"

	"github.com/MKhiriev/go-pass-sync/internal/adapter"
	"github.com/MKhiriev/go-pass-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// SessionRunner runs a single sync session for one provider.
type SessionRunner interface {
	// RunSession blocks until the session has finished or timed out and
	// returns its log. An error is returned only when the session could not
	// start; failures inside the session are recorded in the log.
	RunSession(ctx context.Context, providerID int64, manual bool) (*models.SyncLogRecord, error)
}

// SessionObserver is told about finished sessions.
type SessionObserver interface {
	OnSessionFinished(rec *models.SyncLogRecord, results models.SyncResults)
	// OnRepeatedFailures is called when a provider has failed the configured
	// number of sessions in a row.
	OnRepeatedFailures(provider models.Provider, failures int)
}

// ClientFactory builds the provider client for a linked provider.
type ClientFactory interface {
	NewClient(ctx context.Context, p models.Provider) (adapter.ProviderClient, error)
}

// KeepAlive keeps the host awake while a session runs.
type KeepAlive interface {
	// Acquire returns the function releasing the hold.
	Acquire() (release func())
}

// AccountService manages linked providers.
type AccountService interface {
	// AddProvider links a new provider with the default sync frequency.
	AddProvider(ctx context.Context, typ models.ProviderType, account string) (models.Provider, error)
	GetProvider(ctx context.Context, id int64) (models.Provider, error)
	ListProviders(ctx context.Context) ([]models.Provider, error)
	// RemoveProvider unlinks the provider, dropping its file records and
	// their local contents.
	RemoveProvider(ctx context.Context, id int64) error
	SetSyncFrequency(ctx context.Context, id int64, freq time.Duration) error
}

// LocalFileService records local edits of tracked files.
type LocalFileService interface {
	// AddFile registers a new local file, marked local Added.
	AddFile(ctx context.Context, providerID int64, title string, content io.Reader) (models.SyncFile, error)
	// UpdateFile replaces the local content, marking it Modified unless it
	// was never synced.
	UpdateFile(ctx context.Context, fileID int64, content io.Reader) (models.SyncFile, error)
	// RemoveFile deletes the local file. Files never uploaded are dropped
	// at once, others are marked local Removed for the next session.
	RemoveFile(ctx context.Context, fileID int64) error
	ListFiles(ctx context.Context, providerID int64) ([]models.SyncFile, error)
	// OpenFile opens the local content of a file.
	OpenFile(ctx context.Context, fileID int64) (io.ReadCloser, error)
}

// SyncLogService exposes the session journals.
type SyncLogService interface {
	ListLogs(ctx context.Context, limit int) ([]models.SyncLogRecord, error)
}

// SyncJob runs sessions on each provider's schedule.
type SyncJob interface {
	// Start launches the scheduler. It returns immediately.
	Start(ctx context.Context)
	// Stop cancels the scheduler and waits for running sessions.
	Stop()
	// SyncNow runs a manual session, sharing the per-provider lock with the
	// scheduler. ErrSyncInProgress is returned if a session is running.
	SyncNow(ctx context.Context, providerID int64) (*models.SyncLogRecord, error)
}
