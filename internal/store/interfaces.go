// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"io"
	"time"

	"github.com/MKhiriev/go-pass-sync/models"
)

// SyncStore is the transactional sync state store. Repositories are only
// reachable inside WithTx, so every mutation is part of an explicit
// transaction.
type SyncStore interface {
	// WithTx runs fn inside a transaction. The transaction commits when fn
	// returns nil and rolls back otherwise (also on panic). fn must not call
	// WithTx again.
	WithTx(ctx context.Context, fn func(ctx context.Context, q Queries) error) error

	// UpdateCount returns the current value of the provider's update
	// counter. Every mutation of the provider row or of one of its files
	// bumps it.
	UpdateCount(providerID int64) int64

	// CheckUpdateCount reports whether nobody mutated the provider's state
	// since count was read. InvalidUpdateCount always passes.
	CheckUpdateCount(providerID, count int64) bool
}

// Queries is the set of repository operations available inside a
// transaction.
type Queries interface {
	ProviderRepository
	FileRepository
	SyncLogRepository
}

// ProviderRepository manages linked provider accounts.
type ProviderRepository interface {
	// GetProvider returns ErrProviderNotFound for unknown ids.
	GetProvider(ctx context.Context, id int64) (models.Provider, error)
	ListProviders(ctx context.Context) ([]models.Provider, error)
	// AddProvider returns ErrProviderAlreadyExists if the type and account
	// pair is already linked.
	AddProvider(ctx context.Context, p models.Provider) (int64, error)
	UpdateProviderDisplayName(ctx context.Context, id int64, name string) error
	UpdateProviderSyncFreq(ctx context.Context, id int64, freq time.Duration) error
	// UpdateProviderSyncResult records the end of a session as last success
	// or last failure.
	UpdateProviderSyncResult(ctx context.Context, id int64, success bool, at time.Time) error
	// DeleteProvider removes the provider together with all its files.
	DeleteProvider(ctx context.Context, id int64) error
}

// FileRepository manages per-file sync state. Field-level updates of ids
// that do not exist are silent no-ops.
type FileRepository interface {
	// GetFile returns ErrFileNotFound for unknown ids.
	GetFile(ctx context.Context, id int64) (models.SyncFile, error)
	GetFiles(ctx context.Context, providerID int64) ([]models.SyncFile, error)

	// AddLocalFile inserts a file known only locally, marked local Added.
	AddLocalFile(ctx context.Context, providerID int64, title string, modDate time.Time) (int64, error)
	// AddRemoteFile inserts a file known only remotely, marked remote Added.
	AddRemoteFile(ctx context.Context, providerID int64, remote models.RemoteFile) (int64, error)

	UpdateLocalFile(ctx context.Context, id int64, localFile, title, folder string, modDate time.Time) error
	UpdateLocalFileChange(ctx context.Context, id int64, change models.FileChange) error
	// UpdateLocalFileDeleted marks the local side deleted and Removed.
	UpdateLocalFileDeleted(ctx context.Context, id int64) error

	UpdateRemoteFile(ctx context.Context, id int64, remote models.RemoteFile) error
	// UpdateRemoteFileChange also keeps RemoteDeleted in step: true for
	// Removed, false for Added and Modified, untouched for NoChange.
	UpdateRemoteFileChange(ctx context.Context, id int64, change models.FileChange) error
	// UpdateRemoteFileDeleted marks the remote side deleted and Removed.
	UpdateRemoteFileDeleted(ctx context.Context, id int64) error
	// ResetRemoteFields clears the remote linkage of a file.
	ResetRemoteFields(ctx context.Context, id int64) error

	RemoveFile(ctx context.Context, id int64) error
}

// SyncLogRepository persists session journals.
type SyncLogRepository interface {
	AddSyncLog(ctx context.Context, rec models.SyncLogRecord) (int64, error)
	// DeleteSyncLogsBefore prunes logs started before the given time and
	// returns how many were removed.
	DeleteSyncLogsBefore(ctx context.Context, before time.Time) (int64, error)
	// ListSyncLogs returns the newest logs first. limit <= 0 means no limit.
	ListSyncLogs(ctx context.Context, limit int) ([]models.SyncLogRecord, error)
}

// LocalFileStorage holds the contents of local replicas, addressed by the
// handle stored in SyncFile.LocalFile.
type LocalFileStorage interface {
	// Exists reports whether the content handle exists.
	Exists(name string) bool
	// Open returns ErrLocalFileNotFound for missing handles.
	Open(name string) (io.ReadCloser, error)
	// Write replaces the content of name atomically.
	Write(name string, r io.Reader) error
	// WriteTemp stores r under a fresh temporary handle and returns it.
	WriteTemp(r io.Reader) (string, error)
	// Rename atomically moves the temporary handle over name.
	Rename(tmp, name string) error
	// Remove deletes name. Missing handles are not an error.
	Remove(name string) error
	// SetModTime stamps the content modification time.
	SetModTime(name string, t time.Time) error
	// ModTime returns the content modification time.
	ModTime(name string) (time.Time, error)
}
