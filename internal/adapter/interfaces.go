// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the clients used to talk to remote file-hosting
// providers.
//
// The primary abstraction is [ProviderClient], which decouples the sync
// engine from the backend protocol. The package ships a MinIO client, an AWS
// S3 client, a generic REST client built on resty and an in-memory client
// used by tests and demos. [Factory] builds the right client for a linked
// provider record.
//
// Backend errors are mapped to the sentinel values in errors.go so callers
// can use [errors.Is] regardless of the backend (e.g. [ErrNotFound] for a
// missing object, [ErrNotConnected] for an unreachable endpoint).
package adapter

import (
	"context"
	"io"

	"github.com/MKhiriev/go-pass-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/provider_client_mock.go -package=mock

// ProviderClient is the capability set the sync engine needs from a remote
// provider. Remote files are addressed by an opaque id; for the bundled
// backends the id is a slash-separated path such as "/vault.kdbx".
//
// Every method must return promptly once ctx is cancelled.
type ProviderClient interface {
	// CheckConnectivity verifies that the provider is reachable and the
	// credentials are accepted. It returns the display name of the account.
	CheckConnectivity(ctx context.Context) (models.ConnectivityResult, error)

	// ListChildren lists the direct children of the folder id. Sub-folders
	// are reported with IsFolder set.
	ListChildren(ctx context.Context, folderID string) ([]models.RemoteFile, error)

	// GetMetadata returns the metadata of one remote file. The returned id
	// may differ from the requested one when the provider re-keyed the file.
	// Returns ErrNotFound (wrapped) when the file does not exist.
	GetMetadata(ctx context.Context, id string) (models.RemoteFile, error)

	// UploadContent creates or replaces the file id and returns its new
	// metadata.
	UploadContent(ctx context.Context, id string, content []byte) (models.RemoteFile, error)

	// DownloadContent opens the content of file id. The caller closes the
	// reader. Returns ErrNotFound (wrapped) when the file does not exist.
	DownloadContent(ctx context.Context, id string) (io.ReadCloser, error)

	// Delete removes file id. Returns ErrNotFound (wrapped) when the file
	// does not exist.
	Delete(ctx context.Context, id string) error
}
