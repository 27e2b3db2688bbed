// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pass-sync/internal/logger"
	"github.com/MKhiriev/go-pass-sync/internal/store"
	"github.com/MKhiriev/go-pass-sync/internal/store/storetest"
	"github.com/MKhiriev/go-pass-sync/internal/validators"
	"github.com/MKhiriev/go-pass-sync/models"
)

func stringsReader(s string) io.Reader { return strings.NewReader(s) }

type localFileFixture struct {
	svc      *localFileService
	storages *store.Storages
	provider models.Provider
}

func newLocalFileFixture(t *testing.T) *localFileFixture {
	t.Helper()
	storages := storetest.NewStorages(t)

	svc := NewLocalFileService(storages.DB, storages.Files, logger.Nop()).(*localFileService)
	svc.now = func() time.Time { return fixedNow }

	accounts := NewAccountService(storages.DB, storages.Files, testSyncConfig(), logger.Nop())
	p, err := accounts.AddProvider(context.Background(), models.ProviderTypeMemory, "vault")
	require.NoError(t, err)

	return &localFileFixture{svc: svc, storages: storages, provider: p}
}

// markSynced делает вид, что файл уже был выгружен.
func (fx *localFileFixture) markSynced(t *testing.T, id int64) {
	t.Helper()
	err := fx.storages.DB.WithTx(context.Background(), func(ctx context.Context, q store.Queries) error {
		if err := q.UpdateRemoteFile(ctx, id, models.RemoteFile{ID: "/notes.psafe3", Title: "notes.psafe3", Folder: "/", ModTime: fixedNow}); err != nil {
			return err
		}
		return q.UpdateLocalFileChange(ctx, id, models.NoChange)
	})
	require.NoError(t, err)
}

func (fx *localFileFixture) get(t *testing.T, id int64) models.SyncFile {
	t.Helper()
	var f models.SyncFile
	err := fx.storages.DB.WithTx(context.Background(), func(ctx context.Context, q store.Queries) error {
		var err error
		f, err = q.GetFile(ctx, id)
		return err
	})
	require.NoError(t, err)
	return f
}

// ── AddFile ─────────────────────────────────────────────────────────────────

func TestLocalFileService_AddFile(t *testing.T) {
	fx := newLocalFileFixture(t)

	f, err := fx.svc.AddFile(context.Background(), fx.provider.ID, " notes.psafe3 ", stringsReader("secret"))
	require.NoError(t, err)

	assert.Equal(t, "notes.psafe3", f.LocalTitle)
	assert.Equal(t, LocalFileName(f.ID), f.LocalFile)
	assert.Equal(t, models.Added, f.LocalChange)
	assert.Empty(t, f.RemoteID)
	assert.True(t, fixedNow.Equal(f.LocalModDate))

	modTime, err := fx.storages.Files.ModTime(f.LocalFile)
	require.NoError(t, err)
	assert.True(t, fixedNow.Equal(modTime))

	rc, err := fx.svc.OpenFile(context.Background(), f.ID)
	require.NoError(t, err)
	defer rc.Close()
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "secret", string(b))
}

func TestLocalFileService_AddFile_Errors(t *testing.T) {
	fx := newLocalFileFixture(t)

	_, err := fx.svc.AddFile(context.Background(), fx.provider.ID, "  ", stringsReader("x"))
	assert.ErrorIs(t, err, ErrEmptyTitle)

	_, err = fx.svc.AddFile(context.Background(), fx.provider.ID, "team/notes.psafe3", stringsReader("x"))
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
	assert.ErrorIs(t, err, validators.ErrInvalidTitle)

	_, err = fx.svc.AddFile(context.Background(), fx.provider.ID+1, "notes.psafe3", stringsReader("x"))
	assert.ErrorIs(t, err, store.ErrProviderNotFound)

	files, err := fx.svc.ListFiles(context.Background(), fx.provider.ID)
	require.NoError(t, err)
	assert.Empty(t, files)
}

// ── UpdateFile ──────────────────────────────────────────────────────────────

func TestLocalFileService_UpdateFile_KeepsAdded(t *testing.T) {
	fx := newLocalFileFixture(t)
	f, err := fx.svc.AddFile(context.Background(), fx.provider.ID, "notes.psafe3", stringsReader("v1"))
	require.NoError(t, err)

	got, err := fx.svc.UpdateFile(context.Background(), f.ID, stringsReader("v2"))
	require.NoError(t, err)
	assert.Equal(t, models.Added, got.LocalChange)
}

func TestLocalFileService_UpdateFile_MarksModified(t *testing.T) {
	fx := newLocalFileFixture(t)
	f, err := fx.svc.AddFile(context.Background(), fx.provider.ID, "notes.psafe3", stringsReader("v1"))
	require.NoError(t, err)
	fx.markSynced(t, f.ID)

	got, err := fx.svc.UpdateFile(context.Background(), f.ID, stringsReader("v2"))
	require.NoError(t, err)
	assert.Equal(t, models.Modified, got.LocalChange)
	assert.Equal(t, "notes.psafe3", got.LocalTitle)
}

func TestLocalFileService_UpdateFile_Removed(t *testing.T) {
	fx := newLocalFileFixture(t)
	f, err := fx.svc.AddFile(context.Background(), fx.provider.ID, "notes.psafe3", stringsReader("v1"))
	require.NoError(t, err)
	fx.markSynced(t, f.ID)
	require.NoError(t, fx.svc.RemoveFile(context.Background(), f.ID))

	_, err = fx.svc.UpdateFile(context.Background(), f.ID, stringsReader("v2"))
	assert.ErrorIs(t, err, ErrFileRemoved)

	_, err = fx.svc.OpenFile(context.Background(), f.ID)
	assert.ErrorIs(t, err, ErrFileRemoved)
}

// ── RemoveFile ──────────────────────────────────────────────────────────────

func TestLocalFileService_RemoveFile_NeverUploaded(t *testing.T) {
	fx := newLocalFileFixture(t)
	f, err := fx.svc.AddFile(context.Background(), fx.provider.ID, "notes.psafe3", stringsReader("v1"))
	require.NoError(t, err)

	require.NoError(t, fx.svc.RemoveFile(context.Background(), f.ID))

	files, err := fx.svc.ListFiles(context.Background(), fx.provider.ID)
	require.NoError(t, err)
	assert.Empty(t, files)
	assert.False(t, fx.storages.Files.Exists(f.LocalFile))
}

func TestLocalFileService_RemoveFile_Synced(t *testing.T) {
	fx := newLocalFileFixture(t)
	f, err := fx.svc.AddFile(context.Background(), fx.provider.ID, "notes.psafe3", stringsReader("v1"))
	require.NoError(t, err)
	fx.markSynced(t, f.ID)

	require.NoError(t, fx.svc.RemoveFile(context.Background(), f.ID))

	got := fx.get(t, f.ID)
	assert.True(t, got.LocalDeleted)
	assert.Equal(t, models.Removed, got.LocalChange)
	assert.Equal(t, "/notes.psafe3", got.RemoteID)
}

func TestLocalFileService_RemoveFile_Unknown(t *testing.T) {
	fx := newLocalFileFixture(t)
	assert.ErrorIs(t, fx.svc.RemoveFile(context.Background(), 42), store.ErrFileNotFound)
}
