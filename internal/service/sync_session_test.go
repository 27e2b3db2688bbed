// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-pass-sync/internal/adapter"
	"github.com/MKhiriev/go-pass-sync/internal/config"
	"github.com/MKhiriev/go-pass-sync/internal/logger"
	"github.com/MKhiriev/go-pass-sync/internal/mock"
	"github.com/MKhiriev/go-pass-sync/internal/store"
	"github.com/MKhiriev/go-pass-sync/internal/store/storetest"
	"github.com/MKhiriev/go-pass-sync/models"
)

var fixedNow = time.Date(2026, 3, 1, 10, 20, 30, 0, time.UTC)

func testSyncConfig() config.Sync {
	return config.Sync{
		SessionTimeout:         5 * time.Second,
		LogRetention:           14 * 24 * time.Hour,
		DefaultFrequency:       15 * time.Minute,
		FailureNotifyThreshold: 2,
		SchedulerInterval:      time.Minute,
	}
}

// staticClientFactory отдаёт один и тот же клиент для любого провайдера.
type staticClientFactory struct {
	client adapter.ProviderClient
	err    error
}

func (f staticClientFactory) NewClient(context.Context, models.Provider) (adapter.ProviderClient, error) {
	return f.client, f.err
}

// providerClients отдаёт отдельный клиент каждому провайдеру.
type providerClients map[int64]adapter.ProviderClient

func (f providerClients) NewClient(_ context.Context, p models.Provider) (adapter.ProviderClient, error) {
	return f[p.ID], nil
}

// hookedClient вызывает хуки поверх настоящего клиента.
type hookedClient struct {
	adapter.ProviderClient
	onList     func(ctx context.Context) error
	onDownload func(ctx context.Context, id string) error
}

func (c hookedClient) ListChildren(ctx context.Context, folderID string) ([]models.RemoteFile, error) {
	if c.onList != nil {
		if err := c.onList(ctx); err != nil {
			return nil, err
		}
	}
	return c.ProviderClient.ListChildren(ctx, folderID)
}

func (c hookedClient) DownloadContent(ctx context.Context, id string) (io.ReadCloser, error) {
	if c.onDownload != nil {
		if err := c.onDownload(ctx, id); err != nil {
			return nil, err
		}
	}
	return c.ProviderClient.DownloadContent(ctx, id)
}

type syncFixture struct {
	storages  *store.Storages
	remote    *adapter.MemoryClient
	accounts  AccountService
	files     LocalFileService
	logs      SyncLogService
	sessions  *SessionOrchestrator
	keepAlive *CountingKeepAlive
	provider  models.Provider
}

// newSyncFixture links one in-memory provider over a fresh store.
func newSyncFixture(t *testing.T, opts ...SessionOption) *syncFixture {
	t.Helper()

	storages := storetest.NewStorages(t)
	factory := adapter.NewFactory(config.Providers{}, logger.Nop())
	keepAlive := &CountingKeepAlive{}

	opts = append([]SessionOption{WithClock(func() time.Time { return fixedNow }), WithKeepAlive(keepAlive)}, opts...)
	fx := &syncFixture{
		storages:  storages,
		accounts:  NewAccountService(storages.DB, storages.Files, testSyncConfig(), logger.Nop()),
		files:     NewLocalFileService(storages.DB, storages.Files, logger.Nop()),
		logs:      NewSyncLogService(storages.DB),
		sessions:  NewSessionOrchestrator(storages.DB, storages.Files, factory, testSyncConfig(), logger.Nop(), opts...),
		keepAlive: keepAlive,
	}

	var err error
	fx.provider, err = fx.accounts.AddProvider(context.Background(), models.ProviderTypeMemory, "vault")
	require.NoError(t, err)
	fx.remote = factory.MemoryClient("vault")

	return fx
}

func (fx *syncFixture) addFile(t *testing.T, title, content string) models.SyncFile {
	t.Helper()
	f, err := fx.files.AddFile(context.Background(), fx.provider.ID, title, strings.NewReader(content))
	require.NoError(t, err)
	return f
}

func (fx *syncFixture) run(t *testing.T) *models.SyncLogRecord {
	t.Helper()
	rec, err := fx.sessions.RunSession(context.Background(), fx.provider.ID, false)
	require.NoError(t, err)
	require.NotNil(t, rec)
	return rec
}

func (fx *syncFixture) listFiles(t *testing.T) []models.SyncFile {
	t.Helper()
	files, err := fx.files.ListFiles(context.Background(), fx.provider.ID)
	require.NoError(t, err)
	return files
}

func (fx *syncFixture) readLocal(t *testing.T, id int64) string {
	t.Helper()
	rc, err := fx.files.OpenFile(context.Background(), id)
	require.NoError(t, err)
	defer rc.Close()

	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	return string(b)
}

func (fx *syncFixture) remoteContent(t *testing.T, id string) string {
	t.Helper()
	b, ok := fx.remote.Content(id)
	require.True(t, ok, "remote file %s is missing", id)
	return string(b)
}

// ── Upload / download ───────────────────────────────────────────────────────

func TestRunSession_UploadsNewLocalFile(t *testing.T) {
	fx := newSyncFixture(t)
	f := fx.addFile(t, "notes.psafe3", "local v1")

	rec := fx.run(t)

	assert.True(t, rec.Succeeded(), rec.Summary())
	assert.Equal(t, []string{"upload notes.psafe3 to /notes.psafe3"}, rec.Entries)
	assert.Empty(t, rec.Conflicts)
	assert.Equal(t, "local v1", fx.remoteContent(t, "/notes.psafe3"))

	files := fx.listFiles(t)
	require.Len(t, files, 1)
	got := files[0]
	assert.Equal(t, f.ID, got.ID)
	assert.Equal(t, "/notes.psafe3", got.RemoteID)
	assert.Equal(t, models.NoChange, got.LocalChange)
	assert.Equal(t, models.NoChange, got.RemoteChange)
	assert.False(t, got.RemoteDeleted)
	assert.Equal(t, got.RemoteModDate, got.LocalModDate)

	p, err := fx.accounts.GetProvider(context.Background(), fx.provider.ID)
	require.NoError(t, err)
	assert.Equal(t, "vault", p.DisplayName)
	require.NotNil(t, p.LastSuccess)
	assert.Nil(t, p.LastFailure)

	assert.Zero(t, fx.keepAlive.Held())
	assert.Equal(t, StateIdle, fx.sessions.State(fx.provider.ID))
}

func TestRunSession_SecondPassIsNoop(t *testing.T) {
	fx := newSyncFixture(t)
	fx.addFile(t, "notes.psafe3", "local v1")
	fx.remote.Put("/vault.psafe3", []byte("remote v1"), fixedNow.Add(-time.Hour))

	first := fx.run(t)
	require.True(t, first.Succeeded(), first.Summary())
	require.Len(t, first.Entries, 2)

	second := fx.run(t)
	assert.True(t, second.Succeeded(), second.Summary())
	assert.Empty(t, second.Entries)
	assert.Empty(t, second.Conflicts)
	assert.Len(t, fx.listFiles(t), 2)
}

func TestRunSession_DownloadsRemoteOnlyFile(t *testing.T) {
	fx := newSyncFixture(t)
	mod := fixedNow.Add(-2 * time.Hour)
	fx.remote.Put("/vault.psafe3", []byte("remote v1"), mod)

	rec := fx.run(t)
	assert.True(t, rec.Succeeded(), rec.Summary())
	assert.Equal(t, []string{"download vault.psafe3 from /vault.psafe3"}, rec.Entries)

	files := fx.listFiles(t)
	require.Len(t, files, 1)
	got := files[0]
	assert.Equal(t, LocalFileName(got.ID), got.LocalFile)
	assert.Equal(t, "vault.psafe3", got.LocalTitle)
	assert.True(t, mod.Equal(got.LocalModDate))
	assert.Equal(t, models.NoChange, got.LocalChange)
	assert.Equal(t, models.NoChange, got.RemoteChange)
	assert.Equal(t, "remote v1", fx.readLocal(t, got.ID))

	modTime, err := fx.storages.Files.ModTime(got.LocalFile)
	require.NoError(t, err)
	assert.True(t, mod.Equal(modTime))
}

func TestRunSession_RemoteModificationIsDownloaded(t *testing.T) {
	fx := newSyncFixture(t)
	f := fx.addFile(t, "notes.psafe3", "local v1")
	fx.run(t)

	fx.remote.Put("/notes.psafe3", []byte("remote v2"), fixedNow.Add(time.Hour))

	rec := fx.run(t)
	assert.True(t, rec.Succeeded(), rec.Summary())
	assert.Equal(t, []string{"download notes.psafe3 from /notes.psafe3"}, rec.Entries)
	assert.Equal(t, "remote v2", fx.readLocal(t, f.ID))
}

func TestRunSession_LocalModificationIsUploaded(t *testing.T) {
	fx := newSyncFixture(t)
	f := fx.addFile(t, "notes.psafe3", "local v1")
	fx.run(t)

	_, err := fx.files.UpdateFile(context.Background(), f.ID, strings.NewReader("local v2"))
	require.NoError(t, err)

	rec := fx.run(t)
	assert.True(t, rec.Succeeded(), rec.Summary())
	assert.Equal(t, []string{"upload notes.psafe3 to /notes.psafe3"}, rec.Entries)
	assert.Equal(t, "local v2", fx.remoteContent(t, "/notes.psafe3"))
}

// Файл, добавленный локально, уже лежит на провайдере под тем же именем.
func TestRunSession_LocalAddedFileAlreadyOnRemote(t *testing.T) {
	fx := newSyncFixture(t)
	fx.remote.Put("/notes.psafe3", []byte("remote v1"), fixedNow.Add(-time.Hour))
	f := fx.addFile(t, "notes.psafe3", "local v1")

	rec := fx.run(t)

	require.Len(t, rec.Conflicts, 1)
	assert.Equal(t, "notes.psafe3", rec.Conflicts[0])

	files := fx.listFiles(t)
	require.Len(t, files, 2)
	assert.Equal(t, "remote v1", fx.remoteContent(t, "/notes.psafe3"))
	assert.Equal(t, "local v1", fx.remoteContent(t, "/conflicted local copy (2026-03-01 10-20-30) - notes.psafe3"))
	assert.Equal(t, "local v1", fx.readLocal(t, f.ID))
}

// ── Conflicts ───────────────────────────────────────────────────────────────

func TestRunSession_ModifiedOnBothSides_SplitsConflict(t *testing.T) {
	fx := newSyncFixture(t)
	f := fx.addFile(t, "notes.psafe3", "local v1")
	fx.run(t)

	_, err := fx.files.UpdateFile(context.Background(), f.ID, strings.NewReader("local v2"))
	require.NoError(t, err)
	fx.remote.Put("/notes.psafe3", []byte("remote v2"), fixedNow.Add(time.Hour))

	rec := fx.run(t)
	assert.True(t, rec.Succeeded(), rec.Summary())
	assert.Equal(t, []string{"notes.psafe3"}, rec.Conflicts)

	conflictTitle := "conflicted local copy (2026-03-01 10-20-30) - notes.psafe3"
	assert.Equal(t, []string{
		"conflict notes.psafe3 local:modified remote:modified",
		"download notes.psafe3 from /notes.psafe3",
		"upload " + conflictTitle + " to /" + conflictTitle,
	}, rec.Entries)

	assert.Equal(t, "remote v2", fx.remoteContent(t, "/notes.psafe3"))
	assert.Equal(t, "local v2", fx.remoteContent(t, "/"+conflictTitle))

	files := fx.listFiles(t)
	require.Len(t, files, 2)
	byRemote := make(map[string]models.SyncFile)
	for _, file := range files {
		assert.Equal(t, models.NoChange, file.LocalChange)
		assert.Equal(t, models.NoChange, file.RemoteChange)
		byRemote[file.RemoteID] = file
	}
	assert.Equal(t, f.ID, byRemote["/"+conflictTitle].ID)
	assert.Equal(t, "remote v2", fx.readLocal(t, byRemote["/notes.psafe3"].ID))

	again := fx.run(t)
	assert.Empty(t, again.Entries)
}

func TestRunSession_LocalEditRemoteDeleted_Recreates(t *testing.T) {
	fx := newSyncFixture(t)
	f := fx.addFile(t, "notes.psafe3", "local v1")
	fx.run(t)

	_, err := fx.files.UpdateFile(context.Background(), f.ID, strings.NewReader("local v2"))
	require.NoError(t, err)
	fx.remote.Remove("/notes.psafe3")

	rec := fx.run(t)
	assert.True(t, rec.Succeeded(), rec.Summary())
	assert.Equal(t, []string{"notes.psafe3"}, rec.Conflicts)

	title := "recreated local copy (2026-03-01 10-20-30) - notes.psafe3"
	assert.Equal(t, "local v2", fx.remoteContent(t, "/"+title))

	files := fx.listFiles(t)
	require.Len(t, files, 1)
	assert.Equal(t, "/"+title, files[0].RemoteID)
	assert.Equal(t, title, files[0].LocalTitle)
}

func TestRunSession_LocalRemovedRemoteEdited_KeepsRemote(t *testing.T) {
	fx := newSyncFixture(t)
	f := fx.addFile(t, "notes.psafe3", "local v1")
	fx.run(t)

	require.NoError(t, fx.files.RemoveFile(context.Background(), f.ID))
	fx.remote.Put("/notes.psafe3", []byte("remote v2"), fixedNow.Add(time.Hour))

	rec := fx.run(t)
	assert.True(t, rec.Succeeded(), rec.Summary())
	assert.Len(t, rec.Conflicts, 1)
	assert.Equal(t, "remote v2", fx.remoteContent(t, "/notes.psafe3"))

	files := fx.listFiles(t)
	require.Len(t, files, 1)
	assert.NotEqual(t, f.ID, files[0].ID)
	assert.Equal(t, "remote v2", fx.readLocal(t, files[0].ID))
}

// ── Removal ─────────────────────────────────────────────────────────────────

func TestRunSession_LocalRemoveDeletesRemote(t *testing.T) {
	fx := newSyncFixture(t)
	f := fx.addFile(t, "notes.psafe3", "local v1")
	fx.run(t)

	require.NoError(t, fx.files.RemoveFile(context.Background(), f.ID))

	rec := fx.run(t)
	assert.True(t, rec.Succeeded(), rec.Summary())
	assert.Equal(t, []string{"remove notes.psafe3"}, rec.Entries)

	_, ok := fx.remote.Content("/notes.psafe3")
	assert.False(t, ok)
	assert.Empty(t, fx.listFiles(t))
}

func TestRunSession_RemoteRemoveDropsRecord(t *testing.T) {
	fx := newSyncFixture(t)
	f := fx.addFile(t, "notes.psafe3", "local v1")
	fx.run(t)
	local := fx.listFiles(t)[0].LocalFile

	fx.remote.Remove("/notes.psafe3")

	rec := fx.run(t)
	assert.True(t, rec.Succeeded(), rec.Summary())
	assert.Equal(t, []string{"remove notes.psafe3"}, rec.Entries)
	assert.Empty(t, fx.listFiles(t))
	assert.False(t, fx.storages.Files.Exists(local))

	_, err := fx.files.OpenFile(context.Background(), f.ID)
	assert.ErrorIs(t, err, store.ErrFileNotFound)
}

// ── Remote id changes ───────────────────────────────────────────────────────

func TestRunSession_RekeyedRemoteFile(t *testing.T) {
	fx := newSyncFixture(t)
	f := fx.addFile(t, "notes.psafe3", "local v1")
	fx.run(t)

	fx.remote.Rekey("/notes.psafe3", "/archive/notes.psafe3")

	rec := fx.run(t)
	assert.True(t, rec.Succeeded(), rec.Summary())

	files := fx.listFiles(t)
	require.Len(t, files, 1)
	assert.Equal(t, f.ID, files[0].ID)
	assert.Equal(t, "/archive/notes.psafe3", files[0].RemoteID)
	assert.Equal(t, models.NoChange, files[0].RemoteChange)
}

// ── Connectivity ────────────────────────────────────────────────────────────

func TestRunSession_OfflineProviderIsNotAFailure(t *testing.T) {
	fx := newSyncFixture(t)
	fx.addFile(t, "notes.psafe3", "local v1")
	fx.remote.SetOffline(true)

	rec := fx.run(t)
	assert.True(t, rec.IsNotConnected())
	assert.Empty(t, rec.Failures)
	assert.Empty(t, rec.Entries)

	p, err := fx.accounts.GetProvider(context.Background(), fx.provider.ID)
	require.NoError(t, err)
	assert.Nil(t, p.LastSuccess)
	assert.Nil(t, p.LastFailure)
	assert.Empty(t, fx.sessions.Results())

	logs, err := fx.logs.ListLogs(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.True(t, logs[0].IsNotConnected())
}

func TestRunSession_ConnectivityErrorIsAFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockProviderClient(ctrl)
	client.EXPECT().CheckConnectivity(gomock.Any()).Return(models.ConnectivityResult{}, adapter.ErrUnauthorized)

	storages := storetest.NewStorages(t)
	sessions := NewSessionOrchestrator(storages.DB, storages.Files, staticClientFactory{client: client}, testSyncConfig(), logger.Nop())
	accounts := NewAccountService(storages.DB, storages.Files, testSyncConfig(), logger.Nop())
	p, err := accounts.AddProvider(context.Background(), models.ProviderTypeREST, "alice")
	require.NoError(t, err)

	rec, err := sessions.RunSession(context.Background(), p.ID, true)
	require.NoError(t, err)
	assert.True(t, rec.IsManual())
	assert.True(t, rec.IsNotConnected())
	require.Len(t, rec.Failures, 1)
	assert.Contains(t, rec.Failures[0], adapter.ErrUnauthorized.Error())

	p, err = accounts.GetProvider(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Nil(t, p.LastSuccess)
	require.NotNil(t, p.LastFailure)
}

func TestRunSession_ClientFactoryError(t *testing.T) {
	storages := storetest.NewStorages(t)
	sessions := NewSessionOrchestrator(storages.DB, storages.Files, staticClientFactory{err: adapter.ErrInvalidConfig}, testSyncConfig(), logger.Nop())
	accounts := NewAccountService(storages.DB, storages.Files, testSyncConfig(), logger.Nop())
	p, err := accounts.AddProvider(context.Background(), models.ProviderTypeS3, "bucket")
	require.NoError(t, err)

	rec, err := sessions.RunSession(context.Background(), p.ID, false)
	require.NoError(t, err)
	assert.True(t, rec.IsNotConnected())
	assert.Len(t, rec.Failures, 1)
}

func TestRunSession_UnknownProvider(t *testing.T) {
	fx := newSyncFixture(t)

	rec, err := fx.sessions.RunSession(context.Background(), fx.provider.ID+100, false)
	assert.Nil(t, rec)
	assert.ErrorIs(t, err, store.ErrProviderNotFound)
}

// ── Failures ────────────────────────────────────────────────────────────────

func TestRunSession_FailedUploadKeepsChanges(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockProviderClient(ctrl)

	storages := storetest.NewStorages(t)
	sessions := NewSessionOrchestrator(storages.DB, storages.Files, staticClientFactory{client: client}, testSyncConfig(), logger.Nop())
	accounts := NewAccountService(storages.DB, storages.Files, testSyncConfig(), logger.Nop())
	files := NewLocalFileService(storages.DB, storages.Files, logger.Nop())

	p, err := accounts.AddProvider(context.Background(), models.ProviderTypeREST, "alice")
	require.NoError(t, err)
	f, err := files.AddFile(context.Background(), p.ID, "notes.psafe3", strings.NewReader("local v1"))
	require.NoError(t, err)

	gomock.InOrder(
		client.EXPECT().CheckConnectivity(gomock.Any()).Return(models.ConnectivityResult{DisplayName: "Alice"}, nil),
		client.EXPECT().ListChildren(gomock.Any(), adapter.RootFolderID).Return(nil, nil),
		client.EXPECT().GetMetadata(gomock.Any(), "/notes.psafe3").Return(models.RemoteFile{}, adapter.ErrNotFound),
		client.EXPECT().UploadContent(gomock.Any(), "/notes.psafe3", []byte("local v1")).Return(models.RemoteFile{}, errors.New("connection reset")),
	)

	rec, err := sessions.RunSession(context.Background(), p.ID, false)
	require.NoError(t, err)
	assert.False(t, rec.Succeeded())
	assert.False(t, rec.IsNotConnected())
	require.Len(t, rec.Failures, 1)
	assert.Contains(t, rec.Failures[0], "connection reset")

	got, err := files.ListFiles(context.Background(), p.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, f.ID, got[0].ID)
	assert.Equal(t, models.Added, got[0].LocalChange)
	assert.Empty(t, got[0].RemoteID)
}

func TestRunSession_FailedDownloadKeepsChanges(t *testing.T) {
	fx := newSyncFixture(t)
	f := fx.addFile(t, "notes.psafe3", "local v1")
	fx.run(t)
	fx.remote.Put("/notes.psafe3", []byte("remote v2"), fixedNow.Add(time.Hour))

	failing := hookedClient{
		ProviderClient: fx.remote,
		onDownload: func(context.Context, string) error {
			return errors.New("connection reset")
		},
	}
	sessions := NewSessionOrchestrator(fx.storages.DB, fx.storages.Files, staticClientFactory{client: failing}, testSyncConfig(), logger.Nop(),
		WithClock(func() time.Time { return fixedNow }))

	rec, err := sessions.RunSession(context.Background(), fx.provider.ID, false)
	require.NoError(t, err)
	assert.False(t, rec.Succeeded())
	assert.Equal(t, []string{"download notes.psafe3 from /notes.psafe3"}, rec.Entries)
	require.Len(t, rec.Failures, 1)
	assert.Contains(t, rec.Failures[0], "connection reset")

	files := fx.listFiles(t)
	require.Len(t, files, 1)
	assert.Equal(t, models.NoChange, files[0].LocalChange)
	assert.Equal(t, models.Modified, files[0].RemoteChange)
	assert.Equal(t, "local v1", fx.readLocal(t, f.ID))

	// следующая сессия докачивает изменение
	retry := fx.run(t)
	assert.True(t, retry.Succeeded(), retry.Summary())
	assert.Equal(t, "remote v2", fx.readLocal(t, f.ID))
}

func TestRunSession_WriteDuringListingAbortsSession(t *testing.T) {
	fx := newSyncFixture(t)
	f := fx.addFile(t, "notes.psafe3", "local v1")

	var late models.SyncFile
	client := hookedClient{
		ProviderClient: fx.remote,
		onList: func(ctx context.Context) error {
			var err error
			late, err = fx.files.AddFile(ctx, fx.provider.ID, "late.psafe3", strings.NewReader("late"))
			return err
		},
	}
	sessions := NewSessionOrchestrator(fx.storages.DB, fx.storages.Files, staticClientFactory{client: client}, testSyncConfig(), logger.Nop())

	rec, err := sessions.RunSession(context.Background(), fx.provider.ID, false)
	require.NoError(t, err)
	assert.False(t, rec.Succeeded())
	require.Len(t, rec.Failures, 1)
	assert.Contains(t, rec.Failures[0], ErrConcurrentModification.Error())
	assert.Empty(t, rec.Entries)
	assert.Empty(t, rec.Conflicts)

	_, ok := fx.remote.Content("/notes.psafe3")
	assert.False(t, ok, "nothing is uploaded")

	files := fx.listFiles(t)
	require.Len(t, files, 2)
	for _, file := range files {
		assert.Contains(t, []int64{f.ID, late.ID}, file.ID)
		assert.Equal(t, models.Added, file.LocalChange)
		assert.Equal(t, models.NoChange, file.RemoteChange)
		assert.Empty(t, file.RemoteID)
	}

	// сбой разовый, следующий проход всё выгружает
	again := fx.run(t)
	assert.True(t, again.Succeeded(), again.Summary())
	assert.Len(t, again.Entries, 2)
}

func TestRunSession_ListingErrorAbortsBeforeOperations(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockProviderClient(ctrl)
	client.EXPECT().CheckConnectivity(gomock.Any()).Return(models.ConnectivityResult{}, nil)
	client.EXPECT().ListChildren(gomock.Any(), adapter.RootFolderID).Return(nil, adapter.ErrInternalServerError)

	storages := storetest.NewStorages(t)
	sessions := NewSessionOrchestrator(storages.DB, storages.Files, staticClientFactory{client: client}, testSyncConfig(), logger.Nop())
	accounts := NewAccountService(storages.DB, storages.Files, testSyncConfig(), logger.Nop())
	p, err := accounts.AddProvider(context.Background(), models.ProviderTypeREST, "alice")
	require.NoError(t, err)

	rec, err := sessions.RunSession(context.Background(), p.ID, false)
	require.NoError(t, err)
	assert.Empty(t, rec.Entries)
	require.Len(t, rec.Failures, 1)
	assert.Contains(t, rec.Failures[0], adapter.ErrInternalServerError.Error())
}

func TestRunSession_Timeout(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockProviderClient(ctrl)
	client.EXPECT().CheckConnectivity(gomock.Any()).DoAndReturn(func(ctx context.Context) (models.ConnectivityResult, error) {
		<-ctx.Done()
		return models.ConnectivityResult{}, ctx.Err()
	})

	cfg := testSyncConfig()
	cfg.SessionTimeout = 50 * time.Millisecond

	keepAlive := &CountingKeepAlive{}
	storages := storetest.NewStorages(t)
	sessions := NewSessionOrchestrator(storages.DB, storages.Files, staticClientFactory{client: client}, cfg, logger.Nop(), WithKeepAlive(keepAlive))
	accounts := NewAccountService(storages.DB, storages.Files, cfg, logger.Nop())
	p, err := accounts.AddProvider(context.Background(), models.ProviderTypeREST, "alice")
	require.NoError(t, err)

	rec, err := sessions.RunSession(context.Background(), p.ID, false)
	require.NoError(t, err)
	assert.False(t, rec.Succeeded())
	assert.Contains(t, strings.Join(rec.Failures, "\n"), ErrSessionTimeout.Error())
	assert.Zero(t, keepAlive.Held())
	assert.False(t, rec.EndTime.IsZero())
}

func TestRunSession_StuckWorkerIsAbandoned(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockProviderClient(ctrl)

	stuck := make(chan struct{})
	client.EXPECT().CheckConnectivity(gomock.Any()).DoAndReturn(func(context.Context) (models.ConnectivityResult, error) {
		// ctx игнорируется намеренно
		<-stuck
		return models.ConnectivityResult{}, nil
	})

	cfg := testSyncConfig()
	cfg.SessionTimeout = 30 * time.Millisecond

	keepAlive := &CountingKeepAlive{}
	storages := storetest.NewStorages(t)
	sessions := NewSessionOrchestrator(storages.DB, storages.Files, staticClientFactory{client: client}, cfg, logger.Nop(), WithKeepAlive(keepAlive))
	sessions.stopGrace = 30 * time.Millisecond
	accounts := NewAccountService(storages.DB, storages.Files, cfg, logger.Nop())
	p, err := accounts.AddProvider(context.Background(), models.ProviderTypeREST, "alice")
	require.NoError(t, err)

	start := time.Now()
	rec, err := sessions.RunSession(context.Background(), p.ID, false)
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)

	failures := strings.Join(rec.Failures, "\n")
	assert.Contains(t, failures, ErrWorkerNotStopped.Error())
	assert.Contains(t, failures, ErrSessionTimeout.Error())
	assert.Equal(t, int64(1), keepAlive.Held(), "the abandoned worker keeps its hold")

	close(stuck)
	assert.Eventually(t, func() bool { return keepAlive.Held() == 0 }, 2*time.Second, 5*time.Millisecond)
}

// ── Concurrency ─────────────────────────────────────────────────────────────

func TestRunSession_ProvidersDoNotAbortEachOther(t *testing.T) {
	ctx := context.Background()
	storages := storetest.NewStorages(t)
	accounts := NewAccountService(storages.DB, storages.Files, testSyncConfig(), logger.Nop())
	files := NewLocalFileService(storages.DB, storages.Files, logger.Nop())

	alpha, err := accounts.AddProvider(ctx, models.ProviderTypeMemory, "alpha")
	require.NoError(t, err)
	beta, err := accounts.AddProvider(ctx, models.ProviderTypeMemory, "beta")
	require.NoError(t, err)
	_, err = files.AddFile(ctx, alpha.ID, "a.psafe3", strings.NewReader("alpha v1"))
	require.NoError(t, err)
	_, err = files.AddFile(ctx, beta.ID, "b.psafe3", strings.NewReader("beta v1"))
	require.NoError(t, err)

	alphaRemote := adapter.NewMemoryClient("alpha")
	betaRemote := adapter.NewMemoryClient("beta")

	listing := make(chan struct{})
	release := make(chan struct{})
	clients := providerClients{
		alpha.ID: alphaRemote,
		beta.ID: hookedClient{
			ProviderClient: betaRemote,
			onList: func(ctx context.Context) error {
				close(listing)
				select {
				case <-release:
					return nil
				case <-ctx.Done():
					return ctx.Err()
				}
			},
		},
	}
	sessions := NewSessionOrchestrator(storages.DB, storages.Files, clients, testSyncConfig(), logger.Nop())

	type result struct {
		rec *models.SyncLogRecord
		err error
	}
	betaDone := make(chan result, 1)
	go func() {
		rec, err := sessions.RunSession(ctx, beta.ID, false)
		betaDone <- result{rec, err}
	}()

	// beta висит между первой и второй транзакцией, alpha проходит целиком
	<-listing
	alphaRec, err := sessions.RunSession(ctx, alpha.ID, false)
	require.NoError(t, err)
	assert.True(t, alphaRec.Succeeded(), alphaRec.Summary())
	close(release)

	res := <-betaDone
	require.NoError(t, res.err)
	assert.True(t, res.rec.Succeeded(), res.rec.Summary())
	assert.Equal(t, []string{"upload b.psafe3 to /b.psafe3"}, res.rec.Entries)

	content, ok := betaRemote.Content("/b.psafe3")
	require.True(t, ok)
	assert.Equal(t, "beta v1", string(content))
	_, ok = alphaRemote.Content("/a.psafe3")
	assert.True(t, ok)
}

// ── Observers ───────────────────────────────────────────────────────────────

func TestRunSession_NotifiesObservers(t *testing.T) {
	ctrl := gomock.NewController(t)
	observer := mock.NewMockSessionObserver(ctrl)
	fx := newSyncFixture(t, WithObserver(observer))
	fx.addFile(t, "notes.psafe3", "local v1")

	observer.EXPECT().OnSessionFinished(gomock.Any(), gomock.Any()).Do(func(rec *models.SyncLogRecord, results models.SyncResults) {
		assert.True(t, rec.Succeeded())
		assert.NotZero(t, rec.ID)
		require.Contains(t, results, fx.provider.ID)
		assert.Equal(t, fixedNow, results[fx.provider.ID].LastSuccess)
		assert.Zero(t, results[fx.provider.ID].ConsecutiveFailures)
	})

	fx.run(t)
}

func TestRunSession_RepeatedFailuresNotifyObserver(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockProviderClient(ctrl)
	client.EXPECT().CheckConnectivity(gomock.Any()).Return(models.ConnectivityResult{}, adapter.ErrForbidden).Times(3)

	observer := mock.NewMockSessionObserver(ctrl)
	observer.EXPECT().OnSessionFinished(gomock.Any(), gomock.Any()).Times(3)
	// порог 2: первое уведомление после второй неудачи, второе после третьей
	observer.EXPECT().OnRepeatedFailures(gomock.Any(), 2)
	observer.EXPECT().OnRepeatedFailures(gomock.Any(), 3)

	storages := storetest.NewStorages(t)
	sessions := NewSessionOrchestrator(storages.DB, storages.Files, staticClientFactory{client: client}, testSyncConfig(), logger.Nop())
	sessions.AddObserver(observer)
	accounts := NewAccountService(storages.DB, storages.Files, testSyncConfig(), logger.Nop())
	p, err := accounts.AddProvider(context.Background(), models.ProviderTypeREST, "alice")
	require.NoError(t, err)

	for range 3 {
		_, err = sessions.RunSession(context.Background(), p.ID, false)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, sessions.Results()[p.ID].ConsecutiveFailures)
}

// ── Logs ────────────────────────────────────────────────────────────────────

func TestRunSession_PrunesOldLogs(t *testing.T) {
	fx := newSyncFixture(t)

	old := models.NewSyncLogRecord(fx.provider, false, fixedNow.Add(-30*24*time.Hour))
	old.EndTime = old.StartTime.Add(time.Second)
	err := fx.storages.DB.WithTx(context.Background(), func(ctx context.Context, q store.Queries) error {
		_, err := q.AddSyncLog(ctx, *old)
		return err
	})
	require.NoError(t, err)

	rec := fx.run(t)

	logs, err := fx.logs.ListLogs(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, rec.ID, logs[0].ID)
}

// ── dbSession ───────────────────────────────────────────────────────────────

func TestDBSession_DetectsConcurrentModification(t *testing.T) {
	db := storetest.NewDB(t)
	ctx := context.Background()

	var own, other int64
	err := db.WithTx(ctx, func(ctx context.Context, q store.Queries) error {
		var err error
		if own, err = q.AddProvider(ctx, models.Provider{Type: models.ProviderTypeMemory, Account: "own"}); err != nil {
			return err
		}
		other, err = q.AddProvider(ctx, models.Provider{Type: models.ProviderTypeMemory, Account: "other"})
		return err
	})
	require.NoError(t, err)

	s := newDBSession(db, own)
	noop := func(context.Context, store.Queries) error { return nil }

	require.NoError(t, s.useDB(ctx, true, noop))
	require.NoError(t, s.useDB(ctx, true, noop))

	// запись другого провайдера не мешает сессии
	err = db.WithTx(ctx, func(ctx context.Context, q store.Queries) error {
		_, err := q.AddLocalFile(ctx, other, "other.psafe3", fixedNow)
		return err
	})
	require.NoError(t, err)
	require.NoError(t, s.useDB(ctx, true, noop))

	// изменение вне сессии
	err = db.WithTx(ctx, func(ctx context.Context, q store.Queries) error {
		_, err := q.AddLocalFile(ctx, own, "own.psafe3", fixedNow)
		return err
	})
	require.NoError(t, err)

	assert.ErrorIs(t, s.useDB(ctx, true, noop), ErrConcurrentModification)
	// непроверяемая транзакция проходит и обновляет счётчик
	require.NoError(t, s.useDB(ctx, false, noop))
	assert.NoError(t, s.useDB(ctx, true, noop))
}

func TestDBSession_Interrupted(t *testing.T) {
	db := storetest.NewDB(t)
	s := newDBSession(db, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := s.useDB(ctx, false, func(context.Context, store.Queries) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrSessionInterrupted)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestSessionState_String(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "connecting", StateConnecting.String())
	assert.Equal(t, "syncing", StateSyncing.String())
	assert.Equal(t, "finishing", StateFinishing.String())
	assert.Equal(t, "unknown", SessionState(42).String())
}
