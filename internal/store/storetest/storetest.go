// Package storetest opens throwaway in-memory sync state stores for tests.
package storetest

import (
	"context"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pass-sync/internal/config"
	"github.com/MKhiriev/go-pass-sync/internal/logger"
	"github.com/MKhiriev/go-pass-sync/internal/store"
)

// NewDB returns a migrated in-memory database closed at test cleanup.
func NewDB(t testing.TB) *store.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := store.NewConnectSQLite(context.Background(), config.DB{DSN: dsn}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return db
}

// NewStorages returns in-memory database and local content storages.
func NewStorages(t testing.TB) *store.Storages {
	t.Helper()
	return &store.Storages{
		DB:    NewDB(t),
		Files: store.NewLocalFileStorageFS(memfs.New()),
	}
}
