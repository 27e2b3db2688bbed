package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-pass-sync/internal/config"
	"github.com/MKhiriev/go-pass-sync/internal/logger"
)

// Storages bundles the persistence layer handed to the services.
type Storages struct {
	DB    *DB
	Files LocalFileStorage
}

// NewStorages opens the sync state database and the local content store.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectSQLite(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("error opening sync state database: %w", err)
	}

	files, err := NewLocalFileStorage(cfg.Files)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	log.Info().Str("dsn", cfg.DB.DSN).Str("local_dir", cfg.Files.LocalDir).Msg("storages created")

	return &Storages{DB: db, Files: files}, nil
}

// Close releases the database connection.
func (s *Storages) Close() error {
	return s.DB.Close()
}
