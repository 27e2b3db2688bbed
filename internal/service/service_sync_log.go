package service

import (
	"context"

	"github.com/MKhiriev/go-pass-sync/internal/store"
	"github.com/MKhiriev/go-pass-sync/models"
)

type syncLogService struct {
	store store.SyncStore
}

func NewSyncLogService(db store.SyncStore) SyncLogService {
	return &syncLogService{store: db}
}

func (s *syncLogService) ListLogs(ctx context.Context, limit int) ([]models.SyncLogRecord, error) {
	var logs []models.SyncLogRecord
	err := s.store.WithTx(ctx, func(ctx context.Context, q store.Queries) error {
		var err error
		logs, err = q.ListSyncLogs(ctx, limit)
		return err
	})
	return logs, err
}
