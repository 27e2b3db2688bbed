package service

import (
	"github.com/MKhiriev/go-pass-sync/internal/config"
	"github.com/MKhiriev/go-pass-sync/internal/logger"
	"github.com/MKhiriev/go-pass-sync/internal/store"
)

type Services struct {
	AccountService   AccountService
	LocalFileService LocalFileService
	SyncLogService   SyncLogService
	Sessions         *SessionOrchestrator
	SyncJob          SyncJob
}

func NewServices(storages *store.Storages, clients ClientFactory, cfg config.Sync, logger *logger.Logger, opts ...SessionOption) *Services {
	sessions := NewSessionOrchestrator(storages.DB, storages.Files, clients, cfg, logger, opts...)

	return &Services{
		AccountService:   NewAccountService(storages.DB, storages.Files, cfg, logger),
		LocalFileService: NewLocalFileService(storages.DB, storages.Files, logger),
		SyncLogService:   NewSyncLogService(storages.DB),
		Sessions:         sessions,
		SyncJob:          NewSyncJob(sessions, storages.DB, cfg.SchedulerInterval, logger),
	}
}
