package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-pass-sync/internal/config"
	"github.com/MKhiriev/go-pass-sync/internal/logger"
	"github.com/MKhiriev/go-pass-sync/internal/store"
	"github.com/MKhiriev/go-pass-sync/internal/validators"
	"github.com/MKhiriev/go-pass-sync/models"
)

type accountService struct {
	store     store.SyncStore
	files     store.LocalFileStorage
	cfg       config.Sync
	validator validators.Validator

	logger *logger.Logger
}

func NewAccountService(db store.SyncStore, files store.LocalFileStorage, cfg config.Sync, logger *logger.Logger) AccountService {
	return &accountService{
		store:     db,
		files:     files,
		cfg:       cfg,
		validator: validators.NewSyncDataValidator(),
		logger:    logger,
	}
}

func (a *accountService) AddProvider(ctx context.Context, typ models.ProviderType, account string) (models.Provider, error) {
	p := models.Provider{
		Type:     typ,
		Account:  strings.TrimSpace(account),
		SyncFreq: a.cfg.DefaultFrequency,
	}
	if err := a.validator.Validate(ctx, p); err != nil {
		return models.Provider{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	err := a.store.WithTx(ctx, func(ctx context.Context, q store.Queries) error {
		id, err := q.AddProvider(ctx, p)
		if err != nil {
			return err
		}
		p.ID = id
		return nil
	})
	if err != nil {
		return models.Provider{}, err
	}

	a.logger.Info().Int64("provider_id", p.ID).Str("type", string(typ)).Str("account", p.Account).Msg("provider linked")
	return p, nil
}

func (a *accountService) GetProvider(ctx context.Context, id int64) (models.Provider, error) {
	var p models.Provider
	err := a.store.WithTx(ctx, func(ctx context.Context, q store.Queries) error {
		var err error
		p, err = q.GetProvider(ctx, id)
		return err
	})
	return p, err
}

func (a *accountService) ListProviders(ctx context.Context) ([]models.Provider, error) {
	var providers []models.Provider
	err := a.store.WithTx(ctx, func(ctx context.Context, q store.Queries) error {
		var err error
		providers, err = q.ListProviders(ctx)
		return err
	})
	return providers, err
}

func (a *accountService) RemoveProvider(ctx context.Context, id int64) error {
	var files []models.SyncFile
	err := a.store.WithTx(ctx, func(ctx context.Context, q store.Queries) error {
		if _, err := q.GetProvider(ctx, id); err != nil {
			return err
		}

		var err error
		if files, err = q.GetFiles(ctx, id); err != nil {
			return err
		}
		return q.DeleteProvider(ctx, id)
	})
	if err != nil {
		return err
	}

	for _, f := range files {
		if f.LocalFile == "" {
			continue
		}
		if err = a.files.Remove(f.LocalFile); err != nil {
			a.logger.Err(err).Str("func", "accountService.RemoveProvider").Int64("file_id", f.ID).Msg("failed to remove local file content")
		}
	}

	a.logger.Info().Int64("provider_id", id).Int("files", len(files)).Msg("provider removed")
	return nil
}

func (a *accountService) SetSyncFrequency(ctx context.Context, id int64, freq time.Duration) error {
	if err := a.validator.Validate(ctx, models.Provider{ID: id, SyncFreq: freq}, validators.FieldSyncFreq); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidFrequency, err)
	}

	return a.store.WithTx(ctx, func(ctx context.Context, q store.Queries) error {
		if _, err := q.GetProvider(ctx, id); err != nil {
			return err
		}
		return q.UpdateProviderSyncFreq(ctx, id, freq)
	})
}
