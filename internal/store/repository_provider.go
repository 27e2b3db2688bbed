package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-pass-sync/internal/logger"
	"github.com/MKhiriev/go-pass-sync/models"
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProvider(row rowScanner) (models.Provider, error) {
	var (
		p           models.Provider
		providerTyp string
		displayName sql.NullString
		syncFreq    int64
		lastSuccess sql.NullInt64
		lastFailure sql.NullInt64
	)
	if err := row.Scan(&p.ID, &providerTyp, &p.Account, &displayName, &syncFreq, &lastSuccess, &lastFailure); err != nil {
		return models.Provider{}, err
	}

	p.Type = models.ProviderType(providerTyp)
	p.DisplayName = displayName.String
	p.SyncFreq = time.Duration(syncFreq) * time.Second
	p.LastSuccess = fromNullMillis(lastSuccess)
	p.LastFailure = fromNullMillis(lastFailure)
	return p, nil
}

func (q *queries) GetProvider(ctx context.Context, id int64) (models.Provider, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectProviderQuery(id)
	if err != nil {
		return models.Provider{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	p, err := scanProvider(q.tx.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Provider{}, fmt.Errorf("%w: id=%d", ErrProviderNotFound, id)
	}
	if err != nil {
		log.Err(err).Str("func", "queries.GetProvider").Int64("provider_id", id).Msg("failed to scan provider row")
		return models.Provider{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return p, nil
}

func (q *queries) ListProviders(ctx context.Context) ([]models.Provider, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectProvidersQuery()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := q.tx.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "queries.ListProviders").Msg("failed to query providers")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var providers []models.Provider
	for rows.Next() {
		p, scanErr := scanProvider(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "queries.ListProviders").Msg("failed to scan provider row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		providers = append(providers, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return providers, nil
}

func (q *queries) AddProvider(ctx context.Context, p models.Provider) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertProviderQuery(p)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := q.exec(ctx, 0, query, args...)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return 0, fmt.Errorf("%w: %s %s", ErrProviderAlreadyExists, p.Type, p.Account)
		}
		log.Err(err).Str("func", "queries.AddProvider").Str("account", p.Account).Msg("failed to insert provider")
		return 0, err
	}

	return res.LastInsertId()
}

func (q *queries) UpdateProviderDisplayName(ctx context.Context, id int64, name string) error {
	return q.updateProvider(ctx, "queries.UpdateProviderDisplayName", id, map[string]any{
		"display_name": nullString(name),
	})
}

func (q *queries) UpdateProviderSyncFreq(ctx context.Context, id int64, freq time.Duration) error {
	return q.updateProvider(ctx, "queries.UpdateProviderSyncFreq", id, map[string]any{
		"sync_freq": int64(freq / time.Second),
	})
}

func (q *queries) UpdateProviderSyncResult(ctx context.Context, id int64, success bool, at time.Time) error {
	column := "last_failure"
	if success {
		column = "last_success"
	}
	return q.updateProvider(ctx, "queries.UpdateProviderSyncResult", id, map[string]any{
		column: toMillis(at),
	})
}

func (q *queries) DeleteProvider(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteProviderQuery(id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = q.exec(ctx, id, query, args...); err != nil {
		log.Err(err).Str("func", "queries.DeleteProvider").Int64("provider_id", id).Msg("failed to delete provider")
		return err
	}

	return nil
}

func (q *queries) updateProvider(ctx context.Context, fn string, id int64, set map[string]any) error {
	query, args, err := buildUpdateProviderQuery(id, set)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = q.exec(ctx, id, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", fn).Int64("provider_id", id).Msg("failed to update provider")
		return err
	}

	return nil
}
