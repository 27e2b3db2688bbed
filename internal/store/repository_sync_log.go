package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MKhiriev/go-pass-sync/internal/logger"
	"github.com/MKhiriev/go-pass-sync/models"
)

func (q *queries) AddSyncLog(ctx context.Context, rec models.SyncLogRecord) (int64, error) {
	log := logger.FromContext(ctx)

	entries, err := encodeLines(rec.Entries)
	if err != nil {
		return 0, err
	}
	conflicts, err := encodeLines(rec.Conflicts)
	if err != nil {
		return 0, err
	}
	failures, err := encodeLines(rec.Failures)
	if err != nil {
		return 0, err
	}

	query, args, err := buildInsertSyncLogQuery(rec, entries, conflicts, failures)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	// sync logs are not sync state
	res, err := q.exec(ctx, 0, query, args...)
	if err != nil {
		log.Err(err).Str("func", "queries.AddSyncLog").Int64("provider_id", rec.ProviderID).Msg("failed to insert sync log")
		return 0, err
	}

	return res.LastInsertId()
}

func (q *queries) DeleteSyncLogsBefore(ctx context.Context, before time.Time) (int64, error) {
	query, args, err := buildDeleteSyncLogsBeforeQuery(before)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := q.exec(ctx, 0, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "queries.DeleteSyncLogsBefore").Time("before", before).Msg("failed to prune sync logs")
		return 0, err
	}

	return res.RowsAffected()
}

func (q *queries) ListSyncLogs(ctx context.Context, limit int) ([]models.SyncLogRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectSyncLogsQuery(limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := q.tx.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "queries.ListSyncLogs").Msg("failed to query sync logs")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var logs []models.SyncLogRecord
	for rows.Next() {
		var (
			rec                          models.SyncLogRecord
			providerID                   sql.NullInt64
			providerType                 string
			flags                        int64
			start, end                   int64
			entries, conflicts, failures sql.NullString
		)
		if err = rows.Scan(&rec.ID, &providerID, &rec.Account, &providerType, &flags, &start, &end, &entries, &conflicts, &failures); err != nil {
			log.Err(err).Str("func", "queries.ListSyncLogs").Msg("failed to scan sync log row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}

		rec.ProviderID = providerID.Int64
		rec.ProviderType = models.ProviderType(providerType)
		rec.Flags = models.SyncLogFlags(flags)
		rec.StartTime = fromMillis(start)
		rec.EndTime = fromMillis(end)
		if rec.Entries, err = decodeLines(entries); err != nil {
			return nil, err
		}
		if rec.Conflicts, err = decodeLines(conflicts); err != nil {
			return nil, err
		}
		if rec.Failures, err = decodeLines(failures); err != nil {
			return nil, err
		}

		logs = append(logs, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return logs, nil
}

// encodeLines stores a list of log lines as a JSON array.
func encodeLines(lines []string) (string, error) {
	if len(lines) == 0 {
		return "", nil
	}
	data, err := json.Marshal(lines)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncodingLog, err)
	}
	return string(data), nil
}

func decodeLines(s sql.NullString) ([]string, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	var lines []string
	if err := json.Unmarshal([]byte(s.String), &lines); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return lines, nil
}
