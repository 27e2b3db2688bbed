package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-pass-sync/internal/logger"
	"github.com/MKhiriev/go-pass-sync/models"
)

func scanFile(row rowScanner) (models.SyncFile, error) {
	var (
		f             models.SyncFile
		localFile     sql.NullString
		localTitle    sql.NullString
		localFolder   sql.NullString
		localModDate  int64
		remoteID      sql.NullString
		remoteTitle   sql.NullString
		remoteFolder  sql.NullString
		remoteModDate int64
		remoteHash    sql.NullString
	)

	err := row.Scan(
		&f.ID,
		&f.ProviderID,
		&localFile,
		&localTitle,
		&localFolder,
		&localModDate,
		&f.LocalDeleted,
		&f.LocalChange,
		&remoteID,
		&remoteTitle,
		&remoteFolder,
		&remoteModDate,
		&remoteHash,
		&f.RemoteDeleted,
		&f.RemoteChange,
	)
	if err != nil {
		return models.SyncFile{}, err
	}

	f.LocalFile = localFile.String
	f.LocalTitle = localTitle.String
	f.LocalFolder = localFolder.String
	f.LocalModDate = fromMillis(localModDate)
	f.RemoteID = remoteID.String
	f.RemoteTitle = remoteTitle.String
	f.RemoteFolder = remoteFolder.String
	f.RemoteModDate = fromMillis(remoteModDate)
	f.RemoteHash = remoteHash.String
	return f, nil
}

func (q *queries) GetFile(ctx context.Context, id int64) (models.SyncFile, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectFileQuery(id)
	if err != nil {
		return models.SyncFile{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	f, err := scanFile(q.tx.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.SyncFile{}, fmt.Errorf("%w: id=%d", ErrFileNotFound, id)
	}
	if err != nil {
		log.Err(err).Str("func", "queries.GetFile").Int64("file_id", id).Msg("failed to scan file row")
		return models.SyncFile{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return f, nil
}

func (q *queries) GetFiles(ctx context.Context, providerID int64) ([]models.SyncFile, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectFilesQuery(providerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := q.tx.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "queries.GetFiles").Int64("provider_id", providerID).Msg("failed to query files")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var files []models.SyncFile
	for rows.Next() {
		f, scanErr := scanFile(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "queries.GetFiles").Int64("provider_id", providerID).Msg("failed to scan file row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		files = append(files, f)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return files, nil
}

func (q *queries) AddLocalFile(ctx context.Context, providerID int64, title string, modDate time.Time) (int64, error) {
	query, args, err := buildInsertLocalFileQuery(providerID, title, modDate)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := q.exec(ctx, providerID, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "queries.AddLocalFile").
			Int64("provider_id", providerID).
			Str("title", title).
			Msg("failed to insert local file")
		return 0, err
	}

	return res.LastInsertId()
}

func (q *queries) AddRemoteFile(ctx context.Context, providerID int64, remote models.RemoteFile) (int64, error) {
	query, args, err := buildInsertRemoteFileQuery(providerID, remote)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := q.exec(ctx, providerID, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "queries.AddRemoteFile").
			Int64("provider_id", providerID).
			Str("remote_id", remote.ID).
			Msg("failed to insert remote file")
		return 0, err
	}

	return res.LastInsertId()
}

func (q *queries) UpdateLocalFile(ctx context.Context, id int64, localFile, title, folder string, modDate time.Time) error {
	return q.updateFile(ctx, "queries.UpdateLocalFile", id, map[string]any{
		"local_file":     nullString(localFile),
		"local_title":    nullString(title),
		"local_folder":   nullString(folder),
		"local_mod_date": toMillis(modDate),
	})
}

func (q *queries) UpdateLocalFileChange(ctx context.Context, id int64, change models.FileChange) error {
	return q.updateFile(ctx, "queries.UpdateLocalFileChange", id, map[string]any{
		"local_change": change.String(),
	})
}

func (q *queries) UpdateLocalFileDeleted(ctx context.Context, id int64) error {
	return q.updateFile(ctx, "queries.UpdateLocalFileDeleted", id, map[string]any{
		"local_deleted": true,
		"local_change":  models.Removed.String(),
	})
}

func (q *queries) UpdateRemoteFile(ctx context.Context, id int64, remote models.RemoteFile) error {
	return q.updateFile(ctx, "queries.UpdateRemoteFile", id, map[string]any{
		"remote_id":       nullString(remote.ID),
		"remote_title":    nullString(remote.Title),
		"remote_folder":   nullString(remote.Folder),
		"remote_mod_date": toMillis(remote.ModTime),
		"remote_hash":     nullString(remote.Hash),
	})
}

func (q *queries) UpdateRemoteFileChange(ctx context.Context, id int64, change models.FileChange) error {
	set := map[string]any{"remote_change": change.String()}
	switch change {
	case models.Removed:
		set["remote_deleted"] = true
	case models.Added, models.Modified:
		set["remote_deleted"] = false
	}
	return q.updateFile(ctx, "queries.UpdateRemoteFileChange", id, set)
}

func (q *queries) UpdateRemoteFileDeleted(ctx context.Context, id int64) error {
	return q.updateFile(ctx, "queries.UpdateRemoteFileDeleted", id, map[string]any{
		"remote_deleted": true,
		"remote_change":  models.Removed.String(),
	})
}

func (q *queries) ResetRemoteFields(ctx context.Context, id int64) error {
	return q.updateFile(ctx, "queries.ResetRemoteFields", id, map[string]any{
		"remote_id":       nil,
		"remote_title":    nil,
		"remote_folder":   nil,
		"remote_mod_date": toMillis(time.Time{}),
		"remote_hash":     nil,
		"remote_deleted":  false,
		"remote_change":   models.NoChange.String(),
	})
}

func (q *queries) RemoveFile(ctx context.Context, id int64) error {
	query, args, err := buildDeleteFileQuery(id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err = q.execFile(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "queries.RemoveFile").Int64("file_id", id).Msg("failed to delete file")
		return err
	}

	return nil
}

func (q *queries) updateFile(ctx context.Context, fn string, id int64, set map[string]any) error {
	query, args, err := buildUpdateFileQuery(id, set)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err = q.execFile(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", fn).Int64("file_id", id).Msg("failed to update file")
		return err
	}

	return nil
}
