package store

import (
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-pass-sync/models"
)

const (
	providersTable = "providers"
	filesTable     = "files"
	syncLogsTable  = "sync_logs"
)

// returningProviderID lets single-row file mutations report whose counter
// to bump.
const returningProviderID = "RETURNING provider_id"

// psq renders SQLite style "?" placeholders.
var psq = sq.StatementBuilder.PlaceholderFormat(sq.Question)

var providerColumns = []string{
	"id",
	"type",
	"account",
	"display_name",
	"sync_freq",
	"last_success",
	"last_failure",
}

var fileColumns = []string{
	"id",
	"provider_id",
	"local_file",
	"local_title",
	"local_folder",
	"local_mod_date",
	"local_deleted",
	"local_change",
	"remote_id",
	"remote_title",
	"remote_folder",
	"remote_mod_date",
	"remote_hash",
	"remote_deleted",
	"remote_change",
}

var syncLogColumns = []string{
	"id",
	"provider_id",
	"account",
	"provider_type",
	"flags",
	"start_time",
	"end_time",
	"entries",
	"conflicts",
	"failures",
}

// ---- providers ----

func buildSelectProvidersQuery() (string, []any, error) {
	return psq.Select(providerColumns...).
		From(providersTable).
		OrderBy("id").
		ToSql()
}

func buildSelectProviderQuery(id int64) (string, []any, error) {
	return psq.Select(providerColumns...).
		From(providersTable).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func buildInsertProviderQuery(p models.Provider) (string, []any, error) {
	return psq.Insert(providersTable).
		Columns("type", "account", "display_name", "sync_freq").
		Values(string(p.Type), p.Account, nullString(p.DisplayName), int64(p.SyncFreq/time.Second)).
		ToSql()
}

func buildUpdateProviderQuery(id int64, set map[string]any) (string, []any, error) {
	return psq.Update(providersTable).
		SetMap(set).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func buildDeleteProviderQuery(id int64) (string, []any, error) {
	return psq.Delete(providersTable).
		Where(sq.Eq{"id": id}).
		ToSql()
}

// ---- files ----

func buildSelectFilesQuery(providerID int64) (string, []any, error) {
	return psq.Select(fileColumns...).
		From(filesTable).
		Where(sq.Eq{"provider_id": providerID}).
		OrderBy("id").
		ToSql()
}

func buildSelectFileQuery(id int64) (string, []any, error) {
	return psq.Select(fileColumns...).
		From(filesTable).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func buildInsertLocalFileQuery(providerID int64, title string, modDate time.Time) (string, []any, error) {
	return psq.Insert(filesTable).
		Columns("provider_id", "local_title", "local_mod_date", "local_change", "remote_mod_date").
		Values(providerID, title, toMillis(modDate), models.Added.String(), toMillis(time.Time{})).
		ToSql()
}

func buildInsertRemoteFileQuery(providerID int64, remote models.RemoteFile) (string, []any, error) {
	return psq.Insert(filesTable).
		Columns(
			"provider_id",
			"local_mod_date",
			"remote_id",
			"remote_title",
			"remote_folder",
			"remote_mod_date",
			"remote_hash",
			"remote_change",
		).
		Values(
			providerID,
			toMillis(time.Time{}),
			remote.ID,
			remote.Title,
			nullString(remote.Folder),
			toMillis(remote.ModTime),
			nullString(remote.Hash),
			models.Added.String(),
		).
		ToSql()
}

func buildUpdateFileQuery(id int64, set map[string]any) (string, []any, error) {
	return psq.Update(filesTable).
		SetMap(set).
		Where(sq.Eq{"id": id}).
		Suffix(returningProviderID).
		ToSql()
}

func buildDeleteFileQuery(id int64) (string, []any, error) {
	return psq.Delete(filesTable).
		Where(sq.Eq{"id": id}).
		Suffix(returningProviderID).
		ToSql()
}

// ---- sync logs ----

func buildInsertSyncLogQuery(rec models.SyncLogRecord, entries, conflicts, failures string) (string, []any, error) {
	return psq.Insert(syncLogsTable).
		Columns(syncLogColumns[1:]...).
		Values(
			rec.ProviderID,
			rec.Account,
			string(rec.ProviderType),
			int64(rec.Flags),
			toMillis(rec.StartTime),
			toMillis(rec.EndTime),
			entries,
			conflicts,
			failures,
		).
		ToSql()
}

func buildDeleteSyncLogsBeforeQuery(before time.Time) (string, []any, error) {
	return psq.Delete(syncLogsTable).
		Where(sq.Lt{"start_time": toMillis(before)}).
		ToSql()
}

func buildSelectSyncLogsQuery(limit int) (string, []any, error) {
	b := psq.Select(syncLogColumns...).
		From(syncLogsTable).
		OrderBy("start_time DESC", "id DESC")
	if limit > 0 {
		b = b.Limit(uint64(limit))
	}
	return b.ToSql()
}

// ---- conversions ----

// toMillis stores zero times as -1.
func toMillis(t time.Time) int64 {
	if t.IsZero() {
		return -1
	}
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	if ms < 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}

func fromNullMillis(ms sql.NullInt64) *time.Time {
	if !ms.Valid || ms.Int64 < 0 {
		return nil
	}
	t := fromMillis(ms.Int64)
	return &t
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
