package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pass-sync/internal/logger"
	"github.com/MKhiriev/go-pass-sync/models"
)

func newTestDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return NewDB(conn, logger.Nop()), mock
}

func testContext() context.Context {
	l := zerolog.Nop()
	return l.WithContext(context.Background())
}

func providerIDRows(id int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"provider_id"}).AddRow(id)
}

func TestWithTx_CommitBumpsCounter(t *testing.T) {
	db, mock := newTestDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE files SET remote_change = ?, remote_deleted = ? WHERE id = ? RETURNING provider_id")).
		WithArgs("removed", true, int64(5)).
		WillReturnRows(providerIDRows(3))
	mock.ExpectCommit()

	err := db.WithTx(testContext(), func(ctx context.Context, q Queries) error {
		return q.UpdateRemoteFileChange(ctx, 5, models.Removed)
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, db.UpdateCount(3))
	assert.Zero(t, db.UpdateCount(4), "other providers are untouched")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateFile_MissingRowIsNoop(t *testing.T) {
	db, mock := newTestDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE files SET local_change = ? WHERE id = ? RETURNING provider_id")).
		WithArgs("modified", int64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"provider_id"}))
	mock.ExpectCommit()

	err := db.WithTx(testContext(), func(ctx context.Context, q Queries) error {
		return q.UpdateLocalFileChange(ctx, 404, models.Modified)
	})
	require.NoError(t, err)
	assert.Zero(t, db.UpdateCount(0))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_RollbackOnError(t *testing.T) {
	db, mock := newTestDB(t)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := db.WithTx(testContext(), func(ctx context.Context, q Queries) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_RollbackOnPanic(t *testing.T) {
	db, mock := newTestDB(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.Panics(t, func() {
		_ = db.WithTx(testContext(), func(ctx context.Context, q Queries) error {
			panic("unexpected")
		})
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_BeginError(t *testing.T) {
	db, mock := newTestDB(t)
	mock.ExpectBegin().WillReturnError(sql.ErrConnDone)

	err := db.WithTx(testContext(), func(ctx context.Context, q Queries) error { return nil })
	assert.ErrorIs(t, err, ErrBeginningTransaction)
}

func TestWithTx_CommitError(t *testing.T) {
	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(sql.ErrTxDone)

	err := db.WithTx(testContext(), func(ctx context.Context, q Queries) error { return nil })
	assert.ErrorIs(t, err, ErrCommitingTransaction)
}

func TestUpdateRemoteFileChange_DeletedFlag(t *testing.T) {
	tests := []struct {
		name   string
		change models.FileChange
		query  string
		args   []driver.Value
	}{
		{
			name:   "removed sets deleted",
			change: models.Removed,
			query:  "UPDATE files SET remote_change = ?, remote_deleted = ? WHERE id = ? RETURNING provider_id",
			args:   []driver.Value{"removed", true, int64(1)},
		},
		{
			name:   "modified clears deleted",
			change: models.Modified,
			query:  "UPDATE files SET remote_change = ?, remote_deleted = ? WHERE id = ? RETURNING provider_id",
			args:   []driver.Value{"modified", false, int64(1)},
		},
		{
			name:   "no change keeps deleted",
			change: models.NoChange,
			query:  "UPDATE files SET remote_change = ? WHERE id = ? RETURNING provider_id",
			args:   []driver.Value{"no_change", int64(1)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newTestDB(t)

			mock.ExpectBegin()
			mock.ExpectQuery(regexp.QuoteMeta(tt.query)).WithArgs(tt.args...).WillReturnRows(providerIDRows(2))
			mock.ExpectCommit()

			err := db.WithTx(testContext(), func(ctx context.Context, q Queries) error {
				return q.UpdateRemoteFileChange(ctx, 1, tt.change)
			})
			require.NoError(t, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGetFile_NotFound(t *testing.T) {
	db, mock := newTestDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM files WHERE id = ?").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(fileColumns))
	mock.ExpectRollback()

	err := db.WithTx(testContext(), func(ctx context.Context, q Queries) error {
		_, err := q.GetFile(ctx, 99)
		return err
	})
	assert.ErrorIs(t, err, ErrFileNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetFiles_ScansRows(t *testing.T) {
	db, mock := newTestDB(t)

	rows := sqlmock.NewRows(fileColumns).
		AddRow(1, 2, "syncfile-1", "a.psafe3", nil, int64(1000), false, "no_change",
			"/a.psafe3", "a.psafe3", nil, int64(2000), "h1", false, "modified").
		AddRow(2, 2, nil, nil, nil, int64(-1), false, "no_change",
			"/b.psafe3", "b.psafe3", "/", int64(3000), nil, false, "added")

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM files WHERE provider_id = ?").
		WithArgs(int64(2)).
		WillReturnRows(rows)
	mock.ExpectCommit()

	var files []models.SyncFile
	err := db.WithTx(testContext(), func(ctx context.Context, q Queries) error {
		var err error
		files, err = q.GetFiles(ctx, 2)
		return err
	})
	require.NoError(t, err)
	require.Len(t, files, 2)

	assert.Equal(t, "syncfile-1", files[0].LocalFile)
	assert.Equal(t, models.Modified, files[0].RemoteChange)
	assert.EqualValues(t, 2000, files[0].RemoteModDate.UnixMilli())

	assert.Empty(t, files[1].LocalFile)
	assert.True(t, files[1].LocalModDate.IsZero())
	assert.Equal(t, models.Added, files[1].RemoteChange)
	assert.Equal(t, "/", files[1].RemoteFolder)
}

func TestExecError_DoesNotBumpCounter(t *testing.T) {
	db, mock := newTestDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery("DELETE FROM files").WillReturnError(errors.New("disk I/O error"))
	mock.ExpectRollback()

	err := db.WithTx(testContext(), func(ctx context.Context, q Queries) error {
		return q.RemoveFile(ctx, 1)
	})
	assert.ErrorIs(t, err, ErrExecutingQuery)
	assert.Zero(t, db.UpdateCount(1))
}
