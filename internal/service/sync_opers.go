package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/MKhiriev/go-pass-sync/internal/adapter"
	"github.com/MKhiriev/go-pass-sync/internal/logger"
	"github.com/MKhiriev/go-pass-sync/internal/store"
	"github.com/MKhiriev/go-pass-sync/models"
)

// SyncOper is one repair action of a session. The session calls Do, then
// Commit in its own transaction if Do succeeded, and always Finish.
type SyncOper interface {
	File() models.SyncFile
	Description() string
	// Do performs the network side of the operation.
	Do(ctx context.Context, client adapter.ProviderClient) error
	// Commit records the outcome of a successful Do.
	Commit(ctx context.Context, q store.Queries) error
	// Finish releases the operation. committed is true when the Commit
	// transaction was committed.
	Finish(committed bool)
}

// LocalFileName is the content handle of a file record.
func LocalFileName(fileID int64) string {
	return fmt.Sprintf("syncfile-%d", fileID)
}

// ── upload ──────────────────────────────────────────────────────────────────

type uploadOper struct {
	file  models.SyncFile
	files store.LocalFileStorage

	remoteID string
	meta     models.RemoteFile
}

func newUploadOper(f models.SyncFile, files store.LocalFileStorage) *uploadOper {
	remoteID := f.RemoteID
	if remoteID == "" {
		remoteID = adapter.RemoteIDForTitle(f.LocalTitle)
	}
	return &uploadOper{file: f, files: files, remoteID: remoteID}
}

func (o *uploadOper) File() models.SyncFile { return o.file }

func (o *uploadOper) Description() string {
	return fmt.Sprintf("upload %s to %s", o.file.LocalTitle, o.remoteID)
}

func (o *uploadOper) Do(ctx context.Context, client adapter.ProviderClient) error {
	r, err := o.files.Open(o.file.LocalFile)
	if err != nil {
		return err
	}
	content, err := io.ReadAll(r)
	_ = r.Close()
	if err != nil {
		return fmt.Errorf("error reading local file %s: %w", o.file.LocalFile, err)
	}

	if err = checkInterrupted(ctx); err != nil {
		return err
	}

	o.meta, err = client.UploadContent(ctx, o.remoteID, content)
	if err != nil {
		return fmt.Errorf("error uploading %s: %w", o.remoteID, err)
	}
	return nil
}

func (o *uploadOper) Commit(ctx context.Context, q store.Queries) error {
	id := o.file.ID

	if err := q.UpdateRemoteFile(ctx, id, o.meta); err != nil {
		return err
	}
	if err := q.UpdateLocalFile(ctx, id, o.file.LocalFile, o.meta.Title, o.meta.Folder, o.meta.ModTime); err != nil {
		return err
	}
	if err := q.UpdateLocalFileChange(ctx, id, models.NoChange); err != nil {
		return err
	}
	if err := q.UpdateRemoteFileChange(ctx, id, models.NoChange); err != nil {
		return err
	}

	// the upload already happened, the record must follow it
	if err := o.files.SetModTime(o.file.LocalFile, o.meta.ModTime); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Int64("file_id", id).Msg("failed to stamp uploaded file")
	}
	return nil
}

func (o *uploadOper) Finish(bool) {}

// ── download ────────────────────────────────────────────────────────────────

type downloadOper struct {
	file  models.SyncFile
	files store.LocalFileStorage

	localFile string
	tmp       string
}

func newDownloadOper(f models.SyncFile, files store.LocalFileStorage) *downloadOper {
	return &downloadOper{file: f, files: files, localFile: LocalFileName(f.ID)}
}

func (o *downloadOper) File() models.SyncFile { return o.file }

func (o *downloadOper) Description() string {
	return fmt.Sprintf("download %s from %s", o.file.RemoteTitle, o.file.RemoteID)
}

// Do fetches the content into a temporary handle. The local replica is
// replaced only by Commit.
func (o *downloadOper) Do(ctx context.Context, client adapter.ProviderClient) error {
	rc, err := client.DownloadContent(ctx, o.file.RemoteID)
	if err != nil {
		return fmt.Errorf("error downloading %s: %w", o.file.RemoteID, err)
	}

	tmp, err := o.files.WriteTemp(rc)
	_ = rc.Close()
	if err != nil {
		return err
	}
	o.tmp = tmp

	return checkInterrupted(ctx)
}

func (o *downloadOper) Commit(ctx context.Context, q store.Queries) error {
	if o.tmp == "" {
		return nil
	}

	id := o.file.ID
	if err := q.UpdateLocalFile(ctx, id, o.localFile, o.file.RemoteTitle, o.file.RemoteFolder, o.file.RemoteModDate); err != nil {
		return err
	}
	if err := q.UpdateLocalFileChange(ctx, id, models.NoChange); err != nil {
		return err
	}
	if err := q.UpdateRemoteFileChange(ctx, id, models.NoChange); err != nil {
		return err
	}

	// last step, a failed rename rolls the record back
	if err := o.files.Rename(o.tmp, o.localFile); err != nil {
		return err
	}
	o.tmp = ""

	if err := o.files.SetModTime(o.localFile, o.file.RemoteModDate); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Int64("file_id", id).Msg("failed to stamp downloaded file")
	}
	return nil
}

// Finish drops content that was downloaded but never recorded.
func (o *downloadOper) Finish(bool) {
	if o.tmp != "" {
		_ = o.files.Remove(o.tmp)
		o.tmp = ""
	}
}

// ── remove ──────────────────────────────────────────────────────────────────

type removeOper struct {
	file  models.SyncFile
	files store.LocalFileStorage
}

func newRemoveOper(f models.SyncFile, files store.LocalFileStorage) *removeOper {
	return &removeOper{file: f, files: files}
}

func (o *removeOper) File() models.SyncFile { return o.file }

func (o *removeOper) Description() string {
	return fmt.Sprintf("remove %s", o.file.Title())
}

// Do deletes the remote file when the removal started locally. A remote file
// that is already gone counts as deleted.
func (o *removeOper) Do(ctx context.Context, client adapter.ProviderClient) error {
	if !o.file.LocalDeleted || o.file.RemoteID == "" || o.file.RemoteDeleted {
		return nil
	}

	err := client.Delete(ctx, o.file.RemoteID)
	if errors.Is(err, adapter.ErrNotFound) {
		logger.FromContext(ctx).Debug().Int64("file_id", o.file.ID).Str("remote_id", o.file.RemoteID).Msg("remote file already deleted")
		return nil
	}
	if err != nil {
		return fmt.Errorf("error deleting %s: %w", o.file.RemoteID, err)
	}
	return nil
}

func (o *removeOper) Commit(ctx context.Context, q store.Queries) error {
	return q.RemoveFile(ctx, o.file.ID)
}

// Finish deletes the local content once the record is gone.
func (o *removeOper) Finish(committed bool) {
	if committed {
		_ = o.files.Remove(o.file.LocalFile)
	}
}
