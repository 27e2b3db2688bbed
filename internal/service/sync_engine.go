package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/MKhiriev/go-pass-sync/internal/adapter"
	"github.com/MKhiriev/go-pass-sync/internal/logger"
	"github.com/MKhiriev/go-pass-sync/internal/store"
	"github.com/MKhiriev/go-pass-sync/models"
)

const (
	conflictedLocalCopy = "conflicted local copy"
	recreatedLocalCopy  = "recreated local copy"

	conflictTimeLayout = "2006-01-02 15-04-05"
)

// dbSession runs the transactions of one sync session and remembers the
// provider's update count seen after each of them.
type dbSession struct {
	store       store.SyncStore
	providerID  int64
	updateCount int64
}

func newDBSession(s store.SyncStore, providerID int64) *dbSession {
	return &dbSession{store: s, providerID: providerID, updateCount: store.InvalidUpdateCount}
}

// useDB runs fn in a transaction. A checked transaction fails with
// ErrConcurrentModification when somebody else changed the provider's state
// since the previous transaction of the session.
func (s *dbSession) useDB(ctx context.Context, checked bool, fn func(ctx context.Context, q store.Queries) error) error {
	if err := checkInterrupted(ctx); err != nil {
		return err
	}
	defer func() {
		s.updateCount = s.store.UpdateCount(s.providerID)
	}()

	return s.store.WithTx(ctx, func(ctx context.Context, q store.Queries) error {
		if checked && !s.store.CheckUpdateCount(s.providerID, s.updateCount) {
			return ErrConcurrentModification
		}
		return fn(ctx, q)
	})
}

func checkInterrupted(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrSessionInterrupted, err)
	}
	return nil
}

// syncEngine reconciles the tracked files of a provider with the provider's
// remote state and produces the operations that repair the differences.
type syncEngine struct {
	files store.LocalFileStorage
	now   func() time.Time
}

func newSyncEngine(files store.LocalFileStorage, now func() time.Time) *syncEngine {
	return &syncEngine{files: files, now: now}
}

// Sync gathers local and remote state, merges the remote state into the
// store and returns the operations to run, in order. Conflicts are added to
// rec. Nothing of the merge is kept when an error is returned.
func (e *syncEngine) Sync(ctx context.Context, db *dbSession, client adapter.ProviderClient, provider models.Provider, conn models.ConnectivityResult, rec *models.SyncLogRecord) ([]SyncOper, error) {
	log := logger.FromContext(ctx)

	var files []models.SyncFile
	err := db.useDB(ctx, true, func(ctx context.Context, q store.Queries) error {
		if conn.DisplayName != provider.DisplayName {
			if err := q.UpdateProviderDisplayName(ctx, provider.ID, conn.DisplayName); err != nil {
				return err
			}
		}

		var err error
		files, err = q.GetFiles(ctx, provider.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	remote, err := e.getSyncRemoteFiles(ctx, client, files)
	if err != nil {
		return nil, err
	}

	var (
		opers   []SyncOper
		pending models.SyncLogRecord
	)
	err = db.useDB(ctx, true, func(ctx context.Context, q store.Queries) error {
		pending = models.SyncLogRecord{}
		if err := e.updateDBFiles(ctx, q, provider.ID, remote); err != nil {
			return err
		}

		var err error
		opers, err = e.resolveSyncOpers(ctx, q, provider.ID, &pending)
		return err
	})
	if err != nil {
		log.Err(err).Str("func", "syncEngine.Sync").Msg("failed to reconcile files")
		return nil, err
	}

	rec.Entries = append(rec.Entries, pending.Entries...)
	rec.Conflicts = append(rec.Conflicts, pending.Conflicts...)

	log.Info().Int("files", len(files)).Int("remote_files", len(remote.files)).Int("opers", len(opers)).Msg("reconciled")
	return opers, nil
}

// updateDBFiles merges the remote state into the file records.
func (e *syncEngine) updateDBFiles(ctx context.Context, q store.Queries, providerID int64, remote *syncRemoteFiles) error {
	if len(remote.updatedRemoteIDs) > 0 {
		ids := make([]int64, 0, len(remote.updatedRemoteIDs))
		for id := range remote.updatedRemoteIDs {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

		for _, id := range ids {
			f, err := q.GetFile(ctx, id)
			if errors.Is(err, store.ErrFileNotFound) {
				continue
			}
			if err != nil {
				return err
			}

			err = q.UpdateRemoteFile(ctx, id, models.RemoteFile{
				ID:      remote.updatedRemoteIDs[id],
				Title:   f.RemoteTitle,
				Folder:  f.RemoteFolder,
				ModTime: f.RemoteModDate,
				Hash:    f.RemoteHash,
			})
			if err != nil {
				return err
			}
		}
	}

	files, err := q.GetFiles(ctx, providerID)
	if err != nil {
		return err
	}

	processed := make(map[string]bool)
	for _, f := range files {
		if f.RemoteID == "" || f.LocalChange == models.Added {
			rf, ok := remote.forNew[f.ID]
			if !ok {
				continue
			}
			if err = q.UpdateRemoteFile(ctx, f.ID, rf); err != nil {
				return err
			}
			if err = q.UpdateRemoteFileChange(ctx, f.ID, models.Added); err != nil {
				return err
			}
			processed[rf.ID] = true
			continue
		}

		rf, ok := remote.files[f.RemoteID]
		if !ok {
			if err = q.UpdateRemoteFileDeleted(ctx, f.ID); err != nil {
				return err
			}
			continue
		}
		if err = e.checkRemoteFileChange(ctx, q, f, rf); err != nil {
			return err
		}
		processed[f.RemoteID] = true
	}

	ids := make([]string, 0, len(remote.files))
	for id := range remote.files {
		if !processed[id] {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	for _, id := range ids {
		if _, err = q.AddRemoteFile(ctx, providerID, remote.files[id]); err != nil {
			return err
		}
	}

	return nil
}

// checkRemoteFileChange stores changed remote metadata and marks the remote
// side modified. A record whose local content is missing counts as changed,
// unless it was deleted locally, so the content is downloaded again.
func (e *syncEngine) checkRemoteFileChange(ctx context.Context, q store.Queries, f models.SyncFile, rf models.RemoteFile) error {
	changed := f.RemoteTitle != rf.Title ||
		f.RemoteFolder != rf.Folder ||
		!f.RemoteModDate.Equal(rf.ModTime.Truncate(time.Millisecond)) ||
		f.RemoteHash != rf.Hash ||
		(!f.LocalDeleted && !e.files.Exists(f.LocalFile))
	if !changed {
		return nil
	}

	logger.FromContext(ctx).Debug().Int64("file_id", f.ID).Str("remote_id", f.RemoteID).Msg("remote file changed")

	if err := q.UpdateRemoteFile(ctx, f.ID, models.RemoteFile{
		ID:      f.RemoteID,
		Title:   rf.Title,
		Folder:  rf.Folder,
		ModTime: rf.ModTime,
		Hash:    rf.Hash,
	}); err != nil {
		return err
	}

	switch f.RemoteChange {
	case models.NoChange, models.Removed:
		return q.UpdateRemoteFileChange(ctx, f.ID, models.Modified)
	}
	return nil
}

// resolveSyncOpers decides the operation of every file of the provider.
func (e *syncEngine) resolveSyncOpers(ctx context.Context, q store.Queries, providerID int64, rec *models.SyncLogRecord) ([]SyncOper, error) {
	files, err := q.GetFiles(ctx, providerID)
	if err != nil {
		return nil, err
	}

	var opers []SyncOper
	for _, f := range files {
		action := decideSyncAction(f.LocalChange, f.RemoteChange)
		if action != actionNone {
			logger.FromContext(ctx).Debug().Int64("file_id", f.ID).Stringer("action", action).Str("file", f.String()).Msg("resolved")
		}
		if action.isConflict() {
			logConflictFile(rec, f, action != actionConflictSplitRemoved)
		}

		switch action {
		case actionUpload:
			opers = append(opers, newUploadOper(f, e.files))

		case actionDownload:
			opers = append(opers, newDownloadOper(f, e.files))

		case actionRemove:
			opers = append(opers, newRemoveOper(f, e.files))

		case actionConflictSplit:
			newRemote, err := e.splitRemoteToNewFile(ctx, q, f)
			if err != nil {
				return nil, err
			}
			updatedLocal, err := e.updateFileAsLocallyAdded(ctx, q, f, conflictedLocalCopy)
			if err != nil {
				return nil, err
			}
			opers = append(opers, newDownloadOper(newRemote, e.files), newUploadOper(updatedLocal, e.files))

		case actionConflictRecreate:
			if err = q.ResetRemoteFields(ctx, f.ID); err != nil {
				return nil, err
			}
			updatedLocal, err := e.updateFileAsLocallyAdded(ctx, q, f, recreatedLocalCopy)
			if err != nil {
				return nil, err
			}
			opers = append(opers, newUploadOper(updatedLocal, e.files))

		case actionConflictSplitRemoved:
			newRemote, err := e.splitRemoteToNewFile(ctx, q, f)
			if err != nil {
				return nil, err
			}
			updatedLocal, err := q.GetFile(ctx, f.ID)
			if err != nil {
				return nil, err
			}
			opers = append(opers, newDownloadOper(newRemote, e.files), newRemoveOper(updatedLocal, e.files))
		}
	}

	return opers, nil
}

// splitRemoteToNewFile moves the remote side of f into a new record and
// clears the remote side of f.
func (e *syncEngine) splitRemoteToNewFile(ctx context.Context, q store.Queries, f models.SyncFile) (models.SyncFile, error) {
	newID, err := q.AddRemoteFile(ctx, f.ProviderID, models.RemoteFile{
		ID:      f.RemoteID,
		Title:   f.RemoteTitle,
		Folder:  f.RemoteFolder,
		ModTime: f.RemoteModDate,
		Hash:    f.RemoteHash,
	})
	if err != nil {
		return models.SyncFile{}, err
	}

	newFile, err := q.GetFile(ctx, newID)
	if err != nil {
		return models.SyncFile{}, err
	}

	if err = q.ResetRemoteFields(ctx, f.ID); err != nil {
		return models.SyncFile{}, err
	}
	return newFile, nil
}

// updateFileAsLocallyAdded retitles f so it is uploaded as a new remote
// file.
func (e *syncEngine) updateFileAsLocallyAdded(ctx context.Context, q store.Queries, f models.SyncFile, titlePrefix string) (models.SyncFile, error) {
	title := fmt.Sprintf("%s (%s) - %s", titlePrefix, e.now().Format(conflictTimeLayout), f.LocalTitle)

	if err := q.UpdateLocalFile(ctx, f.ID, f.LocalFile, title, "", f.LocalModDate); err != nil {
		return models.SyncFile{}, err
	}
	if err := q.UpdateLocalFileChange(ctx, f.ID, models.Added); err != nil {
		return models.SyncFile{}, err
	}
	return q.GetFile(ctx, f.ID)
}

func logConflictFile(rec *models.SyncLogRecord, f models.SyncFile, localName bool) {
	name := titleAndFolder(f.RemoteTitle, f.RemoteFolder)
	if localName {
		name = titleAndFolder(f.LocalTitle, f.LocalFolder)
	}

	rec.AddConflictFile(name)
	rec.AddEntry("conflict %s local:%s remote:%s", name, f.LocalChange, f.RemoteChange)
}

func titleAndFolder(title, folder string) string {
	if folder == "" || folder == adapter.RootFolderID {
		return title
	}
	return fmt.Sprintf("%s (%s)", title, folder)
}
