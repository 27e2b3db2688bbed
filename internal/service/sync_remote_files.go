package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-pass-sync/internal/adapter"
	"github.com/MKhiriev/go-pass-sync/internal/logger"
	"github.com/MKhiriev/go-pass-sync/models"
)

// syncRemoteFiles is the remote state gathered for one session.
type syncRemoteFiles struct {
	// files holds the remote files by remote id.
	files map[string]models.RemoteFile
	// forNew holds, by file id, the remote file found at the derived path
	// of a file that was never uploaded or was added locally.
	forNew map[int64]models.RemoteFile
	// updatedRemoteIDs holds, by file id, the new remote id of files the
	// provider re-keyed.
	updatedRemoteIDs map[int64]string
}

func newSyncRemoteFiles() *syncRemoteFiles {
	return &syncRemoteFiles{
		files:            make(map[string]models.RemoteFile),
		forNew:           make(map[int64]models.RemoteFile),
		updatedRemoteIDs: make(map[int64]string),
	}
}

func (r *syncRemoteFiles) addRemoteFile(f models.RemoteFile) {
	r.files[f.ID] = f
}

// getSyncRemoteFiles lists the root folder of the provider and looks up
// every tracked file that the listing does not cover. A file missing on the
// provider is simply absent from the result.
func (e *syncEngine) getSyncRemoteFiles(ctx context.Context, client adapter.ProviderClient, files []models.SyncFile) (*syncRemoteFiles, error) {
	log := logger.FromContext(ctx)
	remote := newSyncRemoteFiles()

	listing, err := client.ListChildren(ctx, adapter.RootFolderID)
	if err != nil {
		log.Err(err).Str("func", "syncEngine.getSyncRemoteFiles").Msg("failed to list remote files")
		return nil, fmt.Errorf("error listing remote files: %w", err)
	}
	for _, rf := range listing {
		if !rf.IsFolder {
			remote.addRemoteFile(rf)
		}
	}

	for _, f := range files {
		if err = checkInterrupted(ctx); err != nil {
			return nil, err
		}

		switch {
		case f.RemoteID == "" || f.LocalChange == models.Added:
			if f.LocalDeleted {
				continue
			}
			id := f.RemoteID
			if id == "" {
				if f.LocalTitle == "" {
					continue
				}
				id = adapter.RemoteIDForTitle(f.LocalTitle)
			}

			rf, found, lookupErr := e.lookupRemoteFile(ctx, client, remote, id)
			if lookupErr != nil {
				return nil, lookupErr
			}
			if found {
				remote.forNew[f.ID] = rf
			}

		case f.RemoteChange != models.Removed:
			rf, found, lookupErr := e.lookupRemoteFile(ctx, client, remote, f.RemoteID)
			if lookupErr != nil {
				return nil, lookupErr
			}
			if !found {
				log.Debug().Int64("file_id", f.ID).Str("remote_id", f.RemoteID).Msg("remote file is gone")
				continue
			}
			if rf.ID != f.RemoteID {
				log.Info().Int64("file_id", f.ID).Str("remote_id", f.RemoteID).Str("new_remote_id", rf.ID).Msg("remote id changed")
				remote.updatedRemoteIDs[f.ID] = rf.ID
			}
			remote.addRemoteFile(rf)
		}
	}

	return remote, nil
}

// lookupRemoteFile returns the listed file with the id or asks the provider
// for it. found is false when the provider does not know the id.
func (e *syncEngine) lookupRemoteFile(ctx context.Context, client adapter.ProviderClient, remote *syncRemoteFiles, id string) (models.RemoteFile, bool, error) {
	if rf, ok := remote.files[id]; ok {
		return rf, true, nil
	}

	rf, err := client.GetMetadata(ctx, id)
	if errors.Is(err, adapter.ErrNotFound) {
		return models.RemoteFile{}, false, nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "syncEngine.lookupRemoteFile").Str("remote_id", id).Msg("failed to get remote metadata")
		return models.RemoteFile{}, false, fmt.Errorf("error getting remote file %s: %w", id, err)
	}
	if rf.IsFolder {
		return models.RemoteFile{}, false, nil
	}
	return rf, true, nil
}
