package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/MKhiriev/go-pass-sync/internal/logger"
	"github.com/MKhiriev/go-pass-sync/internal/store"
	"github.com/MKhiriev/go-pass-sync/internal/validators"
	"github.com/MKhiriev/go-pass-sync/models"
)

type localFileService struct {
	store     store.SyncStore
	files     store.LocalFileStorage
	validator validators.Validator
	now       func() time.Time

	logger *logger.Logger
}

func NewLocalFileService(db store.SyncStore, files store.LocalFileStorage, logger *logger.Logger) LocalFileService {
	return &localFileService{
		store:     db,
		files:     files,
		validator: validators.NewSyncDataValidator(),
		now:       time.Now,
		logger:    logger,
	}
}

// AddFile stores the content first under a temporary handle and moves it in
// place inside the transaction, so a failed insert leaves no content behind.
func (s *localFileService) AddFile(ctx context.Context, providerID int64, title string, content io.Reader) (models.SyncFile, error) {
	title = strings.TrimSpace(title)
	if err := s.validator.Validate(ctx, models.SyncFile{LocalTitle: title}, validators.FieldLocalTitle); err != nil {
		if errors.Is(err, validators.ErrEmptyTitle) {
			return models.SyncFile{}, ErrEmptyTitle
		}
		return models.SyncFile{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	tmp, err := s.files.WriteTemp(content)
	if err != nil {
		return models.SyncFile{}, err
	}

	modDate := s.now().UTC().Truncate(time.Millisecond)
	var file models.SyncFile
	err = s.store.WithTx(ctx, func(ctx context.Context, q store.Queries) error {
		if _, err := q.GetProvider(ctx, providerID); err != nil {
			return err
		}

		id, err := q.AddLocalFile(ctx, providerID, title, modDate)
		if err != nil {
			return err
		}

		name := LocalFileName(id)
		if err = q.UpdateLocalFile(ctx, id, name, title, "", modDate); err != nil {
			return err
		}
		if err = s.files.Rename(tmp, name); err != nil {
			return err
		}

		file, err = q.GetFile(ctx, id)
		return err
	})
	if err != nil {
		s.removeContent(tmp)
		return models.SyncFile{}, err
	}

	if err = s.files.SetModTime(file.LocalFile, modDate); err != nil {
		return models.SyncFile{}, err
	}
	return file, nil
}

func (s *localFileService) UpdateFile(ctx context.Context, fileID int64, content io.Reader) (models.SyncFile, error) {
	tmp, err := s.files.WriteTemp(content)
	if err != nil {
		return models.SyncFile{}, err
	}

	modDate := s.now().UTC().Truncate(time.Millisecond)
	var file models.SyncFile
	err = s.store.WithTx(ctx, func(ctx context.Context, q store.Queries) error {
		f, err := q.GetFile(ctx, fileID)
		if err != nil {
			return err
		}
		if f.LocalDeleted {
			return ErrFileRemoved
		}

		name := f.LocalFile
		if name == "" {
			name = LocalFileName(f.ID)
		}
		if err = q.UpdateLocalFile(ctx, f.ID, name, f.Title(), f.LocalFolder, modDate); err != nil {
			return err
		}
		// a file never synced stays Added
		if f.LocalChange != models.Added {
			if err = q.UpdateLocalFileChange(ctx, f.ID, models.Modified); err != nil {
				return err
			}
		}
		if err = s.files.Rename(tmp, name); err != nil {
			return err
		}

		file, err = q.GetFile(ctx, f.ID)
		return err
	})
	if err != nil {
		s.removeContent(tmp)
		return models.SyncFile{}, err
	}

	if err = s.files.SetModTime(file.LocalFile, modDate); err != nil {
		return models.SyncFile{}, err
	}
	return file, nil
}

func (s *localFileService) RemoveFile(ctx context.Context, fileID int64) error {
	var file models.SyncFile
	err := s.store.WithTx(ctx, func(ctx context.Context, q store.Queries) error {
		var err error
		if file, err = q.GetFile(ctx, fileID); err != nil {
			return err
		}
		if !file.HasRemote() {
			return q.RemoveFile(ctx, fileID)
		}
		return q.UpdateLocalFileDeleted(ctx, fileID)
	})
	if err != nil {
		return err
	}

	if file.LocalFile != "" {
		s.removeContent(file.LocalFile)
	}
	return nil
}

func (s *localFileService) ListFiles(ctx context.Context, providerID int64) ([]models.SyncFile, error) {
	var files []models.SyncFile
	err := s.store.WithTx(ctx, func(ctx context.Context, q store.Queries) error {
		var err error
		files, err = q.GetFiles(ctx, providerID)
		return err
	})
	return files, err
}

func (s *localFileService) OpenFile(ctx context.Context, fileID int64) (io.ReadCloser, error) {
	var file models.SyncFile
	err := s.store.WithTx(ctx, func(ctx context.Context, q store.Queries) error {
		var err error
		file, err = q.GetFile(ctx, fileID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if file.LocalDeleted {
		return nil, ErrFileRemoved
	}
	if file.LocalFile == "" {
		return nil, store.ErrLocalFileNotFound
	}

	return s.files.Open(file.LocalFile)
}

func (s *localFileService) removeContent(name string) {
	if err := s.files.Remove(name); err != nil {
		s.logger.Err(err).Str("func", "localFileService.removeContent").Str("name", name).Msg("failed to remove local file content")
	}
}
