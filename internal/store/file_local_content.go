package store

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/MKhiriev/go-pass-sync/internal/config"
)

const tempFilePrefix = "syncfile-tmp-"

// localFileStorage keeps local replica contents on a billy filesystem.
// Modification times set through SetModTime are also remembered in memory,
// because not every billy backend persists them.
type localFileStorage struct {
	fs billy.Filesystem

	mu       sync.Mutex
	modTimes map[string]time.Time
}

// NewLocalFileStorage returns a LocalFileStorage rooted at cfg.LocalDir, or
// an in-memory one when the directory is empty.
func NewLocalFileStorage(cfg config.Files) (LocalFileStorage, error) {
	if cfg.LocalDir == "" {
		return NewLocalFileStorageFS(memfs.New()), nil
	}

	if err := os.MkdirAll(cfg.LocalDir, 0o700); err != nil {
		return nil, fmt.Errorf("error creating local files directory: %w", err)
	}
	return NewLocalFileStorageFS(osfs.New(cfg.LocalDir)), nil
}

// NewLocalFileStorageFS wraps an existing billy filesystem.
func NewLocalFileStorageFS(fs billy.Filesystem) LocalFileStorage {
	return &localFileStorage{
		fs:       fs,
		modTimes: make(map[string]time.Time),
	}
}

func (s *localFileStorage) Exists(name string) bool {
	if name == "" {
		return false
	}
	_, err := s.fs.Stat(name)
	return err == nil
}

func (s *localFileStorage) Open(name string) (io.ReadCloser, error) {
	f, err := s.fs.Open(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrLocalFileNotFound, name)
		}
		return nil, fmt.Errorf("error opening local file %s: %w", name, err)
	}
	return f, nil
}

func (s *localFileStorage) Write(name string, r io.Reader) error {
	tmp, err := s.WriteTemp(r)
	if err != nil {
		return err
	}
	return s.Rename(tmp, name)
}

func (s *localFileStorage) WriteTemp(r io.Reader) (string, error) {
	f, err := s.fs.TempFile("", tempFilePrefix)
	if err != nil {
		return "", fmt.Errorf("error creating temp file: %w", err)
	}
	name := f.Name()

	if _, err = io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = s.fs.Remove(name)
		return "", fmt.Errorf("error writing temp file: %w", err)
	}
	if err = f.Close(); err != nil {
		_ = s.fs.Remove(name)
		return "", fmt.Errorf("error closing temp file: %w", err)
	}

	return name, nil
}

func (s *localFileStorage) Rename(tmp, name string) error {
	err := s.fs.Rename(tmp, name)
	if err != nil && s.Exists(name) {
		// some backends refuse to rename over an existing file
		if rmErr := s.fs.Remove(name); rmErr == nil {
			err = s.fs.Rename(tmp, name)
		}
	}
	if err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("error renaming %s to %s: %w", tmp, name, err)
	}

	s.mu.Lock()
	delete(s.modTimes, name)
	delete(s.modTimes, tmp)
	s.mu.Unlock()
	return nil
}

func (s *localFileStorage) Remove(name string) error {
	if name == "" {
		return nil
	}

	s.mu.Lock()
	delete(s.modTimes, name)
	s.mu.Unlock()

	if err := s.fs.Remove(name); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("error removing local file %s: %w", name, err)
	}
	return nil
}

func (s *localFileStorage) SetModTime(name string, t time.Time) error {
	if !s.Exists(name) {
		return fmt.Errorf("%w: %s", ErrLocalFileNotFound, name)
	}

	if ch, ok := s.fs.(billy.Change); ok {
		if err := ch.Chtimes(name, t, t); err != nil {
			return fmt.Errorf("error setting mod time of %s: %w", name, err)
		}
	}

	s.mu.Lock()
	s.modTimes[name] = t
	s.mu.Unlock()
	return nil
}

func (s *localFileStorage) ModTime(name string) (time.Time, error) {
	s.mu.Lock()
	t, ok := s.modTimes[name]
	s.mu.Unlock()
	if ok {
		return t, nil
	}

	fi, err := s.fs.Stat(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return time.Time{}, fmt.Errorf("%w: %s", ErrLocalFileNotFound, name)
		}
		return time.Time{}, err
	}
	return fi.ModTime(), nil
}
