package adapter

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-pass-sync/internal/utils"
	"github.com/MKhiriev/go-pass-sync/models"
)

type memoryObject struct {
	meta    models.RemoteFile
	content []byte
}

// MemoryClient is an in-process ProviderClient. It keeps objects in a map
// keyed by id and is safe for concurrent use. Tests seed it with Put and
// inspect it with Content.
type MemoryClient struct {
	mu sync.Mutex

	displayName string
	objects     map[string]memoryObject
	// aliases maps ids of re-keyed files to their current id.
	aliases map[string]string
	offline bool
	now     func() time.Time
}

// NewMemoryClient returns an empty in-memory provider.
func NewMemoryClient(displayName string) *MemoryClient {
	return &MemoryClient{
		displayName: displayName,
		objects:     make(map[string]memoryObject),
		aliases:     make(map[string]string),
		now:         time.Now,
	}
}

// SetOffline makes every call fail with ErrNotConnected.
func (c *MemoryClient) SetOffline(offline bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.offline = offline
}

// SetClock replaces the clock used to stamp uploads.
func (c *MemoryClient) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// Put stores content under id with the given modification time, bypassing
// the connectivity state.
func (c *MemoryClient) Put(id string, content []byte, mod time.Time) models.RemoteFile {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.put(id, content, mod)
}

// Content returns a copy of the stored content of id.
func (c *MemoryClient) Content(id string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	obj, ok := c.objects[remoteFileFromID(id).ID]
	if !ok {
		return nil, false
	}
	return bytes.Clone(obj.content), true
}

// Remove deletes id without going through Delete.
func (c *MemoryClient) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.objects, remoteFileFromID(id).ID)
}

// Rekey moves oldID to newID. GetMetadata of oldID keeps resolving to the
// moved file, the way some providers report a new id for an existing file.
func (c *MemoryClient) Rekey(oldID, newID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	oldID, newID = remoteFileFromID(oldID).ID, remoteFileFromID(newID).ID
	obj, ok := c.objects[oldID]
	if !ok {
		return
	}
	delete(c.objects, oldID)
	c.put(newID, obj.content, obj.meta.ModTime)
	c.aliases[oldID] = newID
}

func (c *MemoryClient) put(id string, content []byte, mod time.Time) models.RemoteFile {
	meta := remoteFileFromID(id)
	meta.ModTime = mod.Truncate(time.Millisecond)
	meta.Hash = utils.ContentHash(content)
	meta.Size = int64(len(content))

	c.objects[meta.ID] = memoryObject{meta: meta, content: bytes.Clone(content)}
	delete(c.aliases, meta.ID)
	return meta
}

func (c *MemoryClient) CheckConnectivity(_ context.Context) (models.ConnectivityResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.offline {
		return models.ConnectivityResult{}, ErrNotConnected
	}
	return models.ConnectivityResult{DisplayName: c.displayName}, nil
}

func (c *MemoryClient) ListChildren(_ context.Context, folderID string) ([]models.RemoteFile, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.offline {
		return nil, ErrNotConnected
	}

	folder := path.Clean(RootFolderID + strings.TrimPrefix(folderID, "/"))
	seenFolders := make(map[string]bool)

	var children []models.RemoteFile
	for id, obj := range c.objects {
		if obj.meta.Folder == folder {
			children = append(children, obj.meta)
			continue
		}

		rel, ok := strings.CutPrefix(id, strings.TrimSuffix(folder, "/")+"/")
		if !ok {
			continue
		}
		sub, _, _ := strings.Cut(rel, "/")
		if !seenFolders[sub] {
			seenFolders[sub] = true
			children = append(children, models.RemoteFile{
				ID:       path.Join(folder, sub),
				Title:    sub,
				Folder:   folder,
				IsFolder: true,
			})
		}
	}

	sort.Slice(children, func(i, j int) bool { return children[i].ID < children[j].ID })
	return children, nil
}

func (c *MemoryClient) GetMetadata(_ context.Context, id string) (models.RemoteFile, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.offline {
		return models.RemoteFile{}, ErrNotConnected
	}

	obj, ok := c.lookup(id)
	if !ok {
		return models.RemoteFile{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return obj.meta, nil
}

func (c *MemoryClient) UploadContent(_ context.Context, id string, content []byte) (models.RemoteFile, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.offline {
		return models.RemoteFile{}, ErrNotConnected
	}

	if obj, ok := c.lookup(id); ok {
		id = obj.meta.ID
	}
	return c.put(id, content, c.now()), nil
}

func (c *MemoryClient) DownloadContent(_ context.Context, id string) (io.ReadCloser, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.offline {
		return nil, ErrNotConnected
	}

	obj, ok := c.lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return io.NopCloser(bytes.NewReader(bytes.Clone(obj.content))), nil
}

func (c *MemoryClient) Delete(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.offline {
		return ErrNotConnected
	}

	obj, ok := c.lookup(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(c.objects, obj.meta.ID)
	return nil
}

func (c *MemoryClient) lookup(id string) (memoryObject, bool) {
	id = remoteFileFromID(id).ID
	if obj, ok := c.objects[id]; ok {
		return obj, true
	}
	if alias, ok := c.aliases[id]; ok {
		obj, found := c.objects[alias]
		return obj, found
	}
	return memoryObject{}, false
}
