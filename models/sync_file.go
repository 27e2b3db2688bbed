// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// FileChange is the change observed on one side of a file since the last
// successful sync.
type FileChange int

// File change states. The zero value is NoChange.
const (
	NoChange FileChange = iota
	Added
	Modified
	Removed
)

var fileChangeNames = [...]string{
	NoChange: "no_change",
	Added:    "added",
	Modified: "modified",
	Removed:  "removed",
}

func (c FileChange) String() string {
	if c < NoChange || c > Removed {
		return fmt.Sprintf("FileChange(%d)", int(c))
	}
	return fileChangeNames[c]
}

// ParseFileChange is the inverse of FileChange.String.
func ParseFileChange(s string) (FileChange, error) {
	for i, name := range fileChangeNames {
		if name == s {
			return FileChange(i), nil
		}
	}
	return NoChange, fmt.Errorf("unknown file change %q", s)
}

// Value stores the change by name.
func (c FileChange) Value() (driver.Value, error) {
	return c.String(), nil
}

// Scan reads a change stored by Value. NULL reads as NoChange.
func (c *FileChange) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*c = NoChange
		return nil
	case string:
		parsed, err := ParseFileChange(v)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	case []byte:
		return c.Scan(string(v))
	default:
		return fmt.Errorf("cannot scan %T into FileChange", src)
	}
}

// SyncFile is the sync state of one password database tracked for a
// provider. The local side describes the replica on this device, the remote
// side the object last seen at the provider.
//
// An empty RemoteID means the file has never been associated with a remote
// object. LocalDeleted and RemoteDeleted always agree with the matching
// change being Removed.
type SyncFile struct {
	ID         int64 `json:"id"`
	ProviderID int64 `json:"provider_id"`

	LocalFile    string     `json:"local_file,omitempty"`
	LocalTitle   string     `json:"local_title"`
	LocalFolder  string     `json:"local_folder,omitempty"`
	LocalModDate time.Time  `json:"local_mod_date"`
	LocalDeleted bool       `json:"local_deleted"`
	LocalChange  FileChange `json:"local_change"`

	RemoteID      string     `json:"remote_id,omitempty"`
	RemoteTitle   string     `json:"remote_title,omitempty"`
	RemoteFolder  string     `json:"remote_folder,omitempty"`
	RemoteModDate time.Time  `json:"remote_mod_date"`
	RemoteHash    string     `json:"remote_hash,omitempty"`
	RemoteDeleted bool       `json:"remote_deleted"`
	RemoteChange  FileChange `json:"remote_change"`
}

// HasRemote reports whether the file is linked to a remote object.
func (f SyncFile) HasRemote() bool {
	return f.RemoteID != ""
}

// Title returns the local title, falling back to the remote one for files
// that only exist remotely.
func (f SyncFile) Title() string {
	if f.LocalTitle != "" {
		return f.LocalTitle
	}
	return f.RemoteTitle
}

func (f SyncFile) String() string {
	return fmt.Sprintf("{id:%d, local:{title:%q, file:%q, mod:%s, del:%t, change:%s}, remote:{id:%q, title:%q, mod:%s, hash:%q, del:%t, change:%s}}",
		f.ID,
		f.LocalTitle, f.LocalFile, formatModDate(f.LocalModDate), f.LocalDeleted, f.LocalChange,
		f.RemoteID, f.RemoteTitle, formatModDate(f.RemoteModDate), f.RemoteHash, f.RemoteDeleted, f.RemoteChange)
}

func formatModDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(time.RFC3339)
}
