package adapter

import (
	"path"
	"strings"
	"time"

	"github.com/MKhiriev/go-pass-sync/models"
)

// RootFolderID is the id of the top-level folder of every bundled backend.
const RootFolderID = "/"

// RemoteIDForTitle derives the remote id a never-uploaded file is stored
// under. The title keeps its case.
func RemoteIDForTitle(title string) string {
	return RootFolderID + strings.TrimLeft(title, "/")
}

// splitRemoteID returns the folder and base name of a path-like id.
func splitRemoteID(id string) (folder, title string) {
	clean := path.Clean(RootFolderID + strings.TrimPrefix(id, "/"))
	return path.Dir(clean), path.Base(clean)
}

// remoteFileFromID fills the id-derived fields of a RemoteFile.
func remoteFileFromID(id string) models.RemoteFile {
	folder, title := splitRemoteID(id)
	return models.RemoteFile{ID: path.Join(folder, title), Title: title, Folder: folder}
}

// normalizePrefix makes a key prefix end with a single slash.
func normalizePrefix(prefix string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return ""
	}
	return prefix + "/"
}

// objectKey maps a remote id to an object-store key under prefix.
func objectKey(prefix, id string) string {
	return prefix + strings.TrimPrefix(id, "/")
}

// remoteIDFromKey is the inverse of objectKey.
func remoteIDFromKey(prefix, key string) string {
	return RootFolderID + strings.TrimPrefix(key, prefix)
}

// listPrefix is the key prefix of the direct children of folderID.
func listPrefix(prefix, folderID string) string {
	p := objectKey(prefix, folderID)
	if p != "" && !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return p
}

// objectModTime truncates an object timestamp to whole seconds in UTC.
// Object listings report milliseconds while HEAD/Stat responses carry the
// second-precision Last-Modified header; both must compare equal.
func objectModTime(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC().Truncate(time.Second)
}
