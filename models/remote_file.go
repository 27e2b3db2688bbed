package models

import "time"

// RemoteFile is the metadata a provider reports for one remote object.
type RemoteFile struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Folder   string    `json:"folder,omitempty"`
	ModTime  time.Time `json:"mod_time"`
	Hash     string    `json:"hash,omitempty"`
	Size     int64     `json:"size"`
	IsFolder bool      `json:"is_folder,omitempty"`
}

// ConnectivityResult is returned by a successful connectivity check.
type ConnectivityResult struct {
	DisplayName string
}
