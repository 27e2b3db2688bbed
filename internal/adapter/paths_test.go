package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoteIDForTitle(t *testing.T) {
	assert.Equal(t, "/Vault.kdbx", RemoteIDForTitle("Vault.kdbx"))
	assert.Equal(t, "/vault.kdbx", RemoteIDForTitle("/vault.kdbx"))
}

func TestSplitRemoteID(t *testing.T) {
	tests := []struct {
		id         string
		wantFolder string
		wantTitle  string
	}{
		{"/a.kdbx", "/", "a.kdbx"},
		{"a.kdbx", "/", "a.kdbx"},
		{"/work/a.kdbx", "/work", "a.kdbx"},
		{"//work//a.kdbx", "/work", "a.kdbx"},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			folder, title := splitRemoteID(tt.id)
			assert.Equal(t, tt.wantFolder, folder)
			assert.Equal(t, tt.wantTitle, title)
		})
	}
}

func TestObjectKeyRoundTrip(t *testing.T) {
	tests := []struct {
		prefix string
		id     string
		key    string
	}{
		{"", "/a.kdbx", "a.kdbx"},
		{"vaults/", "/a.kdbx", "vaults/a.kdbx"},
		{"vaults/", "/work/a.kdbx", "vaults/work/a.kdbx"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.key, objectKey(tt.prefix, tt.id))
			assert.Equal(t, tt.id, remoteIDFromKey(tt.prefix, tt.key))
		})
	}
}

func TestNormalizePrefix(t *testing.T) {
	assert.Equal(t, "", normalizePrefix(""))
	assert.Equal(t, "", normalizePrefix("/"))
	assert.Equal(t, "vaults/", normalizePrefix("vaults"))
	assert.Equal(t, "vaults/", normalizePrefix("/vaults/"))
}

func TestListPrefix(t *testing.T) {
	assert.Equal(t, "", listPrefix("", RootFolderID))
	assert.Equal(t, "vaults/", listPrefix("vaults/", RootFolderID))
	assert.Equal(t, "vaults/work/", listPrefix("vaults/", "/work"))
	assert.Equal(t, "work/", listPrefix("", "/work/"))
}
