package adapter

import (
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
)

// listing отдаёт миллисекунды, Stat/HEAD только целые секунды
var (
	listedModTime = time.Date(2026, 3, 1, 10, 20, 5, 123_000_000, time.UTC)
	statModTime   = time.Date(2026, 3, 1, 10, 20, 5, 0, time.UTC)
)

func TestObjectModTime(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{name: "milliseconds dropped", in: listedModTime, want: statModTime},
		{name: "whole seconds kept", in: statModTime, want: statModTime},
		{name: "converted to utc", in: listedModTime.In(time.FixedZone("MSK", 3*60*60)), want: statModTime},
		{name: "zero stays zero", in: time.Time{}, want: time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := objectModTime(tt.in)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}
}

func TestMinIORemoteFile_ListingMatchesStat(t *testing.T) {
	m := &minioProviderClient{prefix: "vaults/"}

	listed := m.remoteFile(minio.ObjectInfo{Key: "vaults/notes.psafe3", LastModified: listedModTime, ETag: `"abc"`, Size: 3})
	stat := m.remoteFile(minio.ObjectInfo{Key: "vaults/notes.psafe3", LastModified: statModTime, ETag: `"abc"`, Size: 3})

	assert.Equal(t, "/notes.psafe3", listed.ID)
	assert.Equal(t, "abc", listed.Hash)
	assert.True(t, listed.ModTime.Equal(stat.ModTime))
}

func TestS3RemoteFile_ListingMatchesHead(t *testing.T) {
	listed := s3RemoteFile("/notes.psafe3", aws.Time(listedModTime), aws.String(`"abc"`), aws.Int64(3))
	head := s3RemoteFile("/notes.psafe3", aws.Time(statModTime), aws.String(`"abc"`), aws.Int64(3))

	assert.Equal(t, "notes.psafe3", listed.Title)
	assert.EqualValues(t, 3, listed.Size)
	assert.True(t, listed.ModTime.Equal(head.ModTime))

	empty := s3RemoteFile("/x", nil, nil, nil)
	assert.True(t, empty.ModTime.IsZero())
}
