package adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/MKhiriev/go-pass-sync/internal/config"
	"github.com/MKhiriev/go-pass-sync/internal/logger"
	"github.com/MKhiriev/go-pass-sync/models"
)

type minioProviderClient struct {
	client   *minio.Client
	endpoint string
	bucket   string
	prefix   string

	logger *logger.Logger
}

// NewMinIOProviderClient builds a ProviderClient on top of a MinIO bucket.
// A non-empty account overrides cfg.Bucket.
func NewMinIOProviderClient(cfg config.MinIO, account string, log *logger.Logger) (ProviderClient, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("%w: minio endpoint is empty", ErrInvalidConfig)
	}

	bucket := cfg.Bucket
	if account != "" {
		bucket = account
	}
	if bucket == "" {
		return nil, fmt.Errorf("%w: minio bucket is empty", ErrInvalidConfig)
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return &minioProviderClient{
		client:   client,
		endpoint: cfg.Endpoint,
		bucket:   bucket,
		prefix:   normalizePrefix(cfg.Prefix),
		logger:   log,
	}, nil
}

func (m *minioProviderClient) CheckConnectivity(ctx context.Context) (models.ConnectivityResult, error) {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return models.ConnectivityResult{}, m.mapError(err, m.bucket)
	}
	if !exists {
		return models.ConnectivityResult{}, fmt.Errorf("%w: bucket %s", ErrNotFound, m.bucket)
	}

	return models.ConnectivityResult{DisplayName: m.bucket + "@" + m.endpoint}, nil
}

func (m *minioProviderClient) ListChildren(ctx context.Context, folderID string) ([]models.RemoteFile, error) {
	prefix := listPrefix(m.prefix, folderID)

	var children []models.RemoteFile
	for obj := range m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{Prefix: prefix}) {
		if obj.Err != nil {
			return nil, m.mapError(obj.Err, folderID)
		}
		if obj.Key == prefix {
			continue
		}

		if strings.HasSuffix(obj.Key, "/") {
			f := remoteFileFromID(remoteIDFromKey(m.prefix, strings.TrimSuffix(obj.Key, "/")))
			f.IsFolder = true
			children = append(children, f)
			continue
		}
		children = append(children, m.remoteFile(obj))
	}

	return children, nil
}

func (m *minioProviderClient) GetMetadata(ctx context.Context, id string) (models.RemoteFile, error) {
	info, err := m.client.StatObject(ctx, m.bucket, objectKey(m.prefix, id), minio.StatObjectOptions{})
	if err != nil {
		return models.RemoteFile{}, m.mapError(err, id)
	}
	return m.remoteFile(info), nil
}

func (m *minioProviderClient) UploadContent(ctx context.Context, id string, content []byte) (models.RemoteFile, error) {
	key := objectKey(m.prefix, id)

	_, err := m.client.PutObject(ctx, m.bucket, key, bytes.NewReader(content), int64(len(content)),
		minio.PutObjectOptions{ContentType: "application/octet-stream"})
	if err != nil {
		m.logger.Err(err).Str("func", "minioProviderClient.UploadContent").Str("key", key).Msg("failed to put object")
		return models.RemoteFile{}, m.mapError(err, id)
	}

	return m.GetMetadata(ctx, id)
}

func (m *minioProviderClient) DownloadContent(ctx context.Context, id string) (io.ReadCloser, error) {
	obj, err := m.client.GetObject(ctx, m.bucket, objectKey(m.prefix, id), minio.GetObjectOptions{})
	if err != nil {
		return nil, m.mapError(err, id)
	}

	// GetObject is lazy, Stat surfaces a missing key
	if _, err = obj.Stat(); err != nil {
		_ = obj.Close()
		return nil, m.mapError(err, id)
	}
	return obj, nil
}

func (m *minioProviderClient) Delete(ctx context.Context, id string) error {
	key := objectKey(m.prefix, id)

	// RemoveObject succeeds for missing keys
	if _, err := m.client.StatObject(ctx, m.bucket, key, minio.StatObjectOptions{}); err != nil {
		return m.mapError(err, id)
	}
	if err := m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return m.mapError(err, id)
	}
	return nil
}

func (m *minioProviderClient) remoteFile(info minio.ObjectInfo) models.RemoteFile {
	f := remoteFileFromID(remoteIDFromKey(m.prefix, info.Key))
	f.ModTime = objectModTime(info.LastModified)
	f.Hash = strings.Trim(info.ETag, `"`)
	f.Size = info.Size
	return f
}

func (m *minioProviderClient) mapError(err error, id string) error {
	resp := minio.ToErrorResponse(err)
	switch resp.Code {
	case "NoSuchKey", "NoSuchBucket", "NotFound":
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
		return fmt.Errorf("%w: %s", ErrUnauthorized, resp.Message)
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrUnauthorized, resp.Message)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %w", ErrNotConnected, err)
	}
	return fmt.Errorf("minio: %w", err)
}
