package adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/MKhiriev/go-pass-sync/internal/config"
	"github.com/MKhiriev/go-pass-sync/internal/logger"
	"github.com/MKhiriev/go-pass-sync/models"
)

const defaultS3Region = "us-east-1"

type s3ProviderClient struct {
	client *s3.Client
	bucket string
	prefix string

	logger *logger.Logger
}

// NewS3ProviderClient builds a ProviderClient on top of an S3 bucket. A
// non-empty account overrides cfg.Bucket. Static credentials are used when
// configured, otherwise the default AWS credential chain applies.
func NewS3ProviderClient(ctx context.Context, cfg config.S3, account string, log *logger.Logger) (ProviderClient, error) {
	bucket := cfg.Bucket
	if account != "" {
		bucket = account
	}
	if bucket == "" {
		return nil, fmt.Errorf("%w: s3 bucket is empty", ErrInvalidConfig)
	}

	region := cfg.Region
	if region == "" {
		region = defaultS3Region
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return &s3ProviderClient{
		client: client,
		bucket: bucket,
		prefix: normalizePrefix(cfg.Prefix),
		logger: log,
	}, nil
}

func (c *s3ProviderClient) CheckConnectivity(ctx context.Context) (models.ConnectivityResult, error) {
	if _, err := c.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(c.bucket)}); err != nil {
		return models.ConnectivityResult{}, c.mapError(err, c.bucket)
	}
	return models.ConnectivityResult{DisplayName: "s3://" + c.bucket}, nil
}

func (c *s3ProviderClient) ListChildren(ctx context.Context, folderID string) ([]models.RemoteFile, error) {
	prefix := listPrefix(c.prefix, folderID)

	paginator := s3.NewListObjectsV2Paginator(c.client, &s3.ListObjectsV2Input{
		Bucket:    aws.String(c.bucket),
		Prefix:    aws.String(prefix),
		Delimiter: aws.String("/"),
	})

	var children []models.RemoteFile
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, c.mapError(err, folderID)
		}

		for _, p := range page.CommonPrefixes {
			f := remoteFileFromID(remoteIDFromKey(c.prefix, strings.TrimSuffix(aws.ToString(p.Prefix), "/")))
			f.IsFolder = true
			children = append(children, f)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if key == prefix {
				continue
			}
			children = append(children, s3RemoteFile(remoteIDFromKey(c.prefix, key), obj.LastModified, obj.ETag, obj.Size))
		}
	}

	return children, nil
}

func (c *s3ProviderClient) GetMetadata(ctx context.Context, id string) (models.RemoteFile, error) {
	out, err := c.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(objectKey(c.prefix, id)),
	})
	if err != nil {
		return models.RemoteFile{}, c.mapError(err, id)
	}

	return s3RemoteFile(id, out.LastModified, out.ETag, out.ContentLength), nil
}

func s3RemoteFile(id string, modified *time.Time, etag *string, size *int64) models.RemoteFile {
	f := remoteFileFromID(id)
	f.ModTime = objectModTime(aws.ToTime(modified))
	f.Hash = strings.Trim(aws.ToString(etag), `"`)
	f.Size = aws.ToInt64(size)
	return f
}

func (c *s3ProviderClient) UploadContent(ctx context.Context, id string, content []byte) (models.RemoteFile, error) {
	key := objectKey(c.prefix, id)

	_, err := c.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(content),
		ContentLength: aws.Int64(int64(len(content))),
		ContentType:   aws.String("application/octet-stream"),
	})
	if err != nil {
		c.logger.Err(err).Str("func", "s3ProviderClient.UploadContent").Str("key", key).Msg("failed to put object")
		return models.RemoteFile{}, c.mapError(err, id)
	}

	return c.GetMetadata(ctx, id)
}

func (c *s3ProviderClient) DownloadContent(ctx context.Context, id string) (io.ReadCloser, error) {
	out, err := c.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(objectKey(c.prefix, id)),
	})
	if err != nil {
		return nil, c.mapError(err, id)
	}
	return out.Body, nil
}

func (c *s3ProviderClient) Delete(ctx context.Context, id string) error {
	// DeleteObject succeeds for missing keys
	if _, err := c.GetMetadata(ctx, id); err != nil {
		return err
	}

	_, err := c.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(objectKey(c.prefix, id)),
	})
	if err != nil {
		return c.mapError(err, id)
	}
	return nil
}

func (c *s3ProviderClient) mapError(err error, id string) error {
	var (
		notFound     *types.NotFound
		noSuchKey    *types.NoSuchKey
		noSuchBucket *types.NoSuchBucket
	)
	if errors.As(err, &notFound) || errors.As(err, &noSuchKey) || errors.As(err, &noSuchBucket) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchKey", "NoSuchBucket":
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		case "AccessDenied", "Forbidden", "InvalidAccessKeyId", "SignatureDoesNotMatch", "ExpiredToken":
			return fmt.Errorf("%w: %s", ErrUnauthorized, apiErr.ErrorMessage())
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %w", ErrNotConnected, err)
	}
	return fmt.Errorf("s3: %w", err)
}
