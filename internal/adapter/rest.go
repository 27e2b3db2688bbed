package adapter

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-pass-sync/internal/config"
	"github.com/MKhiriev/go-pass-sync/internal/logger"
	"github.com/MKhiriev/go-pass-sync/internal/utils"
	"github.com/MKhiriev/go-pass-sync/models"
)

type restProviderClient struct {
	client *utils.HTTPClient

	token string
	now   func() time.Time

	logger *logger.Logger
}

type accountResponse struct {
	DisplayName string `json:"display_name"`
}

// NewRESTProviderClient constructs a ProviderClient for a generic REST
// file-hosting service. It normalises and validates cfg.BaseURL and configures
// the HTTP client with the resolved base URL and request timeout.
//
// The service is expected to expose:
//
//	GET    /api/account              account display name
//	GET    /api/files?folder=<id>    direct children of a folder
//	GET    /api/files/meta?id=<id>   metadata of one file
//	GET    /api/files/content?id=    file content
//	PUT    /api/files/content?id=    create or replace, returns metadata
//	DELETE /api/files?id=<id>        delete a file
//
// A non-empty account is sent as the X-Account header so one service can host
// several accounts.
func NewRESTProviderClient(cfg config.REST, account string, log *logger.Logger) (ProviderClient, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid rest base url: %w", ErrInvalidConfig, err)
	}

	client := utils.NewHTTPClient()
	client.
		SetBaseURL(baseURL).
		SetTimeout(cfg.Timeout)
	if account != "" {
		client.SetHeader("X-Account", account)
	}

	return &restProviderClient{
		client: client,
		token:  strings.TrimSpace(cfg.Token),
		now:    time.Now,
		logger: log,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// CheckConnectivity implements [ProviderClient]. A JWT token that is already
// expired is rejected with ErrUnauthorized without a round trip.
func (r *restProviderClient) CheckConnectivity(ctx context.Context) (models.ConnectivityResult, error) {
	if exp, ok := utils.TokenExpiry(r.token); ok && !exp.After(r.now()) {
		return models.ConnectivityResult{}, fmt.Errorf("%w: token expired at %s", ErrUnauthorized, exp.Format(time.RFC3339))
	}

	var account accountResponse
	resp, err := r.authedRequest(ctx).
		SetResult(&account).
		Get("/api/account")
	if err != nil {
		return models.ConnectivityResult{}, fmt.Errorf("%w: account request: %w", ErrNotConnected, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ConnectivityResult{}, err
	}

	return models.ConnectivityResult{DisplayName: account.DisplayName}, nil
}

func (r *restProviderClient) ListChildren(ctx context.Context, folderID string) ([]models.RemoteFile, error) {
	var files []models.RemoteFile
	resp, err := r.authedRequest(ctx).
		SetQueryParam("folder", folderID).
		SetResult(&files).
		Get("/api/files")
	if err != nil {
		return nil, fmt.Errorf("%w: list request: %w", ErrNotConnected, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return files, nil
}

func (r *restProviderClient) GetMetadata(ctx context.Context, id string) (models.RemoteFile, error) {
	var file models.RemoteFile
	resp, err := r.authedRequest(ctx).
		SetQueryParam("id", id).
		SetResult(&file).
		Get("/api/files/meta")
	if err != nil {
		return models.RemoteFile{}, fmt.Errorf("%w: metadata request: %w", ErrNotConnected, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.RemoteFile{}, err
	}

	return file, nil
}

func (r *restProviderClient) UploadContent(ctx context.Context, id string, content []byte) (models.RemoteFile, error) {
	var file models.RemoteFile
	resp, err := r.authedRequest(ctx).
		SetQueryParam("id", id).
		SetHeader("Content-Type", "application/octet-stream").
		SetBody(content).
		SetResult(&file).
		Put("/api/files/content")
	if err != nil {
		return models.RemoteFile{}, fmt.Errorf("%w: upload request: %w", ErrNotConnected, err)
	}
	if err = mapHTTPError(resp); err != nil {
		r.logger.Err(err).Str("func", "restProviderClient.UploadContent").Str("id", id).Msg("upload rejected")
		return models.RemoteFile{}, err
	}

	return file, nil
}

func (r *restProviderClient) DownloadContent(ctx context.Context, id string) (io.ReadCloser, error) {
	resp, err := r.authedRequest(ctx).
		SetQueryParam("id", id).
		SetDoNotParseResponse(true).
		Get("/api/files/content")
	if err != nil {
		return nil, fmt.Errorf("%w: download request: %w", ErrNotConnected, err)
	}

	if resp.IsError() {
		defer resp.RawBody().Close()
		return nil, mapHTTPError(resp)
	}
	return resp.RawBody(), nil
}

func (r *restProviderClient) Delete(ctx context.Context, id string) error {
	resp, err := r.authedRequest(ctx).
		SetQueryParam("id", id).
		Delete("/api/files")
	if err != nil {
		return fmt.Errorf("%w: delete request: %w", ErrNotConnected, err)
	}

	return mapHTTPError(resp)
}

func (r *restProviderClient) authedRequest(ctx context.Context) *resty.Request {
	req := r.client.R().SetContext(ctx)
	if r.token != "" {
		req.SetHeader("Authorization", "Bearer "+r.token)
	}
	return req
}
