package http

import (
	"time"

	"github.com/MKhiriev/go-pass-sync/internal/config"
	"github.com/MKhiriev/go-pass-sync/internal/logger"
	"github.com/MKhiriev/go-pass-sync/internal/service"
	"github.com/MKhiriev/go-pass-sync/models"
)

type Handler struct {
	services       *service.Services
	authToken      string
	requestTimeout time.Duration
	buildInfo      models.AppBuildInfo

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.Server, buildInfo models.AppBuildInfo, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		authToken:      cfg.AuthToken,
		requestTimeout: cfg.RequestTimeout,
		buildInfo:      buildInfo,
		logger:         logger,
	}
}
