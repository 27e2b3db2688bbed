package adapter

import "errors"

var (
	ErrNotFound        = errors.New("remote file not found")
	ErrUnauthorized    = errors.New("provider unauthorized")
	ErrNotConnected    = errors.New("provider not connected")
	ErrUnsupportedType = errors.New("unsupported provider type")
	ErrInvalidConfig   = errors.New("invalid provider config")

	ErrBadRequest          = errors.New("bad request")
	ErrForbidden           = errors.New("forbidden")
	ErrConflict            = errors.New("conflict")
	ErrBadGateway          = errors.New("bad gateway")
	ErrInternalServerError = errors.New("internal server error")
)
