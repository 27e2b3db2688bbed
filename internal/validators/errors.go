package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidProviderID   = errors.New("invalid provider ID")
	ErrInvalidProviderType = errors.New("invalid provider type")
	ErrEmptyAccount        = errors.New("account is required")
	ErrInvalidSyncFreq     = errors.New("sync frequency must be positive")
	ErrEmptyTitle          = errors.New("file title is empty")
	ErrInvalidTitle        = errors.New("file title must not contain path separators")
)
