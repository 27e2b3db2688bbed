package validators

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-pass-sync/models"
)

// Field names accepted by SyncDataValidator.
const (
	FieldProviderID   = "provider_id"
	FieldProviderType = "type"
	FieldAccount      = "account"
	FieldSyncFreq     = "sync_freq"
	FieldLocalTitle   = "local_title"
)

// SyncDataValidator validates providers and local file registrations.
type SyncDataValidator struct {
}

func NewSyncDataValidator() Validator {
	return &SyncDataValidator{}
}

func (v *SyncDataValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Provider:
		return v.validateProvider(ctx, value, fields...)
	case *models.Provider:
		return v.validateProvider(ctx, *value, fields...)

	case models.SyncFile:
		return v.validateSyncFile(ctx, value, fields...)
	case *models.SyncFile:
		return v.validateSyncFile(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *SyncDataValidator) validateProvider(_ context.Context, p models.Provider, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldProviderType, FieldAccount, FieldSyncFreq}
	}

	for _, f := range fields {
		switch f {
		case FieldProviderID:
			if p.ID <= 0 {
				return ErrInvalidProviderID
			}
		case FieldProviderType:
			if !p.Type.Valid() {
				return ErrInvalidProviderType
			}
		case FieldAccount:
			if strings.TrimSpace(p.Account) == "" {
				return ErrEmptyAccount
			}
		case FieldSyncFreq:
			if p.SyncFreq <= 0 {
				return ErrInvalidSyncFreq
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *SyncDataValidator) validateSyncFile(_ context.Context, f models.SyncFile, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldProviderID, FieldLocalTitle}
	}

	for _, field := range fields {
		switch field {
		case FieldProviderID:
			if f.ProviderID <= 0 {
				return ErrInvalidProviderID
			}
		case FieldLocalTitle:
			title := strings.TrimSpace(f.LocalTitle)
			if title == "" {
				return ErrEmptyTitle
			}
			// files live in the provider's root folder only
			if strings.ContainsAny(title, `/\`) {
				return ErrInvalidTitle
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
