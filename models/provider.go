// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"time"
)

// ProviderType names the remote file-hosting backend a provider record is
// linked to.
type ProviderType string

// Supported provider backends.
const (
	ProviderTypeMinIO  ProviderType = "minio"
	ProviderTypeS3     ProviderType = "s3"
	ProviderTypeREST   ProviderType = "rest"
	ProviderTypeMemory ProviderType = "memory"
)

// Valid reports whether t is one of the known provider types.
func (t ProviderType) Valid() bool {
	switch t {
	case ProviderTypeMinIO, ProviderTypeS3, ProviderTypeREST, ProviderTypeMemory:
		return true
	default:
		return false
	}
}

// ParseProviderType converts s into a ProviderType, rejecting unknown names.
func ParseProviderType(s string) (ProviderType, error) {
	t := ProviderType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown provider type %q", s)
	}
	return t, nil
}

// Provider is a linked remote account. Deleting a provider removes every
// file record that belongs to it.
type Provider struct {
	ID          int64         `json:"id"`
	Type        ProviderType  `json:"type"`
	Account     string        `json:"account"`
	DisplayName string        `json:"display_name,omitempty"`
	SyncFreq    time.Duration `json:"sync_freq"`
	LastSuccess *time.Time    `json:"last_success,omitempty"`
	LastFailure *time.Time    `json:"last_failure,omitempty"`
}

// Name returns the display name when known, otherwise the account.
func (p Provider) Name() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.Account
}
