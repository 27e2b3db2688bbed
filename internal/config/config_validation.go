// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net"
)

// validate checks the merged configuration before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: empty database DSN", ErrInvalidStorageConfigs)
	}

	if cfg.Sync.SessionTimeout <= 0 {
		return fmt.Errorf("%w: session timeout must be positive", ErrInvalidSyncConfigs)
	}
	if cfg.Sync.LogRetention <= 0 {
		return fmt.Errorf("%w: log retention must be positive", ErrInvalidSyncConfigs)
	}
	if cfg.Sync.DefaultFrequency <= 0 {
		return fmt.Errorf("%w: default frequency must be positive", ErrInvalidSyncConfigs)
	}
	if cfg.Sync.FailureNotifyThreshold < 1 {
		return fmt.Errorf("%w: failure notify threshold must be at least 1", ErrInvalidSyncConfigs)
	}
	if cfg.Sync.SchedulerInterval <= 0 {
		return fmt.Errorf("%w: scheduler interval must be positive", ErrInvalidSyncConfigs)
	}

	if cfg.Server.HTTPAddress != "" {
		if _, _, err := net.SplitHostPort(cfg.Server.HTTPAddress); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidServerConfigs, err)
		}
	}

	return nil
}
