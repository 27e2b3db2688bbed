// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
)

// parseEnv builds the environment layer from environ, a variable name to
// value map. Fields are mapped via the `env` and `envPrefix` tags of
// [StructuredConfig]; unset variables leave zero values so the layer does not
// mask lower ones when merged.
func parseEnv(environ map[string]string) (*StructuredConfig, error) {
	cfg, err := env.ParseAsWithOptions[StructuredConfig](env.Options{Environment: environ})
	if err != nil {
		return nil, fmt.Errorf("error getting env configs: %w", err)
	}

	return &cfg, nil
}

// processEnv returns the environment of the running process.
func processEnv() map[string]string {
	return env.ToMap(os.Environ())
}
