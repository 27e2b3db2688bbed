// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// Default values applied before any other source.
const (
	DefaultDSN                    = "passsync.db"
	DefaultSessionTimeout         = 60 * time.Second
	DefaultLogRetention           = 14 * 24 * time.Hour
	DefaultSyncFrequency          = 15 * time.Minute
	DefaultFailureNotifyThreshold = 2
	DefaultSchedulerInterval      = time.Minute
	DefaultRequestTimeout         = 30 * time.Second
	DefaultRESTTimeout            = 15 * time.Second
)

// StructuredConfig is the top-level configuration of go-pass-sync. It is
// assembled from defaults, an optional JSON file, environment variables and
// command-line overrides.
//
// Struct tags:
//   - envPrefix: prefix applied to nested env lookups (caarlos0/env).
//   - env: environment variable name for scalar fields.
type StructuredConfig struct {
	// Storage configures the sync state database and the local content
	// directory.
	Storage Storage `envPrefix:"STORAGE_"`

	// Sync configures session timing, log retention and failure reporting.
	Sync Sync `envPrefix:"SYNC_"`

	// Server configures the HTTP trigger API.
	Server Server `envPrefix:"SERVER_"`

	// Providers holds credentials and endpoints of the provider backends.
	Providers Providers `envPrefix:"PROVIDERS_"`

	// LogFile, when set, redirects logs to a file instead of stdout.
	// Env: LOG_FILE
	LogFile string `env:"LOG_FILE"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Env: CONFIG
	JSONFilePath string `env:"CONFIG"`
}

// Storage groups the persistence settings.
type Storage struct {
	DB    DB    `envPrefix:"DB_"`
	Files Files `envPrefix:"FILES_"`
}

// DB holds the SQLite connection settings.
type DB struct {
	// DSN is the SQLite database file or URI.
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Files configures where local replicas are kept.
type Files struct {
	// LocalDir is the directory holding local file contents. An empty value
	// keeps contents in memory, which is only useful for tests and demos.
	// Env: STORAGE_FILES_LOCAL_DIR
	LocalDir string `env:"LOCAL_DIR"`
}

// Sync holds the session settings.
type Sync struct {
	// SessionTimeout bounds a single session (connect, reconcile and all
	// operations).
	// Env: SYNC_SESSION_TIMEOUT
	SessionTimeout time.Duration `env:"SESSION_TIMEOUT"`

	// LogRetention is how long sync logs are kept.
	// Env: SYNC_LOG_RETENTION
	LogRetention time.Duration `env:"LOG_RETENTION"`

	// DefaultFrequency is the sync frequency given to newly linked providers.
	// Env: SYNC_DEFAULT_FREQUENCY
	DefaultFrequency time.Duration `env:"DEFAULT_FREQUENCY"`

	// FailureNotifyThreshold is the number of consecutive failed sessions
	// after which observers are told about repeated failures.
	// Env: SYNC_FAILURE_NOTIFY_THRESHOLD
	FailureNotifyThreshold int `env:"FAILURE_NOTIFY_THRESHOLD"`

	// SchedulerInterval is how often the scheduler looks for providers that
	// are due for a session.
	// Env: SYNC_SCHEDULER_INTERVAL
	SchedulerInterval time.Duration `env:"SCHEDULER_INTERVAL"`
}

// Server holds the HTTP trigger API settings.
type Server struct {
	// HTTPAddress is the listen address in "host:port" form. Empty disables
	// the API.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single API request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// AuthToken, when set, must be sent as a bearer token with every API
	// request except the version endpoint.
	// Env: SERVER_AUTH_TOKEN
	AuthToken string `env:"AUTH_TOKEN"`
}

// Providers groups the backend settings.
type Providers struct {
	MinIO MinIO `envPrefix:"MINIO_"`
	S3    S3    `envPrefix:"S3_"`
	REST  REST  `envPrefix:"REST_"`
}

// MinIO configures the MinIO backend. A provider's account names the bucket
// and overrides Bucket when set.
type MinIO struct {
	Endpoint  string `env:"ENDPOINT" json:"endpoint"`
	AccessKey string `env:"ACCESS_KEY" json:"access_key"`
	SecretKey string `env:"SECRET_KEY" json:"secret_key"`
	Bucket    string `env:"BUCKET" json:"bucket"`
	Prefix    string `env:"PREFIX" json:"prefix"`
	UseSSL    bool   `env:"USE_SSL" json:"use_ssl"`
}

// S3 configures the AWS S3 backend. Endpoint is optional and allows
// S3-compatible services.
type S3 struct {
	Region       string `env:"REGION" json:"region"`
	Endpoint     string `env:"ENDPOINT" json:"endpoint"`
	AccessKey    string `env:"ACCESS_KEY" json:"access_key"`
	SecretKey    string `env:"SECRET_KEY" json:"secret_key"`
	Bucket       string `env:"BUCKET" json:"bucket"`
	Prefix       string `env:"PREFIX" json:"prefix"`
	UsePathStyle bool   `env:"USE_PATH_STYLE" json:"use_path_style"`
}

// REST configures the generic REST file-hosting backend.
type REST struct {
	BaseURL string        `env:"BASE_URL"`
	Token   string        `env:"TOKEN"`
	Timeout time.Duration `env:"TIMEOUT"`
}

// defaults returns the lowest-priority configuration layer.
func defaults() *StructuredConfig {
	return &StructuredConfig{
		Storage: Storage{DB: DB{DSN: DefaultDSN}},
		Sync: Sync{
			SessionTimeout:         DefaultSessionTimeout,
			LogRetention:           DefaultLogRetention,
			DefaultFrequency:       DefaultSyncFrequency,
			FailureNotifyThreshold: DefaultFailureNotifyThreshold,
			SchedulerInterval:      DefaultSchedulerInterval,
		},
		Server:    Server{RequestTimeout: DefaultRequestTimeout},
		Providers: Providers{REST: REST{Timeout: DefaultRESTTimeout}},
	}
}

// GetStructuredConfig loads, merges and validates the configuration.
// Sources in increasing priority:
//  1. defaults
//  2. JSON file (path taken from the env or the overrides)
//  3. environment variables
//  4. overrides, typically built from command-line flags
//
// overrides may be nil.
func GetStructuredConfig(overrides *StructuredConfig) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withOverrides(overrides).
		withJSON().
		build()
}
