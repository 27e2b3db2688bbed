package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk JSON layout of the configuration.
// Durations are written as strings such as "30s" or "336h".
type StructuredJSONConfig struct {
	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
		Files struct {
			LocalDir string `json:"local_dir"`
		} `json:"files,omitempty"`
	} `json:"storage,omitempty"`

	Sync struct {
		SessionTimeout         Duration `json:"session_timeout"`
		LogRetention           Duration `json:"log_retention"`
		DefaultFrequency       Duration `json:"default_frequency"`
		FailureNotifyThreshold int      `json:"failure_notify_threshold"`
		SchedulerInterval      Duration `json:"scheduler_interval"`
	} `json:"sync,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
		AuthToken      string   `json:"auth_token"`
	} `json:"server,omitempty"`

	Providers struct {
		MinIO MinIO `json:"minio,omitempty"`
		S3    S3    `json:"s3,omitempty"`
		REST  struct {
			BaseURL string   `json:"base_url"`
			Token   string   `json:"token"`
			Timeout Duration `json:"timeout"`
		} `json:"rest,omitempty"`
	} `json:"providers,omitempty"`

	LogFile string `json:"log_file"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		Storage: Storage{
			DB:    DB{DSN: jsonCfg.Storage.DB.DSN},
			Files: Files{LocalDir: jsonCfg.Storage.Files.LocalDir},
		},
		Sync: Sync{
			SessionTimeout:         time.Duration(jsonCfg.Sync.SessionTimeout),
			LogRetention:           time.Duration(jsonCfg.Sync.LogRetention),
			DefaultFrequency:       time.Duration(jsonCfg.Sync.DefaultFrequency),
			FailureNotifyThreshold: jsonCfg.Sync.FailureNotifyThreshold,
			SchedulerInterval:      time.Duration(jsonCfg.Sync.SchedulerInterval),
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
			AuthToken:      jsonCfg.Server.AuthToken,
		},
		Providers: Providers{
			MinIO: jsonCfg.Providers.MinIO,
			S3:    jsonCfg.Providers.S3,
			REST: REST{
				BaseURL: jsonCfg.Providers.REST.BaseURL,
				Token:   jsonCfg.Providers.REST.Token,
				Timeout: time.Duration(jsonCfg.Providers.REST.Timeout),
			},
		},
		LogFile: jsonCfg.LogFile,
	}

	return cfg, nil
}

// Duration is a time.Duration that unmarshals from JSON strings like "1h" as
// well as from nanosecond numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
