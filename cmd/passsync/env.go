package main

import (
	"errors"
	"io"

	"github.com/urfave/cli/v2"

	"github.com/MKhiriev/go-pass-sync/internal/adapter"
	"github.com/MKhiriev/go-pass-sync/internal/config"
	"github.com/MKhiriev/go-pass-sync/internal/logger"
	"github.com/MKhiriev/go-pass-sync/internal/service"
	"github.com/MKhiriev/go-pass-sync/internal/store"
)

// appEnv is everything a command needs, built from the global flags.
type appEnv struct {
	cfg      *config.StructuredConfig
	log      *logger.Logger
	storages *store.Storages
	services *service.Services

	closers []io.Closer
}

func overridesFromFlags(c *cli.Context) *config.StructuredConfig {
	return &config.StructuredConfig{
		JSONFilePath: c.String("config"),
		LogFile:      c.String("log-file"),
		Storage: config.Storage{
			DB:    config.DB{DSN: c.String("db")},
			Files: config.Files{LocalDir: c.String("dir")},
		},
	}
}

// newAppEnv loads the configuration and opens the storages. Logs go to the
// configured file, or to stdout for the daemon; one-shot commands without a
// log file stay quiet so their output is readable.
func newAppEnv(c *cli.Context, role string, quiet bool, opts ...service.SessionOption) (*appEnv, error) {
	cfg, err := config.GetStructuredConfig(overridesFromFlags(c))
	if err != nil {
		return nil, err
	}

	env := &appEnv{cfg: cfg}

	switch {
	case cfg.LogFile != "":
		log, closer, err := logger.NewFileLogger(role, cfg.LogFile)
		if err != nil {
			return nil, err
		}
		env.log = log
		env.closers = append(env.closers, closer)
	case quiet:
		env.log = logger.Nop()
	default:
		env.log = logger.NewLogger(role)
	}

	env.log.Debug().Any("config", cfg).Msg("received configs")

	env.storages, err = store.NewStorages(c.Context, cfg.Storage, env.log)
	if err != nil {
		env.Close()
		return nil, err
	}
	env.closers = append(env.closers, env.storages)

	clients := adapter.NewFactory(cfg.Providers, env.log)
	env.services = service.NewServices(env.storages, clients, cfg.Sync, env.log, opts...)

	return env, nil
}

func (e *appEnv) Close() error {
	var errs []error
	for i := len(e.closers) - 1; i >= 0; i-- {
		errs = append(errs, e.closers[i].Close())
	}
	return errors.Join(errs...)
}

// withEnv wraps a command action with environment setup and teardown.
func withEnv(role string, quiet bool, action func(c *cli.Context, env *appEnv) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		env, err := newAppEnv(c, role, quiet)
		if err != nil {
			return err
		}
		defer env.Close()

		return action(c, env)
	}
}
