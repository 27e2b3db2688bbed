package main

import (
	"github.com/urfave/cli/v2"

	"github.com/MKhiriev/go-pass-sync/internal/handler"
	"github.com/MKhiriev/go-pass-sync/internal/server"
	"github.com/MKhiriev/go-pass-sync/internal/workers"
	"github.com/MKhiriev/go-pass-sync/models"
)

func serveCommand(buildInfo models.AppBuildInfo) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the sync scheduler and the HTTP trigger API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "address", Aliases: []string{"a"}, Usage: "API listen address, empty disables the API"},
		},
		Action: withEnv("go-pass-sync", false, func(c *cli.Context, env *appEnv) error {
			printBuildInfo(c.App.Writer, buildInfo)

			cfg := env.cfg.Server
			if c.IsSet("address") {
				cfg.HTTPAddress = c.String("address")
			}

			var handlers *handler.Handlers
			if cfg.HTTPAddress != "" {
				var err error
				handlers, err = handler.NewHandlers(env.services, cfg, buildInfo, env.log)
				if err != nil {
					return err
				}
			}

			srv, err := server.NewServer(handlers, workers.NewWorkers(env.services.SyncJob), cfg, env.log)
			if err != nil {
				return err
			}

			srv.RunServer()
			return nil
		}),
	}
}
