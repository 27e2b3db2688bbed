package main

import (
	"github.com/urfave/cli/v2"

	"github.com/MKhiriev/go-pass-sync/models"
)

func syncCommand() *cli.Command {
	return &cli.Command{
		Name:  "sync",
		Usage: "Run a sync session now",
		Flags: []cli.Flag{
			&cli.Int64Flag{Name: "provider", Aliases: []string{"p"}, Usage: "provider id, all providers when omitted"},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "do not show progress"},
		},
		Action: withEnv("go-pass-sync-cli", true, func(c *cli.Context, env *appEnv) error {
			if !c.Bool("quiet") {
				env.services.Sessions.AddObserver(newProgressObserver(c.App.ErrWriter))
			}

			ids := []int64{c.Int64("provider")}
			if !c.IsSet("provider") {
				providers, err := env.services.AccountService.ListProviders(c.Context)
				if err != nil {
					return err
				}
				ids = ids[:0]
				for _, p := range providers {
					ids = append(ids, p.ID)
				}
			}

			var failed bool
			for _, id := range ids {
				rec, err := env.services.SyncJob.SyncNow(c.Context, id)
				if err != nil {
					return err
				}
				printSyncLog(c.App.Writer, *rec)
				failed = failed || len(rec.Failures) > 0 || rec.Flags&models.SyncLogNotConnected != 0
			}

			if failed {
				return cli.Exit("", 2)
			}
			return nil
		}),
	}
}
