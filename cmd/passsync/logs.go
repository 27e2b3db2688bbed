package main

import (
	"github.com/urfave/cli/v2"
)

func logsCommand() *cli.Command {
	return &cli.Command{
		Name:  "logs",
		Usage: "Show the most recent sync logs",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Usage: "number of logs to show", Value: 10},
		},
		Action: withEnv("go-pass-sync-cli", true, func(c *cli.Context, env *appEnv) error {
			logs, err := env.services.SyncLogService.ListLogs(c.Context, c.Int("limit"))
			if err != nil {
				return err
			}
			for _, rec := range logs {
				printSyncLog(c.App.Writer, rec)
			}
			return nil
		}),
	}
}
