package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/MKhiriev/go-pass-sync/models"
)

func providerCommand() *cli.Command {
	return &cli.Command{
		Name:  "provider",
		Usage: "Manage linked provider accounts",
		Subcommands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Link a provider account",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "type", Usage: "minio, s3, rest or memory", Required: true},
					&cli.StringFlag{Name: "account", Usage: "account or bucket name", Required: true},
				},
				Action: withEnv("go-pass-sync-cli", true, func(c *cli.Context, env *appEnv) error {
					typ, err := models.ParseProviderType(c.String("type"))
					if err != nil {
						return err
					}

					p, err := env.services.AccountService.AddProvider(c.Context, typ, c.String("account"))
					if err != nil {
						return err
					}

					fmt.Fprintf(c.App.Writer, "Provider %d (%s %s) linked\n", p.ID, p.Type, p.Account)
					return nil
				}),
			},
			{
				Name:  "list",
				Usage: "List linked providers",
				Action: withEnv("go-pass-sync-cli", true, func(c *cli.Context, env *appEnv) error {
					providers, err := env.services.AccountService.ListProviders(c.Context)
					if err != nil {
						return err
					}
					return printProviders(c.App.Writer, providers)
				}),
			},
			{
				Name:      "remove",
				Usage:     "Unlink a provider and delete its local files",
				ArgsUsage: "<id>",
				Action: withEnv("go-pass-sync-cli", true, func(c *cli.Context, env *appEnv) error {
					id, err := idArg(c)
					if err != nil {
						return err
					}
					if err = env.services.AccountService.RemoveProvider(c.Context, id); err != nil {
						return err
					}

					fmt.Fprintf(c.App.Writer, "Provider %d removed\n", id)
					return nil
				}),
			},
			{
				Name:      "freq",
				Usage:     "Set how often a provider is synced",
				ArgsUsage: "<id>",
				Flags: []cli.Flag{
					&cli.DurationFlag{Name: "every", Usage: "sync frequency, e.g. 30m", Required: true},
				},
				Action: withEnv("go-pass-sync-cli", true, func(c *cli.Context, env *appEnv) error {
					id, err := idArg(c)
					if err != nil {
						return err
					}
					return env.services.AccountService.SetSyncFrequency(c.Context, id, c.Duration("every"))
				}),
			},
		},
	}
}
