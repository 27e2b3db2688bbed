package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"
)

func fileCommand() *cli.Command {
	return &cli.Command{
		Name:  "file",
		Usage: "Manage local password database files",
		Subcommands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Register a local file for syncing",
				ArgsUsage: "<path>",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "provider", Aliases: []string{"p"}, Usage: "provider id", Required: true},
					&cli.StringFlag{Name: "title", Usage: "file title, defaults to the file name"},
				},
				Action: withEnv("go-pass-sync-cli", true, func(c *cli.Context, env *appEnv) error {
					path := c.Args().First()
					if path == "" {
						return cli.Exit("a file path is required", 1)
					}
					title := c.String("title")
					if title == "" {
						title = filepath.Base(path)
					}

					src, err := os.Open(path)
					if err != nil {
						return err
					}
					defer src.Close()

					f, err := env.services.LocalFileService.AddFile(c.Context, c.Int64("provider"), title, src)
					if err != nil {
						return err
					}

					fmt.Fprintf(c.App.Writer, "File %d (%s) added\n", f.ID, f.LocalTitle)
					return nil
				}),
			},
			{
				Name:      "update",
				Usage:     "Replace the contents of a registered file",
				ArgsUsage: "<id> <path>",
				Action: withEnv("go-pass-sync-cli", true, func(c *cli.Context, env *appEnv) error {
					id, err := idArg(c)
					if err != nil {
						return err
					}
					path := c.Args().Get(1)
					if path == "" {
						return cli.Exit("a file path is required", 1)
					}

					src, err := os.Open(path)
					if err != nil {
						return err
					}
					defer src.Close()

					if _, err = env.services.LocalFileService.UpdateFile(c.Context, id, src); err != nil {
						return err
					}

					fmt.Fprintf(c.App.Writer, "File %d updated\n", id)
					return nil
				}),
			},
			{
				Name:      "remove",
				Usage:     "Remove a registered file; the remote copy goes with the next sync",
				ArgsUsage: "<id>",
				Action: withEnv("go-pass-sync-cli", true, func(c *cli.Context, env *appEnv) error {
					id, err := idArg(c)
					if err != nil {
						return err
					}
					if err = env.services.LocalFileService.RemoveFile(c.Context, id); err != nil {
						return err
					}

					fmt.Fprintf(c.App.Writer, "File %d removed\n", id)
					return nil
				}),
			},
			{
				Name:  "list",
				Usage: "List the files of a provider",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "provider", Aliases: []string{"p"}, Usage: "provider id", Required: true},
				},
				Action: withEnv("go-pass-sync-cli", true, func(c *cli.Context, env *appEnv) error {
					files, err := env.services.LocalFileService.ListFiles(c.Context, c.Int64("provider"))
					if err != nil {
						return err
					}
					return printFiles(c.App.Writer, files)
				}),
			},
			{
				Name:      "cat",
				Usage:     "Write the local contents of a file to stdout",
				ArgsUsage: "<id>",
				Action: withEnv("go-pass-sync-cli", true, func(c *cli.Context, env *appEnv) error {
					id, err := idArg(c)
					if err != nil {
						return err
					}

					rc, err := env.services.LocalFileService.OpenFile(c.Context, id)
					if err != nil {
						return err
					}
					defer rc.Close()

					_, err = io.Copy(c.App.Writer, rc)
					return err
				}),
			},
		},
	}
}
