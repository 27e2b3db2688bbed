package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/MKhiriev/go-pass-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"v"},
		Usage:   "print the version",
	}

	app := newApp(buildInfo)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newApp(buildInfo models.AppBuildInfo) *cli.App {
	return &cli.App{
		Name:                 "passsync",
		Usage:                "keep password database files in sync with remote storage providers",
		Version:              buildInfo.BuildVersion(),
		EnableBashCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "path to a JSON configuration file"},
			&cli.StringFlag{Name: "db", Usage: "sync state database (SQLite DSN)"},
			&cli.StringFlag{Name: "dir", Usage: "directory holding local file contents"},
			&cli.StringFlag{Name: "log-file", Usage: "write logs to this file instead of stdout"},
		},
		Commands: []*cli.Command{
			{
				Name:  "version",
				Usage: "Print detailed version information",
				Action: func(c *cli.Context) error {
					printBuildInfo(c.App.Writer, buildInfo)
					return nil
				},
			},
			serveCommand(buildInfo),
			syncCommand(),
			providerCommand(),
			fileCommand(),
			logsCommand(),
		},
	}
}

func printBuildInfo(w io.Writer, buildInfo models.AppBuildInfo) {
	fmt.Fprintf(w, "Build version: %s\n", buildInfo.BuildVersion())
	fmt.Fprintf(w, "Build date: %s\n", buildInfo.BuildDate())
	fmt.Fprintf(w, "Build commit: %s\n", buildInfo.BuildCommit())
}
