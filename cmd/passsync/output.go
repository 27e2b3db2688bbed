package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/MKhiriev/go-pass-sync/models"
)

const timeLayout = "2006-01-02 15:04:05"

func idArg(c *cli.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Args().First(), 10, 64)
	if err != nil || id <= 0 {
		return 0, cli.Exit(fmt.Sprintf("invalid id %q", c.Args().First()), 1)
	}
	return id, nil
}

func printProviders(w io.Writer, providers []models.Provider) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTYPE\tACCOUNT\tFREQUENCY\tLAST SUCCESS\tLAST FAILURE")
	for _, p := range providers {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.Type, p.Name(), formatFreq(p.SyncFreq), formatTimePtr(p.LastSuccess), formatTimePtr(p.LastFailure))
	}
	return tw.Flush()
}

func printFiles(w io.Writer, files []models.SyncFile) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tLOCAL\tREMOTE\tREMOTE ID")
	for _, f := range files {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			f.ID, f.Title(), sideState(f.LocalChange, f.LocalDeleted), sideState(f.RemoteChange, f.RemoteDeleted), orDash(f.RemoteID))
	}
	return tw.Flush()
}

func printSyncLog(w io.Writer, rec models.SyncLogRecord) {
	status := "ok"
	switch {
	case rec.Flags&models.SyncLogNotConnected != 0:
		status = "not connected"
	case len(rec.Failures) > 0:
		status = "failed"
	}
	kind := "scheduled"
	if rec.Flags&models.SyncLogManual != 0 {
		kind = "manual"
	}

	fmt.Fprintf(w, "[%s] %s %s (%s, %s): %s\n",
		rec.StartTime.Local().Format(timeLayout), rec.ProviderType, rec.Account, kind,
		rec.EndTime.Sub(rec.StartTime).Round(time.Millisecond), status)
	for _, e := range rec.Entries {
		fmt.Fprintf(w, "  %s\n", e)
	}
	for _, c := range rec.Conflicts {
		fmt.Fprintf(w, "  conflict: %s\n", c)
	}
	for _, f := range rec.Failures {
		fmt.Fprintf(w, "  failure: %s\n", f)
	}
}

func sideState(change models.FileChange, deleted bool) string {
	if deleted {
		return "deleted"
	}
	return change.String()
}

func formatFreq(d time.Duration) string {
	if d <= 0 {
		return "manual"
	}
	return d.String()
}

func formatTimePtr(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.Local().Format(timeLayout)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
