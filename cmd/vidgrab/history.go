package main

import (
	"fmt"
	"text/tabwriter"
	"time"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	downloads, err := deps.History.ListDownloads(deps.Ctx)
	if err != nil {
		return err
	}

	if len(downloads) == 0 {
		fmt.Fprintln(deps.Stdout, "No downloads recorded. Use --download with goodstuff or url to fetch videos.")
		return nil
	}

	w := tabwriter.NewWriter(deps.Stdout, 0, 0, 2, ' ', 0)
	for _, d := range downloads {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.DownloadedAt.Local().Format(time.DateTime), d.Title, d.Path, d.VideoURL)
	}
	return w.Flush()
}
