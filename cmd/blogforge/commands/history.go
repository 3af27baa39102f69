package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/baykovr/blogforge/internal/history"
)

// HistoryCmd implements the 'history' command.
type HistoryCmd struct {
	Limit int `short:"n" help:"Number of builds to show" default:"20"`
}

func (h *HistoryCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	records, err := store.Recent(context.Background(), h.Limit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("no builds recorded yet")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "STARTED\tOUTCOME\tPOSTS\tDURATION\tBUILD ID")
	for _, rec := range records {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
			rec.StartedAt.Format("2006-01-02 15:04:05"),
			rec.Outcome, rec.Posts, rec.Duration().Round(time.Millisecond), rec.BuildID)
	}
	return w.Flush()
}
