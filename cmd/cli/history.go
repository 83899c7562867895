package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/valutatrade/hubrun/internal/history"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print recent run records, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadGraph()
		if err != nil {
			return err
		}
		if cfg.Runner.HistoryFile == "" {
			return &usageError{err: fmt.Errorf("run history is disabled (runner.history_file is empty)")}
		}

		path := cfg.Runner.HistoryFile
		if cfg.Runner.WorkDir != "" && !filepath.IsAbs(path) {
			path = filepath.Join(cfg.Runner.WorkDir, path)
		}

		records, err := history.NewStore(path, cfg.Runner.HistoryLimit).Recent(historyLimit)
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
		fmt.Fprintln(tw, "STARTED\tTASK\tSTATUS\tEXIT\tDURATION")
		for _, rec := range records {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
				rec.StartedAt.Local().Format(time.DateTime),
				rec.Task,
				rec.Status,
				rec.ExitCode,
				time.Duration(rec.DurationMS)*time.Millisecond,
			)
		}
		return tw.Flush()
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "Maximum number of records to print (0 = all)")
}
