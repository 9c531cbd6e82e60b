package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"dslabs/dssearch/pkg/cli"
)

var logsFlags struct {
	limit  int
	format string
}

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show recent search-log entries, newest first",
	Long: `Show the recent entries of the search log. The log lives in memory
for the current process and, when telemetry.search_log_path is configured,
is also persisted to sqlite across runs.`,
	RunE: runLogs,
}

func init() {
	rootCmd.AddCommand(logsCmd)

	logsCmd.Flags().IntVarP(&logsFlags.limit, "limit", "n", 20, "maximum entries to show")
	logsCmd.Flags().StringVarP(&logsFlags.format, "format", "f", "text", "output format: text, json")
}

func runLogs(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(logsFlags.format)
	if err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	entries := a.svc.RecentLogs(logsFlags.limit)

	if format == cli.FormatJSON {
		return cli.NewFormatter(format).FormatTo(os.Stdout, entries)
	}

	if len(entries) == 0 {
		fmt.Println("no log entries")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tINTENT\tACTION\tSOURCE\tRESULTS\tTOOK\tQUERY")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			e.Time.Format(time.RFC3339), e.Intent, e.Action, e.Source,
			e.Results, e.Duration.Round(time.Millisecond), e.Query)
	}
	return w.Flush()
}
