package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"dslabs/dssearch/pkg/cache"
	"dslabs/dssearch/pkg/cli"
	"dslabs/dssearch/pkg/orchestrator"
	"dslabs/dssearch/pkg/trust"
)

var askFlags struct {
	user   string
	lang   string
	format string
}

var askCmd = &cobra.Command{
	Use:   "ask [query]",
	Short: "Ask a question about government jobs, schemes, or results",
	Long: `Run one question through the full pipeline: policy gate, cache,
trusted-domain crawl, optional paid API fallback, ranking, and fact
extraction.

Without a query argument, ask reads queries interactively from stdin
until EOF or "exit". Interactive sessions keep the cache sweeper and the
trust seed-file watcher running in the background.

Examples:
  # One-shot, English reason strings
  dssearch ask "ssc cgl 2026 last date"

  # Hindi reason strings, attributed to a user for rate limiting
  dssearch ask --lang hi --user ramesh "pm kisan yojana eligibility"

  # Machine-readable output
  dssearch ask --format json "upsc prelims result"`,
	Args: cobra.ArbitraryArgs,
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)

	askCmd.Flags().StringVarP(&askFlags.user, "user", "u", "", "opaque user ID for rate limiting")
	askCmd.Flags().StringVarP(&askFlags.lang, "lang", "l", "en", "reason language: en, hi")
	askCmd.Flags().StringVarP(&askFlags.format, "format", "f", "text", "output format: text, json")
}

func runAsk(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(askFlags.format)
	if err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx := cli.SetupSignalHandler()

	if len(args) == 0 {
		return runInteractive(ctx, a, format)
	}

	resp, err := a.svc.Ask(ctx, orchestrator.AskRequest{
		Query:  strings.Join(args, " "),
		UserID: askFlags.user,
		Lang:   askFlags.lang,
	})
	if err != nil {
		return cli.NewCommandError("ask", err)
	}
	return renderResponse(os.Stdout, format, resp)
}

// runInteractive reads queries from stdin until EOF or "exit". Background
// maintenance (cache sweeper, seed-file watcher) runs for the session.
func runInteractive(ctx context.Context, a *app, format cli.OutputFormat) error {
	cleaner := cache.NewCleaner(a.cache, a.cfg.Cache.CleanupSchedule, a.log.Component("cache.cleaner"))
	if err := cleaner.Start(); err != nil {
		a.log.Warn("cache sweeper not started", "error", err)
	} else {
		defer cleaner.Stop()
	}

	if a.cfg.Trust.WatchSeedFile && a.cfg.Trust.SeedFile != "" {
		watcher, err := trust.NewSeedWatcher(a.svc.Registry(), a.cfg.Trust.SeedFile, a.log.Component("trust.watcher"))
		if err != nil {
			a.log.Warn("seed watcher not started", "error", err)
		} else {
			go func() {
				if err := watcher.Watch(ctx); err != nil && ctx.Err() == nil {
					a.log.Warn("seed watcher stopped", "error", err)
				}
			}()
		}
	}

	fmt.Println("DS-Search interactive mode. Type a question, or \"exit\" to quit.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		if ctx.Err() != nil {
			break
		}
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}
		if query == "exit" || query == "quit" {
			break
		}

		resp, err := a.svc.Ask(ctx, orchestrator.AskRequest{
			Query:  query,
			UserID: askFlags.user,
			Lang:   askFlags.lang,
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		if err := renderResponse(os.Stdout, format, resp); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// renderResponse prints one pipeline response. JSON emits the response
// verbatim; text prints a compact human summary.
func renderResponse(w io.Writer, format cli.OutputFormat, resp *orchestrator.Response) error {
	if format == cli.FormatJSON {
		return cli.NewFormatter(format).FormatTo(w, resp)
	}

	fmt.Fprintf(w, "%s\n", resp.Reason)
	fmt.Fprintf(w, "  intent=%s action=%s source=%s score=%.2f took=%s\n",
		resp.Intent, resp.Action, resp.Source, resp.Score, resp.Duration.Round(time.Millisecond))

	if resp.Facts != nil {
		renderFacts(w, resp)
	}

	for i, r := range resp.Results {
		fmt.Fprintf(w, "\n%d. %s (%.2f)\n   %s\n", i+1, r.Title, r.Score, r.URL)
		if r.Snippet != "" {
			fmt.Fprintf(w, "   %s\n", r.Snippet)
		}
		for _, kp := range r.KeyPoints {
			fmt.Fprintf(w, "   - %s\n", kp)
		}
	}
	return nil
}

func renderFacts(w io.Writer, resp *orchestrator.Response) {
	f := resp.Facts
	fmt.Fprintf(w, "\n%s", f.Title)
	if f.Organization != "" {
		fmt.Fprintf(w, " (%s)", f.Organization)
	}
	fmt.Fprintln(w)
	if f.LastDate != "" {
		fmt.Fprintf(w, "  Last date: %s\n", f.LastDate)
	}
	if f.ExamDate != "" {
		fmt.Fprintf(w, "  Exam date: %s\n", f.ExamDate)
	}
	if f.Vacancies > 0 {
		fmt.Fprintf(w, "  Vacancies: %d\n", f.Vacancies)
	}
	if f.AgeMin > 0 || f.AgeMax > 0 {
		fmt.Fprintf(w, "  Age: %d-%d\n", f.AgeMin, f.AgeMax)
	}
	if f.Fees != nil {
		fmt.Fprintf(w, "  Fee: ₹%d + ₹%d service = ₹%d total\n", f.Fees.GovtFee, f.Fees.ServiceFee, f.Fees.Total)
		if len(f.Fees.CategoryWise) > 1 {
			fmt.Fprint(w, "  Category fees:")
			for _, cat := range []string{"general", "obc", "ews", "sc", "st", "female"} {
				if fee, ok := f.Fees.CategoryWise[cat]; ok {
					fmt.Fprintf(w, " %s=₹%d", cat, fee)
				}
			}
			fmt.Fprintln(w)
		}
	}
	if f.Qualification != "" {
		fmt.Fprintf(w, "  Qualification: %s\n", f.Qualification)
	}
	if len(f.Documents) > 0 {
		fmt.Fprintf(w, "  Documents: %s\n", strings.Join(f.Documents, ", "))
	}
	if len(f.PDFLinks) > 0 {
		fmt.Fprintf(w, "  PDFs: %s\n", strings.Join(f.PDFLinks, " "))
	}
	fmt.Fprintf(w, "  Source: %s (confidence %.2f)\n", f.SourceURL, f.Confidence)
}
