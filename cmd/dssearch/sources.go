package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"dslabs/dssearch/pkg/cli"
	"dslabs/dssearch/pkg/trust"
)

var sourcesFlags struct {
	format string
}

var sourcesAddFlags struct {
	domain     string
	srcType    string
	name       string
	priority   int
	rateLimit  float64
	categories []string
}

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Manage the trusted-source registry",
	Long: `Inspect and mutate the registry of domains the crawler may visit.

Mutations persist across runs only when trust.store_path is configured;
otherwise they apply to the current process only.`,
}

var sourcesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered sources",
	RunE:  runSourcesList,
}

var sourcesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add or update a trusted source",
	Long: `Add a domain to the registry, or overwrite its existing entry.

Examples:
  dssearch sources add --domain upsc.gov.in --type official --priority 10 \
    --name "Union Public Service Commission" --categories job,result

  dssearch sources add --domain sarkariexamhub.example.com --type aggregator \
    --priority 4 --rate-limit 0.5 --categories job`,
	RunE: runSourcesAdd,
}

var sourcesBlockCmd = &cobra.Command{
	Use:   "block <domain>",
	Short: "Block a domain from crawling and results",
	Args:  cobra.ExactArgs(1),
	RunE:  runSourcesBlock,
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
	sourcesCmd.AddCommand(sourcesListCmd, sourcesAddCmd, sourcesBlockCmd)

	sourcesCmd.PersistentFlags().StringVarP(&sourcesFlags.format, "format", "f", "text", "output format: text, json")

	sourcesAddCmd.Flags().StringVar(&sourcesAddFlags.domain, "domain", "", "domain name (required)")
	sourcesAddCmd.Flags().StringVar(&sourcesAddFlags.srcType, "type", string(trust.TypeAggregator), "source type: official, semi_official, educational, aggregator, news")
	sourcesAddCmd.Flags().StringVar(&sourcesAddFlags.name, "name", "", "human-readable display name")
	sourcesAddCmd.Flags().IntVar(&sourcesAddFlags.priority, "priority", 5, "trust priority, 1 (lowest) to 10 (highest)")
	sourcesAddCmd.Flags().Float64Var(&sourcesAddFlags.rateLimit, "rate-limit", 0, "per-domain crawl rate in requests/second (0 = default)")
	sourcesAddCmd.Flags().StringSliceVar(&sourcesAddFlags.categories, "categories", nil, "query categories: job, scheme, result, admit_card, government, education, news")
	_ = sourcesAddCmd.MarkFlagRequired("domain")
}

func runSourcesList(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(sourcesFlags.format)
	if err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	sources := a.svc.Registry().ListSources()

	if format == cli.FormatJSON {
		return cli.NewFormatter(format).FormatTo(os.Stdout, sources)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DOMAIN\tTYPE\tPRIORITY\tENABLED\tSUCCESS\tCATEGORIES")
	for _, s := range sources {
		cats := make([]string, 0, len(s.Categories))
		for _, c := range s.Categories {
			cats = append(cats, string(c))
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%t\t%.2f\t%s\n",
			s.Domain, s.Type, s.Priority, s.Enabled, s.SuccessRate, strings.Join(cats, ","))
	}
	return w.Flush()
}

func runSourcesAdd(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	cats := make([]trust.Category, 0, len(sourcesAddFlags.categories))
	for _, c := range sourcesAddFlags.categories {
		cats = append(cats, trust.Category(strings.TrimSpace(c)))
	}

	src := trust.TrustedSource{
		Domain:      sourcesAddFlags.domain,
		Type:        trust.SourceType(sourcesAddFlags.srcType),
		DisplayName: sourcesAddFlags.name,
		Priority:    sourcesAddFlags.priority,
		Enabled:     true,
		RateLimit:   sourcesAddFlags.rateLimit,
		Categories:  cats,
	}
	if err := a.svc.Registry().AddSource(src); err != nil {
		return cli.NewCommandError("sources add", err)
	}
	fmt.Printf("added %s (%s, priority %d)\n", src.Domain, src.Type, src.Priority)
	return nil
}

func runSourcesBlock(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	domain := args[0]
	if err := a.svc.Registry().BlockDomain(domain); err != nil {
		return cli.NewCommandError("sources block", err)
	}
	fmt.Printf("blocked %s\n", domain)
	return nil
}
