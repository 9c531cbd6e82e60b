package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dslabs/dssearch/pkg/cli"
)

var apiFlags struct {
	format string
}

var apiEnableFlags struct {
	provider   string
	key        string
	engineID   string
	dailyLimit int
}

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Inspect and switch the paid search API",
	Long: `Inspect the paid search API adapter: provider, daily quota, and
today's usage. The enable/disable switch applies to the current process;
set paid_api.enabled in the config file to persist it.`,
}

var apiStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show provider, quota, and usage",
	RunE:  runAPIStatus,
}

var apiEnableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Enable the paid API fallback",
	Long: `Enable the paid API fallback, optionally supplying the provider and
credentials on the command line instead of the config file.

Examples:
  dssearch api enable
  dssearch api enable --provider google --key $KEY --engine-id $CX --daily-limit 100
  dssearch api enable --provider serpapi --key $KEY`,
	RunE: runAPIEnable,
}

var apiDisableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Disable the paid API fallback",
	RunE:  runAPIDisable,
}

func init() {
	rootCmd.AddCommand(apiCmd)
	apiCmd.AddCommand(apiStatusCmd, apiEnableCmd, apiDisableCmd)

	apiCmd.PersistentFlags().StringVarP(&apiFlags.format, "format", "f", "text", "output format: text, json")

	apiEnableCmd.Flags().StringVar(&apiEnableFlags.provider, "provider", "", "provider: google, bing, serpapi (uses config if not specified)")
	apiEnableCmd.Flags().StringVar(&apiEnableFlags.key, "key", "", "API credential")
	apiEnableCmd.Flags().StringVar(&apiEnableFlags.engineID, "engine-id", "", "Google Custom Search engine ID (cx)")
	apiEnableCmd.Flags().IntVar(&apiEnableFlags.dailyLimit, "daily-limit", 0, "daily request cap (uses config if not specified)")
}

func runAPIStatus(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(apiFlags.format)
	if err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	st := a.svc.API().GetStatus()

	if format == cli.FormatJSON {
		return cli.NewFormatter(format).FormatTo(os.Stdout, st)
	}

	fmt.Printf("enabled:    %t\n", st.Enabled)
	fmt.Printf("provider:   %s\n", valueOrNone(st.Provider))
	fmt.Printf("daily cap:  %d\n", st.Limit)
	fmt.Printf("used today: %d\n", st.UsedToday)
	fmt.Printf("remaining:  %d\n", st.Remaining)
	return nil
}

func runAPIEnable(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if apiEnableFlags.provider != "" {
		cfg.PaidAPI.Provider = apiEnableFlags.provider
	}
	if apiEnableFlags.key != "" {
		cfg.PaidAPI.Key = apiEnableFlags.key
	}
	if apiEnableFlags.engineID != "" {
		cfg.PaidAPI.EngineID = apiEnableFlags.engineID
	}
	if apiEnableFlags.dailyLimit > 0 {
		cfg.PaidAPI.DailyLimit = apiEnableFlags.dailyLimit
	}
	cfg.PaidAPI.Enabled = true

	a, err := newAppFromConfig(cfg)
	if err != nil {
		return err
	}
	defer a.close()

	st := a.svc.API().GetStatus()
	if !st.Enabled {
		return cli.NewCommandError("api enable",
			fmt.Errorf("no usable provider; set --provider and --key (google also needs --engine-id)"))
	}
	fmt.Printf("paid API enabled: provider=%s daily limit=%d\n", st.Provider, st.Limit)
	return nil
}

func runAPIDisable(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	a.svc.SetAPIEnabled(false)
	fmt.Println("paid API disabled")
	return nil
}

func valueOrNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
