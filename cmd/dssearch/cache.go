package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dslabs/dssearch/pkg/cli"
)

var cacheFlags struct {
	format string
}

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and manage the result cache",
}

var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show per-tier cache entry counts",
	RunE:  runCacheStatus,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop all cached entries from every tier",
	RunE:  runCacheClear,
}

var cacheCleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Sweep expired entries from every tier",
	RunE:  runCacheCleanup,
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheStatusCmd, cacheClearCmd, cacheCleanupCmd)

	cacheCmd.PersistentFlags().StringVarP(&cacheFlags.format, "format", "f", "text", "output format: text, json")
}

func runCacheStatus(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(cacheFlags.format)
	if err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	st := a.svc.CacheStatus()

	if format == cli.FormatJSON {
		return cli.NewFormatter(format).FormatTo(os.Stdout, st)
	}

	fmt.Printf("memory entries: %d\n", st.MemoryEntries)
	fmt.Printf("file entries:   %d (%d bytes)\n", st.FileEntries, st.FileBytes)
	if st.StoreAttached {
		fmt.Printf("store entries:  %d\n", st.StoreEntries)
	} else {
		fmt.Println("store entries:  (no store attached)")
	}
	return nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.svc.ClearCache(); err != nil {
		return cli.NewCommandError("cache clear", err)
	}
	fmt.Println("cache cleared")
	return nil
}

func runCacheCleanup(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	removed := a.cache.CleanupExpired()
	fmt.Printf("removed %d expired entries\n", removed)
	return nil
}
