// ABOUTME: Root Cobra command and global flags
// ABOUTME: Loads configuration and opens the storage backend for subcommands

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/skim/internal/config"
	"github.com/harper/skim/internal/storage"
)

var (
	cfgPath string
	dataDir string
	cfg     *config.Config
	store   storage.Store
)

var rootCmd = &cobra.Command{
	Use:   "skim",
	Short: "Personal RSS/Atom feed aggregator",
	Long: `skim polls your subscribed RSS/Atom feeds on a schedule, keeps a
rolling window of items per feed, and preserves your read/starred state
across refreshes.

Feeds are organized into folders; items live in per-feed storage units so
metadata edits never rewrite item history.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}
		if dataDir != "" {
			cfg.DataDir = dataDir
		}

		store, err = cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("open storage: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if store != nil {
			if err := store.Close(); err != nil {
				return fmt.Errorf("close storage: %w", err)
			}
		}
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file path (default: ~/.config/skim/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (overrides config)")
}
