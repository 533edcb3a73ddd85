// ABOUTME: Migration command for converting skim data between storage backends
// ABOUTME: Supports file-to-sqlite and sqlite-to-file with safety checks

package main

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harper/skim/internal/config"
	"github.com/harper/skim/internal/storage"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate data between storage backends",
	Long: `Migrate all skim data from the currently configured backend to a different backend.

Reads feeds, folders, and items from the current backend and writes them to the
target backend. Does NOT update the config file; verify the migration was
successful then update config.yaml manually.

Examples:
  skim migrate --to sqlite
  skim migrate --to file --target-dir ~/skim-file
  skim migrate --to sqlite --force`,
	RunE: runMigrate,
}

var (
	migrateTo      string
	migrateDataDir string
	migrateForce   bool
)

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.Flags().StringVar(&migrateTo, "to", "", "target backend (file or sqlite)")
	migrateCmd.Flags().StringVar(&migrateDataDir, "target-dir", "", "target data directory (defaults to current data dir)")
	migrateCmd.Flags().BoolVar(&migrateForce, "force", false, "allow writing into a non-empty target directory")
	_ = migrateCmd.MarkFlagRequired("to")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	sourceBackend := cfg.GetBackend()
	targetBackend := migrateTo

	if targetBackend != "file" && targetBackend != "sqlite" {
		return fmt.Errorf("invalid target backend %q: must be \"file\" or \"sqlite\"", targetBackend)
	}
	if targetBackend == sourceBackend {
		return fmt.Errorf("target backend %q is the same as the current backend", targetBackend)
	}

	targetDataDir := cfg.GetDataDir()
	if migrateDataDir != "" {
		targetDataDir = config.ExpandPath(migrateDataDir)
	}

	nonEmpty, err := storage.IsDirNonEmpty(targetDataDir)
	if err != nil {
		return fmt.Errorf("check target directory: %w", err)
	}
	if nonEmpty && targetDataDir != cfg.GetDataDir() && !migrateForce {
		return fmt.Errorf("target directory %s is not empty; use --force to migrate anyway", targetDataDir)
	}

	dst, err := openMigrateStorage(targetBackend, targetDataDir)
	if err != nil {
		return fmt.Errorf("open target storage (%s): %w", targetBackend, err)
	}
	defer dst.Close()

	color.Yellow("Migrating skim data:")
	fmt.Printf("  Source:  %s (%s)\n", sourceBackend, cfg.GetDataDir())
	fmt.Printf("  Target:  %s (%s)\n", targetBackend, targetDataDir)
	fmt.Println()

	summary, err := storage.MigrateData(store, dst)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	color.Green("Migration complete!")
	fmt.Printf("  Folders: %d\n", summary.Folders)
	fmt.Printf("  Feeds:   %d\n", summary.Feeds)
	fmt.Printf("  Items:   %d\n", summary.Items)
	fmt.Println()
	color.Yellow("Note: config.yaml was NOT updated. To switch to the new backend, edit:")
	fmt.Printf("  %s\n", config.GetConfigPath())
	fmt.Printf("  Set backend: %q", targetBackend)
	if migrateDataDir != "" {
		fmt.Printf(" and data_dir: %q", migrateDataDir)
	}
	fmt.Println()

	return nil
}

// openMigrateStorage creates a Store for the given backend and data directory.
func openMigrateStorage(backend, dataDir string) (storage.Store, error) {
	switch backend {
	case "sqlite":
		return storage.NewSQLiteStore(filepath.Join(dataDir, "skim.db"), cfg.Retention())
	case "file":
		return storage.NewFileStore(dataDir, cfg.Retention())
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}
